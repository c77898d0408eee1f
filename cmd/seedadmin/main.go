// Command seedadmin creates an administrator account. Administrators
// are provisioned out-of-band only; the API exposes no registration.
//
// Usage:
//
//	seedadmin -username ops -email ops@example.org
//
// The password is read from the SEED_ADMIN_PASSWORD environment
// variable so it never lands in shell history.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/alexedwards/argon2id"
	"github.com/joho/godotenv"

	"github.com/aeronica/complaint-portal/internal/repository"
	"github.com/aeronica/complaint-portal/pkg/config"
	"github.com/aeronica/complaint-portal/pkg/database"
	"github.com/aeronica/complaint-portal/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	username := flag.String("username", "", "administrator username (required)")
	email := flag.String("email", "", "administrator email")
	flag.Parse()

	if *username == "" {
		logger.Error("-username is required")
		os.Exit(2)
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		logger.Error("SEED_ADMIN_PASSWORD is required")
		os.Exit(2)
	}
	if len(password) < 8 {
		logger.Error("SEED_ADMIN_PASSWORD must be at least 8 characters")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		os.Exit(1)
	}

	adminRepo := repository.NewAdminRepository(pool)
	admin, err := adminRepo.Create(ctx, *username, *email, hash)
	if err != nil {
		logger.Error("Failed to create administrator", "error", err)
		os.Exit(1)
	}

	logger.Info("Administrator created", "id", admin.ID, "username", admin.Username)
}
