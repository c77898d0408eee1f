package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/aeronica/complaint-portal/internal/handlers"
	"github.com/aeronica/complaint-portal/internal/mailer"
	"github.com/aeronica/complaint-portal/internal/repository"
	"github.com/aeronica/complaint-portal/internal/service"
	"github.com/aeronica/complaint-portal/internal/storage"
	"github.com/aeronica/complaint-portal/pkg/config"
	"github.com/aeronica/complaint-portal/pkg/database"
	"github.com/aeronica/complaint-portal/pkg/events"
	"github.com/aeronica/complaint-portal/pkg/logger"
	mw "github.com/aeronica/complaint-portal/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Connect to database; refusing to serve beats running
	// half-initialized.
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Event bus is optional; drop events when NATS is not configured.
	var eventBus events.Publisher = events.NoopPublisher{}
	if cfg.NATS.Enabled {
		natsBus, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsBus.Close()
		eventBus = natsBus
	}

	// Rate limiting is optional too; without Redis every request passes.
	var rateLimitRepo repository.RateLimitRepository = repository.NoopRateLimit{}
	if cfg.Redis.Enabled {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Error("Invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		rateLimitRepo = repository.NewRateLimitRepository(redis.NewClient(opts))
	}

	store, err := storage.NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.PublicBaseURL)
	if err != nil {
		logger.Error("Failed to initialize upload store", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(pool)
	otpRepo := repository.NewOTPRepository(pool)
	complaintRepo := repository.NewComplaintRepository(pool)

	// Initialize services
	authService := service.NewAuthService(adminRepo, otpRepo, newMailer(cfg), eventBus, cfg)
	complaintService := service.NewComplaintService(complaintRepo, store, eventBus)

	// Initialize handlers
	h := handlers.New(authService, complaintService, rateLimitRepo, store, cfg)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("portal-api"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Routes
	r.Post("/admin/login", h.Login)
	r.With(h.OTPRateLimit).Post("/auth/send-otp", h.SendOTP)
	r.Post("/auth/verify-otp", h.VerifyOTP)

	r.Post("/complaints", h.SubmitComplaint)
	r.Get("/complaints", h.ListComplaints)
	r.Get("/uploads/{filename}", h.ServeUpload)

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.RequireAdmin)
		r.Get("/complaints", h.ListAllComplaints)
		r.Patch("/update-status", h.UpdateStatus)
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down portal API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Portal API shutdown error", "error", err)
		}
	}()

	logger.Info("Starting portal API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Portal API error", "error", err)
		os.Exit(1)
	}
}

func newMailer(cfg *config.Config) mailer.Service {
	switch {
	case cfg.Email.DevMode:
		return mailer.NewDevMailer()
	case cfg.Email.MailerSendKey != "":
		return mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	default:
		return mailer.NewSMTPMailer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom, cfg.Email.SMTPUser, cfg.Email.SMTPPass)
	}
}
