package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aeronica/complaint-portal/internal/domain"
)

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Administrator, error)
	FindByID(ctx context.Context, id int64) (*domain.Administrator, error)
	Create(ctx context.Context, username, email, passwordHash string) (*domain.Administrator, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminCols = `id, username, email, password_hash, created_at`

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*domain.Administrator, error) {
	const q = `SELECT ` + adminCols + ` FROM admins WHERE username = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a domain.Administrator
	err := r.pool.QueryRow(ctx, q, username).Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &a, err
}

func (r *adminRepository) FindByID(ctx context.Context, id int64) (*domain.Administrator, error) {
	const q = `SELECT ` + adminCols + ` FROM admins WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a domain.Administrator
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &a, err
}

func (r *adminRepository) Create(ctx context.Context, username, email, passwordHash string) (*domain.Administrator, error) {
	const q = `
		INSERT INTO admins (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + adminCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var a domain.Administrator
	err := r.pool.QueryRow(ctx, q, username, email, passwordHash).Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
