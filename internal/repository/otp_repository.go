package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/aeronica/complaint-portal/internal/domain"
)

type OTPRepository interface {
	Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error
	// CheckCode verifies the supplied code against the most recently
	// issued code for the address. Older codes are dead the moment a
	// newer one exists. A mismatch burns an attempt; a match marks the
	// code used.
	CheckCode(ctx context.Context, email, code string) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type otpRepository struct {
	pool *pgxpool.Pool
}

func NewOTPRepository(pool *pgxpool.Pool) OTPRepository {
	return &otpRepository{pool: pool}
}

func (r *otpRepository) Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	const q = `
		INSERT INTO otp_codes (email, code_hash, expires_at)
		VALUES ($1, $2, $3)`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, email, codeHash, expiresAt)
	return err
}

func (r *otpRepository) CheckCode(ctx context.Context, email, code string) (bool, error) {
	const q = `
		SELECT id, code_hash, expires_at, used_at, attempts
		FROM otp_codes
		WHERE lower(email) = lower($1)
		ORDER BY id DESC
		LIMIT 1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var (
		id       int64
		hash     string
		expires  time.Time
		used     *time.Time
		attempts int
	)

	err := r.pool.QueryRow(ctx, q, email).Scan(&id, &hash, &expires, &used, &attempts)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}

	if used != nil || time.Now().After(expires) || attempts >= domain.MaxOTPAttempts {
		return false, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		_, _ = r.pool.Exec(ctx, `UPDATE otp_codes SET attempts = attempts + 1 WHERE id = $1`, id)
		return false, nil
	}

	_, _ = r.pool.Exec(ctx, `UPDATE otp_codes SET used_at = now() WHERE id = $1`, id)
	return true, nil
}

func (r *otpRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const q = `
		DELETE FROM otp_codes
		WHERE (used_at IS NOT NULL AND used_at < now() - interval '30 days')
		   OR (used_at IS NULL AND expires_at < now() - interval '7 days')`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}
