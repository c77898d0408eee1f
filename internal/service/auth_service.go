package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"

	"github.com/aeronica/complaint-portal/internal/domain"
	"github.com/aeronica/complaint-portal/internal/mailer"
	"github.com/aeronica/complaint-portal/internal/repository"
	"github.com/aeronica/complaint-portal/pkg/auth"
	"github.com/aeronica/complaint-portal/pkg/config"
	"github.com/aeronica/complaint-portal/pkg/events"
	"github.com/aeronica/complaint-portal/pkg/logger"
)

type AuthService interface {
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.TokenResponse, error)
	SendOTP(ctx context.Context, req *domain.SendOTPRequest) error
	VerifyOTP(ctx context.Context, req *domain.VerifyOTPRequest) (*domain.TokenResponse, error)
}

type authService struct {
	adminRepo repository.AdminRepository
	otpRepo   repository.OTPRepository
	mailer    mailer.Service
	eventBus  events.Publisher
	config    *config.Config
}

func NewAuthService(
	adminRepo repository.AdminRepository,
	otpRepo repository.OTPRepository,
	mailer mailer.Service,
	eventBus events.Publisher,
	config *config.Config,
) AuthService {
	return &authService{
		adminRepo: adminRepo,
		otpRepo:   otpRepo,
		mailer:    mailer,
		eventBus:  eventBus,
		config:    config,
	}
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.TokenResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	admin, err := s.adminRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to find administrator: %w", err)
	}
	// Unknown user and wrong password must be indistinguishable.
	if admin == nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	valid, err := argon2id.ComparePasswordAndHash(req.Password, admin.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := auth.NewAdminToken(admin.ID, admin.Username, s.config.Auth.JWTSecret, s.config.Auth.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session token: %w", err)
	}

	return &domain.TokenResponse{
		Token:     token,
		ExpiresIn: int64(s.config.Auth.SessionTTL.Seconds()),
	}, nil
}

func (s *authService) SendOTP(ctx context.Context, req *domain.SendOTPRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash code: %w", err)
	}

	expiresAt := time.Now().Add(s.config.Auth.OTPTTL)

	if err := s.otpRepo.Create(ctx, req.Email, string(codeHash), expiresAt); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	if err := s.mailer.SendOTPEmail(req.Email, code); err != nil {
		logger.ErrorContext(ctx, "Failed to send OTP email", "error", err, "email", req.Email)
		// The code row exists; the caller may retry delivery by
		// requesting a fresh code.
	}

	if err := s.eventBus.Publish(ctx, events.OTPIssued, events.OTPIssuedEvent{
		Email:    req.Email,
		IssuedAt: time.Now(),
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish otp.issued", "error", err)
	}

	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *domain.VerifyOTPRequest) (*domain.TokenResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	valid, err := s.otpRepo.CheckCode(ctx, req.Email, req.OTP)
	if err != nil {
		return nil, fmt.Errorf("failed to verify code: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("invalid or expired code")
	}

	// OTP verification proves control of the address only; the token is
	// citizen-bound and carries no admin rights.
	token, err := auth.NewCitizenToken(req.Email, s.config.Auth.JWTSecret, s.config.Auth.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session token: %w", err)
	}

	return &domain.TokenResponse{
		Token:     token,
		ExpiresIn: int64(s.config.Auth.SessionTTL.Seconds()),
	}, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
