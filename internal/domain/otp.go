package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type SendOTPRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type OTPCode struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	CodeHash  string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	Attempts  int        `json:"attempts"`
	CreatedAt time.Time  `json:"created_at"`
}

const MaxOTPAttempts = 5

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	otpRegex   = regexp.MustCompile(`^\d{6}$`)
)

func (r *SendOTPRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *SendOTPRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

func (r *VerifyOTPRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.OTP = strings.TrimSpace(r.OTP)
}

func (r *VerifyOTPRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	if r.OTP == "" {
		return fmt.Errorf("otp is required")
	}
	if !otpRegex.MatchString(r.OTP) {
		return fmt.Errorf("otp must be 6 digits")
	}
	return nil
}

func (c *OTPCode) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

func (c *OTPCode) IsUsed() bool {
	return c.UsedAt != nil
}

func (c *OTPCode) CanAttempt() bool {
	return c.Attempts < MaxOTPAttempts && !c.IsExpired() && !c.IsUsed()
}
