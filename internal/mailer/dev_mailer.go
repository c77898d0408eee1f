package mailer

import (
	"github.com/aeronica/complaint-portal/pkg/logger"
)

// DevMailer logs codes instead of sending them. Development only.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendOTPEmail(toEmail, code string) error {
	logger.Info("[DEV MAIL] OTP Email",
		"to", toEmail,
		"code", code,
	)
	return nil
}
