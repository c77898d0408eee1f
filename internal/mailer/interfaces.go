package mailer

// Service delivers one-time login codes. Implementations must not log
// the code except in explicit dev mode.
type Service interface {
	SendOTPEmail(toEmail, code string) error
}
