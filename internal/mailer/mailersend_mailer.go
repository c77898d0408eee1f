package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendOTPEmail(toEmail, code string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Your Complaint Portal login code"
	html := fmt.Sprintf(`
		<h2>Your Complaint Portal Login Code</h2>
		<p>Your one-time code is: <strong style="font-size: 24px;">%s</strong></p>
		<p>This code will expire in 10 minutes.</p>
		<p>If you didn't request a code, you can ignore this email.</p>
	`, code)

	text := fmt.Sprintf("Your one-time code is: %s\n\nThis code will expire in 10 minutes.", code)

	return m.sendEmail(toEmail, subject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
