package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(ctx context.Context, email, firstName string) error
	SendOTPEmail(ctx context.Context, email, code string, ttl time.Duration) error
}

// mailSender — то, что нам нужно от *gomail.Dialer.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer mailSender
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return newEmailService(dialer, fromEmail)
}

func newEmailService(dialer mailSender, from string) *emailService {
	return &emailService{
		dialer: dialer,
		from:   from,
	}
}

func (s *emailService) SendWelcomeEmail(ctx context.Context, email, firstName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome aboard!")

	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Thank you for registering with us. Your account has been successfully created.</p>
		<p>Best regards,<br>The Team</p>
	`, html.EscapeString(firstName))

	m.SetBody("text/html", body)

	if err := s.send(ctx, m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendOTPEmail(ctx context.Context, email, code string, ttl time.Duration) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your verification code")

	body := fmt.Sprintf(`
		<h3>Verify your email</h3>
		<p>Your one-time verification code is: <strong>%s</strong></p>
		<p>The code expires in %d minutes. If you did not request it, you can ignore this email.</p>
	`, code, int(ttl.Minutes()))

	m.SetBody("text/html", body)
	m.AddAlternative("text/plain", fmt.Sprintf("Your verification code is %s", code))

	if err := s.send(ctx, m); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}

func (s *emailService) send(ctx context.Context, m *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.dialer.DialAndSend(m)
}
