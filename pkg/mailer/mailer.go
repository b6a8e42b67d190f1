// Package mailer delivers one-time codes by email.
package mailer

import (
	"context"
	"fmt"

	"crime-report/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender delivers an OTP to an email address.
type Sender interface {
	SendOTP(ctx context.Context, to, code string, validFor int) error
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends HTML mails over implicit TLS (port 465) or STARTTLS.
// Without credentials it only logs, so local setups keep working.
type SMTPSender struct {
	from   string
	dialer dialer
	log    *zap.Logger
}

func NewSMTPSender(config utils.EmailConfig, log *zap.Logger) *SMTPSender {
	s := &SMTPSender{
		from: config.User,
		log:  log.With(zap.String("component", "mailer")),
	}

	if config.User != "" && config.Password != "" {
		d := gomail.NewDialer(config.Host, config.Port, config.User, config.Password)
		d.SSL = config.Port == 465
		s.dialer = d
	}

	return s
}

func (s *SMTPSender) Configured() bool { return s.dialer != nil }

func (s *SMTPSender) SendOTP(ctx context.Context, to, code string, validFor int) error {
	if !s.Configured() {
		s.log.Warn("Skipping OTP email, SMTP credentials not configured", zap.String("to", to))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your Verification Code - Crime Reporting App")
	m.SetBody("text/html", otpBody(code, validFor))

	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Error("Failed to send OTP email", zap.Error(err), zap.String("to", to))
		return fmt.Errorf("send otp email to %s: %w", to, err)
	}

	s.log.Info("OTP email sent", zap.String("to", to))
	return nil
}

func otpBody(code string, validFor int) string {
	return fmt.Sprintf(`<html>
  <body>
    <h2>Verification Code</h2>
    <p>Your OTP is: <strong>%s</strong></p>
    <p>This code is valid for %d minutes.</p>
  </body>
</html>`, code, validFor)
}
