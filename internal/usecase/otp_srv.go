package usecase

import (
	"context"
	"fmt"
	"time"

	"crime-report/internal/data/entity"
	"crime-report/internal/data/repository"
	"crime-report/pkg/mailer"
	"crime-report/pkg/metrics"
	"crime-report/pkg/utils"

	"go.uber.org/zap"
)

const otpLength = 5

// OTPService owns the code lifecycle of an email address:
// none -> issued (unverified) -> verified. Issuing again starts over.
type OTPService interface {
	CreateOTP(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, code string) (bool, error)
	IsEmailVerified(ctx context.Context, email string) (bool, error)
}

type otpService struct {
	repo   repository.OTPRepository
	mailer mailer.Sender
	config utils.OTPConfig
	log    *zap.Logger
	now    func() time.Time
}

func NewOTPService(repo repository.OTPRepository, sender mailer.Sender, config utils.OTPConfig, log *zap.Logger) OTPService {
	return &otpService{
		repo:   repo,
		mailer: sender,
		config: config,
		log:    log,
		now:    time.Now,
	}
}

func (s *otpService) expiry() time.Duration {
	if s.config.ExpiryMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.config.ExpiryMinutes) * time.Minute
}

// CreateOTP stores a fresh code for email, replacing any previous one. With a
// fixed code configured no email is sent.
func (s *otpService) CreateOTP(ctx context.Context, email string) (string, error) {
	code := s.config.FixedCode
	mode := "fixed"
	if code == "" {
		generated, err := utils.GenerateOTP(otpLength)
		if err != nil {
			return "", err
		}
		code, mode = generated, "random"
	}

	otp := &entity.OTP{
		Email:      email,
		Code:       code,
		ExpiresAt:  s.now().UTC().Add(s.expiry()),
		IsVerified: false,
	}
	if err := s.repo.Upsert(ctx, otp); err != nil {
		s.log.Error("Failed to save OTP", zap.Error(err), zap.String("email", email))
		return "", fmt.Errorf("failed to generate OTP")
	}

	metrics.OTPIssuedTotal.WithLabelValues(mode).Inc()

	if mode == "fixed" {
		s.log.Info("OTP issued with fixed code, email not sent",
			zap.String("email", email),
			zap.Time("expires_at", otp.ExpiresAt))
		return code, nil
	}

	if err := s.mailer.SendOTP(ctx, email, code, int(s.expiry()/time.Minute)); err != nil {
		s.log.Error("Failed to send OTP email", zap.Error(err), zap.String("email", email))
		return "", fmt.Errorf("failed to send OTP email")
	}

	s.log.Info("OTP issued", zap.String("email", email), zap.Time("expires_at", otp.ExpiresAt))
	return code, nil
}

// VerifyOTP is false when no code exists, the code differs, or the code has
// expired. A match marks the email verified.
func (s *otpService) VerifyOTP(ctx context.Context, email, code string) (bool, error) {
	otp, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find OTP", zap.Error(err), zap.String("email", email))
		return false, fmt.Errorf("failed to verify OTP")
	}

	result := "verified"
	switch {
	case otp == nil:
		result = "missing"
	case otp.Code != code:
		result = "mismatch"
	case !s.now().UTC().Before(otp.ExpiresAt.UTC()):
		result = "expired"
	}

	metrics.OTPVerificationsTotal.WithLabelValues(result).Inc()

	if result != "verified" {
		s.log.Warn("OTP verification failed", zap.String("email", email), zap.String("reason", result))
		return false, nil
	}

	if err := s.repo.MarkVerified(ctx, email); err != nil {
		s.log.Error("Failed to mark OTP verified", zap.Error(err), zap.String("email", email))
		return false, fmt.Errorf("failed to verify OTP")
	}

	s.log.Info("OTP verified", zap.String("email", email))
	return true, nil
}

func (s *otpService) IsEmailVerified(ctx context.Context, email string) (bool, error) {
	otp, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email verification: %w", err)
	}
	return otp != nil && otp.IsVerified, nil
}
