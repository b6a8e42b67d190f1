package usecase

import (
	"crime-report/internal/data/repository"
	"crime-report/pkg/mailer"
	"crime-report/pkg/media"
	"crime-report/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	OTP       OTPService
	Complaint ComplaintService
	SOS       SOSService
	Debug     DebugService
}

func NewService(
	repo *repository.Repository,
	store media.Store,
	sender mailer.Sender,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	otp := NewOTPService(repo.OTP, sender, config.OTP, log)

	return &Service{
		Auth:      NewAuthService(repo.User, otp, config.OTP, log),
		OTP:       otp,
		Complaint: NewComplaintService(repo, store, log),
		SOS:       NewSOSService(repo.SOS, log),
		Debug:     NewDebugService(repo, config.Database.URL, log),
	}
}
