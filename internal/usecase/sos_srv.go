package usecase

import (
	"context"
	"fmt"
	"time"

	"crime-report/internal/data/entity"
	"crime-report/internal/data/repository"
	"crime-report/internal/dto/request"
	"crime-report/internal/dto/response"
	"crime-report/pkg/metrics"
	"crime-report/pkg/utils"

	"go.uber.org/zap"
)

type SOSService interface {
	Create(ctx context.Context, req *request.SOSRequest) (*response.SOSResponse, error)
	Stats(ctx context.Context) (*response.SOSStatsResponse, error)
}

type sosService struct {
	repo repository.SOSRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewSOSService(repo repository.SOSRepository, log *zap.Logger) SOSService {
	return &sosService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Create records the alert as sent. The email is not checked against users.
func (s *sosService) Create(ctx context.Context, req *request.SOSRequest) (*response.SOSResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newError(ErrValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	alert := &entity.SOSAlert{
		UserEmail: req.UserEmail,
		Lat:       req.Lat,
		Long:      req.Long,
	}
	if err := s.repo.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to save SOS alert")
	}

	metrics.SOSAlertsTotal.Inc()
	s.log.Warn("SOS alert received",
		zap.Uint("alert_id", alert.ID),
		zap.Stringp("user_email", alert.UserEmail),
		zap.String("lat", alert.Lat),
		zap.String("long", alert.Long),
	)

	resp := response.SOSToResponse(alert)
	return &resp, nil
}

func (s *sosService) Stats(ctx context.Context) (*response.SOSStatsResponse, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count SOS alerts")
	}

	today, err := s.repo.CountSince(ctx, s.now().UTC().Add(-statsWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count SOS alerts")
	}

	return &response.SOSStatsResponse{
		TotalAlerts: total,
		TodayAlerts: today,
	}, nil
}
