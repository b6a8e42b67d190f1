package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crime-report/internal/data/entity"
	"crime-report/internal/data/repository"
	"crime-report/internal/dto/request"
	"crime-report/internal/dto/response"
	"crime-report/pkg/media"
	"crime-report/pkg/metrics"
	"crime-report/pkg/utils"

	"go.uber.org/zap"
)

const (
	DefaultRecentLimit = 5
	MaxRecentLimit     = 100
	statsWindow        = 24 * time.Hour
)

type ComplaintService interface {
	Create(ctx context.Context, req *request.CreateComplaintRequest) (*response.ComplaintResponse, error)
	MyComplaints(ctx context.Context, email string) ([]response.ComplaintResponse, error)
	Stats(ctx context.Context) (*response.ComplaintStatsResponse, error)
	Recent(ctx context.Context, limit int) ([]response.ComplaintResponse, error)
}

type complaintService struct {
	complaints repository.ComplaintRepository
	users      repository.UserRepository
	store      media.Store
	log        *zap.Logger
	now        func() time.Time
}

func NewComplaintService(repo *repository.Repository, store media.Store, log *zap.Logger) ComplaintService {
	return &complaintService{
		complaints: repo.Complaint,
		users:      repo.User,
		store:      store,
		log:        log,
		now:        time.Now,
	}
}

// Create files a complaint for an existing user. Attachments are stored
// before the row is written; any failed upload fails the whole request.
func (s *complaintService) Create(ctx context.Context, req *request.CreateComplaintRequest) (*response.ComplaintResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Complaint validation failed", zap.Any("errors", errs))
		return nil, newError(ErrValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Submitter must exist
	email := strings.TrimSpace(req.UserEmail)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		s.log.Warn("Complaint from unknown user", zap.String("email", email))
		return nil, newError(ErrNotFound, "User not found for %s", email)
	}

	// 3. Attachments, image first
	imagePath, err := s.save(ctx, req.Image)
	if err != nil {
		return nil, err
	}
	videoPath, err := s.save(ctx, req.Video)
	if err != nil {
		s.discard(ctx, media.KindImage, imagePath)
		return nil, err
	}

	// 4. Save
	complaint := &entity.Complaint{
		Title:       req.Title,
		Description: req.Description,
		CrimeType:   req.CrimeType,
		UserEmail:   user.Email,
		ImagePath:   imagePath,
		VideoPath:   videoPath,
		Status:      entity.ComplaintStatusPending,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		s.discard(ctx, media.KindImage, imagePath)
		s.discard(ctx, media.KindVideo, videoPath)
		return nil, fmt.Errorf("failed to create complaint")
	}

	metrics.ComplaintsCreatedTotal.WithLabelValues(crimeTypeLabel(complaint.CrimeType)).Inc()
	s.log.Info("Complaint created",
		zap.Uint("complaint_id", complaint.ID),
		zap.String("user_email", complaint.UserEmail),
		zap.String("crime_type", complaint.CrimeType),
	)

	resp := response.ComplaintToResponse(complaint)
	return &resp, nil
}

func (s *complaintService) save(ctx context.Context, file *media.File) (*string, error) {
	if file == nil {
		return nil, nil
	}

	ref, err := s.store.Save(ctx, *file)
	if err != nil {
		metrics.MediaUploadsTotal.WithLabelValues(s.store.Name(), string(file.Kind), "error").Inc()
		s.log.Error("Media upload failed",
			zap.Error(err),
			zap.String("backend", s.store.Name()),
			zap.String("kind", string(file.Kind)),
			zap.String("filename", file.Filename),
		)
		return nil, newError(ErrUpload, "Media upload failed: %v", err)
	}

	metrics.MediaUploadsTotal.WithLabelValues(s.store.Name(), string(file.Kind), "ok").Inc()
	return &ref, nil
}

// discard removes an attachment whose complaint was never written. A failed
// removal is only logged; the reference is orphaned.
func (s *complaintService) discard(ctx context.Context, kind media.Kind, ref *string) {
	if ref == nil {
		return
	}

	if err := s.store.Remove(ctx, kind, *ref); err != nil {
		s.log.Error("Failed to remove orphaned media",
			zap.Error(err),
			zap.String("backend", s.store.Name()),
			zap.String("ref", *ref),
		)
		return
	}

	metrics.MediaUploadsTotal.WithLabelValues(s.store.Name(), string(kind), "discarded").Inc()
	s.log.Warn("Removed orphaned media", zap.String("backend", s.store.Name()), zap.String("ref", *ref))
}

// crimeTypeLabel folds free-text crime types onto the app's fixed list so the
// metric label set stays bounded.
func crimeTypeLabel(crimeType string) string {
	key := strings.ToLower(strings.TrimSpace(crimeType))
	if label, ok := crimeTypeLabels[key]; ok {
		return label
	}
	return "other"
}

var crimeTypeLabels = map[string]string{
	"theft":      "theft",
	"behavioral": "behavioral",
	"critical":   "critical",
	"property":   "property",
	"burglary":   "burglary",
	"traffic":    "traffic",
	"sos alert":  "sos_alert",
	"other":      "other",
}

func (s *complaintService) MyComplaints(ctx context.Context, email string) ([]response.ComplaintResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, newError(ErrValidation, "user_email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, newError(ErrNotFound, "User not found")
	}

	complaints, err := s.complaints.FindByUserEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get complaints")
	}

	return response.ComplaintsToResponse(complaints), nil
}

// Stats counts today's complaints over a rolling 24 hour window.
func (s *complaintService) Stats(ctx context.Context) (*response.ComplaintStatsResponse, error) {
	total, err := s.complaints.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count complaints")
	}

	today, err := s.complaints.CountSince(ctx, s.now().UTC().Add(-statsWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count complaints")
	}

	return &response.ComplaintStatsResponse{
		TotalComplaints: total,
		TodayComplaints: today,
	}, nil
}

func (s *complaintService) Recent(ctx context.Context, limit int) ([]response.ComplaintResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	complaints, err := s.complaints.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent complaints")
	}

	return response.ComplaintsToResponse(complaints), nil
}
