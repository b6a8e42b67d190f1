package repository

import (
	"context"
	"fmt"
	"time"

	"crime-report/internal/data/entity"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *entity.Complaint) error
	FindByUserEmail(ctx context.Context, email string) ([]*entity.Complaint, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Complaint, error)
	CountAll(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type complaintRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewComplaintRepository(db *gorm.DB, log *zap.Logger) ComplaintRepository {
	return &complaintRepository{
		db:  db,
		log: log.With(zap.String("repository", "complaint")),
	}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	if err := r.db.WithContext(ctx).Create(complaint).Error; err != nil {
		r.log.Error("Failed to create complaint",
			zap.Error(err),
			zap.String("user_email", complaint.UserEmail),
			zap.String("crime_type", complaint.CrimeType),
		)
		return fmt.Errorf("create complaint for %s: %w", complaint.UserEmail, err)
	}

	return nil
}

func (r *complaintRepository) FindByUserEmail(ctx context.Context, email string) ([]*entity.Complaint, error) {
	var complaints []*entity.Complaint
	err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&complaints).Error

	if err != nil {
		r.log.Error("Failed to find complaints by user", zap.Error(err), zap.String("user_email", email))
		return nil, fmt.Errorf("find complaints for %s: %w", email, err)
	}

	return complaints, nil
}

func (r *complaintRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Complaint, error) {
	var complaints []*entity.Complaint
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&complaints).Error

	if err != nil {
		r.log.Error("Failed to find recent complaints", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("find recent complaints limit %d: %w", limit, err)
	}

	return complaints, nil
}

func (r *complaintRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Complaint{}).Count(&count).Error; err != nil {
		r.log.Error("Database error counting complaints", zap.Error(err))
		return 0, fmt.Errorf("count all complaints: %w", err)
	}

	return count, nil
}

func (r *complaintRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Complaint{}).
		Where("created_at >= ?", since.UTC()).
		Count(&count).Error

	if err != nil {
		r.log.Error("Database error counting complaints since", zap.Error(err), zap.Time("since", since))
		return 0, fmt.Errorf("count complaints since %s: %w", since.Format(time.RFC3339), err)
	}

	return count, nil
}
