package repository

import (
	"context"
	"errors"
	"fmt"

	"crime-report/internal/data/entity"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OTPRepository interface {
	// Upsert stores otp as the only code for its email, replacing any
	// previous code and verification state.
	Upsert(ctx context.Context, otp *entity.OTP) error
	FindByEmail(ctx context.Context, email string) (*entity.OTP, error)
	MarkVerified(ctx context.Context, email string) error
}

type otpRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewOTPRepository(db *gorm.DB, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Upsert(ctx context.Context, otp *entity.OTP) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"otp", "expires_at", "is_verified"}),
		}).
		Create(otp).Error

	if err != nil {
		r.log.Error("Failed to upsert OTP", zap.Error(err), zap.String("email", otp.Email))
		return fmt.Errorf("upsert OTP for %s: %w", otp.Email, err)
	}

	return nil
}

func (r *otpRepository) FindByEmail(ctx context.Context, email string) (*entity.OTP, error) {
	var otp entity.OTP
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&otp).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find OTP", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find OTP for %s: %w", email, err)
	}

	return &otp, nil
}

func (r *otpRepository) MarkVerified(ctx context.Context, email string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.OTP{}).
		Where("email = ?", email).
		Update("is_verified", true)

	if result.Error != nil {
		r.log.Error("Failed to mark OTP as verified", zap.Error(result.Error), zap.String("email", email))
		return fmt.Errorf("mark OTP %s as verified: %w", email, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("OTP for %s not found", email)
	}

	return nil
}
