package repository

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repository struct {
	User      UserRepository
	OTP       OTPRepository
	Complaint ComplaintRepository
	SOS       SOSRepository
	Schema    SchemaRepository
}

func NewRepository(db *gorm.DB, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		OTP:       NewOTPRepository(db, log),
		Complaint: NewComplaintRepository(db, log),
		SOS:       NewSOSRepository(db, log),
		Schema:    NewSchemaRepository(db, log),
	}
}
