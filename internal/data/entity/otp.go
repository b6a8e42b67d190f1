package entity

import "time"

// OTP holds the single live code of an email address. Requesting a new code
// overwrites the row; verified rows are kept.
type OTP struct {
	Email      string    `gorm:"primaryKey;size:255"`
	Code       string    `gorm:"column:otp;size:16;not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	IsVerified bool      `gorm:"not null"`
}

func (OTP) TableName() string { return "otps" }
