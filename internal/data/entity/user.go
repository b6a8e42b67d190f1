package entity

type User struct {
	Base
	Name          *string `gorm:"size:255"`
	Email         string  `gorm:"size:255;uniqueIndex;not null"`
	AadhaarNumber *string `gorm:"size:32"`
	PasswordHash  string  `gorm:"column:hashed_password;not null"`
}
