package entity

const ComplaintStatusPending = "Pending"

type Complaint struct {
	Base
	Title       string  `gorm:"not null"`
	Description string  `gorm:"type:text;not null"`
	CrimeType   string  `gorm:"size:64;not null"`
	UserEmail   string  `gorm:"size:255;index;not null"`
	ImagePath   *string `gorm:"type:text"`
	VideoPath   *string `gorm:"type:text"`
	Status      string  `gorm:"size:32;not null;default:Pending"`
}
