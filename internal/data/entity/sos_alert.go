package entity

// SOSAlert is a location ping. Coordinates are kept as the client sent them.
type SOSAlert struct {
	Base
	UserEmail *string `gorm:"size:255;index"`
	Lat       string  `gorm:"type:text"`
	Long      string  `gorm:"type:text"`
}

func (SOSAlert) TableName() string { return "sos_alerts" }
