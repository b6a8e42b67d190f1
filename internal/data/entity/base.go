package entity

import "time"

// Base is shared by the append-only tables: an auto-increment id and the
// insertion time. Rows are never updated, so there is no updated_at.
type Base struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{
		&User{},
		&OTP{},
		&Complaint{},
		&SOSAlert{},
	}
}
