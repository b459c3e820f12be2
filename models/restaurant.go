package models

import "time"

// Restaurant holds the booking configuration that every time comparison
// threads through: the IANA timezone and the turnover buffers around a
// reservation window.
type Restaurant struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Address         string    `gorm:"type:text" json:"address"`
	Phone           string    `gorm:"type:varchar(20)" json:"phone"`
	Email           string    `gorm:"type:varchar(255)" json:"email"`
	Timezone        string    `gorm:"type:varchar(64);not null;default:'Asia/Dhaka'" json:"timezone"`
	BufferBeforeMin int       `gorm:"not null;default:60" json:"buffer_before_min"`
	BufferAfterMin  int       `gorm:"not null;default:10" json:"buffer_after_min"`
	DeliveryFee     float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"delivery_fee"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// Location resolves the configured timezone, falling back to UTC when
// the name cannot be loaded.
func (r *Restaurant) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (r *Restaurant) BufferBefore() time.Duration {
	return time.Duration(r.BufferBeforeMin) * time.Minute
}

func (r *Restaurant) BufferAfter() time.Duration {
	return time.Duration(r.BufferAfterMin) * time.Minute
}
