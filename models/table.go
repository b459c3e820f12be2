package models

import "time"

const (
	TableActive   = "active"
	TableInactive = "inactive"

	TableAvailable = "available"
	TableReserved  = "reserved"
)

// Table's ReservationStatus is a projection over its reservations. It
// is refreshed lazily and must never be used to validate a new booking.
type Table struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	RestaurantID      uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant        Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TableName         string     `gorm:"type:varchar(255);not null" json:"table_name"`
	Status            string     `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	ReservationStatus string     `gorm:"type:varchar(20);not null;default:'available'" json:"reservation_status"`
	TotalSeats        int        `gorm:"not null" json:"total_seats"`
	CreatedAt         time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null" json:"updated_at"`
}
