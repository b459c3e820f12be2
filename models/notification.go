package models

import "time"

// Notification is a best-effort log of dispatched booking events, kept
// for the back-office dashboard. Failing to write it never rolls back
// the booking.
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Kind        string    `gorm:"type:varchar(50);not null" json:"kind"`
	BookingKind string    `gorm:"type:varchar(20);not null" json:"booking_kind"`
	BookingID   uint      `gorm:"not null;index" json:"booking_id"`
	Message     string    `gorm:"type:text" json:"message"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
