package models

import "time"

const (
	ReservationReservedStatus = "reserved"
	ReservationWalkIn         = "walk-in"
	ReservationFinished       = "finished"
	ReservationCancelled      = "cancelled"
)

// A reservation spanning exactly FullDayFrom..FullDayTo marks the table
// out of service for that date and blocks every slot unconditionally.
const (
	FullDayFrom = "00:00:00"
	FullDayTo   = "23:59:59"
)

type Reservation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TableID    uint      `gorm:"not null;index:idx_reservations_table_date" json:"table_id"`
	Table      Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"customer,omitempty"`
	GuestNo    int       `gorm:"not null" json:"guest_no"`
	Status     string    `gorm:"type:varchar(20);not null;default:'reserved'" json:"status"`
	Date       string    `gorm:"type:varchar(10);not null;index:idx_reservations_table_date" json:"date"`
	FromTime   string    `gorm:"type:varchar(8);not null" json:"from_time"`
	ToTime     string    `gorm:"type:varchar(8);not null" json:"to_time"`
	Allergy    string    `gorm:"type:text" json:"allergy"`
	Verified   bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// Active reports whether the reservation still occupies its slot.
// Finished and cancelled reservations never conflict with new requests.
func (r *Reservation) Active() bool {
	return r.Status == ReservationReservedStatus || r.Status == ReservationWalkIn
}

func (r *Reservation) IsFullDay() bool {
	return r.FromTime == FullDayFrom && r.ToTime == FullDayTo
}
