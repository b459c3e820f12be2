package models

import "time"

const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"

	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

// Order.TotalPrice is always computed from the line items plus the
// delivery fee; it is never taken from the caller.
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	RestaurantID uint        `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant  `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CustomerID   *uint       `gorm:"index" json:"customer_id,omitempty"`
	Customer     *Customer   `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"customer,omitempty"`
	Status       string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalPrice   float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_price"`
	OrderType    string      `gorm:"type:varchar(20);not null;default:'delivery'" json:"order_type"`
	DeliveryFee  float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"delivery_fee"`
	OrderNotes   string      `gorm:"type:text" json:"order_notes"`
	Allergy      string      `gorm:"type:text" json:"allergy"`
	Verified     bool        `gorm:"not null;default:false" json:"verified"`
	OrderItems   []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}
