package models

import "time"

// Item is the catalog entry an order line snapshots from. Discount is a
// percentage applied to the line subtotal at order time.
type Item struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ItemName     string     `gorm:"type:varchar(255);not null" json:"item_name"`
	Price        float64    `gorm:"type:decimal(10,2);not null" json:"price"`
	Discount     float64    `gorm:"type:decimal(5,2);not null;default:0.00" json:"discount"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
