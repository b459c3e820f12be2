package models

import "time"

// OrderItem snapshots the catalog item's name, price and discount at
// order time. The snapshot is immutable even if the catalog item later
// changes.
type OrderItem struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	OrderID             uint      `gorm:"not null;index" json:"order_id"`
	Order               Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ItemID              uint      `gorm:"not null" json:"item_id"`
	ItemName            string    `gorm:"type:varchar(255);not null" json:"item_name"`
	Price               float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Discount            float64   `gorm:"type:decimal(5,2);not null;default:0.00" json:"discount"`
	Quantity            int       `gorm:"not null" json:"quantity"`
	Extras              string    `gorm:"type:text" json:"extras"`
	ExtrasPrice         float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"extras_price"`
	SpecialInstructions string    `gorm:"type:text" json:"special_instructions"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
}

// LineTotal applies the snapshotted discount percentage to the quantity
// subtotal and adds the extras price.
func (oi *OrderItem) LineTotal() float64 {
	total := float64(oi.Quantity) * oi.Price
	if oi.Discount > 0 {
		total -= total * oi.Discount / 100
	}
	return total + oi.ExtrasPrice
}
