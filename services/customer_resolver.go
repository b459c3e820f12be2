package services

import (
	"errors"

	"github.com/trusttaste/booking-core/models"
	"gorm.io/gorm"
)

// CustomerResolver finds-or-creates the canonical customer record for a
// phone number and merges newly supplied contact fields into it.
type CustomerResolver struct{}

func NewCustomerResolver() *CustomerResolver {
	return &CustomerResolver{}
}

// Resolve looks up by exact phone match. Supplied non-empty fields
// overwrite the stored ones; empty inputs never blank an existing
// value. A duplicate-create race is repaired by re-fetching the
// surviving row.
func (cr *CustomerResolver) Resolve(db *gorm.DB, phone, name, email, address string) (*models.Customer, error) {
	var customer models.Customer
	err := db.Where("phone = ?", phone).First(&customer).Error
	if err == nil {
		return cr.merge(db, &customer, name, email, address)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = models.Customer{
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: address,
	}
	if createErr := db.Create(&customer).Error; createErr != nil {
		// Lost a concurrent create for the same phone: the unique index
		// guarantees a single surviving row, so fall back to it.
		if fetchErr := db.Where("phone = ?", phone).First(&customer).Error; fetchErr != nil {
			return nil, createErr
		}
		return cr.merge(db, &customer, name, email, address)
	}
	return &customer, nil
}

func (cr *CustomerResolver) merge(db *gorm.DB, customer *models.Customer, name, email, address string) (*models.Customer, error) {
	updates := map[string]interface{}{}
	if name != "" && name != customer.Name {
		updates["name"] = name
		customer.Name = name
	}
	if email != "" && email != customer.Email {
		updates["email"] = email
		customer.Email = email
	}
	if address != "" && address != customer.Address {
		updates["address"] = address
		customer.Address = address
	}
	if len(updates) == 0 {
		return customer, nil
	}
	if err := db.Model(customer).Updates(updates).Error; err != nil {
		return nil, err
	}
	return customer, nil
}
