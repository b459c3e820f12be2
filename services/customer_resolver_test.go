package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trusttaste/booking-core/models"
)

func TestResolveCreatesNewCustomer(t *testing.T) {
	db := setupTestDB(t)
	cr := NewCustomerResolver()

	customer, err := cr.Resolve(db, "+8801711111111", "Rahim", "rahim@example.com", "Road 5, Dhanmondi")
	assert.NoError(t, err)
	assert.NotZero(t, customer.ID)
	assert.Equal(t, "Rahim", customer.Name)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResolveMergesNonEmptyFields(t *testing.T) {
	db := setupTestDB(t)
	cr := NewCustomerResolver()

	first, err := cr.Resolve(db, "+8801711111111", "Rahim", "rahim@example.com", "")
	assert.NoError(t, err)

	// empty email must not blank the stored one
	second, err := cr.Resolve(db, "+8801711111111", "Rahim Uddin", "", "Road 5, Dhanmondi")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Rahim Uddin", second.Name)
	assert.Equal(t, "rahim@example.com", second.Email)
	assert.Equal(t, "Road 5, Dhanmondi", second.Address)

	var stored models.Customer
	assert.NoError(t, db.First(&stored, first.ID).Error)
	assert.Equal(t, "Rahim Uddin", stored.Name)
	assert.Equal(t, "rahim@example.com", stored.Email)
}

func TestResolveSingleRowPerPhone(t *testing.T) {
	db := setupTestDB(t)
	cr := NewCustomerResolver()

	for i := 0; i < 3; i++ {
		_, err := cr.Resolve(db, "+8801722222222", "Karim", "", "")
		assert.NoError(t, err)
	}

	var count int64
	db.Model(&models.Customer{}).Where("phone = ?", "+8801722222222").Count(&count)
	assert.Equal(t, int64(1), count)
}
