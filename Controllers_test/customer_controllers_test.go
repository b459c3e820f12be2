package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trusttaste/booking-core/models"
)

func seedCustomer(t *testing.T, env *testEnv, name, phone string) *models.Customer {
	t.Helper()
	customer := models.Customer{Name: name, Phone: phone, Email: name + "@example.com"}
	if err := env.DB.Create(&customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return &customer
}

func TestGetAllCustomersWithSearch(t *testing.T) {
	env := setupTestEnv(t)
	seedCustomer(t, env, "Rahim", "+8801755555555")
	seedCustomer(t, env, "Karim", "+8801766666666")

	w := env.request(t, "GET", "/customers", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.Len(t, response["data"].([]interface{}), 2)

	w = env.request(t, "GET", "/customers?phone=%2B8801755555555", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response = decodeResponse(t, w)
	data := response["data"].([]interface{})
	if assert.Len(t, data, 1) {
		assert.Equal(t, "Rahim", data[0].(map[string]interface{})["name"])
	}

	w = env.request(t, "GET", "/customers?name=Kar", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response = decodeResponse(t, w)
	assert.Len(t, response["data"].([]interface{}), 1)
}

func TestUpdateCustomerKeepsPhone(t *testing.T) {
	env := setupTestEnv(t)
	customer := seedCustomer(t, env, "Rahim", "+8801755555555")

	w := env.request(t, "PATCH", fmt.Sprintf("/customers/%d", customer.ID), map[string]string{
		"name":  "Rahim Uddin",
		"phone": "+8801799999999",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Customer
	assert.NoError(t, env.DB.First(&stored, customer.ID).Error)
	assert.Equal(t, "Rahim Uddin", stored.Name)
	assert.Equal(t, "+8801755555555", stored.Phone)
}

func TestDeleteCustomerKeepsBookings(t *testing.T) {
	env := setupTestEnv(t)
	table := env.seedTable(t, "A1")

	w := env.request(t, "POST", "/reservations", reservationPayload(table.ID, "+8801755555555", "18:00:00", "19:00:00"))
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeResponse(t, w)["data"].(map[string]interface{})
	reservationID := uint(created["id"].(float64))
	customerID := uint(created["customer_id"].(float64))

	w = env.request(t, "DELETE", fmt.Sprintf("/customers/%d", customerID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// the reservation row survives without its customer reference
	var reservation models.Reservation
	assert.NoError(t, env.DB.First(&reservation, reservationID).Error)
	assert.Nil(t, reservation.CustomerID)
}

func TestGetAllNotifications(t *testing.T) {
	env := setupTestEnv(t)
	table := env.seedTable(t, "A1")

	env.request(t, "POST", "/reservations", reservationPayload(table.ID, "+8801755555555", "18:00:00", "19:00:00"))

	w := env.request(t, "GET", "/notifications", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	data := response["data"].([]interface{})
	if assert.Len(t, data, 1) {
		entry := data[0].(map[string]interface{})
		assert.Equal(t, "verification_required", entry["kind"])
	}

	w = env.request(t, "GET", "/notifications?kind=booking_confirmed", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response = decodeResponse(t, w)
	assert.Empty(t, response["data"])
}
