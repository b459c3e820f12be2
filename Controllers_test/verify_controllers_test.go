package Controllers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/notifier"
)

func TestVerifyReservationLinkIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	table := env.seedTable(t, "A1")

	w := env.request(t, "POST", "/reservations", reservationPayload(table.ID, "+8801755555555", "18:00:00", "19:00:00"))
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeResponse(t, w)["data"].(map[string]interface{})
	id := uint(created["id"].(float64))
	assert.Equal(t, false, created["verified"])

	url := fmt.Sprintf("/public/reservations/verify/%d", id)

	// mail clients pre-fetch links, so hitting it twice must be safe
	for i := 0; i < 2; i++ {
		w = env.request(t, "GET", url, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), "Reservation Confirmed"))
	}

	var reservation models.Reservation
	assert.NoError(t, env.DB.First(&reservation, id).Error)
	assert.True(t, reservation.Verified)

	var confirmed int64
	env.DB.Model(&models.Notification{}).
		Where("kind = ? AND booking_kind = ? AND booking_id = ?",
			string(notifier.BookingConfirmed), notifier.BookingKindReservation, id).
		Count(&confirmed)
	assert.Equal(t, int64(1), confirmed)
}

func TestVerifyOrderLink(t *testing.T) {
	env := setupTestEnv(t)
	item := env.seedItem(t, "Beef Tehari", 8, 0)

	w := env.request(t, "POST", "/orders", orderPayload(item.ID, "+8801755555555"))
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeResponse(t, w)["data"].(map[string]interface{})
	id := uint(created["id"].(float64))

	w = env.request(t, "GET", fmt.Sprintf("/public/orders/verify/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Order Confirmed"))

	var order models.Order
	assert.NoError(t, env.DB.First(&order, id).Error)
	assert.True(t, order.Verified)
}

func TestVerifyBadAndUnknownIDs(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, "GET", "/public/reservations/verify/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, "GET", "/public/reservations/verify/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, "GET", "/public/orders/verify/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifiedCustomerSkipsFrictionNextTime(t *testing.T) {
	env := setupTestEnv(t)
	table := env.seedTable(t, "A1")

	w := env.request(t, "POST", "/reservations", reservationPayload(table.ID, "+8801755555555", "18:00:00", "19:00:00"))
	created := decodeResponse(t, w)["data"].(map[string]interface{})
	id := uint(created["id"].(float64))

	env.request(t, "GET", fmt.Sprintf("/public/reservations/verify/%d", id), nil)

	// close out the first visit, then book again
	env.request(t, "PATCH", fmt.Sprintf("/reservations/%d", id), map[string]string{"status": models.ReservationFinished})

	payload := reservationPayload(table.ID, "+8801755555555", "18:00:00", "19:00:00")
	payload["date"] = "2025-11-08"
	w = env.request(t, "POST", "/reservations", payload)
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["verified"])
}
