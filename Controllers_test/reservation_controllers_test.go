package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trusttaste/booking-core/models"
)

func reservationPayload(tableID uint, phone, from, to string) map[string]interface{} {
	return map[string]interface{}{
		"table_id":      tableID,
		"date":          "2025-11-01",
		"from_time":     from,
		"to_time":       to,
		"guest_no":      2,
		"customer_name": "Rahim",
		"phone":         phone,
	}
}

func TestCreateReservationPublicEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	table := env.seedTable(t, "A1")

	url := fmt.Sprintf("/public/restaurants/%d/reservations", env.Restaurant.ID)
	w := env.request(t, "POST", url, reservationPayload(table.ID, "+8801755555555", "18:00:00", "19:00:00"))
	assert.Equal(t, http.StatusCreated, w.Code)

	response := decodeResponse(t, w)
	assert.Equal(t, "Reservation created", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["verified"])
	assert.Equal(t, models.ReservationReservedStatus, data["status"])
	assert.NotNil(t, data["customer_id"])
}

func TestCreateReservationConflictReturns409(t *testing.T) {
	env := setupTestEnv(t)
	table := env.seedTable(t, "A1")

	w := env.request(t, "POST", "/reservations", reservationPayload(table.ID, "+8801755555555", "18:00:00", "19:00:00"))
	assert.Equal(t, http.StatusCreated, w.Code)

	// starts inside the turnover buffer after the existing booking
	w = env.request(t, "POST", "/reservations", reservationPayload(table.ID, "+8801766666666", "19:05:00", "20:00:00"))
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	env.DB.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateReservationValidationReturns400(t *testing.T) {
	env := setupTestEnv(t)
	table := env.seedTable(t, "A1")

	payload := reservationPayload(table.ID, "+8801755555555", "19:00:00", "18:00:00")
	w := env.request(t, "POST", "/reservations", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload = reservationPayload(999, "+8801755555555", "18:00:00", "19:00:00")
	w = env.request(t, "POST", "/reservations", payload)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAllReservationsWithFilters(t *testing.T) {
	env := setupTestEnv(t)
	table := env.seedTable(t, "A1")

	env.request(t, "POST", "/reservations", reservationPayload(table.ID, "+8801755555555", "18:00:00", "19:00:00"))
	other := reservationPayload(table.ID, "+8801766666666", "12:00:00", "13:00:00")
	other["date"] = "2025-11-02"
	env.request(t, "POST", "/reservations", other)

	w := env.request(t, "GET", "/reservations", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.Len(t, response["data"].([]interface{}), 2)

	w = env.request(t, "GET", "/reservations?date=2025-11-02", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response = decodeResponse(t, w)
	assert.Len(t, response["data"].([]interface{}), 1)

	w = env.request(t, "GET", "/reservations?status=finished", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response = decodeResponse(t, w)
	assert.Empty(t, response["data"])
}

func TestUpdateReservationStatus(t *testing.T) {
	env := setupTestEnv(t)
	table := env.seedTable(t, "A1")

	w := env.request(t, "POST", "/reservations", reservationPayload(table.ID, "+8801755555555", "18:00:00", "19:00:00"))
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeResponse(t, w)["data"].(map[string]interface{})
	id := uint(created["id"].(float64))

	w = env.request(t, "PATCH", fmt.Sprintf("/reservations/%d", id), map[string]string{"status": models.ReservationFinished})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, models.ReservationFinished, data["status"])

	w = env.request(t, "PATCH", fmt.Sprintf("/reservations/%d", id), map[string]string{"status": "eaten"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteReservation(t *testing.T) {
	env := setupTestEnv(t)
	table := env.seedTable(t, "A1")

	w := env.request(t, "POST", "/reservations", reservationPayload(table.ID, "+8801755555555", "18:00:00", "19:00:00"))
	created := decodeResponse(t, w)["data"].(map[string]interface{})
	id := uint(created["id"].(float64))

	w = env.request(t, "DELETE", fmt.Sprintf("/reservations/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, "GET", fmt.Sprintf("/reservations/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
