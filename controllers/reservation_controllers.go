package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trusttaste/booking-core/events"
	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/services"
	"github.com/trusttaste/booking-core/utils"
	"gorm.io/gorm"
)

type ReservationController struct {
	DB      *gorm.DB
	Booking *services.BookingService
}

func NewReservationController(db *gorm.DB, booking *services.BookingService) *ReservationController {
	return &ReservationController{DB: db, Booking: booking}
}

// CreateReservation -> resolve customer, validate the slot and persist
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	restaurant, err := currentRestaurant(c, rc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var in services.ReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Booking.CreateReservation(restaurant, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// GetAllReservations -> list the restaurant's reservations, optionally
// filtered by date and status
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	restaurant, err := currentRestaurant(c, rc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	query := rc.DB.Preload("Customer").
		Joins("JOIN tables ON tables.id = reservations.table_id").
		Where("tables.restaurant_id = ?", restaurant.ID)

	if date := c.Query("date"); date != "" {
		if !utils.ValidDate(date) {
			utils.RespondError(c, http.StatusBadRequest, &services.ValidationError{Msg: "invalid date format, please use YYYY-MM-DD"})
			return
		}
		query = query.Where("reservations.date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("reservations.status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Order("reservations.date, reservations.from_time").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetReservationByID -> detail for one reservation
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	restaurant, err := currentRestaurant(c, rc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var reservation models.Reservation
	if err := rc.DB.Preload("Customer").
		Joins("JOIN tables ON tables.id = reservations.table_id").
		Where("tables.restaurant_id = ?", restaurant.ID).
		First(&reservation, "reservations.id = ?", c.Param("reservation_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// UpdateReservationStatus -> lifecycle transitions (finished,
// cancelled, walk-in seating)
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	restaurant, err := currentRestaurant(c, rc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch body.Status {
	case models.ReservationReservedStatus, models.ReservationWalkIn,
		models.ReservationFinished, models.ReservationCancelled:
	default:
		utils.RespondError(c, http.StatusBadRequest, &services.ValidationError{Msg: "unknown reservation status"})
		return
	}

	var reservation models.Reservation
	if err := rc.DB.
		Joins("JOIN tables ON tables.id = reservations.table_id").
		Where("tables.restaurant_id = ?", restaurant.ID).
		First(&reservation, "reservations.id = ?", c.Param("reservation_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	reservation.Status = body.Status
	if err := rc.DB.Save(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastReservationUpdate(reservation)
	utils.InfoLogger.Printf("Reservation %d status changed to %s", reservation.ID, reservation.Status)
	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", reservation)
}

// DeleteReservation -> remove a reservation entirely
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	restaurant, err := currentRestaurant(c, rc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var reservation models.Reservation
	if err := rc.DB.
		Joins("JOIN tables ON tables.id = reservations.table_id").
		Where("tables.restaurant_id = ?", restaurant.ID).
		First(&reservation, "reservations.id = ?", c.Param("reservation_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := rc.DB.Delete(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d deleted", reservation.ID)
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", gin.H{
		"id": reservation.ID,
	})
}
