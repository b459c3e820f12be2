package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trusttaste/booking-core/services"
	"gorm.io/gorm"
)

// VerifyController serves the unauthenticated confirmation links
// embedded in outbound emails. The endpoints are idempotent because
// mail clients pre-fetch links.
type VerifyController struct {
	DB      *gorm.DB
	Booking *services.BookingService
}

func NewVerifyController(db *gorm.DB, booking *services.BookingService) *VerifyController {
	return &VerifyController{DB: db, Booking: booking}
}

// VerifyReservation -> GET /public/reservations/verify/:reservation_id
func (vc *VerifyController) VerifyReservation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("reservation_id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid reservation id")
		return
	}

	reservation, err := vc.Booking.VerifyReservation(0, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.String(http.StatusNotFound, "Reservation not found")
			return
		}
		c.String(http.StatusInternalServerError, "Something went wrong, please try again later")
		return
	}

	name := ""
	if reservation.Customer != nil {
		name = reservation.Customer.Name
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, confirmationPage(
		"Reservation Confirmed",
		fmt.Sprintf("Thank you%s! Your reservation on %s from %s to %s is confirmed.",
			withName(name), reservation.Date, reservation.FromTime, reservation.ToTime)))
}

// VerifyOrder -> GET /public/orders/verify/:order_id
func (vc *VerifyController) VerifyOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := vc.Booking.VerifyOrder(0, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.String(http.StatusNotFound, "Order not found")
			return
		}
		c.String(http.StatusInternalServerError, "Something went wrong, please try again later")
		return
	}

	name := ""
	if order.Customer != nil {
		name = order.Customer.Name
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, confirmationPage(
		"Order Confirmed",
		fmt.Sprintf("Thank you%s! Your order #%d (total %.2f) is confirmed.",
			withName(name), order.ID, order.TotalPrice)))
}

func withName(name string) string {
	if name == "" {
		return ""
	}
	return " " + name
}

func confirmationPage(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body style="font-family: Arial, sans-serif; text-align: center; padding: 40px;">
<h2>%s</h2>
<p>%s</p>
<p>We look forward to welcoming you!</p>
</body>
</html>`, title, title, body)
}
