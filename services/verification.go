package services

import (
	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/notifier"
	"gorm.io/gorm"
)

// VerificationGatekeeper decides at creation time whether a booking can
// be auto-trusted or must close a confirmation loop first. First-time
// or not-yet-confirmed contacts prove reachability via the verify link;
// repeat trusted customers skip the friction.
type VerificationGatekeeper struct{}

func NewVerificationGatekeeper() *VerificationGatekeeper {
	return &VerificationGatekeeper{}
}

// DecideReservation applies two rules, the open-reservation rule taking
// precedence: a customer with any unfinished reservation other than the
// new one gets a duplicate-open-booking confirmation; otherwise a prior
// verified reservation auto-trusts the new one.
func (vg *VerificationGatekeeper) DecideReservation(db *gorm.DB, customerID, excludeID uint) (bool, notifier.Kind, error) {
	var open int64
	if err := db.Model(&models.Reservation{}).
		Where("customer_id = ? AND id <> ? AND status <> ?",
			customerID, excludeID, models.ReservationFinished).
		Count(&open).Error; err != nil {
		return false, "", err
	}
	if open > 0 {
		return false, notifier.DuplicateOpenBooking, nil
	}

	var trusted int64
	if err := db.Model(&models.Reservation{}).
		Where("customer_id = ? AND id <> ? AND verified = ?", customerID, excludeID, true).
		Count(&trusted).Error; err != nil {
		return false, "", err
	}
	if trusted > 0 {
		return true, notifier.BookingConfirmed, nil
	}
	return false, notifier.VerificationRequired, nil
}

// DecideOrder auto-trusts only customers with a prior verified AND
// completed order.
func (vg *VerificationGatekeeper) DecideOrder(db *gorm.DB, customerID, excludeID uint) (bool, notifier.Kind, error) {
	var trusted int64
	if err := db.Model(&models.Order{}).
		Where("customer_id = ? AND id <> ? AND verified = ? AND status = ?",
			customerID, excludeID, true, models.OrderCompleted).
		Count(&trusted).Error; err != nil {
		return false, "", err
	}
	if trusted > 0 {
		return true, notifier.BookingConfirmed, nil
	}
	return false, notifier.VerificationRequired, nil
}
