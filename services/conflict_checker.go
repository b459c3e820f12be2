package services

import (
	"time"

	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/utils"
	"gorm.io/gorm"
)

// ConflictChecker decides whether a requested window collides with any
// existing non-cancelled booking on the same table and date. It always
// recomputes from the reservation rows; the table's cached status is
// never consulted here.
type ConflictChecker struct{}

func NewConflictChecker() *ConflictChecker {
	return &ConflictChecker{}
}

// WindowsCollide applies the asymmetric turnover buffer: a new booking
// must not start before bufferAfter has passed since an existing one
// ends, and must not run into the bufferBefore ahead of an existing
// start. The buffers attach to the existing window, so the roles are
// not interchangeable unless the two buffers are equal.
func WindowsCollide(reqFrom, reqTo, existFrom, existTo time.Time, bufferBefore, bufferAfter time.Duration) bool {
	return reqFrom.Before(existTo.Add(bufferAfter)) && reqTo.After(existFrom.Add(-bufferBefore))
}

// FindConflict returns the reservation blocking the requested window,
// or nil when the slot is free. A full-day marker blocks the entire
// date unconditionally.
func (cc *ConflictChecker) FindConflict(db *gorm.DB, restaurant *models.Restaurant, tableID uint, date, fromTime, toTime string) (*models.Reservation, error) {
	loc := restaurant.Location()

	reqFrom, err := utils.CombineDateClock(date, fromTime, loc)
	if err != nil {
		return nil, validationf("%v", err)
	}
	reqTo, err := utils.CombineDateClock(date, toTime, loc)
	if err != nil {
		return nil, validationf("%v", err)
	}

	var reservations []models.Reservation
	if err := db.
		Where("table_id = ? AND date = ? AND status IN ?",
			tableID, date, []string{models.ReservationReservedStatus, models.ReservationWalkIn}).
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	for i := range reservations {
		r := &reservations[i]
		if r.IsFullDay() {
			return r, nil
		}

		existFrom, err := utils.CombineDateClock(date, r.FromTime, loc)
		if err != nil {
			continue
		}
		existTo, err := utils.CombineDateClock(date, r.ToTime, loc)
		if err != nil {
			continue
		}

		if WindowsCollide(reqFrom, reqTo, existFrom, existTo, restaurant.BufferBefore(), restaurant.BufferAfter()) {
			return r, nil
		}
	}

	return nil, nil
}
