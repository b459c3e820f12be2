package services

import (
	"time"

	"github.com/trusttaste/booking-core/events"
	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/utils"
	"gorm.io/gorm"
)

// AvailabilityService projects a table's coarse reservation status for
// "now" from its reservations. The persisted status is a cache only;
// conflict validation never reads it.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// RefreshStatus recomputes the table's status for the given date as of
// the given instant and persists it only when it changed. Idempotent
// for a fixed asOf.
func (as *AvailabilityService) RefreshStatus(restaurant *models.Restaurant, table *models.Table, date string, asOf time.Time) (string, error) {
	loc := restaurant.Location()
	asOf = asOf.In(loc)

	var reservations []models.Reservation
	if err := as.DB.
		Where("table_id = ? AND date = ? AND status IN ?",
			table.ID, date, []string{models.ReservationReservedStatus, models.ReservationWalkIn}).
		Find(&reservations).Error; err != nil {
		return "", err
	}

	status := models.TableAvailable
	for i := range reservations {
		r := &reservations[i]
		if r.IsFullDay() {
			status = models.TableReserved
			break
		}

		from, err := utils.CombineDateClock(date, r.FromTime, loc)
		if err != nil {
			continue
		}
		to, err := utils.CombineDateClock(date, r.ToTime, loc)
		if err != nil {
			continue
		}

		windowFrom := from.Add(-restaurant.BufferBefore())
		windowTo := to.Add(restaurant.BufferAfter())
		if !asOf.Before(windowFrom) && !asOf.After(windowTo) {
			status = models.TableReserved
			break
		}
	}

	if table.ReservationStatus != status {
		if err := as.DB.Model(table).Update("reservation_status", status).Error; err != nil {
			return status, err
		}
		table.ReservationStatus = status
		events.BroadcastTableUpdate(*table)
		utils.InfoLogger.Printf("Table %s status updated to '%s'", table.TableName, status)
	}

	return status, nil
}

// RefreshAll projects every table in the slice against a single asOf
// instant, so one listing request cannot observe inconsistent reads
// across tables.
func (as *AvailabilityService) RefreshAll(restaurant *models.Restaurant, tables []models.Table, date string, asOf time.Time) {
	for i := range tables {
		if _, err := as.RefreshStatus(restaurant, &tables[i], date, asOf); err != nil {
			utils.ErrorLogger.Printf("Error refreshing table %d status: %v", tables[i].ID, err)
		}
	}
}
