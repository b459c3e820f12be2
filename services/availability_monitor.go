package services

import (
	"time"

	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/utils"
	"gorm.io/gorm"
)

// AvailabilityMonitor periodically re-projects today's table statuses
// so dashboards stay current between listing requests. It only writes
// the cached projection; booking validation never depends on it.
type AvailabilityMonitor struct {
	DB           *gorm.DB
	Availability *AvailabilityService
	StopChan     chan struct{}
	Interval     time.Duration
}

func NewAvailabilityMonitor(db *gorm.DB) *AvailabilityMonitor {
	return &AvailabilityMonitor{
		DB:           db,
		Availability: NewAvailabilityService(db),
		StopChan:     make(chan struct{}),
		Interval:     30 * time.Second,
	}
}

func (am *AvailabilityMonitor) Start() {
	go func() {
		ticker := time.NewTicker(am.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				am.refresh()
			case <-am.StopChan:
				return
			}
		}
	}()
}

func (am *AvailabilityMonitor) Stop() {
	close(am.StopChan)
}

func (am *AvailabilityMonitor) refresh() {
	var restaurants []models.Restaurant
	if err := am.DB.Find(&restaurants).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching restaurants: %v", err)
		return
	}

	for i := range restaurants {
		restaurant := &restaurants[i]

		var tables []models.Table
		if err := am.DB.Where("restaurant_id = ? AND status = ?", restaurant.ID, models.TableActive).
			Find(&tables).Error; err != nil {
			utils.ErrorLogger.Printf("Error fetching tables for restaurant %d: %v", restaurant.ID, err)
			continue
		}

		// Capture asOf once per restaurant so all its tables see the
		// same instant.
		asOf := time.Now().In(restaurant.Location())
		date := asOf.Format(utils.DateLayout)
		am.Availability.RefreshAll(restaurant, tables, date, asOf)
	}
}
