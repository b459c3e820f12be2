package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/notifier"
	"github.com/trusttaste/booking-core/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database scoped to the test so
// cases stay independent.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.Table{},
		&models.Customer{},
		&models.Item{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB) *models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{
		Name:            "Test Bistro",
		Timezone:        "UTC",
		BufferBeforeMin: 60,
		BufferAfterMin:  10,
		DeliveryFee:     2,
	}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}
	return &restaurant
}

func seedTable(t *testing.T, db *gorm.DB, restaurantID uint) *models.Table {
	t.Helper()
	table := models.Table{
		RestaurantID:      restaurantID,
		TableName:         "T7",
		Status:            models.TableActive,
		ReservationStatus: models.TableAvailable,
		TotalSeats:        4,
	}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return &table
}

// fakeNotifier records every dispatched event for assertions.
type fakeNotifier struct {
	mu     sync.Mutex
	events []notifier.Event
}

func (fn *fakeNotifier) Notify(event notifier.Event) error {
	fn.mu.Lock()
	defer fn.mu.Unlock()
	fn.events = append(fn.events, event)
	return nil
}

func (fn *fakeNotifier) byKind(kind notifier.Kind) []notifier.Event {
	fn.mu.Lock()
	defer fn.mu.Unlock()
	var out []notifier.Event
	for _, e := range fn.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
