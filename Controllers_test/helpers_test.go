package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trusttaste/booking-core/controllers"
	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/notifier"
	"github.com/trusttaste/booking-core/services"
	"github.com/trusttaste/booking-core/utils"
)

type testEnv struct {
	DB         *gorm.DB
	Restaurant *models.Restaurant
	Booking    *services.BookingService
	Router     *gin.Engine
}

// setupTestEnv wires an in-memory SQLite database and the full route
// table, with a stub auth middleware standing in for the JWT layer.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:ctrl_%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
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

	booking := services.NewBookingService(db, notifier.NewLogNotifier(utils.InfoLogger), "http://localhost:8080")

	router := gin.New()

	tableCtrl := controllers.NewTableController(db, booking)
	reservationCtrl := controllers.NewReservationController(db, booking)
	orderCtrl := controllers.NewOrderController(db, booking)
	customerCtrl := controllers.NewCustomerController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	verifyCtrl := controllers.NewVerifyController(db, booking)

	public := router.Group("/public")
	{
		public.POST("/restaurants/:restaurant_id/reservations", reservationCtrl.CreateReservation)
		public.POST("/restaurants/:restaurant_id/orders", orderCtrl.CreateOrder)
		public.GET("/reservations/verify/:reservation_id", verifyCtrl.VerifyReservation)
		public.GET("/orders/verify/:order_id", verifyCtrl.VerifyOrder)
	}

	auth := router.Group("/")
	auth.Use(func(c *gin.Context) {
		c.Set("userID", uint(1))
		c.Set("restaurantID", restaurant.ID)
		c.Set("role", "admin")
		c.Next()
	})
	{
		auth.POST("/tables", tableCtrl.CreateTable)
		auth.GET("/tables", tableCtrl.GetAllTables)
		auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
		auth.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
		auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
		auth.POST("/tables/:table_id/out-of-service", tableCtrl.MarkOutOfService)

		auth.POST("/reservations", reservationCtrl.CreateReservation)
		auth.GET("/reservations", reservationCtrl.GetAllReservations)
		auth.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
		auth.PATCH("/reservations/:reservation_id", reservationCtrl.UpdateReservationStatus)
		auth.DELETE("/reservations/:reservation_id", reservationCtrl.DeleteReservation)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetAllOrders)
		auth.GET("/orders/by-phone", orderCtrl.GetOrdersByPhone)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.PATCH("/orders/:order_id", orderCtrl.UpdateOrderStatus)

		auth.GET("/customers", customerCtrl.GetAllCustomers)
		auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
		auth.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)
		auth.DELETE("/customers/:customer_id", customerCtrl.DeleteCustomer)

		auth.GET("/notifications", notificationCtrl.GetAllNotifications)
	}

	return &testEnv{DB: db, Restaurant: &restaurant, Booking: booking, Router: router}
}

func (env *testEnv) seedTable(t *testing.T, name string) *models.Table {
	t.Helper()
	table := models.Table{
		RestaurantID:      env.Restaurant.ID,
		TableName:         name,
		Status:            models.TableActive,
		ReservationStatus: models.TableAvailable,
		TotalSeats:        4,
	}
	if err := env.DB.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return &table
}

func (env *testEnv) seedItem(t *testing.T, name string, price, discount float64) *models.Item {
	t.Helper()
	item := models.Item{
		RestaurantID: env.Restaurant.ID,
		ItemName:     name,
		Price:        price,
		Discount:     discount,
	}
	if err := env.DB.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return &item
}

func (env *testEnv) request(t *testing.T, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return response
}
