package router

import (
	"github.com/gin-gonic/gin"
	"github.com/trusttaste/booking-core/controllers"
	"github.com/trusttaste/booking-core/middlewares"
	"github.com/trusttaste/booking-core/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, booking *services.BookingService) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	tableCtrl := controllers.NewTableController(db, booking)
	reservationCtrl := controllers.NewReservationController(db, booking)
	orderCtrl := controllers.NewOrderController(db, booking)
	customerCtrl := controllers.NewCustomerController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	verifyCtrl := controllers.NewVerifyController(db, booking)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	// Booking creation from the voice agent and the website, plus the
	// verification links embedded in outbound emails.
	public := r.Group("/public")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/restaurants/:restaurant_id/reservations", reservationCtrl.CreateReservation)
		public.POST("/restaurants/:restaurant_id/orders", orderCtrl.CreateOrder)
		public.GET("/reservations/verify/:reservation_id", verifyCtrl.VerifyReservation)
		public.GET("/orders/verify/:order_id", verifyCtrl.VerifyOrder)
	}

	// ----------------------------------------------------------------
	//                      BACK OFFICE ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/events/ws", controllers.EventsHandler)

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

	return r
}
