package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/trusttaste/booking-core/config"
	"github.com/trusttaste/booking-core/database"
	"github.com/trusttaste/booking-core/middlewares"
	"github.com/trusttaste/booking-core/notifier"
	"github.com/trusttaste/booking-core/router"
	"github.com/trusttaste/booking-core/services"
	"github.com/trusttaste/booking-core/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}

	// Notification dispatch goes through RabbitMQ when configured and
	// falls back to log-only dispatch otherwise.
	var n notifier.Notifier
	if url := config.AMQPURL(); url != "" {
		amqpNotifier, err := notifier.NewAMQPNotifier(url, utils.InfoLogger)
		if err != nil {
			utils.ErrorLogger.Printf("AMQP unavailable, falling back to log notifier: %v", err)
			n = notifier.NewLogNotifier(utils.InfoLogger)
		} else {
			defer amqpNotifier.Close()
			n = amqpNotifier
		}
	} else {
		n = notifier.NewLogNotifier(utils.InfoLogger)
	}

	booking := services.NewBookingService(db, n, config.PublicBaseURL())

	// Keep dashboard availability projections fresh between listing
	// requests.
	monitor := services.NewAvailabilityMonitor(db)
	monitor.Start()
	defer monitor.Stop()

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, booking)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
