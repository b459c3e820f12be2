package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/services"
	"github.com/trusttaste/booking-core/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB           *gorm.DB
	Availability *services.AvailabilityService
	Booking      *services.BookingService
}

func NewTableController(db *gorm.DB, booking *services.BookingService) *TableController {
	return &TableController{
		DB:           db,
		Availability: services.NewAvailabilityService(db),
		Booking:      booking,
	}
}

// CreateTable -> add a new table to the restaurant
func (tc *TableController) CreateTable(c *gin.Context) {
	restaurant, err := currentRestaurant(c, tc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		TableName  string `json:"table_name" binding:"required"`
		TotalSeats int    `json:"total_seats" binding:"required"`
		Status     string `json:"status"` // optional, default "active"
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		RestaurantID:      restaurant.ID,
		TableName:         req.TableName,
		TotalSeats:        req.TotalSeats,
		Status:            models.TableActive,
		ReservationStatus: models.TableAvailable,
	}
	if req.Status != "" {
		table.Status = req.Status
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %s (restaurant=%d)", table.TableName, restaurant.ID)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> list tables with the availability projection
// refreshed for the requested date (default: today in the restaurant's
// timezone). asOf is captured once so every table sees the same
// instant.
func (tc *TableController) GetAllTables(c *gin.Context) {
	restaurant, err := currentRestaurant(c, tc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	asOf := time.Now().In(restaurant.Location())
	date := c.Query("date")
	if date == "" {
		date = asOf.Format(utils.DateLayout)
	} else if !utils.ValidDate(date) {
		utils.RespondError(c, http.StatusBadRequest, &services.ValidationError{Msg: "invalid date format, please use YYYY-MM-DD"})
		return
	}

	var tables []models.Table
	if err := tc.DB.Where("restaurant_id = ?", restaurant.ID).Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.Availability.RefreshAll(restaurant, tables, date, asOf)

	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail for a single table
func (tc *TableController) GetTableByID(c *gin.Context) {
	restaurant, err := currentRestaurant(c, tc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.Where("restaurant_id = ?", restaurant.ID).
		First(&table, "id = ?", c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> update name, seats or operational status
func (tc *TableController) UpdateTable(c *gin.Context) {
	restaurant, err := currentRestaurant(c, tc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		TableName  string `json:"table_name"`
		TotalSeats int    `json:"total_seats"`
		Status     string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.Where("restaurant_id = ?", restaurant.ID).
		First(&table, "id = ?", c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.TableName != "" {
		table.TableName = body.TableName
	}
	if body.TotalSeats > 0 {
		table.TotalSeats = body.TotalSeats
	}
	if body.Status != "" {
		table.Status = body.Status
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d updated", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> remove a table
func (tc *TableController) DeleteTable(c *gin.Context) {
	restaurant, err := currentRestaurant(c, tc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.Where("restaurant_id = ?", restaurant.ID).
		First(&table, "id = ?", c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": table.ID,
	})
}

// MarkOutOfService -> block the whole date with the full-day marker
func (tc *TableController) MarkOutOfService(c *gin.Context) {
	restaurant, err := currentRestaurant(c, tc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.Where("restaurant_id = ?", restaurant.ID).
		First(&table, "id = ?", c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := tc.Booking.MarkTableOutOfService(restaurant, table.ID, body.Date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Table marked out of service", reservation)
}
