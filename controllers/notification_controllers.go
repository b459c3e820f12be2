package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetAllNotifications -> dispatch log for the dashboard, newest first
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	query := nc.DB.Order("created_at DESC").Limit(100)
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of notifications", notifications)
}
