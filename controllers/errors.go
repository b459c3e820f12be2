package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/services"
	"github.com/trusttaste/booking-core/utils"
	"gorm.io/gorm"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrNoRestaurant = &CustomError{"No restaurant scope for this request"}
	ErrNoPermission = &CustomError{"You do not have permission"}
)

// respondServiceError maps the service error taxonomy onto HTTP codes:
// validation 400, not-found 404, slot conflict 409, everything else 500.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if errors.Is(err, services.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var conflictErr *services.SlotConflictError
	if errors.As(err, &conflictErr) {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	utils.RespondError(c, http.StatusInternalServerError, err)
}

// currentRestaurant loads the restaurant for the request scope: the
// token claim on authenticated routes, or the :restaurant_id path
// parameter on the public booking endpoints.
func currentRestaurant(c *gin.Context, db *gorm.DB) (*models.Restaurant, error) {
	var id interface{}
	if param := c.Param("restaurant_id"); param != "" {
		id = param
	} else if claim, ok := c.Get("restaurantID"); ok {
		id = claim
	} else {
		return nil, ErrNoRestaurant
	}

	var restaurant models.Restaurant
	if err := db.First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, ErrNoRestaurant
	}
	return &restaurant, nil
}
