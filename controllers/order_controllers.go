package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trusttaste/booking-core/events"
	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/services"
	"github.com/trusttaste/booking-core/utils"
	"gorm.io/gorm"
)

type OrderController struct {
	DB      *gorm.DB
	Booking *services.BookingService
}

func NewOrderController(db *gorm.DB, booking *services.BookingService) *OrderController {
	return &OrderController{DB: db, Booking: booking}
}

// CreateOrder -> snapshot line items from the catalog and compute the
// total; the caller never supplies total_price
func (oc *OrderController) CreateOrder(c *gin.Context) {
	restaurant, err := currentRestaurant(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var in services.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Booking.CreateOrder(restaurant, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> list orders with their items
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	restaurant, err := currentRestaurant(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	query := oc.DB.Preload("OrderItems").Preload("Customer").
		Where("restaurant_id = ?", restaurant.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail for one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	restaurant, err := currentRestaurant(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("Customer").
		Where("restaurant_id = ?", restaurant.ID).
		First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> pending -> completed / cancelled
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	restaurant, err := currentRestaurant(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch body.Status {
	case models.OrderPending, models.OrderCompleted, models.OrderCancelled:
	default:
		utils.RespondError(c, http.StatusBadRequest, &services.ValidationError{Msg: "unknown order status"})
		return
	}

	var order models.Order
	if err := oc.DB.Where("restaurant_id = ?", restaurant.ID).
		First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.Status = body.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrderUpdate(order)
	utils.InfoLogger.Printf("Order %d status changed to %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// GetOrdersByPhone -> a customer's order history with aggregate stats
func (oc *OrderController) GetOrdersByPhone(c *gin.Context) {
	restaurant, err := currentRestaurant(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	phone := c.Query("phone")
	if phone == "" {
		utils.RespondError(c, http.StatusBadRequest, &services.ValidationError{Msg: "phone is required"})
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("orders.restaurant_id = ? AND customers.phone = ?", restaurant.ID, phone).
		Order("orders.created_at").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	info := gin.H{}
	if len(orders) > 0 {
		var totalSpend float64
		for _, o := range orders {
			totalSpend += o.TotalPrice
		}
		info = gin.H{
			"phone":            phone,
			"total_order":      len(orders),
			"total_order_price": totalSpend,
			"first_order_date": orders[0].CreatedAt,
			"last_order_date":  orders[len(orders)-1].CreatedAt,
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Customer orders", gin.H{
		"customer_info": info,
		"orders":        orders,
	})
}
