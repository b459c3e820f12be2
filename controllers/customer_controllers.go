package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trusttaste/booking-core/models"
	"github.com/trusttaste/booking-core/utils"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetAllCustomers -> list customers, searchable by phone or name
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	query := cc.DB.Order("id DESC")
	if phone := c.Query("phone"); phone != "" {
		query = query.Where("phone = ?", phone)
	}
	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// GetCustomerByID -> detail for one customer
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	var customer models.Customer
	if err := cc.DB.First(&customer, "id = ?", c.Param("customer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

// UpdateCustomer -> overwrite contact fields; the phone key itself is
// immutable here
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, "id = ?", c.Param("customer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		customer.Name = body.Name
	}
	if body.Email != "" {
		customer.Email = body.Email
	}
	if body.Address != "" {
		customer.Address = body.Address
	}

	if err := cc.DB.Save(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}

// DeleteCustomer -> remove a customer; their reservations and orders
// keep a NULL customer reference
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	var customer models.Customer
	if err := cc.DB.First(&customer, "id = ?", c.Param("customer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := cc.DB.Delete(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Customer %d deleted", customer.ID)
	utils.RespondJSON(c, http.StatusOK, "Customer deleted", gin.H{
		"id": customer.ID,
	})
}
