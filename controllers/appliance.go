package controllers

import (
	"net/http"

	"fixmate-backend/config"
	"fixmate-backend/models"
	"fixmate-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddApplianceInput struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Brand      string `json:"brand"`
	ModelNo    string `json:"model_no"`
}

// GetAppliances lists the customer's appliances.
func GetAppliances(c *gin.Context) {
	customerID, ok := pathCustomerID(c)
	if !ok {
		return
	}

	var appliances []models.Appliance
	if err := config.DB.Where("customer_id = ?", customerID).
		Order("appliance_id").Find(&appliances).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appliances")
		return
	}

	c.JSON(http.StatusOK, appliances)
}

// AddAppliance registers a new appliance for the customer. Appliance ids are
// per-customer: the next id is the customer's current max plus one.
func AddAppliance(c *gin.Context) {
	customerID, ok := utils.ContextID(c, "customerId")
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Customer ID not found in context")
		return
	}

	var input AddApplianceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Appliance type is required")
		return
	}

	if input.CustomerID != customerID {
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
		return
	}

	appliance := models.Appliance{
		CustomerID: customerID,
		Type:       input.Type,
		Brand:      input.Brand,
		ModelNo:    input.ModelNo,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var nextID uint
		if err := tx.Model(&models.Appliance{}).
			Where("customer_id = ?", customerID).
			Select("COALESCE(MAX(appliance_id), 0) + 1").
			Scan(&nextID).Error; err != nil {
			return err
		}
		appliance.ApplianceID = nextID
		return tx.Create(&appliance).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add appliance")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Appliance added successfully",
		"appliance": appliance,
	})
}
