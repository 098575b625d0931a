package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fixmate-backend/config"
	"fixmate-backend/models"
	"fixmate-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateProfileInput struct {
	FirstName string `json:"fname" binding:"required"`
	LastName  string `json:"lname"`
	DOB       string `json:"dob" binding:"required"`
}

type UpdateAddressInput struct {
	AddressLine1 string `json:"address_line1" binding:"required"`
	Landmark     string `json:"landmark"`
	Stage        string `json:"stage"`
	City         string `json:"city" binding:"required"`
	Pincode      string `json:"pincode" binding:"required"`
}

type UpdatePhonesInput struct {
	PrimaryPhone   string `json:"primary_phone" binding:"required"`
	SecondaryPhone string `json:"secondary_phone"`
}

type VerifyPasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
}

type ChangePasswordInput struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// pathCustomerID parses the :customer_id parameter and enforces that it
// matches the authenticated customer. Ownership is checked before anything
// else so a caller can never probe another customer's data.
func pathCustomerID(c *gin.Context) (uint, bool) {
	customerID, ok := utils.ContextID(c, "customerId")
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Customer ID not found in context")
		return 0, false
	}

	param, err := strconv.ParseUint(c.Param("customer_id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID")
		return 0, false
	}
	if uint(param) != customerID {
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
		return 0, false
	}
	return customerID, true
}

// GetCustomerProfile returns the customer's identity, address and phones.
func GetCustomerProfile(c *gin.Context) {
	customerID, ok := pathCustomerID(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var phones []models.PhoneNumber
	if err := config.DB.Where("customer_id = ?", customerID).
		Order("phone_no").Find(&phones).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	primary, secondary := "", ""
	if len(phones) > 0 {
		primary = phones[0].PhoneNo
	}
	if len(phones) > 1 {
		secondary = phones[1].PhoneNo
	}

	c.JSON(http.StatusOK, gin.H{
		"customer_id":     customer.ID,
		"fname":           customer.FirstName,
		"lname":           customer.LastName,
		"dob":             customer.DOB.Format("2006-01-02"),
		"email":           customer.Email,
		"address_line1":   customer.AddressLine1,
		"landmark":        customer.Landmark,
		"stage":           customer.Stage,
		"city":            customer.City,
		"pincode":         customer.Pincode,
		"primary_phone":   primary,
		"secondary_phone": secondary,
	})
}

// UpdateCustomerProfile updates name and date of birth.
func UpdateCustomerProfile(c *gin.Context) {
	customerID, ok := pathCustomerID(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "First name and date of birth are required")
		return
	}

	dob, err := time.Parse("2006-01-02", input.DOB)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date of birth")
		return
	}
	if dob.After(time.Now()) {
		utils.RespondWithError(c, http.StatusBadRequest, "Date of birth cannot be in the future")
		return
	}

	if err := config.DB.Model(&models.Customer{}).Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"fname": input.FirstName,
			"lname": input.LastName,
			"dob":   dob,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// UpdateCustomerAddress replaces the customer's address fields.
func UpdateCustomerAddress(c *gin.Context) {
	customerID, ok := pathCustomerID(c)
	if !ok {
		return
	}

	var input UpdateAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Address Line 1, City and Pincode are required")
		return
	}

	if !utils.ValidatePincode(input.Pincode) {
		utils.RespondWithError(c, http.StatusBadRequest, "Pincode must be 6 digits and not start with 0")
		return
	}

	if err := config.DB.Model(&models.Customer{}).Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"address_line1": input.AddressLine1,
			"landmark":      input.Landmark,
			"stage":         input.Stage,
			"city":          input.City,
			"pincode":       input.Pincode,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update address")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address updated successfully"})
}

// UpdateCustomerPhones replaces the customer's phone numbers, enforcing global
// uniqueness of each number.
func UpdateCustomerPhones(c *gin.Context) {
	customerID, ok := pathCustomerID(c)
	if !ok {
		return
	}

	var input UpdatePhonesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Primary phone is required")
		return
	}

	if !utils.ValidatePhone(input.PrimaryPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Primary phone must be 10 digits")
		return
	}
	if input.SecondaryPhone != "" && !utils.ValidatePhone(input.SecondaryPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Secondary phone must be 10 digits")
		return
	}

	for _, phone := range []string{input.PrimaryPhone, input.SecondaryPhone} {
		if phone == "" {
			continue
		}
		var taken models.PhoneNumber
		err := config.DB.Where("phone_no = ? AND customer_id != ?", phone, customerID).
			First(&taken).Error
		if err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Phone number already exists")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", customerID).Delete(&models.PhoneNumber{}).Error; err != nil {
			return err
		}
		phones := []models.PhoneNumber{{CustomerID: customerID, PhoneNo: input.PrimaryPhone}}
		if input.SecondaryPhone != "" {
			phones = append(phones, models.PhoneNumber{CustomerID: customerID, PhoneNo: input.SecondaryPhone})
		}
		return tx.Create(&phones).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update phone numbers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Phone numbers updated successfully"})
}

// VerifyPassword checks the current password before a password change.
func VerifyPassword(c *gin.Context) {
	customerID, ok := utils.ContextID(c, "customerId")
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Customer ID not found in context")
		return
	}

	var input VerifyPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Old password is required")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.OldPassword, customer.PasswordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Old password is incorrect")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password verified successfully"})
}

// ChangePassword sets a new password for the customer.
func ChangePassword(c *gin.Context) {
	customerID, ok := pathCustomerID(c)
	if !ok {
		return
	}

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "New password must be at least 6 characters")
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to change password")
		return
	}

	if err := config.DB.Model(&models.Customer{}).Where("id = ?", customerID).
		Update("password_hash", hashed).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
