package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"fixmate-backend/config"
	"fixmate-backend/models"
	"fixmate-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	FirstName      string `json:"fname" binding:"required"`
	LastName       string `json:"lname"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	DOB            string `json:"dob" binding:"required"`
	AddressLine1   string `json:"address_line1" binding:"required"`
	Landmark       string `json:"landmark"`
	Stage          string `json:"stage"`
	City           string `json:"city" binding:"required"`
	Pincode        string `json:"pincode" binding:"required"`
	PrimaryPhone   string `json:"primary_phone" binding:"required"`
	SecondaryPhone string `json:"secondary_phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CheckEmailInput struct {
	Email string `json:"email" binding:"required"`
}

// CheckEmail reports whether a customer account already uses the email.
func CheckEmail(c *gin.Context) {
	var input CheckEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Email is required")
		return
	}

	if !utils.ValidateEmail(input.Email) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid email format")
		return
	}

	var existing models.Customer
	err := config.DB.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"exists": true})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": false})
}

// Register creates a customer account with its address and phone numbers.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
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

	if !utils.ValidatePincode(input.Pincode) {
		utils.RespondWithError(c, http.StatusBadRequest, "Pincode must be 6 digits and not start with 0")
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

	var existing models.Customer
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	for _, phone := range []string{input.PrimaryPhone, input.SecondaryPhone} {
		if phone == "" {
			continue
		}
		var taken models.PhoneNumber
		if err := config.DB.Where("phone_no = ?", phone).First(&taken).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Phone number already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	customer := models.Customer{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashed,
		DOB:          dob,
		AddressLine1: input.AddressLine1,
		Landmark:     input.Landmark,
		Stage:        input.Stage,
		City:         input.City,
		Pincode:      input.Pincode,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}
		phones := []models.PhoneNumber{{CustomerID: customer.ID, PhoneNo: input.PrimaryPhone}}
		if input.SecondaryPhone != "" {
			phones = append(phones, models.PhoneNumber{CustomerID: customer.ID, PhoneNo: input.SecondaryPhone})
		}
		return tx.Create(&phones).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully"})
}

// Login authenticates a customer and issues a bearer token.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	email := strings.TrimSpace(input.Email)

	var customer models.Customer
	if err := config.DB.Where("email = ?", email).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, customer.PasswordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(customer.ID, utils.RoleCustomer)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"customer": gin.H{
			"id":    customer.ID,
			"fname": customer.FirstName,
			"email": customer.Email,
		},
	})
}

// TechnicianLogin authenticates a technician and issues a technician-role
// token. Technician identity is always derived from this token afterwards.
func TechnicianLogin(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	var technician models.Technician
	if err := config.DB.Where("email = ?", strings.TrimSpace(input.Email)).First(&technician).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, technician.PasswordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(technician.ID, utils.RoleTechnician)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"technician": gin.H{
			"id":    technician.ID,
			"fname": technician.FirstName,
			"email": technician.Email,
		},
	})
}

// Me returns the authenticated customer's basic identity.
func Me(c *gin.Context) {
	customerID, ok := utils.ContextID(c, "customerId")
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Customer ID not found in context")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, customerID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": gin.H{
			"id":    customer.ID,
			"fname": customer.FirstName,
			"lname": customer.LastName,
			"email": customer.Email,
		},
	})
}
