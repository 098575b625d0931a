package controllers

import (
	"net/http"
	"strconv"
	"time"

	"fixmate-backend/models"
	"fixmate-backend/services"
	"fixmate-backend/utils"

	"github.com/gin-gonic/gin"
)

// LifecycleEngine is the surface of the service-request state machine the
// HTTP layer depends on.
type LifecycleEngine interface {
	CreateRequest(input services.CreateRequestInput) (*models.ServiceRequest, error)
	StartJob(requestID, technicianID uint) error
	FinishJob(input services.FinishJobInput) (*models.Invoice, error)
	CancelRequest(requestID, customerID uint) error
	RateRequest(requestID, customerID uint, rating int) error
	MarkInvoicePaid(invoiceID, technicianID uint) error
	CustomerRequests(customerID uint) ([]services.RequestSummary, error)
	TechnicianRequests(technicianID uint) ([]services.RequestSummary, error)
	TechnicianHistory(technicianID uint) ([]services.RequestSummary, error)
}

type ServiceRequestController struct {
	engine LifecycleEngine
}

func NewServiceRequestController(engine LifecycleEngine) *ServiceRequestController {
	return &ServiceRequestController{engine: engine}
}

type CreateRequestInput struct {
	CustomerID  uint   `json:"customer_id" binding:"required"`
	ApplianceID uint   `json:"appliance_id" binding:"required"`
	Description string `json:"description" binding:"required"`
	RequestDate string `json:"request_date" binding:"required"`
}

type RateRequestInput struct {
	Rating int `json:"rating" binding:"required"`
}

// Create opens a new service request for one of the customer's appliances.
func (sc *ServiceRequestController) Create(c *gin.Context) {
	customerID, ok := utils.ContextID(c, "customerId")
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Customer ID not found in context")
		return
	}

	var input CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Appliance, description, and request date are required")
		return
	}

	if input.CustomerID != customerID {
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
		return
	}

	requestDate, err := time.Parse("2006-01-02", input.RequestDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid request date")
		return
	}

	request, err := sc.engine.CreateRequest(services.CreateRequestInput{
		CustomerID:  customerID,
		ApplianceID: input.ApplianceID,
		Description: input.Description,
		RequestDate: requestDate,
	})
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Service request submitted successfully",
		"request_id": request.ID,
	})
}

// List returns the customer's requests: active ones first, then history.
func (sc *ServiceRequestController) List(c *gin.Context) {
	customerID, ok := pathCustomerID(c)
	if !ok {
		return
	}

	requests, err := sc.engine.CustomerRequests(customerID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// Cancel terminates one of the customer's pending requests.
func (sc *ServiceRequestController) Cancel(c *gin.Context) {
	customerID, ok := utils.ContextID(c, "customerId")
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Customer ID not found in context")
		return
	}

	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	if err := sc.engine.CancelRequest(uint(requestID), customerID); err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service request cancelled successfully"})
}

// Rate records the one-time rating on a completed request.
func (sc *ServiceRequestController) Rate(c *gin.Context) {
	customerID, ok := utils.ContextID(c, "customerId")
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Customer ID not found in context")
		return
	}

	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var input RateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	if err := sc.engine.RateRequest(uint(requestID), customerID, input.Rating); err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating submitted successfully"})
}
