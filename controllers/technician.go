package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fixmate-backend/config"
	"fixmate-backend/models"
	"fixmate-backend/services"
	"fixmate-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxPhotoBytes = 5 * 1024 * 1024

// InvoiceNotifier is notified after an invoice is issued. Sends are
// best-effort and run off the request path.
type InvoiceNotifier interface {
	InvoiceIssued(invoice *models.Invoice)
}

type TechnicianController struct {
	engine   LifecycleEngine
	ratings  *services.RatingService
	notifier InvoiceNotifier
}

func NewTechnicianController(engine LifecycleEngine, ratings *services.RatingService, notifier InvoiceNotifier) *TechnicianController {
	return &TechnicianController{engine: engine, ratings: ratings, notifier: notifier}
}

type FinishJobInput struct {
	TotalCost float64 `json:"total_cost" binding:"required"`
	IssueDate string  `json:"issue_date"`
}

type AddSkillInput struct {
	Skill string `json:"skill" binding:"required"`
}

// pathTechnicianID parses the :technician_id parameter and enforces that it
// matches the authenticated technician.
func pathTechnicianID(c *gin.Context) (uint, bool) {
	technicianID, ok := utils.ContextID(c, "technicianId")
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Technician ID not found in context")
		return 0, false
	}

	param, err := strconv.ParseUint(c.Param("technician_id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid technician ID")
		return 0, false
	}
	if uint(param) != technicianID {
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
		return 0, false
	}
	return technicianID, true
}

// Requests returns the technician's active queue.
func (tc *TechnicianController) Requests(c *gin.Context) {
	technicianID, ok := pathTechnicianID(c)
	if !ok {
		return
	}

	requests, err := tc.engine.TechnicianRequests(technicianID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// History returns the technician's completed-and-paid archive.
func (tc *TechnicianController) History(c *gin.Context) {
	technicianID, ok := pathTechnicianID(c)
	if !ok {
		return
	}

	requests, err := tc.engine.TechnicianHistory(technicianID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// Start moves a pending request to In Progress for the calling technician.
func (tc *TechnicianController) Start(c *gin.Context) {
	technicianID, ok := utils.ContextID(c, "technicianId")
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Technician ID not found in context")
		return
	}

	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	if err := tc.engine.StartJob(uint(requestID), technicianID); err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job started successfully"})
}

// Finish completes an in-progress request and issues its invoice.
func (tc *TechnicianController) Finish(c *gin.Context) {
	technicianID, ok := utils.ContextID(c, "technicianId")
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Technician ID not found in context")
		return
	}

	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var input FinishJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Valid total cost is required")
		return
	}

	var issueDate time.Time
	if input.IssueDate != "" {
		issueDate, err = time.Parse("2006-01-02", input.IssueDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid issue date")
			return
		}
	}

	invoice, err := tc.engine.FinishJob(services.FinishJobInput{
		RequestID:    uint(requestID),
		TechnicianID: technicianID,
		TotalCost:    input.TotalCost,
		IssueDate:    issueDate,
	})
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	if tc.notifier != nil {
		go tc.notifier.InvoiceIssued(invoice)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Job completed and invoice created successfully",
		"invoice_id": invoice.ID,
	})
}

// MarkPaid flips one of the technician's invoices to Paid.
func (tc *TechnicianController) MarkPaid(c *gin.Context) {
	technicianID, ok := utils.ContextID(c, "technicianId")
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Technician ID not found in context")
		return
	}

	invoiceID, err := strconv.ParseUint(c.Param("invoice_id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	if err := tc.engine.MarkInvoicePaid(uint(invoiceID), technicianID); err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice marked as paid successfully"})
}

// Profile returns the technician's identity, service center, derived ratings,
// job counts and skills. Ratings are recomputed on every read.
func (tc *TechnicianController) Profile(c *gin.Context) {
	technicianID, ok := pathTechnicianID(c)
	if !ok {
		return
	}

	var technician models.Technician
	if err := config.DB.Preload("Center").First(&technician, technicianID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Technician not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	rating, err := tc.ratings.TechnicianRating(technicianID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	centerRating := 0.0
	centerName, centerLocation := "", ""
	if technician.CenterID != nil {
		centerRating, err = tc.ratings.CenterRating(*technician.CenterID)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if technician.Center != nil {
			centerName = technician.Center.Name
			centerLocation = technician.Center.Location
		}
	}

	completed, active, err := tc.ratings.JobCounts(technicianID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var skills []models.Skill
	if err := config.DB.Where("technician_id = ?", technicianID).
		Order("skill").Find(&skills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	skillNames := make([]string, 0, len(skills))
	for _, s := range skills {
		skillNames = append(skillNames, s.Skill)
	}

	c.JSON(http.StatusOK, gin.H{
		"technician_id":   technician.ID,
		"fname":           technician.FirstName,
		"lname":           technician.LastName,
		"phone_no":        technician.PhoneNo,
		"photo":           technician.Photo,
		"rating":          rating,
		"center_id":       technician.CenterID,
		"center_name":     centerName,
		"center_location": centerLocation,
		"center_rating":   centerRating,
		"completed_jobs":  completed,
		"active_jobs":     active,
		"skills":          skillNames,
	})
}

// UpdateProfile updates the technician's name, phone and optional photo. The
// photo arrives as a multipart file, images only, 5MB cap.
func (tc *TechnicianController) UpdateProfile(c *gin.Context) {
	technicianID, ok := pathTechnicianID(c)
	if !ok {
		return
	}

	fname := strings.TrimSpace(c.PostForm("fname"))
	lname := strings.TrimSpace(c.PostForm("lname"))
	phoneNo := c.PostForm("phone_no")

	if fname == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "First name is required")
		return
	}
	if phoneNo != "" && !utils.ValidatePhone(phoneNo) {
		utils.RespondWithError(c, http.StatusBadRequest, "Phone number must be 10 digits")
		return
	}

	updates := map[string]interface{}{
		"fname":    fname,
		"lname":    lname,
		"phone_no": phoneNo,
	}

	if file, err := c.FormFile("photo"); err == nil {
		if file.Size > maxPhotoBytes {
			utils.RespondWithError(c, http.StatusBadRequest, "Photo must be smaller than 5MB")
			return
		}
		if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
			utils.RespondWithError(c, http.StatusBadRequest, "Only image files are allowed")
			return
		}

		src, err := file.Open()
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read photo")
			return
		}
		defer src.Close()

		photo, err := io.ReadAll(io.LimitReader(src, maxPhotoBytes))
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read photo")
			return
		}
		updates["photo"] = photo
	}

	result := config.DB.Model(&models.Technician{}).
		Where("id = ?", technicianID).Updates(updates)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Technician not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// AvailableSkills lists the distinct appliance types in the catalog, which is
// the skill vocabulary technicians pick from.
func (tc *TechnicianController) AvailableSkills(c *gin.Context) {
	var skills []string
	if err := config.DB.Model(&models.Appliance{}).
		Distinct().Order("type").Pluck("type", &skills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve skills")
		return
	}

	c.JSON(http.StatusOK, skills)
}

// AddSkill records a new skill for the technician.
func (tc *TechnicianController) AddSkill(c *gin.Context) {
	technicianID, ok := pathTechnicianID(c)
	if !ok {
		return
	}

	var input AddSkillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Skill is required")
		return
	}

	skill := strings.TrimSpace(input.Skill)
	if skill == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Skill is required")
		return
	}

	var existing models.Skill
	err := config.DB.Where("technician_id = ? AND skill = ?", technicianID, skill).
		First(&existing).Error
	if err == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Skill already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if err := config.DB.Create(&models.Skill{TechnicianID: technicianID, Skill: skill}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add skill")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Skill added successfully"})
}

// DeleteSkill removes one of the technician's skills.
func (tc *TechnicianController) DeleteSkill(c *gin.Context) {
	technicianID, ok := pathTechnicianID(c)
	if !ok {
		return
	}

	skill := c.Param("skill")

	result := config.DB.Where("technician_id = ? AND skill = ?", technicianID, skill).
		Delete(&models.Skill{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete skill")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Skill not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Skill deleted successfully"})
}
