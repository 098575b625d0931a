package services

import (
	"fmt"
	"log"
	"os"

	"fixmate-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotificationService sends SMS updates to customers. Sends are best-effort:
// failures are logged and never fail the triggering operation.
type NotificationService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotificationService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// InvoiceIssued texts the customer's primary phone when a technician finishes
// a job and issues the invoice.
func (s *NotificationService) InvoiceIssued(invoice *models.Invoice) {
	var request models.ServiceRequest
	if err := s.db.First(&request, invoice.RequestID).Error; err != nil {
		log.Printf("Invoice %d: failed to load request for invoice notice: %v", invoice.ID, err)
		return
	}

	phone, err := s.primaryPhone(request.CustomerID)
	if err != nil {
		log.Printf("Customer %d: failed to resolve phone for invoice notice: %v", request.CustomerID, err)
		return
	}

	message := fmt.Sprintf(
		"Your repair is complete. Invoice %s for Rs. %.2f has been issued. Please pay the technician on collection.",
		invoice.InvoiceNumber, invoice.TotalCost)
	s.send(phone, message)
}

// PaymentReminder nudges a customer about an invoice that has stayed unpaid.
func (s *NotificationService) PaymentReminder(customerID uint, invoice *models.Invoice) {
	phone, err := s.primaryPhone(customerID)
	if err != nil {
		log.Printf("Customer %d: failed to resolve phone for payment reminder: %v", customerID, err)
		return
	}

	message := fmt.Sprintf(
		"Reminder: invoice %s for Rs. %.2f issued on %s is still unpaid.",
		invoice.InvoiceNumber, invoice.TotalCost, invoice.IssueDate.Format("02 Jan 2006"))
	s.send(phone, message)
}

// primaryPhone is the lowest-sorted number on file, matching how customer
// profiles order the pair.
func (s *NotificationService) primaryPhone(customerID uint) (string, error) {
	var phone models.PhoneNumber
	err := s.db.Where("customer_id = ?", customerID).
		Order("phone_no").First(&phone).Error
	if err != nil {
		return "", err
	}
	return phone.PhoneNo, nil
}

func (s *NotificationService) send(to, body string) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send SMS to %s: %v", to, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("SMS sent to %s, SID: %s", to, *resp.Sid)
	} else {
		log.Printf("SMS sent to %s, but no SID returned", to)
	}
}
