// services/reminder_service.go
package services

import (
	"log"
	"time"

	"fixmate-backend/models"
	"fixmate-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const reminderAgeDays = 7

// ReminderService runs the daily payment-reminder job: customers whose
// invoices have been unpaid for a week or more get an SMS nudge.
type ReminderService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewReminderService(db *gorm.DB, notifier *NotificationService) *ReminderService {
	return &ReminderService{db: db, notifier: notifier}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendPaymentReminders)

	c.Start()
	log.Println("Payment reminder scheduler started")
}

func (s *ReminderService) SendPaymentReminders() {
	log.Println("Starting payment reminder processing...")

	cutoff := utils.BeginningOfDay(time.Now().AddDate(0, 0, -reminderAgeDays))

	var invoices []models.Invoice
	if err := s.db.Where("payment_status = ? AND issue_date <= ?", models.PaymentUnpaid, cutoff).
		Find(&invoices).Error; err != nil {
		log.Printf("Failed to fetch unpaid invoices: %v", err)
		return
	}

	for _, invoice := range invoices {
		var request models.ServiceRequest
		if err := s.db.First(&request, invoice.RequestID).Error; err != nil {
			log.Printf("Invoice %d: failed to load request: %v", invoice.ID, err)
			continue
		}
		s.notifier.PaymentReminder(request.CustomerID, &invoice)
	}

	log.Printf("Payment reminder processing completed, %d invoice(s) checked", len(invoices))
}
