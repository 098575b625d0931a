package services

import (
	"errors"
	"time"

	"fixmate-backend/models"
	"fixmate-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LifecycleService owns every status change of service requests and invoices.
// Each mutation runs fetch -> authorize -> validate state -> write inside a
// single transaction with the fetched rows locked, so concurrent transitions
// on the same request serialize and only one succeeds.
type LifecycleService struct {
	db *gorm.DB
}

func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{db: db}
}

type CreateRequestInput struct {
	CustomerID  uint
	ApplianceID uint
	Description string
	RequestDate time.Time
}

type FinishJobInput struct {
	RequestID    uint
	TechnicianID uint
	TotalCost    float64
	IssueDate    time.Time
}

// RequestSummary is the joined display projection returned by the listing
// queries: request fields plus customer, appliance and invoice details.
type RequestSummary struct {
	RequestID   uint      `json:"request_id"`
	Description string    `json:"description"`
	RequestDate time.Time `json:"request_date"`
	Status      string    `json:"status"`
	Rating      *int      `json:"rating"`

	CustomerID    uint     `json:"customer_id"`
	CustomerFname string   `json:"customer_fname"`
	CustomerLname string   `json:"customer_lname"`
	AddressLine1  string   `json:"address_line1"`
	Landmark      string   `json:"landmark"`
	Stage         string   `json:"stage"`
	City          string   `json:"city"`
	Pincode       string   `json:"pincode"`
	CustomerPhones []string `gorm:"-" json:"customer_phones"`

	ApplianceID    uint   `json:"appliance_id"`
	ApplianceType  string `json:"appliance_type"`
	ApplianceBrand string `json:"appliance_brand"`
	ApplianceModel string `json:"appliance_model"`

	TechnicianID    *uint   `json:"technician_id"`
	TechnicianFname *string `json:"technician_fname"`
	TechnicianLname *string `json:"technician_lname"`

	InvoiceID     *uint      `json:"invoice_id"`
	InvoiceNumber *string    `json:"invoice_number"`
	IssueDate     *time.Time `json:"issue_date"`
	TotalCost     *float64   `json:"total_cost"`
	PaymentStatus *string    `json:"payment_status"`
}

// CreateRequest validates the appliance reference and opens a new request in
// Pending state with no technician assigned.
func (s *LifecycleService) CreateRequest(input CreateRequestInput) (*models.ServiceRequest, error) {
	request := models.ServiceRequest{
		CustomerID:  input.CustomerID,
		ApplianceID: input.ApplianceID,
		Description: input.Description,
		RequestDate: input.RequestDate,
		Status:      models.StatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var appliance models.Appliance
		if err := tx.Where("customer_id = ? AND appliance_id = ?", input.CustomerID, input.ApplianceID).
			First(&appliance).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidAppliance
			}
			return err
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// StartJob moves a pending request to In Progress. An unassigned request is
// claimed by the calling technician at this point.
func (s *LifecycleService) StartJob(requestID, technicianID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		request, err := lockRequest(tx, requestID)
		if err != nil {
			return err
		}
		if err := checkStart(request, technicianID); err != nil {
			return err
		}
		return tx.Model(request).Updates(map[string]interface{}{
			"status":        models.StatusInProgress,
			"technician_id": technicianID,
		}).Error
	})
}

// FinishJob completes an in-progress request and issues its invoice in the
// same transaction. The invoice-exists check is defensive: request status and
// invoice rows live in separate tables and could desync.
func (s *LifecycleService) FinishJob(input FinishJobInput) (*models.Invoice, error) {
	issueDate := input.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	invoice := models.Invoice{
		RequestID:     input.RequestID,
		InvoiceNumber: "INV-" + issueDate.Format("20060102") + "-" + utils.GenerateRandomString(6),
		IssueDate:     issueDate,
		TotalCost:     input.TotalCost,
		PaymentStatus: models.PaymentUnpaid,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		request, err := lockRequest(tx, input.RequestID)
		if err != nil {
			return err
		}
		if err := checkFinish(request, input.TechnicianID, input.TotalCost); err != nil {
			return err
		}

		var existing models.Invoice
		if err := tx.Where("request_id = ?", input.RequestID).First(&existing).Error; err == nil {
			return ErrDuplicateInvoice
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Model(request).Update("status", models.StatusCompleted).Error; err != nil {
			return err
		}
		return tx.Create(&invoice).Error
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// CancelRequest terminates a pending request. The row is kept and marked
// Cancelled; cancelled requests never appear in listings again.
func (s *LifecycleService) CancelRequest(requestID, customerID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		request, err := lockRequest(tx, requestID)
		if err != nil {
			return err
		}
		if err := checkCancel(request, customerID); err != nil {
			return err
		}
		return tx.Model(request).Update("status", models.StatusCancelled).Error
	})
}

// RateRequest records the customer's one-time rating of a completed request.
func (s *LifecycleService) RateRequest(requestID, customerID uint, rating int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		request, err := lockRequest(tx, requestID)
		if err != nil {
			return err
		}
		if err := checkRate(request, customerID, rating); err != nil {
			return err
		}
		return tx.Model(request).Update("rating", rating).Error
	})
}

// MarkInvoicePaid flips an invoice to Paid. Only the technician assigned to
// the parent request may do this, and only once.
func (s *LifecycleService) MarkInvoicePaid(invoiceID, technicianID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return err
		}

		var request models.ServiceRequest
		if err := tx.First(&request, invoice.RequestID).Error; err != nil {
			return err
		}
		if err := checkMarkPaid(&invoice, &request, technicianID); err != nil {
			return err
		}
		return tx.Model(&invoice).Update("payment_status", models.PaymentPaid).Error
	})
}

// CustomerRequests returns the customer's requests with display data: active
// ones first in ascending request-date order, then completed history newest
// first. Cancelled requests are excluded.
func (s *LifecycleService) CustomerRequests(customerID uint) ([]RequestSummary, error) {
	active, err := s.queryRequests(
		s.db.Where("sr.customer_id = ?", customerID).
			Where("sr.status IN ?", []string{models.StatusPending, models.StatusInProgress}),
		"sr.request_date ASC, sr.id ASC")
	if err != nil {
		return nil, err
	}

	history, err := s.queryRequests(
		s.db.Where("sr.customer_id = ?", customerID).
			Where("sr.status = ?", models.StatusCompleted),
		"sr.request_date DESC, sr.id DESC")
	if err != nil {
		return nil, err
	}

	return append(active, history...), nil
}

// TechnicianRequests returns the technician's active queue: assigned requests
// that are Pending or In Progress, plus Completed ones whose invoice is still
// Unpaid.
func (s *LifecycleService) TechnicianRequests(technicianID uint) ([]RequestSummary, error) {
	rows, err := s.queryRequests(
		s.db.Where("sr.technician_id = ?", technicianID).
			Where("sr.status IN ? OR (sr.status = ? AND i.payment_status = ?)",
				[]string{models.StatusPending, models.StatusInProgress},
				models.StatusCompleted, models.PaymentUnpaid),
		"sr.request_date ASC, sr.id ASC")
	if err != nil {
		return nil, err
	}
	if err := s.attachCustomerPhones(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// TechnicianHistory returns the technician's archive: completed requests whose
// invoice has been paid, newest first.
func (s *LifecycleService) TechnicianHistory(technicianID uint) ([]RequestSummary, error) {
	rows, err := s.queryRequests(
		s.db.Where("sr.technician_id = ?", technicianID).
			Where("sr.status = ? AND i.payment_status = ?", models.StatusCompleted, models.PaymentPaid),
		"sr.request_date DESC, sr.id DESC")
	if err != nil {
		return nil, err
	}
	if err := s.attachCustomerPhones(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *LifecycleService) queryRequests(base *gorm.DB, order string) ([]RequestSummary, error) {
	var rows []RequestSummary
	err := base.Table("service_requests sr").
		Select(`sr.id AS request_id, sr.description, sr.request_date, sr.status, sr.rating,
			sr.customer_id, sr.appliance_id, sr.technician_id,
			c.fname AS customer_fname, c.lname AS customer_lname,
			c.address_line1, c.landmark, c.stage, c.city, c.pincode,
			a.type AS appliance_type, a.brand AS appliance_brand, a.model_no AS appliance_model,
			t.fname AS technician_fname, t.lname AS technician_lname,
			i.id AS invoice_id, i.invoice_number, i.issue_date, i.total_cost, i.payment_status`).
		Joins("JOIN customers c ON sr.customer_id = c.id").
		Joins("JOIN appliances a ON sr.appliance_id = a.appliance_id AND sr.customer_id = a.customer_id").
		Joins("LEFT JOIN technicians t ON sr.technician_id = t.id").
		Joins("LEFT JOIN invoices i ON sr.id = i.request_id").
		Order(order).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *LifecycleService) attachCustomerPhones(rows []RequestSummary) error {
	for idx := range rows {
		var phones []models.PhoneNumber
		if err := s.db.Where("customer_id = ?", rows[idx].CustomerID).
			Order("phone_no").Find(&phones).Error; err != nil {
			return err
		}
		numbers := make([]string, 0, len(phones))
		for _, p := range phones {
			numbers = append(numbers, p.PhoneNo)
		}
		rows[idx].CustomerPhones = numbers
	}
	return nil
}

func lockRequest(tx *gorm.DB, requestID uint) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}
