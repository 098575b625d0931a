package models

import "time"

const (
	PaymentUnpaid = "Unpaid"
	PaymentPaid   = "Paid"
)

// Invoice is created exactly once per service request, when the assigned
// technician finishes the job. Payment status only moves Unpaid -> Paid.
type Invoice struct {
	ID            uint      `gorm:"primaryKey" json:"invoice_id"`
	RequestID     uint      `gorm:"uniqueIndex;not null" json:"request_id"`
	InvoiceNumber string    `gorm:"uniqueIndex;not null" json:"invoice_number"`
	IssueDate     time.Time `gorm:"not null" json:"issue_date"`
	TotalCost     float64   `gorm:"type:decimal(10,2);not null" json:"total_cost"`
	PaymentStatus string    `gorm:"type:varchar(10);not null;default:'Unpaid'" json:"payment_status"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
