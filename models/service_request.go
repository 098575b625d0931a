package models

import "time"

// Service request statuses. Pending moves to In Progress or Cancelled;
// In Progress moves to Completed. Completed and Cancelled are terminal.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

type ServiceRequest struct {
	ID          uint      `gorm:"primaryKey" json:"request_id"`
	CustomerID  uint      `gorm:"index;not null" json:"customer_id"`
	ApplianceID uint      `gorm:"not null" json:"appliance_id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	RequestDate time.Time `gorm:"not null" json:"request_date"`

	TechnicianID *uint  `gorm:"index" json:"technician_id"`
	Status       string `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`

	// Rating is settable once, only after completion, 1 to 5.
	Rating *int `json:"rating"`

	Invoice *Invoice `gorm:"foreignKey:RequestID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
