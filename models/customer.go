package models

import (
	"time"
)

type Customer struct {
	ID           uint      `gorm:"primaryKey" json:"customer_id"`
	FirstName    string    `gorm:"column:fname;not null" json:"fname"`
	LastName     string    `gorm:"column:lname" json:"lname"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	DOB          time.Time `gorm:"column:dob;not null" json:"dob"`

	AddressLine1 string `gorm:"not null" json:"address_line1"`
	Landmark     string `json:"landmark"`
	Stage        string `json:"stage"`
	City         string `gorm:"not null" json:"city"`
	Pincode      string `gorm:"type:varchar(6);not null" json:"pincode"`

	Phones          []PhoneNumber    `gorm:"foreignKey:CustomerID" json:"-"`
	Appliances      []Appliance      `gorm:"foreignKey:CustomerID" json:"-"`
	ServiceRequests []ServiceRequest `gorm:"foreignKey:CustomerID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// PhoneNumber holds one contact number for a customer. A customer has one
// required primary phone and at most one secondary phone; numbers are unique
// across all customers.
type PhoneNumber struct {
	CustomerID uint   `gorm:"primaryKey;autoIncrement:false" json:"customer_id"`
	PhoneNo    string `gorm:"primaryKey;type:varchar(10);uniqueIndex" json:"phone_no"`
}
