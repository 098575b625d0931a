package models

import "time"

type Technician struct {
	ID           uint   `gorm:"primaryKey" json:"technician_id"`
	FirstName    string `gorm:"column:fname;not null" json:"fname"`
	LastName     string `gorm:"column:lname" json:"lname"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	PhoneNo      string `gorm:"type:varchar(10)" json:"phone_no"`
	Photo        []byte `gorm:"type:bytea" json:"photo,omitempty"`

	CenterID *uint          `json:"center_id"`
	Center   *ServiceCenter `gorm:"foreignKey:CenterID" json:"-"`
	Skills   []Skill        `gorm:"foreignKey:TechnicianID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type ServiceCenter struct {
	ID          uint         `gorm:"primaryKey" json:"center_id"`
	Name        string       `gorm:"column:center_name;not null" json:"center_name"`
	Location    string       `json:"location"`
	Technicians []Technician `gorm:"foreignKey:CenterID" json:"-"`
}

// Skill is an appliance type a technician can service, unique per technician.
type Skill struct {
	TechnicianID uint   `gorm:"primaryKey;autoIncrement:false" json:"technician_id"`
	Skill        string `gorm:"primaryKey" json:"skill"`
}
