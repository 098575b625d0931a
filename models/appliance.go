package models

// Appliance is identified by (customer_id, appliance_id). The appliance_id is
// assigned as the current max for that customer plus one, so it is only unique
// within a single customer's inventory.
type Appliance struct {
	ApplianceID uint   `gorm:"primaryKey;autoIncrement:false" json:"appliance_id"`
	CustomerID  uint   `gorm:"primaryKey;autoIncrement:false" json:"customer_id"`
	Type        string `gorm:"not null" json:"type"`
	Brand       string `json:"brand"`
	ModelNo     string `json:"model_no"`
}
