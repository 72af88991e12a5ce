package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant status flag values.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

// Tenant is an occupancy record attached to at most one property. A tenant
// with no PropertyID is inactive and contributes no obligations. The three
// status flags are independent signals maintained by the payment workflow.
type Tenant struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PropertyID        *uuid.UUID     `gorm:"column:property_id;type:uuid;index" json:"property_id"`
	Name              string         `gorm:"column:name;not null" json:"name"`
	Phone             string         `gorm:"column:phone" json:"phone"`
	Email             string         `gorm:"column:email" json:"email"`
	StartDate         time.Time      `gorm:"column:start_date;not null" json:"start_date"`
	EndDate           *time.Time     `gorm:"column:end_date" json:"end_date"`
	RentStatus        string         `gorm:"column:rent_status;type:varchar(10);not null;default:pending" json:"rent_status"`
	MaintenanceStatus string         `gorm:"column:maintenance_status;type:varchar(10);not null;default:pending" json:"maintenance_status"`
	LightBillStatus   string         `gorm:"column:light_bill_status;type:varchar(10);not null;default:pending" json:"light_bill_status"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tenant) TableName() string {
	return "Tenants"
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Active reports whether the tenant currently occupies a property.
func (t *Tenant) Active() bool {
	return t.PropertyID != nil && *t.PropertyID != uuid.Nil
}
