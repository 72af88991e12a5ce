package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment types.
const (
	PaymentTypeRent        = "rent"
	PaymentTypeMaintenance = "maintenance"
	PaymentTypeLight       = "light"
	PaymentTypeAdvance     = "advance"
)

// Payment is an immutable, append-only fact created by the ledger entry
// workflow. Year/Month is the billing period the payment is attributed to,
// distinct from the calendar date it was paid on. Payments are never
// updated or deleted; corrections are new entries.
type Payment struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"column:property_id;type:uuid;not null;index" json:"property_id"`
	TenantID   uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	Type       string    `gorm:"column:type;type:varchar(15);not null" json:"type"`
	Amount     float64   `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Year       int       `gorm:"column:year;not null;index" json:"year"`
	Month      int       `gorm:"column:month;not null" json:"month"`
	PaidOn     time.Time `gorm:"column:paid_on;not null" json:"paid_on"`
	Note       string    `gorm:"column:note" json:"note"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Payment) TableName() string {
	return "Payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
