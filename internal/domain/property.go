package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property types.
const (
	PropertyTypeShop = "shop"
	PropertyTypeFlat = "flat"
	PropertyTypePlot = "plot"
)

// Property is a leasable unit with its recurring charge schedule.
// LightBillAmount is a snapshot (LastUnit × UnitRate) recomputed whenever a
// new meter reading is recorded; the reconciliation engine never recomputes
// it per period.
type Property struct {
	ID                 uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name               string         `gorm:"column:name;not null" json:"name"`
	PropertyType       string         `gorm:"column:property_type;type:varchar(10);not null" json:"property_type"`
	Address            string         `gorm:"column:address" json:"address"`
	MonthlyRent        float64        `gorm:"column:monthly_rent;type:decimal(18,2);not null;default:0" json:"monthly_rent"`
	MonthlyMaintenance float64        `gorm:"column:monthly_maintenance;type:decimal(18,2);not null;default:0" json:"monthly_maintenance"`
	UnitRate           float64        `gorm:"column:unit_rate;type:decimal(18,2);not null;default:0" json:"unit_rate"`
	LastUnit           float64        `gorm:"column:last_unit;type:decimal(18,2);not null;default:0" json:"last_unit"`
	LightBillAmount    float64        `gorm:"column:light_bill_amount;type:decimal(18,2);not null;default:0" json:"light_bill_amount"`
	AdvanceAmount      float64        `gorm:"column:advance_amount;type:decimal(18,2);not null;default:0" json:"advance_amount"`
	MeterReadings      datatypes.JSON `gorm:"column:meter_readings;type:jsonb" json:"meter_readings"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Property) TableName() string {
	return "Properties"
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MeterReading is one entry of the append-only reading history stored in
// Property.MeterReadings.
type MeterReading struct {
	Unit   float64   `json:"unit"`
	Rate   float64   `json:"rate"`
	Amount float64   `json:"amount"`
	ReadOn time.Time `json:"read_on"`
}
