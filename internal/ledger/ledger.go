// Package ledger is the rent/utility reconciliation engine. It is a set of
// pure functions over plain snapshots: callers load properties, tenants and
// payment facts from storage, map them into the types here, and render the
// derived rows. Nothing in this package touches the database, caches, or
// mutates its inputs.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ChargeType is one of the recurring (or one-time, for advance) charge kinds.
type ChargeType string

const (
	ChargeRent        ChargeType = "rent"
	ChargeMaintenance ChargeType = "maintenance"
	ChargeLight       ChargeType = "light"
	ChargeAdvance     ChargeType = "advance"
)

// ChargeTypes lists all charge types in reconciliation order.
var ChargeTypes = []ChargeType{ChargeRent, ChargeMaintenance, ChargeLight, ChargeAdvance}

// Valid reports whether t is a known charge type.
func (t ChargeType) Valid() bool {
	switch t {
	case ChargeRent, ChargeMaintenance, ChargeLight, ChargeAdvance:
		return true
	}
	return false
}

// Status is a tenant payment status flag.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
)

// Period is one (year, month) billing cycle. Month is 1-12.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// PeriodOf returns the billing period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Start returns the first instant of the period (UTC midnight on the 1st).
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following billing period.
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Year: p.Year + 1, Month: 1}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// Before reports whether p precedes q.
func (p Period) Before(q Period) bool {
	return p.Year < q.Year || (p.Year == q.Year && p.Month < q.Month)
}

// Label renders the period for outstanding tables, e.g. "January 2025".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month), p.Year)
}

// Schedule is the canonical per-property charge schedule. Host models use
// several field spellings for the same amounts; they are normalized into
// this shape at the boundary, never inside the engine.
type Schedule struct {
	Rent        decimal.Decimal
	Maintenance decimal.Decimal
	UnitRate    decimal.Decimal
	LastUnit    decimal.Decimal
	Advance     decimal.Decimal
}

// LightBill is the flat monthly electricity charge captured by the schedule:
// the cost of the most recent meter reading. It is a snapshot, recomputed
// externally whenever a new reading is recorded, not per period.
func (s Schedule) LightBill() decimal.Decimal {
	return s.LastUnit.Mul(s.UnitRate)
}

// Occupancy is a tenant's liability window plus the three status flags.
type Occupancy struct {
	Start             time.Time
	End               *time.Time // nil = ongoing
	RentStatus        Status
	MaintenanceStatus Status
	LightBillStatus   Status
}

// PaymentFact is one immutable payment record. Year/Month is the billing
// period the payment is attributed to, distinct from PaidOn.
type PaymentFact struct {
	PropertyID string
	TenantID   string
	Type       ChargeType
	Amount     decimal.Decimal
	Year       int
	Month      int
	PaidOn     time.Time
}

// TenantSnapshot is the tenant view the engine needs: identity plus occupancy.
type TenantSnapshot struct {
	ID   string
	Name string
	Occupancy
}

// PropertySnapshot is the canonical property view: identity, schedule, and
// the current tenant (nil = vacant, contributes no obligations).
type PropertySnapshot struct {
	ID       string
	Label    string
	Type     string // shop | flat | plot
	Schedule Schedule
	Tenant   *TenantSnapshot
}

// Occupied reports whether the property has an active tenant.
func (p PropertySnapshot) Occupied() bool {
	return p.Tenant != nil
}
