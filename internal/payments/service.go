package payments

import (
	"context"
	"math"
	"time"

	"rentdesk-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// RecordInput is one ledger entry: a payment attributed to a billing
// period. Year/Month is the period the money is for; PaidOn is when it
// actually changed hands.
type RecordInput struct {
	PropertyID uuid.UUID  `json:"property_id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	Type       string     `json:"type"`
	Amount     float64    `json:"amount"`
	Year       int        `json:"year"`
	Month      int        `json:"month"`
	PaidOn     *time.Time `json:"paid_on"`
	Note       string     `json:"note"`
}

// HistoryQuery filters the payment history. Zero values mean "all".
type HistoryQuery struct {
	PropertyID uuid.UUID
	TenantID   uuid.UUID
	Year       int
}

func validType(t string) bool {
	switch t {
	case domain.PaymentTypeRent, domain.PaymentTypeMaintenance, domain.PaymentTypeLight, domain.PaymentTypeAdvance:
		return true
	}
	return false
}

// statusColumn maps a payment type to the tenant flag it settles. Advance
// has no flag.
func statusColumn(t string) string {
	switch t {
	case domain.PaymentTypeRent:
		return "rent_status"
	case domain.PaymentTypeMaintenance:
		return "maintenance_status"
	case domain.PaymentTypeLight:
		return "light_bill_status"
	}
	return ""
}

// Record appends a payment fact and flips the tenant's matching status flag
// to paid. Payments are immutable: there is no update or delete path, a
// wrong entry is corrected by another entry.
func (s *Service) Record(ctx context.Context, in RecordInput) (*domain.Payment, error) {
	if !validType(in.Type) {
		return nil, ErrInvalidType
	}
	if in.Amount <= 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return nil, ErrInvalidAmount
	}
	if in.Year < 1900 || in.Year > 3000 || in.Month < 1 || in.Month > 12 {
		return nil, ErrInvalidPeriod
	}

	var tenant domain.Tenant
	if err := s.DB.WithContext(ctx).Where("id = ?", in.TenantID).First(&tenant).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	var prop domain.Property
	if err := s.DB.WithContext(ctx).Where("id = ?", in.PropertyID).First(&prop).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	if tenant.PropertyID == nil || *tenant.PropertyID != prop.ID {
		return nil, ErrTenantMismatch
	}

	paidOn := time.Now().UTC()
	if in.PaidOn != nil {
		paidOn = *in.PaidOn
	}
	payment := &domain.Payment{
		PropertyID: in.PropertyID,
		TenantID:   in.TenantID,
		Type:       in.Type,
		Amount:     in.Amount,
		Year:       in.Year,
		Month:      in.Month,
		PaidOn:     paidOn,
		Note:       in.Note,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		if col := statusColumn(in.Type); col != "" {
			return tx.Model(&domain.Tenant{}).
				Where("id = ?", tenant.ID).
				Update(col, domain.StatusPaid).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// History returns payments matching the query, newest paid first. The sort
// is a presentation concern for the history screen; analytics callers go
// through the ledger engine instead.
func (s *Service) History(ctx context.Context, q HistoryQuery) ([]domain.Payment, error) {
	db := s.DB.WithContext(ctx).Model(&domain.Payment{})
	if q.PropertyID != uuid.Nil {
		db = db.Where("property_id = ?", q.PropertyID)
	}
	if q.TenantID != uuid.Nil {
		db = db.Where("tenant_id = ?", q.TenantID)
	}
	if q.Year != 0 {
		db = db.Where("year = ?", q.Year)
	}
	var out []domain.Payment
	if err := db.Order("paid_on DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every payment, optionally restricted to a year. Used by
// the analytics service to feed the reconciliation engine.
func (s *Service) ListAll(ctx context.Context, year int) ([]domain.Payment, error) {
	db := s.DB.WithContext(ctx).Model(&domain.Payment{})
	if year != 0 {
		db = db.Where("year = ?", year)
	}
	var out []domain.Payment
	if err := db.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
