package properties

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"rentdesk-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Name               string  `json:"name"`
	PropertyType       string  `json:"property_type"`
	Address            string  `json:"address"`
	MonthlyRent        float64 `json:"monthly_rent"`
	MonthlyMaintenance float64 `json:"monthly_maintenance"`
	UnitRate           float64 `json:"unit_rate"`
	LastUnit           float64 `json:"last_unit"`
	AdvanceAmount      float64 `json:"advance_amount"`
}

type UpdateInput struct {
	Name               *string  `json:"name"`
	PropertyType       *string  `json:"property_type"`
	Address            *string  `json:"address"`
	MonthlyRent        *float64 `json:"monthly_rent"`
	MonthlyMaintenance *float64 `json:"monthly_maintenance"`
	UnitRate           *float64 `json:"unit_rate"`
	AdvanceAmount      *float64 `json:"advance_amount"`
}

// PropertyWithTenant is the list/detail shape: the property plus its current
// tenant (nil when vacant).
type PropertyWithTenant struct {
	domain.Property
	Tenant *domain.Tenant `json:"tenant"`
}

func validType(t string) bool {
	switch t {
	case domain.PropertyTypeShop, domain.PropertyTypeFlat, domain.PropertyTypePlot:
		return true
	}
	return false
}

func validInput(in CreateInput) error {
	if in.Name == "" {
		return ErrNameRequired
	}
	if !validType(in.PropertyType) {
		return ErrInvalidPropertyType
	}
	if in.MonthlyRent < 0 || in.MonthlyMaintenance < 0 || in.UnitRate < 0 || in.LastUnit < 0 || in.AdvanceAmount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Property, error) {
	if err := validInput(in); err != nil {
		return nil, err
	}
	p := &domain.Property{
		Name:               in.Name,
		PropertyType:       in.PropertyType,
		Address:            in.Address,
		MonthlyRent:        in.MonthlyRent,
		MonthlyMaintenance: in.MonthlyMaintenance,
		UnitRate:           in.UnitRate,
		LastUnit:           in.LastUnit,
		LightBillAmount:    in.LastUnit * in.UnitRate,
		AdvanceAmount:      in.AdvanceAmount,
		MeterReadings:      datatypes.JSON("[]"),
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("Failed to create property: %v", err)
	}
	return p, nil
}

// List returns one page of properties with their current tenants, plus the
// total count for pagination metadata.
func (s *Service) List(ctx context.Context, page, limit int) ([]PropertyWithTenant, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := s.DB.WithContext(ctx).Model(&domain.Property{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var props []domain.Property
	if err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&props).Error; err != nil {
		return nil, 0, err
	}

	out, err := s.attachTenants(ctx, props)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListAll returns every property with its tenant (analytics callers need
// the full portfolio, not a page).
func (s *Service) ListAll(ctx context.Context) ([]PropertyWithTenant, error) {
	var props []domain.Property
	if err := s.DB.WithContext(ctx).Find(&props).Error; err != nil {
		return nil, err
	}
	return s.attachTenants(ctx, props)
}

func (s *Service) attachTenants(ctx context.Context, props []domain.Property) ([]PropertyWithTenant, error) {
	out := make([]PropertyWithTenant, len(props))
	if len(props) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, len(props))
	for i, p := range props {
		ids[i] = p.ID
		out[i] = PropertyWithTenant{Property: p}
	}
	var tenants []domain.Tenant
	if err := s.DB.WithContext(ctx).Where("property_id IN ?", ids).Find(&tenants).Error; err != nil {
		return nil, err
	}
	byProp := make(map[uuid.UUID]*domain.Tenant, len(tenants))
	for i := range tenants {
		if tenants[i].PropertyID != nil {
			byProp[*tenants[i].PropertyID] = &tenants[i]
		}
	}
	for i := range out {
		out[i].Tenant = byProp[out[i].ID]
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*PropertyWithTenant, error) {
	var p domain.Property
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	out, err := s.attachTenants(ctx, []domain.Property{p})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Property, error) {
	var p domain.Property
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, ErrNameRequired
		}
		p.Name = *in.Name
	}
	if in.PropertyType != nil {
		if !validType(*in.PropertyType) {
			return nil, ErrInvalidPropertyType
		}
		p.PropertyType = *in.PropertyType
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	for _, pair := range []struct {
		src *float64
		dst *float64
	}{
		{in.MonthlyRent, &p.MonthlyRent},
		{in.MonthlyMaintenance, &p.MonthlyMaintenance},
		{in.UnitRate, &p.UnitRate},
		{in.AdvanceAmount, &p.AdvanceAmount},
	} {
		if pair.src == nil {
			continue
		}
		if *pair.src < 0 {
			return nil, ErrNegativeAmount
		}
		*pair.dst = *pair.src
	}
	// unit rate change re-prices the current reading snapshot
	p.LightBillAmount = p.LastUnit * p.UnitRate

	if err := s.DB.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Property{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// RecordReading appends a meter reading to the property's history and
// recomputes the light-bill snapshot (lastUnit × unitRate). The schedule
// captures one flat monthly charge equal to the newest reading's cost; the
// reconciliation engine reads the snapshot and never re-derives it. If the
// property has a tenant, their light bill flips back to pending: a fresh
// reading is a fresh bill.
func (s *Service) RecordReading(ctx context.Context, id uuid.UUID, unit float64, readOn time.Time) (*domain.Property, error) {
	if unit < 0 || math.IsNaN(unit) || math.IsInf(unit, 0) {
		return nil, ErrNegativeAmount
	}
	var p domain.Property
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	if unit < p.LastUnit {
		return nil, ErrReadingBelowLast
	}

	var history []domain.MeterReading
	if len(p.MeterReadings) > 0 {
		_ = json.Unmarshal(p.MeterReadings, &history)
	}
	reading := domain.MeterReading{
		Unit:   unit,
		Rate:   p.UnitRate,
		Amount: unit * p.UnitRate,
		ReadOn: readOn,
	}
	history = append(history, reading)
	raw, err := json.Marshal(history)
	if err != nil {
		return nil, err
	}

	p.LastUnit = unit
	p.LightBillAmount = reading.Amount
	p.MeterReadings = datatypes.JSON(raw)

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Tenant{}).
			Where("property_id = ?", p.ID).
			Update("light_bill_status", domain.StatusPending).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
