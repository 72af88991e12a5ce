package tenants

import (
	"context"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	PropertyID *uuid.UUID `json:"property_id"`
	StartDate  time.Time  `json:"start_date"`
}

// StatusInput updates the three flags independently; nil leaves a flag alone.
type StatusInput struct {
	RentStatus        *string `json:"rent_status"`
	MaintenanceStatus *string `json:"maintenance_status"`
	LightBillStatus   *string `json:"light_bill_status"`
}

func validStatus(s string) bool {
	return s == domain.StatusPaid || s == domain.StatusPending
}

// Create registers a tenant, optionally assigning a property right away.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Tenant, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if !validation.IsValidName(in.Name) {
		return nil, ErrInvalidName
	}
	if in.Email != "" && !validation.IsValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if in.Phone != "" && !validation.IsValidPhone(in.Phone) {
		return nil, ErrInvalidPhone
	}
	if in.StartDate.IsZero() {
		return nil, ErrStartDateRequired
	}
	t := &domain.Tenant{
		Name:              in.Name,
		Phone:             in.Phone,
		Email:             in.Email,
		StartDate:         in.StartDate,
		RentStatus:        domain.StatusPending,
		MaintenanceStatus: domain.StatusPending,
		LightBillStatus:   domain.StatusPending,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.PropertyID != nil {
			if err := s.checkAssignable(tx, *in.PropertyID); err != nil {
				return err
			}
			t.PropertyID = in.PropertyID
		}
		return tx.Create(t).Error
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) checkAssignable(tx *gorm.DB, propertyID uuid.UUID) error {
	var prop domain.Property
	if err := tx.Where("id = ?", propertyID).First(&prop).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrPropertyNotFound
		}
		return err
	}
	var count int64
	if err := tx.Model(&domain.Tenant{}).Where("property_id = ?", propertyID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrPropertyOccupied
	}
	return nil
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Tenant, error) {
	var out []domain.Tenant
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("Failed to fetch tenants: %v", err)
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var t domain.Tenant
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Assign moves a tenant into a property, starting a new occupancy window.
func (s *Service) Assign(ctx context.Context, tenantID, propertyID uuid.UUID, startDate time.Time) (*domain.Tenant, error) {
	if startDate.IsZero() {
		return nil, ErrStartDateRequired
	}
	var t domain.Tenant
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", tenantID).First(&t).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrTenantNotFound
			}
			return err
		}
		if err := s.checkAssignable(tx, propertyID); err != nil {
			return err
		}
		t.PropertyID = &propertyID
		t.StartDate = startDate
		t.EndDate = nil
		t.RentStatus = domain.StatusPending
		t.MaintenanceStatus = domain.StatusPending
		t.LightBillStatus = domain.StatusPending
		return tx.Save(&t).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Vacate ends the occupancy: the end date closes the liability window and
// the property detaches, leaving the tenant inactive. Payment history stays.
func (s *Service) Vacate(ctx context.Context, tenantID uuid.UUID, endDate time.Time) (*domain.Tenant, error) {
	var t domain.Tenant
	if err := s.DB.WithContext(ctx).Where("id = ?", tenantID).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	if !t.Active() {
		return nil, ErrNotAssigned
	}
	if endDate.IsZero() {
		endDate = time.Now().UTC()
	}
	if endDate.Before(t.StartDate) {
		return nil, ErrEndBeforeStart
	}
	t.EndDate = &endDate
	t.PropertyID = nil
	if err := s.DB.WithContext(ctx).Save(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateStatus sets the given status flags.
func (s *Service) UpdateStatus(ctx context.Context, tenantID uuid.UUID, in StatusInput) (*domain.Tenant, error) {
	var t domain.Tenant
	if err := s.DB.WithContext(ctx).Where("id = ?", tenantID).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	for _, pair := range []struct {
		src *string
		dst *string
	}{
		{in.RentStatus, &t.RentStatus},
		{in.MaintenanceStatus, &t.MaintenanceStatus},
		{in.LightBillStatus, &t.LightBillStatus},
	} {
		if pair.src == nil {
			continue
		}
		if !validStatus(*pair.src) {
			return nil, ErrInvalidStatus
		}
		*pair.dst = *pair.src
	}
	if err := s.DB.WithContext(ctx).Save(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
