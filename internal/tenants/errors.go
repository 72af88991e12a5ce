package tenants

import "errors"

var (
	ErrNameRequired      = errors.New("Tenant name is required")
	ErrStartDateRequired = errors.New("Start date is required")
	ErrTenantNotFound    = errors.New("Tenant not found")
	ErrPropertyNotFound  = errors.New("Property not found")
	ErrPropertyOccupied  = errors.New("Property already has an active tenant")
	ErrNotAssigned       = errors.New("Tenant is not assigned to a property")
	ErrInvalidStatus     = errors.New("Status must be paid or pending")
	ErrEndBeforeStart    = errors.New("End date cannot be before start date")
	ErrInvalidEmail      = errors.New("Invalid email address")
	ErrInvalidName       = errors.New("Tenant name can only contain letters, spaces, hyphens, apostrophes")
	ErrInvalidPhone      = errors.New("Invalid phone number")
)
