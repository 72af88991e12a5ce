package payments

import "errors"

var (
	ErrInvalidType      = errors.New("Payment type must be rent, maintenance, light or advance")
	ErrInvalidAmount    = errors.New("Payment amount must be a positive number")
	ErrInvalidPeriod    = errors.New("Billing period must have a valid year and month (1-12)")
	ErrTenantNotFound   = errors.New("Tenant not found")
	ErrPropertyNotFound = errors.New("Property not found")
	ErrTenantMismatch   = errors.New("Tenant is not assigned to this property")
)
