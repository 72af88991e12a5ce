package payments

import (
	"rentdesk-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles payment handlers.
type Handlers struct {
	Service *Service
}

// RecordPayment POST /api/v1/payments/record-payment
func (h *Handlers) RecordPayment(c *fiber.Ctx) error {
	var in RecordInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.Record(c.Context(), in)
	if err != nil {
		switch err {
		case ErrInvalidType, ErrInvalidAmount, ErrInvalidPeriod, ErrTenantMismatch:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrTenantNotFound, ErrPropertyNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Payment recorded successfully", p, nil)
}

// GetHistory GET /api/v1/payments/get-history?property_id=&tenant_id=&year=
func (h *Handlers) GetHistory(c *fiber.Ctx) error {
	var q HistoryQuery
	if v := c.Query("property_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.Error(c, "Invalid property ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
		}
		q.PropertyID = id
	}
	if v := c.Query("tenant_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.Error(c, "Invalid tenant ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
		}
		q.TenantID = id
	}
	q.Year = c.QueryInt("year", 0)

	out, err := h.Service.History(c.Context(), q)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Payments fetched successfully", out, nil)
}
