package tenants

import (
	"time"

	"rentdesk-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles tenant handlers.
type Handlers struct {
	Service *Service
}

// CreateTenant POST /api/v1/tenants/create-tenant
func (h *Handlers) CreateTenant(c *fiber.Ctx) error {
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	t, err := h.Service.Create(c.Context(), in)
	if err != nil {
		switch err {
		case ErrNameRequired, ErrStartDateRequired, ErrPropertyOccupied,
			ErrInvalidName, ErrInvalidEmail, ErrInvalidPhone:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrPropertyNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Tenant created successfully", t, nil)
}

// GetAllTenants GET /api/v1/tenants/get-all-tenants
func (h *Handlers) GetAllTenants(c *fiber.Ctx) error {
	out, err := h.Service.GetAll(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Tenants fetched successfully", out, nil)
}

// GetTenant GET /api/v1/tenants/get-tenant/:tenant_id
func (h *Handlers) GetTenant(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("tenant_id"))
	if err != nil {
		return response.Error(c, "Invalid tenant ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	t, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if err == ErrTenantNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Tenant fetched successfully", t, nil)
}

type assignRequest struct {
	PropertyID string    `json:"property_id"`
	StartDate  time.Time `json:"start_date"`
}

// AssignTenant POST /api/v1/tenants/assign-tenant/:tenant_id
func (h *Handlers) AssignTenant(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("tenant_id"))
	if err != nil {
		return response.Error(c, "Invalid tenant ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return response.Error(c, "Invalid property ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	t, err := h.Service.Assign(c.Context(), tenantID, propertyID, req.StartDate)
	if err != nil {
		switch err {
		case ErrStartDateRequired, ErrPropertyOccupied:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrTenantNotFound, ErrPropertyNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Tenant assigned successfully", t, nil)
}

type vacateRequest struct {
	EndDate *time.Time `json:"end_date"`
}

// VacateTenant POST /api/v1/tenants/vacate-tenant/:tenant_id
func (h *Handlers) VacateTenant(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("tenant_id"))
	if err != nil {
		return response.Error(c, "Invalid tenant ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	var req vacateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	end := time.Time{}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	t, err := h.Service.Vacate(c.Context(), tenantID, end)
	if err != nil {
		switch err {
		case ErrNotAssigned, ErrEndBeforeStart:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrTenantNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Tenant vacated successfully", t, nil)
}

// UpdateStatus PATCH /api/v1/tenants/update-status/:tenant_id
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("tenant_id"))
	if err != nil {
		return response.Error(c, "Invalid tenant ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	var in StatusInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	t, err := h.Service.UpdateStatus(c.Context(), tenantID, in)
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrTenantNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Tenant status updated successfully", t, nil)
}
