package properties

import (
	"time"

	"rentdesk-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles property handlers.
type Handlers struct {
	Service *Service
}

// CreateProperty POST /api/v1/properties/create-property
func (h *Handlers) CreateProperty(c *fiber.Ctx) error {
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.Create(c.Context(), in)
	if err != nil {
		switch err {
		case ErrNameRequired, ErrInvalidPropertyType, ErrNegativeAmount:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Property created successfully", p, nil)
}

// GetAllProperties GET /api/v1/properties/get-all-properties?page=&limit=
func (h *Handlers) GetAllProperties(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	props, total, err := h.Service.List(c.Context(), page, limit)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Properties fetched successfully", props, fiber.Map{
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// GetProperty GET /api/v1/properties/get-property/:property_id
func (h *Handlers) GetProperty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("property_id"))
	if err != nil {
		return response.Error(c, "Invalid property ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if err == ErrPropertyNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Property fetched successfully", p, nil)
}

// UpdateProperty PUT /api/v1/properties/update-property/:property_id
func (h *Handlers) UpdateProperty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("property_id"))
	if err != nil {
		return response.Error(c, "Invalid property ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	var in UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		switch err {
		case ErrPropertyNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case ErrNameRequired, ErrInvalidPropertyType, ErrNegativeAmount:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Property updated successfully", p, nil)
}

// DeleteProperty DELETE /api/v1/properties/delete-property/:property_id
func (h *Handlers) DeleteProperty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("property_id"))
	if err != nil {
		return response.Error(c, "Invalid property ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == ErrPropertyNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Property deleted successfully", nil, nil)
}

type recordReadingRequest struct {
	Unit   float64    `json:"unit"`
	ReadOn *time.Time `json:"read_on"`
}

// RecordReading POST /api/v1/properties/record-reading/:property_id
func (h *Handlers) RecordReading(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("property_id"))
	if err != nil {
		return response.Error(c, "Invalid property ID format (must be a valid UUID)", fiber.StatusBadRequest, nil)
	}
	var req recordReadingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	readOn := time.Now().UTC()
	if req.ReadOn != nil {
		readOn = *req.ReadOn
	}
	p, err := h.Service.RecordReading(c.Context(), id, req.Unit, readOn)
	if err != nil {
		switch err {
		case ErrPropertyNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case ErrNegativeAmount, ErrReadingBelowLast:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Reading recorded successfully", p, nil)
}
