package analytics

import (
	"rentdesk-backend/internal/ledger"
	"rentdesk-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles analytics handlers.
type Handlers struct {
	Service *Service
}

func parseFilters(c *fiber.Ctx) (Filters, error) {
	f := Filters{
		Year:  c.QueryInt("year", 0),
		Month: c.QueryInt("month", 0),
	}
	if f.Month < 0 || f.Month > 12 {
		return f, fiber.NewError(fiber.StatusBadRequest, "Month must be between 1 and 12")
	}
	if v := c.Query("property_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "Invalid property ID format (must be a valid UUID)")
		}
		f.PropertyID = id.String()
	}
	return f, nil
}

// GetSummary GET /api/v1/analytics/get-summary?year=&month=&property_id=
func (h *Handlers) GetSummary(c *fiber.Ctx) error {
	f, err := parseFilters(c)
	if err != nil {
		return response.Error(c, err.(*fiber.Error).Message, fiber.StatusBadRequest, nil)
	}
	sum, err := h.Service.Summary(c.Context(), f)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Summary fetched successfully", sum, nil)
}

// GetOutstanding GET /api/v1/analytics/get-outstanding?year=
func (h *Handlers) GetOutstanding(c *fiber.Ctx) error {
	year := c.QueryInt("year", 0)
	rows, err := h.Service.Outstanding(c.Context(), year)
	if err != nil {
		if err == ledger.ErrUnboundedRange {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Outstanding payments fetched successfully", rows, nil)
}

// GetUpcomingDues GET /api/v1/analytics/get-upcoming-dues
func (h *Handlers) GetUpcomingDues(c *fiber.Ctx) error {
	rows, err := h.Service.UpcomingDues(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Upcoming dues fetched successfully", rows, nil)
}
