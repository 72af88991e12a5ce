package payments

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"rentdesk-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPaymentTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Property{}, &domain.Tenant{}, &domain.Payment{}))

	return &Handlers{Service: &Service{DB: db}}, db
}

func seedOccupancy(t *testing.T, db *gorm.DB) (domain.Property, domain.Tenant) {
	prop := domain.Property{Name: "Shop 4", PropertyType: "shop", MonthlyRent: 6000}
	require.NoError(t, db.Create(&prop).Error)
	tenant := domain.Tenant{
		Name:       "Ravi Kumar",
		PropertyID: &prop.ID,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RentStatus: domain.StatusPending,
	}
	require.NoError(t, db.Create(&tenant).Error)
	return prop, tenant
}

// TestRecordPayment creates the fact and flips the tenant's rent flag.
func TestRecordPayment(t *testing.T) {
	h, db := setupPaymentTest(t)
	prop, tenant := seedOccupancy(t, db)

	app := fiber.New()
	app.Post("/api/v1/payments/record-payment", h.RecordPayment)

	body, _ := json.Marshal(map[string]interface{}{
		"property_id": prop.ID.String(),
		"tenant_id":   tenant.ID.String(),
		"type":        "rent",
		"amount":      6000,
		"year":        2024,
		"month":       3,
	})
	req := httptest.NewRequest("POST", "/api/v1/payments/record-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var p domain.Payment
	require.NoError(t, db.First(&p).Error)
	assert.Equal(t, "rent", p.Type)
	assert.Equal(t, 6000.0, p.Amount)
	assert.Equal(t, 2024, p.Year)
	assert.Equal(t, 3, p.Month)

	var got domain.Tenant
	require.NoError(t, db.First(&got, "id = ?", tenant.ID).Error)
	assert.Equal(t, domain.StatusPaid, got.RentStatus)
}

// TestRecordPayment_AdvanceLeavesFlags: advance settles no flag.
func TestRecordPayment_AdvanceLeavesFlags(t *testing.T) {
	h, db := setupPaymentTest(t)
	prop, tenant := seedOccupancy(t, db)

	app := fiber.New()
	app.Post("/api/v1/payments/record-payment", h.RecordPayment)

	body, _ := json.Marshal(map[string]interface{}{
		"property_id": prop.ID.String(),
		"tenant_id":   tenant.ID.String(),
		"type":        "advance",
		"amount":      20000,
		"year":        2024,
		"month":       1,
	})
	req := httptest.NewRequest("POST", "/api/v1/payments/record-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var got domain.Tenant
	require.NoError(t, db.First(&got, "id = ?", tenant.ID).Error)
	assert.Equal(t, domain.StatusPending, got.RentStatus)
}

func TestRecordPayment_InvalidType(t *testing.T) {
	h, db := setupPaymentTest(t)
	prop, tenant := seedOccupancy(t, db)

	app := fiber.New()
	app.Post("/api/v1/payments/record-payment", h.RecordPayment)

	body, _ := json.Marshal(map[string]interface{}{
		"property_id": prop.ID.String(),
		"tenant_id":   tenant.ID.String(),
		"type":        "deposit",
		"amount":      100,
		"year":        2024,
		"month":       1,
	})
	req := httptest.NewRequest("POST", "/api/v1/payments/record-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRecordPayment_BadPeriod(t *testing.T) {
	h, db := setupPaymentTest(t)
	prop, tenant := seedOccupancy(t, db)

	app := fiber.New()
	app.Post("/api/v1/payments/record-payment", h.RecordPayment)

	body, _ := json.Marshal(map[string]interface{}{
		"property_id": prop.ID.String(),
		"tenant_id":   tenant.ID.String(),
		"type":        "rent",
		"amount":      100,
		"year":        2024,
		"month":       13,
	})
	req := httptest.NewRequest("POST", "/api/v1/payments/record-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// TestRecordPayment_TenantMismatch: the tenant must occupy the property the
// payment is booked against.
func TestRecordPayment_TenantMismatch(t *testing.T) {
	h, db := setupPaymentTest(t)
	_, tenant := seedOccupancy(t, db)
	other := domain.Property{Name: "Flat 9", PropertyType: "flat"}
	require.NoError(t, db.Create(&other).Error)

	app := fiber.New()
	app.Post("/api/v1/payments/record-payment", h.RecordPayment)

	body, _ := json.Marshal(map[string]interface{}{
		"property_id": other.ID.String(),
		"tenant_id":   tenant.ID.String(),
		"type":        "rent",
		"amount":      6000,
		"year":        2024,
		"month":       3,
	})
	req := httptest.NewRequest("POST", "/api/v1/payments/record-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRecordPayment_TenantNotFound(t *testing.T) {
	h, db := setupPaymentTest(t)
	prop, _ := seedOccupancy(t, db)

	app := fiber.New()
	app.Post("/api/v1/payments/record-payment", h.RecordPayment)

	body, _ := json.Marshal(map[string]interface{}{
		"property_id": prop.ID.String(),
		"tenant_id":   uuid.New().String(),
		"type":        "rent",
		"amount":      6000,
		"year":        2024,
		"month":       3,
	})
	req := httptest.NewRequest("POST", "/api/v1/payments/record-payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// TestGetHistory_SortedAndFiltered: newest paid first, filtered by tenant.
func TestGetHistory_SortedAndFiltered(t *testing.T) {
	h, db := setupPaymentTest(t)
	prop, tenant := seedOccupancy(t, db)
	otherTenant := domain.Tenant{Name: "Asha Verma", StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(&otherTenant).Error)

	older := domain.Payment{
		PropertyID: prop.ID, TenantID: tenant.ID, Type: "rent", Amount: 6000,
		Year: 2024, Month: 1, PaidOn: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	newer := domain.Payment{
		PropertyID: prop.ID, TenantID: tenant.ID, Type: "rent", Amount: 6000,
		Year: 2024, Month: 2, PaidOn: time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC),
	}
	foreign := domain.Payment{
		PropertyID: prop.ID, TenantID: otherTenant.ID, Type: "rent", Amount: 1000,
		Year: 2024, Month: 2, PaidOn: time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&foreign).Error)

	app := fiber.New()
	app.Get("/api/v1/payments/get-history", h.GetHistory)

	req := httptest.NewRequest("GET", "/api/v1/payments/get-history?tenant_id="+tenant.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []domain.Payment `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.Data[0].Month)
	assert.Equal(t, 1, body.Data[1].Month)
}

func TestGetHistory_BadUUID(t *testing.T) {
	h, _ := setupPaymentTest(t)
	app := fiber.New()
	app.Get("/api/v1/payments/get-history", h.GetHistory)

	req := httptest.NewRequest("GET", "/api/v1/payments/get-history?property_id=nope", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
