package analytics

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/payments"
	"rentdesk-backend/internal/properties"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAnalyticsTest(t *testing.T, now time.Time) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Property{}, &domain.Tenant{}, &domain.Payment{}))

	svc := &Service{
		DB:         db,
		Properties: &properties.Service{DB: db},
		Payments:   &payments.Service{DB: db},
		Now:        func() time.Time { return now },
	}
	return svc, db
}

// seedPortfolio: one occupied shop with a Jan 1 move-in, one vacant plot.
// Jan is fully settled (rent, maintenance, light, advance); Feb has only
// rent paid; Mar has nothing.
func seedPortfolio(t *testing.T, db *gorm.DB) (domain.Property, domain.Tenant) {
	prop := domain.Property{
		Name: "Shop 3", PropertyType: "shop",
		MonthlyRent: 6000, MonthlyMaintenance: 500,
		UnitRate: 8, LastUnit: 100, LightBillAmount: 800,
		AdvanceAmount: 20000,
	}
	require.NoError(t, db.Create(&prop).Error)
	tenant := domain.Tenant{
		Name:       "Asha Patel",
		PropertyID: &prop.ID,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RentStatus: domain.StatusPending,
	}
	require.NoError(t, db.Create(&tenant).Error)
	vacant := domain.Property{Name: "Plot 2", PropertyType: "plot", MonthlyRent: 3000}
	require.NoError(t, db.Create(&vacant).Error)

	jan5 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	feb7 := time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC)
	for _, p := range []domain.Payment{
		{PropertyID: prop.ID, TenantID: tenant.ID, Type: "rent", Amount: 6000, Year: 2024, Month: 1, PaidOn: jan5},
		{PropertyID: prop.ID, TenantID: tenant.ID, Type: "maintenance", Amount: 500, Year: 2024, Month: 1, PaidOn: jan5},
		{PropertyID: prop.ID, TenantID: tenant.ID, Type: "light", Amount: 800, Year: 2024, Month: 1, PaidOn: jan5},
		{PropertyID: prop.ID, TenantID: tenant.ID, Type: "advance", Amount: 20000, Year: 2024, Month: 1, PaidOn: jan5},
		{PropertyID: prop.ID, TenantID: tenant.ID, Type: "rent", Amount: 6000, Year: 2024, Month: 2, PaidOn: feb7},
	} {
		pp := p
		require.NoError(t, db.Create(&pp).Error)
	}
	return prop, tenant
}

func TestSummary_FromStoredPortfolio(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, db := setupAnalyticsTest(t, now)
	seedPortfolio(t, db)

	sum, err := svc.Summary(context.Background(), Filters{Year: 2024})
	require.NoError(t, err)

	// 6000+500+800+20000 (Jan) + 6000 (Feb)
	assert.True(t, sum.Earnings.Total.Equal(decimal.NewFromInt(33300)))
	assert.Equal(t, 5, sum.Earnings.Count)
	assert.Equal(t, 50, sum.OccupancyRate) // 1 of 2 occupied
	require.Equal(t, 1, sum.PendingRent.Count)
	assert.Equal(t, "Shop 3", sum.PendingRent.Details[0].Property)
}

// Outstanding omits the fully settled January and clips at the current
// period: only Feb (1300 short) and Mar (7300) appear.
func TestOutstanding_OmitsSettledAndClipsAtCurrentPeriod(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, db := setupAnalyticsTest(t, now)
	seedPortfolio(t, db)

	rows, err := svc.Outstanding(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for _, r := range rows {
		assert.NotEqual(t, "January 2024", r.Period)
	}
	feb, mar := rows[0], rows[1]
	assert.Equal(t, "February 2024", feb.Period)
	assert.Equal(t, "March 2024", mar.Period)
	assert.True(t, feb.RentPending.IsZero())
	assert.True(t, feb.MaintenancePending.Equal(decimal.NewFromInt(500)))
	assert.True(t, feb.LightPending.Equal(decimal.NewFromInt(800)))
	assert.True(t, feb.TotalOutstanding.Equal(decimal.NewFromInt(1300)))
	assert.True(t, mar.RentPending.Equal(decimal.NewFromInt(6000)))
	assert.True(t, mar.TotalOutstanding.Equal(decimal.NewFromInt(7300)))
}

func TestOutstanding_EmptyPortfolio(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, _ := setupAnalyticsTest(t, now)

	rows, err := svc.Outstanding(context.Background(), 2024)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// UpcomingDues: pending rent flag trips overdue even with the due date
// still ahead; paid tenants sort after overdue ones.
func TestUpcomingDues_OverdueFirst(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, db := setupAnalyticsTest(t, now)
	seedPortfolio(t, db)

	paidProp := domain.Property{Name: "Flat 7", PropertyType: "flat", MonthlyRent: 8000}
	require.NoError(t, db.Create(&paidProp).Error)
	paidTenant := domain.Tenant{
		Name:       "Ravi Kumar",
		PropertyID: &paidProp.ID,
		StartDate:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		RentStatus: domain.StatusPaid,
	}
	require.NoError(t, db.Create(&paidTenant).Error)

	rows, err := svc.UpcomingDues(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "Shop 3", first.Property)
	assert.True(t, first.Overdue)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), first.DueDate)
	assert.Equal(t, 22, first.DaysUntilOrOverdue)

	second := rows[1]
	assert.Equal(t, "Flat 7", second.Property)
	assert.False(t, second.Overdue)
	assert.True(t, second.Amount.Equal(decimal.NewFromInt(8000)))
}

func TestGetSummary_BadMonth(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, _ := setupAnalyticsTest(t, now)
	h := &Handlers{Service: svc}

	app := fiber.New()
	app.Get("/api/v1/analytics/get-summary", h.GetSummary)

	req := httptest.NewRequest("GET", "/api/v1/analytics/get-summary?month=13", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetOutstanding_OK(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	svc, db := setupAnalyticsTest(t, now)
	seedPortfolio(t, db)
	h := &Handlers{Service: svc}

	app := fiber.New()
	app.Get("/api/v1/analytics/get-outstanding", h.GetOutstanding)

	req := httptest.NewRequest("GET", "/api/v1/analytics/get-outstanding?year=2024", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
