package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/ledger"
	"rentdesk-backend/internal/payments"
	"rentdesk-backend/internal/properties"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service composes the reconciliation engine over stored collections. It
// loads snapshots, hands them to internal/ledger, and returns the derived
// rows; all arithmetic lives in the engine.
type Service struct {
	DB         *gorm.DB
	Properties *properties.Service
	Payments   *payments.Service

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Filters mirror the dashboard query string: year/month select the billing
// period, property narrows to one unit.
type Filters struct {
	Year       int
	Month      int
	PropertyID string
}

// DueRow is a DueItem joined with property and tenant labels for the
// upcoming-payments table.
type DueRow struct {
	PropertyID string `json:"property_id"`
	Property   string `json:"property"`
	Tenant     string `json:"tenant"`
	ledger.DueItem
}

// Summary runs the portfolio aggregation for the dashboard and analytics
// cards.
func (s *Service) Summary(ctx context.Context, f Filters) (ledger.PortfolioSummary, error) {
	props, facts, err := s.loadSnapshots(ctx, f.Year)
	if err != nil {
		return ledger.PortfolioSummary{}, err
	}
	return ledger.Aggregate(props, facts, ledger.Filters{
		Year:       f.Year,
		Month:      f.Month,
		PropertyID: f.PropertyID,
	}), nil
}

// Outstanding reconciles every occupied property over the requested year
// and returns the rows with pending amounts. Zero year defaults to the
// current one: the engine refuses unbounded enumeration, so a bound is
// always supplied here.
func (s *Service) Outstanding(ctx context.Context, year int) ([]ledger.OutstandingEntry, error) {
	if year == 0 {
		year = s.now().Year()
	}
	props, facts, err := s.loadSnapshots(ctx, year)
	if err != nil {
		return nil, err
	}
	bounds := ledger.Bounds{
		From: ledger.Period{Year: year, Month: 1},
		To:   ledger.Period{Year: year, Month: 12},
	}
	// Don't report future months as outstanding
	current := ledger.PeriodOf(s.now())
	if current.Before(bounds.To) && !current.Before(bounds.From) {
		bounds.To = current
	}
	rows, err := ledger.Outstanding(props, facts, bounds)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []ledger.OutstandingEntry{}
	}
	return rows, nil
}

// UpcomingDues builds the dues table: one row per occupied property,
// overdue first, most urgent on top.
func (s *Service) UpcomingDues(ctx context.Context) ([]DueRow, error) {
	props, err := s.Properties.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()

	rows := []DueRow{}
	for _, p := range props {
		snap := snapshotProperty(p)
		if !snap.Occupied() {
			continue
		}
		item := ledger.NextDue(&snap.Tenant.Occupancy, snap.Schedule, today)
		if item == nil {
			continue
		}
		rows = append(rows, DueRow{
			PropertyID: snap.ID,
			Property:   snap.Label,
			Tenant:     snap.Tenant.Name,
			DueItem:    *item,
		})
	}

	// Same ordering the engine defines for due items: overdue first, then
	// days ascending.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Overdue != rows[j].Overdue {
			return rows[i].Overdue
		}
		return rows[i].DaysUntilOrOverdue < rows[j].DaysUntilOrOverdue
	})
	return rows, nil
}

// loadSnapshots fetches the portfolio and payment facts, year-bounded when
// the caller filters by year.
func (s *Service) loadSnapshots(ctx context.Context, year int) ([]ledger.PropertySnapshot, []ledger.PaymentFact, error) {
	props, err := s.Properties.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	pays, err := s.Payments.ListAll(ctx, year)
	if err != nil {
		return nil, nil, err
	}

	snaps := make([]ledger.PropertySnapshot, len(props))
	for i, p := range props {
		snaps[i] = snapshotProperty(p)
	}
	facts := make([]ledger.PaymentFact, len(pays))
	for i, p := range pays {
		facts[i] = paymentFact(p)
	}
	return snaps, facts, nil
}

// snapshotProperty normalizes a stored property (and its tenant, if any)
// into the engine's canonical shape. Field-name aliases and float storage
// end here; the engine only ever sees one spelling.
func snapshotProperty(p properties.PropertyWithTenant) ledger.PropertySnapshot {
	snap := ledger.PropertySnapshot{
		ID:    p.ID.String(),
		Label: p.Name,
		Type:  p.PropertyType,
		Schedule: ledger.Schedule{
			Rent:        amount(p.MonthlyRent),
			Maintenance: amount(p.MonthlyMaintenance),
			UnitRate:    amount(p.UnitRate),
			LastUnit:    amount(p.LastUnit),
			Advance:     amount(p.AdvanceAmount),
		},
	}
	if t := p.Tenant; t != nil && t.Active() {
		snap.Tenant = &ledger.TenantSnapshot{
			ID:   t.ID.String(),
			Name: t.Name,
			Occupancy: ledger.Occupancy{
				Start:             t.StartDate,
				End:               t.EndDate,
				RentStatus:        ledger.Status(t.RentStatus),
				MaintenanceStatus: ledger.Status(t.MaintenanceStatus),
				LightBillStatus:   ledger.Status(t.LightBillStatus),
			},
		}
	}
	return snap
}

func paymentFact(p domain.Payment) ledger.PaymentFact {
	return ledger.PaymentFact{
		PropertyID: p.PropertyID.String(),
		TenantID:   p.TenantID.String(),
		Type:       ledger.ChargeType(p.Type),
		Amount:     amount(p.Amount),
		Year:       p.Year,
		Month:      p.Month,
		PaidOn:     p.PaidOn,
	}
}

// amount converts a stored float to engine money. Upstream data is
// user-entered and only loosely validated; a NaN or infinite amount
// degrades to zero instead of poisoning a whole dashboard render.
func amount(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
