package ledger

import "github.com/shopspring/decimal"

// PeriodBreakdown is the result of netting one (property, period) pair:
// what was paid and what remains pending, per charge type.
type PeriodBreakdown struct {
	Paid    map[ChargeType]decimal.Decimal
	Pending map[ChargeType]decimal.Decimal
	Total   decimal.Decimal // sum of pending across types
}

// Settled reports whether the period is fully paid up.
func (b PeriodBreakdown) Settled() bool {
	return b.Total.IsZero()
}

// ReconcilePeriod nets due vs paid for one period. Pending is floored at
// zero per type: an overpayment is absorbed silently and does not carry
// forward to the next period. Each period reconciles independently; that is
// a documented limitation of the billing model, not an oversight.
func ReconcilePeriod(due map[ChargeType]decimal.Decimal, payments []PaymentFact) PeriodBreakdown {
	b := PeriodBreakdown{
		Paid:    make(map[ChargeType]decimal.Decimal, len(ChargeTypes)),
		Pending: make(map[ChargeType]decimal.Decimal, len(ChargeTypes)),
		Total:   decimal.Zero,
	}
	for _, t := range ChargeTypes {
		paid := SumByType(payments, t)
		pending := due[t].Sub(paid)
		if pending.IsNegative() {
			pending = decimal.Zero
		}
		b.Paid[t] = paid
		b.Pending[t] = pending
		b.Total = b.Total.Add(pending)
	}
	return b
}

// OutstandingEntry is one row of the outstanding-payments table: a
// (property, period) pair with something still pending.
type OutstandingEntry struct {
	FlatID             string          `json:"flatId"`
	Tenant             string          `json:"tenant"`
	Period             string          `json:"period"`
	RentPending        decimal.Decimal `json:"rentPending"`
	MaintenancePending decimal.Decimal `json:"maintenancePending"`
	LightPending       decimal.Decimal `json:"lightPending"`
	AdvancePending     decimal.Decimal `json:"advancePending"`
	TotalOutstanding   decimal.Decimal `json:"totalOutstanding"`
}

// Outstanding reconciles every occupied property across its active periods
// within bounds and returns one row per period with pending > 0. Fully
// settled periods are omitted, not reported as zero rows.
func Outstanding(properties []PropertySnapshot, payments []PaymentFact, bounds Bounds) ([]OutstandingEntry, error) {
	var rows []OutstandingEntry
	for _, prop := range properties {
		if !prop.Occupied() {
			continue
		}
		resolved, err := ResolveSchedule(prop.Schedule, &prop.Tenant.Occupancy, &bounds)
		if err != nil {
			return nil, err
		}
		for _, p := range resolved.ActivePeriods {
			matched := Filter(payments, Query{
				PropertyID: prop.ID,
				TenantID:   prop.Tenant.ID,
				Year:       p.Year,
				Month:      p.Month,
			})
			b := ReconcilePeriod(resolved.DueFor(p), matched)
			if b.Settled() {
				continue
			}
			rows = append(rows, OutstandingEntry{
				FlatID:             prop.ID,
				Tenant:             prop.Tenant.Name,
				Period:             p.Label(),
				RentPending:        b.Pending[ChargeRent],
				MaintenancePending: b.Pending[ChargeMaintenance],
				LightPending:       b.Pending[ChargeLight],
				AdvancePending:     b.Pending[ChargeAdvance],
				TotalOutstanding:   b.Total,
			})
		}
	}
	return rows, nil
}
