package ledger

import (
	"math"

	"github.com/shopspring/decimal"
)

// Filters restrict which payments and properties an aggregation considers.
// Year/Month select by billing period (not by paid-on date); zero values
// mean "all".
type Filters struct {
	Year       int
	Month      int
	PropertyID string
}

// Earnings is the income side of the portfolio summary. Every payment type
// contributes, advance included: advance receipts inflating "earnings" is
// observed behavior the dashboards rely on, kept as-is.
type Earnings struct {
	Total  decimal.Decimal            `json:"total"`
	ByType map[ChargeType]decimal.Decimal `json:"byType"`
	Count  int                        `json:"count"`
}

// Spends is the maintenance-specific outgoing view. Total is dues-based
// (maintenance owed across occupied properties), Paid is payment-based.
type Spends struct {
	Total   decimal.Decimal `json:"total"`
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
}

// PendingRentDetail is one row of the flag-based pending-rent list.
type PendingRentDetail struct {
	Property string          `json:"property"`
	Tenant   string          `json:"tenant"`
	Amount   decimal.Decimal `json:"amount"`
}

// PendingRent is the status-flag view of unpaid rent. It is deliberately
// coarser than the per-period reconciliation behind Outstanding: the two
// definitions feed different screens and are kept distinct.
type PendingRent struct {
	Total   decimal.Decimal     `json:"total"`
	Count   int                 `json:"count"`
	Details []PendingRentDetail `json:"details"`
}

// PortfolioSummary feeds the dashboard cards and analytics breakdowns.
type PortfolioSummary struct {
	Earnings             Earnings        `json:"earnings"`
	Spends               Spends          `json:"spends"`
	PendingRent          PendingRent     `json:"pendingRent"`
	NetAmount            decimal.Decimal `json:"netAmount"`
	ProfitMargin         int             `json:"profitMargin"`         // percent, 0 when no earnings
	OccupancyRate        int             `json:"occupancyRate"`        // percent, 0 on empty portfolio
	CollectionEfficiency int             `json:"collectionEfficiency"` // percent, 100 on empty or fully collected
}

// Aggregate folds properties and payment facts into one portfolio summary.
// Pure and idempotent: identical inputs always produce identical output.
func Aggregate(properties []PropertySnapshot, payments []PaymentFact, f Filters) PortfolioSummary {
	props := properties
	if f.PropertyID != "" {
		props = props[:0:0]
		for _, p := range properties {
			if p.ID == f.PropertyID {
				props = append(props, p)
			}
		}
	}
	matched := Filter(payments, Query{PropertyID: f.PropertyID, Year: f.Year, Month: f.Month})

	earnings := Earnings{
		Total:  SumAll(matched),
		ByType: make(map[ChargeType]decimal.Decimal, len(ChargeTypes)),
		Count:  len(matched),
	}
	for _, t := range ChargeTypes {
		earnings.ByType[t] = SumByType(matched, t)
	}

	spendsTotal := decimal.Zero
	expectedRent := decimal.Zero
	pending := PendingRent{Total: decimal.Zero, Details: []PendingRentDetail{}}
	occupied := 0
	for _, p := range props {
		if !p.Occupied() {
			continue
		}
		occupied++
		spendsTotal = spendsTotal.Add(p.Schedule.Maintenance)
		expectedRent = expectedRent.Add(p.Schedule.Rent)
		if p.Tenant.RentStatus == StatusPending {
			pending.Details = append(pending.Details, PendingRentDetail{
				Property: p.Label,
				Tenant:   p.Tenant.Name,
				Amount:   p.Schedule.Rent,
			})
			pending.Total = pending.Total.Add(p.Schedule.Rent)
		}
	}
	pending.Count = len(pending.Details)

	spendsPaid := earnings.ByType[ChargeMaintenance]
	spendsPending := spendsTotal.Sub(spendsPaid)
	if spendsPending.IsNegative() {
		spendsPending = decimal.Zero
	}

	net := earnings.Total.Sub(spendsTotal)

	return PortfolioSummary{
		Earnings:             earnings,
		Spends:               Spends{Total: spendsTotal, Paid: spendsPaid, Pending: spendsPending},
		PendingRent:          pending,
		NetAmount:            net,
		ProfitMargin:         percentOf(net, earnings.Total, 0),
		OccupancyRate:        roundPercent(occupied, len(props)),
		CollectionEfficiency: percentOf(expectedRent.Sub(pending.Total), expectedRent, 100),
	}
}

// percentOf is round(part/whole*100), or fallback when whole is zero. An
// all-vacant or fully-collected portfolio reports the fallback, never NaN.
func percentOf(part, whole decimal.Decimal, fallback int) int {
	if whole.IsZero() {
		return fallback
	}
	return int(part.Div(whole).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

func roundPercent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
