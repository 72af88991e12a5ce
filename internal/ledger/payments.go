package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Query selects payment facts. All fields are optional and conjunctive;
// zero values mean "any". Month alone (without Year) is still honored so
// callers can ask for "every January".
type Query struct {
	PropertyID string
	TenantID   string
	Year       int
	Month      int
	Type       ChargeType
}

// Filter returns the payments matching q, preserving input order. It is a
// pure read-side view over the supplied slice; sorting for display is a
// separate concern (SortByPaidOnDesc).
func Filter(payments []PaymentFact, q Query) []PaymentFact {
	out := make([]PaymentFact, 0, len(payments))
	for _, p := range payments {
		if q.PropertyID != "" && p.PropertyID != q.PropertyID {
			continue
		}
		if q.TenantID != "" && p.TenantID != q.TenantID {
			continue
		}
		if q.Year != 0 && p.Year != q.Year {
			continue
		}
		if q.Month != 0 && p.Month != q.Month {
			continue
		}
		if q.Type != "" && p.Type != q.Type {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SumByType sums amounts over payments of the given type.
func SumByType(payments []PaymentFact, t ChargeType) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p.Type == t {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

// SumAll sums every payment amount regardless of type.
func SumAll(payments []PaymentFact) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// SortByPaidOnDesc orders payments newest-first by actual payment date.
// Presentation helper for history screens, layered on top of Filter.
func SortByPaidOnDesc(payments []PaymentFact) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].PaidOn.After(payments[j].PaidOn)
	})
}
