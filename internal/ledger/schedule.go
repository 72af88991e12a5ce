package ledger

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnboundedRange is returned when an ongoing occupancy (no end date) is
// resolved without explicit bounds. Enumerating "start to forever" is a
// caller bug, not something the engine guesses its way around.
var ErrUnboundedRange = errors.New("occupancy has no end date: explicit period bounds are required")

// Bounds is an inclusive period range supplied by the caller to clip
// enumeration (the aggregator passes the requested year).
type Bounds struct {
	From Period
	To   Period
}

// ResolvedSchedule is the output of ResolveSchedule: the periods the tenant
// is liable for, and the per-type monthly dues. Advance is non-recurring; it
// is owed only in the first active period, so per-period dues are read
// through DueFor rather than Due directly.
type ResolvedSchedule struct {
	ActivePeriods []Period
	Due           map[ChargeType]decimal.Decimal // recurring monthly dues + one-time advance
	First         Period                         // first active period (zero value when none)
}

// DueFor returns the dues owed in period p. Recurring types are flat per
// month; advance appears only in the first active period and is zero after.
func (r ResolvedSchedule) DueFor(p Period) map[ChargeType]decimal.Decimal {
	due := map[ChargeType]decimal.Decimal{
		ChargeRent:        r.Due[ChargeRent],
		ChargeMaintenance: r.Due[ChargeMaintenance],
		ChargeLight:       r.Due[ChargeLight],
		ChargeAdvance:     decimal.Zero,
	}
	if p == r.First {
		due[ChargeAdvance] = r.Due[ChargeAdvance]
	}
	return due
}

// ResolveSchedule derives the recurring charge amounts and active billing
// periods for one property/tenant pair.
//
// A period is active when the occupancy start is on or before the period
// start and, if the occupancy has ended, the period start is on or before
// the end date. A nil occupancy resolves to an empty schedule: no tenant,
// no obligations.
//
// Bounds clip the enumeration on both sides. They are optional for ended
// occupancies and mandatory for ongoing ones (ErrUnboundedRange otherwise).
func ResolveSchedule(sched Schedule, occ *Occupancy, bounds *Bounds) (ResolvedSchedule, error) {
	out := ResolvedSchedule{Due: map[ChargeType]decimal.Decimal{
		ChargeRent:        decimal.Zero,
		ChargeMaintenance: decimal.Zero,
		ChargeLight:       decimal.Zero,
		ChargeAdvance:     decimal.Zero,
	}}
	if occ == nil {
		return out, nil
	}
	if occ.End == nil && bounds == nil {
		return out, ErrUnboundedRange
	}

	out.Due[ChargeRent] = sched.Rent
	out.Due[ChargeMaintenance] = sched.Maintenance
	out.Due[ChargeLight] = sched.LightBill()
	out.Due[ChargeAdvance] = sched.Advance

	// First active period of the tenancy: the first whose start is not
	// before the occupancy start (a mid-month move-in starts billing the
	// next month). Kept independent of bounds so the one-time advance is
	// never re-charged when a caller clips to a later year.
	first := PeriodOf(occ.Start)
	if first.Start().Before(occ.Start) {
		first = first.Next()
	}
	out.First = first

	from := first
	last := Period{}
	if occ.End != nil {
		last = PeriodOf(*occ.End)
	}
	if bounds != nil {
		if from.Before(bounds.From) {
			from = bounds.From
		}
		if occ.End == nil || bounds.To.Before(last) {
			last = bounds.To
		}
	}

	for p := from; !last.Before(p); p = p.Next() {
		if occ.Start.After(p.Start()) {
			continue
		}
		if occ.End != nil && p.Start().After(*occ.End) {
			break
		}
		out.ActivePeriods = append(out.ActivePeriods, p)
	}
	return out, nil
}
