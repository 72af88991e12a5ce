package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Risk is the coarse overdue-severity bucket used for dashboard triage.
type Risk string

const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

// DueItem is the next rent obligation for one occupied property.
type DueItem struct {
	DueDate            time.Time       `json:"dueDate"`
	DaysUntilOrOverdue int             `json:"daysUntilOrOverdue"` // positive = days remaining, negative = days overdue
	Amount             decimal.Decimal `json:"amount"`
	Overdue            bool            `json:"overdue"`
	Risk               Risk            `json:"risk"`
}

// NextDue computes the next unpaid rent due date for a tenant. Returns nil
// when there is no tenant.
//
// Billing is anchored to the 1st of the calendar month, not the move-in
// anniversary: the occupancy start is normalized to the 1st and advanced a
// month at a time until strictly after today. A due date equal to today is
// already current, so it does not count as "next".
//
// Overdue combines two independent signals: the date arithmetic and the
// tenant's rent status flag. Either one trips it.
func NextDue(occ *Occupancy, sched Schedule, today time.Time) *DueItem {
	if occ == nil {
		return nil
	}

	due := time.Date(occ.Start.Year(), occ.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	day := today.Truncate(24 * time.Hour)
	for !due.After(day) {
		due = due.AddDate(0, 1, 0)
	}

	days := daysBetween(day, due)
	overdue := days < 0 || occ.RentStatus == StatusPending

	return &DueItem{
		DueDate:            due,
		DaysUntilOrOverdue: days,
		Amount:             sched.Rent,
		Overdue:            overdue,
		Risk:               ClassifyRisk(overdue, days),
	}
}

// ClassifyRisk buckets an overdue signal and signed day count. Every High
// case also satisfies the Medium predicate, so the High check must run
// first; do not reorder.
func ClassifyRisk(overdue bool, days int) Risk {
	if overdue && days < -7 {
		return RiskHigh
	}
	if overdue || days <= 5 {
		return RiskMedium
	}
	return RiskLow
}

// daysBetween is the signed ceiling day count from 'from' to 'to'.
func daysBetween(from, to time.Time) int {
	d := to.Sub(from)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// SortDueItems orders a dues table for display: overdue rows first, then by
// days ascending (most urgent at the top).
func SortDueItems(items []DueItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Overdue != items[j].Overdue {
			return items[i].Overdue
		}
		return items[i].DaysUntilOrOverdue < items[j].DaysUntilOrOverdue
	})
}
