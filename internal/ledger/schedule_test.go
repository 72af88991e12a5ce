package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchedule() Schedule {
	return Schedule{
		Rent:        decimal.NewFromInt(10000),
		Maintenance: decimal.NewFromInt(500),
		UnitRate:    decimal.NewFromInt(8),
		LastUnit:    decimal.NewFromInt(120),
		Advance:     decimal.NewFromInt(20000),
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveSchedule_NoTenant(t *testing.T) {
	res, err := ResolveSchedule(testSchedule(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, res.ActivePeriods)
	assert.True(t, res.Due[ChargeRent].IsZero())
}

func TestResolveSchedule_UnboundedRequiresBounds(t *testing.T) {
	occ := &Occupancy{Start: date(2020, time.January, 1)} // ongoing, no end date
	_, err := ResolveSchedule(testSchedule(), occ, nil)
	assert.ErrorIs(t, err, ErrUnboundedRange)
}

// A mid-month move-in starts billing the following month: the start month's
// period begins before the occupancy and is not active.
func TestResolveSchedule_MidMonthStart(t *testing.T) {
	occ := &Occupancy{Start: date(2024, time.January, 15)}
	bounds := &Bounds{From: Period{2024, 1}, To: Period{2024, 4}}
	res, err := ResolveSchedule(testSchedule(), occ, bounds)
	require.NoError(t, err)
	assert.Equal(t, []Period{{2024, 2}, {2024, 3}, {2024, 4}}, res.ActivePeriods)
	assert.Equal(t, Period{2024, 2}, res.First)
}

// Periods before the start or after the end date contribute nothing.
func TestResolveSchedule_OccupancyBoundary(t *testing.T) {
	end := date(2024, time.June, 20)
	occ := &Occupancy{Start: date(2024, time.March, 1), End: &end}
	res, err := ResolveSchedule(testSchedule(), occ, nil)
	require.NoError(t, err)
	assert.Equal(t, []Period{{2024, 3}, {2024, 4}, {2024, 5}, {2024, 6}}, res.ActivePeriods)
}

func TestResolveSchedule_DueAmounts(t *testing.T) {
	occ := &Occupancy{Start: date(2024, time.January, 1)}
	bounds := &Bounds{From: Period{2024, 1}, To: Period{2024, 3}}
	res, err := ResolveSchedule(testSchedule(), occ, bounds)
	require.NoError(t, err)

	assert.True(t, res.Due[ChargeRent].Equal(decimal.NewFromInt(10000)))
	assert.True(t, res.Due[ChargeMaintenance].Equal(decimal.NewFromInt(500)))
	// light = lastUnit × unitRate snapshot
	assert.True(t, res.Due[ChargeLight].Equal(decimal.NewFromInt(960)))
}

// Advance is owed once, in the first active period, zero after.
func TestResolveSchedule_AdvanceNonRecurring(t *testing.T) {
	occ := &Occupancy{Start: date(2024, time.January, 1)}
	bounds := &Bounds{From: Period{2024, 1}, To: Period{2024, 3}}
	res, err := ResolveSchedule(testSchedule(), occ, bounds)
	require.NoError(t, err)

	first := res.DueFor(Period{2024, 1})
	assert.True(t, first[ChargeAdvance].Equal(decimal.NewFromInt(20000)))
	second := res.DueFor(Period{2024, 2})
	assert.True(t, second[ChargeAdvance].IsZero())
}

// Bounds clipped to a later year must not resurrect the one-time advance.
func TestResolveSchedule_AdvanceNotRechargedInLaterBounds(t *testing.T) {
	occ := &Occupancy{Start: date(2023, time.May, 1)}
	bounds := &Bounds{From: Period{2024, 1}, To: Period{2024, 12}}
	res, err := ResolveSchedule(testSchedule(), occ, bounds)
	require.NoError(t, err)

	require.NotEmpty(t, res.ActivePeriods)
	for _, p := range res.ActivePeriods {
		assert.True(t, res.DueFor(p)[ChargeAdvance].IsZero(), "advance charged again in %v", p)
	}
}

func TestResolveSchedule_EndBeforeBounds(t *testing.T) {
	end := date(2023, time.December, 31)
	occ := &Occupancy{Start: date(2023, time.January, 1), End: &end}
	bounds := &Bounds{From: Period{2024, 1}, To: Period{2024, 12}}
	res, err := ResolveSchedule(testSchedule(), occ, bounds)
	require.NoError(t, err)
	assert.Empty(t, res.ActivePeriods)
}
