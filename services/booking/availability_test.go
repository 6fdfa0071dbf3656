package booking

import (
	"testing"
	"time"
	_ "time/tzdata"

	"facestudio/config"
	"facestudio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zagreb(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Zagreb")
	require.NoError(t, err)
	return loc
}

func testCalculator(t *testing.T) Calculator {
	t.Helper()
	hours, err := ParseBusinessHours(config.DefaultBusinessHours)
	require.NoError(t, err)
	return NewCalculator(hours, zagreb(t))
}

// 2026-07-14 is a Tuesday, open 09:00-17:00.
var tuesday = time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

func at(loc *time.Location, day time.Time, hhmm string) time.Time {
	c, err := models.ParseClock(hhmm)
	if err != nil {
		panic(err)
	}
	return c.On(day, loc)
}

func booking(loc *time.Location, day time.Time, start, end string) Interval {
	return Interval{Start: at(loc, day, start), End: at(loc, day, end)}
}

func slotStrings(slots []Interval) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		v := s.Slot()
		out = append(out, v.Start+"-"+v.End)
	}
	return out
}

func TestSlotsFullDay(t *testing.T) {
	calc := testCalculator(t)
	now := time.Date(2026, 7, 10, 8, 0, 0, 0, calc.Location)

	slots, err := calc.Slots(tuesday, time.Hour, nil, now)
	require.NoError(t, err)

	require.Len(t, slots, 29)
	assert.Equal(t, "09:00-10:00", slotStrings(slots)[0])
	assert.Equal(t, "16:00-17:00", slotStrings(slots)[28])
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, SlotStep, slots[i].Start.Sub(slots[i-1].Start))
	}
}

func TestSlotsExcludeExistingBooking(t *testing.T) {
	calc := testCalculator(t)
	loc := calc.Location
	now := time.Date(2026, 7, 10, 8, 0, 0, 0, loc)
	existing := booking(loc, tuesday, "10:00", "11:00")

	slots, err := calc.Slots(tuesday, time.Hour, []Interval{existing}, now)
	require.NoError(t, err)

	require.Len(t, slots, 22)
	got := slotStrings(slots)
	assert.Equal(t, "09:00-10:00", got[0])
	assert.Equal(t, "11:00-12:00", got[1])
	for _, s := range slots {
		assert.False(t, s.Overlaps(existing), "slot %s overlaps booking", s.Slot())
	}
}

func TestSlotsClosedDay(t *testing.T) {
	calc := testCalculator(t)
	saturday := time.Date(2026, 7, 18, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 7, 10, 8, 0, 0, 0, calc.Location)

	slots, err := calc.Slots(saturday, time.Hour, nil, now)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestSlotsRejectsNonPositiveDuration(t *testing.T) {
	calc := testCalculator(t)
	now := time.Date(2026, 7, 10, 8, 0, 0, 0, calc.Location)

	_, err := calc.Slots(tuesday, 0, nil, now)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = calc.Slots(tuesday, -time.Minute, nil, now)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestSlotsSameDayLeadTime(t *testing.T) {
	calc := testCalculator(t)
	loc := calc.Location

	tests := []struct {
		name  string
		now   time.Time
		first string
		count int
	}{
		{"before opening", time.Date(2026, 7, 14, 6, 0, 0, 0, loc), "09:00-10:00", 29},
		{"rounds up", time.Date(2026, 7, 14, 10, 7, 0, 0, loc), "11:15-12:15", 20},
		{"on a boundary", time.Date(2026, 7, 14, 10, 0, 0, 0, loc), "11:00-12:00", 21},
		{"seconds past a boundary", time.Date(2026, 7, 14, 10, 0, 30, 0, loc), "11:15-12:15", 20},
		{"last slot only", time.Date(2026, 7, 14, 15, 0, 0, 0, loc), "16:00-17:00", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := calc.Slots(tuesday, time.Hour, nil, tt.now)
			require.NoError(t, err)
			require.Len(t, slots, tt.count)
			assert.Equal(t, tt.first, slotStrings(slots)[0])
			bound := tt.now.Add(LeadTime)
			for _, s := range slots {
				assert.False(t, s.Start.Before(bound))
			}
		})
	}
}

func TestSlotsAfterClosingIsEmpty(t *testing.T) {
	calc := testCalculator(t)
	now := time.Date(2026, 7, 14, 16, 30, 0, 0, calc.Location)

	slots, err := calc.Slots(tuesday, 15*time.Minute, nil, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSlotsPastDateIsEmpty(t *testing.T) {
	calc := testCalculator(t)
	now := time.Date(2026, 7, 15, 8, 0, 0, 0, calc.Location)

	slots, err := calc.Slots(tuesday, time.Hour, nil, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSlotsUseStudioTimeZone(t *testing.T) {
	calc := testCalculator(t)

	// 07:07 UTC is 09:07 in Zagreb during summer time.
	slots, err := calc.Slots(tuesday, time.Hour, nil, time.Date(2026, 7, 14, 7, 7, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "10:15-11:15", slotStrings(slots)[0])

	// 22:30 UTC on Monday is already Tuesday in Zagreb, so Monday is in the past
	// and Tuesday is today with the lead time long satisfied.
	lateMonday := time.Date(2026, 7, 13, 22, 30, 0, 0, time.UTC)
	slots, err = calc.Slots(tuesday.AddDate(0, 0, -1), time.Hour, nil, lateMonday)
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = calc.Slots(tuesday, time.Hour, nil, lateMonday)
	require.NoError(t, err)
	assert.Equal(t, "09:00-10:00", slotStrings(slots)[0])
}

func TestSlotsProperties(t *testing.T) {
	calc := testCalculator(t)
	loc := calc.Location
	now := time.Date(2026, 7, 14, 9, 52, 0, 0, loc)
	earliest := calc.EarliestStart(now)
	booked := []Interval{
		booking(loc, tuesday, "11:30", "12:15"),
		booking(loc, tuesday, "13:00", "14:30"),
		booking(loc, tuesday, "16:15", "16:45"),
	}

	for _, minutes := range []int{15, 30, 45, 60, 75, 90, 120, 480} {
		duration := time.Duration(minutes) * time.Minute
		slots, err := calc.Slots(tuesday, duration, booked, now)
		require.NoError(t, err)
		for _, s := range slots {
			assert.Equal(t, duration, s.End.Sub(s.Start))
			assert.False(t, s.Start.Before(earliest))
			assert.False(t, s.End.After(at(loc, tuesday, "17:00")))
			assert.Zero(t, s.Start.Minute()%15)
			for _, b := range booked {
				assert.False(t, s.Overlaps(b), "%d min slot %v overlaps %v", minutes, s.Slot(), b.Slot())
			}
		}
	}
}

func TestEarliestStart(t *testing.T) {
	calc := testCalculator(t)
	loc := calc.Location

	tests := []struct {
		now  time.Time
		want time.Time
	}{
		{time.Date(2026, 7, 14, 10, 0, 0, 0, loc), time.Date(2026, 7, 14, 11, 0, 0, 0, loc)},
		{time.Date(2026, 7, 14, 10, 1, 0, 0, loc), time.Date(2026, 7, 14, 11, 15, 0, 0, loc)},
		{time.Date(2026, 7, 14, 10, 59, 59, 0, loc), time.Date(2026, 7, 14, 12, 0, 0, 0, loc)},
		{time.Date(2026, 7, 14, 23, 50, 0, 0, loc), time.Date(2026, 7, 15, 1, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		got := calc.EarliestStart(tt.now)
		assert.True(t, got.Equal(tt.want), "now %v: got %v want %v", tt.now, got, tt.want)
		assert.False(t, got.Before(tt.now.Add(LeadTime)))
	}
}

func TestIntervalsSkipCancelled(t *testing.T) {
	calc := testCalculator(t)
	reservations := []models.Reservation{
		{Date: tuesday, StartTime: 600, EndTime: 660, Status: models.StatusConfirmed},
		{Date: tuesday, StartTime: 720, EndTime: 780, Status: models.StatusCancelled},
		{Date: tuesday, StartTime: 800, EndTime: 860, Status: models.StatusCompleted},
	}

	got := calc.Intervals(reservations)
	require.Len(t, got, 2)
	assert.Equal(t, "10:00", got[0].Slot().Start)
	assert.Equal(t, "13:20", got[1].Slot().Start)
}

func TestOverlapIsHalfOpen(t *testing.T) {
	loc := time.UTC
	a := booking(loc, tuesday, "10:00", "11:00")

	assert.True(t, a.Overlaps(booking(loc, tuesday, "10:30", "11:30")))
	assert.True(t, a.Overlaps(booking(loc, tuesday, "09:00", "12:00")))
	assert.False(t, a.Overlaps(booking(loc, tuesday, "11:00", "12:00")))
	assert.False(t, a.Overlaps(booking(loc, tuesday, "09:00", "10:00")))
}
