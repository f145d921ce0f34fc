package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateSet(dates ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

func slotSet(times ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(times))
	for _, t := range times {
		set[t] = struct{}{}
	}
	return set
}

func TestAvailableHolidayExcluded(t *testing.T) {
	// Early morning so the lead time does not eat into today's slots
	asOf := time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC)

	open, err := Available(referencePolicy(), asOf, dateSet("2024-06-05"), nil)
	require.NoError(t, err)

	// Holiday date is absent, not present with zero slots
	_, present := open["2024-06-05"]
	assert.False(t, present)
	assert.Len(t, open, 14)
}

func TestAvailableBookedSlotsExcluded(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC)
	booked := map[string]map[string]struct{}{
		"2024-06-03": slotSet("10:00"),
	}

	open, err := Available(referencePolicy(), asOf, nil, booked)
	require.NoError(t, err)

	assert.Len(t, open["2024-06-03"], 19)
	assert.NotContains(t, open["2024-06-03"], "10:00")
	assert.Len(t, open["2024-06-04"], 20)
}

func TestAvailableLeadTimeAppliesToTodayOnly(t *testing.T) {
	// now + 3h = 13:00; only slots strictly later remain today
	asOf := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	open, err := Available(referencePolicy(), asOf, nil, nil)
	require.NoError(t, err)

	today := open["2024-06-01"]
	assert.NotContains(t, today, "12:00")
	assert.NotContains(t, today, "13:00")
	assert.Contains(t, today, "13:30")
	assert.Contains(t, today, "14:00")
	assert.Equal(t, "13:30", today[0])

	// Tomorrow is unaffected
	assert.Len(t, open["2024-06-02"], 20)
	assert.Equal(t, "09:00", open["2024-06-02"][0])
}

func TestAvailableTodayDroppedAfterClosing(t *testing.T) {
	// 18:00 + 3h lead time is past the last slot; today disappears
	asOf := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	open, err := Available(referencePolicy(), asOf, nil, nil)
	require.NoError(t, err)

	_, present := open["2024-06-01"]
	assert.False(t, present)
	assert.Len(t, open, 14)
}

func TestAvailableFullyBookedDateSuppressed(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC)

	p := referencePolicy()
	grid, err := p.Grid()
	require.NoError(t, err)

	booked := map[string]map[string]struct{}{"2024-06-07": slotSet(grid...)}
	open, err := Available(p, asOf, nil, booked)
	require.NoError(t, err)

	_, present := open["2024-06-07"]
	assert.False(t, present)
}

func TestAvailableEverythingFiltered(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC)

	p := referencePolicy()
	holidays := make(map[string]struct{})
	for _, d := range p.Window(asOf) {
		holidays[d.Format(DateLayout)] = struct{}{}
	}

	open, err := Available(p, asOf, holidays, nil)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestAvailableFullScenario(t *testing.T) {
	// Holiday on 06-05, one booking at (06-03, 10:00), window 06-01..06-15
	asOf := time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC)
	holidays := dateSet("2024-06-05")
	booked := map[string]map[string]struct{}{
		"2024-06-03": slotSet("10:00"),
	}

	open, err := Available(referencePolicy(), asOf, holidays, booked)
	require.NoError(t, err)

	require.Len(t, open, 14)
	_, present := open["2024-06-05"]
	assert.False(t, present)
	assert.Len(t, open["2024-06-03"], 19)

	for key, slots := range open {
		if key == "2024-06-03" {
			continue
		}
		assert.Len(t, slots, 20, "date %s", key)
	}
}
