package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextWednesdayForEveryWeekday(t *testing.T) {
	// 2025-02-09 is a Sunday; cover two full weeks and a few times of day
	base := date(2025, 2, 9)
	for i := 0; i < 14; i++ {
		for _, hour := range []int{0, 9, 23} {
			today := base.AddDate(0, 0, i).Add(time.Duration(hour) * time.Hour)
			next := NextWednesday(today)

			assert.Equal(t, time.Wednesday, next.Weekday(), "from %s", today)
			assert.True(t, next.After(today), "from %s", today)

			gap := int(next.Sub(StartOfDay(today)).Hours() / 24)
			assert.GreaterOrEqual(t, gap, 1, "from %s", today)
			assert.LessOrEqual(t, gap, 7, "from %s", today)
		}
	}
}

func TestNextWednesdayOnWednesdayIsAWeekLater(t *testing.T) {
	next := NextWednesday(date(2025, 2, 12).Add(20 * time.Hour))
	assert.Equal(t, date(2025, 2, 19), next)
}

func TestNextWednesdayFromTuesday(t *testing.T) {
	assert.Equal(t, date(2025, 2, 12), NextWednesday(date(2025, 2, 11)))
}

func TestNextWeekdayOtherDays(t *testing.T) {
	// Friday -> Sunday is two days
	assert.Equal(t, date(2025, 2, 16), NextWeekday(date(2025, 2, 14), time.Sunday))
	// Saturday -> Saturday is a full week
	assert.Equal(t, date(2025, 2, 22), NextWeekday(date(2025, 2, 15), time.Saturday))
}

func TestUpcoming(t *testing.T) {
	days := Upcoming(date(2025, 2, 12), time.Wednesday, 3)
	require.Len(t, days, 3)
	assert.Equal(t, date(2025, 2, 19), days[0])
	assert.Equal(t, date(2025, 2, 26), days[1])
	assert.Equal(t, date(2025, 3, 5), days[2])

	assert.Nil(t, Upcoming(date(2025, 2, 12), time.Wednesday, 0))
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "수", DayLabel(date(2025, 2, 12)))
	assert.Equal(t, "일", DayLabel(date(2025, 2, 9)))
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2025-02-12")
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, d.Weekday())
	assert.Equal(t, "2025-02-12", FormatDate(d))

	_, err = ParseDate("12/02/2025")
	assert.Error(t, err)
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"wed":       time.Wednesday,
		"Wednesday": time.Wednesday,
		"SAT":       time.Saturday,
		"수":         time.Wednesday,
		"일":         time.Sunday,
	}
	for in, want := range cases {
		got, ok := ParseWeekday(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseWeekday("someday")
	assert.False(t, ok)
}
