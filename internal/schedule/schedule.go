// Package schedule computes club match days.
package schedule

import (
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// rrule weekdays indexed by time.Weekday
var rruleWeekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

var dayLabels = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func weeklyRule(start time.Time, weekday time.Weekday, count int) (*rrule.RRule, error) {
	return rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   start,
		Byweekday: []rrule.Weekday{rruleWeekdays[weekday]},
		Count:     count,
	})
}

// NextWeekday returns the first date strictly after today that falls on weekday.
// The gap is always between 1 and 7 days; it is 7 when today already is weekday.
func NextWeekday(today time.Time, weekday time.Weekday) time.Time {
	start := StartOfDay(today)
	rule, err := weeklyRule(start, weekday, 0)
	if err != nil {
		offset := (int(weekday) - int(start.Weekday()) + 7) % 7
		if offset == 0 {
			offset = 7
		}
		return start.AddDate(0, 0, offset)
	}
	return rule.After(start, false)
}

// NextWednesday is the default match day for a new session
func NextWednesday(today time.Time) time.Time {
	return NextWeekday(today, time.Wednesday)
}

// Upcoming lists the next n match days strictly after from
func Upcoming(from time.Time, weekday time.Weekday, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	first := NextWeekday(from, weekday)
	rule, err := weeklyRule(first, weekday, n)
	if err != nil {
		return []time.Time{first}
	}
	return rule.All()
}

// DayLabel returns the short Korean weekday label of t
func DayLabel(t time.Time) string {
	return dayLabels[t.Weekday()]
}

// ParseDate parses a wire date in the local time zone
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(model.DateLayout, s, time.Local)
}

// FormatDate renders t as a wire date
func FormatDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

// ParseWeekday accepts English names or abbreviations and Korean labels
func ParseWeekday(s string) (time.Weekday, bool) {
	names := map[string]time.Weekday{
		"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
		"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
	}
	for i, label := range dayLabels {
		if s == label {
			return time.Weekday(i), true
		}
	}
	key := strings.ToLower(s)
	if len(key) >= 3 {
		key = key[:3]
	}
	if wd, ok := names[key]; ok {
		return wd, true
	}
	return time.Sunday, false
}
