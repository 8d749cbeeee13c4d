// Package views renders already-fetched club data for display.
// Nothing here talks to the network except LoadDashboard.
package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/schedule"
)

// StatusTally counts sessions per status
type StatusTally struct {
	Total      int `json:"total"`
	Recruiting int `json:"recruiting"`
	Closed     int `json:"closed"`
	Completed  int `json:"completed"`
}

// FilterSessions keeps sessions whose title or date contains query, ignoring case.
// An empty query keeps everything.
func FilterSessions(sessions []model.Session, query string) []model.Session {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Session, 0, len(sessions))
	for _, s := range sessions {
		if q == "" ||
			strings.Contains(strings.ToLower(s.Title), q) ||
			strings.Contains(s.SessionDate, q) {
			out = append(out, s)
		}
	}
	return out
}

// StatusCounts tallies sessions per status
func StatusCounts(sessions []model.Session) StatusTally {
	var t StatusTally
	for _, s := range sessions {
		t.Total++
		switch s.Status {
		case model.SessionRecruiting:
			t.Recruiting++
		case model.SessionClosed:
			t.Closed++
		case model.SessionCompleted:
			t.Completed++
		}
	}
	return t
}

// SortByDateDesc orders sessions newest first, breaking ties by id
func SortByDateDesc(sessions []model.Session) []model.Session {
	out := append([]model.Session(nil), sessions...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SessionDate != out[j].SessionDate {
			return out[i].SessionDate > out[j].SessionDate
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// SessionLabel is the one-line heading of a session, e.g. "2025-02-12 (수) 코너킥스 수요 풋살 20:00"
func SessionLabel(s model.Session) string {
	label := s.SessionDate
	if d, err := s.Date(); err == nil {
		label = fmt.Sprintf("%s (%s)", s.SessionDate, schedule.DayLabel(d))
	}
	if s.Title != "" {
		label += " " + s.Title
	}
	return label
}

// SessionsTable lists sessions with their status label
func SessionsTable(sessions []model.Session) *Table {
	t := NewTable("ID", "날짜", "제목", "상태", "참석")
	for _, s := range sessions {
		t.AddRow(
			fmt.Sprint(s.ID),
			s.SessionDate+" ("+dayOf(s)+")",
			s.Title,
			s.Status.Label(),
			fmt.Sprint(s.AttendeeCount),
		)
	}
	return t
}

func dayOf(s model.Session) string {
	d, err := s.Date()
	if err != nil {
		return "?"
	}
	return schedule.DayLabel(d)
}
