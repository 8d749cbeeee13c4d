package model

import "time"

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// SessionStatus is the lifecycle state of a session.
// Transitions are owned by the server; the client only displays or requests them.
type SessionStatus string

const (
	SessionRecruiting SessionStatus = "recruiting"
	SessionClosed     SessionStatus = "closed"
	SessionCompleted  SessionStatus = "completed"
)

// SessionStatuses lists every status in lifecycle order
var SessionStatuses = []SessionStatus{SessionRecruiting, SessionClosed, SessionCompleted}

// Valid reports whether s is a known status
func (s SessionStatus) Valid() bool {
	for _, known := range SessionStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the Korean display label
func (s SessionStatus) Label() string {
	switch s {
	case SessionRecruiting:
		return "모집중"
	case SessionClosed:
		return "마감"
	case SessionCompleted:
		return "완료"
	default:
		return string(s)
	}
}

// Session is one scheduled match day
type Session struct {
	ID            int64         `json:"id" validate:"required"`
	SessionDate   string        `json:"sessionDate" validate:"required,datetime=2006-01-02"`
	Title         string        `json:"title,omitempty"`
	Status        SessionStatus `json:"status" validate:"required"`
	StartTime     string        `json:"startTime,omitempty"`
	EndTime       string        `json:"endTime,omitempty"`
	Location      string        `json:"location,omitempty"`
	AttendeeCount int           `json:"attendeeCount" validate:"min=0"`
}

// Date parses SessionDate in the local time zone
func (s Session) Date() (time.Time, error) {
	return time.ParseInLocation(DateLayout, s.SessionDate, time.Local)
}

// CanTransition reports whether the server accepts moving from s to next.
// Sessions only move forward; reopening a closed session is allowed.
func (s SessionStatus) CanTransition(next SessionStatus) bool {
	switch s {
	case SessionRecruiting:
		return next == SessionClosed || next == SessionCompleted
	case SessionClosed:
		return next == SessionRecruiting || next == SessionCompleted
	default:
		return false
	}
}
