package model

// AttendeeKind is the classification of a parsed attendee.
// Every attendee is exactly one kind.
type AttendeeKind string

const (
	AttendeePlayer  AttendeeKind = "player"
	AttendeeGuest   AttendeeKind = "guest"
	AttendeeUnknown AttendeeKind = "unknown"
)

// Attendee is one name extracted from pasted poll text and resolved server-side
type Attendee struct {
	Name     string `json:"name" validate:"required"`
	PlayerID *int64 `json:"playerId"`
	IsGuest  bool   `json:"isGuest"`
}

// Kind classifies the attendee. The guest flag wins over a resolved id.
func (a Attendee) Kind() AttendeeKind {
	switch {
	case a.IsGuest:
		return AttendeeGuest
	case a.PlayerID != nil:
		return AttendeePlayer
	default:
		return AttendeeUnknown
	}
}

// ParseResult is the server's classification of one paste operation
type ParseResult struct {
	TotalCount   int        `json:"totalCount" validate:"min=0"`
	PlayerCount  int        `json:"playerCount" validate:"min=0"`
	GuestCount   int        `json:"guestCount" validate:"min=0"`
	UnknownCount int        `json:"unknownCount" validate:"min=0"`
	Attendees    []Attendee `json:"attendees" validate:"dive"`
}

// AttendanceRecord is the persisted shape of one attendee
type AttendanceRecord struct {
	PlayerID  *int64  `json:"playerId"`
	IsGuest   bool    `json:"isGuest"`
	GuestName *string `json:"guestName"`
	Name      string  `json:"name" validate:"required"`
}

// AttendanceEntry is a stored attendance row as returned by the server
type AttendanceEntry struct {
	ID        int64   `json:"id" validate:"required"`
	SessionID int64   `json:"sessionId" validate:"required"`
	PlayerID  *int64  `json:"playerId"`
	IsGuest   bool    `json:"isGuest"`
	GuestName *string `json:"guestName"`
	Name      string  `json:"name" validate:"required"`
}
