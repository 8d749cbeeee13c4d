package model

// MatchStatus is the state of a single match within a session
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchFinished  MatchStatus = "finished"
)

// Match is one game between two teams on a match day
type Match struct {
	ID        int64        `json:"id" validate:"required"`
	SessionID int64        `json:"sessionId" validate:"required"`
	MatchNo   int          `json:"matchNo" validate:"min=1"`
	TeamAID   int64        `json:"teamAId" validate:"required"`
	TeamBID   int64        `json:"teamBId" validate:"required"`
	ScoreA    int          `json:"scoreA" validate:"min=0"`
	ScoreB    int          `json:"scoreB" validate:"min=0"`
	Status    MatchStatus  `json:"status" validate:"required"`
	Events    []MatchEvent `json:"events,omitempty" validate:"dive"`
}

// MatchEventType is what happened in a match event
type MatchEventType string

const (
	EventGoal   MatchEventType = "goal"
	EventAssist MatchEventType = "assist"
	EventSave   MatchEventType = "save"
)

// MatchEvent is a scoreboard event credited to a player
type MatchEvent struct {
	Type     MatchEventType `json:"type" validate:"required,oneof=goal assist save"`
	PlayerID int64          `json:"playerId" validate:"required"`
	Minute   int            `json:"minute" validate:"min=0"`
}

// Team is a squad assigned for one session
type Team struct {
	ID        int64        `json:"id" validate:"required"`
	SessionID int64        `json:"sessionId" validate:"required"`
	Name      string       `json:"name" validate:"required"`
	Color     string       `json:"color,omitempty"`
	Members   []TeamMember `json:"members" validate:"dive"`
}

// TeamMember is one player on a team
type TeamMember struct {
	PlayerID int64  `json:"playerId" validate:"required"`
	Name     string `json:"name" validate:"required"`
}
