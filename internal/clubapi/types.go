package clubapi

import "github.com/dlehdeod1/newcornerkicks/internal/model"

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse is returned by login and register
type LoginResponse struct {
	Token  string        `json:"token" validate:"required"`
	User   model.User    `json:"user"`
	Player *model.Player `json:"player"`
}

// MeResponse is returned by GET /auth/me
type MeResponse struct {
	User   model.User    `json:"user"`
	Player *model.Player `json:"player"`
}

// CreateSessionRequest is the body of POST /sessions
type CreateSessionRequest struct {
	SessionDate string `json:"sessionDate" validate:"required"`
	Title       string `json:"title,omitempty" validate:"max=100"`
}

// UpdateStatusRequest is the body of PATCH /sessions/{id}/status
type UpdateStatusRequest struct {
	Status model.SessionStatus `json:"status" validate:"required"`
}

// ParseRequest is the body of POST /sessions/{id}/parse
type ParseRequest struct {
	Text string `json:"text" validate:"required"`
}

// SaveAttendanceRequest is the body of POST /sessions/{id}/attendance
type SaveAttendanceRequest struct {
	Attendees []model.AttendanceRecord `json:"attendees" validate:"dive"`
}

// SaveAttendanceResponse acknowledges a saved attendee list
type SaveAttendanceResponse struct {
	Saved      int `json:"saved" validate:"min=0"`
	Registered int `json:"registered" validate:"min=0"`
}

// ListSessionsParams filters GET /sessions. Zero values are omitted.
type ListSessionsParams struct {
	Status model.SessionStatus
	Year   int
	Month  int
}

// CreatePlayerRequest is the body of POST /players
type CreatePlayerRequest struct {
	Name     string `json:"name" validate:"required"`
	Nickname string `json:"nickname,omitempty"`
}

// UpdatePlayerRequest is the body of PATCH /players/{id}. Nil fields are left unchanged.
type UpdatePlayerRequest struct {
	Name     *string `json:"name,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
}

// RatingRequest is the body of POST /players/{id}/ratings
type RatingRequest struct {
	SessionID int64  `json:"sessionId"`
	Score     int    `json:"score" validate:"min=1,max=10"`
	Comment   string `json:"comment,omitempty"`
}

// CreateMatchRequest is the body of POST /matches
type CreateMatchRequest struct {
	SessionID int64 `json:"sessionId" validate:"required"`
	MatchNo   int   `json:"matchNo" validate:"min=0"`
	TeamAID   int64 `json:"teamAId" validate:"required"`
	TeamBID   int64 `json:"teamBId" validate:"required"`
}

// ScoreRequest is the body of PATCH /matches/{id}/score
type ScoreRequest struct {
	ScoreA   int  `json:"scoreA" validate:"min=0"`
	ScoreB   int  `json:"scoreB" validate:"min=0"`
	Finished bool `json:"finished"`
}

// TeamAssignment is one team in an assignment request
type TeamAssignment struct {
	Name      string  `json:"name" validate:"required"`
	Color     string  `json:"color,omitempty"`
	PlayerIDs []int64 `json:"playerIds"`
}

// AssignTeamsRequest is the body of POST /sessions/{id}/teams
type AssignTeamsRequest struct {
	Teams []TeamAssignment `json:"teams" validate:"dive"`
}

// NotificationEvent names the stream event that carries a new notification
const NotificationEvent = "notification"

// AutoTeamsRequest is the body of POST /sessions/{id}/teams/auto
type AutoTeamsRequest struct {
	Teams int `json:"teams" validate:"min=2,max=4"`
}

// SetRoleRequest is the body of PATCH /admin/users/{id}/role
type SetRoleRequest struct {
	Role model.Role `json:"role" validate:"required"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status" validate:"required"`
}
