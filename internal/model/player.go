package model

import "time"

// Role is a user's authorization role
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// User is an authenticated account
type User struct {
	ID       int64  `json:"id" validate:"required"`
	Email    string `json:"email"`
	Username string `json:"username" validate:"required"`
	Role     Role   `json:"role" validate:"required"`
}

// Player is a club member profile, optionally linked to a user
type Player struct {
	ID          int64   `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Nickname    string  `json:"nickname,omitempty"`
	UserID      *int64  `json:"userId"`
	Rating      float64 `json:"rating"`
	GamesPlayed int     `json:"gamesPlayed" validate:"min=0"`
}

// DisplayName prefers the nickname when one is set
func (p Player) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return p.Name
}

// Account is a user together with its password hash. Server side only.
type Account struct {
	User         User
	PasswordHash string
	CreatedAt    time.Time
}

// Rating is one score given to a player after a session
type Rating struct {
	PlayerID  int64
	SessionID int64
	RaterID   int64
	Score     int
	Comment   string
	CreatedAt time.Time
}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}
