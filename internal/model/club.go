package model

import "time"

// RankingEntry is one row of a season or session ranking.
// Scores are computed by the server.
type RankingEntry struct {
	Rank       int     `json:"rank" validate:"min=1"`
	PlayerID   int64   `json:"playerId" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Attendance int     `json:"attendance" validate:"min=0"`
	Goals      int     `json:"goals" validate:"min=0"`
	Assists    int     `json:"assists" validate:"min=0"`
	Score      float64 `json:"score"`
}

// Settlement is prize money owed to or by a player for one session
type Settlement struct {
	ID        int64  `json:"id" validate:"required"`
	SessionID int64  `json:"sessionId" validate:"required"`
	PlayerID  *int64 `json:"playerId"`
	Name      string `json:"name" validate:"required"`
	Amount    int64  `json:"amount"`
	Reason    string `json:"reason,omitempty"`
	Paid      bool   `json:"paid"`
}

// SettlementSummary aggregates a season's settlements.
// Totals are computed by the server.
type SettlementSummary struct {
	Year        int                `json:"year" validate:"required"`
	TotalAmount int64              `json:"totalAmount"`
	PaidAmount  int64              `json:"paidAmount"`
	Outstanding int64              `json:"outstanding"`
	Players     []PlayerSettlement `json:"players" validate:"dive"`
}

// PlayerSettlement is one player's line in a season summary
type PlayerSettlement struct {
	PlayerID *int64 `json:"playerId"`
	Name     string `json:"name" validate:"required"`
	Total    int64  `json:"total"`
	Unpaid   int64  `json:"unpaid"`
}

// Notification is a message addressed to the current user
type Notification struct {
	ID        int64     `json:"id" validate:"required"`
	Title     string    `json:"title" validate:"required"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminStats is the admin dashboard summary
type AdminStats struct {
	TotalUsers         int   `json:"totalUsers" validate:"min=0"`
	TotalPlayers       int   `json:"totalPlayers" validate:"min=0"`
	TotalSessions      int   `json:"totalSessions" validate:"min=0"`
	RecruitingSessions int   `json:"recruitingSessions" validate:"min=0"`
	UnpaidSettlements  int   `json:"unpaidSettlements" validate:"min=0"`
	OutstandingAmount  int64 `json:"outstandingAmount"`
}
