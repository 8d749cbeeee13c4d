package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")

	// Player errors
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerAlreadyLinked = errors.New("player is linked to another user")

	// Session errors
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidTransition = errors.New("invalid status transition")

	// Match errors
	ErrMatchNotFound = errors.New("match not found")
	ErrTeamNotFound  = errors.New("team not found")
	ErrMatchFinished = errors.New("match already finished")

	// Settlement errors
	ErrSettlementNotFound = errors.New("settlement not found")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// Input errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidDate   = errors.New("sessionDate must be YYYY-MM-DD")
	ErrInvalidStatus = errors.New("unknown session status")
	ErrInvalidRole   = errors.New("unknown role")
	ErrInvalidScore  = errors.New("score out of range")
	ErrInvalidTeams  = errors.New("invalid team assignment")
)
