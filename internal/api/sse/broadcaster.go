package sse

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// NotificationEvent is the event name of a pushed notification
const NotificationEvent = clubapi.NotificationEvent

// Broadcaster pushes stored notifications to the recipient's open streams
type Broadcaster struct {
	hubManager *HubManager
	logger     *zap.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *zap.Logger) *Broadcaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(zap.String("component", "sse-broadcaster")),
	}
}

// Publish sends n to userID's streams. Users without a stream are skipped.
func (b *Broadcaster) Publish(userID int64, n model.Notification) {
	hub := b.hubManager.GetHub(userID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(n)
	if err != nil {
		b.logger.Error("sse failed to encode notification", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	hub.BroadcastEvent(NotificationEvent, string(data))
}
