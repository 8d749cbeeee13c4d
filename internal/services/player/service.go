package player

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/clock"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/storage"
)

const (
	MinScore = 1
	MaxScore = 10
)

// ErrNameRequired is returned when a player would be left without a name
var ErrNameRequired = errors.New("player name is required")

// Service manages the club roster
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *zap.Logger
}

// New creates a new player Service
func New(storage storage.Storage, clock clock.Clock, logger *zap.Logger) *Service {
	return &Service{storage: storage, clock: clock, logger: logger}
}

// List returns every player ordered by id
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// Get returns one player
func (s *Service) Get(ctx context.Context, id int64) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// Create adds a player to the roster
func (s *Service) Create(ctx context.Context, req clubapi.CreatePlayerRequest) (*model.Player, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	p := &model.Player{Name: name, Nickname: strings.TrimSpace(req.Nickname)}
	if err := s.storage.CreatePlayer(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("player created", zap.Int64("player_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// Update edits the fields present in req
func (s *Service) Update(ctx context.Context, id int64, req clubapi.UpdatePlayerRequest) (*model.Player, error) {
	p, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		p.Name = name
	}
	if req.Nickname != nil {
		p.Nickname = strings.TrimSpace(*req.Nickname)
	}
	if err := s.storage.SavePlayer(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Link attaches the player profile to a user. A user owns at most one
// player, so a previous link of the same user is released.
func (s *Service) Link(ctx context.Context, id int64, user model.User) (*model.Player, error) {
	p, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != nil {
		if *p.UserID == user.ID {
			return p, nil
		}
		return nil, model.ErrPlayerAlreadyLinked
	}

	prev, err := s.storage.GetPlayerByUser(ctx, user.ID)
	switch {
	case err == nil:
		prev.UserID = nil
		if err := s.storage.SavePlayer(ctx, prev); err != nil {
			return nil, err
		}
	case !errors.Is(err, model.ErrPlayerNotFound):
		return nil, err
	}

	userID := user.ID
	p.UserID = &userID
	if err := s.storage.SavePlayer(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("player linked", zap.Int64("player_id", p.ID), zap.Int64("user_id", user.ID))
	return p, nil
}

// Rate records a score for the player and refreshes the player's average
func (s *Service) Rate(ctx context.Context, id int64, rater model.User, req clubapi.RatingRequest) (*model.Player, error) {
	if req.Score < MinScore || req.Score > MaxScore {
		return nil, model.ErrInvalidScore
	}
	p, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.SessionID != 0 {
		if _, err := s.storage.GetSession(ctx, req.SessionID); err != nil {
			return nil, err
		}
	}

	rating := model.Rating{
		PlayerID:  id,
		SessionID: req.SessionID,
		RaterID:   rater.ID,
		Score:     req.Score,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.AddRating(ctx, rating); err != nil {
		return nil, err
	}

	ratings, err := s.storage.ListRatings(ctx, id)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, r := range ratings {
		total += r.Score
	}
	p.Rating = float64(total) / float64(len(ratings))
	if err := s.storage.SavePlayer(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
