package match

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/random"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/storage"
)

// Controller manages teams and the matches played between them
type Controller struct {
	storage storage.Storage
	random  random.Random
	logger  *zap.Logger
}

// NewController creates a new match Controller
func NewController(storage storage.Storage, random random.Random, logger *zap.Logger) *Controller {
	return &Controller{storage: storage, random: random, logger: logger}
}

// AssignTeams replaces the teams of a session
func (c *Controller) AssignTeams(ctx context.Context, sessionID int64, req clubapi.AssignTeamsRequest) ([]*model.Team, error) {
	teams := make([]*model.Team, 0, len(req.Teams))
	assigned := make(map[int64]bool)
	for _, t := range req.Teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return nil, model.ErrInvalidTeams
		}
		team := &model.Team{Name: name, Color: t.Color, Members: []model.TeamMember{}}
		for _, id := range t.PlayerIDs {
			// a player plays for one team
			if assigned[id] {
				return nil, model.ErrInvalidTeams
			}
			assigned[id] = true
			p, err := c.storage.GetPlayer(ctx, id)
			if err != nil {
				return nil, err
			}
			team.Members = append(team.Members, model.TeamMember{PlayerID: p.ID, Name: p.DisplayName()})
		}
		teams = append(teams, team)
	}

	if err := c.storage.ReplaceTeams(ctx, sessionID, teams); err != nil {
		return nil, err
	}
	c.logger.Info("teams assigned", zap.Int64("session_id", sessionID), zap.Int("teams", len(teams)))
	return teams, nil
}

// Teams returns the teams of a session
func (c *Controller) Teams(ctx context.Context, sessionID int64) ([]*model.Team, error) {
	return c.storage.ListTeams(ctx, sessionID)
}

// ListBySession returns the matches of a session in play order
func (c *Controller) ListBySession(ctx context.Context, sessionID int64) ([]*model.Match, error) {
	if _, err := c.storage.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return c.storage.ListMatches(ctx, sessionID)
}

// Get returns one match
func (c *Controller) Get(ctx context.Context, id int64) (*model.Match, error) {
	return c.storage.GetMatch(ctx, id)
}

// Create schedules a match between two teams of the same session.
// A zero match number takes the next free one.
func (c *Controller) Create(ctx context.Context, req clubapi.CreateMatchRequest) (*model.Match, error) {
	teams, err := c.storage.ListTeams(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if req.TeamAID == req.TeamBID || !hasTeam(teams, req.TeamAID) || !hasTeam(teams, req.TeamBID) {
		return nil, model.ErrInvalidTeams
	}

	matchNo := req.MatchNo
	if matchNo <= 0 {
		existing, err := c.storage.ListMatches(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		for _, m := range existing {
			if m.MatchNo > matchNo {
				matchNo = m.MatchNo
			}
		}
		matchNo++
	}

	m := &model.Match{
		SessionID: req.SessionID,
		MatchNo:   matchNo,
		TeamAID:   req.TeamAID,
		TeamBID:   req.TeamBID,
		Status:    model.MatchScheduled,
	}
	if err := c.storage.CreateMatch(ctx, m); err != nil {
		return nil, err
	}

	c.logger.Info("match created",
		zap.Int64("match_id", m.ID),
		zap.Int64("session_id", m.SessionID),
		zap.Int("match_no", m.MatchNo),
	)
	return m, nil
}

func hasTeam(teams []*model.Team, id int64) bool {
	for _, t := range teams {
		if t.ID == id {
			return true
		}
	}
	return false
}

// RecordScore sets the score and optionally finishes the match
func (c *Controller) RecordScore(ctx context.Context, id int64, req clubapi.ScoreRequest) (*model.Match, error) {
	if req.ScoreA < 0 || req.ScoreB < 0 {
		return nil, model.ErrInvalidScore
	}
	m, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status == model.MatchFinished {
		return nil, model.ErrMatchFinished
	}

	m.ScoreA, m.ScoreB = req.ScoreA, req.ScoreB
	if req.Finished {
		m.Status = model.MatchFinished
	}
	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return nil, err
	}

	if m.Status == model.MatchFinished {
		c.logger.Info("match finished",
			zap.Int64("match_id", m.ID),
			zap.Int("score_a", m.ScoreA),
			zap.Int("score_b", m.ScoreB),
		)
	}
	return m, nil
}

// AddEvent credits a goal, assist or save to a player
func (c *Controller) AddEvent(ctx context.Context, id int64, event model.MatchEvent) (*model.Match, error) {
	switch event.Type {
	case model.EventGoal, model.EventAssist, model.EventSave:
	default:
		return nil, model.ErrInvalidInput
	}
	if event.Minute < 0 {
		return nil, model.ErrInvalidInput
	}
	m, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := c.storage.GetPlayer(ctx, event.PlayerID); err != nil {
		return nil, err
	}

	m.Events = append(m.Events, event)
	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
