package match

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/random"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
)

// Bounds on the number of teams AutoAssign builds
const (
	MinAutoTeams = 2
	MaxAutoTeams = 4
)

var (
	autoTeamNames  = [MaxAutoTeams]string{"A팀", "B팀", "C팀", "D팀"}
	autoTeamColors = [MaxAutoTeams]string{"red", "blue", "yellow", "green"}
)

// AutoAssign splits the session's registered attendees into teamCount teams
// of similar strength and stores them like AssignTeams. Players are ordered
// by rating (ties in random order) and drafted in a snake: A B C C B A ...
// Guests have no rating and are left for manual assignment.
func (c *Controller) AutoAssign(ctx context.Context, sessionID int64, teamCount int) ([]*model.Team, error) {
	if teamCount < MinAutoTeams || teamCount > MaxAutoTeams {
		return nil, model.ErrInvalidTeams
	}
	if _, err := c.storage.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	entries, err := c.storage.ListAttendance(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	players := make([]*model.Player, 0, len(entries))
	for _, e := range entries {
		if e.PlayerID == nil {
			continue
		}
		p, err := c.storage.GetPlayer(ctx, *e.PlayerID)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if len(players) < teamCount {
		return nil, model.ErrInvalidTeams
	}

	random.Shuffle(c.random, len(players), func(i, j int) { players[i], players[j] = players[j], players[i] })
	sort.SliceStable(players, func(i, j int) bool { return players[i].Rating > players[j].Rating })

	req := clubapi.AssignTeamsRequest{Teams: make([]clubapi.TeamAssignment, teamCount)}
	for i := range req.Teams {
		req.Teams[i] = clubapi.TeamAssignment{Name: autoTeamNames[i], Color: autoTeamColors[i]}
	}
	for i, p := range players {
		slot := i % teamCount
		if (i/teamCount)%2 == 1 {
			slot = teamCount - 1 - slot
		}
		req.Teams[slot].PlayerIDs = append(req.Teams[slot].PlayerIDs, p.ID)
	}

	c.logger.Debug("teams balanced",
		zap.Int64("session_id", sessionID),
		zap.Int("teams", teamCount),
		zap.Int("players", len(players)),
	)
	return c.AssignTeams(ctx, sessionID, req)
}
