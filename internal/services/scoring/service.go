package scoring

import (
	"context"
	"sort"
	"strconv"

	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/clock"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/storage"
)

// Point weights of one ranking row
const (
	AttendancePoints = 1
	GoalPoints       = 2
	AssistPoints     = 1
)

// Service computes rankings and settlement summaries
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new scoring Service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{storage: storage, clock: clock}
}

// tally accumulates one player's numbers
type tally struct {
	playerID   int64
	attendance int
	goals      int
	assists    int
}

func (t *tally) score() float64 {
	return float64(t.attendance*AttendancePoints + t.goals*GoalPoints + t.assists*AssistPoints)
}

type tallies map[int64]*tally

func (ts tallies) get(playerID int64) *tally {
	t, ok := ts[playerID]
	if !ok {
		t = &tally{playerID: playerID}
		ts[playerID] = t
	}
	return t
}

// add counts the attendance and match events of one session
func (s *Service) add(ctx context.Context, ts tallies, sessionID int64) error {
	entries, err := s.storage.ListAttendance(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.PlayerID != nil && !e.IsGuest {
			ts.get(*e.PlayerID).attendance++
		}
	}

	matches, err := s.storage.ListMatches(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, m := range matches {
		for _, ev := range m.Events {
			switch ev.Type {
			case model.EventGoal:
				ts.get(ev.PlayerID).goals++
			case model.EventAssist:
				ts.get(ev.PlayerID).assists++
			}
		}
	}
	return nil
}

// rank turns tallies into ranking rows ordered by score, then name.
// Equal scores share a rank.
func (s *Service) rank(ctx context.Context, ts tallies) ([]model.RankingEntry, error) {
	entries := make([]model.RankingEntry, 0, len(ts))
	for _, t := range ts {
		p, err := s.storage.GetPlayer(ctx, t.playerID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, model.RankingEntry{
			PlayerID:   t.playerID,
			Name:       p.DisplayName(),
			Attendance: t.attendance,
			Goals:      t.goals,
			Assists:    t.assists,
			Score:      t.score(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
	return entries, nil
}

// Season ranks players over the completed sessions of a year.
// Year 0 is the current year.
func (s *Service) Season(ctx context.Context, year int) ([]model.RankingEntry, error) {
	if year <= 0 {
		year = s.clock.Now().Year()
	}
	sessions, err := s.storage.ListSessions(ctx, storage.SessionFilter{Status: model.SessionCompleted, Year: year})
	if err != nil {
		return nil, err
	}
	ts := make(tallies)
	for _, session := range sessions {
		if err := s.add(ctx, ts, session.ID); err != nil {
			return nil, err
		}
	}
	return s.rank(ctx, ts)
}

// MVP ranks the players of one session
func (s *Service) MVP(ctx context.Context, sessionID int64) ([]model.RankingEntry, error) {
	if _, err := s.storage.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	ts := make(tallies)
	if err := s.add(ctx, ts, sessionID); err != nil {
		return nil, err
	}
	return s.rank(ctx, ts)
}

// Summary totals the settlements of a year's sessions per person.
// Guests are grouped by name.
func (s *Service) Summary(ctx context.Context, year int) (*model.SettlementSummary, error) {
	if year <= 0 {
		year = s.clock.Now().Year()
	}
	sessions, err := s.storage.ListSessions(ctx, storage.SessionFilter{Year: year})
	if err != nil {
		return nil, err
	}

	summary := &model.SettlementSummary{Year: year, Players: []model.PlayerSettlement{}}
	lines := make(map[string]int)
	for _, session := range sessions {
		settlements, err := s.storage.ListSettlements(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		for _, st := range settlements {
			key := "guest:" + st.Name
			if st.PlayerID != nil {
				key = "player:" + strconv.FormatInt(*st.PlayerID, 10)
			}
			i, ok := lines[key]
			if !ok {
				i = len(summary.Players)
				lines[key] = i
				summary.Players = append(summary.Players, model.PlayerSettlement{PlayerID: st.PlayerID, Name: st.Name})
			}
			line := &summary.Players[i]
			line.Total += st.Amount
			summary.TotalAmount += st.Amount
			if st.Paid {
				summary.PaidAmount += st.Amount
			} else {
				line.Unpaid += st.Amount
			}
		}
	}
	summary.Outstanding = summary.TotalAmount - summary.PaidAmount

	sort.SliceStable(summary.Players, func(i, j int) bool {
		return summary.Players[i].Unpaid > summary.Players[j].Unpaid
	})
	return summary, nil
}
