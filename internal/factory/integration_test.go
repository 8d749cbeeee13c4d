package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/services/session"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.Seed(s.ctx))
}

func (s *IntegrationSuite) TestSeed() {
	sess, err := s.app.AuthService.Login(s.ctx, SeedAdminUsername, SeedAdminPassword)
	s.Require().NoError(err)
	s.Equal(model.RoleAdmin, sess.User.Role)
	s.Require().NotNil(sess.Player)
	s.Equal(SeedPlayers[0].Name, sess.Player.Name)

	players, err := s.app.PlayerService.List(s.ctx)
	s.Require().NoError(err)
	s.Len(players, len(SeedPlayers))
}

// Test: a whole match day from scheduling to the season table
func (s *IntegrationSuite) TestCompleteMatchDay() {
	// Step 1: Schedule the session
	sess, err := s.app.SessionController.Create(s.ctx, clubapi.CreateSessionRequest{SessionDate: "2025-02-12"})
	s.Require().NoError(err)
	s.Equal(session.DefaultConfig().DefaultTitle, sess.Title)

	// Step 2: Classify the poll; 철수 is a nickname, 도윤 unknown, 외부인사 a guest
	result, err := s.app.SessionController.Parse(s.ctx, sess.ID, "수요 풋살 투표\n1. 철수 ✅\n2. 영희\n3. 도윤\n4. 외부인사")
	s.Require().NoError(err)
	s.Equal(4, result.TotalCount)
	s.Equal(2, result.PlayerCount)
	s.Equal(1, result.UnknownCount)
	s.Equal(1, result.GuestCount)

	// Step 3: Save; the unknown member is registered
	records := make([]model.AttendanceRecord, 0, len(result.Attendees))
	for _, a := range result.Attendees {
		rec := model.AttendanceRecord{PlayerID: a.PlayerID, IsGuest: a.IsGuest, Name: a.Name}
		if a.IsGuest {
			name := a.Name
			rec.GuestName = &name
		}
		records = append(records, rec)
	}
	ack, err := s.app.SessionController.SaveAttendance(s.ctx, sess.ID, records)
	s.Require().NoError(err)
	s.Equal(4, ack.Saved)
	s.Equal(1, ack.Registered)

	// Step 4: Teams and a match
	players, err := s.app.PlayerService.List(s.ctx)
	s.Require().NoError(err)
	teams, err := s.app.MatchController.AssignTeams(s.ctx, sess.ID, clubapi.AssignTeamsRequest{Teams: []clubapi.TeamAssignment{
		{Name: "레드", PlayerIDs: []int64{players[0].ID, players[2].ID}},
		{Name: "블루", PlayerIDs: []int64{players[1].ID, players[3].ID}},
	}})
	s.Require().NoError(err)
	m, err := s.app.MatchController.Create(s.ctx, clubapi.CreateMatchRequest{SessionID: sess.ID, TeamAID: teams[0].ID, TeamBID: teams[1].ID})
	s.Require().NoError(err)
	_, err = s.app.MatchController.AddEvent(s.ctx, m.ID, model.MatchEvent{Type: model.EventGoal, PlayerID: players[0].ID, Minute: 5})
	s.Require().NoError(err)
	_, err = s.app.MatchController.RecordScore(s.ctx, m.ID, clubapi.ScoreRequest{ScoreA: 1, Finished: true})
	s.Require().NoError(err)

	// Step 5: Complete; everyone is billed
	_, err = s.app.SessionController.UpdateStatus(s.ctx, sess.ID, model.SessionCompleted)
	s.Require().NoError(err)
	summary, err := s.app.ScoringService.Summary(s.ctx, 2025)
	s.Require().NoError(err)
	s.Equal(int64(3*5000+10000), summary.TotalAmount)

	// Step 6: Season table
	ranking, err := s.app.ScoringService.Season(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().NotEmpty(ranking)
	s.Equal(players[0].ID, ranking[0].PlayerID)
	s.Equal(3.0, ranking[0].Score)

	stats, err := s.app.AdminService.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, stats.UnpaidSettlements)
	s.Equal(int64(25000), stats.OutstandingAmount)
}
