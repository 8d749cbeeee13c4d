package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/mocks"
	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/storage/memory"
	"github.com/dlehdeod1/newcornerkicks/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	clk := mocks.NewMockClock(time.Date(2025, 2, 11, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, clk, testutil.NopLogger())
	s.ctx = context.Background()
}

func strp(v string) *string { return &v }

func (s *ServiceSuite) TestCreateAndUpdate() {
	p, err := s.service.Create(s.ctx, clubapi.CreatePlayerRequest{Name: " 김철수 ", Nickname: "철수"})
	s.Require().NoError(err)
	s.Equal("김철수", p.Name)

	updated, err := s.service.Update(s.ctx, p.ID, clubapi.UpdatePlayerRequest{Nickname: strp("쇠돌이")})
	s.Require().NoError(err)
	s.Equal("김철수", updated.Name)
	s.Equal("쇠돌이", updated.Nickname)

	_, err = s.service.Update(s.ctx, p.ID, clubapi.UpdatePlayerRequest{Name: strp("  ")})
	s.ErrorIs(err, ErrNameRequired)

	_, err = s.service.Create(s.ctx, clubapi.CreatePlayerRequest{})
	s.ErrorIs(err, ErrNameRequired)
}

func (s *ServiceSuite) TestGetMissing() {
	_, err := s.service.Get(s.ctx, 77)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestLink() {
	a, _ := s.service.Create(s.ctx, clubapi.CreatePlayerRequest{Name: "철수"})
	b, _ := s.service.Create(s.ctx, clubapi.CreatePlayerRequest{Name: "영희"})
	alice := model.User{ID: 100, Username: "alice"}
	bob := model.User{ID: 200, Username: "bob"}

	linked, err := s.service.Link(s.ctx, a.ID, alice)
	s.Require().NoError(err)
	s.Require().NotNil(linked.UserID)
	s.Equal(alice.ID, *linked.UserID)

	// idempotent for the same user
	_, err = s.service.Link(s.ctx, a.ID, alice)
	s.NoError(err)

	_, err = s.service.Link(s.ctx, a.ID, bob)
	s.ErrorIs(err, model.ErrPlayerAlreadyLinked)

	// moving alice to another profile releases the first one
	_, err = s.service.Link(s.ctx, b.ID, alice)
	s.Require().NoError(err)
	first, _ := s.service.Get(s.ctx, a.ID)
	s.Nil(first.UserID)
}

func (s *ServiceSuite) TestRateAverages() {
	p, _ := s.service.Create(s.ctx, clubapi.CreatePlayerRequest{Name: "철수"})
	rater := model.User{ID: 1}

	_, err := s.service.Rate(s.ctx, p.ID, rater, clubapi.RatingRequest{Score: 8})
	s.Require().NoError(err)
	rated, err := s.service.Rate(s.ctx, p.ID, rater, clubapi.RatingRequest{Score: 5})
	s.Require().NoError(err)
	s.InDelta(6.5, rated.Rating, 0.001)

	_, err = s.service.Rate(s.ctx, p.ID, rater, clubapi.RatingRequest{Score: 11})
	s.ErrorIs(err, model.ErrInvalidScore)

	_, err = s.service.Rate(s.ctx, p.ID, rater, clubapi.RatingRequest{Score: 7, SessionID: 999})
	s.ErrorIs(err, model.ErrSessionNotFound)
}
