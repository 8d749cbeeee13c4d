package authstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/testutil"
)

// failingPersister rejects every write
type failingPersister struct {
	MemoryPersister
}

func (p *failingPersister) Save(context.Context, Record) error { return errors.New("disk full") }

type StoreSuite struct {
	suite.Suite
	persister *MemoryPersister
	store     *Store
	ctx       context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.persister = NewMemoryPersister(nil)
	store, err := Open(s.ctx, s.persister, testutil.Logger(s.T()))
	s.Require().NoError(err)
	s.store = store
}

func int64p(v int64) *int64 { return &v }

func (s *StoreSuite) TestStartsLoggedOut() {
	s.Equal(State{}, s.store.State())
	s.Empty(s.store.Token())
}

func (s *StoreSuite) TestLoginDerivesFlags() {
	player := &model.Player{ID: 3, Name: "철수"}
	s.Require().NoError(s.store.Login(s.ctx, "tok", model.User{ID: 1, Username: "admin", Role: model.RoleAdmin}, player))

	state := s.store.State()
	s.Equal("tok", state.Token)
	s.True(state.IsLoggedIn)
	s.True(state.IsAdmin)
	s.Require().NotNil(state.Player)
	s.Equal(int64(3), state.Player.ID)
}

func (s *StoreSuite) TestSecondLoginOverwritesAdminFlag() {
	s.Require().NoError(s.store.Login(s.ctx, "t1", model.User{ID: 1, Role: model.RoleAdmin}, nil))
	s.Require().NoError(s.store.Login(s.ctx, "t2", model.User{ID: 2, Role: model.RoleMember}, nil))

	state := s.store.State()
	s.False(state.IsAdmin)
	s.Equal("t2", state.Token)
	s.Equal(int64(2), state.User.ID)
	s.Nil(state.Player)
}

func (s *StoreSuite) TestLoginRequiresToken() {
	s.ErrorIs(s.store.Login(s.ctx, "", model.User{ID: 1}, nil), ErrEmptyToken)
	s.False(s.store.State().IsLoggedIn)
}

func (s *StoreSuite) TestLogoutResetsEverything() {
	s.Require().NoError(s.store.Login(s.ctx, "tok", model.User{ID: 1, Role: model.RoleAdmin}, &model.Player{ID: 3}))
	s.Require().NoError(s.store.Logout(s.ctx))

	s.Equal(State{Token: "", User: nil, Player: nil, IsAdmin: false, IsLoggedIn: false}, s.store.State())
	rec, err := s.persister.Load(s.ctx)
	s.Require().NoError(err)
	s.Nil(rec)
}

func (s *StoreSuite) TestSetPlayerPatchesOnlyPlayer() {
	s.Require().NoError(s.store.Login(s.ctx, "tok", model.User{ID: 1}, nil))
	s.Require().NoError(s.store.SetPlayer(s.ctx, &model.Player{ID: 9, Name: "영희", UserID: int64p(1)}))

	state := s.store.State()
	s.Equal("tok", state.Token)
	s.Equal(int64(1), state.User.ID)
	s.Equal(int64(9), state.Player.ID)

	rec, err := s.persister.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(9), rec.Player.ID)
}

func (s *StoreSuite) TestSetPlayerWhenLoggedOut() {
	s.ErrorIs(s.store.SetPlayer(s.ctx, &model.Player{ID: 9}), ErrNotLoggedIn)
}

func (s *StoreSuite) TestEveryMutationIsPersisted() {
	before := s.persister.Saves()
	s.Require().NoError(s.store.Login(s.ctx, "tok", model.User{ID: 1}, nil))
	s.Require().NoError(s.store.SetPlayer(s.ctx, &model.Player{ID: 2}))
	s.Equal(before+2, s.persister.Saves())
}

func (s *StoreSuite) TestSnapshotIsIsolated() {
	s.Require().NoError(s.store.Login(s.ctx, "tok", model.User{ID: 1, Role: model.RoleAdmin}, nil))
	state := s.store.State()
	state.User.Role = model.RoleMember

	s.True(s.store.State().IsAdmin)
}

func (s *StoreSuite) TestFailedPersistLeavesStateUnchanged() {
	store, err := Open(s.ctx, &failingPersister{}, nil)
	s.Require().NoError(err)

	s.Error(store.Login(s.ctx, "tok", model.User{ID: 1}, nil))
	s.False(store.State().IsLoggedIn)
}

func (s *StoreSuite) TestOpenRehydrates() {
	persister := NewMemoryPersister(&Record{
		Token:  "tok",
		User:   &model.User{ID: 1, Username: "admin", Role: model.RoleAdmin},
		Player: &model.Player{ID: 3},
	})

	store, err := Open(s.ctx, persister, nil)
	s.Require().NoError(err)

	state := store.State()
	s.True(state.IsLoggedIn)
	s.True(state.IsAdmin)
	s.Equal(int64(3), state.Player.ID)
}

func (s *StoreSuite) TestOpenWithIncompleteRecordLogsOut() {
	persister := NewMemoryPersister(&Record{Token: "tok"})

	store, err := Open(s.ctx, persister, nil)
	s.Require().NoError(err)
	s.False(store.State().IsLoggedIn)

	rec, err := persister.Load(s.ctx)
	s.Require().NoError(err)
	s.Nil(rec)
}
