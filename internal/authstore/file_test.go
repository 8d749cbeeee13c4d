package authstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/testutil"
)

func TestFilePersisterRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "auth.json")
	p := NewFilePersister(path)

	rec, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, p.Save(ctx, Record{Token: "tok", User: &model.User{ID: 1, Username: "admin", Role: model.RoleAdmin}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	rec, err = p.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "tok", rec.Token)
	assert.Equal(t, "admin", rec.User.Username)
	assert.Nil(t, rec.Player)

	require.NoError(t, p.Clear(ctx))
	require.NoError(t, p.Clear(ctx))
	rec, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestFilePersisterSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "auth.json")

	store, err := Open(ctx, NewFilePersister(path), nil)
	require.NoError(t, err)
	require.NoError(t, store.Login(ctx, "tok", model.User{ID: 5, Role: model.RoleMember}, &model.Player{ID: 7}))

	reopened, err := Open(ctx, NewFilePersister(path), nil)
	require.NoError(t, err)
	state := reopened.State()
	assert.True(t, state.IsLoggedIn)
	assert.False(t, state.IsAdmin)
	assert.Equal(t, int64(7), state.Player.ID)
}

func TestOpenDiscardsCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "auth.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))

	_, err := NewFilePersister(path).Load(ctx)
	require.ErrorIs(t, err, ErrCorruptRecord)

	store, err := Open(ctx, NewFilePersister(path), testutil.Logger(t))
	require.NoError(t, err)
	assert.Equal(t, State{}, store.State())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, store.Login(ctx, "tok", model.User{ID: 1}, nil))
	assert.True(t, store.State().IsLoggedIn)
}

func TestOpenFailsOnUnreadableFile(t *testing.T) {
	dir := t.TempDir()

	// A directory in place of the file is an I/O error, not a corrupt record
	_, err := Open(context.Background(), NewFilePersister(dir), nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptRecord)
}
