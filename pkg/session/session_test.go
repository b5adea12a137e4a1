package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"namogange/pkg/ags"
)

func TestLive(t *testing.T) {
	live := NewLive()
	ctx := context.Background()

	_, err := live.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	live.SetUser(ags.User{ID: "U1", DisplayName: "Asha"})
	user, err := live.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.DisplayName)

	live.Clear()
	_, err = live.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestPersisted_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	p := NewPersisted(path)
	ctx := context.Background()

	_, err := p.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, p.Save(ags.User{ID: "U7", DisplayName: "Ravi"}))
	user, err := p.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, ags.User{ID: "U7", DisplayName: "Ravi"}, user)

	require.NoError(t, p.Remove())
	require.NoError(t, p.Remove())
	_, err = p.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestPersisted_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewPersisted(path).Current(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}

func TestChain(t *testing.T) {
	dir := t.TempDir()
	persisted := NewPersisted(filepath.Join(dir, "session.json"))
	live := NewLive()
	chain := Chain{live, persisted}
	ctx := context.Background()

	_, err := chain.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, persisted.Save(ags.User{ID: "U2", DisplayName: "Saved"}))
	user, err := chain.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "U2", user.ID)

	live.SetUser(ags.User{ID: "U1", DisplayName: "Live"})
	user, err = chain.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "U1", user.ID, "live session wins")
}

func TestChain_SatisfiesAgsSession(t *testing.T) {
	var _ ags.Session = Chain{}
	var _ ags.Session = NewLive()
	var _ ags.Session = NewPersisted("x")
}
