package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seriestracker/internal/model"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	fs := NewFileStore(path)
	ctx := context.Background()

	state := model.TrackerState{Shows: []model.Show{{ImdbID: "tt1", Title: "The Wire"}}}
	require.NoError(t, fs.SetState(ctx, state))

	got, err := fs.GetState(ctx)
	require.NoError(t, err)
	require.Len(t, got.Shows, 1)
	assert.Equal(t, "The Wire", got.Shows[0].Title)
}

func TestFileStoreMissingFile(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	got, err := fs.GetState(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got.Shows)
	assert.Empty(t, got.Shows)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	fs := NewFileStore(path)
	got, err := fs.GetState(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got.Shows)
	assert.Empty(t, got.Shows)
}

func TestMemoryStoreCorruptDocument(t *testing.T) {
	ms := NewMemoryStore()
	ms.SetRaw([]byte("definitely not json"))

	got, err := ms.GetState(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got.Shows)
	assert.Empty(t, got.Shows)
}

func TestDecodeStateDefaultsNilShows(t *testing.T) {
	state := decodeState([]byte(`{"omdbApiKey":"secret"}`))
	assert.NotNil(t, state.Shows)
	assert.Equal(t, "secret", state.OMDBAPIKey)
}

func TestEncodeStateDefaultsNilShows(t *testing.T) {
	raw, err := encodeState(model.TrackerState{})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"shows":[]`)
}

func TestEncodeDecodePreservesOptionalFields(t *testing.T) {
	day := 5
	state := model.TrackerState{
		Shows:           []model.Show{{ImdbID: "tt1"}},
		ShowOrder:       []string{"tt1"},
		NotificationDay: &day,
		Profile:         &model.UserProfile{Slug: "walter-white", Name: "Walter White"},
	}
	raw, err := encodeState(state)
	require.NoError(t, err)

	got := decodeState(raw)
	require.NotNil(t, got.NotificationDay)
	assert.Equal(t, 5, *got.NotificationDay)
	assert.Equal(t, []string{"tt1"}, got.ShowOrder)
	require.NotNil(t, got.Profile)
	assert.Equal(t, "walter-white", got.Profile.Slug)
}
