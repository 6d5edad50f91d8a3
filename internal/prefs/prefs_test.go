package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SavePreferences(Preferences{Category: "Food", SortOrder: "amount_desc"}))

	loaded := store.LoadPreferences()
	assert.Equal(t, "Food", loaded.Category)
	assert.Equal(t, "amount_desc", loaded.SortOrder)
}

func TestLoadPreferencesDefaults(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	loaded := store.LoadPreferences()
	assert.Equal(t, "All", loaded.Category)
	assert.Equal(t, "date_desc", loaded.SortOrder)
}

func TestLoadPreferencesCorruptFallsBack(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "prefs.json"), []byte("{not json"), 0o600))

	loaded := store.LoadPreferences()
	assert.Equal(t, DefaultPreferences(), loaded)
}

func TestCredentialsLifecycle(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.Token(), "fresh store has no credential")

	require.NoError(t, store.SaveToken("tok123"))
	require.NoError(t, store.SaveUsername("alice"))
	assert.Equal(t, "tok123", store.Token())
	assert.Equal(t, "alice", store.Username())

	require.NoError(t, store.SavePreferences(Preferences{Category: "Food", SortOrder: "date_asc"}))
	require.NoError(t, store.ClearCredentials())

	assert.Empty(t, store.Token())
	assert.Empty(t, store.Username())
	// Logout keeps the filter/sort choice.
	assert.Equal(t, "Food", store.LoadPreferences().Category)

	// Clearing twice is fine.
	require.NoError(t, store.ClearCredentials())
}
