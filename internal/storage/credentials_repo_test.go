package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsMissingIsUnconfigured(t *testing.T) {
	repo := NewCredentialsRepo(setupTestDB(t))

	creds, err := repo.Get()
	require.NoError(t, err, "a fresh store is not an error")
	assert.False(t, creds.Configured())
}

func TestCredentialsRoundTrip(t *testing.T) {
	repo := NewCredentialsRepo(setupTestDB(t))

	require.NoError(t, repo.Save("key-1", "ws-1"))

	creds, err := repo.Get()
	require.NoError(t, err)
	assert.True(t, creds.Configured())
	assert.Equal(t, "key-1", creds.APIKey)
	assert.Equal(t, "ws-1", creds.WorkspaceID)
}

func TestCredentialsLastWriteWins(t *testing.T) {
	repo := NewCredentialsRepo(setupTestDB(t))

	require.NoError(t, repo.Save("first", "ws-1"))
	require.NoError(t, repo.Save("second", "ws-2"))

	creds, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, "second", creds.APIKey)
	assert.Equal(t, "ws-2", creds.WorkspaceID)
}

func TestCredentialsClear(t *testing.T) {
	repo := NewCredentialsRepo(setupTestDB(t))

	require.NoError(t, repo.Save("key-1", "ws-1"))
	require.NoError(t, repo.Clear())

	creds, err := repo.Get()
	require.NoError(t, err)
	assert.False(t, creds.Configured())

	// Clearing an already-empty store is fine.
	require.NoError(t, repo.Clear())
}
