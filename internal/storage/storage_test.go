package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchcard-cli/punchcard/internal/model"
)

// setupTestDB creates an in-memory database for testing.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSetAndGet(t *testing.T) {
	db := setupTestDB(t)

	creds := model.NewCredentials("key-1", "ws-1")
	require.NoError(t, db.Set(creds))

	loaded := &model.Credentials{}
	require.NoError(t, db.Get(model.KeyCredentials, loaded))
	assert.Equal(t, "key-1", loaded.APIKey)
	assert.Equal(t, "ws-1", loaded.WorkspaceID)
	assert.Equal(t, model.KeyCredentials, loaded.GetKey())
}

func TestGetMissingKey(t *testing.T) {
	db := setupTestDB(t)

	err := db.Get("nope", &model.Credentials{})
	assert.True(t, IsErrKeyNotFound(err))
}

func TestSetBytesAndGetBytes(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.SetBytes("raw", []byte(`{"a":1}`)))
	data, err := db.GetBytes("raw")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), data)
}

func TestDeleteAndExists(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.SetBytes("k", []byte("v")))
	exists, err := db.Exists("k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, db.Delete("k"))
	exists, err = db.Exists("k")
	require.NoError(t, err)
	assert.False(t, exists)
}
