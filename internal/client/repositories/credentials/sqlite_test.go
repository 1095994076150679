package credentials

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/gestorhq/gestorcli/internal/client/models"
	"github.com/gestorhq/gestorcli/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:credstore?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS credentials (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM credentials`)
	require.NoError(t, err)
	return db
}

func insertRaw(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO credentials(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func sampleUser() models.User {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return models.User{
		ID:        "1",
		Name:      "Ana Souza",
		Email:     "ana@example.org",
		Role:      "admin",
		IsActive:  true,
		CreatedAt: created,
		UpdatedAt: created.Add(24 * time.Hour),
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(setupDB(t))
	user := sampleUser()

	require.NoError(t, store.SetCredentials(ctx, "tok123", user))

	token, err := store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok123", token)

	got, found, err := store.User(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, user.Email, got.Email)
	require.Equal(t, user.Role, got.Role)
	require.True(t, got.CreatedAt.Equal(user.CreatedAt))
	require.True(t, got.UpdatedAt.Equal(user.UpdatedAt))
}

func TestSQLiteStore_EmptyStore(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(setupDB(t))

	token, err := store.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)

	_, found, err := store.User(ctx)
	require.NoError(t, err)
	require.False(t, found)
}

func TestSQLiteStore_MalformedUserIsAbsent(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	store := NewSQLiteStore(db)

	insertRaw(t, db, common.UserKey, []byte(`{"id": truncated`))

	_, found, err := store.User(ctx)
	require.NoError(t, err, "malformed cache must not surface an error")
	require.False(t, found)
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(setupDB(t))

	require.NoError(t, store.SetCredentials(ctx, "old", sampleUser()))

	updated := sampleUser()
	updated.Name = "Ana S."
	require.NoError(t, store.SetCredentials(ctx, "new", updated))

	token, err := store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "new", token)

	got, found, err := store.User(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Ana S.", got.Name)
}

func TestSQLiteStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(setupDB(t))

	// Clearing an empty store must not fail.
	require.NoError(t, store.Clear(ctx))

	require.NoError(t, store.SetCredentials(ctx, "tok", sampleUser()))
	require.NoError(t, store.Clear(ctx))

	token, err := store.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)

	_, found, err := store.User(ctx)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Clear(ctx))
}
