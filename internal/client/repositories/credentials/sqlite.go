package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gestorhq/gestorcli/internal/client/models"
	"github.com/gestorhq/gestorcli/internal/common"
	"github.com/gestorhq/gestorcli/internal/dbx"
)

// SQLiteStore keeps credentials in a two-row key-value table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when no token is cached.
func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	value, err := s.get(ctx, s.db, common.TokenKey)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// User returns the cached profile. A missing entry or one that no longer
// decodes as JSON is treated as "no cached user": the cache is advisory and
// a corrupt row must not wedge startup.
func (s *SQLiteStore) User(ctx context.Context) (models.User, bool, error) {
	value, err := s.get(ctx, s.db, common.UserKey)
	if err != nil {
		return models.User{}, false, err
	}
	if len(value) == 0 {
		return models.User{}, false, nil
	}

	var user models.User
	if err := json.Unmarshal(value, &user); err != nil {
		return models.User{}, false, nil
	}
	return user, true, nil
}

// SetCredentials stores the token and the serialized user in a single
// transaction, so a crash between the two writes cannot leave a token
// without its profile.
func (s *SQLiteStore) SetCredentials(ctx context.Context, token string, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		return s.set(ctx, tx, common.UserKey, data)
	})
}

// Clear removes both entries. Deleting rows that do not exist is a no-op.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key IN (?, ?)`,
		common.TokenKey, common.UserKey)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
