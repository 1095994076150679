// Package credentials persists the local auth state (bearer token and
// cached user profile) in a SQLite key-value table so a session can be
// restored across process restarts.
package credentials

import (
	"context"

	"github.com/gestorhq/gestorcli/internal/client/models"
)

// Store is the durable credential cache.
//
// Contract:
//   - Token returns the stored bearer token, or "" when absent.
//   - User returns the cached profile; a missing or malformed entry is
//     reported as found=false, never as an error.
//   - SetCredentials writes token and user together.
//   - Clear removes both entries and is safe to call when nothing is stored.
type Store interface {
	Token(ctx context.Context) (string, error)
	User(ctx context.Context) (models.User, bool, error)
	SetCredentials(ctx context.Context, token string, user models.User) error
	Clear(ctx context.Context) error
}
