// Package api implements the single choke point for all calls to the Gestor
// backend: bearer-token attachment, request deadlines, and normalization of
// every failure into a classified, human-readable error.
package api

import (
	"context"

	"github.com/gestorhq/gestorcli/internal/client/models"
)

// Client is the surface the rest of the application talks to. Every error
// returned by a Client method is an *Error (see errors.go), except for
// local persistence failures, which are wrapped verbatim.
type Client interface {
	// Login authenticates and, on success, persists the returned token and
	// user into the credential store.
	Login(ctx context.Context, email, password string) (models.Credentials, error)

	// Register creates an account; same persistence side effect as Login.
	Register(ctx context.Context, req models.RegisterRequest) (models.Credentials, error)

	// Logout calls the remote logout endpoint. The credential store is
	// cleared whether or not the remote call succeeds.
	Logout(ctx context.Context) error

	// Profile fetches the current user using the stored token. It does not
	// update the credential store; the caller decides.
	Profile(ctx context.Context) (models.User, error)

	// Orders lists the caller's orders.
	Orders(ctx context.Context) ([]models.Order, error)

	// CheckServerConnection probes backend reachability with a short
	// deadline. It reports false on any failure instead of returning one.
	CheckServerConnection(ctx context.Context) bool
}
