// Package session owns the in-memory session record and every transition
// that may touch it: startup initialization, login, registration, logout,
// and profile refresh. Callers observe state snapshots; remote failures are
// captured into the record instead of propagating.
package session

import "github.com/gestorhq/gestorcli/internal/client/models"

// Mode reflects the last known backend connectivity.
type Mode string

const (
	ModeUnknown Mode = ""
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// Session is the authoritative in-memory session state, returned to callers
// by value.
//
// Invariant: Authenticated is true only while both Token and a user are
// present and the most recent validation did not reject them. Initialized
// flips to true exactly once, at the end of the first Initialize run, and
// never reverts.
type Session struct {
	User          models.User
	HasUser       bool
	Token         string
	Authenticated bool
	Initialized   bool
	Loading       bool
	Err           string
	Mode          Mode
}

// ErrServerUnavailable is the connectivity message surfaced when a cached
// session is granted while the backend cannot be reached. The UI shows it as
// a non-blocking banner.
const ErrServerUnavailable = "Server unavailable. Working with locally cached data."
