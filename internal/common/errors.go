// Package common defines shared constants and sentinel errors used across
// the Gestor client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

// ErrBusy is returned by the session manager when another session
// operation is already in flight.
var ErrBusy = errors.New("another session operation is in progress")
