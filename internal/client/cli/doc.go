// Package cli implements the interactive shell of the Gestor client: a
// small REPL whose available commands depend on the session state. Screen
// changes go through the routing guard, so an expired session always lands
// back on the login screen.
package cli
