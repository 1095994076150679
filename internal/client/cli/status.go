package cli

import (
	"fmt"
	"time"

	"github.com/gestorhq/gestorcli/internal/client/api"
)

// getStatus renders the prompt decoration: "(email mode)".
func (a *App) getStatus() string {
	s := a.session.Snapshot()

	out := ""
	if s.Authenticated {
		out = s.User.Email + " "
	}
	if s.Mode != "" {
		out += string(s.Mode)
	}
	if out != "" {
		out = fmt.Sprintf("(%s)", out)
	}
	return out
}

// WhoAmI prints the cached identity, the token expiry when the token is a
// readable JWT, and any pending session error.
func (a *App) WhoAmI() {
	s := a.session.Snapshot()
	if !s.Authenticated {
		fmt.Println("Not logged in.")
		return
	}

	fmt.Printf("Name:   %s\n", s.User.Name)
	fmt.Printf("Email:  %s\n", s.User.Email)
	fmt.Printf("Role:   %s\n", s.User.Role)
	fmt.Printf("Active: %v\n", s.User.IsActive)

	if exp, ok := api.TokenExpiry(s.Token); ok {
		fmt.Printf("Token expires: %s\n", exp.Local().Format(time.RFC1123))
	}
	if s.Err != "" {
		fmt.Printf("Warning: %s\n", s.Err)
	}
}

// Status prints the connectivity mode and any pending banner.
func (a *App) Status() {
	s := a.session.Snapshot()
	mode := s.Mode
	if mode == "" {
		mode = "unknown"
	}
	fmt.Printf("Server: %s (%s)\n", a.config.ServerBaseURL, mode)
	if s.Err != "" {
		fmt.Printf("Warning: %s\n", s.Err)
	}
}

// Dismiss clears the pending error banner.
func (a *App) Dismiss() {
	a.session.ClearError()
	fmt.Println("Dismissed.")
}
