package session

import (
	"context"
	"sync"
	"time"

	"github.com/gestorhq/gestorcli/internal/client/api"
	"github.com/gestorhq/gestorcli/internal/client/models"
	"github.com/gestorhq/gestorcli/internal/client/repositories/credentials"
	"github.com/gestorhq/gestorcli/internal/common"
	"github.com/gestorhq/gestorcli/internal/logging"
)

// Manager is the single writer of the session record. Transitions are
// serialized: while one is in flight, further calls return common.ErrBusy
// without touching state, so an impatient second "login" cannot interleave
// with the first.
type Manager struct {
	mu    sync.Mutex
	state Session
	busy  bool

	client api.Client
	store  credentials.Store
	log    logging.Logger
}

func NewManager(client api.Client, store credentials.Store, log logging.Logger) *Manager {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &Manager{client: client, store: store, log: log}
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// begin claims the single transition slot and marks the session loading.
func (m *Manager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return common.ErrBusy
	}
	m.busy = true
	m.state.Loading = true
	m.state.Err = ""
	return nil
}

// end releases the slot, clears Loading, and applies the terminal mutation
// in one critical section so no intermediate state is observable.
func (m *Manager) end(apply func(*Session)) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = false
	m.state.Loading = false
	if apply != nil {
		apply(&m.state)
	}
	return m.state
}

// Initialize reconciles the local credential cache with the backend and
// produces the startup session. It runs at most once per process; repeat
// calls return the current state unchanged.
//
// Outcomes:
//   - nothing cached            -> unauthenticated, no network traffic
//   - cached + server down      -> authenticated offline, connectivity error set
//   - cached + profile accepted -> authenticated, user refreshed from server
//   - cached + profile rejected -> credentials wiped, unauthenticated
func (m *Manager) Initialize(ctx context.Context) (Session, error) {
	m.mu.Lock()
	if m.state.Initialized {
		s := m.state
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	if err := m.begin(); err != nil {
		return m.Snapshot(), err
	}

	outcome := m.runInitializer(ctx)
	return m.end(func(s *Session) {
		*s = outcome
		s.Initialized = true
		s.Loading = false
	}), nil
}

// runInitializer walks the startup state machine and returns the terminal
// session value (Initialized/Loading are fixed up by the caller).
func (m *Manager) runInitializer(ctx context.Context) Session {
	token, err := m.store.Token(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to read stored token", "error", err)
		return Session{Err: err.Error()}
	}

	user, hasUser, err := m.store.User(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to read stored user", "error", err)
		return Session{Err: err.Error()}
	}

	if token == "" && !hasUser {
		m.log.Info(ctx, "no stored credentials, starting unauthenticated")
		return Session{}
	}

	if !m.client.CheckServerConnection(ctx) {
		if token == "" || !hasUser {
			// Half a credential pair cannot back an offline session.
			m.log.Warn(ctx, "server unreachable and cached credentials are incomplete")
			return Session{Err: ErrServerUnavailable}
		}
		m.log.Warn(ctx, "server unreachable, granting cached session", "user", user.Email)
		return Session{
			User: user, HasUser: true, Token: token,
			Authenticated: true,
			Err:           ErrServerUnavailable,
			Mode:          ModeOffline,
		}
	}

	fresh, err := m.client.Profile(ctx)
	if err != nil {
		m.log.Warn(ctx, "cached token rejected, clearing credentials", "error", err)
		if lerr := m.client.Logout(ctx); lerr != nil {
			m.log.Debug(ctx, "remote logout during init failed", "error", lerr)
		}
		return Session{Err: err.Error()}
	}

	m.log.Info(ctx, "session restored", "user", fresh.Email)
	return Session{
		User: fresh, HasUser: true, Token: token,
		Authenticated: true,
		Mode:          ModeOnline,
	}
}

// Login authenticates and applies the outcome. The API client persists the
// credentials as its own side effect; this transition only mutates the
// in-memory record.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	if err := m.begin(); err != nil {
		return m.Snapshot(), err
	}

	creds, err := m.client.Login(ctx, email, password)
	return m.end(func(s *Session) {
		if err != nil {
			s.User, s.HasUser, s.Token = models.User{}, false, ""
			s.Authenticated = false
			s.Err = err.Error()
			return
		}
		// Mode is owned by the initializer and the connectivity watcher;
		// a login does not touch it.
		s.User, s.HasUser, s.Token = creds.User, true, creds.Token
		s.Authenticated = true
	}), nil
}

// Register creates an account; the transition shape mirrors Login.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (Session, error) {
	if err := m.begin(); err != nil {
		return m.Snapshot(), err
	}

	creds, err := m.client.Register(ctx, req)
	return m.end(func(s *Session) {
		if err != nil {
			s.User, s.HasUser, s.Token = models.User{}, false, ""
			s.Authenticated = false
			s.Err = err.Error()
			return
		}
		s.User, s.HasUser, s.Token = creds.User, true, creds.Token
		s.Authenticated = true
	}), nil
}

// Logout always ends unauthenticated. A failing remote call is logged and
// swallowed; the API client has already wiped the local credentials either
// way.
func (m *Manager) Logout(ctx context.Context) (Session, error) {
	if err := m.begin(); err != nil {
		return m.Snapshot(), err
	}

	if err := m.client.Logout(ctx); err != nil {
		m.log.Warn(ctx, "remote logout failed", "error", err)
	}

	return m.end(func(s *Session) {
		s.User, s.HasUser, s.Token = models.User{}, false, ""
		s.Authenticated = false
		s.Err = ""
	}), nil
}

// RefreshProfile re-fetches the current user. Rejection means the session
// is no longer valid.
func (m *Manager) RefreshProfile(ctx context.Context) (Session, error) {
	if err := m.begin(); err != nil {
		return m.Snapshot(), err
	}

	user, err := m.client.Profile(ctx)
	return m.end(func(s *Session) {
		if err != nil {
			s.Authenticated = false
			s.Err = err.Error()
			return
		}
		s.User, s.HasUser = user, true
		s.Authenticated = true
	}), nil
}

// ClearError dismisses a transient error banner without touching any other
// field.
func (m *Manager) ClearError() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Err = ""
	return m.state
}

// WatchConnectivity probes the backend every interval and flips Mode as it
// comes and goes. Blocks until ctx is done; run it in its own goroutine.
func (m *Manager) WatchConnectivity(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			reachable := m.client.CheckServerConnection(ctx)

			m.mu.Lock()
			prev := m.state.Mode
			if reachable {
				m.state.Mode = ModeOnline
				if m.state.Err == ErrServerUnavailable {
					m.state.Err = ""
				}
			} else {
				m.state.Mode = ModeOffline
			}
			changed := prev != m.state.Mode
			mode := m.state.Mode
			m.mu.Unlock()

			if changed {
				m.log.Info(ctx, "connectivity changed", "mode", mode)
			}

		case <-ctx.Done():
			return
		}
	}
}
