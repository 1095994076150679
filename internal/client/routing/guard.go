// Package routing decides which screen a navigation event lands on, based
// solely on the current session flags. The guard is a pure function: it
// holds no state and is evaluated on every navigation.
package routing

// Route identifies a screen.
type Route string

const (
	RouteLogin Route = "login"
	RouteHome  Route = "home"
)

// Action is what the shell should do with a navigation request.
type Action int

const (
	// ActionWait: session not initialized yet; render nothing and let the
	// shell keep its loading indicator up.
	ActionWait Action = iota
	// ActionRender: show the requested route unchanged.
	ActionRender
	// ActionRedirect: navigate to Decision.Target instead.
	ActionRedirect
)

// Decision is the guard's verdict for one navigation event.
type Decision struct {
	Action Action
	Target Route
}

// Resolve applies the access rules:
//   - uninitialized sessions wait;
//   - unauthenticated navigation anywhere but login redirects to login;
//   - authenticated navigation to login redirects home;
//   - everything else renders as requested.
//
// Idempotent: feeding a decision's target back in yields ActionRender.
func Resolve(initialized, authenticated bool, current Route) Decision {
	if !initialized {
		return Decision{Action: ActionWait}
	}
	if !authenticated && current != RouteLogin {
		return Decision{Action: ActionRedirect, Target: RouteLogin}
	}
	if authenticated && current == RouteLogin {
		return Decision{Action: ActionRedirect, Target: RouteHome}
	}
	return Decision{Action: ActionRender, Target: current}
}
