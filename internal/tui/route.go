package tui

import "github.com/wardkeep/tui-go/internal/session"

// Route identifies the page currently presented
type Route int

const (
	RouteLogin Route = iota
	RouteRegister
	RouteCleaner
	RouteManager
	RouteAdmin
)

// String returns the route's page name
func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteRegister:
		return "register"
	case RouteCleaner:
		return "cleaner"
	case RouteManager:
		return "manager"
	case RouteAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Navigation fragments. Only the two auth pages are directly addressable;
// every other route is derived from the session's role.
const (
	fragmentLogin    = "login"
	fragmentRegister = "register"
)

// ResolveRoute maps the current session and navigation fragment to the page
// to present. It is pure and total: every input yields exactly one outcome.
// ok is false when the session carries a role this client does not know,
// which callers must treat as a corrupted session and force a logout.
func ResolveRoute(sess *session.Session, fragment string) (route Route, ok bool) {
	if sess == nil {
		if fragment == fragmentRegister {
			return RouteRegister, true
		}
		return RouteLogin, true
	}

	switch sess.Role {
	case session.RoleCleaner:
		return RouteCleaner, true
	case session.RoleManager:
		return RouteManager, true
	case session.RoleDean, session.RoleCommissioner:
		return RouteAdmin, true
	default:
		return RouteLogin, false
	}
}
