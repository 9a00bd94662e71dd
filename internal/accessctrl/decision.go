package accessctrl

import "nyumbani/internal/models"

// Phase is the resolution status of the session.
type Phase int

const (
	// PhaseUnknown means the auth provider has not reported yet.
	PhaseUnknown Phase = iota
	PhaseAuthenticated
	PhaseUnauthenticated
)

// State is the controller's view of the current session. Profile is set
// only when Phase is PhaseAuthenticated.
type State struct {
	Phase   Phase
	Profile *models.UserProfile
}

// ActionKind enumerates what the routing layer should do with a request.
type ActionKind int

const (
	// ActionWait renders a loading affordance and nothing else.
	ActionWait ActionKind = iota
	// ActionAllow renders the requested content.
	ActionAllow
	// ActionRedirect navigates to Target instead.
	ActionRedirect
)

type Action struct {
	Kind   ActionKind
	Target string
}

var (
	wait  = Action{Kind: ActionWait}
	allow = Action{Kind: ActionAllow}
)

func redirectTo(path string) Action {
	return Action{Kind: ActionRedirect, Target: path}
}

// homeFor returns the default landing route for a resolved profile.
// Staff and homeowners share the agency section; only the tenant role
// lives under the tenant section.
func homeFor(profile *models.UserProfile) string {
	if profile != nil && profile.Role == models.RoleTenant {
		return TenantHome
	}
	return AdminHome
}

// Decide is the single total mapping from (session state, route class) to
// an action. Every redirect target re-evaluates to Allow under the same
// state, so redirects can never chain or loop.
func Decide(state State, route RouteClass) Action {
	switch state.Phase {
	case PhaseUnknown:
		return wait

	case PhaseUnauthenticated:
		if route == RouteLogin {
			return allow
		}
		return redirectTo(LoginPath)

	default: // PhaseAuthenticated
		home := homeFor(state.Profile)
		allowed := RouteAdmin
		if state.Profile != nil && state.Profile.Role == models.RoleTenant {
			allowed = RouteTenant
		}
		if route == allowed {
			return allow
		}
		return redirectTo(home)
	}
}
