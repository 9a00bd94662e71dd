package accessctrl

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"nyumbani/internal/models"
)

// Identity is the opaque account reported by the auth provider.
type Identity struct {
	UID string
}

// AuthSource is the push-based auth collaborator. Subscribe fires the
// callback once immediately with the current status, then on every
// sign-in/sign-out. A nil identity means signed out.
type AuthSource interface {
	Subscribe(fn func(identity *Identity)) (unsubscribe func())
}

// ProfileStore resolves an identity-provider UID to an application profile.
type ProfileStore interface {
	GetProfileByUID(ctx context.Context, uid string) (*models.UserProfile, error)
}

// Navigator performs the redirect side effect.
type Navigator interface {
	Redirect(path string)
}

// Controller owns the session state machine: Unknown until the auth
// provider reports, then Authenticated or Unauthenticated for the life of
// the session. It re-evaluates the routing decision on every state or
// route change and asks the navigator to redirect when needed.
type Controller struct {
	profiles ProfileStore
	nav      Navigator
	logger   zerolog.Logger

	mu    sync.Mutex
	seq   uint64
	state State
	path  string
}

func NewController(profiles ProfileStore, nav Navigator, logger zerolog.Logger) *Controller {
	return &Controller{
		profiles: profiles,
		nav:      nav,
		logger:   logger.With().Str("component", "accessctrl").Logger(),
		state:    State{Phase: PhaseUnknown},
		path:     LoginPath,
	}
}

// Start subscribes to the auth source and returns its unsubscribe func.
func (c *Controller) Start(ctx context.Context, src AuthSource) (unsubscribe func()) {
	return src.Subscribe(func(identity *Identity) {
		c.onAuthChange(ctx, identity)
	})
}

// State returns a copy of the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetRoute records a navigation and re-evaluates the decision for it.
func (c *Controller) SetRoute(path string) Action {
	c.mu.Lock()
	c.path = path
	action := Decide(c.state, Classify(path))
	c.mu.Unlock()

	c.apply(action)
	return action
}

// Reset invalidates the session and returns the controller to Unknown.
// Only the start of a re-authentication flow should call this.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.seq++
	c.state = State{Phase: PhaseUnknown}
	c.mu.Unlock()
}

// onAuthChange handles one auth provider event. Each event supersedes any
// in-flight profile lookup: the lookup is tagged with the sequence it was
// issued under, and its result is dropped if a newer event arrived first.
func (c *Controller) onAuthChange(ctx context.Context, identity *Identity) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	if identity == nil {
		c.resolve(seq, State{Phase: PhaseUnauthenticated})
		return
	}

	uid := identity.UID
	go func() {
		profile, err := c.profiles.GetProfileByUID(ctx, uid)
		if err != nil || profile == nil {
			// Lookup failure after sign-in fails safe to signed-out.
			if err != nil {
				c.logger.Warn().Err(err).Str("uid", uid).Msg("profile lookup failed")
			}
			c.resolve(seq, State{Phase: PhaseUnauthenticated})
			return
		}
		c.resolve(seq, State{Phase: PhaseAuthenticated, Profile: profile})
	}()
}

// resolve installs a resolved state unless a newer auth event superseded
// the lookup that produced it. Returns whether the state was applied.
func (c *Controller) resolve(seq uint64, state State) bool {
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug().Uint64("seq", seq).Msg("discarding stale auth resolution")
		return false
	}
	c.state = state
	action := Decide(c.state, Classify(c.path))
	c.mu.Unlock()

	c.apply(action)
	return true
}

func (c *Controller) apply(action Action) {
	if action.Kind == ActionRedirect && c.nav != nil {
		c.nav.Redirect(action.Target)
	}
}
