package gate

import (
	"context"
	"log/slog"

	"github.com/devconsult/backend/internal/metrics"
	"github.com/devconsult/backend/internal/service"
	"github.com/devconsult/backend/pkg/auth"
)

// EventType is an authentication state change seen by a dashboard session.
type EventType string

const (
	EventMount          EventType = "mount"
	EventSignedIn       EventType = "signed-in"
	EventTokenRefreshed EventType = "token-refreshed"
	EventSignedOut      EventType = "signed-out"
	EventTokenExpired   EventType = "token-expired"
)

// Event carries the token current after the change. Token is ignored for
// signed-out and token-expired.
type Event struct {
	Type  EventType
	Token string
}

// Apply re-enters the state machine for one event.
// Sign-out and expiry end in unauthenticated without a role lookup.
func (g *Gate) Apply(ctx context.Context, ev Event) (Decision, bool) {
	switch ev.Type {
	case EventMount, EventSignedIn, EventTokenRefreshed:
		return g.Evaluate(ctx, ev.Token), true
	case EventSignedOut, EventTokenExpired:
		metrics.GateDecisionsTotal.WithLabelValues(string(StateUnauthenticated)).Inc()
		return Decision{
			State: StateUnauthenticated,
			Err:   &service.AuthError{Err: auth.ErrMissingToken},
			Path:  []State{StateCheckingSession, StateUnauthenticated},
		}, true
	default:
		slog.Warn("ignoring unknown gate event", "type", ev.Type)
		return Decision{}, false
	}
}

// Run evaluates every event from events in order and emits one decision per
// recognised event. The output closes when events closes or ctx is done.
func (g *Gate) Run(ctx context.Context, events <-chan Event) <-chan Decision {
	out := make(chan Decision)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				d, ok := g.Apply(ctx, ev)
				if !ok {
					continue
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
