// Package gate decides whether a visitor may see the admin dashboard.
//
// Every evaluation walks the same states:
//
//	checking-session -> unauthenticated
//	checking-session -> checking-role -> authorized | denied
//
// A failed role lookup ends in denied. Nothing is cached between evaluations.
package gate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/devconsult/backend/internal/metrics"
	"github.com/devconsult/backend/internal/service"
	"github.com/devconsult/backend/pkg/auth"
)

// State is a step of the admin gate.
type State string

const (
	StateCheckingSession State = "checking-session"
	StateUnauthenticated State = "unauthenticated"
	StateCheckingRole    State = "checking-role"
	StateDenied          State = "denied"
	StateAuthorized      State = "authorized"
)

// Terminal reports whether no further transition follows s within one evaluation.
func (s State) Terminal() bool {
	return s == StateUnauthenticated || s == StateDenied || s == StateAuthorized
}

// TokenVerifier resolves an access token to a user id.
type TokenVerifier interface {
	VerifyUserID(token string) (string, error)
}

// RoleChecker answers the admin question for a user.
type RoleChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Decision is the outcome of one evaluation.
type Decision struct {
	State  State
	UserID string
	// Err is the *service.AuthError or *service.AdminCheckError behind the outcome, if any.
	Err error
	// Path lists every state visited, ending with State.
	Path []State
}

// Authorized reports whether the dashboard may be shown.
func (d Decision) Authorized() bool {
	return d.State == StateAuthorized
}

// Gate evaluates access tokens against the admin role.
type Gate struct {
	tokens TokenVerifier
	roles  RoleChecker
}

func New(tokens TokenVerifier, roles RoleChecker) *Gate {
	return &Gate{tokens: tokens, roles: roles}
}

// Evaluate runs the full state machine for token.
func (g *Gate) Evaluate(ctx context.Context, token string) Decision {
	d := g.evaluate(ctx, token)
	metrics.GateDecisionsTotal.WithLabelValues(string(d.State)).Inc()
	return d
}

func (g *Gate) evaluate(ctx context.Context, token string) Decision {
	path := []State{StateCheckingSession}

	if token == "" {
		return Decision{
			State: StateUnauthenticated,
			Err:   &service.AuthError{Err: auth.ErrMissingToken},
			Path:  append(path, StateUnauthenticated),
		}
	}
	userID, err := g.tokens.VerifyUserID(token)
	if err != nil {
		return Decision{
			State: StateUnauthenticated,
			Err:   &service.AuthError{Err: err},
			Path:  append(path, StateUnauthenticated),
		}
	}

	path = append(path, StateCheckingRole)
	ok, err := g.roles.IsAdmin(ctx, userID)
	if err != nil {
		var checkErr *service.AdminCheckError
		if !errors.As(err, &checkErr) {
			checkErr = &service.AdminCheckError{UserID: userID, Err: err}
		}
		slog.Warn("admin check failed, denying", "user_id", userID, "error", err)
		return Decision{State: StateDenied, UserID: userID, Err: checkErr, Path: append(path, StateDenied)}
	}
	if !ok {
		return Decision{State: StateDenied, UserID: userID, Path: append(path, StateDenied)}
	}
	return Decision{State: StateAuthorized, UserID: userID, Path: append(path, StateAuthorized)}
}
