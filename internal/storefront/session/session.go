// Package session holds the storefront's in-memory session: who is logged
// in, with which token, and whether their role is an admin role.
//
// The session is the second stage of a two stage cache. The persisted token
// (see tokenstore) survives restarts; the Session is rebuilt from it on
// demand. Identified tracks whether the user lookup for the current token
// has completed.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/storefront/internal/storefront/tokenstore"
	"github.com/aussiebroadwan/storefront/pkg/apiclient"
)

// ErrNotAuthenticated is returned by FetchUser when no token is set.
var ErrNotAuthenticated = errors.New("session: no token set")

// ErrStaleSession means the token changed or was cleared while a lookup for
// it was in flight. The lookup result is discarded.
var ErrStaleSession = errors.New("session: token changed during lookup")

// InconsistencyError reports a token that could not be resolved to a user.
// The session keeps whatever it held before the failed lookup.
type InconsistencyError struct {
	Step string // "lookup user", "check admin" or "commit"
	Err  error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("session: token present but %s failed: %v", e.Step, e.Err)
}

func (e *InconsistencyError) Unwrap() error { return e.Err }

// UserAPI is the slice of the shop API the session needs. *apiclient.Client
// satisfies it.
type UserAPI interface {
	LoginToken(ctx context.Context) (apiclient.UserPayload, error)
	CheckAdmin(ctx context.Context, roleID int64) (bool, error)
}

type User struct {
	ID   int64
	Name string
}

type State int

const (
	StateUnauthenticated State = iota // no token
	StateUnidentified                 // token set, user not loaded
	StateIdentified                   // token set, user loaded
)

func (s State) String() string {
	switch s {
	case StateUnidentified:
		return "authenticated-unidentified"
	case StateIdentified:
		return "authenticated-identified"
	default:
		return "unauthenticated"
	}
}

// Snapshot is a point-in-time copy of the session fields.
type Snapshot struct {
	User       *User
	Token      string
	RoleID     *int64
	IsAdmin    bool
	Identified bool
}

// Session is owned by the application and handed to whatever needs it.
type Session struct {
	api    UserAPI
	tokens tokenstore.Store
	logger *slog.Logger

	mu         sync.RWMutex
	user       *User
	token      string
	roleID     *int64
	isAdmin    bool
	identified bool
}

// New creates an empty session.
func New(api UserAPI, tokens tokenstore.Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		api:    api,
		tokens: tokens,
		logger: logger,
	}
}

// FetchUser resolves the current token to a user and asks the server whether
// that user's role is an admin role. Both answers are applied together, and
// only when both calls succeed and the token they were made for is still
// the current one. A failure is logged and returned as an *InconsistencyError.
func (s *Session) FetchUser(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	payload, err := s.api.LoginToken(ctx)
	if err != nil {
		return s.fetchFailed(&InconsistencyError{Step: "lookup user", Err: err})
	}

	isAdmin, err := s.api.CheckAdmin(ctx, payload.RoleID)
	if err != nil {
		return s.fetchFailed(&InconsistencyError{Step: "check admin", Err: err})
	}

	roleID := payload.RoleID

	s.mu.Lock()
	if s.token != token {
		s.mu.Unlock()
		return s.fetchFailed(&InconsistencyError{Step: "commit", Err: ErrStaleSession})
	}
	s.user = &User{ID: payload.ID, Name: payload.Name}
	s.roleID = &roleID
	s.isAdmin = isAdmin
	s.identified = true
	s.mu.Unlock()

	s.logger.Debug("session identified", "user_id", payload.ID, "role_id", roleID, "is_admin", isAdmin)
	return nil
}

func (s *Session) fetchFailed(err *InconsistencyError) error {
	s.logger.Error("failed to load user information", "step", err.Step, "err", err.Err)
	return err
}

// Login stores the token in memory and in durable storage, then identifies
// the user. The token stays in place even when identification fails; the
// returned error tells the caller it did.
func (s *Session) Login(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.identified = false
	s.mu.Unlock()

	if err := s.tokens.Set(ctx, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	return s.FetchUser(ctx)
}

// Logout clears every session field and removes the persisted token. The
// in-memory clear always happens; only the storage delete can fail.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.roleID = nil
	s.isAdmin = false
	s.identified = false
	s.mu.Unlock()

	if err := s.tokens.Delete(ctx); err != nil {
		return fmt.Errorf("failed to remove persisted token: %w", err)
	}
	return nil
}

// SetUser replaces the user fields and role id after a profile edit. The
// token and admin flag are left alone.
func (s *Session) SetUser(user User, roleID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &User{ID: user.ID, Name: user.Name}
	s.roleID = &roleID
}

// Rehydrate copies a persisted token into memory when the session has none.
// It does not fetch the user. Reports whether the token was adopted.
func (s *Session) Rehydrate(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" || s.token != "" {
		return false
	}
	s.token = token
	s.identified = false
	return true
}
