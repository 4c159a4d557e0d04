package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/storefront/internal/devapi/domain"
	"github.com/aussiebroadwan/storefront/internal/devapi/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

const (
	MaxNameLength     = 64
	MinPasswordLength = 8
)

var (
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrNameTaken          = errors.New("name is already taken")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError reports unacceptable registration input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Reason }

type UserService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Issuer   string
	TokenTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// Register creates a customer account and returns a session token for it.
func (s *UserService) Register(ctx context.Context, name, password string) (string, domain.User, error) {
	name = strings.TrimSpace(name)
	if err := validateCredentials(name, password); err != nil {
		return "", domain.User{}, err
	}

	user, err := s.create(ctx, s.Store, name, password, domain.RoleCustomer)
	if err != nil {
		return "", domain.User{}, err
	}

	token, err := s.issue(user)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}

// Authenticate checks a name and password and returns a session token.
// Unknown names and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, name, password string) (string, domain.User, error) {
	user, err := s.Store.Users().GetUserByName(ctx, strings.TrimSpace(name))
	if errors.Is(err, store.ErrNotFound) {
		return "", domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		return "", domain.User{}, fmt.Errorf("verify password for user %d: %w", user.ID, err)
	}

	token, err := s.issue(user)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID int64) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return user, err
}

// EnsureAdmin creates an admin account named name unless any admin exists.
// It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, name, password string) (bool, error) {
	if err := validateCredentials(name, password); err != nil {
		return false, err
	}

	created := false
	err := s.Store.WithTx(ctx, func(tx store.Store) error {
		count, err := tx.Users().CountByRole(ctx, domain.RoleAdmin)
		if err != nil || count > 0 {
			return err
		}
		if _, err := s.create(ctx, tx, name, password, domain.RoleAdmin); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (s *UserService) create(ctx context.Context, st store.Store, name, password string, roleID int64) (domain.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{Name: name, PasswordHash: hash, RoleID: roleID}
	user.ID, err = st.Users().CreateUser(ctx, user)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.User{}, ErrNameTaken
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *UserService) issue(user domain.User) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	token, err := s.Signer.Sign(jwtx.NewClaims(user.ID, user.RoleID, ttl, s.Issuer, now().UTC()))
	if err != nil {
		return "", fmt.Errorf("issue token for user %d: %w", user.ID, err)
	}
	return token, nil
}

func validateCredentials(name, password string) error {
	switch {
	case name == "":
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	case utf8.RuneCountInString(name) > MaxNameLength:
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("must be at most %d characters", MaxNameLength)}
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}
	return nil
}
