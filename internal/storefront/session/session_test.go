package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/storefront/internal/storefront/session"
	"github.com/aussiebroadwan/storefront/internal/storefront/tokenstore/drivers/memory"
	"github.com/aussiebroadwan/storefront/pkg/apiclient"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
	"github.com/stretchr/testify/require"
)

// fakeAPI scripts the two user calls and counts them.
type fakeAPI struct {
	user     apiclient.UserPayload
	userErr  error
	isAdmin  bool
	adminErr error

	userCalls  int
	adminCalls int
	lastRoleID int64
}

func (f *fakeAPI) LoginToken(context.Context) (apiclient.UserPayload, error) {
	f.userCalls++
	return f.user, f.userErr
}

func (f *fakeAPI) CheckAdmin(_ context.Context, roleID int64) (bool, error) {
	f.adminCalls++
	f.lastRoleID = roleID
	return f.isAdmin, f.adminErr
}

type failingStore struct {
	*memory.Store
	err error
}

func (f *failingStore) Set(context.Context, string) error { return f.err }
func (f *failingStore) Delete(context.Context) error      { return f.err }

func anaAdmin() *fakeAPI {
	return &fakeAPI{
		user:    apiclient.UserPayload{ID: 1, Name: "Ana", RoleID: 2},
		isAdmin: true,
	}
}

func TestEmptySession(t *testing.T) {
	s := session.New(anaAdmin(), memory.New(), slogx.Discard())

	require.False(t, s.IsAuthenticated())
	require.Equal(t, "", s.UserName())
	_, ok := s.UserID()
	require.False(t, ok)
	require.False(t, s.IsAdmin())
	require.Equal(t, session.StateUnauthenticated, s.State())
}

func TestFetchUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success sets user role and admin", func(t *testing.T) {
		api := anaAdmin()
		s := session.New(api, memory.New(), slogx.Discard())
		require.True(t, s.Rehydrate("tok"))

		require.NoError(t, s.FetchUser(ctx))

		id, ok := s.UserID()
		require.True(t, ok)
		require.Equal(t, int64(1), id)
		require.Equal(t, "Ana", s.UserName())
		require.True(t, s.IsAdmin())
		roleID, ok := s.RoleID()
		require.True(t, ok)
		require.Equal(t, int64(2), roleID)
		require.Equal(t, int64(2), api.lastRoleID)
		require.Equal(t, session.StateIdentified, s.State())
	})

	t.Run("no token makes no calls", func(t *testing.T) {
		api := anaAdmin()
		s := session.New(api, memory.New(), slogx.Discard())

		err := s.FetchUser(ctx)
		require.ErrorIs(t, err, session.ErrNotAuthenticated)
		require.Zero(t, api.userCalls)
	})

	t.Run("first call failure leaves prior values", func(t *testing.T) {
		api := anaAdmin()
		s := session.New(api, memory.New(), slogx.Discard())
		require.NoError(t, s.Login(ctx, "tok"))
		before := s.Snapshot()

		cause := &apiclient.NetworkError{Method: "GET", Path: "/users/loginToken", Err: errors.New("refused")}
		api.userErr = cause
		api.user = apiclient.UserPayload{ID: 9, Name: "Mallory", RoleID: 1}

		err := s.FetchUser(ctx)

		var inconsistent *session.InconsistencyError
		require.ErrorAs(t, err, &inconsistent)
		require.Equal(t, "lookup user", inconsistent.Step)
		require.ErrorIs(t, err, cause)
		require.Equal(t, before, s.Snapshot())
		require.Equal(t, 1, api.adminCalls, "admin check must not run after a failed lookup")
	})

	t.Run("second call failure does not half apply", func(t *testing.T) {
		api := &fakeAPI{
			user:     apiclient.UserPayload{ID: 3, Name: "Bea", RoleID: 5},
			adminErr: &apiclient.HTTPStatusError{StatusCode: 500, Code: "server_error"},
		}
		s := session.New(api, memory.New(), slogx.Discard())
		s.Rehydrate("tok")

		err := s.FetchUser(ctx)
		require.Error(t, err)

		require.Equal(t, "", s.UserName())
		_, ok := s.RoleID()
		require.False(t, ok)
		require.False(t, s.IsAdmin())
		require.Equal(t, session.StateUnidentified, s.State())
	})
}

// blockingAPI holds LoginToken until release is closed.
type blockingAPI struct {
	*fakeAPI
	entered chan struct{}
	release chan struct{}
}

func (b *blockingAPI) LoginToken(ctx context.Context) (apiclient.UserPayload, error) {
	close(b.entered)
	<-b.release
	return b.fakeAPI.LoginToken(ctx)
}

func TestFetchUserDiscardedAfterConcurrentLogout(t *testing.T) {
	ctx := context.Background()
	api := &blockingAPI{fakeAPI: anaAdmin(), entered: make(chan struct{}), release: make(chan struct{})}
	s := session.New(api, memory.New(), slogx.Discard())
	require.True(t, s.Rehydrate("tok"))

	done := make(chan error, 1)
	go func() { done <- s.FetchUser(ctx) }()

	<-api.entered
	require.NoError(t, s.Logout(ctx))
	close(api.release)

	err := <-done
	var inconsistent *session.InconsistencyError
	require.ErrorAs(t, err, &inconsistent)
	require.Equal(t, "commit", inconsistent.Step)
	require.ErrorIs(t, err, session.ErrStaleSession)

	require.False(t, s.IsAuthenticated())
	require.Equal(t, "", s.UserName())
	require.False(t, s.IsAdmin())
	require.Equal(t, session.StateUnauthenticated, s.State())
	require.Equal(t, session.Snapshot{}, s.Snapshot())
}

func TestFetchUserDiscardedAfterTokenSwap(t *testing.T) {
	ctx := context.Background()
	api := &blockingAPI{fakeAPI: anaAdmin(), entered: make(chan struct{}), release: make(chan struct{})}
	s := session.New(api, memory.New(), slogx.Discard())
	require.True(t, s.Rehydrate("old"))

	done := make(chan error, 1)
	go func() { done <- s.FetchUser(ctx) }()

	<-api.entered
	require.NoError(t, s.Logout(ctx))
	require.True(t, s.Rehydrate("new"))
	close(api.release)

	require.ErrorIs(t, <-done, session.ErrStaleSession)
	require.Equal(t, "new", s.Token())
	require.Equal(t, session.StateUnidentified, s.State())
	require.False(t, s.IsAdmin())
}

func TestLoginWithUserlessResponseStaysUnidentified(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	tokens := memory.New()
	api := apiclient.New(apiclient.Config{BaseURL: srv.URL, Tokens: tokens, Logger: slogx.Discard()})
	s := session.New(api, tokens, slogx.Discard())

	err := s.Login(ctx, "tok")

	var inconsistent *session.InconsistencyError
	require.ErrorAs(t, err, &inconsistent)
	require.Equal(t, "lookup user", inconsistent.Step)
	require.ErrorIs(t, err, apiclient.ErrMalformedResponse)
	require.Equal(t, session.StateUnidentified, s.State())
	_, ok := s.UserID()
	require.False(t, ok)
	require.False(t, s.IsAdmin())
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and identifies", func(t *testing.T) {
		tokens := memory.New()
		s := session.New(anaAdmin(), tokens, slogx.Discard())

		require.NoError(t, s.Login(ctx, "tok-1"))

		require.Equal(t, "tok-1", s.Token())
		stored, ok, err := tokens.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "tok-1", stored)
		require.Equal(t, "Ana", s.UserName())
	})

	t.Run("keeps token when fetch fails", func(t *testing.T) {
		tokens := memory.New()
		api := &fakeAPI{userErr: errors.New("down")}
		s := session.New(api, tokens, slogx.Discard())

		err := s.Login(ctx, "tok-2")
		require.Error(t, err)

		require.Equal(t, "tok-2", s.Token())
		require.True(t, s.IsAuthenticated())
		stored, _, _ := tokens.Get(ctx)
		require.Equal(t, "tok-2", stored)
		require.Equal(t, session.StateUnidentified, s.State())
	})

	t.Run("persist failure is reported", func(t *testing.T) {
		api := anaAdmin()
		tokens := &failingStore{Store: memory.New(), err: errors.New("read-only")}
		s := session.New(api, tokens, slogx.Discard())

		err := s.Login(ctx, "tok-3")
		require.ErrorContains(t, err, "persist")
		require.Equal(t, "tok-3", s.Token())
		require.Zero(t, api.userCalls)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	tokens := memory.New()
	s := session.New(anaAdmin(), tokens, slogx.Discard())
	require.NoError(t, s.Login(ctx, "tok"))

	for range 2 {
		require.NoError(t, s.Logout(ctx))

		require.False(t, s.IsAuthenticated())
		require.Equal(t, "", s.UserName())
		_, ok := s.UserID()
		require.False(t, ok)
		require.False(t, s.IsAdmin())
		_, ok, err := tokens.Get(ctx)
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestLogoutClearsMemoryEvenWhenStorageFails(t *testing.T) {
	ctx := context.Background()
	s := session.New(anaAdmin(), &failingStore{Store: memory.New(), err: errors.New("locked")}, slogx.Discard())
	s.Rehydrate("tok")
	require.NoError(t, s.FetchUser(ctx))

	require.Error(t, s.Logout(ctx))
	require.Equal(t, session.Snapshot{}, s.Snapshot())
}

func TestSetUser(t *testing.T) {
	ctx := context.Background()
	s := session.New(anaAdmin(), memory.New(), slogx.Discard())
	require.NoError(t, s.Login(ctx, "tok"))

	s.SetUser(session.User{ID: 5, Name: "Bea"}, 9)

	id, _ := s.UserID()
	require.Equal(t, int64(5), id)
	require.Equal(t, "Bea", s.UserName())
	roleID, _ := s.RoleID()
	require.Equal(t, int64(9), roleID)
	require.True(t, s.IsAdmin(), "admin flag is untouched")
	require.Equal(t, "tok", s.Token(), "token is untouched")
}

func TestRehydrate(t *testing.T) {
	s := session.New(anaAdmin(), memory.New(), slogx.Discard())

	require.False(t, s.Rehydrate(""))
	require.True(t, s.Rehydrate("first"))
	require.False(t, s.Rehydrate("second"))
	require.Equal(t, "first", s.Token())
	require.Equal(t, session.StateUnidentified, s.State())
}

func TestStateString(t *testing.T) {
	require.Equal(t, "unauthenticated", session.StateUnauthenticated.String())
	require.Equal(t, "authenticated-unidentified", session.StateUnidentified.String())
	require.Equal(t, "authenticated-identified", session.StateIdentified.String())
}
