// Package memory is a process-local token store. Nothing survives a restart,
// which makes it suitable for tests and throwaway runs.
package memory

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/storefront/internal/storefront/tokenstore"
)

var _ tokenstore.Store = (*Store)(nil)

type Store struct {
	mu    sync.RWMutex
	token string
	set   bool
}

func New() *Store { return &Store{} }

// NewWithToken returns a store that already holds token.
func NewWithToken(token string) *Store {
	return &Store{token: token, set: true}
}

func (s *Store) Get(context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.set, nil
}

func (s *Store) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.set = token, true
	return nil
}

func (s *Store) Delete(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.set = "", false
	return nil
}

func (s *Store) Close() error { return nil }
