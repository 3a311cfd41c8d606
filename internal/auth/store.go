// Package auth holds the session: the signed-in user, the bearer token and
// the authenticated flag that gates cart and checkout.
package auth

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/an678-mhg/test-fe-interview-ecom/internal/api"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/domain"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/persist"
)

// Authenticator is the slice of the remote client the store needs.
type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) (*api.AuthResponse, error)
}

// session is the persisted shape under the auth-storage key.
type session struct {
	User            *domain.User `json:"user"`
	Token           string       `json:"token"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// State is a point-in-time snapshot of the session.
type State struct {
	User            *domain.User `json:"user"`
	Token           string       `json:"token"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	Error           string       `json:"error,omitempty"`
}

type Store struct {
	mu      sync.Mutex
	api     Authenticator
	persist persist.Store

	user      *domain.User
	token     string
	authed    bool
	isLoading bool
	errMsg    string

	// onLogout is notified before the session is torn down. Wiring in cmd
	// subscribes the cart's Clear here, so the stores stay decoupled.
	onLogout []func(ctx context.Context)
}

// New builds an auth store, rehydrating any session left by a previous run.
// The token is trusted as-is; the collaborator rejects it when it is stale.
func New(a Authenticator, p persist.Store) *Store {
	s := &Store{api: a, persist: p}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var sess session
	err := p.Load(ctx, persist.AuthKey, &sess)
	switch {
	case err == nil:
		s.user = sess.User
		s.token = sess.Token
		s.authed = sess.IsAuthenticated
	case errors.Is(err, persist.ErrNotFound):
		// first run, signed out
	default:
		log.Printf("auth: load snapshot error: %v", err)
	}

	return s
}

// OnLogout registers a listener invoked on every logout, before the session
// fields are cleared.
func (s *Store) OnLogout(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Login authenticates against the collaborator. The failure is recorded on
// the store and also returned, so the login form can stay open and react.
func (s *Store) Login(ctx context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	s.isLoading = true
	s.errMsg = ""
	s.mu.Unlock()

	resp, err := s.api.Login(ctx, creds)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false

	if err != nil {
		s.errMsg = err.Error()
		return err
	}

	user := resp.User()
	s.user = &user
	s.token = resp.Token
	s.authed = true
	s.flush(ctx)
	return nil
}

// Logout is purely local teardown: no remote call is made. Listeners run
// first (clearing the cart), then the session fields are dropped.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	listeners := make([]func(ctx context.Context), len(s.onLogout))
	copy(listeners, s.onLogout)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.authed = false
	s.errMsg = ""
	s.flush(ctx)
}

// ClearError resets the stored failure message, used when navigating away
// from the login view.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authed
}

// User returns the signed-in profile, or nil when signed out.
func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Token:           s.token,
		IsAuthenticated: s.authed,
		IsLoading:       s.isLoading,
		Error:           s.errMsg,
	}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

func (s *Store) flush(ctx context.Context) {
	sess := session{
		User:            s.user,
		Token:           s.token,
		IsAuthenticated: s.authed,
	}
	if err := s.persist.Save(ctx, persist.AuthKey, sess); err != nil {
		log.Printf("auth: save snapshot error: %v", err)
	}
}
