// ABOUTME: Session manager owning the in-memory token and user state
// ABOUTME: Writes through to the credential store and primes the API client's authorization

package session

import (
	"context"
	"sync"

	"github.com/sweetworks/sweetshop-cli/internal/api"
	"github.com/sweetworks/sweetshop-cli/internal/credstore"
)

// Manager exclusively owns the in-memory session. Every transition writes
// through to the credential store and updates the API client's authorization
// header, so the three copies cannot drift.
//
// Two states: Anonymous (no token) and Authenticated (token, optionally a
// cached user). A restore from disk can yield a token without a user.
type Manager struct {
	store  *credstore.Store
	client *api.Client

	mu    sync.RWMutex
	token string
	user  *api.User
}

// New creates a manager in the Anonymous state and registers the uniform
// auth-rejection policy on the client: a 401 answered to any request that
// carried the session token clears the session. A 403 (authenticated but not
// allowed) leaves it intact, as does a rejected login or register attempt —
// those endpoints never present the session.
func New(store *credstore.Store, client *api.Client) *Manager {
	m := &Manager{store: store, client: client}
	client.SetOnAuthReject(m.expire)
	return m
}

// Restore loads credentials persisted by a previous run, if any, and primes
// the client's authorization header. No network call is made; a token the
// backend would now reject is only discovered on the first request that
// fails with 401, which then clears the session via the rejection hook.
func (m *Manager) Restore() {
	token, user := m.store.Read()
	if token == "" {
		return
	}
	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()
	m.client.SetAuthorization(token)
}

// Login authenticates against the backend. On success the session is stored
// in memory and on disk and the client picks up the token. On failure the
// state is unchanged and the error propagates for the caller to display.
func (m *Manager) Login(ctx context.Context, email, password string) (*api.User, error) {
	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.establish(resp.Token, resp.User)
	return resp.User, nil
}

// Register creates an account. Policy: registration adopts a session if and
// only if the backend issues a token in its response. When the backend
// returns an empty body the manager stays Anonymous and established is
// false, telling the caller a separate login is required.
func (m *Manager) Register(ctx context.Context, name, email, password string) (user *api.User, established bool, err error) {
	resp, err := m.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, false, err
	}
	if resp.Token == "" {
		return resp.User, false, nil
	}
	m.establish(resp.Token, resp.User)
	return resp.User, true, nil
}

// Logout clears memory, disk, and the client's authorization header. It
// always succeeds, is idempotent, and makes no network call: the backend
// keeps no revocable server-side session.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()
	m.store.Clear()
	m.client.SetAuthorization("")
}

// Token returns the current bearer token, empty when Anonymous.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns the cached profile, nil when none is known.
func (m *Manager) User() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// IsAuthenticated reports whether a token is held.
func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}

// IsAdmin reports whether the cached user has admin rights. A restored token
// without a cached profile reads as non-admin; the backend is the authority
// either way.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.IsAdmin
}

func (m *Manager) establish(token string, user *api.User) {
	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()
	m.store.Save(token, user)
	m.client.SetAuthorization(token)
}

// expire is the 401 hook. Same end state as Logout.
func (m *Manager) expire() {
	m.Logout()
}
