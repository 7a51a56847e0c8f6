// Package store holds the client-side state layer: the session store
// (who is logged in) and the cart store (what is being ordered). Both
// persist into the backing store under their own keys and are safe for
// concurrent use.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/prem2230/food-delivery-app-client/api"
	"github.com/prem2230/food-delivery-app-client/models"
	"github.com/prem2230/food-delivery-app-client/storage"
)

// TokenFromStore adapts a backing store to the API client's
// TokenSource: the token is read fresh from storage on every request,
// exactly as the browser client reads it from local storage.
func TokenFromStore(st storage.Store) api.TokenSourceFunc {
	return func() string {
		token, ok, err := st.Get(storage.KeyToken)
		if err != nil || !ok {
			return ""
		}
		return token
	}
}

// Credentials is the login input.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Registration is the sign-up input. Number is the phone number,
// transmitted to the backend as a string.
type Registration struct {
	Name     string          `validate:"required"`
	Email    string          `validate:"required,email"`
	Password string          `validate:"required,min=6"`
	Role     models.UserRole `validate:"required,oneof=customer owner"`
	Number   string          `validate:"required"`
}

// SessionStore is the single source of truth for the authentication
// session. It persists {user, token, isAuthenticated} into the backing
// store and keeps the raw token under its own key for the API client.
type SessionStore struct {
	mu       sync.Mutex
	client   *api.Client
	store    storage.Store
	validate *validator.Validate

	state models.Session
	// generation increments whenever the session identity changes, so
	// an in-flight CheckAuth that resolves after a Logout (or a fresh
	// Login) discards its result instead of re-authenticating.
	generation uint64
}

func NewSessionStore(client *api.Client, st storage.Store) *SessionStore {
	s := &SessionStore{
		client:   client,
		store:    st,
		validate: validator.New(),
	}
	s.rehydrate()
	return s
}

// rehydrate restores the persisted session blob, if any.
func (s *SessionStore) rehydrate() {
	raw, ok, err := s.store.Get(storage.KeyAuth)
	if err != nil || !ok {
		return
	}
	var state models.Session
	if json.Unmarshal([]byte(raw), &state) != nil {
		return
	}
	s.state = state
}

// Session returns a snapshot of the current session state.
func (s *SessionStore) Session() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Initialize looks for a stored token and, when one is found,
// optimistically marks the session authenticated before confirming it
// with the backend via CheckAuth. A token whose expiry has already
// passed is purged without the optimistic window. Safe to call more
// than once.
func (s *SessionStore) Initialize(ctx context.Context) {
	s.mu.Lock()
	token, ok, err := s.store.Get(storage.KeyToken)
	if err != nil || !ok || token == "" {
		s.mu.Unlock()
		return
	}
	if tokenExpired(token) {
		_ = s.store.Delete(storage.KeyToken)
		s.resetLocked()
		s.mu.Unlock()
		return
	}
	s.state.Token = token
	s.state.IsAuthenticated = true
	s.persistLocked()
	s.mu.Unlock()

	s.CheckAuth(ctx)
}

// Login authenticates against the backend. On success the token is
// persisted and the session becomes authenticated; on failure the
// session stays anonymous and an AuthenticationError carries the
// backend message.
func (s *SessionStore) Login(ctx context.Context, creds Credentials) error {
	if err := s.validate.Struct(creds); err != nil {
		return &ValidationError{Err: err}
	}

	s.setLoading(true)
	resp, err := s.client.Login(ctx, api.LoginRequest{Email: creds.Email, Password: creds.Password})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false
	if err != nil {
		return &AuthenticationError{Message: api.Message(err, "Login failed")}
	}

	s.generation++
	if err := s.store.Set(storage.KeyToken, resp.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	user := resp.User
	s.state = models.Session{User: &user, Token: resp.Token, IsAuthenticated: true}
	s.persistLocked()
	return nil
}

// Register creates an account and, on success, immediately logs in
// with the same credentials — registration alone does not establish a
// session.
func (s *SessionStore) Register(ctx context.Context, reg Registration) error {
	if err := s.validate.Struct(reg); err != nil {
		return &ValidationError{Err: err}
	}

	s.setLoading(true)
	_, err := s.client.Register(ctx, api.RegisterRequest{
		Name:     reg.Name,
		Email:    reg.Email,
		Password: reg.Password,
		Role:     reg.Role,
		Number:   reg.Number,
	})
	if err != nil {
		s.setLoading(false)
		return &RegistrationError{Message: api.Message(err, "Registration failed")}
	}

	return s.Login(ctx, Credentials{Email: reg.Email, Password: reg.Password})
}

// Logout clears the stored token and resets the session. No backend
// call is made; the token simply stops being presented.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	_ = s.store.Delete(storage.KeyToken)
	s.resetLocked()
}

// CheckAuth validates the stored token against the backend's profile
// endpoint. A missing token, or any failure fetching the profile,
// leaves the session anonymous with the token purged; there is no
// error return, only the state change.
func (s *SessionStore) CheckAuth(ctx context.Context) {
	s.mu.Lock()
	token, ok, err := s.store.Get(storage.KeyToken)
	if err != nil || !ok || token == "" {
		s.resetLocked()
		s.mu.Unlock()
		return
	}
	gen := s.generation
	s.mu.Unlock()

	user, err := s.client.GetProfile(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		// session identity changed while the request was in flight
		return
	}
	if err != nil {
		_ = s.store.Delete(storage.KeyToken)
		s.resetLocked()
		return
	}
	s.state = models.Session{User: user, Token: token, IsAuthenticated: true}
	s.persistLocked()
}

func (s *SessionStore) setLoading(v bool) {
	s.mu.Lock()
	s.state.IsLoading = v
	s.mu.Unlock()
}

// resetLocked returns the session to anonymous and persists that.
// Callers must hold s.mu.
func (s *SessionStore) resetLocked() {
	s.state = models.Session{}
	s.persistLocked()
}

// persistLocked writes the session blob (user, token, isAuthenticated;
// never isLoading). Callers must hold s.mu.
func (s *SessionStore) persistLocked() {
	data, err := json.Marshal(s.state)
	if err != nil {
		return
	}
	_ = s.store.Set(storage.KeyAuth, string(data))
}

// tokenExpired peeks at the token's exp claim without verifying the
// signature; verification is the backend's job. Unparseable tokens are
// left for CheckAuth to reject.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
