package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prem2230/food-delivery-app-client/api"
	"github.com/prem2230/food-delivery-app-client/models"
	"github.com/prem2230/food-delivery-app-client/storage"
)

// stubBackend is a hand-rolled auth backend with switchable failure
// modes, so each session transition can be driven precisely. Configure
// it before handing it to newSession.
type stubBackend struct {
	failLogin     bool
	failRegister  bool
	rejectProfile bool

	// when set, profile requests block until profileGate closes;
	// profileStarted closes once the request reaches the handler
	profileGate    chan struct{}
	profileStarted chan struct{}

	mu            sync.Mutex
	loginCalls    int
	registerCalls int
}

func (b *stubBackend) calls() (login, register int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loginCalls, b.registerCalls
}

var stubUser = models.User{
	ID:     "u1",
	Name:   "Pat",
	Email:  "x@y.com",
	Role:   models.RoleCustomer,
	Number: "5551234",
}

func (b *stubBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/users/login", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.loginCalls++
		b.mu.Unlock()
		if b.failLogin {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true, "message": "Login successful", "token": "T", "user": stubUser,
		})
	})
	mux.HandleFunc("POST /api/v1/users/register", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.registerCalls++
		b.mu.Unlock()
		if b.failRegister {
			writeJSON(w, http.StatusConflict, map[string]any{"success": false, "message": "Email already registered"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "Account created successfully", "user": stubUser})
	})
	mux.HandleFunc("GET /api/v1/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if b.profileStarted != nil {
			close(b.profileStarted)
		}
		if b.profileGate != nil {
			<-b.profileGate
		}
		if b.rejectProfile || r.Header.Get("Authorization") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid or expired token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": stubUser})
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func newSession(t *testing.T, backend *stubBackend) (*SessionStore, storage.Store) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	st := storage.NewMemoryStore()
	client := api.NewClient(server.URL, TokenFromStore(st))
	return NewSessionStore(client, st), st
}

func TestLoginSuccess(t *testing.T) {
	session, st := newSession(t, &stubBackend{})

	err := session.Login(context.Background(), Credentials{Email: "x@y.com", Password: "secret"})
	require.NoError(t, err)

	sess := session.Session()
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "T", sess.Token)
	require.NotNil(t, sess.User)
	assert.Equal(t, "x@y.com", sess.User.Email)
	assert.False(t, sess.IsLoading)

	token, ok, err := st.Get(storage.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "T", token)
}

func TestLoginFailureCarriesBackendMessage(t *testing.T) {
	session, st := newSession(t, &stubBackend{failLogin: true})

	err := session.Login(context.Background(), Credentials{Email: "x@y.com", Password: "wrong"})

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid email or password", authErr.Message)

	sess := session.Session()
	assert.False(t, sess.IsAuthenticated)
	assert.False(t, sess.IsLoading)

	_, ok, _ := st.Get(storage.KeyToken)
	assert.False(t, ok)
}

func TestLoginValidatesBeforeSending(t *testing.T) {
	backend := &stubBackend{}
	session, _ := newSession(t, backend)

	err := session.Login(context.Background(), Credentials{Email: "not-an-email", Password: "x"})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	logins, _ := backend.calls()
	assert.Equal(t, 0, logins)
}

func TestRegisterAutoLogsIn(t *testing.T) {
	backend := &stubBackend{}
	session, st := newSession(t, backend)

	err := session.Register(context.Background(), Registration{
		Name:     "Pat",
		Email:    "x@y.com",
		Password: "secret1",
		Role:     models.RoleCustomer,
		Number:   "5551234",
	})
	require.NoError(t, err)

	logins, registers := backend.calls()
	assert.Equal(t, 1, registers)
	assert.Equal(t, 1, logins)

	sess := session.Session()
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "T", sess.Token)

	token, ok, _ := st.Get(storage.KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "T", token)
}

func TestRegisterFailure(t *testing.T) {
	backend := &stubBackend{failRegister: true}
	session, _ := newSession(t, backend)

	err := session.Register(context.Background(), Registration{
		Name:     "Pat",
		Email:    "x@y.com",
		Password: "secret1",
		Role:     models.RoleCustomer,
		Number:   "5551234",
	})

	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "Email already registered", regErr.Message)
	logins, _ := backend.calls()
	assert.Equal(t, 0, logins)

	sess := session.Session()
	assert.False(t, sess.IsAuthenticated)
	assert.False(t, sess.IsLoading)
}

func TestLogoutClearsEverything(t *testing.T) {
	session, st := newSession(t, &stubBackend{})
	require.NoError(t, session.Login(context.Background(), Credentials{Email: "x@y.com", Password: "secret"}))

	session.Logout()

	sess := session.Session()
	assert.False(t, sess.IsAuthenticated)
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.Token)

	_, ok, _ := st.Get(storage.KeyToken)
	assert.False(t, ok)
}

func TestCheckAuthRejectedTokenPurges(t *testing.T) {
	session, st := newSession(t, &stubBackend{rejectProfile: true})
	require.NoError(t, st.Set(storage.KeyToken, "stale-token"))

	session.CheckAuth(context.Background())

	sess := session.Session()
	assert.False(t, sess.IsAuthenticated)
	assert.Nil(t, sess.User)

	_, ok, _ := st.Get(storage.KeyToken)
	assert.False(t, ok)
}

func TestCheckAuthWithoutToken(t *testing.T) {
	session, _ := newSession(t, &stubBackend{})

	session.CheckAuth(context.Background())

	sess := session.Session()
	assert.False(t, sess.IsAuthenticated)
	assert.Nil(t, sess.User)
}

func TestInitializeConfirmsStoredToken(t *testing.T) {
	session, st := newSession(t, &stubBackend{})
	require.NoError(t, st.Set(storage.KeyToken, "stored-token"))

	session.Initialize(context.Background())

	sess := session.Session()
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "stored-token", sess.Token)
	require.NotNil(t, sess.User)
	assert.Equal(t, "x@y.com", sess.User.Email)
}

func TestInitializeWithoutTokenIsNoop(t *testing.T) {
	session, _ := newSession(t, &stubBackend{})

	session.Initialize(context.Background())
	session.Initialize(context.Background())

	assert.False(t, session.Session().IsAuthenticated)
}

func TestInitializePurgesExpiredToken(t *testing.T) {
	session, st := newSession(t, &stubBackend{})

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := expired.SignedString([]byte("whatever"))
	require.NoError(t, err)
	require.NoError(t, st.Set(storage.KeyToken, signed))

	session.Initialize(context.Background())

	assert.False(t, session.Session().IsAuthenticated)
	_, ok, _ := st.Get(storage.KeyToken)
	assert.False(t, ok)
}

// A slow CheckAuth resolving after Logout must not re-authenticate the
// user who just logged out.
func TestLogoutInvalidatesInflightCheckAuth(t *testing.T) {
	backend := &stubBackend{
		profileGate:    make(chan struct{}),
		profileStarted: make(chan struct{}),
	}
	session, st := newSession(t, backend)
	require.NoError(t, st.Set(storage.KeyToken, "stored-token"))

	done := make(chan struct{})
	go func() {
		session.CheckAuth(context.Background())
		close(done)
	}()

	<-backend.profileStarted
	session.Logout()
	close(backend.profileGate)
	<-done

	sess := session.Session()
	assert.False(t, sess.IsAuthenticated)
	assert.Nil(t, sess.User)
	_, ok, _ := st.Get(storage.KeyToken)
	assert.False(t, ok)
}

func TestSessionRehydratesFromBackingStore(t *testing.T) {
	server := httptest.NewServer((&stubBackend{}).handler())
	defer server.Close()

	st := storage.NewMemoryStore()
	client := api.NewClient(server.URL, TokenFromStore(st))

	first := NewSessionStore(client, st)
	require.NoError(t, first.Login(context.Background(), Credentials{Email: "x@y.com", Password: "secret"}))

	second := NewSessionStore(client, st)
	sess := second.Session()
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "T", sess.Token)
	require.NotNil(t, sess.User)
	assert.Equal(t, "Pat", sess.User.Name)
}
