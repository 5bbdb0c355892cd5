package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyayaten/cybersahali/internal/auth"
	"github.com/dyayaten/cybersahali/internal/auth/handler"
	"github.com/dyayaten/cybersahali/internal/auth/store"
	"github.com/dyayaten/cybersahali/internal/email"
	"github.com/dyayaten/cybersahali/internal/middleware"
	"github.com/dyayaten/cybersahali/internal/session"
)

type nopSender struct {
	mu   sync.Mutex
	sent []email.Message
}

func (n *nopSender) Send(ctx context.Context, msg email.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

type testServer struct {
	router *gin.Engine
	repo   *store.MemoryRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessionStore := session.NewRedisStore(client)
	repo := store.NewMemoryRepository()

	svc := auth.NewService(
		repo,
		sessionStore,
		&nopSender{},
		"http://localhost:8080",
		time.Hour,
		24*time.Hour,
	)

	h := handler.NewHandler(svc)
	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	router := gin.New()
	h.RegisterRoutes(router)

	protected := router.Group("/")
	protected.Use(middleware.GinRequireAuth(authMiddleware))
	protected.GET("/me", h.Me)

	return &testServer{router: router, repo: repo}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) signup(t *testing.T, name, emailAddr, password string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/signup", gin.H{
		"name": name, "email": emailAddr, "password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *testServer) verify(t *testing.T, emailAddr string) {
	t.Helper()
	u, err := s.repo.FindByEmail(context.Background(), emailAddr)
	require.NoError(t, err)
	require.NotNil(t, u.VerificationToken)

	rec := s.do(t, http.MethodGet, "/verify-email?token="+*u.VerificationToken, nil, nil)
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
}

func (s *testServer) login(t *testing.T, emailAddr, password string) *http.Cookie {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/login", gin.H{
		"email": emailAddr, "password": password,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("login response did not set the session cookie")
	return nil
}

func TestSignup(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/signup", gin.H{
		"name": "Ada", "email": "ada@x.com", "password": "secret123",
	}, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "registered successfully")

	// duplicate email
	rec = srv.do(t, http.MethodPost, "/signup", gin.H{
		"name": "Eve", "email": "ada@x.com", "password": "secret123",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")

	// malformed body
	rec = srv.do(t, http.MethodPost, "/signup", gin.H{"email": "no-name@x.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// password policy
	rec = srv.do(t, http.MethodPost, "/signup", gin.H{
		"name": "Bob", "email": "bob@x.com", "password": "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyEmail(t *testing.T) {
	srv := newTestServer(t)
	srv.signup(t, "Ada", "ada@x.com", "secret123")

	u, err := srv.repo.FindByEmail(context.Background(), "ada@x.com")
	require.NoError(t, err)
	token := *u.VerificationToken

	rec := srv.do(t, http.MethodGet, "/verify-email?token="+token, nil, nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?verified=true", rec.Header().Get("Location"))

	// the token is single use
	rec = srv.do(t, http.MethodGet, "/verify-email?token="+token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid verification token")

	rec = srv.do(t, http.MethodGet, "/verify-email", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)
	srv.signup(t, "Ada", "ada@x.com", "secret123")

	// before verification
	rec := srv.do(t, http.MethodPost, "/login", gin.H{
		"email": "ada@x.com", "password": "secret123",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "verify your email")

	srv.verify(t, "ada@x.com")

	rec = srv.do(t, http.MethodPost, "/login", gin.H{
		"email": "ada@x.com", "password": "secret123",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string       `json:"message"`
		User    session.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Login successful", body.Message)
	assert.Equal(t, "ada@x.com", body.User.Email)
	assert.Equal(t, "Ada", body.User.Name)
	assert.NotEmpty(t, body.User.ID)

	// wrong password and unknown email produce the same response
	rec = srv.do(t, http.MethodPost, "/login", gin.H{
		"email": "ada@x.com", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	wrongPassword := rec.Body.String()

	rec = srv.do(t, http.MethodPost, "/login", gin.H{
		"email": "ghost@x.com", "password": "secret123",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, wrongPassword, rec.Body.String())
}

func TestMe(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	srv.signup(t, "Ada", "ada@x.com", "secret123")
	srv.verify(t, "ada@x.com")
	cookie := srv.login(t, "ada@x.com", "secret123")

	rec = srv.do(t, http.MethodGet, "/me", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada@x.com")
}

func TestLogout(t *testing.T) {
	srv := newTestServer(t)
	srv.signup(t, "Ada", "ada@x.com", "secret123")
	srv.verify(t, "ada@x.com")
	cookie := srv.login(t, "ada@x.com", "secret123")

	rec := srv.do(t, http.MethodPost, "/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logged out successfully")

	// the session no longer authenticates
	rec = srv.do(t, http.MethodGet, "/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// logging out without a session still succeeds
	rec = srv.do(t, http.MethodPost, "/logout", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestForgotPassword(t *testing.T) {
	srv := newTestServer(t)
	srv.signup(t, "Ada", "ada@x.com", "secret123")

	rec := srv.do(t, http.MethodPost, "/forgot-password", gin.H{"email": "ghost@x.com"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")

	rec = srv.do(t, http.MethodPost, "/forgot-password", gin.H{"email": "ada@x.com"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password reset email sent")
}

func TestResetPassword(t *testing.T) {
	srv := newTestServer(t)
	srv.signup(t, "Ada", "ada@x.com", "secret123")
	srv.verify(t, "ada@x.com")

	rec := srv.do(t, http.MethodPost, "/reset-password", gin.H{
		"token": "bogus", "password": "brand-new-pass",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired reset token")

	rec = srv.do(t, http.MethodPost, "/forgot-password", gin.H{"email": "ada@x.com"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	u, err := srv.repo.FindByEmail(context.Background(), "ada@x.com")
	require.NoError(t, err)
	require.NotNil(t, u.ResetToken)

	rec = srv.do(t, http.MethodPost, "/reset-password", gin.H{
		"token": *u.ResetToken, "password": "brand-new-pass",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// the old password is gone, the new one logs in
	rec = srv.do(t, http.MethodPost, "/login", gin.H{
		"email": "ada@x.com", "password": "secret123",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	srv.login(t, "ada@x.com", "brand-new-pass")
}
