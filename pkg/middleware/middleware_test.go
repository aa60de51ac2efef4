package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"product-catalog/pkg/ratelimit"
	"product-catalog/pkg/token"
	"product-catalog/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secret = "0123456789abcdef0123456789abcdef"

type stubLoader struct {
	principals map[string]*utils.Principal
}

func (s stubLoader) LoadPrincipal(_ context.Context, email string) (*utils.Principal, error) {
	p, ok := s.principals[email]
	if !ok {
		return nil, errors.New("no such user")
	}
	return p, nil
}

// echoPrincipal responds with the caller email, or "anonymous"
func echoPrincipal() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := utils.GetPrincipal(r.Context())
		if !ok {
			w.Write([]byte("anonymous"))
			return
		}
		w.Write([]byte(p.Email))
	})
}

func newAuthStack(t *testing.T, now time.Time) (*token.Codec, http.Handler) {
	t.Helper()
	codec, err := token.NewCodec(secret, token.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	loader := stubLoader{principals: map[string]*utils.Principal{
		"user@example.com": {ID: uuid.New(), Email: "user@example.com", Role: "USER"},
	}}
	return codec, Authenticate(codec, loader, zap.NewNop())(echoPrincipal())
}

func TestAuthenticate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	codec, handler := newAuthStack(t, now)

	valid, err := codec.Issue("user@example.com", "USER", token.KindAccess, time.Hour)
	require.NoError(t, err)
	wrongKind, err := codec.Issue("user@example.com", "USER", "refresh", time.Hour)
	require.NoError(t, err)
	unknownSubject, err := codec.Issue("ghost@example.com", "USER", token.KindAccess, time.Hour)
	require.NoError(t, err)
	expired, err := codec.Issue("user@example.com", "USER", token.KindAccess, -time.Second)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid token", "Bearer " + valid, "user@example.com"},
		{"lowercase scheme", "bearer " + valid, "user@example.com"},
		{"no header", "", "anonymous"},
		{"wrong scheme", "Basic " + valid, "anonymous"},
		{"garbage", "Bearer not.a.jwt", "anonymous"},
		{"wrong kind", "Bearer " + wrongKind, "anonymous"},
		{"unknown subject", "Bearer " + unknownSubject, "anonymous"},
		{"expired", "Bearer " + expired, "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(echoPrincipal())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "AUTH_001", body.Error.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(utils.SetPrincipal(req.Context(), &utils.Principal{Email: "user@example.com"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoverWritesEnvelope(t *testing.T) {
	handler := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SERVER_001", body.Error.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(2, time.Hour)
	handler := RateLimit(limiter, zap.NewNop(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:2222").Code)

	blocked := call("10.0.0.1:3333")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:1111").Code)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("redis down")
}

func TestRateLimitFailsOpen(t *testing.T) {
	handler := RateLimit(failingLimiter{}, zap.NewNop(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORS(t *testing.T) {
	reached := false
	handler := CORS([]string{" https://shop.example.com "})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	preflight := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	preflight.Header.Set("Origin", "https://shop.example.com")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, preflight)
	assert.False(t, reached)
	assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))

	other := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	other.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRealIPHonoursTrustSetting(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientIP(r)
	})

	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.1.1.1:5000"
		req.Header.Set("X-Forwarded-For", "203.0.113.9")
		return req
	}

	RealIP(false)(next).ServeHTTP(httptest.NewRecorder(), newReq())
	assert.Equal(t, "10.1.1.1", seen)

	RealIP(true)(next).ServeHTTP(httptest.NewRecorder(), newReq())
	assert.Equal(t, "203.0.113.9", seen)
}
