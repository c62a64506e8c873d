package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

func TestClientProbe(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/auth/me", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":7,"email":"m@example.com","name":"Maya","role":"member","status":"approved","plan_key":"gold","plan_name":"Gold","lifetime":false}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	c.SetToken("opaque-token")

	identity, err := c.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(7), identity.ID)
	assert.Equal(t, domain.RoleMember, identity.Role)
	assert.Equal(t, "gold", identity.PlanKey)
	assert.Equal(t, "Bearer opaque-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClientClassifiesFailures(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedKind domain.ErrorKind
		expectedMsg  string
	}{
		{
			name:         "unauthorized",
			status:       http.StatusUnauthorized,
			body:         `{"message":"session invalid"}`,
			expectedKind: domain.KindUnauthorized,
			expectedMsg:  "session invalid",
		},
		{
			name:         "validation bad request",
			status:       http.StatusBadRequest,
			body:         `{"error":"email is required"}`,
			expectedKind: domain.KindValidation,
			expectedMsg:  "email is required",
		},
		{
			name:         "validation conflict",
			status:       http.StatusConflict,
			body:         `{"message":"email already registered"}`,
			expectedKind: domain.KindValidation,
			expectedMsg:  "email already registered",
		},
		{
			name:         "server error is transient",
			status:       http.StatusInternalServerError,
			body:         `{}`,
			expectedKind: domain.KindTransient,
		},
		{
			name:         "bad gateway is transient",
			status:       http.StatusBadGateway,
			body:         ``,
			expectedKind: domain.KindTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, 5*time.Second)
			_, err := c.Login(context.Background(), domain.Credentials{Email: "m@example.com", Password: "pw"})
			require.Error(t, err)
			assert.Equal(t, tt.expectedKind, domain.Classify(err))

			var apiErr *domain.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.expectedMsg, apiErr.Message)
		})
	}
}

func TestClientNetworkFailureIsTransient(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.ExtendSession(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.KindTransient, domain.Classify(err))
}

func TestClientLoginInstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		w.Write([]byte(`{"token":"fresh-token","user":{"id":1,"email":"m@example.com","role":"member","status":"approved","plan_key":"gold"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	result, err := c.Login(context.Background(), domain.Credentials{Email: "m@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", result.AccessToken)
	assert.Equal(t, "fresh-token", c.Token())
}

func TestClientExtendRotatesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/extend", r.URL.Path)
		w.Write([]byte(`{"token":"rotated"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	c.SetToken("original")
	require.NoError(t, c.ExtendSession(context.Background()))
	assert.Equal(t, "rotated", c.Token())
}

func TestClientExpiredTokenShortCircuits(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	c := NewClient(srv.URL, 5*time.Second)
	c.SetToken(tokenString)

	_, probeErr := c.Probe(context.Background())
	assert.True(t, domain.IsUnauthorized(probeErr))
	assert.True(t, domain.IsUnauthorized(c.ExtendSession(context.Background())))
	assert.Equal(t, 0, calls, "expired token must not reach the network")
}

func TestClientOpaqueTokenGoesToBackend(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"user":{"id":1,"role":"member","status":"approved","plan_key":"basic"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	c.SetToken("not-a-jwt")

	_, err := c.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
