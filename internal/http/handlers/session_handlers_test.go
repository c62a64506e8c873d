package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidsht/Membership-Model-sub002/domain"
	"github.com/vidsht/Membership-Model-sub002/internal/mocks"
)

func sessionRouter(sessions domain.SessionController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSessionHandlers(sessions)

	r := gin.New()
	r.GET("/session", h.Session)
	a := r.Group("/auth")
	a.POST("/login", h.Login)
	a.POST("/register", h.Register)
	a.POST("/logout", h.Logout)
	a.POST("/validate", h.Validate)
	a.POST("/expired", h.Expired)
	a.GET("/remembered", h.Remembered)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSessionReturnsSnapshot(t *testing.T) {
	sessions := mocks.NewMockSessionController()
	sessions.SnapshotFunc = func() domain.SessionState {
		return domain.SessionState{
			Identity:        &domain.Identity{ID: 42, Email: "maya@example.com", Role: domain.RoleMember},
			IsAuthenticated: true,
		}
	}
	r := sessionRouter(sessions)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session", nil))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_authenticated"])
	assert.Equal(t, false, data["session_expired"])
}

func TestLoginPassesCredentialsThrough(t *testing.T) {
	sessions := mocks.NewMockSessionController()
	var gotCreds domain.Credentials
	sessions.LoginFunc = func(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
		gotCreds = creds
		return &domain.Identity{ID: 42, Email: creds.Email, Role: domain.RoleMember}, nil
	}
	r := sessionRouter(sessions)

	w := postJSON(r, "/auth/login", `{"email":"maya@example.com","password":"pw123","remember":true}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "maya@example.com", gotCreds.Email)
	assert.True(t, gotCreds.Remember)
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	r := sessionRouter(mocks.NewMockSessionController())

	w := postJSON(r, "/auth/login", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation carries backend message",
			err:        &domain.APIError{Kind: domain.KindValidation, Op: "login", Message: "account pending approval"},
			wantStatus: http.StatusBadRequest,
			wantError:  "account pending approval",
		},
		{
			name:       "unauthorized masks details",
			err:        &domain.APIError{Kind: domain.KindUnauthorized, Op: "login", Message: "user 42 bad password"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid credentials",
		},
		{
			name:       "transient maps to bad gateway",
			err:        &domain.APIError{Kind: domain.KindTransient, Op: "login", Err: errors.New("dial tcp: timeout")},
			wantStatus: http.StatusBadGateway,
			wantError:  "Membership service unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := mocks.NewMockSessionController()
			sessions.LoginFunc = func(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
				return nil, tt.err
			}
			r := sessionRouter(sessions)

			w := postJSON(r, "/auth/login", `{"email":"maya@example.com","password":"pw123"}`)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, decodeBody(t, w)["error"])
		})
	}
}

func TestRegisterCreated(t *testing.T) {
	sessions := mocks.NewMockSessionController()
	sessions.RegisterFunc = func(ctx context.Context, reg domain.Registration) (*domain.Identity, error) {
		return &domain.Identity{ID: 7, Email: reg.Email, Role: domain.RoleMember, Status: domain.StatusPending}, nil
	}
	r := sessionRouter(sessions)

	w := postJSON(r, "/auth/register",
		`{"name":"Maya","email":"maya@example.com","password":"secret1","plan_key":"gold"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestLogoutAlwaysReportsLoggedOut(t *testing.T) {
	sessions := mocks.NewMockSessionController()
	sessions.LogoutFunc = func(ctx context.Context) error {
		return &domain.APIError{Kind: domain.KindTransient, Op: "logout", Err: errors.New("connection refused")}
	}
	r := sessionRouter(sessions)

	w := postJSON(r, "/auth/logout", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Logged out successfully", data["message"])
	assert.Contains(t, data["upstream"], "local session cleared")
}

func TestValidateReportsProbeResult(t *testing.T) {
	sessions := mocks.NewMockSessionController()
	sessions.ValidateSessionFunc = func(ctx context.Context) bool { return true }
	r := sessionRouter(sessions)

	w := postJSON(r, "/auth/validate", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["valid"])
}

func TestExpiredTriggersHandler(t *testing.T) {
	sessions := mocks.NewMockSessionController()
	called := false
	sessions.HandleSessionExpiredFunc = func() { called = true }
	r := sessionRouter(sessions)

	w := postJSON(r, "/auth/expired", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestRememberedReturnsPrefill(t *testing.T) {
	sessions := mocks.NewMockSessionController()
	sessions.RememberedEmailFunc = func(ctx context.Context) string { return "maya@example.com" }
	r := sessionRouter(sessions)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/remembered", nil))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "maya@example.com", data["email"])
}
