package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidsht/Membership-Model-sub002/domain"
	"github.com/vidsht/Membership-Model-sub002/internal/infrastructure/auth"
)

const testModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

func testGuard(t *testing.T) *auth.RouteGuard {
	t.Helper()
	m, err := model.NewModelFromString(testModel)
	require.NoError(t, err)
	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)

	_, err = e.AddPolicies([][]string{
		{"role_member", "/member/*", "GET"},
		{"role_member", "/offers/:id/redeem", "POST"},
		{"role_merchant", "/member/*", "GET"},
		{"role_merchant", "/merchant/*", "(GET|POST)"},
	})
	require.NoError(t, err)
	return auth.NewRouteGuardWithEnforcer(e)
}

type fixedSession struct {
	identity *domain.Identity
}

func (s *fixedSession) Snapshot() domain.SessionState {
	return domain.SessionState{
		Identity:        s.identity,
		IsAuthenticated: s.identity != nil,
	}
}

func guardedRouter(sessions domain.SessionReader, guard *auth.RouteGuard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rg := RoleGuard(sessions, guard)
	r.GET("/member/card", rg, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "card"}) })
	r.POST("/offers/:id/redeem", rg, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "redeemed"}) })
	r.POST("/merchant/deals", rg, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "posted"}) })
	return r
}

func TestRoleGuardEnforcesPolicy(t *testing.T) {
	guard := testGuard(t)

	tests := []struct {
		name   string
		role   domain.Role
		method string
		path   string
		want   int
	}{
		{"member reads card", domain.RoleMember, http.MethodGet, "/member/card", http.StatusOK},
		{"member redeems offer", domain.RoleMember, http.MethodPost, "/offers/15/redeem", http.StatusOK},
		{"member cannot post deals", domain.RoleMember, http.MethodPost, "/merchant/deals", http.StatusForbidden},
		{"merchant posts deals", domain.RoleMerchant, http.MethodPost, "/merchant/deals", http.StatusOK},
		{"merchant reads card", domain.RoleMerchant, http.MethodGet, "/member/card", http.StatusOK},
		{"merchant cannot redeem", domain.RoleMerchant, http.MethodPost, "/offers/15/redeem", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &fixedSession{identity: &domain.Identity{ID: 1, Role: tt.role}}
			r := guardedRouter(session, guard)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRoleGuardDeniesAnonymous(t *testing.T) {
	r := guardedRouter(&fixedSession{}, testGuard(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/member/card", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleGuardMatchesParameterizedRoute(t *testing.T) {
	// The policy names /offers/:id/redeem; the guard must check the route
	// pattern, not the concrete URL.
	session := &fixedSession{identity: &domain.Identity{ID: 1, Role: domain.RoleMember}}
	r := guardedRouter(session, testGuard(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/offers/9999/redeem", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
