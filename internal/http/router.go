package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/vidsht/Membership-Model-sub002/domain"
	"github.com/vidsht/Membership-Model-sub002/internal/http/handlers"
	"github.com/vidsht/Membership-Model-sub002/internal/http/middleware"
	"github.com/vidsht/Membership-Model-sub002/internal/infrastructure/auth"
)

// BuildRouter wires the facade routes. Role gating (casbin) and plan gating
// (feature gate) stack on the protected groups; the session/auth surface is
// open because signing in is how a session comes to exist.
func BuildRouter(
	sh *handlers.SessionHandlers,
	eh *handlers.EntitlementHandlers,
	ch *handlers.CapabilityHandlers,
	sessions domain.SessionReader,
	entitlements domain.EntitlementService,
	guard *auth.RouteGuard,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	r.GET("/session", sh.Session)

	a := r.Group("/auth")
	a.POST("/login", sh.Login)
	a.POST("/merchant/login", sh.MerchantLogin)
	a.POST("/register", sh.Register)
	a.POST("/merchant/register", sh.MerchantRegister)
	a.POST("/logout", sh.Logout)
	a.POST("/validate", sh.Validate)
	a.POST("/expired", sh.Expired)
	a.GET("/remembered", sh.Remembered)

	e := r.Group("/entitlements")
	e.GET("", eh.Snapshot)
	e.GET("/:feature", eh.Feature)

	roleGuard := middleware.RoleGuard(sessions, guard)

	m := r.Group("/member").Use(roleGuard)
	m.GET("/card", middleware.RequireFeature(entitlements, domain.FeatureCard), ch.Card)
	m.GET("/certificate", middleware.RequireFeature(entitlements, domain.FeatureCertificate), ch.Certificate)

	o := r.Group("/offers").Use(roleGuard)
	o.POST("/:id/redeem", middleware.RequireFeature(entitlements, domain.FeatureRedeem), ch.RedeemOffer)

	mr := r.Group("/merchant").Use(roleGuard)
	mr.POST("/deals", middleware.RequireFeature(entitlements, domain.FeaturePostDeals), ch.PostDeal)

	return r
}
