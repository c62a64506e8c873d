package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidsht/Membership-Model-sub002/internal/config"
	httpx "github.com/vidsht/Membership-Model-sub002/internal/http"
	"github.com/vidsht/Membership-Model-sub002/internal/http/handlers"
)

// Run wires the application and serves the facade
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	sh := handlers.NewSessionHandlers(c.SessionSvc)
	eh := handlers.NewEntitlementHandlers(c.EntitlementSvc)
	ch := handlers.NewCapabilityHandlers(c.SessionSvc)

	r := httpx.BuildRouter(sh, eh, ch, c.SessionSvc, c.EntitlementSvc, c.RouteGuard)

	// Startup probe runs concurrently so the facade is reachable while the
	// backend round-trip is in flight.
	go c.SessionSvc.Bootstrap(context.Background())

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
