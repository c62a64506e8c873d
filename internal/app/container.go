package app

import (
	"github.com/redis/go-redis/v9"

	"github.com/vidsht/Membership-Model-sub002/domain"
	"github.com/vidsht/Membership-Model-sub002/internal/config"
	"github.com/vidsht/Membership-Model-sub002/internal/infrastructure/auth"
	"github.com/vidsht/Membership-Model-sub002/internal/infrastructure/notifications"
	"github.com/vidsht/Membership-Model-sub002/internal/infrastructure/repositories"
	"github.com/vidsht/Membership-Model-sub002/internal/infrastructure/upstream"
	"github.com/vidsht/Membership-Model-sub002/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	RedisClient *redis.Client
	API         domain.MembershipAPI
	StateRepo   domain.ClientStateRepository
	Notifier    domain.Notifier
	RouteGuard  *auth.RouteGuard

	// Services
	SessionSvc     domain.SessionController
	EntitlementSvc domain.EntitlementService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	c.RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	guard, err := auth.NewRouteGuard(cfg.CasbinModelPath, cfg.CasbinPolicyPath)
	if err != nil {
		return nil, err
	}
	c.RouteGuard = guard

	c.API = upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	c.StateRepo = repositories.NewClientStateRepository(c.RedisClient, cfg.RememberTTL)
	c.Notifier = notifications.NewLogNotifier()

	c.SessionSvc = services.NewSessionService(c.API, c.StateRepo, c.Notifier, services.SessionConfig{
		RenewInterval: cfg.RenewInterval,
		RetryInterval: cfg.RetryInterval,
		CallTimeout:   cfg.UpstreamTimeout,
	})
	c.EntitlementSvc = services.NewEntitlementService(c.SessionSvc)

	return c, nil
}

// Close tears down the session service and connections
func (c *Container) Close() error {
	if c.SessionSvc != nil {
		c.SessionSvc.Close()
	}
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}
