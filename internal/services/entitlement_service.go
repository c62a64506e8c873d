package services

import (
	"math"
	"time"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

// expiringSoonWindowDays is the warning window before a plan lapses
const expiringSoonWindowDays = 7

// gatedFeatures are the plan-restricted capabilities. All of them are gated
// on the same expiry boolean; the per-feature map exists for the facade
// payload, not for per-feature nuance.
var gatedFeatures = []domain.Feature{
	domain.FeatureCard,
	domain.FeatureCertificate,
	domain.FeatureRedeem,
	domain.FeaturePostDeals,
	domain.FeatureDefault,
}

// Evaluate derives the entitlement snapshot for an identity at an instant.
// It is a pure function: the same identity and the same instant always yield
// the same snapshot.
func Evaluate(identity *domain.Identity, now time.Time) domain.EntitlementSnapshot {
	snap := domain.EntitlementSnapshot{Access: deniedAccess()}
	if identity == nil {
		return snap
	}

	snap.PlanName = planDisplayName(identity)

	if identity.Lifetime {
		// A lifetime plan ignores the expiry date entirely.
		allowAll(snap.Access)
		return snap
	}

	if identity.PlanExpiresAt != nil {
		days := daysUntil(*identity.PlanExpiresAt, now)
		snap.DaysRemaining = &days
		snap.IsExpired = identity.PlanExpiresAt.Before(now)
		snap.IsExpiringSoon = !snap.IsExpired && days >= 0 && days <= expiringSoonWindowDays
	}
	// An absent expiry date does not itself revoke access: accounts whose
	// expiry field was never populated keep their entitlements.

	if !snap.IsExpired {
		allowAll(snap.Access)
	}
	return snap
}

// daysUntil counts the days from now to the deadline, rounding up
func daysUntil(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}

func deniedAccess() map[domain.Feature]bool {
	access := make(map[domain.Feature]bool, len(gatedFeatures))
	for _, f := range gatedFeatures {
		access[f] = false
	}
	return access
}

func allowAll(access map[domain.Feature]bool) {
	for f := range access {
		access[f] = true
	}
}

// planDisplayName prefers the backend's display name and falls back to the
// raw plan key for records that predate display names.
func planDisplayName(identity *domain.Identity) string {
	if identity.PlanName != "" {
		return identity.PlanName
	}
	return identity.PlanKey
}

// EntitlementServiceImpl implements domain.EntitlementService by recomputing
// the snapshot from the live session on every call. Nothing is cached, so a
// plan change or renewal takes effect on the next evaluation.
type EntitlementServiceImpl struct {
	sessions domain.SessionReader
	now      func() time.Time
}

// NewEntitlementService creates a new entitlement service
func NewEntitlementService(sessions domain.SessionReader) *EntitlementServiceImpl {
	return &EntitlementServiceImpl{
		sessions: sessions,
		now:      time.Now,
	}
}

// Snapshot implements domain.EntitlementService
func (e *EntitlementServiceImpl) Snapshot() domain.EntitlementSnapshot {
	return Evaluate(e.sessions.Snapshot().Identity, e.now())
}

// CanAccess implements domain.EntitlementService
func (e *EntitlementServiceImpl) CanAccess(feature domain.Feature) bool {
	return CheckAccess(e.Snapshot(), feature).Allowed
}

// BlockingMessage implements domain.EntitlementService
func (e *EntitlementServiceImpl) BlockingMessage(feature domain.Feature) string {
	return CheckAccess(e.Snapshot(), feature).Message
}

// Compile-time interface compliance verification
var _ domain.EntitlementService = (*EntitlementServiceImpl)(nil)
