package services

import (
	"fmt"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

// Decision is the outcome of a feature gate check. Denials carry the
// human-readable blocking message for the restricted-access placeholder.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Message string `json:"message,omitempty"`
}

// signInMessage covers gate checks with no identity behind the session
const signInMessage = "Sign in with an active membership to use this feature."

var blockingMessages = map[domain.Feature]string{
	domain.FeatureCard:        "Your %s membership has expired. Renew your plan to view your membership card.",
	domain.FeatureCertificate: "Your %s membership has expired. Renew your plan to view your membership certificate.",
	domain.FeatureRedeem:      "Your %s membership has expired. Renew your plan to redeem exclusive offers.",
	domain.FeaturePostDeals:   "Your %s membership has expired. Renew your plan to post new deals.",
}

const genericBlockingMessage = "Your %s membership has expired. Renew your plan to regain access."

// CheckAccess is the feature gate: a synchronous, side-effect-free decision
// from a snapshot and a feature identifier. Unknown features fall back to the
// default entry.
func CheckAccess(snap domain.EntitlementSnapshot, feature domain.Feature) Decision {
	allowed, known := snap.Access[feature]
	if !known {
		allowed = snap.Access[domain.FeatureDefault]
	}
	if allowed {
		return Decision{Allowed: true}
	}
	return Decision{Message: blockingMessage(snap, feature)}
}

func blockingMessage(snap domain.EntitlementSnapshot, feature domain.Feature) string {
	if snap.PlanName == "" {
		return signInMessage
	}
	format, ok := blockingMessages[feature]
	if !ok {
		format = genericBlockingMessage
	}
	return fmt.Sprintf(format, snap.PlanName)
}
