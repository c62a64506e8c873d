package domain

import "time"

// Role identifies the kind of account behind a session
type Role string

const (
	RoleMember   Role = "member"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

// AccountStatus is the approval state of a membership account
type AccountStatus string

const (
	StatusPending   AccountStatus = "pending"
	StatusApproved  AccountStatus = "approved"
	StatusRejected  AccountStatus = "rejected"
	StatusSuspended AccountStatus = "suspended"
)

// Feature identifies a plan-restricted capability
type Feature string

const (
	FeatureCard        Feature = "card"
	FeatureCertificate Feature = "certificate"
	FeatureRedeem      Feature = "redeem"
	FeaturePostDeals   Feature = "post_deals"
	FeatureDefault     Feature = "default"
)

// Identity represents the authenticated principal. It is replaced wholesale
// on every successful probe or credential operation and must be treated as
// immutable once published to readers.
type Identity struct {
	ID            uint          `json:"id"`
	Email         string        `json:"email"`
	Name          string        `json:"name"`
	Role          Role          `json:"role"`
	Status        AccountStatus `json:"status"`
	PlanKey       string        `json:"plan_key"`
	PlanName      string        `json:"plan_name,omitempty"`
	PlanExpiresAt *time.Time    `json:"plan_expires_at,omitempty"`
	Lifetime      bool          `json:"lifetime"`
}

// SessionState wraps the identity with process state. IsAuthenticated is true
// exactly when Identity is non-nil; SessionExpired and IsAuthenticated are
// never both true.
type SessionState struct {
	Identity        *Identity `json:"identity,omitempty"`
	IsAuthenticated bool      `json:"is_authenticated"`
	IsLoading       bool      `json:"is_loading"`
	SessionExpired  bool      `json:"session_expired"`
}

// EntitlementSnapshot is the derived, time-dependent access decision for an
// identity. It is recomputed on demand and never cached across identity
// changes.
type EntitlementSnapshot struct {
	IsExpired      bool             `json:"is_expired"`
	IsExpiringSoon bool             `json:"is_expiring_soon"`
	DaysRemaining  *int             `json:"days_remaining,omitempty"`
	Access         map[Feature]bool `json:"access"`
	PlanName       string           `json:"plan_name,omitempty"`
}

// Credentials represents a login submission
type Credentials struct {
	Email    string
	Password string
	Remember bool
}

// Registration represents a member registration submission
type Registration struct {
	Name     string
	Email    string
	Password string
	PlanKey  string
}

// MerchantRegistration represents a merchant registration submission
type MerchantRegistration struct {
	BusinessName string
	Email        string
	Password     string
	PlanKey      string
}

// AuthResult represents a successful credential operation against the
// membership backend
type AuthResult struct {
	Identity    *Identity
	AccessToken string
}

// NoticeKind defines the type of user-visible notice
type NoticeKind string

const (
	NoticeSessionExpired NoticeKind = "SESSION_EXPIRED"
	NoticeLoggedOut      NoticeKind = "LOGGED_OUT"
)

// Notice is a user-visible message emitted by a session transition
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewNotice creates a notice with the timestamp populated
func NewNotice(kind NoticeKind, message string) Notice {
	return Notice{
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}
