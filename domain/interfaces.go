package domain

import "context"

// MembershipAPI is the opaque upstream collaborator. Every failure it returns
// is an *APIError carrying one of the three error kinds.
type MembershipAPI interface {
	Probe(ctx context.Context) (*Identity, error)
	ExtendSession(ctx context.Context) error
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	MerchantLogin(ctx context.Context, creds Credentials) (*AuthResult, error)
	Register(ctx context.Context, reg Registration) (*AuthResult, error)
	MerchantRegister(ctx context.Context, reg MerchantRegistration) (*AuthResult, error)
	Logout(ctx context.Context) error

	// SetToken installs the bearer token attached to subsequent calls.
	// An empty token clears it.
	SetToken(token string)
}

// SessionReader exposes the read-only session snapshot
type SessionReader interface {
	Snapshot() SessionState
}

// SessionController defines the session lifecycle operations exposed to the
// rest of the application
type SessionController interface {
	SessionReader

	// Bootstrap runs the startup probe against the backend.
	Bootstrap(ctx context.Context)

	Login(ctx context.Context, creds Credentials) (*Identity, error)
	MerchantLogin(ctx context.Context, creds Credentials) (*Identity, error)
	Register(ctx context.Context, reg Registration) (*Identity, error)
	MerchantRegister(ctx context.Context, reg MerchantRegistration) (*Identity, error)
	Logout(ctx context.Context) error

	// ValidateSession runs an on-demand probe and reports whether the
	// session is currently authenticated.
	ValidateSession(ctx context.Context) bool

	// HandleSessionExpired is the explicit external trigger, e.g. from an
	// HTTP-layer 401 interceptor.
	HandleSessionExpired()

	// RememberedEmail returns the persisted login-form prefill, if any.
	RememberedEmail(ctx context.Context) string

	// Close cancels the renewal schedule on teardown.
	Close()
}

// EntitlementService derives plan-based feature access from the current
// session
type EntitlementService interface {
	Snapshot() EntitlementSnapshot
	CanAccess(feature Feature) bool
	BlockingMessage(feature Feature) string
}

// ClientStateRepository persists the client-side markers: the remembered
// login email and the remembered-session token
type ClientStateRepository interface {
	SaveRememberedEmail(ctx context.Context, email string) error
	RememberedEmail(ctx context.Context) (string, error)
	ClearRememberedEmail(ctx context.Context) error

	SaveRememberedSession(ctx context.Context, token string) error
	// RememberedSession returns the saved token and whether a session was
	// remembered at all.
	RememberedSession(ctx context.Context) (string, bool, error)
	ClearRememberedSession(ctx context.Context) error
}

// Notifier receives user-visible notices emitted by session transitions
type Notifier interface {
	Notify(notice Notice)
}
