package mocks

import (
	"context"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

// MockSessionController implements domain.SessionController for testing
type MockSessionController struct {
	SnapshotFunc             func() domain.SessionState
	BootstrapFunc            func(ctx context.Context)
	LoginFunc                func(ctx context.Context, creds domain.Credentials) (*domain.Identity, error)
	MerchantLoginFunc        func(ctx context.Context, creds domain.Credentials) (*domain.Identity, error)
	RegisterFunc             func(ctx context.Context, reg domain.Registration) (*domain.Identity, error)
	MerchantRegisterFunc     func(ctx context.Context, reg domain.MerchantRegistration) (*domain.Identity, error)
	LogoutFunc               func(ctx context.Context) error
	ValidateSessionFunc      func(ctx context.Context) bool
	HandleSessionExpiredFunc func()
	RememberedEmailFunc      func(ctx context.Context) string
}

// NewMockSessionController creates a new MockSessionController
func NewMockSessionController() *MockSessionController {
	return &MockSessionController{}
}

// Snapshot returns the session state
func (m *MockSessionController) Snapshot() domain.SessionState {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc()
	}
	// Default behavior: logged out
	return domain.SessionState{}
}

// Bootstrap runs the startup probe
func (m *MockSessionController) Bootstrap(ctx context.Context) {
	if m.BootstrapFunc != nil {
		m.BootstrapFunc(ctx)
	}
}

// Login submits member credentials
func (m *MockSessionController) Login(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return nil, &domain.APIError{Kind: domain.KindUnauthorized, Op: "login"}
}

// MerchantLogin submits merchant credentials
func (m *MockSessionController) MerchantLogin(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	if m.MerchantLoginFunc != nil {
		return m.MerchantLoginFunc(ctx, creds)
	}
	return nil, &domain.APIError{Kind: domain.KindUnauthorized, Op: "merchant_login"}
}

// Register submits a member registration
func (m *MockSessionController) Register(ctx context.Context, reg domain.Registration) (*domain.Identity, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	return nil, &domain.APIError{Kind: domain.KindValidation, Op: "register"}
}

// MerchantRegister submits a merchant registration
func (m *MockSessionController) MerchantRegister(ctx context.Context, reg domain.MerchantRegistration) (*domain.Identity, error) {
	if m.MerchantRegisterFunc != nil {
		return m.MerchantRegisterFunc(ctx, reg)
	}
	return nil, &domain.APIError{Kind: domain.KindValidation, Op: "merchant_register"}
}

// Logout ends the session
func (m *MockSessionController) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

// ValidateSession runs an on-demand probe
func (m *MockSessionController) ValidateSession(ctx context.Context) bool {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx)
	}
	return false
}

// HandleSessionExpired marks the session expired
func (m *MockSessionController) HandleSessionExpired() {
	if m.HandleSessionExpiredFunc != nil {
		m.HandleSessionExpiredFunc()
	}
}

// RememberedEmail returns the persisted login-form prefill
func (m *MockSessionController) RememberedEmail(ctx context.Context) string {
	if m.RememberedEmailFunc != nil {
		return m.RememberedEmailFunc(ctx)
	}
	return ""
}

// Close cancels the renewal schedule
func (m *MockSessionController) Close() {}

// Compile-time interface compliance verification
var _ domain.SessionController = (*MockSessionController)(nil)
