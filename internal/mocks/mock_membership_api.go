package mocks

import (
	"context"
	"sync"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

// MockMembershipAPI implements domain.MembershipAPI for testing
type MockMembershipAPI struct {
	ProbeFunc            func(ctx context.Context) (*domain.Identity, error)
	ExtendSessionFunc    func(ctx context.Context) error
	LoginFunc            func(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error)
	MerchantLoginFunc    func(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error)
	RegisterFunc         func(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error)
	MerchantRegisterFunc func(ctx context.Context, reg domain.MerchantRegistration) (*domain.AuthResult, error)
	LogoutFunc           func(ctx context.Context) error

	mu            sync.Mutex
	token         string
	probeCalls    int
	extendCalls   int
	logoutCalls   int
	setTokenCalls []string
}

// NewMockMembershipAPI creates a new MockMembershipAPI with default behaviors
func NewMockMembershipAPI() *MockMembershipAPI {
	return &MockMembershipAPI{}
}

// Probe runs the identity probe
func (m *MockMembershipAPI) Probe(ctx context.Context) (*domain.Identity, error) {
	m.mu.Lock()
	m.probeCalls++
	m.mu.Unlock()
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx)
	}
	// Default behavior: not logged in
	return nil, &domain.APIError{Kind: domain.KindUnauthorized, Op: "probe"}
}

// ExtendSession extends the backend session
func (m *MockMembershipAPI) ExtendSession(ctx context.Context) error {
	m.mu.Lock()
	m.extendCalls++
	m.mu.Unlock()
	if m.ExtendSessionFunc != nil {
		return m.ExtendSessionFunc(ctx)
	}
	// Default behavior: success
	return nil
}

// Login submits member credentials
func (m *MockMembershipAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return nil, &domain.APIError{Kind: domain.KindUnauthorized, Op: "login"}
}

// MerchantLogin submits merchant credentials
func (m *MockMembershipAPI) MerchantLogin(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	if m.MerchantLoginFunc != nil {
		return m.MerchantLoginFunc(ctx, creds)
	}
	return nil, &domain.APIError{Kind: domain.KindUnauthorized, Op: "merchant_login"}
}

// Register submits a member registration
func (m *MockMembershipAPI) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, reg)
	}
	return nil, &domain.APIError{Kind: domain.KindValidation, Op: "register"}
}

// MerchantRegister submits a merchant registration
func (m *MockMembershipAPI) MerchantRegister(ctx context.Context, reg domain.MerchantRegistration) (*domain.AuthResult, error) {
	if m.MerchantRegisterFunc != nil {
		return m.MerchantRegisterFunc(ctx, reg)
	}
	return nil, &domain.APIError{Kind: domain.KindValidation, Op: "merchant_register"}
}

// Logout ends the backend session
func (m *MockMembershipAPI) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.logoutCalls++
	m.mu.Unlock()
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	// Default behavior: success
	return nil
}

// SetToken installs the bearer token
func (m *MockMembershipAPI) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.setTokenCalls = append(m.setTokenCalls, token)
}

// Token returns the currently installed token
func (m *MockMembershipAPI) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// ProbeCalls returns how many probes were issued
func (m *MockMembershipAPI) ProbeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.probeCalls
}

// ExtendCalls returns how many renewals were issued
func (m *MockMembershipAPI) ExtendCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.extendCalls
}

// LogoutCalls returns how many logout calls were issued
func (m *MockMembershipAPI) LogoutCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logoutCalls
}

// Compile-time interface compliance verification
var _ domain.MembershipAPI = (*MockMembershipAPI)(nil)
