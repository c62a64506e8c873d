package mocks

import (
	"context"
	"sync"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

// MockClientStateRepository implements domain.ClientStateRepository for
// testing. Without overrides it behaves as an empty in-memory store.
type MockClientStateRepository struct {
	SaveRememberedEmailFunc    func(ctx context.Context, email string) error
	RememberedEmailFunc        func(ctx context.Context) (string, error)
	ClearRememberedEmailFunc   func(ctx context.Context) error
	SaveRememberedSessionFunc  func(ctx context.Context, token string) error
	RememberedSessionFunc      func(ctx context.Context) (string, bool, error)
	ClearRememberedSessionFunc func(ctx context.Context) error

	mu         sync.Mutex
	email      string
	token      string
	remembered bool
}

// NewMockClientStateRepository creates a new MockClientStateRepository
func NewMockClientStateRepository() *MockClientStateRepository {
	return &MockClientStateRepository{}
}

// Remember seeds a remembered session, as a previous process run would have
func (m *MockClientStateRepository) Remember(email, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.email = email
	m.token = token
	m.remembered = true
}

// SaveRememberedEmail stores the login-form prefill
func (m *MockClientStateRepository) SaveRememberedEmail(ctx context.Context, email string) error {
	if m.SaveRememberedEmailFunc != nil {
		return m.SaveRememberedEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.email = email
	return nil
}

// RememberedEmail reads the login-form prefill
func (m *MockClientStateRepository) RememberedEmail(ctx context.Context) (string, error) {
	if m.RememberedEmailFunc != nil {
		return m.RememberedEmailFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.email, nil
}

// ClearRememberedEmail removes the login-form prefill
func (m *MockClientStateRepository) ClearRememberedEmail(ctx context.Context) error {
	if m.ClearRememberedEmailFunc != nil {
		return m.ClearRememberedEmailFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.email = ""
	return nil
}

// SaveRememberedSession stores the remembered-session marker
func (m *MockClientStateRepository) SaveRememberedSession(ctx context.Context, token string) error {
	if m.SaveRememberedSessionFunc != nil {
		return m.SaveRememberedSessionFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.remembered = true
	return nil
}

// RememberedSession reads the remembered-session marker
func (m *MockClientStateRepository) RememberedSession(ctx context.Context) (string, bool, error) {
	if m.RememberedSessionFunc != nil {
		return m.RememberedSessionFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.remembered, nil
}

// ClearRememberedSession removes the remembered-session marker
func (m *MockClientStateRepository) ClearRememberedSession(ctx context.Context) error {
	if m.ClearRememberedSessionFunc != nil {
		return m.ClearRememberedSessionFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.remembered = false
	return nil
}

// SessionRemembered reports whether the remembered-session marker is set
func (m *MockClientStateRepository) SessionRemembered() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remembered
}

// Compile-time interface compliance verification
var _ domain.ClientStateRepository = (*MockClientStateRepository)(nil)
