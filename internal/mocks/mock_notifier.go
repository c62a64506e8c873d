package mocks

import (
	"sync"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

// MockNotifier implements domain.Notifier for testing, recording every notice
type MockNotifier struct {
	NotifyFunc func(notice domain.Notice)

	mu      sync.Mutex
	notices []domain.Notice
}

// NewMockNotifier creates a new MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Notify records the notice
func (m *MockNotifier) Notify(notice domain.Notice) {
	m.mu.Lock()
	m.notices = append(m.notices, notice)
	m.mu.Unlock()
	if m.NotifyFunc != nil {
		m.NotifyFunc(notice)
	}
}

// Notices returns a copy of the recorded notices
func (m *MockNotifier) Notices() []domain.Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Notice, len(m.notices))
	copy(out, m.notices)
	return out
}

// Count returns how many notices of a kind were recorded
func (m *MockNotifier) Count(kind domain.NoticeKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, notice := range m.notices {
		if notice.Kind == kind {
			n++
		}
	}
	return n
}

// Compile-time interface compliance verification
var _ domain.Notifier = (*MockNotifier)(nil)
