package mocks

import (
	"sync"

	"github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"
)

// MockNotificationService implements domain.NotificationService for testing.
// It records every dispatched SMS for later inspection.
type MockNotificationService struct {
	SendSMSFunc func(to, message string) error

	mu   sync.Mutex
	Sent []SentSMS
}

// SentSMS is one recorded dispatch.
type SentSMS struct {
	To      string
	Message string
}

// NewMockNotificationService creates a new MockNotificationService
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS records the message and delegates to SendSMSFunc when set.
func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		if err := m.SendSMSFunc(to, message); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentSMS{To: to, Message: message})
	return nil
}

// SentCount returns how many messages were dispatched.
func (m *MockNotificationService) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// LastSent returns the most recent dispatch, or nil.
func (m *MockNotificationService) LastSent() *SentSMS {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	last := m.Sent[len(m.Sent)-1]
	return &last
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
