package mocks

import "github.com/iclaudiumihaila/pe-foc-de-lemne-sub004/domain"

// MockMessageCatalog implements domain.MessageCatalog for testing
type MockMessageCatalog struct {
	MessageFunc func(key, locale string) string
}

// NewMockMessageCatalog creates a new MockMessageCatalog
func NewMockMessageCatalog() *MockMessageCatalog {
	return &MockMessageCatalog{}
}

// Message returns the localized text for a key. The default behavior echoes
// the key with a format verb so Sprintf-based senders still work.
func (m *MockMessageCatalog) Message(key, locale string) string {
	if m.MessageFunc != nil {
		return m.MessageFunc(key, locale)
	}
	return key + ": %v"
}

// Compile-time interface compliance verification
var _ domain.MessageCatalog = (*MockMessageCatalog)(nil)
