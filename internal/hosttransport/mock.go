package hosttransport

import (
	"sync"

	"github.com/tcl125/fredbridge/internal/bridge"
	"github.com/tcl125/fredbridge/internal/wire"
)

// MockTransport embeds a bridge.Service directly in the host process and
// returns its handle_request output, with no real USB link involved.
type MockTransport struct {
	Service *bridge.Service

	mu sync.Mutex
}

// NewMockTransport returns a MockTransport around a fresh bridge.Service.
func NewMockTransport() *MockTransport {
	return &MockTransport{Service: bridge.NewService()}
}

// Transact dispatches req through the embedded service and returns
// whichever 0..2 replies it produced. Concurrent callers are serialized
// internally, matching USBTransport's contract.
func (m *MockTransport) Transact(req wire.Packet) ([]wire.Packet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out [2]wire.Packet
	n := m.Service.HandleRequest(req, &out)
	return out[:n], nil
}

// Close is a no-op: there is no underlying resource to release.
func (m *MockTransport) Close() error { return nil }
