package transport

import (
	"github.com/tcl125/fredbridge/internal/bridge"
	"github.com/tcl125/fredbridge/internal/wire"
)

// Mock wraps a bridge.Service, generating telemetry traffic from the
// deterministic mock bus engine instead of real hardware.
type Mock struct {
	Service *bridge.Service
}

// NewMock returns a Mock transport around a fresh bridge.Service.
func NewMock() *Mock {
	return &Mock{Service: bridge.NewService()}
}

// HandleRequest delegates directly to the embedded service.
func (m *Mock) HandleRequest(req wire.Packet, out *[2]wire.Packet) int {
	return m.Service.HandleRequest(req, out)
}

// PollOutgoingPacket steps the mock bus once via the service and returns
// a telemetry event gated on telemetry_enabled and cadence completion.
func (m *Mock) PollOutgoingPacket() (wire.Packet, bool) {
	return m.Service.PollTelemetryEvent()
}

// PostSendDelayMs returns the service's telemetry period (minimum 1ms)
// for Telemetry packets, and no pacing hint otherwise.
func (m *Mock) PostSendDelayMs(pkt wire.Packet) (uint64, bool) {
	if pkt.MsgType != wire.Telemetry {
		return 0, false
	}
	period := m.Service.TelemetryPeriodMs
	if period < 1 {
		period = 1
	}
	return uint64(period), true
}
