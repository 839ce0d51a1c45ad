package transport

import (
	"github.com/tcl125/fredbridge/internal/bridge"
	"github.com/tcl125/fredbridge/internal/dro"
	"github.com/tcl125/fredbridge/internal/pio"
	"github.com/tcl125/fredbridge/internal/wire"
)

// Bus register addresses.
const (
	addrFC80 = 0x80
	addrFCF0 = 0xF0
	addrFCF1 = 0xF1
)

// Active drives the 1MHz bus as master via two PIO state machines: one
// for writes (posing a cadence sub-query on FC80), one for reads
// (drawing status off FCF0 and data off FCF1).
type Active struct {
	Service *bridge.Service

	Write       pio.StateMachine
	Read        pio.StateMachine
	initialized bool

	cadenceIndex int
}

// NewActive returns an Active transport around a fresh bridge.Service,
// driving the given write/read state machines.
func NewActive(write, read pio.StateMachine) *Active {
	return &Active{Service: bridge.NewService(), Write: write, Read: read}
}

// Init marks the transport initialised; it does no configuration of its
// own and uses the Write/Read state machines as supplied. It is
// idempotent: subsequent calls are no-ops.
func (a *Active) Init() {
	if a.initialized {
		return
	}
	a.initialized = true
}

// writeFC80 composes (0x80<<8)|cmd and pushes it into the write state
// machine's TX FIFO, counting a timeout on exhaustion.
func (a *Active) writeFC80(cmd byte) {
	word := uint16(addrFC80)<<8 | uint16(cmd)
	if !pio.PushBounded(a.Write, word) {
		a.Service.TxTimeoutCount++
	}
}

// readAddr composes an address-only word, pushes it into the read state
// machine's TX FIFO, then pulls one byte from its RX FIFO. A push or
// pull timeout counts tx/rx_timeout_count respectively and yields the
// PIO timeout sentinel.
func (a *Active) readAddr(addr byte) byte {
	word := uint16(addr) << 8
	if !pio.PushBounded(a.Read, word) {
		a.Service.TxTimeoutCount++
		return pio.TimeoutSentinel
	}
	b, ok := pio.PullBounded(a.Read)
	if !ok {
		a.Service.RxTimeoutCount++
		return pio.TimeoutSentinel
	}
	return b
}

func (a *Active) readFCF0() byte { return a.readAddr(addrFCF0) }
func (a *Active) readFCF1() byte { return a.readAddr(addrFCF1) }

// HandleRequest delegates to the embedded service; active mode answers
// the same request set as mock mode.
func (a *Active) HandleRequest(req wire.Packet, out *[2]wire.Packet) int {
	return a.Service.HandleRequest(req, out)
}

// PollOutgoingPacket issues the next cadence command over the real bus,
// reads back status and data, and feeds the pair through the service.
func (a *Active) PollOutgoingPacket() (wire.Packet, bool) {
	a.Init()
	cmd := dro.Cadence[a.cadenceIndex]
	a.cadenceIndex = (a.cadenceIndex + 1) % len(dro.Cadence)

	a.writeFC80(cmd)
	a.readFCF0() // status byte, not used for assembly
	response := a.readFCF1()

	return a.Service.AdvanceWithSample(cmd, response)
}

// PostSendDelayMs mirrors the mock transport's pacing rule.
func (a *Active) PostSendDelayMs(pkt wire.Packet) (uint64, bool) {
	if pkt.MsgType != wire.Telemetry {
		return 0, false
	}
	period := a.Service.TelemetryPeriodMs
	if period < 1 {
		period = 1
	}
	return uint64(period), true
}
