package transport

import (
	"github.com/tcl125/fredbridge/internal/bridge"
	"github.com/tcl125/fredbridge/internal/pio"
	"github.com/tcl125/fredbridge/internal/wire"
)

// Reason codes specific to sniffer mode.
const (
	reasonActiveForbidden = bridge.ReasonActiveForbidden
	reasonModeDisabled    = bridge.ReasonModeDisabled
)

// Passive samples the bus without driving any line, reporting raw 32-bit
// samples to the host as TraceSample events. It never reassembles DRO
// state itself — the host decodes the bit layout.
type Passive struct {
	Source pio.SampleSource

	CaptureEnabled bool
	traceTick      uint32
	traceSeq       uint16
}

// NewPassive returns a Passive transport around the given sample source,
// with trace_seq starting at 1 and capture initially disabled.
func NewPassive(source pio.SampleSource) *Passive {
	return &Passive{Source: source, traceSeq: 1}
}

// HandleRequest toggles capture on CaptureSet. While capture is enabled,
// every other request — including TelemetrySet and SnapshotReq — is
// NACKed with reason 0x10 (active-master operations forbidden while
// passive). With capture disabled, requests other than Ping/CaptureSet
// are NACKed with 0x11 (mode-disabled): this firmware variant does not
// fall back to active behaviour.
func (p *Passive) HandleRequest(req wire.Packet, out *[2]wire.Packet) int {
	switch req.MsgType {
	case wire.CaptureSet:
		p.CaptureEnabled = req.PayloadLen >= 1 && req.Payload[0] != 0
		out[0] = wire.AckPacket(req.Seq, byte(wire.CaptureSet), 0)
		return 1
	case wire.Ping:
		out[0] = wire.AckPacket(req.Seq, byte(wire.Ping), 0)
		return 1
	default:
		if p.CaptureEnabled {
			out[0] = wire.NackPacket(req.Seq, byte(req.MsgType), reasonActiveForbidden)
		} else {
			out[0] = wire.NackPacket(req.Seq, byte(req.MsgType), reasonModeDisabled)
		}
		return 1
	}
}

// PollOutgoingPacket is non-blocking: it returns ok=false when the RX
// FIFO is empty, otherwise wraps the next 32-bit sample into a
// TraceSample event with a strictly increasing trace_seq.
func (p *Passive) PollOutgoingPacket() (wire.Packet, bool) {
	if !p.CaptureEnabled {
		return wire.Packet{}, false
	}
	sample, ok := p.Source.TryPullSample()
	if !ok {
		return wire.Packet{}, false
	}
	p.traceTick++
	pkt := wire.TraceSamplePacket(p.traceSeq, p.traceTick, sample)
	p.traceSeq++
	return pkt, true
}

// PostSendDelayMs: trace samples are not paced.
func (p *Passive) PostSendDelayMs(pkt wire.Packet) (uint64, bool) {
	return 0, false
}
