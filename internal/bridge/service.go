// Package bridge implements the central dispatch state machine that
// answers host requests and emits unsolicited telemetry/health events,
// independent of which transport (mock, active PIO, passive sniffer)
// drives it.
package bridge

import (
	"github.com/tcl125/fredbridge/internal/dro"
	"github.com/tcl125/fredbridge/internal/mockbus"
	"github.com/tcl125/fredbridge/internal/wire"
)

// Reason codes used in Nack payloads.
const (
	ReasonUnknownMsgType  byte = 0xFE
	ReasonShortPayload    byte = 0x01
	ReasonActiveForbidden byte = 0x10
	ReasonModeDisabled    byte = 0x11
)

// Service is the BridgeService: owns telemetry enable state, the mock
// cadence runner, and the DRO assembler, and answers requests with 0..2
// replies placed into a caller-provided fixed array.
type Service struct {
	TelemetryEnabled  bool
	TelemetryPeriodMs uint16
	Tick              uint32
	TelemetrySeq      uint16
	BusCycles         uint32
	TxTimeoutCount    uint32
	RxTimeoutCount    uint32

	runner *mockbus.Runner
	asm    dro.Assembler
}

// NewService returns a Service with default state: telemetry disabled,
// a 100ms default period, telemetry_seq starting at 1, and a fresh mock
// bus runner and DRO assembler.
func NewService() *Service {
	return &Service{
		TelemetryPeriodMs: 100,
		TelemetrySeq:      1,
		runner:            mockbus.NewRunner(),
	}
}

// HandleRequest dispatches req and places 0..2 replies into out, returning
// the count written. out must have capacity for at least 2 packets.
func (s *Service) HandleRequest(req wire.Packet, out *[2]wire.Packet) int {
	switch req.MsgType {
	case wire.Ping:
		out[0] = wire.AckPacket(req.Seq, byte(wire.Ping), 0)
		return 1

	case wire.TelemetrySet:
		if req.PayloadLen < 1 {
			out[0] = wire.NackPacket(req.Seq, byte(wire.TelemetrySet), ReasonShortPayload)
			return 1
		}
		s.TelemetryEnabled = req.Payload[0] != 0
		if req.PayloadLen >= 3 {
			s.TelemetryPeriodMs = uint16(req.Payload[1]) | uint16(req.Payload[2])<<8
		}
		out[0] = wire.AckPacket(req.Seq, byte(wire.TelemetrySet), 0)
		return 1

	case wire.SnapshotReq:
		snap := s.asm.Snapshot()
		flags := s.flags()
		out[0] = wire.TelemetryPacket(req.Seq, s.Tick, snap.XCounts, snap.ZCounts, snap.RPM, flags)
		out[1] = wire.AckPacket(req.Seq, byte(wire.SnapshotReq), 0)
		return 2

	default:
		out[0] = wire.NackPacket(req.Seq, byte(req.MsgType), ReasonUnknownMsgType)
		return 1
	}
}

// PollTelemetryEvent steps the mock bus by one cadence byte and feeds the
// result through AdvanceWithSample.
func (s *Service) PollTelemetryEvent() (pkt wire.Packet, ok bool) {
	step := s.runner.Step()
	return s.AdvanceWithSample(step.CmdFC80, step.ResponseFCF1)
}

// AdvanceWithSample advances tick and bus_cycles by one, feeds (cmd,
// response) into the DRO assembler, and — only when cmd is the cadence
// terminator and telemetry is enabled — returns a fresh Telemetry packet.
// It is the shared tail of every transport's cadence stepping, whether
// the (cmd, response) pair came from the mock bus or real bus hardware.
func (s *Service) AdvanceWithSample(cmd, response byte) (pkt wire.Packet, ok bool) {
	s.Tick++
	s.BusCycles++
	s.asm.Feed(cmd, response)

	if cmd != dro.CadenceTerminator || !s.TelemetryEnabled {
		return wire.Packet{}, false
	}

	snap := s.asm.Snapshot()
	pkt = wire.TelemetryPacket(s.TelemetrySeq, s.Tick, snap.XCounts, snap.ZCounts, snap.RPM, s.flags())
	s.TelemetrySeq++
	return pkt, true
}

// Snapshot exposes the assembler's current DRO reading, e.g. for a
// transport answering SnapshotReq outside the normal HandleRequest path.
func (s *Service) Snapshot() dro.Snapshot {
	return s.asm.Snapshot()
}

// HealthPacket materialises a Health packet from the current counters,
// consuming a telemetry_seq value.
func (s *Service) HealthPacket() wire.Packet {
	pkt := wire.HealthPacket(s.TelemetrySeq, s.TxTimeoutCount, s.RxTimeoutCount, s.BusCycles)
	s.TelemetrySeq++
	return pkt
}

func (s *Service) flags() byte {
	if s.TelemetryEnabled {
		return 0x01
	}
	return 0x00
}
