// Package transport defines the capability the USB frame pump consumes,
// and its three concrete backends: mock, active PIO master, and passive
// PIO sniffer. The pump sees only this interface and never branches on
// mode.
package transport

import "github.com/tcl125/fredbridge/internal/wire"

// Transport is the single operation surface every backend implements.
type Transport interface {
	// HandleRequest decides what to reply to req, placing 0..2 packets
	// into out and returning the count written.
	HandleRequest(req wire.Packet, out *[2]wire.Packet) int

	// PollOutgoingPacket returns an unsolicited event (telemetry or
	// trace sample), if one is ready.
	PollOutgoingPacket() (wire.Packet, bool)

	// PostSendDelayMs hints how long the frame pump should pace itself
	// after sending pkt, if at all.
	PostSendDelayMs(pkt wire.Packet) (uint64, bool)
}
