// Package usbpump implements the device-side cooperative frame pump: the
// single loop that decodes inbound USB frames, dispatches them through a
// transport.Transport, and interleaves unsolicited outgoing packets.
package usbpump

import (
	"log/slog"
	"time"

	"github.com/tcl125/fredbridge/internal/framepipe"
	"github.com/tcl125/fredbridge/internal/transport"
	"github.com/tcl125/fredbridge/internal/wire"
)

var logger = slog.Default().With("component", "usbpump")

// IdleTimeout is how long one iteration waits for an inbound frame before
// proceeding to the outgoing-packet check regardless.
const IdleTimeout = 2 * time.Millisecond

// FrameSize is the bulk transfer size every reply is padded to; only the
// first wire.PacketSize bytes are meaningful.
const FrameSize = 64

// Pump owns both directions of one connection's traffic.
type Pump struct {
	Transport transport.Transport
	Pipe      framepipe.Pipe
}

// New returns a Pump driving t over p.
func New(t transport.Transport, p framepipe.Pipe) *Pump {
	return &Pump{Transport: t, Pipe: p}
}

// RunOnce executes exactly one pump iteration: an inbound frame wait
// (bounded by IdleTimeout), optional request dispatch, then an outgoing
// packet check and optional pacing sleep. It returns the error that
// should drop the connection, or nil to continue.
func (p *Pump) RunOnce() error {
	frame, err := p.Pipe.ReadFrame(IdleTimeout)
	if err != nil {
		return err
	}

	if len(frame) >= wire.PacketSize {
		if err := p.handleFrame(frame); err != nil {
			return err
		}
	}

	if err := p.pollOutgoing(); err != nil {
		return err
	}
	return nil
}

// Run loops RunOnce until it returns an error, at which point the
// connection is considered dropped; the caller re-awaits host
// attachment and constructs a fresh Pump.
func (p *Pump) Run() error {
	for {
		if err := p.RunOnce(); err != nil {
			logger.Info("link dropped", "err", err)
			return err
		}
	}
}

func (p *Pump) handleFrame(frame []byte) error {
	req, decodeErr := wire.Decode(frame[:wire.PacketSize])
	if decodeErr != nil {
		nack := wire.NackPacket(0, 0xFF, 0x02)
		return p.writePacket(nack)
	}

	var out [2]wire.Packet
	n := p.Transport.HandleRequest(req, &out)
	for i := 0; i < n; i++ {
		if err := p.writePacket(out[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pump) pollOutgoing() error {
	pkt, ok := p.Transport.PollOutgoingPacket()
	if !ok {
		return nil
	}
	if err := p.writePacket(pkt); err != nil {
		return err
	}
	if delayMs, paced := p.Transport.PostSendDelayMs(pkt); paced {
		time.Sleep(time.Duration(delayMs) * time.Millisecond)
	}
	return nil
}

func (p *Pump) writePacket(pkt wire.Packet) error {
	var frame [FrameSize]byte
	enc := pkt.Encode()
	copy(frame[:], enc[:])
	return p.Pipe.WriteFrame(frame[:])
}
