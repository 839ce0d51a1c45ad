package usbpump

import (
	"testing"
	"time"

	"github.com/tcl125/fredbridge/internal/framepipe"
	"github.com/tcl125/fredbridge/internal/transport"
	"github.com/tcl125/fredbridge/internal/wire"
)

func TestPumpDispatchesPingOverLoopback(t *testing.T) {
	lb := framepipe.NewLoopback(4)
	defer lb.Close()
	pump := New(transport.NewMock(), lb.DeviceSide())

	req := wire.PingPacket(1)
	enc := req.Encode()
	if err := lb.HostSide().WriteFrame(enc[:]); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- pump.RunOnce() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunOnce: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("RunOnce did not return")
	}

	reply, err := lb.HostSide().ReadFrame(100 * time.Millisecond)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if len(reply) < wire.PacketSize {
		t.Fatalf("reply too short: %d bytes", len(reply))
	}
	pkt, err := wire.Decode(reply[:wire.PacketSize])
	if err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if pkt.MsgType != wire.Ack || pkt.Seq != 1 {
		t.Fatalf("reply = %+v, want Ack seq=1", pkt)
	}
}

func TestPumpBadCRCEmitsSeqZeroNack(t *testing.T) {
	lb := framepipe.NewLoopback(4)
	defer lb.Close()
	pump := New(transport.NewMock(), lb.DeviceSide())

	req := wire.PingPacket(9)
	enc := req.Encode()
	enc[10] ^= 0x55
	if err := lb.HostSide().WriteFrame(enc[:]); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- pump.RunOnce() }()
	if err := <-done; err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	reply, err := lb.HostSide().ReadFrame(100 * time.Millisecond)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	pkt, err := wire.Decode(reply[:wire.PacketSize])
	if err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if pkt.MsgType != wire.Nack || pkt.Seq != 0 || pkt.Payload[0] != 0xFF || pkt.Payload[1] != 0x02 {
		t.Fatalf("reply = %+v, want Nack seq=0 rejected=0xFF reason=0x02", pkt)
	}
}

func TestPumpIdleIterationReturnsNilWithoutFrame(t *testing.T) {
	lb := framepipe.NewLoopback(1)
	defer lb.Close()
	pump := New(transport.NewMock(), lb.DeviceSide())

	if err := pump.RunOnce(); err != nil {
		t.Fatalf("RunOnce on idle pipe: %v", err)
	}
}
