package transport

import (
	"testing"

	"github.com/tcl125/fredbridge/internal/pio"
	"github.com/tcl125/fredbridge/internal/wire"
)

func TestActiveWriteFC80Composition(t *testing.T) {
	write := &pio.FakeStateMachine{PushLimit: 1}
	read := &pio.FakeStateMachine{PullLimit: 1}
	a := NewActive(write, read)

	a.writeFC80(0x03)
	if len(write.Pushed) != 1 {
		t.Fatalf("Pushed len = %d, want 1", len(write.Pushed))
	}
	if write.Pushed[0] != 0x8003 {
		t.Fatalf("pushed word = 0x%04X, want 0x8003", write.Pushed[0])
	}
}

func TestActiveReadTimeoutIncrementsRxCounter(t *testing.T) {
	write := &pio.FakeStateMachine{PushLimit: 1}
	read := &pio.FakeStateMachine{PushLimit: 1, PullLimit: pio.MaxPollAttempts + 1}
	a := NewActive(write, read)

	before := a.Service.RxTimeoutCount
	b := a.readFCF1()
	if b != pio.TimeoutSentinel {
		t.Fatalf("b = 0x%02X, want sentinel", b)
	}
	if a.Service.RxTimeoutCount != before+1 {
		t.Fatalf("RxTimeoutCount = %d, want %d", a.Service.RxTimeoutCount, before+1)
	}
}

func TestActivePollOutgoingFeedsAssembler(t *testing.T) {
	write := &pio.FakeStateMachine{PushLimit: 1}
	read := &pio.FakeStateMachine{PushLimit: 1, PullLimit: 1, PullValue: 0x00}
	a := NewActive(write, read)

	var out [2]wire.Packet
	a.HandleRequest(wire.TelemetrySetPacket(1, true, 10), &out)

	fired := false
	for i := 0; i < 20; i++ {
		if _, ok := a.PollOutgoingPacket(); ok {
			fired = true
		}
	}
	if !fired {
		t.Fatal("expected at least one telemetry event within 20 cadence steps")
	}
}
