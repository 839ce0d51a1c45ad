package framepipe

import (
	"testing"
	"time"
)

func TestLoopbackPreservesWriteOrder(t *testing.T) {
	lb := NewLoopback(4)
	defer lb.Close()
	host := lb.HostSide()
	device := lb.DeviceSide()

	frames := [][]byte{{1, 2, 3}, {4, 5}, {6}}
	for _, f := range frames {
		if err := host.WriteFrame(f); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	for i, want := range frames {
		got, err := device.ReadFrame(100 * time.Millisecond)
		if err != nil {
			t.Fatalf("ReadFrame %d: %v", i, err)
		}
		if string(got) != string(want) {
			t.Fatalf("frame %d = %v, want %v", i, got, want)
		}
	}
}

func TestLoopbackReadTimeoutReturnsNilNil(t *testing.T) {
	lb := NewLoopback(1)
	defer lb.Close()
	got, err := lb.DeviceSide().ReadFrame(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if got != nil {
		t.Fatalf("got = %v, want nil", got)
	}
}

func TestLoopbackRoundTrip(t *testing.T) {
	lb := NewLoopback(1)
	defer lb.Close()

	if err := lb.DeviceSide().WriteFrame([]byte{0xAA}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := lb.HostSide().ReadFrame(100 * time.Millisecond)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if len(got) != 1 || got[0] != 0xAA {
		t.Fatalf("got = %v, want [0xAA]", got)
	}
}
