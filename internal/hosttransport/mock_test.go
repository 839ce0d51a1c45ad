package hosttransport

import (
	"sync"
	"testing"

	"github.com/tcl125/fredbridge/internal/wire"
)

func TestMockTransportPingRoundTrip(t *testing.T) {
	tr := NewMockTransport()
	defer tr.Close()

	replies, err := tr.Transact(wire.PingPacket(5))
	if err != nil {
		t.Fatalf("Transact: %v", err)
	}
	if len(replies) != 1 {
		t.Fatalf("len(replies) = %d, want 1", len(replies))
	}
	if replies[0].MsgType != wire.Ack || replies[0].Seq != 5 {
		t.Fatalf("reply = %+v, want Ack seq=5", replies[0])
	}
}

func TestMockTransportSnapshotReqTwoReplies(t *testing.T) {
	tr := NewMockTransport()
	defer tr.Close()

	replies, err := tr.Transact(wire.SnapshotReqPacket(3))
	if err != nil {
		t.Fatalf("Transact: %v", err)
	}
	if len(replies) != 2 {
		t.Fatalf("len(replies) = %d, want 2", len(replies))
	}
	if replies[0].MsgType != wire.Telemetry || replies[1].MsgType != wire.Ack {
		t.Fatalf("replies = %+v, want [Telemetry, Ack]", replies)
	}
}

func TestMockTransportTransactSerializesConcurrentCallers(t *testing.T) {
	tr := NewMockTransport()
	defer tr.Close()

	const callers = 16
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		seq := uint16(i + 1)
		go func() {
			defer wg.Done()
			replies, err := tr.Transact(wire.PingPacket(seq))
			if err != nil {
				t.Errorf("Transact: %v", err)
				return
			}
			if len(replies) != 1 || replies[0].Seq != seq {
				t.Errorf("reply = %+v, want single Ack seq=%d", replies, seq)
			}
		}()
	}
	wg.Wait()
}
