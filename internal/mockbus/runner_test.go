package mockbus

import (
	"testing"

	"github.com/tcl125/fredbridge/internal/dro"
)

func TestRunnerCadenceWrapsInOrder(t *testing.T) {
	r := NewRunner()
	const n = 4
	for i := 0; i < 10*n; i++ {
		step := r.Step()
		want := dro.Cadence[i%10]
		if step.CmdFC80 != want {
			t.Fatalf("step %d: cmd = 0x%02X, want 0x%02X", i, step.CmdFC80, want)
		}
	}
}

func TestRunnerFullCadenceMatchesEngineTelemetry(t *testing.T) {
	r := NewRunner()
	var asm dro.Assembler
	for i := 0; i < 10; i++ {
		step := r.Step()
		asm.Feed(step.CmdFC80, step.ResponseFCF1)
	}

	snap := asm.Snapshot()
	want := r.Engine().Telemetry()
	if snap.XCounts != want.XCounts {
		t.Errorf("XCounts = %d, want %d", snap.XCounts, want.XCounts)
	}
	if snap.ZCounts != want.ZCounts {
		t.Errorf("ZCounts = %d, want %d", snap.ZCounts, want.ZCounts)
	}
	if snap.RPM != want.RPM {
		t.Errorf("RPM = %d, want %d", snap.RPM, want.RPM)
	}
}

func TestEngineStatusAlwaysReady(t *testing.T) {
	var e Engine
	for i := 0; i < 50; i++ {
		e.StepTelemetry()
		for _, cmd := range dro.Cadence {
			if reply := e.OnCommand(cmd); reply.StatusFCF0 != 0x00 {
				t.Fatalf("tick %d cmd 0x%02X: status = 0x%02X, want 0x00", i, cmd, reply.StatusFCF0)
			}
		}
	}
}

func TestEngineUnknownCommandReturnsZero(t *testing.T) {
	var e Engine
	e.StepTelemetry()
	if reply := e.OnCommand(0xFF); reply.ResponseFCF1 != 0x00 {
		t.Errorf("ResponseFCF1 = 0x%02X, want 0x00", reply.ResponseFCF1)
	}
}
