package dro

import "testing"

func TestAssemblerFullCadenceReassembly(t *testing.T) {
	var a Assembler
	steps := []struct {
		cmd, resp byte
	}{
		{0x03, 0x01}, {0x02, 0x00}, {0x01, 0x00}, {0x00, 0x64},
		{0x07, 0x00}, {0x06, 0x00}, {0x05, 0x00}, {0x04, 0xC8},
		{0x0D, 0x07}, {0x0C, 0xD0},
	}
	for _, s := range steps {
		a.Feed(s.cmd, s.resp)
	}

	snap := a.Snapshot()
	if snap.XCounts != -100 {
		t.Errorf("XCounts = %d, want -100", snap.XCounts)
	}
	if snap.ZCounts != 200 {
		t.Errorf("ZCounts = %d, want 200", snap.ZCounts)
	}
	if snap.RPM != 2000 {
		t.Errorf("RPM = %d, want 2000", snap.RPM)
	}

	cal := DefaultCalibration()
	xMM, zMM := cal.ToMM(snap)
	if !closeEnough(xMM, -2.0) {
		t.Errorf("xMM = %v, want ~-2.000", xMM)
	}
	if !closeEnough(zMM, 2.0) {
		t.Errorf("zMM = %v, want ~2.000", zMM)
	}
}

func TestAssemblerPartialCadenceYieldsWhatWasObserved(t *testing.T) {
	var a Assembler
	a.Feed(0x03, 0x01)
	a.Feed(0x02, 0x00)
	a.Feed(0x01, 0x00)
	a.Feed(0x00, 0x64)

	snap := a.Snapshot()
	if snap.XCounts != -100 {
		t.Errorf("XCounts = %d, want -100", snap.XCounts)
	}
	if snap.ZCounts != 0 {
		t.Errorf("ZCounts = %d, want 0 (unfed)", snap.ZCounts)
	}
	if snap.RPM != 0 {
		t.Errorf("RPM = %d, want 0 (unfed)", snap.RPM)
	}
}

func TestAssemblerUnrecognisedCmdIsNoOp(t *testing.T) {
	var a Assembler
	a.Feed(0xFF, 0x99)
	snap := a.Snapshot()
	if snap != (Snapshot{}) {
		t.Errorf("unrecognised cmd mutated state: %+v", snap)
	}
}

func TestAxisScratchSignedPositive(t *testing.T) {
	a := AxisScratch{SignNeg: false, B2: 0x00, B1: 0x00, B0: 0x0A}
	if a.Signed() != 10 {
		t.Errorf("Signed() = %d, want 10", a.Signed())
	}
}

func TestCadenceShape(t *testing.T) {
	if Cadence[len(Cadence)-1] != CadenceTerminator {
		t.Errorf("last cadence byte = 0x%02X, want terminator 0x%02X", Cadence[len(Cadence)-1], CadenceTerminator)
	}
	if len(Cadence) != 10 {
		t.Errorf("len(Cadence) = %d, want 10", len(Cadence))
	}
}

func closeEnough(got, want float32) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.001
}
