package dro

// Calibration converts raw axis counts to millimetres. X uses diameter
// semantics (doubled); Z is direct radius/linear semantics.
type Calibration struct {
	XCountsPerMM float32
	ZCountsPerMM float32
}

// DefaultCalibration matches the lathe's factory DRO scaling.
func DefaultCalibration() Calibration {
	return Calibration{XCountsPerMM: 100.0, ZCountsPerMM: 100.0}
}

// ToMM converts a snapshot's counts to millimetres under c. RPM passes
// through unchanged.
func (c Calibration) ToMM(s Snapshot) (xMM, zMM float32) {
	xMM = (float32(s.XCounts) * 2) / c.XCountsPerMM
	zMM = float32(s.ZCounts) / c.ZCountsPerMM
	return
}
