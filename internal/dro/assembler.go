// Package dro reassembles the ten-byte cadence of bus register reads into
// signed axis positions and spindle RPM.
package dro

// Cadence is the fixed ten-element ordered sequence of FC80 command bytes
// that together encode one complete DRO snapshot. The terminator is always
// the final element.
var Cadence = [10]byte{0x03, 0x02, 0x01, 0x00, 0x07, 0x06, 0x05, 0x04, 0x0D, 0x0C}

// CadenceTerminator is the cadence byte whose completion triggers a fresh
// snapshot.
const CadenceTerminator = byte(0x0C)

// AxisScratch holds the reassembly state for one axis.
type AxisScratch struct {
	SignNeg bool
	B2      byte
	B1      byte
	B0      byte
}

// Magnitude returns the 24-bit unsigned magnitude.
func (a AxisScratch) Magnitude() int32 {
	return int32(a.B2)<<16 | int32(a.B1)<<8 | int32(a.B0)
}

// Signed returns the signed count, negated if SignNeg is set.
func (a AxisScratch) Signed() int32 {
	mag := a.Magnitude()
	if a.SignNeg {
		return -mag
	}
	return mag
}

// Snapshot is an immutable materialised DRO reading.
type Snapshot struct {
	XCounts int32
	ZCounts int32
	RPM     uint16
}

// Assembler aggregates the X and Z axis scratch state plus the RPM halves,
// mutated one cadence byte at a time by Feed.
type Assembler struct {
	x     AxisScratch
	z     AxisScratch
	rpmHi byte
	rpmLo byte
}

// Feed applies one (cmd, response) pair from the FC80/FCF1 cadence to the
// assembler's scratch state. Unrecognised cmd values are a no-op.
func (a *Assembler) Feed(cmd byte, response byte) {
	switch cmd {
	case 0x03:
		a.x.SignNeg = response != 0
	case 0x02:
		a.x.B2 = response
	case 0x01:
		a.x.B1 = response
	case 0x00:
		a.x.B0 = response
	case 0x07:
		a.z.SignNeg = response != 0
	case 0x06:
		a.z.B2 = response
	case 0x05:
		a.z.B1 = response
	case 0x04:
		a.z.B0 = response
	case 0x0D:
		a.rpmHi = response
	case 0x0C:
		a.rpmLo = response
	}
}

// Snapshot is a pure read of the current reassembly state; it never resets
// scratch, so a partial cadence yields whatever bytes have been observed
// so far.
func (a *Assembler) Snapshot() Snapshot {
	return Snapshot{
		XCounts: a.x.Signed(),
		ZCounts: a.z.Signed(),
		RPM:     uint16(a.rpmHi)<<8 | uint16(a.rpmLo),
	}
}
