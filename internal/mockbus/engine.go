// Package mockbus synthesises deterministic DRO bus traffic in the absence
// of real hardware, for local development and for the mock transport.
package mockbus

// Telemetry is the engine's current synthetic DRO reading.
type Telemetry struct {
	XCounts int32
	ZCounts int32
	RPM     uint16
}

// Engine is a deterministic source of synthetic bus traffic. Its telemetry
// is a pure function of tick, so it is reproducible across runs.
type Engine struct {
	tick      uint32
	telemetry Telemetry
}

// Tick returns the engine's current tick.
func (e *Engine) Tick() uint32 { return e.tick }

// Telemetry returns the engine's current synthetic reading.
func (e *Engine) Telemetry() Telemetry { return e.telemetry }

// StepTelemetry advances tick by one and recomputes telemetry from it.
func (e *Engine) StepTelemetry() {
	e.tick++
	phase := int32(e.tick >> 4)
	xCounts := (phase & 0x03FF) - 0x0200
	zCounts := ((phase * 3) & 0x03FF) - 0x0200
	rpm := 800 + (uint16(phase)&0x00FF)*5
	e.telemetry = Telemetry{XCounts: xCounts, ZCounts: zCounts, RPM: rpm}
}

// Reply is the {status, response} pair a bus command yields.
type Reply struct {
	StatusFCF0   byte
	ResponseFCF1 byte
}

// OnCommand derives the response byte for cmd from current telemetry,
// following the same cadence mapping as the DRO assembler. Status is
// always 0x00 ("ready"); any cmd not part of the cadence returns 0x00.
func (e *Engine) OnCommand(cmd byte) Reply {
	t := e.telemetry
	xMag := uint32(abs32(t.XCounts))
	zMag := uint32(abs32(t.ZCounts))

	var resp byte
	switch cmd {
	case 0x03:
		resp = signByte(t.XCounts)
	case 0x02:
		resp = byte(xMag >> 16)
	case 0x01:
		resp = byte(xMag >> 8)
	case 0x00:
		resp = byte(xMag)
	case 0x07:
		resp = signByte(t.ZCounts)
	case 0x06:
		resp = byte(zMag >> 16)
	case 0x05:
		resp = byte(zMag >> 8)
	case 0x04:
		resp = byte(zMag)
	case 0x0D:
		resp = byte(t.RPM >> 8)
	case 0x0C:
		resp = byte(t.RPM)
	default:
		resp = 0x00
	}
	return Reply{StatusFCF0: 0x00, ResponseFCF1: resp}
}

func signByte(v int32) byte {
	if v < 0 {
		return 0x01
	}
	return 0x00
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
