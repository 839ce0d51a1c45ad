// Package wire implements the 32-byte framed packet protocol shared by the
// FRED bridge firmware and its host companion.
package wire

// MsgType is the one-byte wire discriminant. Values are part of the wire
// format and must never be renumbered.
type MsgType byte

const (
	Ping         MsgType = 0x01
	TelemetrySet MsgType = 0x10
	UnitCfg      MsgType = 0x11
	SnapshotReq  MsgType = 0x12
	CaptureSet   MsgType = 0x13

	Ack         MsgType = 0x80
	Nack        MsgType = 0x81
	Telemetry   MsgType = 0x90
	Health      MsgType = 0x91
	TraceSample MsgType = 0x92
)

func (m MsgType) String() string {
	switch m {
	case Ping:
		return "Ping"
	case TelemetrySet:
		return "TelemetrySet"
	case UnitCfg:
		return "UnitCfg"
	case SnapshotReq:
		return "SnapshotReq"
	case CaptureSet:
		return "CaptureSet"
	case Ack:
		return "Ack"
	case Nack:
		return "Nack"
	case Telemetry:
		return "Telemetry"
	case Health:
		return "Health"
	case TraceSample:
		return "TraceSample"
	default:
		return "Unknown"
	}
}

// knownMsgType reports whether b is one of the defined MsgType values.
func knownMsgType(b byte) bool {
	switch MsgType(b) {
	case Ping, TelemetrySet, UnitCfg, SnapshotReq, CaptureSet,
		Ack, Nack, Telemetry, Health, TraceSample:
		return true
	default:
		return false
	}
}
