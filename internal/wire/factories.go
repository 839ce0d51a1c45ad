package wire

import "encoding/binary"

// PingPacket builds a Ping request (H->D, empty payload).
func PingPacket(seq uint16) Packet {
	return newPacket(Ping, seq, nil)
}

// TelemetrySetPacket builds a TelemetrySet request (H->D).
func TelemetrySetPacket(seq uint16, enable bool, periodMs uint16) Packet {
	payload := make([]byte, 3)
	if enable {
		payload[0] = 1
	}
	binary.LittleEndian.PutUint16(payload[1:3], periodMs)
	return newPacket(TelemetrySet, seq, payload)
}

// CaptureSetPacket builds a CaptureSet request (H->D).
func CaptureSetPacket(seq uint16, enable bool) Packet {
	payload := make([]byte, 1)
	if enable {
		payload[0] = 1
	}
	return newPacket(CaptureSet, seq, payload)
}

// SnapshotReqPacket builds a SnapshotReq request (H->D, empty payload).
func SnapshotReqPacket(seq uint16) Packet {
	return newPacket(SnapshotReq, seq, nil)
}

// AckPacket builds an Ack reply (D->H).
func AckPacket(seq uint16, ackedType byte, status byte) Packet {
	return newPacket(Ack, seq, []byte{ackedType, status})
}

// NackPacket builds a Nack reply (D->H).
func NackPacket(seq uint16, rejectedType byte, reason byte) Packet {
	return newPacket(Nack, seq, []byte{rejectedType, reason})
}

// TelemetryPacket builds a Telemetry event (D->H).
//
// Payload layout: tick:4, x_counts:4 (signed), z_counts:4 (signed), rpm:2,
// flags:1, pad:1 — 16 bytes total.
func TelemetryPacket(seq uint16, tick uint32, xCounts, zCounts int32, rpm uint16, flags byte) Packet {
	payload := make([]byte, 16)
	binary.LittleEndian.PutUint32(payload[0:4], tick)
	binary.LittleEndian.PutUint32(payload[4:8], uint32(xCounts))
	binary.LittleEndian.PutUint32(payload[8:12], uint32(zCounts))
	binary.LittleEndian.PutUint16(payload[12:14], rpm)
	payload[14] = flags
	payload[15] = 0
	return newPacket(Telemetry, seq, payload)
}

// HealthPacket builds a Health event (D->H).
func HealthPacket(seq uint16, txTimeouts, rxTimeouts, busCycles uint32) Packet {
	payload := make([]byte, 12)
	binary.LittleEndian.PutUint32(payload[0:4], txTimeouts)
	binary.LittleEndian.PutUint32(payload[4:8], rxTimeouts)
	binary.LittleEndian.PutUint32(payload[8:12], busCycles)
	return newPacket(Health, seq, payload)
}

// TraceSamplePacket builds a TraceSample event (D->H).
func TraceSamplePacket(seq uint16, tick uint32, sampleBits uint32) Packet {
	payload := make([]byte, 8)
	binary.LittleEndian.PutUint32(payload[0:4], tick)
	binary.LittleEndian.PutUint32(payload[4:8], sampleBits)
	return newPacket(TraceSample, seq, payload)
}

// DecodeTelemetry extracts the Telemetry payload fields from p. The caller
// is responsible for checking p.MsgType == Telemetry.
func DecodeTelemetry(p Packet) (tick uint32, xCounts, zCounts int32, rpm uint16, flags byte) {
	tick = binary.LittleEndian.Uint32(p.Payload[0:4])
	xCounts = int32(binary.LittleEndian.Uint32(p.Payload[4:8]))
	zCounts = int32(binary.LittleEndian.Uint32(p.Payload[8:12]))
	rpm = binary.LittleEndian.Uint16(p.Payload[12:14])
	flags = p.Payload[14]
	return
}

// DecodeHealth extracts the Health payload fields from p.
func DecodeHealth(p Packet) (txTimeouts, rxTimeouts, busCycles uint32) {
	txTimeouts = binary.LittleEndian.Uint32(p.Payload[0:4])
	rxTimeouts = binary.LittleEndian.Uint32(p.Payload[4:8])
	busCycles = binary.LittleEndian.Uint32(p.Payload[8:12])
	return
}

// DecodeTraceSample extracts the TraceSample payload fields from p.
func DecodeTraceSample(p Packet) (tick uint32, sampleBits uint32) {
	tick = binary.LittleEndian.Uint32(p.Payload[0:4])
	sampleBits = binary.LittleEndian.Uint32(p.Payload[4:8])
	return
}
