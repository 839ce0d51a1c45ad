package wire

import "encoding/binary"

const (
	magicByte   byte = 0xA5
	versionByte byte = 0x01

	// PacketSize is the fixed on-wire size of every packet.
	PacketSize = 32

	// MaxPayload is the largest payload_len a packet may declare.
	MaxPayload = 20
)

// Packet is the in-memory form of a 32-byte wire packet. Payload always
// carries a full 20-byte buffer; PayloadLen selects the semantically used
// prefix.
type Packet struct {
	MsgType    MsgType
	Seq        uint16
	PayloadLen uint8
	Payload    [MaxPayload]byte
}

// newPacket builds a Packet from a msg type, seq and payload slice. It
// panics if payload is longer than MaxPayload — factories must never be
// able to produce a wire-invalid packet.
func newPacket(mt MsgType, seq uint16, payload []byte) Packet {
	if len(payload) > MaxPayload {
		panic("wire: payload exceeds 20 bytes")
	}
	var p Packet
	p.MsgType = mt
	p.Seq = seq
	p.PayloadLen = uint8(len(payload))
	copy(p.Payload[:], payload)
	return p
}

// Encode serializes p into the fixed 32-byte wire layout.
func (p Packet) Encode() [PacketSize]byte {
	var buf [PacketSize]byte
	buf[0] = magicByte
	buf[1] = versionByte
	buf[2] = byte(p.MsgType)
	buf[3] = p.PayloadLen
	binary.LittleEndian.PutUint16(buf[4:6], p.Seq)
	// buf[6:8] reserved, left zero
	copy(buf[8:28], p.Payload[:])
	crc := crc32IEEE(buf[:28])
	binary.LittleEndian.PutUint32(buf[28:32], crc)
	return buf
}

// Decode parses a 32-byte wire frame into a Packet, validating magic,
// version, payload length, msg type and CRC in that order.
func Decode(raw []byte) (Packet, error) {
	if len(raw) < PacketSize {
		return Packet{}, ErrBadCRC
	}
	if raw[0] != magicByte {
		return Packet{}, ErrBadMagic
	}
	if raw[1] != versionByte {
		return Packet{}, ErrBadVersion
	}
	payloadLen := raw[3]
	if payloadLen > MaxPayload {
		return Packet{}, ErrPayloadLen
	}
	if !knownMsgType(raw[2]) {
		return Packet{}, ErrUnknownMsgType
	}
	wantCRC := crc32IEEE(raw[:28])
	gotCRC := binary.LittleEndian.Uint32(raw[28:32])
	if wantCRC != gotCRC {
		return Packet{}, ErrBadCRC
	}

	var p Packet
	p.MsgType = MsgType(raw[2])
	p.PayloadLen = payloadLen
	p.Seq = binary.LittleEndian.Uint16(raw[4:6])
	copy(p.Payload[:], raw[8:28])
	return p, nil
}
