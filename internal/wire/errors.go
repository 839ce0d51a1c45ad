package wire

// DecodeError is the fixed decode-failure taxonomy. Each carries no payload
// beyond its identity — the dispatcher only needs to distinguish cases, not
// explain them.
type DecodeError string

const (
	ErrBadMagic       DecodeError = "wire: bad magic"
	ErrBadVersion     DecodeError = "wire: bad version"
	ErrPayloadLen     DecodeError = "wire: payload_len exceeds 20"
	ErrUnknownMsgType DecodeError = "wire: unknown msg_type"
	ErrBadCRC         DecodeError = "wire: bad crc"
)

func (e DecodeError) Error() string { return string(e) }
