// Package framepipe stands in for the opaque 64-byte USB bulk frame pipe
// between the device-side frame pump and the host, so both sides can be
// exercised without real USB hardware.
package framepipe

import "time"

// Pipe is the minimal I/O surface the frame pump needs: read one inbound
// frame (blocking up to timeout), write one outbound frame.
type Pipe interface {
	// ReadFrame waits up to timeout for an inbound frame. A timeout with
	// no frame is reported as (nil, nil): it is the pump's normal idle
	// case, not an error.
	ReadFrame(timeout time.Duration) ([]byte, error)

	// WriteFrame writes one outbound frame.
	WriteFrame(frame []byte) error
}
