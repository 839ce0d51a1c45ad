// Package hosttransport implements the host side of the USB link: a
// shared Transact contract backed either by an in-process mock bridge or
// a real USB bulk connection to the device.
package hosttransport

import "github.com/tcl125/fredbridge/internal/wire"

// Transport is the contract both host backends implement.
type Transport interface {
	// Transact writes req and collects every reply the device sends
	// back for it.
	Transact(req wire.Packet) ([]wire.Packet, error)

	// Close releases any underlying resources (USB handles, etc).
	Close() error
}
