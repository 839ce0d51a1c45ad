package hosttransport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/gousb"

	"github.com/tcl125/fredbridge/internal/wire"
)

var logger = slog.Default().With("component", "hosttransport")

// Default device identity, per the USB descriptor table.
const (
	DefaultVID = 0x2E8A
	DefaultPID = 0x000A
)

const (
	transactDeadline = 500 * time.Millisecond
	readTimeout      = 250 * time.Millisecond
)

// ErrNoBulkInterface is returned when no interface on the device exposes
// a bulk IN + bulk OUT endpoint pair.
var ErrNoBulkInterface = errors.New("hosttransport: no bulk IN/OUT interface found")

// ErrShortWrite is returned when a write transferred fewer than
// wire.PacketSize bytes.
var ErrShortWrite = errors.New("hosttransport: short write")

// ErrInvalidFrame is returned when an IN transfer is not exactly
// wire.PacketSize bytes.
var ErrInvalidFrame = errors.New("hosttransport: invalid frame length")

// USBTransport opens the bridge device by VID/PID and auto-detects the
// bulk IN/OUT pair via the usual gousb context/device/config/interface/
// endpoint open sequence.
type USBTransport struct {
	mu sync.Mutex

	ctx    *gousb.Context
	device *gousb.Device
	config *gousb.Config
	intf   *gousb.Interface
	epOut  *gousb.OutEndpoint
	epIn   *gousb.InEndpoint
}

// Open opens the device identified by vid/pid, claims the first
// interface exposing a bulk IN + bulk OUT pair, and returns a ready
// USBTransport.
func Open(vid, pid gousb.ID) (*USBTransport, error) {
	ctx := gousb.NewContext()

	device, err := ctx.OpenDeviceWithVIDPID(vid, pid)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("open USB device: %w", err)
	}
	if device == nil {
		ctx.Close()
		return nil, fmt.Errorf("USB device not found (VID:0x%04x PID:0x%04x)", vid, pid)
	}
	device.SetAutoDetach(true)

	config, err := device.Config(1)
	if err != nil {
		device.Close()
		ctx.Close()
		return nil, fmt.Errorf("set USB config: %w", err)
	}

	num, setting, inAddr, outAddr, err := findBulkPair(config)
	if err != nil {
		config.Close()
		device.Close()
		ctx.Close()
		return nil, err
	}

	intf, err := config.Interface(num, setting)
	if err != nil {
		config.Close()
		device.Close()
		ctx.Close()
		return nil, fmt.Errorf("claim USB interface: %w", err)
	}

	epOut, err := intf.OutEndpoint(outAddr)
	if err != nil {
		intf.Close()
		config.Close()
		device.Close()
		ctx.Close()
		return nil, fmt.Errorf("open OUT endpoint: %w", err)
	}
	epIn, err := intf.InEndpoint(inAddr)
	if err != nil {
		intf.Close()
		config.Close()
		device.Close()
		ctx.Close()
		return nil, fmt.Errorf("open IN endpoint: %w", err)
	}

	logger.Info("opened USB device", "vid", vid, "pid", pid, "interface", num)
	return &USBTransport{ctx: ctx, device: device, config: config, intf: intf, epOut: epOut, epIn: epIn}, nil
}

// findBulkPair scans every interface/altsetting's endpoint descriptors
// for a bulk IN + bulk OUT pair, returning the first one found.
func findBulkPair(config *gousb.Config) (num, setting int, inAddr, outAddr gousb.EndpointAddress, err error) {
	for _, ifDesc := range config.Desc.Interfaces {
		for _, alt := range ifDesc.AltSettings {
			var in, out gousb.EndpointAddress
			var haveIn, haveOut bool
			for addr, ep := range alt.Endpoints {
				if ep.TransferType != gousb.TransferTypeBulk {
					continue
				}
				if ep.Direction == gousb.EndpointDirectionIn {
					in, haveIn = addr, true
				} else {
					out, haveOut = addr, true
				}
			}
			if haveIn && haveOut {
				return ifDesc.Number, alt.Alternate, in, out, nil
			}
		}
	}
	return 0, 0, 0, 0, ErrNoBulkInterface
}

// Transact writes req as an exact wire.PacketSize write, then reads
// replies (each a per-call readTimeout transfer) until an Ack or Nack
// with a matching seq appears or the overall transactDeadline elapses.
// Concurrent callers are serialized internally.
func (u *USBTransport) Transact(req wire.Packet) ([]wire.Packet, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	enc := req.Encode()
	n, err := u.epOut.Write(enc[:])
	if err != nil {
		logger.Error("USB write failed", "seq", req.Seq, "err", err)
		return nil, fmt.Errorf("USB write: %w", err)
	}
	if n != wire.PacketSize {
		logger.Error("USB short write", "seq", req.Seq, "n", n)
		return nil, ErrShortWrite
	}

	deadline := time.Now().Add(transactDeadline)
	var replies []wire.Packet
	for time.Now().Before(deadline) {
		pkt, err := u.readPacket()
		if err != nil {
			logger.Error("USB read failed", "seq", req.Seq, "err", err)
			return replies, err
		}
		replies = append(replies, pkt)
		if pkt.Seq == req.Seq && (pkt.MsgType == wire.Ack || pkt.MsgType == wire.Nack) {
			return replies, nil
		}
	}
	return replies, nil
}

// readPacket performs one bulk IN transfer bounded by readTimeout and
// decodes it, rejecting any transfer that is not exactly wire.PacketSize
// bytes.
func (u *USBTransport) readPacket() (wire.Packet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
	defer cancel()

	buf := make([]byte, wire.PacketSize)
	n, err := u.epIn.ReadContext(ctx, buf)
	if err != nil {
		return wire.Packet{}, fmt.Errorf("USB read: %w", err)
	}
	if n != wire.PacketSize {
		return wire.Packet{}, ErrInvalidFrame
	}
	return wire.Decode(buf)
}

// Close releases the interface, config, device and context, in that
// order.
func (u *USBTransport) Close() error {
	if u.intf != nil {
		u.intf.Close()
	}
	if u.config != nil {
		u.config.Close()
	}
	if u.device != nil {
		u.device.Close()
	}
	if u.ctx != nil {
		u.ctx.Close()
	}
	logger.Info("closed USB device")
	return nil
}
