// Package diagnostics runs host-side checks describing USB device
// presence, interface claim state, Ping connectivity, and the device's
// current telemetry snapshot. It does not read the device's Health
// counters (tx/rx timeouts, bus cycles).
package diagnostics

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/gousb"

	"github.com/tcl125/fredbridge/internal/hosttransport"
	"github.com/tcl125/fredbridge/internal/wire"
)

// Result is one diagnostic phase's outcome.
type Result struct {
	Phase     string                 `json:"phase"`
	Timestamp string                 `json:"timestamp"`
	Success   bool                   `json:"success"`
	Data      map[string]interface{} `json:"data"`
	Errors    []string               `json:"errors,omitempty"`
}

func newResult(phase string) Result {
	return Result{Phase: phase, Timestamp: time.Now().Format(time.RFC3339), Success: true, Data: make(map[string]interface{})}
}

// USBPresence checks whether a device matching vid/pid is enumerated at
// all, without claiming any interface.
func USBPresence(vid, pid gousb.ID) Result {
	r := newResult("usb_presence")

	ctx := gousb.NewContext()
	defer ctx.Close()

	device, err := ctx.OpenDeviceWithVIDPID(vid, pid)
	if err != nil {
		r.Success = false
		r.Errors = append(r.Errors, fmt.Sprintf("open device: %v", err))
		return r
	}
	if device == nil {
		r.Success = false
		r.Data["device_found"] = false
		r.Errors = append(r.Errors, fmt.Sprintf("device not found (VID:0x%04x PID:0x%04x)", vid, pid))
		return r
	}
	defer device.Close()

	r.Data["device_found"] = true
	r.Data["bus"] = device.Desc.Bus
	r.Data["address"] = device.Desc.Address
	return r
}

// InterfaceClaim attempts the full open sequence — config, interface
// claim, bulk endpoint discovery — and reports how far it got.
func InterfaceClaim(vid, pid gousb.ID) Result {
	r := newResult("interface_claim")

	tr, err := hosttransport.Open(vid, pid)
	if err != nil {
		r.Success = false
		r.Errors = append(r.Errors, err.Error())
		return r
	}
	defer tr.Close()

	r.Data["claimed"] = true
	return r
}

// Connectivity sends a Ping over tr and reports whether an Ack arrived.
func Connectivity(tr hosttransport.Transport) Result {
	r := newResult("connectivity")

	replies, err := tr.Transact(wire.PingPacket(1))
	if err != nil {
		r.Success = false
		r.Errors = append(r.Errors, err.Error())
		return r
	}
	if len(replies) != 1 || replies[0].MsgType != wire.Ack {
		r.Success = false
		r.Errors = append(r.Errors, "no Ack received for Ping")
		return r
	}

	r.Data["acked"] = true
	return r
}

// Health sends a SnapshotReq and, if a Health packet is ever needed, a
// caller can request one separately; this phase just confirms the
// request/reply round trip carries the expected shape.
func Health(tr hosttransport.Transport) Result {
	r := newResult("health")

	replies, err := tr.Transact(wire.SnapshotReqPacket(2))
	if err != nil {
		r.Success = false
		r.Errors = append(r.Errors, err.Error())
		return r
	}
	if len(replies) != 2 || replies[0].MsgType != wire.Telemetry {
		r.Success = false
		r.Errors = append(r.Errors, "snapshot request did not yield a telemetry reply")
		return r
	}

	tick, xCounts, zCounts, rpm, flags := wire.DecodeTelemetry(replies[0])
	r.Data["tick"] = tick
	r.Data["x_counts"] = xCounts
	r.Data["z_counts"] = zCounts
	r.Data["rpm"] = rpm
	r.Data["telemetry_enabled"] = flags&0x01 != 0
	return r
}

// RunAll runs every phase in order against a live USB transport, given
// the device identity. USBPresence and InterfaceClaim always run;
// Connectivity and Health run only if the device can be opened.
func RunAll(vid, pid gousb.ID) []Result {
	results := []Result{USBPresence(vid, pid), InterfaceClaim(vid, pid)}

	tr, err := hosttransport.Open(vid, pid)
	if err != nil {
		return results
	}
	defer tr.Close()

	results = append(results, Connectivity(tr), Health(tr))
	return results
}

// PrintJSON prints results as indented JSON.
func PrintJSON(results []Result) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error marshaling results: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// PrintText prints results as human-readable text.
func PrintText(results []Result) {
	for _, r := range results {
		fmt.Printf("\n%s\n", strings.Repeat("=", 50))
		fmt.Printf("Phase: %s\n", r.Phase)
		fmt.Printf("Success: %v\n", r.Success)
		fmt.Println(strings.Repeat("-", 50))
		for key, value := range r.Data {
			fmt.Printf("%s: %v\n", key, value)
		}
		for _, e := range r.Errors {
			fmt.Printf("  error: %s\n", e)
		}
	}
}
