// Command fred is the host companion CLI for the RP2040 FRED bridge.
//
// Usage:
//
//	fred on|off {mock|usb}
//	fred [-plain] monitor {mock|usb} [N]
//	fred capture-on|capture-off|capture usb
//	fred diag usb
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/gousb"

	"github.com/tcl125/fredbridge/internal/config"
	"github.com/tcl125/fredbridge/internal/diagnostics"
	"github.com/tcl125/fredbridge/internal/hosttransport"
	"github.com/tcl125/fredbridge/internal/tracedecode"
	"github.com/tcl125/fredbridge/internal/tui"
	"github.com/tcl125/fredbridge/internal/wire"
)

var logger = slog.Default().With("component", "fred")

var plain = flag.Bool("plain", false, "print snapshots instead of launching the TUI")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	cmd := args[0]
	rest := args[1:]

	var err error
	switch cmd {
	case "on", "off":
		err = runOnOff(cmd, rest)
	case "monitor":
		err = runMonitor(rest)
	case "capture-on", "capture-off":
		err = runCaptureToggle(cmd, rest)
	case "capture":
		err = runCapture(rest)
	case "diag":
		err = runDiag(rest)
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", "command", cmd, "err", err)
		fmt.Fprintln(os.Stderr, "fred:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fred on|off {mock|usb}")
	fmt.Fprintln(os.Stderr, "       fred [-plain] monitor {mock|usb} [N]")
	fmt.Fprintln(os.Stderr, "       fred capture-on|capture-off|capture usb")
	fmt.Fprintln(os.Stderr, "       fred diag usb")
}

func openTransport(mode string) (hosttransport.Transport, error) {
	switch mode {
	case "mock":
		return hosttransport.NewMockTransport(), nil
	case "usb":
		cfg, _ := config.LoadBridgeConfig()
		return hosttransport.Open(gousb.ID(cfg.USBVendorID), gousb.ID(cfg.USBProductID))
	default:
		return nil, fmt.Errorf("unknown transport %q (want mock|usb)", mode)
	}
}

func runOnOff(cmd string, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%s requires a transport (mock|usb)", cmd)
	}
	tr, err := openTransport(args[0])
	if err != nil {
		return err
	}
	defer tr.Close()

	enable := cmd == "on"
	replies, err := tr.Transact(wire.TelemetrySetPacket(1, enable, 100))
	if err != nil {
		return err
	}
	for _, r := range replies {
		if r.MsgType == wire.Nack {
			return fmt.Errorf("device rejected telemetry_set: reason 0x%02X", r.Payload[1])
		}
	}
	fmt.Printf("telemetry %s\n", map[bool]string{true: "enabled", false: "disabled"}[enable])
	return nil
}

func runMonitor(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("monitor requires a transport (mock|usb)")
	}
	tr, err := openTransport(args[0])
	if err != nil {
		return err
	}
	defer tr.Close()

	n := 0
	if len(args) >= 2 {
		n, _ = strconv.Atoi(args[1])
	}

	if !*plain && n == 0 {
		p := tea.NewProgram(tui.NewModel(tr), tea.WithAltScreen())
		_, err := p.Run()
		return err
	}

	if n == 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		replies, err := tr.Transact(wire.SnapshotReqPacket(uint16(i + 1)))
		if err != nil {
			return err
		}
		for _, r := range replies {
			if r.MsgType == wire.Telemetry {
				tick, x, z, rpm, flags := wire.DecodeTelemetry(r)
				fmt.Printf("tick=%d x=%d z=%d rpm=%d enabled=%v\n", tick, x, z, rpm, flags&0x01 != 0)
			}
		}
	}
	return nil
}

func runCaptureToggle(cmd string, args []string) error {
	if len(args) < 1 || args[0] != "usb" {
		return fmt.Errorf("%s requires the usb transport", cmd)
	}
	tr, err := openTransport("usb")
	if err != nil {
		return err
	}
	defer tr.Close()

	enable := cmd == "capture-on"
	replies, err := tr.Transact(wire.CaptureSetPacket(1, enable))
	if err != nil {
		return err
	}
	for _, r := range replies {
		if r.MsgType == wire.Nack {
			return fmt.Errorf("device rejected capture_set: reason 0x%02X", r.Payload[1])
		}
	}
	fmt.Printf("capture %s\n", map[bool]string{true: "enabled", false: "disabled"}[enable])
	return nil
}

func runCapture(args []string) error {
	if len(args) < 1 || args[0] != "usb" {
		return fmt.Errorf("capture requires the usb transport")
	}
	tr, err := openTransport("usb")
	if err != nil {
		return err
	}
	defer tr.Close()

	if _, err := tr.Transact(wire.CaptureSetPacket(1, true)); err != nil {
		return err
	}
	fmt.Println("capture enabled; press Ctrl+C to stop")

	// The pump finishes writing all replies to a request before it ever
	// writes an unsolicited TraceSample (ordering guarantee, §4.7), so an
	// Ack and its trailing TraceSample can land on the wire back to back.
	// Transact returns the instant it sees the matching Ack, so a sample
	// written right after one ping's Ack is drained as a leading,
	// non-matching reply on the *next* ping rather than being lost —
	// every sample the device emits still surfaces, one ping later.
	var seq uint16 = 1
	for {
		replies, err := tr.Transact(wire.PingPacket(seq))
		if err != nil {
			return err
		}
		seq++
		for _, r := range replies {
			if r.MsgType == wire.TraceSample {
				tick, bits := wire.DecodeTraceSample(r)
				sample := tracedecode.Decode(bits)
				fmt.Printf("tick=%d data=0x%02X addr=0x%02X rnw=%v clk=%v fred_n=%v\n",
					tick, sample.Data, sample.Addr, sample.RnW, sample.Clk, sample.FredN)
			}
		}
	}
}

func runDiag(args []string) error {
	if len(args) < 1 || args[0] != "usb" {
		return fmt.Errorf("diag requires the usb transport")
	}
	cfg, _ := config.LoadBridgeConfig()
	results := diagnostics.RunAll(gousb.ID(cfg.USBVendorID), gousb.ID(cfg.USBProductID))
	diagnostics.PrintText(results)
	return nil
}
