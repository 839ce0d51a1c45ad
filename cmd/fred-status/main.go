// Command fred-status runs a local HTTP server exposing the bridge's
// latest telemetry/health snapshot as JSON, for tooling that would
// rather poll an HTTP endpoint than speak the USB wire protocol.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gousb"

	"github.com/tcl125/fredbridge/internal/config"
	"github.com/tcl125/fredbridge/internal/hosttransport"
	"github.com/tcl125/fredbridge/internal/statusapi"
)

var (
	transportFlag = flag.String("transport", "usb", "mock|usb")
	addrFlag      = flag.String("addr", "", "listen address, defaults to config")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadBridgeConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fred-status: load config:", err)
		os.Exit(1)
	}

	var tr hosttransport.Transport
	switch *transportFlag {
	case "mock":
		tr = hosttransport.NewMockTransport()
	case "usb":
		tr, err = hosttransport.Open(gousb.ID(cfg.USBVendorID), gousb.ID(cfg.USBProductID))
		if err != nil {
			fmt.Fprintln(os.Stderr, "fred-status: open USB device:", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "fred-status: unknown transport", *transportFlag)
		os.Exit(1)
	}
	defer tr.Close()

	addr := cfg.StatusAPIAddr
	if *addrFlag != "" {
		addr = *addrFlag
	}

	server := statusapi.New(tr)
	stop := make(chan struct{})
	go server.Run(time.Duration(cfg.TelemetryPeriodMs)*time.Millisecond, stop)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	router := server.Router()
	go func() {
		fmt.Printf("fred-status listening on %s\n", addr)
		if err := router.Run(addr); err != nil {
			fmt.Fprintln(os.Stderr, "fred-status: server error:", err)
		}
	}()

	<-sigChan
	close(stop)
}
