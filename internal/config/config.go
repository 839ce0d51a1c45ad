// Package config loads host-side bridge configuration from a .env file
// and environment variables, following the project's convention of
// environment overriding file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// BridgeConfig holds everything the host CLI needs to find and talk to
// the device.
type BridgeConfig struct {
	USBVendorID       uint16
	USBProductID      uint16
	TelemetryPeriodMs uint16
	DiscoverTimeoutMs uint16
	StatusAPIAddr     string
}

// DefaultBridgeConfig matches the USB descriptor table and the
// BridgeService's default telemetry period.
func DefaultBridgeConfig() BridgeConfig {
	return BridgeConfig{
		USBVendorID:       0x2E8A,
		USBProductID:      0x000A,
		TelemetryPeriodMs: 100,
		DiscoverTimeoutMs: 2000,
		StatusAPIAddr:     ":8723",
	}
}

var (
	bridgeConfig *BridgeConfig
	loaded       bool
)

// LoadBridgeConfig loads a .env file from the project root (if present),
// then applies any FRED_* environment variable overrides, caching the
// result for subsequent calls.
func LoadBridgeConfig() (*BridgeConfig, error) {
	if bridgeConfig != nil && loaded {
		return bridgeConfig, nil
	}

	cfg := DefaultBridgeConfig()

	envPath := filepath.Join(findProjectRoot(), ".env")
	if data, err := os.ReadFile(envPath); err == nil {
		parseEnvFile(string(data), &cfg)
	}
	applyEnvOverrides(&cfg)

	bridgeConfig = &cfg
	loaded = true
	return bridgeConfig, nil
}

func parseEnvFile(content string, cfg *BridgeConfig) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		setField(cfg, strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	}
}

func applyEnvOverrides(cfg *BridgeConfig) {
	for _, key := range []string{"FRED_USB_VENDOR_ID", "FRED_USB_PRODUCT_ID", "FRED_TELEMETRY_PERIOD_MS", "FRED_DISCOVER_TIMEOUT_MS", "FRED_STATUS_API_ADDR"} {
		if v := os.Getenv(key); v != "" {
			setField(cfg, key, v)
		}
	}
}

func setField(cfg *BridgeConfig, key, value string) {
	switch key {
	case "FRED_USB_VENDOR_ID":
		if n, err := strconv.ParseUint(value, 0, 16); err == nil {
			cfg.USBVendorID = uint16(n)
		}
	case "FRED_USB_PRODUCT_ID":
		if n, err := strconv.ParseUint(value, 0, 16); err == nil {
			cfg.USBProductID = uint16(n)
		}
	case "FRED_TELEMETRY_PERIOD_MS":
		if n, err := strconv.ParseUint(value, 10, 16); err == nil {
			cfg.TelemetryPeriodMs = uint16(n)
		}
	case "FRED_DISCOVER_TIMEOUT_MS":
		if n, err := strconv.ParseUint(value, 10, 16); err == nil {
			cfg.DiscoverTimeoutMs = uint16(n)
		}
	case "FRED_STATUS_API_ADDR":
		cfg.StatusAPIAddr = value
	}
}

func findProjectRoot() string {
	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, ".env")); err == nil {
		return cwd
	}
	for {
		if _, err := os.Stat(filepath.Join(cwd, "go.mod")); err == nil {
			return cwd
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			return cwd
		}
		cwd = parent
	}
}
