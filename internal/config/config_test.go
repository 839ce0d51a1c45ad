package config

import "testing"

func TestDefaultBridgeConfig(t *testing.T) {
	cfg := DefaultBridgeConfig()

	if cfg.USBVendorID != 0x2E8A {
		t.Errorf("USBVendorID = 0x%04X, want 0x2E8A", cfg.USBVendorID)
	}
	if cfg.USBProductID != 0x000A {
		t.Errorf("USBProductID = 0x%04X, want 0x000A", cfg.USBProductID)
	}
	if cfg.TelemetryPeriodMs != 100 {
		t.Errorf("TelemetryPeriodMs = %d, want 100", cfg.TelemetryPeriodMs)
	}
}

func TestSetFieldParsesHexAndDecimal(t *testing.T) {
	cfg := DefaultBridgeConfig()

	setField(&cfg, "FRED_USB_VENDOR_ID", "0x1234")
	if cfg.USBVendorID != 0x1234 {
		t.Errorf("USBVendorID = 0x%04X, want 0x1234", cfg.USBVendorID)
	}

	setField(&cfg, "FRED_TELEMETRY_PERIOD_MS", "25")
	if cfg.TelemetryPeriodMs != 25 {
		t.Errorf("TelemetryPeriodMs = %d, want 25", cfg.TelemetryPeriodMs)
	}

	setField(&cfg, "FRED_STATUS_API_ADDR", ":9000")
	if cfg.StatusAPIAddr != ":9000" {
		t.Errorf("StatusAPIAddr = %s, want :9000", cfg.StatusAPIAddr)
	}
}

func TestParseEnvFileSkipsCommentsAndBlankLines(t *testing.T) {
	cfg := DefaultBridgeConfig()
	parseEnvFile("# a comment\n\nFRED_TELEMETRY_PERIOD_MS=50\n", &cfg)
	if cfg.TelemetryPeriodMs != 50 {
		t.Errorf("TelemetryPeriodMs = %d, want 50", cfg.TelemetryPeriodMs)
	}
}

func TestSetFieldIgnoresUnparseableNumbers(t *testing.T) {
	cfg := DefaultBridgeConfig()
	before := cfg.USBVendorID
	setField(&cfg, "FRED_USB_VENDOR_ID", "not-a-number")
	if cfg.USBVendorID != before {
		t.Errorf("USBVendorID changed on bad input: got 0x%04X, want unchanged 0x%04X", cfg.USBVendorID, before)
	}
}
