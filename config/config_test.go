package config

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModbusHost = "192.168.1.50"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsUnknownTransport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Transport = "telepathy"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown transport")
	}
}

func TestValidateCloudRequiresCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Transport = "cloud"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error: cloud transport needs account/password")
	}
	cfg.CloudAccount = "me@example.com"
	cfg.CloudPassword = "hunter2"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error once credentials are set: %v", err)
	}
}

func TestValidateDongleRequiresSerial(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Transport = "dongle"
	cfg.DongleHost = "192.168.1.60"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error: dongle transport needs dongle_serial")
	}
	cfg.DongleSerial = "BANANA12345"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error once dongle_serial is set: %v", err)
	}
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModbusHost = "192.168.1.50"
	cfg.LogLevel = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestRoundTripJSONPreservesDurations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModbusHost = "192.168.1.50"
	cfg.ModbusTimeout = 7 * time.Second
	cfg.DongleTimeout = 9 * time.Second

	var buf bytes.Buffer
	if err := cfg.SaveConfigToWriter(&buf); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(buf.String(), `"7s"`) {
		t.Errorf("expected human-readable duration in JSON, got: %s", buf.String())
	}

	loaded, err := LoadConfigFromReader(&buf)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ModbusTimeout != 7*time.Second {
		t.Errorf("ModbusTimeout: got %v, want 7s", loaded.ModbusTimeout)
	}
	if loaded.DongleTimeout != 9*time.Second {
		t.Errorf("DongleTimeout: got %v, want 9s", loaded.DongleTimeout)
	}
}

func TestLoadConfigFromReaderAppliesDefaultsForOmittedFields(t *testing.T) {
	reader := strings.NewReader(`{"transport":"modbus","modbus_host":"192.168.1.50"}`)
	cfg, err := LoadConfigFromReader(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ModbusPort != 502 {
		t.Errorf("ModbusPort should keep its default, got %d", cfg.ModbusPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel should keep its default, got %s", cfg.LogLevel)
	}
}
