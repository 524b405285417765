// Package config holds the on-disk configuration for lxpclient-based tools
// (cmd/lxpctl and any embedder): which transport to dial, its connection
// parameters, and logging/scan defaults. Grounded on the teacher's
// scheduler/config.go: JSON tags, a DefaultConfig constructor, Load/Save
// helpers, a Validate pass, and the time.Duration string-alias
// Marshal/UnmarshalJSON pattern for human-readable config files.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Config is the top-level configuration for a single device connection plus
// the ambient logging and scan defaults shared across lxpclient commands.
type Config struct {
	// Transport selects which of the three transports to dial: "cloud",
	// "modbus", or "dongle".
	Transport string `json:"transport"`

	// Family overrides automatic device-type-code detection when non-empty.
	// One of "pv_series", "lxp_eu", "flexboss", "sna", "gridboss_mid".
	Family string `json:"family,omitempty"`

	// ExpectedSerial, if set, is checked against the device's reported
	// serial on connect; a mismatch produces a warning, not a failure.
	ExpectedSerial string `json:"expected_serial,omitempty"`

	// Cloud transport settings.
	CloudAccount  string `json:"cloud_account,omitempty"`
	CloudPassword string `json:"cloud_password,omitempty"`
	CloudBaseURL  string `json:"cloud_base_url,omitempty"`

	// Modbus-TCP transport settings.
	ModbusHost    string        `json:"modbus_host,omitempty"`
	ModbusPort    int           `json:"modbus_port,omitempty"`
	ModbusUnitID  int           `json:"modbus_unit_id,omitempty"`
	ModbusTimeout time.Duration `json:"modbus_timeout,omitempty"`

	// Dongle transport settings.
	DongleHost          string        `json:"dongle_host,omitempty"`
	DonglePort          int           `json:"dongle_port,omitempty"`
	DongleSerial        string        `json:"dongle_serial,omitempty"`
	DongleInverterSerial string       `json:"dongle_inverter_serial,omitempty"`
	DongleTimeout       time.Duration `json:"dongle_timeout,omitempty"`

	// LAN scanner defaults (C8/C9).
	ScanNetwork      string  `json:"scan_network,omitempty"`
	ScanTimeout      float64 `json:"scan_timeout,omitempty"`
	ScanConcurrency  int     `json:"scan_concurrency,omitempty"`
	ScanVerifyModbus bool    `json:"scan_verify_modbus"`
	ScanLookupMAC    bool    `json:"scan_lookup_mac"`

	// Logging settings.
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
}

// DefaultConfig returns a Config with the library's documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Transport:        "modbus",
		CloudBaseURL:     "https://monitor.eg4electronics.com",
		ModbusPort:       502,
		ModbusUnitID:     1,
		ModbusTimeout:    5 * time.Second,
		DonglePort:       8000,
		DongleTimeout:    5 * time.Second,
		ScanNetwork:      "192.168.1.0/24",
		ScanTimeout:      2.0,
		ScanConcurrency:  50,
		ScanVerifyModbus: true,
		ScanLookupMAC:    true,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader, starting from
// DefaultConfig so a partial file only overrides what it sets.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	cfg := DefaultConfig()

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a JSON file.
func (c *Config) SaveConfig(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	return c.SaveConfigToWriter(file)
}

// SaveConfigToWriter saves the configuration to an io.Writer.
func (c *Config) SaveConfigToWriter(writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config JSON: %w", err)
	}

	return nil
}

// Validate checks that the configuration is internally consistent and that
// the selected transport has the fields it needs.
func (c *Config) Validate() error {
	validTransports := map[string]bool{"cloud": true, "modbus": true, "dongle": true}
	if !validTransports[c.Transport] {
		return fmt.Errorf("invalid transport: %s, must be one of: cloud, modbus, dongle", c.Transport)
	}

	switch c.Transport {
	case "cloud":
		if c.CloudAccount == "" {
			return fmt.Errorf("cloud_account cannot be empty when transport is cloud")
		}
		if c.CloudPassword == "" {
			return fmt.Errorf("cloud_password cannot be empty when transport is cloud")
		}
		if c.CloudBaseURL == "" {
			return fmt.Errorf("cloud_base_url cannot be empty")
		}
	case "modbus":
		if c.ModbusHost == "" {
			return fmt.Errorf("modbus_host cannot be empty when transport is modbus")
		}
		if c.ModbusPort <= 0 || c.ModbusPort > 65535 {
			return fmt.Errorf("modbus_port must be between 1 and 65535, got: %d", c.ModbusPort)
		}
		if c.ModbusTimeout <= 0 {
			return fmt.Errorf("modbus_timeout must be greater than 0, got: %s", c.ModbusTimeout)
		}
	case "dongle":
		if c.DongleHost == "" {
			return fmt.Errorf("dongle_host cannot be empty when transport is dongle")
		}
		if c.DonglePort <= 0 || c.DonglePort > 65535 {
			return fmt.Errorf("dongle_port must be between 1 and 65535, got: %d", c.DonglePort)
		}
		if c.DongleSerial == "" {
			return fmt.Errorf("dongle_serial cannot be empty when transport is dongle")
		}
		if c.DongleTimeout <= 0 {
			return fmt.Errorf("dongle_timeout must be greater than 0, got: %s", c.DongleTimeout)
		}
	}

	if c.ScanTimeout < 0 {
		return fmt.Errorf("scan_timeout must be non-negative, got: %f", c.ScanTimeout)
	}
	if c.ScanConcurrency < 0 {
		return fmt.Errorf("scan_concurrency must be non-negative, got: %d", c.ScanConcurrency)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level: %s, must be one of: debug, info, warn, error", c.LogLevel)
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format: %s, must be one of: text, json", c.LogFormat)
	}

	return nil
}

// MarshalJSON implements custom JSON marshaling so duration fields render as
// human-readable strings ("5s") instead of nanosecond integers.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		ModbusTimeout string `json:"modbus_timeout,omitempty"`
		DongleTimeout string `json:"dongle_timeout,omitempty"`
	}{
		Alias:         (*Alias)(c),
		ModbusTimeout: c.ModbusTimeout.String(),
		DongleTimeout: c.DongleTimeout.String(),
	})
}

// UnmarshalJSON implements custom JSON unmarshaling to parse duration
// fields from strings like "5s". A duration given as a plain JSON number is
// rejected with a decode error.
func (c *Config) UnmarshalJSON(data []byte) error {
	type Alias Config
	aux := &struct {
		*Alias
		ModbusTimeout string `json:"modbus_timeout"`
		DongleTimeout string `json:"dongle_timeout"`
	}{
		Alias: (*Alias)(c),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if aux.ModbusTimeout != "" {
		if c.ModbusTimeout, err = time.ParseDuration(aux.ModbusTimeout); err != nil {
			return fmt.Errorf("invalid modbus_timeout: %w", err)
		}
	}
	if aux.DongleTimeout != "" {
		if c.DongleTimeout, err = time.ParseDuration(aux.DongleTimeout); err != nil {
			return fmt.Errorf("invalid dongle_timeout: %w", err)
		}
	}

	return nil
}

// String returns a string representation of the config, suitable for debug
// logging (the cloud password is not redacted here; callers logging a
// Config should avoid doing so with cloud credentials populated).
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
