package collector

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collector.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
collector_id = "livingroom"
serial_port = "/dev/ttyUSB0"
baud_rate = 115200
server_addr = "frames.local:9090"
resolution = 20
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CollectorID != "livingroom" {
		t.Errorf("CollectorID = %q, want %q", cfg.CollectorID, "livingroom")
	}
	if cfg.SerialPort != "/dev/ttyUSB0" {
		t.Errorf("SerialPort = %q, want %q", cfg.SerialPort, "/dev/ttyUSB0")
	}
	if cfg.BaudRate != 115200 {
		t.Errorf("BaudRate = %d, want 115200", cfg.BaudRate)
	}
	if cfg.ServerAddr != "frames.local:9090" {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr, "frames.local:9090")
	}
	if cfg.Resolution != 20 {
		t.Errorf("Resolution = %d, want 20", cfg.Resolution)
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
collector_id = "livingroom"
serial_port = "/dev/ttyUSB0"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultConfig()
	if cfg.BaudRate != def.BaudRate {
		t.Errorf("BaudRate = %d, want default %d", cfg.BaudRate, def.BaudRate)
	}
	if cfg.ServerAddr != def.ServerAddr {
		t.Errorf("ServerAddr = %q, want default %q", cfg.ServerAddr, def.ServerAddr)
	}
	if cfg.Resolution != def.Resolution {
		t.Errorf("Resolution = %d, want default %d", cfg.Resolution, def.Resolution)
	}
}

func TestLoadConfigRejectsMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CollectorID = "livingroom"
	cfg.SerialPort = "/dev/ttyUSB0"
	if err := cfg.validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	for name, mutate := range map[string]func(*Config){
		"missing collector id": func(c *Config) { c.CollectorID = "" },
		"missing serial port":  func(c *Config) { c.SerialPort = "" },
		"zero baud rate":       func(c *Config) { c.BaudRate = 0 },
		"zero resolution":      func(c *Config) { c.Resolution = 0 },
	} {
		bad := cfg
		mutate(&bad)
		if err := bad.validate(); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
