package collector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config drives one collector instance.
type Config struct {
	CollectorID string
	SerialPort  string
	BaudRate    int
	ServerAddr  string
	// Resolution is the microseconds per capture tick, applied when the
	// firmware does not report one per frame.
	Resolution int
}

func DefaultConfig() Config {
	return Config{
		BaudRate:   9600,
		ServerAddr: "localhost:8080",
		Resolution: 1,
	}
}

type fileConfig struct {
	CollectorID string `toml:"collector_id"`
	SerialPort  string `toml:"serial_port"`
	BaudRate    int    `toml:"baud_rate"`
	ServerAddr  string `toml:"server_addr"`
	Resolution  int    `toml:"resolution"`
}

// LoadConfig reads a TOML config file, leaving defaults in place for keys
// the file does not define.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load collector config: %w", err)
	}
	if meta.IsDefined("collector_id") {
		cfg.CollectorID = strings.TrimSpace(raw.CollectorID)
	}
	if meta.IsDefined("serial_port") {
		cfg.SerialPort = strings.TrimSpace(raw.SerialPort)
	}
	if meta.IsDefined("baud_rate") {
		cfg.BaudRate = raw.BaudRate
	}
	if meta.IsDefined("server_addr") {
		cfg.ServerAddr = strings.TrimSpace(raw.ServerAddr)
	}
	if meta.IsDefined("resolution") {
		cfg.Resolution = raw.Resolution
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.CollectorID == "" {
		return errors.New("collector id not specified")
	}
	if c.SerialPort == "" {
		return errors.New("serial port not specified")
	}
	if c.BaudRate <= 0 {
		return errors.New("baud rate must be positive")
	}
	if c.Resolution <= 0 {
		return errors.New("resolution must be positive")
	}
	return nil
}
