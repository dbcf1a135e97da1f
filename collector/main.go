package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/derktes/ir-pulse-codec/collector/collector"
)

func main() {
	cfgPath := flag.String("config", "", "Path to a TOML config file")
	serialPort := flag.String("serial", "", "Serial port in the form /dev/xxx")
	baudRate := flag.Int("baud", 0, "Baud rate of the serial port")
	serverAddr := flag.String("server", "", "host:port of the frame server")
	cid := flag.String("collectorId", "", "Id of this collector instance")
	resolution := flag.Int("resolution", 0, "Microseconds per capture tick")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	cfg := collector.DefaultConfig()
	if *cfgPath != "" {
		var err error
		cfg, err = collector.LoadConfig(*cfgPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading config")
		}
	}
	// flags override the config file
	if *serialPort != "" {
		cfg.SerialPort = *serialPort
	}
	if *baudRate > 0 {
		cfg.BaudRate = *baudRate
	}
	if *serverAddr != "" {
		cfg.ServerAddr = *serverAddr
	}
	if *cid != "" {
		cfg.CollectorID = *cid
	}
	if *resolution > 0 {
		cfg.Resolution = *resolution
	}

	if err := collector.Start(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("collector failed")
	}
}
