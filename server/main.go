package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/derktes/ir-pulse-codec/server/server"
)

type fileConfig struct {
	ListenAddr string `toml:"listen_addr"`
	Debug      bool   `toml:"debug"`
	Pretty     bool   `toml:"pretty"`
}

func loadConfig(path string) (fileConfig, error) {
	cfg := fileConfig{ListenAddr: ":8080"}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load server config: %w", err)
	}
	if !meta.IsDefined("listen_addr") {
		cfg.ListenAddr = ":8080"
	}
	return cfg, nil
}

func main() {
	cfgPath := flag.String("config", "", "Path to a TOML config file")
	listen := flag.String("listen", "", "Listen address, overrides the config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	pretty := flag.Bool("pretty", false, "Human readable console logging")
	flag.Parse()

	cfg := fileConfig{ListenAddr: ":8080"}
	if *cfgPath != "" {
		var err error
		cfg, err = loadConfig(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	cfg.Debug = cfg.Debug || *debug
	cfg.Pretty = cfg.Pretty || *pretty

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	var out = os.Stderr
	var log zerolog.Logger
	if cfg.Pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(level).With().Timestamp().Logger()
	} else {
		log = zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	if err := server.Start(server.Config{ListenAddr: cfg.ListenAddr, Log: log}); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
