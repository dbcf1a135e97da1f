package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/derktes/ir-pulse-codec/codec"
)

// Config carries the runtime settings of the frame server.
type Config struct {
	ListenAddr string
	Log        zerolog.Logger
}

// The database is owned by a relay goroutine and handed to one handler at
// a time: receive from dbLock to borrow it, send to dbUnlock to return it.
var (
	dbLock        chan *frameDatabase
	dbUnlock      chan *frameDatabase
	logger        zerolog.Logger
	toggleSession = codec.NewToggleSession()
)

func initState(log zerolog.Logger) {
	logger = log
	dbLock = make(chan *frameDatabase)
	dbUnlock = make(chan *frameDatabase)
	go func() {
		db := newDatabase(newDispatcher(log))
		for {
			dbLock <- db
			db = <-dbUnlock
		}
	}()
}

func routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ir/frame", frameQueryHandler)
	mux.HandleFunc("/ir/frames/", frameBrowseHandler)
	mux.HandleFunc("/ir/frame/stream", frameStreamHandler)
	mux.HandleFunc("/ir/collectors", collectorQueryHandler)
	mux.HandleFunc("/ir/decode", decodeHandler)
	mux.HandleFunc("/ir/encode", encodeHandler)
	return mux
}

// Start sets up the url mapping and runs the HTTP server until
// interrupted.
func Start(cfg Config) error {
	initState(cfg.Log)

	srv := http.Server{Addr: cfg.ListenAddr, Handler: routes()}
	srv.RegisterOnShutdown(func() {
		logger.Info().Msg("shutting down server")
	})
	go func() {
		intr := make(chan os.Signal, 1)
		signal.Notify(intr, os.Interrupt)
		<-intr
		srv.Shutdown(context.Background())
	}()

	logger.Info().Str("addr", cfg.ListenAddr).Msg("server started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
