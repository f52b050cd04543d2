package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/junwei890/http-1.0/internal/config"
	"github.com/junwei890/http-1.0/internal/fileserver"
	"github.com/junwei890/http-1.0/internal/server"
	"github.com/junwei890/http-1.0/internal/static"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	resolver, err := static.NewResolver(cfg.Root)
	if err != nil {
		logger.Fatal().Err(err).Msg("couldn't open document root")
	}
	defer resolver.Close()

	srv, err := server.Serve(cfg.Port, fileserver.Handler(resolver), server.WithLogger(logger))
	if err != nil {
		// Fatal exits non-zero
		logger.Fatal().Err(err).Msg("couldn't start server")
	}
	defer srv.Close()

	logger.Info().Str("addr", srv.Addr().String()).Str("root", resolver.Dir()).Msg("server started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("server shutdown")
}
