package main

import (
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/junwei890/http-1.0/internal/request"
)

const addr = ":42069"

// dumps each request line and its headers, then hangs up without answering
func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	listener, err := net.Listen("tcp", addr) // #nosec G102
	if err != nil {
		logger.Fatal().Err(err).Msg("couldn't setup a listener")
	}
	defer listener.Close()
	logger.Info().Str("addr", addr).Msg("listening for requests")

	for {
		conn, err := listener.Accept()
		if err != nil {
			logger.Error().Err(err).Msg("couldn't accept connection")
			continue
		}
		log := logger.With().Str("remote", conn.RemoteAddr().String()).Logger()

		req, err := request.RequestParser(conn)
		if err != nil {
			log.Warn().Err(err).Msg("couldn't parse request")
		} else {
			log.Info().
				Str("method", req.RequestLine.Method).
				Str("target", req.RequestLine.RequestTarget).
				Str("version", req.RequestLine.HttpVersion).
				Object("headers", req.Headers).
				Msg("request line")
		}

		if err := conn.Close(); err != nil {
			log.Error().Err(err).Msg("couldn't close connection")
		}
	}
}
