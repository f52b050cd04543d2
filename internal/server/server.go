package server

import (
	"errors"
	"fmt"
	"net"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/junwei890/http-1.0/internal/request"
	"github.com/junwei890/http-1.0/internal/response"
)

var ErrBind = errors.New("couldn't setup a listener")

// Handler answers one parsed request. A returned error is logged, the
// connection is closed either way.
type Handler func(w *response.Writer, r *request.Request) error

type Server struct {
	handler  Handler
	listener net.Listener
	spawner  Spawner
	logger   zerolog.Logger
	closed   atomic.Bool
	quit     chan struct{}
	done     chan struct{}
}

type Option func(*Server)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxConns caps the number of connections handled at once, n <= 0 means unbounded.
// While the cap is reached the accept loop waits for a free slot or Close.
func WithMaxConns(n int) Option {
	return func(s *Server) {
		s.spawner = NewSpawner(n)
	}
}

func (s *Server) handle(conn net.Conn) {
	logger := s.logger.With().Str("remote", conn.RemoteAddr().String()).Logger()

	// the socket is released on every path, panics included
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warn().Err(err).Msg("couldn't close connection")
		}
		logger.Debug().Msg("connection closed")
	}()
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")
		}
	}()

	req, err := request.RequestParser(conn)
	if err != nil {
		// the stream may be unusable, close without answering
		logger.Warn().Err(err).Msg("couldn't parse request")
		return
	}

	logger.Info().
		Str("method", req.RequestLine.Method).
		Str("target", req.RequestLine.RequestTarget).
		Str("version", req.RequestLine.HttpVersion).
		Msg("request received")
	logger.Debug().Object("headers", req.Headers).Msg("request headers")

	if err := s.handler(response.NewWriter(conn), req); err != nil {
		logger.Error().Err(err).Str("target", req.RequestLine.RequestTarget).Msg("couldn't complete response")
	}
}

func (s *Server) listen() {
	defer close(s.done)

	var delay time.Duration
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// distinguishes between graceful shutdown and unexpected errors
			if s.closed.Load() {
				return
			}

			// back off so resource exhaustion doesn't spin the loop
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay = min(2*delay, time.Second)
			}
			s.logger.Error().Err(err).Dur("retry_in", delay).Msg("couldn't accept connection")
			select {
			case <-time.After(delay):
			case <-s.quit:
				return
			}
			continue
		}
		delay = 0
		s.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("connection accepted")

		// handle concurrently so server can accept more connections
		if !s.spawner.Go(s.quit, func() { s.handle(conn) }) {
			// shut down while waiting for a free slot
			if err := conn.Close(); err != nil {
				s.logger.Warn().Err(err).Msg("couldn't close connection")
			}
			return
		}
	}
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops accepting connections. Connections already being handled run to completion.
func (s *Server) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	close(s.quit)

	if err := s.listener.Close(); err != nil {
		return fmt.Errorf("couldn't shutdown server properly: %w", err)
	}
	<-s.done

	return nil
}

func Serve(port int, handler Handler, opts ...Option) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("%w on port %d: %w", ErrBind, port, err)
	}

	s := &Server{
		handler:  handler,
		listener: listener,
		spawner:  NewSpawner(0),
		logger:   zerolog.Nop(),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.listen()

	// returns so that server can be stopped using an interrupt or termination
	return s, nil
}
