// CLASSIFICATION: COMMUNITY
// Filename: server.go v0.3
// Author: Lukas Bower
// Date Modified: 2026-10-17
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package devserver serves a directory over HTTP for front-end development.
// Every response carries permissive CORS headers and caching is disabled.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultPort is the port used when none is given.
const DefaultPort = 8000

const defaultShutdownTimeout = time.Second

// Logger abstracts logging for the server. *logrus.Logger and
// *logrus.Entry satisfy it.
type Logger interface {
	WithFields(fields logrus.Fields) *logrus.Entry
}

// Config holds server configuration.
type Config struct {
	// Bind is the host to listen on. Empty means all interfaces.
	Bind string
	// Port 0 picks a free port.
	Port int
	// Root is the directory served.
	Root string
	// AccessLog, if set, receives one line per request.
	AccessLog string
	// RateLimit caps requests per second. Zero disables limiting.
	RateLimit rate.Limit
	RateBurst int
	// Metrics, if set, records every request.
	Metrics *Metrics
	// ShutdownTimeout bounds how long in-flight requests may run after
	// cancellation.
	ShutdownTimeout time.Duration
}

// Server wraps the HTTP server and router.
type Server struct {
	cfg       Config
	log       Logger
	router    *chi.Mux
	limiter   *rate.Limiter
	accessLog *accessLog
}

// New validates cfg and returns an initialized server.
func New(cfg Config, log Logger) (*Server, error) {
	if cfg.Root == "" {
		return nil, ErrNoRoot
	}
	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s: %w", cfg.Root, ErrNotDir)
	}
	if cfg.Port < 0 || cfg.Port > MaxPort {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPort, cfg.Port)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Server{cfg: cfg, log: log}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(cfg.RateLimit, burst)
	}
	if cfg.AccessLog != "" {
		al, err := openAccessLog(cfg.AccessLog)
		if err != nil {
			return nil, err
		}
		s.accessLog = al
	}
	s.router = s.routes()
	return s, nil
}

// Router returns the full handler chain, useful for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Addr returns the listening address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Bind, strconv.Itoa(s.cfg.Port))
}

// Listen binds the configured address. A port held by another socket is
// reported as a *BindError.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		if isAddrInUse(err) {
			return nil, &BindError{Addr: s.Addr(), Port: s.cfg.Port, Err: err}
		}
		return nil, fmt.Errorf("listen %s: %w", s.Addr(), err)
	}
	return ln, nil
}

// Serve accepts connections on ln until ctx is done. The listener is closed
// before Serve returns. A cancelled ctx is a clean stop and returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler: s.router,
		// OPTIONS * goes through the CORS middleware as well.
		DisableGeneralOptionsHandler: true,
	}
	s.log.WithFields(logrus.Fields{
		"addr": ln.Addr().String(),
		"root": s.cfg.Root,
	}).Debug("serving")
	err := serveUntilDone(ctx, srv, ln, s.cfg.ShutdownTimeout)
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return err
}

// Start listens on Addr and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Close releases the access log. It is safe to call more than once.
func (s *Server) Close() error {
	return s.accessLog.Close()
}

func serveUntilDone(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	ctxTo, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctxTo); err != nil {
		srv.Close()
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
