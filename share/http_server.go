package chshare

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/openrport/sysdash/share/logger"
)

// HTTPServer extends net/http Server with a background serve loop
// that can be waited on and shut down gracefully.
type HTTPServer struct {
	*http.Server
	listener net.Listener
	running  chan error
	mu       sync.Mutex
	started  bool
	logger   *logger.Logger
}

func NewHTTPServer(maxHeaderBytes int, l *logger.Logger) *HTTPServer {
	var httpLogger *logger.Logger
	if l != nil {
		httpLogger = l.Fork("http-server")
	}
	return &HTTPServer{
		Server:  &http.Server{MaxHeaderBytes: maxHeaderBytes, ReadHeaderTimeout: 5 * time.Second},
		running: make(chan error, 1),
		logger:  httpLogger,
	}
}

// GoListenAndServe binds addr synchronously, so a busy port is reported to
// the caller, and serves in the background.
func (h *HTTPServer) GoListenAndServe(addr string, handler http.Handler) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.started = true
	h.listener = l
	h.Handler = handler
	h.mu.Unlock()

	go func() {
		if h.logger != nil {
			h.logger.Debugf("serving HTTP on %s", l.Addr())
		}
		err := h.Serve(l)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		h.running <- err
	}()
	return nil
}

// Addr is the bound listener address, useful when listening on port 0.
func (h *HTTPServer) Addr() net.Addr {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listener == nil {
		return nil
	}
	return h.listener.Addr()
}

func (h *HTTPServer) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	started := h.started
	h.mu.Unlock()
	if !started {
		return nil
	}
	return h.Server.Shutdown(ctx)
}

func (h *HTTPServer) Wait() error {
	h.mu.Lock()
	started := h.started
	h.mu.Unlock()
	if !started {
		return errors.New("server is not running")
	}
	return <-h.running
}
