package chserver

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/openrport/sysdash/server/chconfig"
	"github.com/openrport/sysdash/server/windows"
	"github.com/openrport/sysdash/share/logger"
	"github.com/openrport/sysdash/share/models"
)

const shutdownTimeout = 5 * time.Second

// Telemetry produces host snapshots and process rankings.
type Telemetry interface {
	CollectSnapshot(ctx context.Context) (*models.HostSnapshot, error)
	ListTopProcesses(ctx context.Context, limit int) ([]models.ProcessInfo, error)
}

// Server represents the sysdash backend
type Server struct {
	*logger.Logger
	config      *chconfig.Config
	telemetry   Telemetry
	shell       *windows.BridgeShell
	windows     *windows.Manager
	apiListener *APIListener
}

// NewServer wires the window registry to a shell bridge. The main window is
// registered up front since the shell creates it on its own.
func NewServer(config *chconfig.Config, telemetry Telemetry, l *logger.Logger) *Server {
	s := &Server{
		Logger:    l,
		config:    config,
		telemetry: telemetry,
		shell:     windows.NewBridgeShell(config.Windows.ShellReplyTimeout, l.Fork("shell")),
	}

	s.windows = windows.NewManager(s.shell, windows.Config{
		MinWidth:  config.Windows.MinWidth,
		MinHeight: config.Windows.MinHeight,
	}, l.Fork("windows"))
	s.windows.Register(windows.MainWindowID)
	s.shell.OnWindowClosed(s.windows.Forget)

	s.apiListener = NewAPIListener(s)

	return s
}

// Run serves the API until ctx is done, then shuts the listener down.
func (s *Server) Run(ctx context.Context) error {
	if err := s.apiListener.Start(ctx, s.config.API.Address); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(s.apiListener.Wait)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.apiListener.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
