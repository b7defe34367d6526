package chserver

import (
	"context"
	"net"
	"net/http"

	"github.com/jpillora/requestlog"

	chshare "github.com/openrport/sysdash/share"
	"github.com/openrport/sysdash/share/logger"
)

const maxHeaderBytes = 1 << 20

type APIListener struct {
	*Server
	*logger.Logger

	router            http.Handler
	httpServer        *chshare.HTTPServer
	requestLogOptions *requestlog.Options

	// lifetime bounds hijacked connections that outlive their request
	lifetime context.Context
}

func NewAPIListener(server *Server) *APIListener {
	l := server.Fork("api")
	a := &APIListener{
		Server:            server,
		Logger:            l,
		httpServer:        chshare.NewHTTPServer(maxHeaderBytes, l),
		requestLogOptions: server.config.InitRequestLogOptions(),
		lifetime:          context.Background(),
	}

	a.initRouter()

	return a
}

func (al *APIListener) Start(ctx context.Context, addr string) error {
	al.lifetime = ctx
	al.Infof("API Listening on %s...", addr)

	return al.httpServer.GoListenAndServe(addr, al.router)
}

func (al *APIListener) Addr() net.Addr {
	return al.httpServer.Addr()
}

func (al *APIListener) Wait() error {
	return al.httpServer.Wait()
}

func (al *APIListener) Shutdown(ctx context.Context) error {
	return al.httpServer.Shutdown(ctx)
}
