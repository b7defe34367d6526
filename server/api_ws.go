package chserver

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/openrport/sysdash/server/windows"
	"github.com/openrport/sysdash/share/ws"
)

func (al *APIListener) newShellUpgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     al.checkShellOrigin,
	}
}

// checkShellOrigin accepts non browser clients and the configured origins.
func (al *APIListener) checkShellOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range al.config.API.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// handleShellWS handles GET /ws/shell
func (al *APIListener) handleShellWS(w http.ResponseWriter, r *http.Request) {
	if al.shell.Connected() {
		al.jsonError(w, windowError(windows.ErrShellAttached))
		return
	}

	conn, err := al.newShellUpgrader().Upgrade(w, r, nil)
	if err != nil {
		al.Errorf("Failed to establish WS connection: %v", err)
		return
	}
	shellConn := ws.NewConcurrentWebSocket(conn, al.Logger.Fork("ws"))

	err = al.shell.Serve(al.lifetime, shellConn)
	if errors.Is(err, windows.ErrShellAttached) {
		_ = shellConn.WriteJSON(windows.ShellMessage{Type: "error", Error: err.Error()})
		_ = shellConn.Close()
		return
	}
	if err != nil {
		al.Infof("%v", err)
	}
}
