package ws

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/openrport/sysdash/share/logger"
)

// Conn is the subset of *websocket.Conn used here.
type Conn interface {
	NextReader() (messageType int, r io.Reader, err error)
	WriteJSON(v interface{}) error
	Close() error
}

// ConcurrentWebSocket serializes writes so several goroutines can share one
// connection. Reads are expected from a single goroutine.
type ConcurrentWebSocket struct {
	conn   Conn
	mu     sync.Mutex
	log    *logger.Logger
	closed bool
}

func NewConcurrentWebSocket(conn Conn, log *logger.Logger) *ConcurrentWebSocket {
	return &ConcurrentWebSocket{
		conn: conn,
		log:  log,
	}
}

func (ws *ConcurrentWebSocket) ReadJSON(inboundMsg interface{}) error {
	_, r, err := ws.conn.NextReader()
	if err != nil {
		return err
	}
	return json.NewDecoder(r).Decode(inboundMsg)
}

func (ws *ConcurrentWebSocket) WriteJSON(outboundMsg interface{}) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	err := ws.conn.WriteJSON(outboundMsg)
	if err != nil {
		ws.log.Errorf("Error WS json write: %v", err)
	}
	return err
}

// Close is idempotent.
func (ws *ConcurrentWebSocket) Close() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.closed {
		return nil
	}
	ws.closed = true
	err := ws.conn.Close()
	if err != nil {
		ws.log.Errorf("Error on Close ws: %v", err)
	} else {
		ws.log.Debugf("Close ws")
	}
	return err
}
