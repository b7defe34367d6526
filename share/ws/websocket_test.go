package ws_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrport/sysdash/share/logger"
	"github.com/openrport/sysdash/share/ws"
)

var testLog = logger.NewLogger("websocket-test", logger.LogOutput{File: os.Stdout}, logger.LogLevelDebug)

type connMock struct {
	mu      sync.Mutex
	inbound [][]byte
	written []interface{}
	closes  int
}

func (c *connMock) NextReader() (int, io.Reader, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.inbound) == 0 {
		return 0, nil, io.EOF
	}
	msg := c.inbound[0]
	c.inbound = c.inbound[1:]
	return websocket.TextMessage, bytes.NewReader(msg), nil
}

func (c *connMock) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.written = append(c.written, v)
	return nil
}

func (c *connMock) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

func TestReadJSON(t *testing.T) {
	mockConn := &connMock{inbound: [][]byte{[]byte(`{"type":"reply","id":"1"}`)}}
	conn := ws.NewConcurrentWebSocket(mockConn, testLog)

	var msg struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "reply", msg.Type)
	assert.Equal(t, "1", msg.ID)

	err := conn.ReadJSON(&msg)
	assert.True(t, errors.Is(err, io.EOF))
}

func TestConcurrentWrites(t *testing.T) {
	mockConn := &connMock{}
	conn := ws.NewConcurrentWebSocket(mockConn, testLog)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = conn.WriteJSON(i)
		}(i)
	}
	wg.Wait()

	assert.Len(t, mockConn.written, 20)
}

func TestCloseOnce(t *testing.T) {
	mockConn := &connMock{}
	conn := ws.NewConcurrentWebSocket(mockConn, testLog)

	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())

	assert.Equal(t, 1, mockConn.closes)
}
