package windows

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/openrport/sysdash/share/logger"
)

const (
	ActionCreate        = "create"
	ActionClose         = "close"
	ActionStartDragging = "start_dragging"

	MessageReply        = "reply"
	MessageWindowClosed = "window_closed"
)

var (
	ErrShellNotConnected = errors.New("window shell is not connected")
	ErrShellAttached     = errors.New("a window shell is already attached")
	ErrShellTimeout      = errors.New("window shell did not reply in time")
)

// ShellConn is a JSON message connection to the desktop shell.
type ShellConn interface {
	ReadJSON(v interface{}) error
	WriteJSON(v interface{}) error
	Close() error
}

type ShellCommand struct {
	ID       string         `json:"id"`
	Action   string         `json:"action"`
	WindowID string         `json:"window_id"`
	Window   *WindowOptions `json:"window,omitempty"`
}

type ShellMessage struct {
	Type     string `json:"type"`
	ID       string `json:"id,omitempty"`
	OK       bool   `json:"ok,omitempty"`
	Error    string `json:"error,omitempty"`
	WindowID string `json:"window_id,omitempty"`
}

// BridgeShell forwards window commands to a single attached shell connection
// and waits for the matching reply.
type BridgeShell struct {
	replyTimeout time.Duration
	logger       *logger.Logger

	mu       sync.Mutex
	conn     ShellConn
	pending  map[string]chan error
	onClosed func(windowID string)
}

func NewBridgeShell(replyTimeout time.Duration, l *logger.Logger) *BridgeShell {
	return &BridgeShell{
		replyTimeout: replyTimeout,
		logger:       l,
		pending:      make(map[string]chan error),
	}
}

// OnWindowClosed sets the hook called when the shell reports a window the
// user closed.
func (b *BridgeShell) OnWindowClosed(fn func(windowID string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onClosed = fn
}

func (b *BridgeShell) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn != nil
}

// Serve attaches conn and reads shell messages until the connection fails or
// ctx is done. Pending commands fail once it returns.
func (b *BridgeShell) Serve(ctx context.Context, conn ShellConn) error {
	if err := b.attach(conn); err != nil {
		return err
	}
	defer b.detach(conn)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	b.logger.Infof("window shell attached")
	for {
		var msg ShellMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return pkgerrors.Wrap(err, "window shell connection lost")
		}
		b.dispatch(msg)
	}
}

func (b *BridgeShell) attach(conn ShellConn) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn != nil {
		return ErrShellAttached
	}
	b.conn = conn
	return nil
}

func (b *BridgeShell) detach(conn ShellConn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn != conn {
		return
	}
	b.conn = nil
	for id, ch := range b.pending {
		ch <- ErrShellNotConnected
		delete(b.pending, id)
	}
	_ = conn.Close()
	b.logger.Infof("window shell detached")
}

func (b *BridgeShell) dispatch(msg ShellMessage) {
	switch msg.Type {
	case MessageReply:
		b.mu.Lock()
		ch, ok := b.pending[msg.ID]
		delete(b.pending, msg.ID)
		b.mu.Unlock()
		if !ok {
			b.logger.Debugf("reply for unknown command %q", msg.ID)
			return
		}
		ch <- replyError(msg)
	case MessageWindowClosed:
		b.mu.Lock()
		onClosed := b.onClosed
		b.mu.Unlock()
		b.logger.Debugf("window %s closed by the shell", msg.WindowID)
		if onClosed != nil {
			onClosed(msg.WindowID)
		}
	default:
		b.logger.Debugf("ignoring shell message of type %q", msg.Type)
	}
}

func replyError(msg ShellMessage) error {
	if msg.OK {
		return nil
	}
	reason := msg.Error
	if reason == "" {
		reason = "unknown error"
	}
	return errors.New(reason)
}

func (b *BridgeShell) Create(ctx context.Context, w WindowOptions) error {
	return b.send(ctx, ActionCreate, w.ID, &w)
}

func (b *BridgeShell) Close(ctx context.Context, windowID string) error {
	return b.send(ctx, ActionClose, windowID, nil)
}

func (b *BridgeShell) StartDragging(ctx context.Context, windowID string) error {
	return b.send(ctx, ActionStartDragging, windowID, nil)
}

func (b *BridgeShell) send(ctx context.Context, action, windowID string, w *WindowOptions) error {
	cmd := ShellCommand{
		ID:       uuid.New().String(),
		Action:   action,
		WindowID: windowID,
		Window:   w,
	}
	replyCh := make(chan error, 1)

	b.mu.Lock()
	conn := b.conn
	if conn == nil {
		b.mu.Unlock()
		return ErrShellNotConnected
	}
	b.pending[cmd.ID] = replyCh
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.pending, cmd.ID)
		b.mu.Unlock()
	}()

	if err := conn.WriteJSON(cmd); err != nil {
		return pkgerrors.Wrapf(err, "failed to send %s command", action)
	}

	timer := time.NewTimer(b.replyTimeout)
	defer timer.Stop()

	select {
	case err := <-replyCh:
		if err == nil || errors.Is(err, ErrShellNotConnected) {
			return err
		}
		return &RejectedError{Action: action, Reason: err.Error()}
	case <-timer.C:
		return ErrShellTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}
