package windows

import (
	"context"
	"fmt"

	"github.com/openrport/sysdash/share/models"
)

// Shell is the desktop window system that actually creates and moves windows.
type Shell interface {
	Create(ctx context.Context, w WindowOptions) error
	Close(ctx context.Context, windowID string) error
	StartDragging(ctx context.Context, windowID string) error
}

// WindowOptions describe a window the shell should create.
type WindowOptions struct {
	models.Window
	Title     string  `json:"title"`
	MinWidth  float64 `json:"min_width"`
	MinHeight float64 `json:"min_height"`
	Resizable bool    `json:"resizable"`
	Decorated bool    `json:"decorated"`
}

// RejectedError is returned when the shell refuses a command.
type RejectedError struct {
	Action string
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("window shell rejected %s: %s", e.Action, e.Reason)
}
