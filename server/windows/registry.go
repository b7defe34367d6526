package windows

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"sync"

	"github.com/asaskevich/govalidator"

	"github.com/openrport/sysdash/share/logger"
	"github.com/openrport/sysdash/share/models"
)

const (
	MainWindowID       = "main"
	detachedPrefix     = "detached_"
	detachedPage       = "detached.html"
	componentIDPattern = `^[A-Za-z0-9_-]+$`
)

var (
	ErrWindowExists   = errors.New("window already exists")
	ErrWindowNotFound = errors.New("window not found")
)

// ValidationError reports invalid input to OpenDetached.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

type Config struct {
	MinWidth  float64
	MinHeight float64
}

// Manager tracks the windows known to the shell. Window ids are unique.
type Manager struct {
	shell  Shell
	config Config
	logger *logger.Logger

	mu      sync.Mutex
	windows map[string]models.Window
}

func NewManager(shell Shell, config Config, l *logger.Logger) *Manager {
	return &Manager{
		shell:   shell,
		config:  config,
		logger:  l,
		windows: make(map[string]models.Window),
	}
}

func DetachedWindowID(component string) string {
	return detachedPrefix + component
}

func DetachedWindowURL(component string) string {
	return detachedPage + "?component=" + url.QueryEscape(component)
}

// Register records a window the shell created on its own.
func (m *Manager) Register(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.windows[id]; !ok {
		m.windows[id] = models.Window{ID: id}
	}
}

func (m *Manager) OpenDetached(ctx context.Context, component string, width, height float64) (*models.Window, error) {
	if err := validateDetached(component, width, height); err != nil {
		return nil, err
	}

	w := models.Window{
		ID:        DetachedWindowID(component),
		Component: component,
		URL:       DetachedWindowURL(component),
		Width:     width,
		Height:    height,
	}

	if err := m.reserve(w); err != nil {
		return nil, err
	}

	err := m.shell.Create(ctx, WindowOptions{
		Window:    w,
		Title:     "",
		MinWidth:  m.config.MinWidth,
		MinHeight: m.config.MinHeight,
		Resizable: true,
		Decorated: true,
	})
	if err != nil {
		m.Forget(w.ID)
		return nil, err
	}

	m.logger.Infof("opened window %s (%.0fx%.0f)", w.ID, width, height)
	return &w, nil
}

func (m *Manager) reserve(w models.Window) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.windows[w.ID]; ok {
		return ErrWindowExists
	}
	m.windows[w.ID] = w
	return nil
}

func (m *Manager) Close(ctx context.Context, id string) error {
	if !m.exists(id) {
		return ErrWindowNotFound
	}
	if err := m.shell.Close(ctx, id); err != nil {
		return err
	}
	m.Forget(id)
	m.logger.Infof("closed window %s", id)
	return nil
}

func (m *Manager) StartDrag(ctx context.Context, id string) error {
	if !m.exists(id) {
		return ErrWindowNotFound
	}
	return m.shell.StartDragging(ctx, id)
}

// Forget drops a window without asking the shell, e.g. after the user closed
// it from the title bar.
func (m *Manager) Forget(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.windows, id)
}

func (m *Manager) List() []models.Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]models.Window, 0, len(m.windows))
	for _, w := range m.windows {
		res = append(res, w)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].ID < res[j].ID
	})
	return res
}

func (m *Manager) exists(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.windows[id]
	return ok
}

func validateDetached(component string, width, height float64) error {
	if !govalidator.Matches(component, componentIDPattern) {
		return &ValidationError{Field: "component", Message: fmt.Sprintf("%q must match %s", component, componentIDPattern)}
	}
	if !(width > 0) {
		return &ValidationError{Field: "width", Message: "must be positive"}
	}
	if !(height > 0) {
		return &ValidationError{Field: "height", Message: "must be positive"}
	}
	return nil
}
