// Package notify delivers short user-facing notices ("toasts").
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Level is the severity of a notice.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notice is a single transient message.
type Notice struct {
	Level   Level
	Message string
}

// Notifier receives notices. Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(n Notice)
}

// Discard drops every notice.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notice) {}

// Palette holds the badge colors per level.
type Palette struct {
	Info    lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Text    lipgloss.Color
}

// DefaultPalette matches the Flexoki Dark theme.
var DefaultPalette = Palette{
	Info:    lipgloss.Color("#4385BE"),
	Success: lipgloss.Color("#879A39"),
	Warning: lipgloss.Color("#DA702C"),
	Error:   lipgloss.Color("#D14D41"),
	Text:    lipgloss.Color("#FFFCF0"),
}

// Terminal renders notices as one-line badges on w (usually stderr).
type Terminal struct {
	mu      sync.Mutex
	w       io.Writer
	palette Palette
}

// NewTerminal returns a Terminal notifier writing to w.
func NewTerminal(w io.Writer, p Palette) *Terminal {
	return &Terminal{w: w, palette: p}
}

// Notify writes the notice.
func (t *Terminal) Notify(n Notice) {
	badge := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("#100F0F")).
		Background(t.color(n.Level)).
		Render(symbol(n.Level))
	msg := lipgloss.NewStyle().Foreground(t.palette.Text).Render(n.Message)

	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.w, "  %s %s\n", badge, msg)
}

func (t *Terminal) color(l Level) lipgloss.Color {
	switch l {
	case Success:
		return t.palette.Success
	case Warning:
		return t.palette.Warning
	case Error:
		return t.palette.Error
	default:
		return t.palette.Info
	}
}

func symbol(l Level) string {
	switch l {
	case Success:
		return "✓"
	case Warning:
		return "!"
	case Error:
		return "✗"
	default:
		return "i"
	}
}

// Recorder keeps every notice it receives.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify records n.
func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the recorded notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Len returns the number of recorded notices.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

// Reset forgets all recorded notices.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}
