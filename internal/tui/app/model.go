// Package app provides the interactive terminal client: a city input, the
// result area and key bindings for lookups, save and open.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leefowlercu/weatherfile/internal/export"
	"github.com/leefowlercu/weatherfile/internal/presenter"
	"github.com/leefowlercu/weatherfile/internal/tui/components"
	"github.com/leefowlercu/weatherfile/internal/tui/styles"
	"github.com/leefowlercu/weatherfile/internal/weather"
)

// DefaultNotificationTTL is how long a notification stays in the status line.
const DefaultNotificationTTL = 3 * time.Second

type operation string

const (
	opLookup operation = "lookup"
	opSave   operation = "save"
	opOpen   operation = "open"
	opClear  operation = "clear"
)

type focusArea int

const (
	focusCity focusArea = iota
	focusResult
	focusPath
)

// opDoneMsg reports that a backend operation returned.
type opDoneMsg struct {
	op  operation
	err error
}

// restoredMsg carries the stored result loaded at startup.
type restoredMsg struct {
	text string
	err  error
}

// expireMsg clears the notification with the matching sequence number.
type expireMsg struct {
	seq int
}

// Model is the root bubbletea model for the interactive client.
type Model struct {
	ctx     context.Context
	backend Backend
	logger  *slog.Logger
	ttl     time.Duration

	keys   keyMap
	help   help.Model
	city   components.TextInput
	path   components.TextInput
	result textarea.Model
	focus  focusArea

	// text is the current result; the textarea only displays it.
	text string

	saving   bool
	note     *presenter.Notification
	noteSeq  int
	quitting bool
	width    int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for the model.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithNotificationTTL overrides how long notifications are shown.
func WithNotificationTTL(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.ttl = d
		}
	}
}

// New creates the model. ctx bounds every backend operation.
func New(ctx context.Context, backend Backend, opts ...Option) Model {
	city := components.NewTextInput("City", "e.g. Oslo")
	city.Focus()

	path := components.NewTextInput("Open file", "path to a .json or .txt file")
	path.SetWidth(60)
	path.SetValidator(func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("No file selected")
		}
		return nil
	})

	result := textarea.New()
	result.Placeholder = "Results appear here"
	result.ShowLineNumbers = false
	result.CharLimit = 0
	result.MaxHeight = 0
	result.SetWidth(72)
	result.SetHeight(10)
	result.Blur()

	m := Model{
		ctx:     ctx,
		backend: backend,
		logger:  slog.Default(),
		ttl:     DefaultNotificationTTL,
		keys:    defaultKeyMap(),
		help:    help.New(),
		city:    city,
		path:    path,
		result:  result,
		focus:   focusCity,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init restores the stored result.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.restore())
}

// Update handles key presses, presenter messages and operation results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.result.SetWidth(max(20, msg.Width-8))
		m.result.SetHeight(max(5, msg.Height-14))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.focus == focusPath {
			return m.updatePrompt(msg)
		}
		return m.updateMain(msg)

	case ResultMsg:
		m.setResult(msg.Text)
		return m, nil

	case NotifyMsg:
		return m.notify(msg.Notification)

	case BusyMsg:
		if msg.Action == export.BusyAction {
			m.saving = msg.Busy
		}
		return m, nil

	case opDoneMsg:
		return m.finish(msg)

	case restoredMsg:
		if msg.err != nil {
			m.logger.Warn("failed to restore result", "error", msg.err)
			return m, nil
		}
		m.setResult(msg.text)
		return m, nil

	case expireMsg:
		if msg.seq == m.noteSeq {
			m.note = nil
		}
		return m, nil
	}

	return m.forward(msg)
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Current):
		return m, m.lookup(weather.ActionCurrent)
	case key.Matches(msg, m.keys.Forecast):
		return m, m.lookup(weather.ActionForecast)
	case key.Matches(msg, m.keys.Coords):
		return m, m.lookup(weather.ActionCoordinates)
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.Open):
		m.path.Reset()
		return m, m.setFocus(focusPath)
	case key.Matches(msg, m.keys.Close):
		return m.closeConnection()
	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusCity {
			return m, m.setFocus(focusResult)
		}
		return m, m.setFocus(focusCity)
	case key.Matches(msg, m.keys.Submit) && m.focus == focusCity:
		return m, m.lookup(weather.ActionCurrent)
	}

	if m.focus == focusResult && !isNavigation(msg) {
		return m, nil
	}
	return m.forward(msg)
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.path.Reset()
		return m, m.setFocus(focusCity)
	case key.Matches(msg, m.keys.Submit):
		if err := m.path.Validate(); err != nil {
			return m.notify(presenter.Notification{Message: err.Error(), Kind: presenter.KindError})
		}
		path := m.path.TrimmedValue()
		m.path.Reset()
		focus := m.setFocus(focusCity)
		return m, tea.Batch(focus, m.open(path))
	}
	return m.forward(msg)
}

// forward passes msg to the focused component.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusCity:
		m.city, cmd = m.city.Update(msg)
	case focusPath:
		m.path, cmd = m.path.Update(msg)
	case focusResult:
		m.result, cmd = m.result.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.city.Blur()
	m.path.Blur()
	m.result.Blur()
	switch f {
	case focusPath:
		return m.path.Focus()
	case focusResult:
		return m.result.Focus()
	default:
		return m.city.Focus()
	}
}

func (m *Model) setResult(text string) {
	m.text = text
	m.result.SetValue(text)
}

func (m Model) notify(n presenter.Notification) (tea.Model, tea.Cmd) {
	m.noteSeq++
	m.note = &n
	seq := m.noteSeq
	return m, tea.Tick(m.ttl, func(time.Time) tea.Msg {
		return expireMsg{seq: seq}
	})
}

func (m Model) lookup(action weather.Action) tea.Cmd {
	ctx, backend, city := m.ctx, m.backend, m.city.Value()
	return func() tea.Msg {
		return opDoneMsg{op: opLookup, err: backend.Lookup(ctx, action, city)}
	}
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.saving {
		return m.notify(presenter.Notification{Message: "A save is already in progress.", Kind: presenter.KindError})
	}
	m.saving = true

	ctx, backend, content := m.ctx, m.backend, m.text
	return m, func() tea.Msg {
		return opDoneMsg{op: opSave, err: backend.Save(ctx, content)}
	}
}

func (m Model) open(path string) tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		return opDoneMsg{op: opOpen, err: backend.Open(ctx, path)}
	}
}

func (m Model) closeConnection() (tea.Model, tea.Cmd) {
	m.city.Reset()
	m.setResult("")

	ctx, backend := m.ctx, m.backend
	return m, func() tea.Msg {
		return opDoneMsg{op: opClear, err: backend.Clear(ctx)}
	}
}

func (m Model) restore() tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		text, err := backend.Current(ctx)
		return restoredMsg{text: text, err: err}
	}
}

// finish reports operation failures the core did not already announce.
func (m Model) finish(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if msg.op == opSave {
		m.saving = false
	}

	if msg.err == nil {
		if msg.op == opClear {
			m.logger.Info("API connection closed")
			return m.notify(presenter.Notification{Message: "Connection closed successfully", Kind: presenter.KindInfo})
		}
		return m, nil
	}

	m.logger.Debug("operation failed", "op", msg.op, "error", msg.err)

	for _, err := range reported {
		if errors.Is(msg.err, err) {
			return m, nil
		}
	}

	switch {
	case errors.Is(msg.err, weather.ErrMissingAPIKey):
		return m.notify(presenter.Notification{
			Message: "Weather API key is not configured",
			Kind:    presenter.KindError,
		})
	case msg.op == opLookup:
		// The result area already shows the failure text.
		return m, nil
	case msg.op == opOpen:
		return m.notify(presenter.Notification{
			Message: fmt.Sprintf("Cannot open file: %v", msg.err),
			Kind:    presenter.KindError,
		})
	default:
		return m.notify(presenter.Notification{Message: msg.err.Error(), Kind: presenter.KindError})
	}
}

// View renders the client.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render("weatherfile"))
	b.WriteString("\n")
	b.WriteString(m.city.View())
	b.WriteString("\n\n")

	if m.focus == focusPath {
		b.WriteString(m.path.View())
		b.WriteString("\n\n")
	}

	b.WriteString(styles.ResultBox.Render(m.result.View()))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	if m.focus == focusPath {
		b.WriteString(m.help.View(promptKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	return styles.Container.Render(b.String())
}

func (m Model) statusLine() string {
	if m.saving {
		return styles.Busy.Render(export.BusyAction + "...")
	}
	if m.note != nil {
		return presenter.StyleFor(m.note.Kind).Render(m.note.Message)
	}
	return ""
}

// Saving reports whether a save is pending.
func (m Model) Saving() bool {
	return m.saving
}

// Result returns the current result text.
func (m Model) Result() string {
	return m.text
}

// Notification returns the notification currently shown, if any.
func (m Model) Notification() (presenter.Notification, bool) {
	if m.note == nil {
		return presenter.Notification{}, false
	}
	return *m.note, true
}

func isNavigation(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd, tea.KeyLeft, tea.KeyRight:
		return true
	}
	return false
}
