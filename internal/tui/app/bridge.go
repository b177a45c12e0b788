package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/leefowlercu/weatherfile/internal/presenter"
)

// ResultMsg replaces the text in the result area.
type ResultMsg struct {
	Text string
}

// NotifyMsg shows a notification in the status line.
type NotifyMsg struct {
	presenter.Notification
}

// BusyMsg reports that an action started or finished.
type BusyMsg struct {
	Action string
	Busy   bool
}

// Bridge is a presenter that turns calls into tea messages. Messages emitted
// before Attach are queued and delivered once a sender is attached.
type Bridge struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	pending []tea.Msg
}

// NewBridge creates a detached bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach sets the message sender, usually tea.Program.Send, and flushes queued messages.
func (b *Bridge) Attach(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	queued := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, msg := range queued {
		send(msg)
	}
}

// UpdateResult implements presenter.Presenter.
func (b *Bridge) UpdateResult(text string) {
	b.emit(ResultMsg{Text: text})
}

// Notify implements presenter.Presenter.
func (b *Bridge) Notify(message string, kind presenter.Kind) {
	b.emit(NotifyMsg{presenter.Notification{Message: message, Kind: kind}})
}

// SetBusy implements presenter.BusyReporter.
func (b *Bridge) SetBusy(action string, busy bool) {
	b.emit(BusyMsg{Action: action, Busy: busy})
}

func (b *Bridge) emit(msg tea.Msg) {
	b.mu.Lock()
	send := b.send
	if send == nil {
		b.pending = append(b.pending, msg)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	send(msg)
}

var (
	_ presenter.Presenter    = (*Bridge)(nil)
	_ presenter.BusyReporter = (*Bridge)(nil)
)
