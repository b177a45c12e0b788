// Package presenter defines the presentation boundary used by the import and
// export subsystem. The core hands it result text and notifications; how those
// reach the user is up to the implementation.
package presenter

import (
	"fmt"
	"sync"
)

// Kind is the severity of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// ParseKind converts a string to a Kind, defaulting to KindInfo.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindSuccess, KindError, KindInfo:
		return Kind(s)
	default:
		return KindInfo
	}
}

// Presenter receives result updates and user-visible notifications.
type Presenter interface {
	// UpdateResult replaces the current result text.
	UpdateResult(text string)

	// Notify shows a message with the given severity.
	Notify(message string, kind Kind)
}

// BusyReporter is optionally implemented by presenters that can show a
// pending state for long-running actions such as a save.
type BusyReporter interface {
	SetBusy(action string, busy bool)
}

// Notification is a recorded Notify call.
type Notification struct {
	Message string
	Kind    Kind
}

func (n Notification) String() string {
	return fmt.Sprintf("[%s] %s", n.Kind, n.Message)
}

// Recorder is a Presenter that keeps everything it receives in memory.
type Recorder struct {
	mu            sync.Mutex
	result        string
	updated       bool
	notifications []Notification
	busy          map[string]bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{busy: make(map[string]bool)}
}

// UpdateResult implements Presenter.
func (r *Recorder) UpdateResult(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = text
	r.updated = true
}

// Notify implements Presenter.
func (r *Recorder) Notify(message string, kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, Notification{Message: message, Kind: kind})
}

// SetBusy implements BusyReporter.
func (r *Recorder) SetBusy(action string, busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.busy[action] = busy
}

// Result returns the last result text and whether UpdateResult was ever called.
func (r *Recorder) Result() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.updated
}

// Notifications returns a copy of all recorded notifications.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return Notification{}, false
	}
	return r.notifications[len(r.notifications)-1], true
}

// Busy reports the last busy state recorded for action.
func (r *Recorder) Busy(action string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy[action]
}
