package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/leefowlercu/weatherfile/internal/tui/styles"
)

// Console writes results to one stream and styled notifications to another.
type Console struct {
	out   io.Writer
	err   io.Writer
	quiet bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithQuiet suppresses success and info notifications. Errors are always shown.
func WithQuiet(quiet bool) ConsoleOption {
	return func(c *Console) {
		c.quiet = quiet
	}
}

// NewConsole creates a console presenter. Nil writers default to stdout/stderr.
func NewConsole(out, errOut io.Writer, opts ...ConsoleOption) *Console {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	c := &Console{out: out, err: errOut}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpdateResult prints the result text followed by a newline.
func (c *Console) UpdateResult(text string) {
	if text == "" {
		return
	}
	fmt.Fprint(c.out, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(c.out)
	}
}

// Notify prints a styled notification.
func (c *Console) Notify(message string, kind Kind) {
	if c.quiet && kind != KindError {
		return
	}
	fmt.Fprintln(c.err, StyleFor(kind).Render(message))
}

// SetBusy prints the pending state for an action.
func (c *Console) SetBusy(action string, busy bool) {
	if !busy || c.quiet {
		return
	}
	fmt.Fprintln(c.err, styles.MutedText.Render(action+"..."))
}

// StyleFor returns the notification style for kind.
func StyleFor(kind Kind) lipgloss.Style {
	switch kind {
	case KindSuccess:
		return styles.SuccessText
	case KindError:
		return styles.ErrorText
	default:
		return styles.InfoText
	}
}
