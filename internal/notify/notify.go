// Package notify is the one-way notification channel surfaced to the user.
package notify

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Severity tags a notification for presentation.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityError Severity = "ERROR"
)

// Notification is a short title plus a longer message.
type Notification struct {
	Title    string
	Message  string
	Severity Severity
}

// Notifier delivers notifications. Delivery is fire-and-forget: no return
// value, no ordering guarantee relative to other notifications.
type Notifier interface {
	Notify(n Notification)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(Notification) {}

// Terminal writes notifications to the terminal: errors to errOut always,
// informational notifications to out unless quiet is set.
type Terminal struct {
	out      io.Writer
	errOut   io.Writer
	quiet    bool
	errStyle lipgloss.Style
	okStyle  lipgloss.Style
}

// NewTerminal creates a terminal notifier. Styling degrades to plain text
// when the writers are not terminals.
func NewTerminal(out, errOut io.Writer, quiet bool) *Terminal {
	r := lipgloss.NewRenderer(errOut)
	return &Terminal{
		out:      out,
		errOut:   errOut,
		quiet:    quiet,
		errStyle: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		okStyle:  r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// Notify implements Notifier.
func (t *Terminal) Notify(n Notification) {
	if n.Severity == SeverityError {
		fmt.Fprintf(t.errOut, "%s %s: %s\n", t.errStyle.Render("error:"), n.Title, n.Message)
		return
	}
	if t.quiet {
		return
	}
	if n.Message == "" {
		fmt.Fprintf(t.out, "%s\n", t.okStyle.Render(n.Title))
		return
	}
	fmt.Fprintf(t.out, "%s %s\n", t.okStyle.Render(n.Title+":"), n.Message)
}
