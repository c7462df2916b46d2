package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/moos-cli/moos/style"
)

// notifier shows a short-lived message next to the last line of the view.
type notifier struct {
	notification string
}

type (
	notificationMsg      string
	clearNotificationMsg struct{}
)

func notify(text string) tea.Cmd {
	return func() tea.Msg {
		return notificationMsg(text)
	}
}

func clearNotification() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearNotificationMsg{}
	})
}

func (n *notifier) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notificationMsg:
		n.notification = string(msg)
		return clearNotification()
	case clearNotificationMsg:
		n.notification = ""
	}
	return nil
}

func (n *notifier) View(content string) string {
	if n.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(n.notification)
	return strings.Join(lines, "\n")
}
