package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
	"github.com/xenonnoble69/assistdeck-frontend/internal/filter"
	dsync "github.com/xenonnoble69/assistdeck-frontend/internal/sync"
)

type notificationsLoadedMsg struct{ err error }

type notificationReadMsg struct {
	id  string
	err error
}

type invitationsLoadedMsg struct {
	invitations []deck.Invitation
	err         error
}

// NotificationsView lists notifications newest first alongside pending
// team invitations.
type NotificationsView struct {
	deps   Deps
	width  int
	height int

	collection  *dsync.Collection[deck.Notification]
	loader      *dsync.Loader[deck.Notification]
	invitations []deck.Invitation

	cursor    int
	statusMsg string
	errMsg    string
}

// NewNotificationsView creates the notifications screen.
func NewNotificationsView(deps Deps) NotificationsView {
	collection := dsync.NewCollection[deck.Notification]()
	loader := dsync.NewLoader("notifications", collection, func(ctx context.Context) ([]deck.Notification, error) {
		return deps.Client.Notifications(ctx)
	})

	return NotificationsView{
		deps:       deps,
		collection: collection,
		loader:     loader,
	}
}

func (v NotificationsView) Init() tea.Cmd {
	return tea.Batch(v.load(), v.loadInvitations())
}

func (v NotificationsView) IsInputMode() bool { return false }

func (v NotificationsView) SetSize(width, height int) NotificationsView {
	v.width = width
	v.height = height
	return v
}

func (v NotificationsView) load() tea.Cmd {
	return func() tea.Msg {
		err := v.loader.Load(context.Background())
		return notificationsLoadedMsg{err: err}
	}
}

func (v NotificationsView) loadInvitations() tea.Cmd {
	return func() tea.Msg {
		invitations, err := v.deps.Client.Invitations(context.Background())
		return invitationsLoadedMsg{invitations: invitations, err: err}
	}
}

func (v NotificationsView) markRead(id string) tea.Cmd {
	return func() tea.Msg {
		err := v.deps.Client.MarkNotificationRead(context.Background(), id)
		return notificationReadMsg{id: id, err: err}
	}
}

func (v NotificationsView) visible() []deck.Notification {
	return filter.SortNotifications(v.collection.Items())
}

func (v NotificationsView) Update(msg tea.Msg) (NotificationsView, tea.Cmd) {
	switch msg := msg.(type) {
	case notificationsLoadedMsg:
		if msg.err != nil {
			v.errMsg = errorText(msg.err)
		} else {
			v.errMsg = ""
		}
		if n := v.collection.Len(); v.cursor >= n && n > 0 {
			v.cursor = n - 1
		}
		return v, nil

	case invitationsLoadedMsg:
		if msg.err == nil {
			v.invitations = msg.invitations
		}
		return v, nil

	case notificationReadMsg:
		if msg.err != nil {
			v.errMsg = errorText(msg.err)
			return v, nil
		}
		v.errMsg = ""
		return v, v.load()

	case tea.KeyMsg:
		v.statusMsg = ""
		notifications := v.visible()
		switch msg.String() {
		case "j", "down":
			if v.cursor < len(notifications)-1 {
				v.cursor++
			}
		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
			}
		case "enter", "m":
			if v.cursor < len(notifications) && !notifications[v.cursor].Read {
				return v, v.markRead(notifications[v.cursor].ID)
			}
		case "r":
			return v, tea.Batch(v.load(), v.loadInvitations())
		}
	}
	return v, nil
}

func (v NotificationsView) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#61AFEF"))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98C379"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
	unreadStyle := lipgloss.NewStyle().Bold(true)
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5C07B"))

	var b strings.Builder

	notifications := v.visible()
	unread := deck.UnreadCount(notifications)

	header := titleStyle.Render("Notifications")
	if unread > 0 {
		header += "  " + errStyle.Render(fmt.Sprintf("%d unread", unread))
	}
	if v.collection.Loading() {
		header += "  " + dimStyle.Render("refreshing...")
	}
	b.WriteString(header + "\n\n")

	if len(v.invitations) > 0 {
		b.WriteString(sectionStyle.Render("Pending invitations") + "\n")
		for _, inv := range v.invitations {
			b.WriteString(fmt.Sprintf("  %s invited you to %s\n", inv.InviterName, inv.TeamName))
		}
		b.WriteString(dimStyle.Render("  accept with: assistdeck invitations accept <token>") + "\n\n")
	}

	if len(notifications) == 0 {
		b.WriteString(dimStyle.Render("No notifications."))
	}
	for i, n := range notifications {
		line := fmt.Sprintf("%s  %s",
			n.Timestamp.Local().Format("Jan 02 15:04"),
			n.Message,
		)
		switch {
		case i == v.cursor:
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		case !n.Read:
			b.WriteString("  " + unreadStyle.Render(line) + "\n")
		default:
			b.WriteString("  " + dimStyle.Render(line) + "\n")
		}
	}

	if v.errMsg != "" {
		b.WriteString("\n" + errStyle.Render(v.errMsg))
	} else if v.statusMsg != "" {
		b.WriteString("\n" + dimStyle.Render(v.statusMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
