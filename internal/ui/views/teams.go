package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xenonnoble69/assistdeck-frontend/internal/api"
	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
	"github.com/xenonnoble69/assistdeck-frontend/internal/filter"
	dsync "github.com/xenonnoble69/assistdeck-frontend/internal/sync"
)

// TeamsMode represents the current input mode of the teams view
type TeamsMode int

const (
	TeamsModeList TeamsMode = iota
	TeamsModeCreate
	TeamsModeDetail
	TeamsModeInvite
	TeamsModeChat
)

type teamsLoadedMsg struct{ err error }

type teamCreatedMsg struct {
	team *deck.Team
	err  error
}

type teamDetailMsg struct {
	team     *deck.Team
	messages []deck.ChatMessage
	err      error
}

type teamActionMsg struct {
	action string
	err    error
}

// TeamsView lists teams and drills into a single team's members and
// chat transcript.
type TeamsView struct {
	deps   Deps
	width  int
	height int

	collection *dsync.Collection[deck.Team]
	loader     *dsync.Loader[deck.Team]

	cursor int
	mode   TeamsMode
	input  textinput.Model

	// detail state
	detail   *deck.Team
	messages []deck.ChatMessage

	statusMsg string
	errMsg    string
}

// NewTeamsView creates the teams screen.
func NewTeamsView(deps Deps) TeamsView {
	ti := textinput.New()
	ti.CharLimit = 256

	collection := dsync.NewCollection[deck.Team]()
	loader := dsync.NewLoader("teams", collection, func(ctx context.Context) ([]deck.Team, error) {
		return deps.Client.Teams(ctx)
	})

	return TeamsView{
		deps:       deps,
		collection: collection,
		loader:     loader,
		input:      ti,
	}
}

func (v TeamsView) Init() tea.Cmd {
	return v.load()
}

func (v TeamsView) IsInputMode() bool {
	return v.mode == TeamsModeCreate || v.mode == TeamsModeInvite || v.mode == TeamsModeChat
}

// InDetail reports whether a team detail is open. The detail screen
// binds "q" to back, so the global quit key must defer to it.
func (v TeamsView) InDetail() bool {
	return v.mode == TeamsModeDetail
}

func (v TeamsView) SetSize(width, height int) TeamsView {
	v.width = width
	v.height = height
	v.input.Width = width - 4
	return v
}

func (v TeamsView) load() tea.Cmd {
	return func() tea.Msg {
		err := v.loader.Load(context.Background())
		return teamsLoadedMsg{err: err}
	}
}

func (v TeamsView) createTeam(name string) tea.Cmd {
	return func() tea.Msg {
		team, err := v.deps.Client.CreateTeam(context.Background(), name)
		return teamCreatedMsg{team: team, err: err}
	}
}

func (v TeamsView) loadDetail(teamID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		team, err := v.deps.Client.Team(ctx, teamID)
		if err != nil {
			return teamDetailMsg{err: err}
		}
		messages, err := v.deps.Client.Messages(ctx, teamID)
		if err != nil {
			// The transcript is secondary; show the team without it.
			return teamDetailMsg{team: team}
		}
		return teamDetailMsg{team: team, messages: messages}
	}
}

func (v TeamsView) invite(teamID, email string) tea.Cmd {
	return func() tea.Msg {
		err := v.deps.Client.InviteMember(context.Background(), teamID, email)
		return teamActionMsg{action: "Invitation sent", err: err}
	}
}

func (v TeamsView) sendMessage(teamID, text string) tea.Cmd {
	return func() tea.Msg {
		user, err := v.deps.Session.Current()
		if err != nil {
			// Logged out underneath us; do not post with an empty sender.
			return teamActionMsg{err: err}
		}
		err = v.deps.Client.SendMessage(context.Background(), api.MessageParams{
			Message:  text,
			SenderID: user.ID,
			TeamID:   teamID,
		})
		return teamActionMsg{action: "sent", err: err}
	}
}

func (v TeamsView) selectedTeam() (deck.Team, bool) {
	teams := v.collection.Items()
	if len(teams) == 0 || v.cursor >= len(teams) {
		return deck.Team{}, false
	}
	return teams[v.cursor], true
}

func (v TeamsView) Update(msg tea.Msg) (TeamsView, tea.Cmd) {
	switch msg := msg.(type) {
	case teamsLoadedMsg:
		if msg.err != nil {
			v.errMsg = errorText(msg.err)
		} else {
			v.errMsg = ""
		}
		if n := v.collection.Len(); v.cursor >= n && n > 0 {
			v.cursor = n - 1
		}
		return v, nil

	case teamCreatedMsg:
		if msg.err != nil {
			v.errMsg = errorText(msg.err)
			return v, nil
		}
		v.statusMsg = "Team created"
		v.errMsg = ""
		if msg.team != nil {
			// Show the new team immediately; the reload that follows
			// replaces the whole list with the server's ordering.
			v.collection.Prepend(*msg.team)
			v.cursor = 0
		}
		return v, v.load()

	case teamDetailMsg:
		if msg.err != nil {
			v.errMsg = errorText(msg.err)
			v.mode = TeamsModeList
			return v, nil
		}
		v.detail = msg.team
		v.messages = filter.SortMessages(msg.messages)
		v.mode = TeamsModeDetail
		v.errMsg = ""
		return v, nil

	case teamActionMsg:
		if msg.err != nil {
			v.errMsg = errorText(msg.err)
			return v, nil
		}
		v.errMsg = ""
		if msg.action == "sent" {
			// Refresh the transcript so the new message appears with
			// its server-assigned ID and timestamp.
			if v.detail != nil {
				return v, v.loadDetail(v.detail.ID)
			}
			return v, nil
		}
		v.statusMsg = msg.action
		return v, nil

	case tea.KeyMsg:
		v.statusMsg = ""
		switch v.mode {
		case TeamsModeCreate, TeamsModeInvite, TeamsModeChat:
			return v.updateInput(msg)
		case TeamsModeDetail:
			return v.updateDetail(msg)
		}
		return v.updateList(msg)
	}
	return v, nil
}

func (v TeamsView) updateList(msg tea.KeyMsg) (TeamsView, tea.Cmd) {
	teams := v.collection.Items()

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(teams)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "a":
		v.mode = TeamsModeCreate
		v.input.Placeholder = "Team name..."
		v.input.SetValue("")
		v.input.Focus()
		return v, textinput.Blink
	case "enter":
		if t, ok := v.selectedTeam(); ok {
			return v, v.loadDetail(t.ID)
		}
	case "r":
		return v, v.load()
	}
	return v, nil
}

func (v TeamsView) updateDetail(msg tea.KeyMsg) (TeamsView, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		v.mode = TeamsModeList
		v.detail = nil
		v.messages = nil
		return v, v.load()
	case "i":
		// Invite affordance only exists for roles that may use it.
		if v.detail != nil && v.detail.Role.CanInvite() {
			v.mode = TeamsModeInvite
			v.input.Placeholder = "member@example.com"
			v.input.SetValue("")
			v.input.Focus()
			return v, textinput.Blink
		}
	case "m":
		if v.detail != nil {
			v.mode = TeamsModeChat
			v.input.Placeholder = "Message..."
			v.input.SetValue("")
			v.input.Focus()
			return v, textinput.Blink
		}
	case "r":
		if v.detail != nil {
			return v, v.loadDetail(v.detail.ID)
		}
	}
	return v, nil
}

func (v TeamsView) updateInput(msg tea.KeyMsg) (TeamsView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.input.Blur()
		if v.mode == TeamsModeCreate {
			v.mode = TeamsModeList
		} else {
			v.mode = TeamsModeDetail
		}
		return v, nil

	case "enter":
		value := strings.TrimSpace(v.input.Value())
		v.input.Blur()
		mode := v.mode
		switch mode {
		case TeamsModeCreate:
			v.mode = TeamsModeList
			if value == "" {
				return v, nil
			}
			return v, v.createTeam(value)
		case TeamsModeInvite:
			v.mode = TeamsModeDetail
			if value == "" {
				return v, nil
			}
			return v, v.invite(v.detail.ID, value)
		case TeamsModeChat:
			v.mode = TeamsModeDetail
			if value == "" {
				return v, nil
			}
			return v, v.sendMessage(v.detail.ID, value)
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v TeamsView) View() string {
	if v.mode == TeamsModeDetail || v.mode == TeamsModeInvite || v.mode == TeamsModeChat {
		return v.viewDetail()
	}
	return v.viewList()
}

func (v TeamsView) viewList() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#61AFEF"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#56B6C2"))
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5C07B"))
	unreadStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E06C75"))

	var b strings.Builder

	header := titleStyle.Render("Teams")
	if v.collection.Loading() {
		header += "  " + dimStyle.Render("refreshing...")
	}
	b.WriteString(header + "\n\n")

	if v.mode == TeamsModeCreate {
		b.WriteString("New team: " + v.input.View() + "\n\n")
	}

	teams := v.collection.Items()
	if len(teams) == 0 {
		b.WriteString(dimStyle.Render("No teams yet. Press 'a' to create one."))
	}
	for i, t := range teams {
		line := fmt.Sprintf("%-24s %d members", t.Name, t.MemberCount)
		if t.UnreadMessages > 0 {
			line += "  " + unreadStyle.Render(fmt.Sprintf("%d unread", t.UnreadMessages))
		}
		if i == v.cursor && v.mode == TeamsModeList {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if v.errMsg != "" {
		b.WriteString("\n" + errStyle.Render(v.errMsg))
	} else if v.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render(v.statusMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (v TeamsView) viewDetail() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#61AFEF"))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98C379"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
	senderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C678DD"))

	var b strings.Builder

	if v.detail == nil {
		return dimStyle.Render("Loading team...")
	}
	t := v.detail

	b.WriteString(titleStyle.Render(t.Name))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s", t.Role)) + "\n")
	if t.Description != "" {
		b.WriteString(dimStyle.Render(t.Description) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Members") + "\n")
	for _, m := range t.Members {
		b.WriteString(fmt.Sprintf("  %-20s %-24s %s\n", m.Name, m.Email, m.Role))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Chat") + "\n")
	messages := v.messages
	if len(messages) > 10 {
		messages = messages[len(messages)-10:]
	}
	if len(messages) == 0 {
		b.WriteString(dimStyle.Render("  no messages yet") + "\n")
	}
	for _, m := range messages {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			dimStyle.Render(m.Timestamp.Local().Format("15:04")),
			senderStyle.Render(m.SenderName+":"),
			m.Message,
		))
	}

	switch v.mode {
	case TeamsModeInvite:
		b.WriteString("\nInvite: " + v.input.View() + "\n")
	case TeamsModeChat:
		b.WriteString("\nMessage: " + v.input.View() + "\n")
	default:
		hints := "m message · r refresh · esc back"
		if t.Role.CanInvite() {
			hints = "i invite · " + hints
		}
		b.WriteString("\n" + dimStyle.Render(hints) + "\n")
	}

	if v.errMsg != "" {
		b.WriteString("\n" + errStyle.Render(v.errMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
