package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xenonnoble69/assistdeck-frontend/internal/ui/views"
)

// RootModel is the main application model that manages views
type RootModel struct {
	deps   views.Deps
	styles Styles
	width  int
	height int

	currentView       View
	loginView         views.LoginView
	dashboardView     views.DashboardView
	goalsView         views.GoalsView
	calendarView      views.CalendarView
	teamsView         views.TeamsView
	notificationsView views.NotificationsView

	statusMsg string
	errorMsg  string
}

// NewRootModel creates the root model. It starts on the dashboard when
// a stored session exists and on the login form otherwise.
func NewRootModel(deps views.Deps) RootModel {
	current := ViewLogin
	if deps.Session.Authenticated() {
		current = ViewDashboard
	}

	return RootModel{
		deps:              deps,
		styles:            DefaultStyles(),
		currentView:       current,
		loginView:         views.NewLoginView(deps),
		dashboardView:     views.NewDashboardView(deps),
		goalsView:         views.NewGoalsView(deps),
		calendarView:      views.NewCalendarView(deps),
		teamsView:         views.NewTeamsView(deps),
		notificationsView: views.NewNotificationsView(deps),
	}
}

// waitForSessionEnd blocks on the session store's logout signal. The
// api client's expired hook clears the store when the backend rejects
// the token, so both explicit logout and expiry land here.
func (m RootModel) waitForSessionEnd() tea.Cmd {
	ch := m.deps.Session.Subscribe()
	return func() tea.Msg {
		<-ch
		return SessionEndedMsg{}
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		// No credential yet, so there is no logout to watch for; the
		// subscription starts when the first login lands. Subscribing
		// here would fire immediately and paint "Signed out" on a
		// fresh launch.
		return m.loginView.Init()
	}
	return tea.Batch(m.waitForSessionEnd(), m.dashboardView.Init())
}

func (m RootModel) isInputMode() bool {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.IsInputMode()
	case ViewGoals:
		return m.goalsView.IsInputMode()
	case ViewCalendar:
		return m.calendarView.IsInputMode()
	case ViewTeams:
		return m.teamsView.IsInputMode()
	case ViewNotifications:
		return m.notificationsView.IsInputMode()
	default:
		return false
	}
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4
		m.loginView = m.loginView.SetSize(m.width, contentHeight)
		m.dashboardView = m.dashboardView.SetSize(m.width, contentHeight)
		m.goalsView = m.goalsView.SetSize(m.width, contentHeight)
		m.calendarView = m.calendarView.SetSize(m.width, contentHeight)
		m.teamsView = m.teamsView.SetSize(m.width, contentHeight)
		m.notificationsView = m.notificationsView.SetSize(m.width, contentHeight)

	case tea.KeyMsg:
		m.statusMsg = ""
		m.errorMsg = ""

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.isInputMode() {
			break // let the view consume keystrokes
		}

		if msg.String() == "q" {
			// Inside a team detail "q" means back, not quit; let the
			// view handle it.
			if !(m.currentView == ViewTeams && m.teamsView.InDetail()) {
				return m, tea.Quit
			}
		}

		// View switching is disabled on the login screen: every other
		// view assumes a valid credential.
		if m.currentView != ViewLogin {
			switch msg.String() {
			case "1":
				m.currentView = ViewDashboard
				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewGoals
				return m, m.goalsView.Init()
			case "3":
				m.currentView = ViewCalendar
				return m, m.calendarView.Init()
			case "4":
				m.currentView = ViewTeams
				return m, m.teamsView.Init()
			case "5":
				m.currentView = ViewNotifications
				return m, m.notificationsView.Init()
			case "ctrl+d":
				// Logout: clearing the store closes the subscription
				// channel, which delivers SessionEndedMsg below.
				if err := m.deps.Session.Clear(); err != nil {
					m.errorMsg = err.Error()
				}
				return m, nil
			}
		}

	case views.LoggedInMsg:
		m.currentView = ViewDashboard
		m.statusMsg = fmt.Sprintf("Signed in as %s", msg.User.Email)
		// A fresh credential means a fresh logout channel to watch.
		return m, tea.Batch(m.dashboardView.Init(), m.waitForSessionEnd())

	case SessionEndedMsg:
		m.currentView = ViewLogin
		m.loginView = views.NewLoginView(m.deps)
		m.statusMsg = "Signed out"
		return m, m.loginView.Init()

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil
	}

	// Delegate to current view
	switch m.currentView {
	case ViewLogin:
		var cmd tea.Cmd
		m.loginView, cmd = m.loginView.Update(msg)
		cmds = append(cmds, cmd)
	case ViewDashboard:
		var cmd tea.Cmd
		m.dashboardView, cmd = m.dashboardView.Update(msg)
		cmds = append(cmds, cmd)
	case ViewGoals:
		var cmd tea.Cmd
		m.goalsView, cmd = m.goalsView.Update(msg)
		cmds = append(cmds, cmd)
	case ViewCalendar:
		var cmd tea.Cmd
		m.calendarView, cmd = m.calendarView.Update(msg)
		cmds = append(cmds, cmd)
	case ViewTeams:
		var cmd tea.Cmd
		m.teamsView, cmd = m.teamsView.Update(msg)
		cmds = append(cmds, cmd)
	case ViewNotifications:
		var cmd tea.Cmd
		m.notificationsView, cmd = m.notificationsView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	var content string
	switch m.currentView {
	case ViewLogin:
		content = m.loginView.View()
	case ViewDashboard:
		content = m.dashboardView.View()
	case ViewGoals:
		content = m.goalsView.View()
	case ViewCalendar:
		content = m.calendarView.View()
	case ViewTeams:
		content = m.teamsView.View()
	case ViewNotifications:
		content = m.notificationsView.View()
	}

	contentHeight := m.height - 4
	if lines := strings.Count(content, "\n") + 1; lines < contentHeight {
		content += strings.Repeat("\n", contentHeight-lines)
	}
	sections = append(sections, content)

	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m RootModel) renderHeader() string {
	title := m.styles.Header.Render("assistdeck")
	indicator := m.styles.ViewIndicator.Render(fmt.Sprintf("[%s]", m.currentView))

	left := lipgloss.JoinHorizontal(lipgloss.Center, title, indicator)

	var right string
	if user, err := m.deps.Session.Current(); err == nil {
		right = m.styles.ViewIndicator.Render(user.Email)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m RootModel) renderFooter() string {
	key := func(k, desc string) string {
		return m.styles.HelpKey.Render(k) + m.styles.HelpDesc.Render(" "+desc)
	}
	sep := m.styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = m.styles.Error.Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = m.styles.Status.Render(m.statusMsg)
	}

	var line1, line2 string
	switch m.currentView {
	case ViewLogin:
		line1 = key("tab", "switch field") + sep + key("enter", "sign in") + sep + key("ctrl+c", "quit")
	case ViewDashboard:
		line1 = key("r", "refresh") + sep + key("1-5", "views") + sep + key("ctrl+d", "logout") + sep + key("q", "quit")
	case ViewGoals:
		if m.goalsView.IsInputMode() {
			line1 = key("enter", "confirm") + sep + key("esc", "cancel")
		} else {
			line1 = key("a", "add") + sep + key("enter", "edit") + sep + key("+", "progress") + sep +
				key("c", "complete") + sep + key("d", "delete") + sep + key("/", "search")
			line2 = key("s", "status") + sep + key("P", "priority") + sep + key("o", "sort") + sep +
				key("x", "clear filters") + sep + key("1-5", "views")
		}
	case ViewCalendar:
		if m.calendarView.IsInputMode() {
			line1 = key("enter", "confirm") + sep + key("esc", "cancel")
		} else {
			line1 = key("h/j/k/l", "days") + sep + key("H/L", "months") + sep + key("t", "today") + sep +
				key("a", "add") + sep + key("d", "delete")
			line2 = key("r", "refresh") + sep + key("1-5", "views")
		}
	case ViewTeams:
		if m.teamsView.IsInputMode() {
			line1 = key("enter", "confirm") + sep + key("esc", "cancel")
		} else {
			line1 = key("a", "create") + sep + key("enter", "open") + sep + key("r", "refresh") + sep + key("1-5", "views")
		}
	case ViewNotifications:
		line1 = key("enter", "mark read") + sep + key("r", "refresh") + sep + key("1-5", "views")
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}
	return strings.Join(lines, "\n")
}
