package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
	"github.com/xenonnoble69/assistdeck-frontend/internal/filter"
)

// dashboardPollInterval matches the refresh cadence of the web client.
const dashboardPollInterval = 30 * time.Second

type dashboardLoadedMsg struct {
	dashboard *deck.Dashboard
	fromCache bool
	err       error
}

type dashboardActivatedMsg struct{}

type dashboardTickMsg struct {
	gen int
}

// DashboardView shows the aggregate account overview and refreshes it
// on a fixed interval while visible.
type DashboardView struct {
	deps   Deps
	width  int
	height int

	dashboard *deck.Dashboard
	stale     bool // true when showing cache or a failed refresh
	loading   bool
	pollGen   int // activation counter; ticks from older activations are dropped
	errMsg    string
}

// NewDashboardView creates the dashboard screen.
func NewDashboardView(deps Deps) DashboardView {
	return DashboardView{deps: deps}
}

func (v DashboardView) Init() tea.Cmd {
	return func() tea.Msg { return dashboardActivatedMsg{} }
}

func (v DashboardView) IsInputMode() bool { return false }

func (v DashboardView) SetSize(width, height int) DashboardView {
	v.width = width
	v.height = height
	return v
}

// loadFromCache paints the last snapshot immediately; the concurrent
// fetch replaces it when the backend answers.
func (v DashboardView) loadFromCache() tea.Cmd {
	return func() tea.Msg {
		if v.deps.Cache == nil {
			return nil
		}
		var d deck.Dashboard
		if _, err := v.deps.Cache.Get(context.Background(), "dashboard", &d); err != nil {
			return nil
		}
		return dashboardLoadedMsg{dashboard: &d, fromCache: true}
	}
}

func (v DashboardView) fetch() tea.Cmd {
	return func() tea.Msg {
		d, err := v.deps.Client.Dashboard(context.Background())
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if v.deps.Cache != nil {
			_ = v.deps.Cache.Put(context.Background(), "dashboard", d)
		}
		return dashboardLoadedMsg{dashboard: d}
	}
}

func (v DashboardView) tick() tea.Cmd {
	gen := v.pollGen
	return tea.Tick(dashboardPollInterval, func(time.Time) tea.Msg {
		return dashboardTickMsg{gen: gen}
	})
}

func (v DashboardView) Update(msg tea.Msg) (DashboardView, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardActivatedMsg:
		// Bumping the generation retires any tick chain started by a
		// previous activation, so revisiting the view never stacks
		// a second poll loop on the first.
		v.pollGen++
		return v, tea.Batch(v.loadFromCache(), v.fetch(), v.tick())

	case dashboardLoadedMsg:
		if msg.err != nil {
			// Keep whatever is on screen; just flag it as stale.
			v.loading = false
			v.stale = true
			v.errMsg = errorText(msg.err)
			return v, nil
		}
		if msg.fromCache && v.dashboard != nil {
			// A live fetch already landed; the cache read lost the race.
			return v, nil
		}
		v.dashboard = msg.dashboard
		v.stale = msg.fromCache
		v.loading = false
		if !msg.fromCache {
			v.errMsg = ""
		}
		return v, nil

	case dashboardTickMsg:
		if msg.gen != v.pollGen {
			return v, nil
		}
		return v, tea.Batch(v.fetch(), v.tick())

	case tea.KeyMsg:
		if msg.String() == "r" {
			v.loading = true
			return v, v.fetch()
		}
	}
	return v, nil
}

func (v DashboardView) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#61AFEF"))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98C379"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))

	var b strings.Builder

	if v.dashboard == nil {
		// Fallback render: the cached profile still identifies the
		// account even when the aggregate endpoint is unreachable.
		if user, err := v.deps.Session.Current(); err == nil {
			b.WriteString(titleStyle.Render("Welcome back, " + user.Name))
			b.WriteString("\n\n")
		}
		if v.errMsg != "" {
			b.WriteString(errStyle.Render(v.errMsg))
		} else {
			b.WriteString(dimStyle.Render("Loading dashboard..."))
		}
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}

	d := v.dashboard

	header := titleStyle.Render("Welcome back, " + d.User.Name)
	if v.stale {
		header += "  " + dimStyle.Render("(cached)")
	}
	if v.loading {
		header += "  " + dimStyle.Render("refreshing...")
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	tally := deck.TallyGoals(d.Goals)
	b.WriteString(sectionStyle.Render("Goals"))
	b.WriteString(fmt.Sprintf("  %d total · %d completed · %d open\n", tally.Total, tally.Completed, tally.Pending))
	for _, g := range topGoals(d.Goals, 3) {
		b.WriteString(fmt.Sprintf("  %3d%%  %-8s %s\n", g.Progress, g.Priority, g.Title))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Upcoming"))
	b.WriteString("\n")
	upcoming := filter.Upcoming(d.Calendar, time.Now(), 3)
	if len(upcoming) == 0 {
		b.WriteString(dimStyle.Render("  nothing scheduled") + "\n")
	}
	for _, e := range upcoming {
		b.WriteString(fmt.Sprintf("  %s  %s\n", e.StartTime.Local().Format("Jan 02 15:04"), e.Title))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Teams"))
	b.WriteString("\n")
	if len(d.Teams) == 0 {
		b.WriteString(dimStyle.Render("  no teams yet") + "\n")
	}
	for _, t := range d.Teams {
		line := fmt.Sprintf("  %-24s %d members", t.Name, t.MemberCount)
		if t.UnreadMessages > 0 {
			line += fmt.Sprintf("  (%d unread)", t.UnreadMessages)
		}
		b.WriteString(line + "\n")
	}

	if d.Summary != "" {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Summary"))
		b.WriteString("\n  " + d.Summary + "\n")
	}

	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(v.errMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// topGoals returns up to n goals, highest priority first.
func topGoals(goals []deck.Goal, n int) []deck.Goal {
	sorted := filter.SortGoalsByPriority(goals)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
