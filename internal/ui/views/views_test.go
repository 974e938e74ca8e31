package views

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
	"github.com/xenonnoble69/assistdeck-frontend/internal/session"
)

func TestNextStatusFilterCycles(t *testing.T) {
	s := deck.GoalStatus("")
	seen := map[deck.GoalStatus]bool{}
	for i := 0; i < 4; i++ {
		s = nextStatusFilter(s)
		seen[s] = true
	}
	if s != "" {
		t.Errorf("expected cycle to return to empty, got %q", s)
	}
	if !seen[deck.StatusPending] || !seen[deck.StatusInProgress] || !seen[deck.StatusCompleted] {
		t.Errorf("cycle missed a status: %v", seen)
	}
}

func TestNextPriorityFilterCycles(t *testing.T) {
	p := deck.Priority("")
	for i := 0; i < 4; i++ {
		p = nextPriorityFilter(p)
	}
	if p != "" {
		t.Errorf("expected cycle to return to empty, got %q", p)
	}
}

func TestFormDeadline(t *testing.T) {
	if got := formDeadline(time.Time{}); got != "" {
		t.Errorf("expected empty for zero time, got %q", got)
	}
	d := time.Date(2026, time.December, 31, 23, 59, 0, 0, time.Local)
	if got := formDeadline(d); got != "2026-12-31" {
		t.Errorf("formDeadline = %q", got)
	}
}

func TestParseEventTime(t *testing.T) {
	got, err := parseEventTime("2026-08-29 09:30")
	if err != nil {
		t.Fatalf("parseEventTime error = %v", err)
	}
	if got.Hour() != 9 || got.Minute() != 30 {
		t.Errorf("unexpected time %v", got)
	}

	got, err = parseEventTime("2026-08-29")
	if err != nil {
		t.Fatalf("parseEventTime date-only error = %v", err)
	}
	if got.Hour() != 0 {
		t.Errorf("expected midnight for date-only input, got %v", got)
	}

	if _, err := parseEventTime("next tuesday"); err == nil {
		t.Error("expected error for unparseable input")
	}
}

func TestCalendarDaysInMonth(t *testing.T) {
	v := CalendarView{year: 2026, month: time.February}
	if got := v.daysInMonth(); got != 28 {
		t.Errorf("February 2026 should have 28 days, got %d", got)
	}
	v = CalendarView{year: 2028, month: time.February}
	if got := v.daysInMonth(); got != 29 {
		t.Errorf("February 2028 should have 29 days, got %d", got)
	}
}

func TestDashboardStaleTickDropped(t *testing.T) {
	v := NewDashboardView(Deps{})
	v, _ = v.Update(dashboardActivatedMsg{})
	stale := v.pollGen

	// Reactivated before the first chain's tick fired.
	v, _ = v.Update(dashboardActivatedMsg{})

	if _, cmd := v.Update(dashboardTickMsg{gen: stale}); cmd != nil {
		t.Error("tick from a retired activation should not refetch or reschedule")
	}
	if _, cmd := v.Update(dashboardTickMsg{gen: v.pollGen}); cmd == nil {
		t.Error("tick from the current activation should keep the poll loop running")
	}
}

func TestTeamsInDetail(t *testing.T) {
	v := NewTeamsView(Deps{})
	if v.InDetail() {
		t.Error("fresh view should not report detail mode")
	}
	v, _ = v.Update(teamDetailMsg{team: &deck.Team{ID: "t1", Name: "Alpha"}})
	if !v.InDetail() {
		t.Error("expected detail mode after a detail load")
	}

	// "q" backs out of the detail rather than quitting the program.
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if v.InDetail() {
		t.Error("expected q to return to the team list")
	}
}

func TestSendMessageRequiresSession(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	v := NewTeamsView(Deps{Session: store})

	msg := v.sendMessage("t1", "hello")()
	action, ok := msg.(teamActionMsg)
	if !ok {
		t.Fatalf("unexpected message type %T", msg)
	}
	if action.err == nil {
		t.Error("expected an error when no credential is stored")
	}
}

func TestTopGoals(t *testing.T) {
	goals := []deck.Goal{
		{ID: "low", Priority: deck.PriorityLow},
		{ID: "high", Priority: deck.PriorityHigh},
		{ID: "medium", Priority: deck.PriorityMedium},
	}
	top := topGoals(goals, 2)
	if len(top) != 2 || top[0].ID != "high" || top[1].ID != "medium" {
		t.Errorf("unexpected top goals: %v", top)
	}
}
