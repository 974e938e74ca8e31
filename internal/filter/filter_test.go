package filter

import (
	"testing"
	"time"

	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
}

func sampleGoals() []deck.Goal {
	return []deck.Goal{
		{ID: "g1", Title: "Ship release", Description: "cut the tag", Priority: deck.PriorityHigh, Progress: 50, CreatedAt: day(1), Deadline: day(10)},
		{ID: "g2", Title: "Write docs", Description: "user guide", Priority: deck.PriorityLow, Progress: 0, CreatedAt: day(3), Deadline: day(5)},
		{ID: "g3", Title: "Fix login bug", Description: "ships broken", Priority: deck.PriorityMedium, Progress: 100, CreatedAt: day(2)},
	}
}

func TestSearchMatchesCaseInsensitive(t *testing.T) {
	goals := sampleGoals()

	got := Search(goals, "SHIP", GoalFields)

	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	for _, g := range got {
		if g.ID != "g1" && g.ID != "g3" {
			t.Errorf("unexpected match %q", g.ID)
		}
	}
}

func TestSearchEmptyQueryKeepsAll(t *testing.T) {
	goals := sampleGoals()
	if got := Search(goals, "  ", GoalFields); len(got) != len(goals) {
		t.Errorf("expected all items, got %d", len(got))
	}
}

func TestSearchMatchesDescription(t *testing.T) {
	got := Search(sampleGoals(), "user guide", GoalFields)
	if len(got) != 1 || got[0].ID != "g2" {
		t.Fatalf("expected g2, got %v", got)
	}
}

func TestByStatus(t *testing.T) {
	goals := sampleGoals()

	completed := Apply(goals, ByStatus(deck.StatusCompleted))
	if len(completed) != 1 || completed[0].ID != "g3" {
		t.Errorf("expected g3 completed, got %v", completed)
	}

	all := Apply(goals, ByStatus(""))
	if len(all) != len(goals) {
		t.Errorf("expected zero status to keep all, got %d", len(all))
	}
}

func TestByPriority(t *testing.T) {
	goals := sampleGoals()
	high := Apply(goals, ByPriority(deck.PriorityHigh))
	if len(high) != 1 || high[0].ID != "g1" {
		t.Errorf("expected g1, got %v", high)
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	goals := sampleGoals()
	once := Apply(goals, ByPriority(deck.PriorityHigh))
	twice := Apply(once, ByPriority(deck.PriorityHigh))
	if len(once) != len(twice) {
		t.Errorf("expected idempotent filter, got %d then %d", len(once), len(twice))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	goals := sampleGoals()
	Apply(goals, ByStatus(deck.StatusCompleted))
	if goals[0].ID != "g1" || len(goals) != 3 {
		t.Error("input slice was mutated")
	}
}

func TestSortGoalsByCreated(t *testing.T) {
	got := SortGoalsByCreated(sampleGoals())
	want := []string{"g2", "g3", "g1"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestSortGoalsByPriority(t *testing.T) {
	got := SortGoalsByPriority(sampleGoals())
	want := []string{"g1", "g3", "g2"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestSortGoalsByDeadline(t *testing.T) {
	got := SortGoalsByDeadline(sampleGoals())

	// g3 has no deadline and must sort last.
	want := []string{"g2", "g1", "g3"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, got[i].ID, id)
		}
	}

	// Deadlines are non-decreasing among goals that have one.
	for i := 1; i < len(got); i++ {
		if got[i].Deadline.IsZero() {
			continue
		}
		if got[i].Deadline.Before(got[i-1].Deadline) {
			t.Errorf("deadline order violated at %d", i)
		}
	}
}

func TestUpcoming(t *testing.T) {
	events := []deck.Event{
		{ID: "e1", Title: "Standup", StartTime: day(2)},
		{ID: "e2", Title: "Retro", StartTime: day(8)},
		{ID: "e3", Title: "Planning", StartTime: day(5)},
	}

	got := Upcoming(events, day(3), 0)
	want := []string{"e3", "e2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, got[i].ID, id)
		}
	}

	if capped := Upcoming(events, day(1), 1); len(capped) != 1 {
		t.Errorf("expected limit to cap results, got %d", len(capped))
	}
}

func TestEventsOnDay(t *testing.T) {
	events := []deck.Event{
		{ID: "e1", StartTime: day(2), EndTime: day(2).Add(time.Hour)},
		{ID: "e2", StartTime: day(4), EndTime: day(4).Add(time.Hour)},
		{ID: "e3", StartTime: day(2).Add(-13 * time.Hour), EndTime: day(2).Add(time.Hour)}, // spans midnight into day 2
	}

	got := EventsOnDay(events, day(2))
	if len(got) != 2 {
		t.Fatalf("expected 2 events on day, got %d", len(got))
	}
}

func TestUnread(t *testing.T) {
	notifications := []deck.Notification{
		{ID: "n1", Read: true},
		{ID: "n2", Read: false},
	}
	got := Apply(notifications, Unread)
	if len(got) != 1 || got[0].ID != "n2" {
		t.Errorf("expected n2, got %v", got)
	}
}

func TestSortNotificationsNewestFirst(t *testing.T) {
	notifications := []deck.Notification{
		{ID: "n1", Timestamp: day(1)},
		{ID: "n2", Timestamp: day(3)},
	}
	got := SortNotifications(notifications)
	if got[0].ID != "n2" {
		t.Errorf("expected newest first, got %q", got[0].ID)
	}
}

func TestSortMessagesOldestFirst(t *testing.T) {
	messages := []deck.ChatMessage{
		{ID: "m2", Timestamp: day(3)},
		{ID: "m1", Timestamp: day(1)},
	}
	got := SortMessages(messages)
	if got[0].ID != "m1" {
		t.Errorf("expected oldest first, got %q", got[0].ID)
	}
}
