// Package filter implements in-memory filtering and sorting over
// synced collections. Every function is pure: input slices are never
// mutated, so re-applying a filter to an already filtered result is a
// no-op and views can re-derive their display list on every refresh.
package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
)

// Apply returns the items for which keep reports true.
func Apply[T any](items []T, keep func(T) bool) []T {
	if keep == nil {
		return slices.Clone(items)
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Search matches query as a case-insensitive substring over the text
// fields produced by fields. An empty query matches everything.
func Search[T any](items []T, query string, fields func(T) []string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return slices.Clone(items)
	}
	return Apply(items, func(item T) bool {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), query) {
				return true
			}
		}
		return false
	})
}

// GoalFields exposes the searchable text of a goal.
func GoalFields(g deck.Goal) []string {
	return []string{g.Title, g.Description}
}

// EventFields exposes the searchable text of an event.
func EventFields(e deck.Event) []string {
	return []string{e.Title, e.Description}
}

// TeamFields exposes the searchable text of a team.
func TeamFields(t deck.Team) []string {
	return []string{t.Name, t.Description}
}

// ByStatus keeps goals whose derived status matches. The zero value
// keeps everything, so an unset dropdown needs no special casing.
func ByStatus(status deck.GoalStatus) func(deck.Goal) bool {
	return func(g deck.Goal) bool {
		return status == "" || g.Status() == status
	}
}

// ByPriority keeps goals with the given priority. The zero value keeps
// everything.
func ByPriority(priority deck.Priority) func(deck.Goal) bool {
	return func(g deck.Goal) bool {
		return priority == "" || g.Priority == priority
	}
}

// Unread keeps notifications not yet marked read.
func Unread(n deck.Notification) bool {
	return !n.Read
}

// SortGoalsByCreated orders goals newest first. Ties keep their
// relative order so repeated refreshes do not reshuffle the list.
func SortGoalsByCreated(goals []deck.Goal) []deck.Goal {
	out := slices.Clone(goals)
	slices.SortStableFunc(out, func(a, b deck.Goal) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// SortGoalsByPriority orders goals high to low, newest first within a
// priority band.
func SortGoalsByPriority(goals []deck.Goal) []deck.Goal {
	out := slices.Clone(goals)
	slices.SortStableFunc(out, func(a, b deck.Goal) int {
		if d := b.Priority.Rank() - a.Priority.Rank(); d != 0 {
			return d
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// SortGoalsByDeadline orders goals soonest deadline first. Goals
// without a deadline sort last.
func SortGoalsByDeadline(goals []deck.Goal) []deck.Goal {
	out := slices.Clone(goals)
	slices.SortStableFunc(out, func(a, b deck.Goal) int {
		switch {
		case a.Deadline.IsZero() && b.Deadline.IsZero():
			return 0
		case a.Deadline.IsZero():
			return 1
		case b.Deadline.IsZero():
			return -1
		default:
			return a.Deadline.Compare(b.Deadline)
		}
	})
	return out
}

// SortEventsByStart orders events chronologically.
func SortEventsByStart(events []deck.Event) []deck.Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b deck.Event) int {
		return a.StartTime.Compare(b.StartTime)
	})
	return out
}

// Upcoming keeps events starting at or after now, soonest first,
// capped at limit. A limit of 0 means no cap.
func Upcoming(events []deck.Event, now time.Time, limit int) []deck.Event {
	out := SortEventsByStart(Apply(events, func(e deck.Event) bool {
		return !e.StartTime.Before(now)
	}))
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// EventsOnDay keeps events overlapping the calendar day containing day,
// in day's location.
func EventsOnDay(events []deck.Event, day time.Time) []deck.Event {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	return SortEventsByStart(Apply(events, func(e deck.Event) bool {
		if e.AllDay {
			return e.StartTime.Before(end) && !e.StartTime.Before(start.AddDate(0, 0, -1))
		}
		eventEnd := e.EndTime
		if eventEnd.IsZero() {
			eventEnd = e.StartTime
		}
		return e.StartTime.Before(end) && !eventEnd.Before(start)
	}))
}

// SortNotifications orders notifications newest first.
func SortNotifications(notifications []deck.Notification) []deck.Notification {
	out := slices.Clone(notifications)
	slices.SortStableFunc(out, func(a, b deck.Notification) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

// SortMessages orders chat messages oldest first for transcript display.
func SortMessages(messages []deck.ChatMessage) []deck.ChatMessage {
	out := slices.Clone(messages)
	slices.SortStableFunc(out, func(a, b deck.ChatMessage) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}
