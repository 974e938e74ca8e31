package deck

import (
	"time"
)

// Priority represents the urgency classification of a goal
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort weight of a priority. Higher sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// GoalStatus is the display state derived from progress. It is never
// stored; the backend's progress value is the single source.
type GoalStatus string

const (
	StatusPending    GoalStatus = "pending"
	StatusInProgress GoalStatus = "in_progress"
	StatusCompleted  GoalStatus = "completed"
)

// TeamRole gates which affordances a member sees (invite is owner/admin only)
type TeamRole string

const (
	RoleOwner  TeamRole = "owner"
	RoleAdmin  TeamRole = "admin"
	RoleMember TeamRole = "member"
)

// CanInvite reports whether the role may invite new members.
func (r TeamRole) CanInvite() bool {
	return r == RoleOwner || r == RoleAdmin
}

// User is the cached profile half of the session credential
type User struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	SubscriptionStatus string    `json:"subscription_status,omitempty"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
}

// Goal is a tracked objective owned by the backend
type Goal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Deadline    time.Time `json:"deadline"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
}

// Status derives the display state: 0 is pending, 100 is completed,
// anything in between is in progress.
func (g Goal) Status() GoalStatus {
	switch {
	case g.Progress >= 100:
		return StatusCompleted
	case g.Progress > 0:
		return StatusInProgress
	default:
		return StatusPending
	}
}

// BumpProgress returns progress advanced by delta, clamped to [0,100].
func BumpProgress(progress, delta int) int {
	p := progress + delta
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// Event is a calendar entry. start <= end is expected but the backend
// is the one that enforces it.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	AllDay      bool      `json:"all_day"`
	Color       string    `json:"color"`
}

// TeamMember is a single member entry within a team detail payload
type TeamMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Team is a collaboration group; membership is managed server-side
type Team struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	MemberCount    int          `json:"member_count"`
	UnreadMessages int          `json:"unread_messages"`
	Role           TeamRole     `json:"role"`
	CreatedAt      time.Time    `json:"created_at"`
	LastActivity   time.Time    `json:"last_activity,omitempty"`
	Members        []TeamMember `json:"members,omitempty"`
}

// Invitation is a pending team invite for the current user
type Invitation struct {
	ID          string    `json:"id"`
	TeamName    string    `json:"team_name"`
	InviterName string    `json:"inviter_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notification is a server-generated message with a read flag
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatMessage is a single team chat entry
type ChatMessage struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	TeamID     string    `json:"team_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Dashboard is the aggregate payload backing the dashboard view
type Dashboard struct {
	User     User          `json:"user"`
	Teams    []Team        `json:"teams"`
	Goals    []Goal        `json:"goals"`
	Calendar []Event       `json:"calendar"`
	Chat     []ChatMessage `json:"chat"`
	Summary  string        `json:"summary"`
}

// UnreadCount counts notifications still marked unread.
func UnreadCount(notifications []Notification) int {
	n := 0
	for _, note := range notifications {
		if !note.Read {
			n++
		}
	}
	return n
}

// GoalTally summarizes a goal collection for aggregate views.
type GoalTally struct {
	Total     int
	Completed int
	Pending   int
}

// TallyGoals counts completed (progress 100) and not-yet-completed goals.
func TallyGoals(goals []Goal) GoalTally {
	t := GoalTally{Total: len(goals)}
	for _, g := range goals {
		if g.Progress >= 100 {
			t.Completed++
		} else {
			t.Pending++
		}
	}
	return t
}
