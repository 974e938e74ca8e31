package ui

// View represents the current active view
type View int

const (
	ViewLogin View = iota
	ViewDashboard
	ViewGoals
	ViewCalendar
	ViewTeams
	ViewNotifications
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewLogin:
		return "Login"
	case ViewDashboard:
		return "Dashboard"
	case ViewGoals:
		return "Goals"
	case ViewCalendar:
		return "Calendar"
	case ViewTeams:
		return "Teams"
	case ViewNotifications:
		return "Notifications"
	default:
		return "Unknown"
	}
}

// Messages for inter-component communication

// SwitchViewMsg requests a view change
type SwitchViewMsg struct {
	View View
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// SessionEndedMsg is delivered when the stored credential is cleared,
// either by an explicit logout or by the backend rejecting the token.
type SessionEndedMsg struct{}
