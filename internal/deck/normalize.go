package deck

import (
	"encoding/json"
	"strings"
	"time"
)

// The backend is not consistent about response shapes: some endpoints
// return a bare array, others wrap it under a named field, and the goal
// payloads arrive with Go-style exported field names (ID, Title) while
// everything else uses snake_case. The helpers below absorb all of that
// so the views never crash on a shape mismatch. Items that fail the
// basic shape check are dropped, not surfaced as errors.

// looseObject is a decoded JSON object with tolerant key lookup.
type looseObject map[string]json.RawMessage

// get resolves a key ignoring case and underscores, so "created_at",
// "CreatedAt" and "createdAt" all match.
func (o looseObject) get(key string) (json.RawMessage, bool) {
	if raw, ok := o[key]; ok {
		return raw, true
	}
	want := foldKey(key)
	for k, raw := range o {
		if foldKey(k) == want {
			return raw, true
		}
	}
	return nil, false
}

func foldKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(k, "_", ""))
}

func (o looseObject) str(key string) (string, bool) {
	raw, ok := o.get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func (o looseObject) num(key string) (float64, bool) {
	raw, ok := o.get(key)
	if !ok {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

func (o looseObject) flag(key string) bool {
	raw, ok := o.get(key)
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}

// when parses a timestamp field, accepting RFC3339 with or without
// fractional seconds. Zero time on absence or parse failure.
func (o looseObject) when(key string) time.Time {
	s, ok := o.str(key)
	if !ok || s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// objects decodes a JSON array element by element, skipping entries
// that are not objects. One bad element must not throw away the rest.
func objects(raw []byte) ([]looseObject, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	items := make([]looseObject, 0, len(elems))
	for _, e := range elems {
		var o looseObject
		if err := json.Unmarshal(e, &o); err != nil {
			continue
		}
		items = append(items, o)
	}
	return items, true
}

// collection extracts the list of objects from a response body that is
// either a bare array or an object wrapping the array under one of the
// given field names.
func collection(body []byte, wrappers ...string) []looseObject {
	if items, ok := objects(body); ok {
		return items
	}

	var envelope looseObject
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	for _, w := range wrappers {
		raw, ok := envelope.get(w)
		if !ok {
			continue
		}
		if items, ok := objects(raw); ok {
			return items
		}
	}
	return nil
}

// Goals normalizes a goal collection response. Items missing an id,
// title or description are dropped; progress defaults to zero.
func Goals(body []byte) []Goal {
	objs := collection(body, "goals", "data")
	goals := make([]Goal, 0, len(objs))
	for _, o := range objs {
		id, okID := o.str("id")
		title, okTitle := o.str("title")
		desc, okDesc := o.str("description")
		if !okID || id == "" || !okTitle || !okDesc {
			continue
		}
		progress, _ := o.num("progress")
		priority, _ := o.str("priority")
		goals = append(goals, Goal{
			ID:          id,
			Title:       title,
			Description: desc,
			Priority:    Priority(priority),
			Deadline:    o.when("deadline"),
			Progress:    int(progress),
			CreatedAt:   o.when("created_at"),
		})
	}
	return goals
}

// Events normalizes a calendar collection response.
func Events(body []byte) []Event {
	objs := collection(body, "events", "calendar", "data")
	events := make([]Event, 0, len(objs))
	for _, o := range objs {
		id, okID := o.str("id")
		title, okTitle := o.str("title")
		if !okID || id == "" || !okTitle {
			continue
		}
		desc, _ := o.str("description")
		color, _ := o.str("color")
		events = append(events, Event{
			ID:          id,
			Title:       title,
			Description: desc,
			StartTime:   o.when("start_time"),
			EndTime:     o.when("end_time"),
			AllDay:      o.flag("all_day"),
			Color:       color,
		})
	}
	return events
}

// Teams normalizes a team collection response.
func Teams(body []byte) []Team {
	objs := collection(body, "teams", "data")
	teams := make([]Team, 0, len(objs))
	for _, o := range objs {
		if t, ok := teamFrom(o); ok {
			teams = append(teams, t)
		}
	}
	return teams
}

// TeamDetail normalizes a single-team response, wrapped or bare.
func TeamDetail(body []byte) (Team, bool) {
	var o looseObject
	if err := json.Unmarshal(body, &o); err != nil {
		return Team{}, false
	}
	if raw, ok := o.get("team"); ok {
		var inner looseObject
		if err := json.Unmarshal(raw, &inner); err == nil {
			o = inner
		}
	}
	return teamFrom(o)
}

func teamFrom(o looseObject) (Team, bool) {
	id, okID := o.str("id")
	name, okName := o.str("name")
	if !okID || id == "" || !okName || name == "" {
		return Team{}, false
	}
	desc, _ := o.str("description")
	role, _ := o.str("role")
	if role == "" {
		role = string(RoleOwner)
	}
	memberCount, _ := o.num("member_count")
	if memberCount == 0 {
		memberCount = 1
	}
	unread, _ := o.num("unread_messages")

	team := Team{
		ID:             id,
		Name:           name,
		Description:    desc,
		MemberCount:    int(memberCount),
		UnreadMessages: int(unread),
		Role:           TeamRole(role),
		CreatedAt:      o.when("created_at"),
		LastActivity:   o.when("last_activity"),
	}
	if raw, ok := o.get("members"); ok {
		var members []TeamMember
		if err := json.Unmarshal(raw, &members); err == nil {
			team.Members = members
		}
	}
	return team, true
}

// Invitations normalizes a pending-invitation collection response.
func Invitations(body []byte) []Invitation {
	objs := collection(body, "invitations", "data")
	invites := make([]Invitation, 0, len(objs))
	for _, o := range objs {
		id, okID := o.str("id")
		teamName, okName := o.str("team_name")
		if !okID || id == "" || !okName {
			continue
		}
		inviter, _ := o.str("inviter_name")
		invites = append(invites, Invitation{
			ID:          id,
			TeamName:    teamName,
			InviterName: inviter,
			CreatedAt:   o.when("created_at"),
		})
	}
	return invites
}

// Notifications normalizes a notification collection response.
func Notifications(body []byte) []Notification {
	objs := collection(body, "notifications", "data")
	notes := make([]Notification, 0, len(objs))
	for _, o := range objs {
		id, okID := o.str("id")
		message, okMsg := o.str("message")
		if !okID || id == "" || !okMsg {
			continue
		}
		notes = append(notes, Notification{
			ID:        id,
			Message:   message,
			Read:      o.flag("read"),
			Timestamp: o.when("timestamp"),
		})
	}
	return notes
}

// Messages normalizes a chat message collection response.
func Messages(body []byte) []ChatMessage {
	objs := collection(body, "messages", "chat", "data")
	msgs := make([]ChatMessage, 0, len(objs))
	for _, o := range objs {
		id, okID := o.str("id")
		message, okMsg := o.str("message")
		if !okID || id == "" || !okMsg {
			continue
		}
		sender, _ := o.str("sender_id")
		senderName, _ := o.str("sender_name")
		teamID, _ := o.str("team_id")
		msgs = append(msgs, ChatMessage{
			ID:         id,
			Message:    message,
			SenderID:   sender,
			SenderName: senderName,
			TeamID:     teamID,
			Timestamp:  o.when("timestamp"),
		})
	}
	return msgs
}

// DashboardPayload normalizes the aggregate dashboard response. The
// envelope fields are each normalized with the same tolerance as their
// standalone endpoints.
func DashboardPayload(body []byte) (Dashboard, bool) {
	var o looseObject
	if err := json.Unmarshal(body, &o); err != nil {
		return Dashboard{}, false
	}

	var dash Dashboard
	if raw, ok := o.get("user"); ok {
		var user looseObject
		if err := json.Unmarshal(raw, &user); err == nil {
			dash.User.ID, _ = user.str("id")
			dash.User.Name, _ = user.str("name")
			dash.User.Email, _ = user.str("email")
			dash.User.Role, _ = user.str("role")
			dash.User.SubscriptionStatus, _ = user.str("subscription_status")
			dash.User.CreatedAt = user.when("created_at")
		}
	}
	if raw, ok := o.get("teams"); ok {
		dash.Teams = Teams(raw)
	}
	if raw, ok := o.get("goals"); ok {
		dash.Goals = Goals(raw)
	}
	if raw, ok := o.get("calendar"); ok {
		dash.Calendar = Events(raw)
	}
	if raw, ok := o.get("chat"); ok {
		dash.Chat = Messages(raw)
	}
	dash.Summary, _ = o.str("summary")
	return dash, true
}
