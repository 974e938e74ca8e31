package deck

import (
	"testing"
	"time"
)

func TestGoals_BareArray(t *testing.T) {
	body := []byte(`[
		{"id":"g1","title":"Ship","description":"cut the tag","priority":"high","progress":50,"created_at":"2026-03-01T12:00:00Z"}
	]`)

	goals := Goals(body)
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	g := goals[0]
	if g.ID != "g1" || g.Title != "Ship" || g.Progress != 50 {
		t.Errorf("unexpected goal: %+v", g)
	}
	if g.CreatedAt.IsZero() {
		t.Error("expected created_at parsed")
	}
}

func TestGoals_WrappedObject(t *testing.T) {
	body := []byte(`{"goals":[{"id":"g1","title":"Ship","description":"d"}]}`)
	if got := Goals(body); len(got) != 1 {
		t.Errorf("expected wrapped array accepted, got %d goals", len(got))
	}
}

func TestGoals_PascalCaseFields(t *testing.T) {
	body := []byte(`[{"ID":"g1","Title":"Ship","Description":"d","Priority":"low","Progress":25,"CreatedAt":"2026-03-01T12:00:00Z"}]`)

	goals := Goals(body)
	if len(goals) != 1 {
		t.Fatalf("expected PascalCase fields accepted, got %d goals", len(goals))
	}
	if goals[0].Priority != PriorityLow || goals[0].Progress != 25 {
		t.Errorf("unexpected goal: %+v", goals[0])
	}
}

func TestGoals_DropsMalformedItems(t *testing.T) {
	body := []byte(`[
		{"id":"g1","title":"Valid","description":"d"},
		{"title":"no id","description":"d"},
		{"id":"g3","description":"no title"},
		{"id":"g4","title":"no description"}
	]`)

	goals := Goals(body)
	if len(goals) != 1 || goals[0].ID != "g1" {
		t.Errorf("expected only the valid item, got %v", goals)
	}
}

func TestGoals_NonObjectElements(t *testing.T) {
	body := []byte(`[
		{"id":"g1","title":"Ship v1","description":"d","priority":"high"},
		"junk",
		42,
		null,
		{"id":"g2","title":"Also valid","description":"d"}
	]`)

	goals := Goals(body)
	if len(goals) != 2 || goals[0].ID != "g1" || goals[1].ID != "g2" {
		t.Errorf("expected the well-formed goals kept, got %v", goals)
	}
}

func TestGoals_GarbageBody(t *testing.T) {
	if got := Goals([]byte(`"not an array"`)); len(got) != 0 {
		t.Errorf("expected no goals from garbage, got %d", len(got))
	}
	if got := Goals([]byte(`{invalid`)); len(got) != 0 {
		t.Errorf("expected no goals from invalid JSON, got %d", len(got))
	}
}

func TestGoals_DateOnlyDeadline(t *testing.T) {
	body := []byte(`[{"id":"g1","title":"T","description":"d","deadline":"2026-12-31"}]`)
	goals := Goals(body)
	if len(goals) != 1 {
		t.Fatal("expected 1 goal")
	}
	want := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
	if !goals[0].Deadline.Equal(want) {
		t.Errorf("deadline = %v, want %v", goals[0].Deadline, want)
	}
}

func TestEvents_WrapperVariants(t *testing.T) {
	event := `{"id":"e1","title":"Standup","start_time":"2026-03-02T09:00:00Z","all_day":false}`
	for _, body := range []string{
		`[` + event + `]`,
		`{"events":[` + event + `]}`,
		`{"calendar":[` + event + `]}`,
	} {
		if got := Events([]byte(body)); len(got) != 1 {
			t.Errorf("body %s: expected 1 event, got %d", body, len(got))
		}
	}
}

func TestTeamDetail_Defaults(t *testing.T) {
	team, ok := TeamDetail([]byte(`{"team":{"id":"t1","name":"Infra"}}`))
	if !ok {
		t.Fatal("expected team parsed")
	}
	if team.Role != RoleOwner {
		t.Errorf("expected default role owner, got %q", team.Role)
	}
	if team.MemberCount != 1 {
		t.Errorf("expected default member count 1, got %d", team.MemberCount)
	}
}

func TestTeamDetail_BareObject(t *testing.T) {
	team, ok := TeamDetail([]byte(`{"id":"t1","name":"Infra","role":"member","member_count":4}`))
	if !ok {
		t.Fatal("expected team parsed")
	}
	if team.Role != RoleMember || team.MemberCount != 4 {
		t.Errorf("unexpected team: %+v", team)
	}
}

func TestTeamDetail_Unusable(t *testing.T) {
	if _, ok := TeamDetail([]byte(`{"team":{"name":"no id"}}`)); ok {
		t.Error("expected team without id rejected")
	}
	if _, ok := TeamDetail([]byte(`[]`)); ok {
		t.Error("expected array body rejected")
	}
}

func TestTeams_WithMembers(t *testing.T) {
	body := []byte(`{"teams":[{"id":"t1","name":"Infra","members":[{"id":"u1","name":"Sam","email":"sam@example.com","role":"admin"}]}]}`)
	teams := Teams(body)
	if len(teams) != 1 {
		t.Fatalf("expected 1 team, got %d", len(teams))
	}
	if len(teams[0].Members) != 1 || teams[0].Members[0].Role != "admin" {
		t.Errorf("unexpected members: %v", teams[0].Members)
	}
}

func TestNotifications_ReadFlag(t *testing.T) {
	body := []byte(`{"notifications":[
		{"id":"n1","message":"hello","read":true,"timestamp":"2026-03-01T12:00:00Z"},
		{"id":"n2","message":"world"}
	]}`)

	notes := Notifications(body)
	if len(notes) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notes))
	}
	if !notes[0].Read || notes[1].Read {
		t.Errorf("unexpected read flags: %v", notes)
	}
}

func TestDashboardPayload(t *testing.T) {
	body := []byte(`{
		"user":{"id":"u1","name":"Sam","email":"sam@example.com"},
		"goals":[{"id":"g1","title":"Ship","description":"d","progress":100}],
		"teams":[{"id":"t1","name":"Infra"}],
		"calendar":[{"id":"e1","title":"Standup","start_time":"2026-03-02T09:00:00Z"}],
		"summary":"all good"
	}`)

	dash, ok := DashboardPayload(body)
	if !ok {
		t.Fatal("expected dashboard parsed")
	}
	if dash.User.Name != "Sam" {
		t.Errorf("user = %+v", dash.User)
	}
	if len(dash.Goals) != 1 || len(dash.Teams) != 1 || len(dash.Calendar) != 1 {
		t.Errorf("unexpected sections: %d goals, %d teams, %d events",
			len(dash.Goals), len(dash.Teams), len(dash.Calendar))
	}
	if dash.Summary != "all good" {
		t.Errorf("summary = %q", dash.Summary)
	}
}

func TestDashboardPayload_Invalid(t *testing.T) {
	if _, ok := DashboardPayload([]byte(`[]`)); ok {
		t.Error("expected array body rejected")
	}
}
