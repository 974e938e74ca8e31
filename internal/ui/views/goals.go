package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xenonnoble69/assistdeck-frontend/internal/api"
	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
	"github.com/xenonnoble69/assistdeck-frontend/internal/filter"
	dsync "github.com/xenonnoble69/assistdeck-frontend/internal/sync"
)

// GoalsMode represents the current input mode of the goals view
type GoalsMode int

const (
	GoalsModeNormal GoalsMode = iota
	GoalsModeSearch
	GoalsModeForm
	GoalsModeConfirmDelete
)

// GoalsSort selects the active sort order
type GoalsSort int

const (
	SortCreated GoalsSort = iota
	SortPriority
	SortDeadline
)

func (s GoalsSort) String() string {
	switch s {
	case SortCreated:
		return "newest"
	case SortPriority:
		return "priority"
	case SortDeadline:
		return "deadline"
	default:
		return "unknown"
	}
}

// goal form field order
const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
	fieldDeadline
	fieldCount
)

type goalsLoadedMsg struct{ err error }

type goalMutatedMsg struct {
	action string
	err    error
}

// GoalsView lists goals with local search, filtering and sorting, and
// dispatches create/update/delete mutations followed by a reload.
type GoalsView struct {
	deps   Deps
	width  int
	height int

	collection *dsync.Collection[deck.Goal]
	loader     *dsync.Loader[deck.Goal]

	cursor       int
	scrollOffset int

	mode       GoalsMode
	input      textinput.Model
	formField  int
	formValues [fieldCount]string
	editingID  string
	submitting bool

	searchQuery    string
	statusFilter   deck.GoalStatus
	priorityFilter deck.Priority
	sortOrder      GoalsSort

	statusMsg string
	errMsg    string
}

// NewGoalsView creates the goals screen.
func NewGoalsView(deps Deps) GoalsView {
	ti := textinput.New()
	ti.CharLimit = 256

	collection := dsync.NewCollection[deck.Goal]()
	loader := dsync.NewLoader("goals", collection, func(ctx context.Context) ([]deck.Goal, error) {
		return deps.Client.Goals(ctx)
	})

	return GoalsView{
		deps:       deps,
		collection: collection,
		loader:     loader,
		input:      ti,
	}
}

func (v GoalsView) Init() tea.Cmd {
	return v.load()
}

func (v GoalsView) IsInputMode() bool {
	return v.mode != GoalsModeNormal
}

func (v GoalsView) SetSize(width, height int) GoalsView {
	v.width = width
	v.height = height
	v.input.Width = width - 4
	return v
}

func (v GoalsView) load() tea.Cmd {
	return func() tea.Msg {
		err := v.loader.Load(context.Background())
		return goalsLoadedMsg{err: err}
	}
}

// visible applies search, filters and sort to the synced collection.
// The collection itself is never mutated, so toggling a filter back
// off restores the full list.
func (v GoalsView) visible() []deck.Goal {
	goals := filter.Search(v.collection.Items(), v.searchQuery, filter.GoalFields)
	goals = filter.Apply(goals, filter.ByStatus(v.statusFilter))
	goals = filter.Apply(goals, filter.ByPriority(v.priorityFilter))

	switch v.sortOrder {
	case SortPriority:
		return filter.SortGoalsByPriority(goals)
	case SortDeadline:
		return filter.SortGoalsByDeadline(goals)
	default:
		return filter.SortGoalsByCreated(goals)
	}
}

func (v *GoalsView) clampCursor(n int) {
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v GoalsView) selectedGoal() (deck.Goal, bool) {
	goals := v.visible()
	if len(goals) == 0 || v.cursor >= len(goals) {
		return deck.Goal{}, false
	}
	return goals[v.cursor], true
}

func (v *GoalsView) openForm(goal *deck.Goal) {
	v.mode = GoalsModeForm
	v.formField = fieldTitle
	if goal != nil {
		v.editingID = goal.ID
		v.formValues = [fieldCount]string{
			goal.Title,
			goal.Description,
			string(goal.Priority),
			formDeadline(goal.Deadline),
		}
	} else {
		v.editingID = ""
		v.formValues = [fieldCount]string{"", "", "medium", ""}
	}
	v.input.SetValue(v.formValues[fieldTitle])
	v.input.Placeholder = formPlaceholder(fieldTitle)
	v.input.Focus()
}

func (v *GoalsView) closeForm() {
	v.mode = GoalsModeNormal
	v.input.Blur()
	v.input.SetValue("")
}

func (v GoalsView) submitForm() tea.Cmd {
	params := api.GoalParams{
		Title:       strings.TrimSpace(v.formValues[fieldTitle]),
		Description: strings.TrimSpace(v.formValues[fieldDescription]),
		Priority:    strings.ToLower(strings.TrimSpace(v.formValues[fieldPriority])),
		Deadline:    api.NormalizeDeadline(strings.TrimSpace(v.formValues[fieldDeadline])),
	}
	editingID := v.editingID

	return func() tea.Msg {
		var err error
		if editingID != "" {
			err = v.deps.Client.UpdateGoal(context.Background(), editingID, params)
			return goalMutatedMsg{action: "updated", err: err}
		}
		err = v.deps.Client.CreateGoal(context.Background(), params)
		return goalMutatedMsg{action: "created", err: err}
	}
}

func (v GoalsView) bumpProgress(goal deck.Goal, delta int) tea.Cmd {
	next := deck.BumpProgress(goal.Progress, delta)
	return func() tea.Msg {
		err := v.deps.Client.UpdateGoalProgress(context.Background(), goal.ID, next)
		return goalMutatedMsg{action: "progress updated", err: err}
	}
}

func (v GoalsView) deleteGoal(id string) tea.Cmd {
	return func() tea.Msg {
		err := v.deps.Client.DeleteGoal(context.Background(), id)
		return goalMutatedMsg{action: "deleted", err: err}
	}
}

func (v GoalsView) Update(msg tea.Msg) (GoalsView, tea.Cmd) {
	switch msg := msg.(type) {
	case goalsLoadedMsg:
		if msg.err != nil {
			v.errMsg = errorText(msg.err)
		} else {
			v.errMsg = ""
		}
		v.clampCursor(len(v.visible()))
		return v, nil

	case goalMutatedMsg:
		v.submitting = false
		if msg.err != nil {
			// The form stays open with its values so a failed submit
			// can be corrected and retried.
			v.errMsg = errorText(msg.err)
			return v, nil
		}
		if v.mode == GoalsModeForm {
			v.closeForm()
		}
		v.statusMsg = "Goal " + msg.action
		v.errMsg = ""
		return v, v.load()

	case tea.KeyMsg:
		v.statusMsg = ""
		switch v.mode {
		case GoalsModeSearch:
			return v.updateSearch(msg)
		case GoalsModeForm:
			return v.updateForm(msg)
		case GoalsModeConfirmDelete:
			return v.updateConfirmDelete(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v GoalsView) updateNormal(msg tea.KeyMsg) (GoalsView, tea.Cmd) {
	goals := v.visible()

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(goals)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = len(goals) - 1
		v.clampCursor(len(goals))

	case "a":
		v.openForm(nil)
	case "enter":
		if g, ok := v.selectedGoal(); ok {
			v.openForm(&g)
		}
	case "d":
		if _, ok := v.selectedGoal(); ok {
			v.mode = GoalsModeConfirmDelete
		}
	case "+", "p":
		if g, ok := v.selectedGoal(); ok {
			return v, v.bumpProgress(g, 25)
		}
	case "c":
		if g, ok := v.selectedGoal(); ok {
			return v, v.bumpProgress(g, 100-g.Progress)
		}

	case "/":
		v.mode = GoalsModeSearch
		v.input.Placeholder = "Search goals..."
		v.input.SetValue(v.searchQuery)
		v.input.Focus()
		return v, textinput.Blink

	case "s":
		v.statusFilter = nextStatusFilter(v.statusFilter)
		v.clampCursor(len(v.visible()))
	case "P":
		v.priorityFilter = nextPriorityFilter(v.priorityFilter)
		v.clampCursor(len(v.visible()))
	case "o":
		v.sortOrder = (v.sortOrder + 1) % 3
	case "x":
		v.searchQuery = ""
		v.statusFilter = ""
		v.priorityFilter = ""
	case "r":
		return v, v.load()
	}
	return v, nil
}

func (v GoalsView) updateSearch(msg tea.KeyMsg) (GoalsView, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.searchQuery = v.input.Value()
		v.mode = GoalsModeNormal
		v.input.Blur()
		v.clampCursor(len(v.visible()))
		return v, nil
	case "esc":
		v.mode = GoalsModeNormal
		v.input.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	// Live filtering while typing
	v.searchQuery = v.input.Value()
	return v, cmd
}

func (v GoalsView) updateForm(msg tea.KeyMsg) (GoalsView, tea.Cmd) {
	if v.submitting {
		return v, nil
	}

	switch msg.String() {
	case "esc":
		v.closeForm()
		return v, nil

	case "enter", "tab":
		v.formValues[v.formField] = v.input.Value()
		if msg.String() == "enter" && v.formField == fieldCount-1 {
			if strings.TrimSpace(v.formValues[fieldTitle]) == "" {
				v.errMsg = "Title is required"
				v.formField = fieldTitle
				v.input.SetValue(v.formValues[fieldTitle])
				v.input.Placeholder = formPlaceholder(fieldTitle)
				return v, nil
			}
			v.submitting = true
			return v, v.submitForm()
		}
		v.formField = (v.formField + 1) % fieldCount
		v.input.SetValue(v.formValues[v.formField])
		v.input.Placeholder = formPlaceholder(v.formField)
		return v, nil

	case "shift+tab":
		v.formValues[v.formField] = v.input.Value()
		v.formField = (v.formField + fieldCount - 1) % fieldCount
		v.input.SetValue(v.formValues[v.formField])
		v.input.Placeholder = formPlaceholder(v.formField)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v GoalsView) updateConfirmDelete(msg tea.KeyMsg) (GoalsView, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = GoalsModeNormal
		if g, ok := v.selectedGoal(); ok {
			return v, v.deleteGoal(g.ID)
		}
	case "n", "N", "esc":
		v.mode = GoalsModeNormal
	}
	return v, nil
}

func (v GoalsView) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#61AFEF"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#56B6C2"))
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5C07B"))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379"))

	var b strings.Builder

	header := titleStyle.Render("Goals")
	filters := describeFilters(v.searchQuery, v.statusFilter, v.priorityFilter, v.sortOrder)
	if filters != "" {
		header += "  " + dimStyle.Render(filters)
	}
	if v.collection.Loading() {
		header += "  " + dimStyle.Render("refreshing...")
	}
	b.WriteString(header + "\n\n")

	switch v.mode {
	case GoalsModeSearch:
		b.WriteString("Search: " + v.input.View() + "\n\n")
	case GoalsModeForm:
		formTitle := "New goal"
		if v.editingID != "" {
			formTitle = "Edit goal"
		}
		b.WriteString(titleStyle.Render(formTitle) + "\n")
		b.WriteString(dimStyle.Render(formFieldName(v.formField)) + "\n")
		b.WriteString(v.input.View() + "\n")
		if v.submitting {
			b.WriteString(dimStyle.Render("Saving...") + "\n\n")
		} else {
			b.WriteString(dimStyle.Render("enter/tab next field · esc cancel") + "\n\n")
		}
	case GoalsModeConfirmDelete:
		if g, ok := v.selectedGoal(); ok {
			b.WriteString(errStyle.Render(fmt.Sprintf("Delete %q? (y/n)", g.Title)) + "\n\n")
		}
	}

	goals := v.visible()
	if len(goals) == 0 {
		if v.collection.Len() == 0 {
			b.WriteString(dimStyle.Render("No goals yet. Press 'a' to add one."))
		} else {
			b.WriteString(dimStyle.Render("No goals match the current filters."))
		}
	}

	for i, g := range goals {
		marker := "  "
		line := fmt.Sprintf("%3d%%  %-8s %-11s %s", g.Progress, g.Priority, g.Status(), g.Title)
		if !g.Deadline.IsZero() {
			line += dimStyle.Render("  due " + g.Deadline.Local().Format("Jan 02"))
		}
		switch {
		case i == v.cursor && v.mode == GoalsModeNormal:
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		case g.Status() == deck.StatusCompleted:
			b.WriteString(marker + doneStyle.Render(line) + "\n")
		default:
			b.WriteString(marker + line + "\n")
		}
	}

	if v.errMsg != "" {
		b.WriteString("\n" + errStyle.Render(v.errMsg))
	} else if v.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render(v.statusMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func describeFilters(query string, status deck.GoalStatus, priority deck.Priority, sort GoalsSort) string {
	var parts []string
	if query != "" {
		parts = append(parts, fmt.Sprintf("search:%q", query))
	}
	if status != "" {
		parts = append(parts, "status:"+string(status))
	}
	if priority != "" {
		parts = append(parts, "priority:"+string(priority))
	}
	parts = append(parts, "sort:"+sort.String())
	return strings.Join(parts, " ")
}

func nextStatusFilter(s deck.GoalStatus) deck.GoalStatus {
	switch s {
	case "":
		return deck.StatusPending
	case deck.StatusPending:
		return deck.StatusInProgress
	case deck.StatusInProgress:
		return deck.StatusCompleted
	default:
		return ""
	}
}

func nextPriorityFilter(p deck.Priority) deck.Priority {
	switch p {
	case "":
		return deck.PriorityHigh
	case deck.PriorityHigh:
		return deck.PriorityMedium
	case deck.PriorityMedium:
		return deck.PriorityLow
	default:
		return ""
	}
}

func formFieldName(field int) string {
	switch field {
	case fieldTitle:
		return "Title"
	case fieldDescription:
		return "Description"
	case fieldPriority:
		return "Priority (high/medium/low)"
	case fieldDeadline:
		return "Deadline (YYYY-MM-DD, optional)"
	default:
		return ""
	}
}

func formDeadline(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02")
}

func formPlaceholder(field int) string {
	switch field {
	case fieldTitle:
		return "Goal title..."
	case fieldDescription:
		return "Description..."
	case fieldPriority:
		return "medium"
	case fieldDeadline:
		return "2026-12-31"
	default:
		return ""
	}
}
