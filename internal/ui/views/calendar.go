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

type eventsLoadedMsg struct{ err error }

type eventMutatedMsg struct {
	action string
	err    error
}

// CalendarMode represents the current input mode of the calendar view
type CalendarMode int

const (
	CalendarModeNormal CalendarMode = iota
	CalendarModeForm
	CalendarModeConfirmDelete
)

// event form field order
const (
	eventFieldTitle = iota
	eventFieldStart
	eventFieldEnd
	eventFieldCount
)

// CalendarView shows events on a month grid with an upcoming list.
type CalendarView struct {
	deps   Deps
	width  int
	height int

	collection *dsync.Collection[deck.Event]
	loader     *dsync.Loader[deck.Event]

	year        int
	month       time.Month
	selectedDay int

	mode       CalendarMode
	input      textinput.Model
	formField  int
	formValues [eventFieldCount]string
	submitting bool

	statusMsg string
	errMsg    string
}

// NewCalendarView creates the calendar screen anchored on the current month.
func NewCalendarView(deps Deps) CalendarView {
	now := time.Now()

	ti := textinput.New()
	ti.CharLimit = 256

	collection := dsync.NewCollection[deck.Event]()
	loader := dsync.NewLoader("events", collection, func(ctx context.Context) ([]deck.Event, error) {
		return deps.Client.Events(ctx)
	})

	return CalendarView{
		deps:        deps,
		collection:  collection,
		loader:      loader,
		year:        now.Year(),
		month:       now.Month(),
		selectedDay: now.Day(),
		input:       ti,
	}
}

func (v CalendarView) Init() tea.Cmd {
	return v.load()
}

func (v CalendarView) IsInputMode() bool {
	return v.mode != CalendarModeNormal
}

func (v CalendarView) SetSize(width, height int) CalendarView {
	v.width = width
	v.height = height
	v.input.Width = width - 4
	return v
}

func (v CalendarView) load() tea.Cmd {
	return func() tea.Msg {
		err := v.loader.Load(context.Background())
		return eventsLoadedMsg{err: err}
	}
}

func (v CalendarView) daysInMonth() int {
	return time.Date(v.year, v.month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// eventsByDay indexes the displayed month's events by day number.
func (v CalendarView) eventsByDay() map[int][]deck.Event {
	first := time.Date(v.year, v.month, 1, 0, 0, 0, 0, time.Local)
	next := first.AddDate(0, 1, 0)

	byDay := make(map[int][]deck.Event)
	for _, e := range v.collection.Items() {
		local := e.StartTime.Local()
		if local.Before(first) || !local.Before(next) {
			continue
		}
		byDay[local.Day()] = append(byDay[local.Day()], e)
	}
	return byDay
}

func (v CalendarView) selectedDate() time.Time {
	return time.Date(v.year, v.month, v.selectedDay, 0, 0, 0, 0, time.Local)
}

func (v *CalendarView) shiftMonth(delta int) {
	t := time.Date(v.year, v.month, 1, 0, 0, 0, 0, time.Local).AddDate(0, delta, 0)
	v.year = t.Year()
	v.month = t.Month()
	if max := v.daysInMonth(); v.selectedDay > max {
		v.selectedDay = max
	}
}

func (v *CalendarView) openForm() {
	v.mode = CalendarModeForm
	v.formField = eventFieldTitle
	day := v.selectedDate().Format("2006-01-02")
	v.formValues = [eventFieldCount]string{"", day + " 09:00", day + " 10:00"}
	v.input.SetValue(v.formValues[eventFieldTitle])
	v.input.Placeholder = eventFieldPlaceholder(eventFieldTitle)
	v.input.Focus()
}

func (v *CalendarView) closeForm() {
	v.mode = CalendarModeNormal
	v.input.Blur()
	v.input.SetValue("")
}

func (v CalendarView) submitForm() tea.Cmd {
	title := strings.TrimSpace(v.formValues[eventFieldTitle])
	start, startErr := parseEventTime(v.formValues[eventFieldStart])
	end, endErr := parseEventTime(v.formValues[eventFieldEnd])

	return func() tea.Msg {
		if startErr != nil {
			return eventMutatedMsg{err: fmt.Errorf("start time: %w", startErr)}
		}
		if endErr != nil {
			return eventMutatedMsg{err: fmt.Errorf("end time: %w", endErr)}
		}
		err := v.deps.Client.CreateEvent(context.Background(), api.EventParams{
			Title:     title,
			StartTime: start.UTC().Format(time.RFC3339),
			EndTime:   end.UTC().Format(time.RFC3339),
		})
		return eventMutatedMsg{action: "created", err: err}
	}
}

// parseEventTime accepts "2006-01-02 15:04" or a bare date, which is
// treated as an all-day start.
func parseEventTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func (v CalendarView) deleteEvent(id string) tea.Cmd {
	return func() tea.Msg {
		err := v.deps.Client.DeleteEvent(context.Background(), id)
		return eventMutatedMsg{action: "deleted", err: err}
	}
}

func (v CalendarView) Update(msg tea.Msg) (CalendarView, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		if msg.err != nil {
			v.errMsg = errorText(msg.err)
		} else {
			v.errMsg = ""
		}
		return v, nil

	case eventMutatedMsg:
		v.submitting = false
		if msg.err != nil {
			v.errMsg = errorText(msg.err)
			return v, nil
		}
		if v.mode == CalendarModeForm {
			v.closeForm()
		}
		v.statusMsg = "Event " + msg.action
		v.errMsg = ""
		return v, v.load()

	case tea.KeyMsg:
		v.statusMsg = ""
		switch v.mode {
		case CalendarModeForm:
			return v.updateForm(msg)
		case CalendarModeConfirmDelete:
			return v.updateConfirmDelete(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v CalendarView) updateNormal(msg tea.KeyMsg) (CalendarView, tea.Cmd) {
	days := v.daysInMonth()

	switch msg.String() {
	case "h", "left":
		if v.selectedDay > 1 {
			v.selectedDay--
		}
	case "l", "right":
		if v.selectedDay < days {
			v.selectedDay++
		}
	case "j", "down":
		if v.selectedDay+7 <= days {
			v.selectedDay += 7
		}
	case "k", "up":
		if v.selectedDay-7 >= 1 {
			v.selectedDay -= 7
		}
	case "H":
		v.shiftMonth(-1)
	case "L":
		v.shiftMonth(1)
	case "t":
		now := time.Now()
		v.year = now.Year()
		v.month = now.Month()
		v.selectedDay = now.Day()
	case "a":
		v.openForm()
		return v, textinput.Blink
	case "d":
		if len(v.eventsByDay()[v.selectedDay]) > 0 {
			v.mode = CalendarModeConfirmDelete
		}
	case "r":
		return v, v.load()
	}
	return v, nil
}

func (v CalendarView) updateForm(msg tea.KeyMsg) (CalendarView, tea.Cmd) {
	if v.submitting {
		return v, nil
	}

	switch msg.String() {
	case "esc":
		v.closeForm()
		return v, nil

	case "enter", "tab":
		v.formValues[v.formField] = v.input.Value()
		if msg.String() == "enter" && v.formField == eventFieldCount-1 {
			if strings.TrimSpace(v.formValues[eventFieldTitle]) == "" {
				v.errMsg = "Title is required"
				v.formField = eventFieldTitle
				v.input.SetValue("")
				v.input.Placeholder = eventFieldPlaceholder(eventFieldTitle)
				return v, nil
			}
			v.submitting = true
			return v, v.submitForm()
		}
		v.formField = (v.formField + 1) % eventFieldCount
		v.input.SetValue(v.formValues[v.formField])
		v.input.Placeholder = eventFieldPlaceholder(v.formField)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v CalendarView) updateConfirmDelete(msg tea.KeyMsg) (CalendarView, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = CalendarModeNormal
		if events := v.eventsByDay()[v.selectedDay]; len(events) > 0 {
			return v, v.deleteEvent(events[0].ID)
		}
	case "n", "N", "esc":
		v.mode = CalendarModeNormal
	}
	return v, nil
}

func (v CalendarView) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#61AFEF"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#56B6C2"))
	selectedStyle := lipgloss.NewStyle().Bold(true).Reverse(true)
	busyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E5C07B"))

	var b strings.Builder

	header := titleStyle.Render(fmt.Sprintf("%s %d", v.month, v.year))
	if v.collection.Loading() {
		header += "  " + dimStyle.Render("refreshing...")
	}
	b.WriteString(header + "\n\n")

	switch v.mode {
	case CalendarModeForm:
		b.WriteString(titleStyle.Render("New event") + "\n")
		b.WriteString(dimStyle.Render(eventFieldName(v.formField)) + "\n")
		b.WriteString(v.input.View() + "\n")
		if v.submitting {
			b.WriteString(dimStyle.Render("Saving...") + "\n\n")
		} else {
			b.WriteString(dimStyle.Render("enter/tab next field · esc cancel") + "\n\n")
		}
	case CalendarModeConfirmDelete:
		if events := v.eventsByDay()[v.selectedDay]; len(events) > 0 {
			b.WriteString(errStyle.Render(fmt.Sprintf("Delete %q? (y/n)", events[0].Title)) + "\n\n")
		}
	}

	byDay := v.eventsByDay()

	b.WriteString(dimStyle.Render(" Su  Mo  Tu  We  Th  Fr  Sa") + "\n")

	first := time.Date(v.year, v.month, 1, 0, 0, 0, 0, time.Local)
	offset := int(first.Weekday())
	days := v.daysInMonth()

	b.WriteString(strings.Repeat("    ", offset))
	for day := 1; day <= days; day++ {
		cell := fmt.Sprintf("%3d", day)
		switch {
		case day == v.selectedDay:
			cell = selectedStyle.Render(cell)
		case len(byDay[day]) > 0:
			cell = busyStyle.Render(cell)
		}
		b.WriteString(cell + " ")
		if (offset+day)%7 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")

	dayEvents := filter.SortEventsByStart(byDay[v.selectedDay])
	b.WriteString(titleStyle.Render(v.selectedDate().Format("Mon Jan 2")) + "\n")
	if len(dayEvents) == 0 {
		b.WriteString(dimStyle.Render("  no events") + "\n")
	}
	for _, e := range dayEvents {
		when := e.StartTime.Local().Format("15:04")
		if e.AllDay {
			when = "all day"
		}
		b.WriteString(fmt.Sprintf("  %-7s %s\n", when, e.Title))
	}

	upcoming := filter.Upcoming(v.collection.Items(), time.Now(), 5)
	if len(upcoming) > 0 {
		b.WriteString("\n" + titleStyle.Render("Upcoming") + "\n")
		for _, e := range upcoming {
			b.WriteString(fmt.Sprintf("  %s  %s\n", e.StartTime.Local().Format("Jan 02 15:04"), e.Title))
		}
	}

	if v.errMsg != "" {
		b.WriteString("\n" + errStyle.Render(v.errMsg))
	} else if v.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render(v.statusMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func eventFieldName(field int) string {
	switch field {
	case eventFieldTitle:
		return "Title"
	case eventFieldStart:
		return "Start (YYYY-MM-DD HH:MM)"
	case eventFieldEnd:
		return "End (YYYY-MM-DD HH:MM)"
	default:
		return ""
	}
}

func eventFieldPlaceholder(field int) string {
	switch field {
	case eventFieldTitle:
		return "Event title..."
	case eventFieldStart:
		return "2026-08-29 09:00"
	case eventFieldEnd:
		return "2026-08-29 10:00"
	default:
		return ""
	}
}
