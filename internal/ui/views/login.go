package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xenonnoble69/assistdeck-frontend/internal/api"
	"github.com/xenonnoble69/assistdeck-frontend/internal/session"
)

type loginResultMsg struct {
	user *api.LoginResult
	err  error
}

// LoginView collects credentials and exchanges them for a session.
type LoginView struct {
	deps   Deps
	width  int
	height int

	email    textinput.Model
	password textinput.Model
	focused  int // 0 = email, 1 = password

	submitting bool
	errMsg     string
}

// NewLoginView creates the login screen.
func NewLoginView(deps Deps) LoginView {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginView{
		deps:     deps,
		email:    email,
		password: password,
	}
}

func (v LoginView) Init() tea.Cmd {
	return textinput.Blink
}

// IsInputMode is always true: the login screen is one big form.
func (v LoginView) IsInputMode() bool {
	return true
}

func (v LoginView) SetSize(width, height int) LoginView {
	v.width = width
	v.height = height
	return v
}

func (v LoginView) submit() tea.Cmd {
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()

	return func() tea.Msg {
		result, err := v.deps.Client.Login(context.Background(), api.LoginParams{
			Email:    email,
			Password: password,
		})
		if err != nil {
			return loginResultMsg{err: err}
		}
		if err := v.deps.Session.Save(session.Credential{Token: result.Token, User: result.User}); err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{user: result}
	}
}

func (v LoginView) Update(msg tea.Msg) (LoginView, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		v.submitting = false
		if msg.err != nil {
			v.errMsg = errorText(msg.err)
			return v, nil
		}
		return v, func() tea.Msg { return LoggedInMsg{User: msg.user.User} }

	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			v.focused = 1 - v.focused
			if v.focused == 0 {
				v.email.Focus()
				v.password.Blur()
			} else {
				v.email.Blur()
				v.password.Focus()
			}
			return v, nil

		case "enter":
			if v.focused == 0 {
				v.focused = 1
				v.email.Blur()
				v.password.Focus()
				return v, nil
			}
			if strings.TrimSpace(v.email.Value()) == "" || v.password.Value() == "" {
				v.errMsg = "Email and password are required"
				return v, nil
			}
			v.submitting = true
			v.errMsg = ""
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	if v.focused == 0 {
		v.email, cmd = v.email.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

func (v LoginView) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#61AFEF"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ABB2BF"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in to AssistDeck"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Email"))
	b.WriteString("\n")
	b.WriteString(v.email.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Password"))
	b.WriteString("\n")
	b.WriteString(v.password.View())
	b.WriteString("\n\n")

	if v.submitting {
		b.WriteString(dimStyle.Render("Signing in..."))
	} else if v.errMsg != "" {
		b.WriteString(errStyle.Render(v.errMsg))
	} else {
		b.WriteString(dimStyle.Render("enter to sign in · no account? run: assistdeck register"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
