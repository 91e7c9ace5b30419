package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wardkeep/tui-go/internal/api"
)

// loginResultMsg carries the outcome of a login attempt
type loginResultMsg struct {
	stamp
	token string
	err   error
}

// loginPage is the login form controller
type loginPage struct {
	client *api.Client
	gen    int

	email    textinput.Model
	password textinput.Model
	focus    int // 0 email, 1 password

	submitting bool

	keys KeyMap
}

func newLoginPage(client *api.Client, gen int) *loginPage {
	email := textinput.New()
	email.Placeholder = "you@hospital.example"
	email.Prompt = "❯ "
	email.PromptStyle = InputPromptStyle
	email.CharLimit = 120
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "❯ "
	password.PromptStyle = InputPromptStyle
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120
	password.Width = 40

	return &loginPage{
		client:   client,
		gen:      gen,
		email:    email,
		password: password,
		keys:     DefaultKeyMap(),
	}
}

func (p *loginPage) Init() tea.Cmd {
	return textinput.Blink
}

// submitCmd posts the credentials. Exactly one request per attempt.
func (p *loginPage) submitCmd() tea.Cmd {
	client := p.client
	gen := p.gen
	email := p.email.Value()
	password := p.password.Value()
	return func() tea.Msg {
		token, err := client.Login(email, password)
		return loginResultMsg{stamp: stamp(gen), token: token, err: err}
	}
}

func (p *loginPage) setFocus(i int) tea.Cmd {
	p.focus = i
	if i == 0 {
		p.password.Blur()
		return p.email.Focus()
	}
	p.email.Blur()
	return p.password.Focus()
}

func (p *loginPage) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		p.submitting = false
		if msg.err != nil {
			// Field values are kept; the control is usable again.
			return p, noticeCmd(msg.err.Error(), true)
		}
		token := msg.token
		return p, func() tea.Msg {
			return establishSessionMsg{token: token}
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.SwitchAuth):
			return p, func() tea.Msg {
				return gotoAuthMsg{fragment: fragmentRegister}
			}

		case key.Matches(msg, p.keys.NextField):
			return p, p.setFocus((p.focus + 1) % 2)

		case key.Matches(msg, p.keys.PrevField):
			return p, p.setFocus((p.focus + 1) % 2)

		case key.Matches(msg, p.keys.Submit):
			if p.submitting {
				return p, nil
			}
			p.submitting = true
			return p, p.submitCmd()
		}
	}

	var cmd tea.Cmd
	if p.focus == 0 {
		p.email, cmd = p.email.Update(msg)
	} else {
		p.password, cmd = p.password.Update(msg)
	}
	return p, cmd
}

func (p *loginPage) View(width int) string {
	emailLabel := LabelStyle.Render("Email")
	passwordLabel := LabelStyle.Render("Password")
	if p.focus == 0 {
		emailLabel = FocusedLabelStyle.Render("Email")
	} else {
		passwordLabel = FocusedLabelStyle.Render("Password")
	}

	submit := "[ Sign In ]"
	if p.submitting {
		submit = "[ Signing in... ]"
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		CardTitleStyle.Render("Sign In"),
		"",
		emailLabel,
		p.email.View(),
		"",
		passwordLabel,
		p.password.View(),
		"",
		submitStyle(p.submitting).Render(submit),
	)

	hint := DimStyle.Render("enter to sign in · ctrl+s to register")
	return lipgloss.JoinVertical(lipgloss.Left, CardStyle.Render(form), hint)
}

// submitStyle renders a submit control, dimmed while a request is in flight
func submitStyle(submitting bool) lipgloss.Style {
	if submitting {
		return ItemDisabledStyle
	}
	return SelectorFocusedStyle
}
