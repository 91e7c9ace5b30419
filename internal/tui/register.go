package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wardkeep/tui-go/internal/api"
	"github.com/wardkeep/tui-go/internal/session"
)

// hospitalsLoadedMsg carries the registration hospital lookup
type hospitalsLoadedMsg struct {
	stamp
	hospitals []api.Hospital
	err       error
}

// registerResultMsg carries the outcome of a registration attempt
type registerResultMsg struct {
	stamp
	err error
}

// Register form focus slots
const (
	regFocusName = iota
	regFocusEmail
	regFocusPassword
	regFocusRole
	regFocusHospital
)

// registerPage is the registration form controller
type registerPage struct {
	client *api.Client
	gen    int

	fullName textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int

	roles   []session.Role
	roleIdx int

	hospitals    []api.Hospital
	hospitalIdx  int
	hospitalsErr string
	loadingList  bool

	submitting bool

	keys KeyMap
}

func newRegisterPage(client *api.Client, gen int) *registerPage {
	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = "❯ "
		ti.PromptStyle = InputPromptStyle
		ti.CharLimit = 120
		ti.Width = 40
		return ti
	}

	fullName := newInput("Full name")
	fullName.Focus()
	email := newInput("you@hospital.example")
	password := newInput("password")
	password.EchoMode = textinput.EchoPassword

	return &registerPage{
		client:      client,
		gen:         gen,
		fullName:    fullName,
		email:       email,
		password:    password,
		roles:       session.Roles(),
		loadingList: true,
		keys:        DefaultKeyMap(),
	}
}

// Init fetches the hospital lookup once per mount
func (p *registerPage) Init() tea.Cmd {
	client := p.client
	gen := p.gen
	fetch := func() tea.Msg {
		hospitals, err := client.Hospitals()
		return hospitalsLoadedMsg{stamp: stamp(gen), hospitals: hospitals, err: err}
	}
	return tea.Batch(textinput.Blink, fetch)
}

// role returns the currently selected role
func (p *registerPage) role() session.Role {
	return p.roles[p.roleIdx]
}

// hospitalRequired reports whether the selected role needs a hospital.
// Commissioners operate across hospitals and register without one.
func (p *registerPage) hospitalRequired() bool {
	return p.role() != session.RoleCommissioner
}

// focusCount is the number of reachable focus slots for the current role
func (p *registerPage) focusCount() int {
	if p.hospitalRequired() {
		return 5
	}
	return 4
}

func (p *registerPage) setFocus(i int) tea.Cmd {
	p.focus = i
	p.fullName.Blur()
	p.email.Blur()
	p.password.Blur()
	switch i {
	case regFocusName:
		return p.fullName.Focus()
	case regFocusEmail:
		return p.email.Focus()
	case regFocusPassword:
		return p.password.Focus()
	}
	return nil
}

// submitCmd posts the registration. Exactly one request per attempt.
func (p *registerPage) submitCmd() tea.Cmd {
	req := api.RegisterRequest{
		FullName: p.fullName.Value(),
		Email:    p.email.Value(),
		Password: p.password.Value(),
		Role:     string(p.role()),
	}
	if p.hospitalRequired() {
		req.HospitalID = p.hospitals[p.hospitalIdx].ID
	}

	client := p.client
	gen := p.gen
	return func() tea.Msg {
		_, err := client.Register(req)
		return registerResultMsg{stamp: stamp(gen), err: err}
	}
}

func (p *registerPage) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case hospitalsLoadedMsg:
		p.loadingList = false
		if msg.err != nil {
			// Inline placeholder; the form stays usable for roles that
			// do not need a hospital.
			p.hospitalsErr = msg.err.Error()
			return p, nil
		}
		p.hospitals = msg.hospitals
		return p, nil

	case registerResultMsg:
		p.submitting = false
		if msg.err != nil {
			return p, noticeCmd(msg.err.Error(), true)
		}
		return p, func() tea.Msg {
			return registrationDoneMsg{}
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.SwitchAuth):
			return p, func() tea.Msg {
				return gotoAuthMsg{fragment: fragmentLogin}
			}

		case key.Matches(msg, p.keys.NextField):
			return p, p.setFocus((p.focus + 1) % p.focusCount())

		case key.Matches(msg, p.keys.PrevField):
			return p, p.setFocus((p.focus + p.focusCount() - 1) % p.focusCount())

		case key.Matches(msg, p.keys.Up):
			if p.focus == regFocusRole {
				p.cycleRole(-1)
				return p, nil
			}
			if p.focus == regFocusHospital && len(p.hospitals) > 0 {
				p.hospitalIdx = (p.hospitalIdx + len(p.hospitals) - 1) % len(p.hospitals)
				return p, nil
			}

		case key.Matches(msg, p.keys.Down):
			if p.focus == regFocusRole {
				p.cycleRole(1)
				return p, nil
			}
			if p.focus == regFocusHospital && len(p.hospitals) > 0 {
				p.hospitalIdx = (p.hospitalIdx + 1) % len(p.hospitals)
				return p, nil
			}

		case key.Matches(msg, p.keys.Submit):
			if p.submitting {
				return p, nil
			}
			if p.hospitalRequired() && len(p.hospitals) == 0 {
				return p, noticeCmd("Please select a hospital.", true)
			}
			p.submitting = true
			return p, p.submitCmd()
		}
	}

	var cmd tea.Cmd
	switch p.focus {
	case regFocusName:
		p.fullName, cmd = p.fullName.Update(msg)
	case regFocusEmail:
		p.email, cmd = p.email.Update(msg)
	case regFocusPassword:
		p.password, cmd = p.password.Update(msg)
	}
	return p, cmd
}

// cycleRole moves the role selector, clamping focus when the hospital
// selector disappears for commissioners
func (p *registerPage) cycleRole(delta int) {
	p.roleIdx = (p.roleIdx + delta + len(p.roles)) % len(p.roles)
	if p.focus >= p.focusCount() {
		p.focus = p.focusCount() - 1
	}
}

func (p *registerPage) View(width int) string {
	label := func(slot int, text string) string {
		if p.focus == slot {
			return FocusedLabelStyle.Render(text)
		}
		return LabelStyle.Render(text)
	}

	roleLine := SelectorStyle.Render("  " + p.role().Label())
	if p.focus == regFocusRole {
		roleLine = SelectorFocusedStyle.Render("‹ " + p.role().Label() + " ›")
	}

	rows := []string{
		CardTitleStyle.Render("Create Account"),
		"",
		label(regFocusName, "Full Name"),
		p.fullName.View(),
		"",
		label(regFocusEmail, "Email"),
		p.email.View(),
		"",
		label(regFocusPassword, "Password"),
		p.password.View(),
		"",
		label(regFocusRole, "Role"),
		roleLine,
	}

	if p.hospitalRequired() {
		rows = append(rows, "", label(regFocusHospital, "Hospital"), p.hospitalLine())
	}

	submit := "[ Register ]"
	if p.submitting {
		submit = "[ Registering... ]"
	}
	rows = append(rows, "", submitStyle(p.submitting).Render(submit))

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	hint := DimStyle.Render("↑/↓ to change selection · enter to register · ctrl+s to sign in")
	return lipgloss.JoinVertical(lipgloss.Left, CardStyle.Render(form), hint)
}

func (p *registerPage) hospitalLine() string {
	switch {
	case p.loadingList:
		return DimStyle.Render("  Loading hospitals...")
	case p.hospitalsErr != "":
		return ErrorStyle.Render("  Failed to load hospitals")
	case len(p.hospitals) == 0:
		return DimStyle.Render("  No hospitals available")
	}

	name := p.hospitals[p.hospitalIdx].Name
	if p.focus == regFocusHospital {
		return SelectorFocusedStyle.Render("‹ " + name + " ›")
	}
	return SelectorStyle.Render("  " + name)
}
