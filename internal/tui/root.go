package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wardkeep/tui-go/internal/api"
	"github.com/wardkeep/tui-go/internal/config"
	"github.com/wardkeep/tui-go/internal/session"
)

// noticeDuration is how long the transient message line stays visible
const noticeDuration = 3 * time.Second

// Messages owned by the root model

// establishSessionMsg is sent by the login page when the server issued a token
type establishSessionMsg struct {
	token string
}

// registrationDoneMsg is sent by the register page after a successful signup
type registrationDoneMsg struct{}

// gotoAuthMsg switches between the login and register pages
type gotoAuthMsg struct {
	fragment string
}

// noticeMsg shows a transient notice line
type noticeMsg struct {
	text  string
	isErr bool
}

// noticeExpiredMsg clears the notice line; seq guards against clearing a
// newer notice than the one this expiry was scheduled for
type noticeExpiredMsg struct {
	seq int
}

// noticeCmd emits a transient notice
func noticeCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg{text: text, isErr: isErr}
	}
}

// Model is the root Bubble Tea model. It owns route resolution, page
// loading, the transient notice line, and logout.
type Model struct {
	// Terminal dimensions
	width  int
	height int
	ready  bool

	cfg    *config.Config
	store  *session.Store
	client *api.Client

	// Routing state
	route    Route
	fragment string
	page     pageModel
	pageGen  int

	// Session snapshot from the last route resolution, for the header.
	// The store stays the source of truth; this is never written back.
	sess *session.Session

	// Transient notice line
	notice    string
	noticeErr bool
	noticeSeq int

	keys KeyMap

	// initCmd carries the initial page's Init (and any startup notice)
	// from construction to Init()
	initCmd tea.Cmd
}

// NewRootModel creates the root model and resolves the initial route
func NewRootModel(cfg *config.Config, store *session.Store, client *api.Client) Model {
	m := Model{
		cfg:      cfg,
		store:    store,
		client:   client,
		fragment: fragmentLogin,
		keys:     DefaultKeyMap(),
	}
	// Initial route resolution. The resulting cmd runs from Init().
	m.initCmd = m.resolve()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// resolve re-derives the session, resolves the route, and mounts a fresh
// page. An unrecognized role is treated as a corrupted credential: the
// credential is cleared and the login page is mounted with a notice.
func (m *Model) resolve() tea.Cmd {
	var cmds []tea.Cmd

	sess := m.store.Current()
	route, ok := ResolveRoute(sess, m.fragment)
	if !ok {
		_ = m.store.Clear()
		m.fragment = fragmentLogin
		sess = nil
		route = RouteLogin
		cmds = append(cmds, m.setNotice("You have been logged out.", false))
	}

	m.sess = sess
	cmds = append(cmds, m.loadPage(route))
	return tea.Batch(cmds...)
}

// loadPage mounts a fresh page for the route, discarding the previous page
// entirely. The generation bump makes any still-in-flight response from the
// old page stale.
func (m *Model) loadPage(route Route) tea.Cmd {
	m.pageGen++
	m.route = route

	switch route {
	case RouteLogin:
		m.page = newLoginPage(m.client, m.pageGen)
	case RouteRegister:
		m.page = newRegisterPage(m.client, m.pageGen)
	case RouteCleaner:
		m.page = newCleanerPage(m.client, m.sess, m.pageGen)
	case RouteManager:
		m.page = newManagerPage(m.client, m.sess, m.pageGen)
	case RouteAdmin:
		m.page = newAdminPage(m.client, m.sess, m.cfg.DownloadDir, m.pageGen)
	}

	return m.page.Init()
}

// setNotice shows the notice line and schedules its expiry
func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.notice = text
	m.noticeErr = isErr
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// logout clears the credential and routes back to login with a notice
func (m *Model) logout() tea.Cmd {
	_ = m.store.Clear()
	m.fragment = fragmentLogin
	notice := m.setNotice("You have been logged out.", false)
	return tea.Batch(notice, m.resolve())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Logout):
			if m.sess != nil {
				return m, m.logout()
			}
			return m, nil
		}

	case establishSessionMsg:
		if err := m.store.Establish(msg.token); err != nil {
			return m, m.setNotice("Failed to store credential: "+err.Error(), true)
		}
		notice := m.setNotice("Login successful!", false)
		return m, tea.Batch(notice, m.resolve())

	case registrationDoneMsg:
		m.fragment = fragmentLogin
		notice := m.setNotice("Registration successful! Please log in.", false)
		return m, tea.Batch(notice, m.resolve())

	case gotoAuthMsg:
		m.fragment = msg.fragment
		return m, m.resolve()

	case noticeMsg:
		return m, m.setNotice(msg.text, msg.isErr)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	// Anything a page produced asynchronously is generation-checked before
	// delegation: a late response from an unmounted page must be inert.
	if pm, ok := msg.(pageMsg); ok && pm.pageGen() != m.pageGen {
		return m, nil
	}

	if m.page != nil {
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the header, the mounted page, and the notice line
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := HeaderStyle.Render("Wardkeep — Hospital Housekeeping")
	if m.sess != nil {
		who := m.sess.FullName
		if who == "" {
			who = m.sess.Role.Label()
		}
		header = lipgloss.JoinHorizontal(lipgloss.Top,
			header,
			WelcomeStyle.Render("  ·  "+who+" ("+m.sess.Role.Label()+")"),
			DimStyle.Render("  ·  ctrl+l to log out"),
		)
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	body := ""
	if m.page != nil {
		body = m.page.View(width)
	}

	notice := ""
	if m.notice != "" {
		if m.noticeErr {
			notice = NoticeErrStyle.Render("✗ " + m.notice)
		} else {
			notice = NoticeOKStyle.Render("✓ " + m.notice)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", notice)
}
