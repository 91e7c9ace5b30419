package tui

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wardkeep/tui-go/internal/api"
	"github.com/wardkeep/tui-go/internal/session"
)

// reportSavedMsg carries the outcome of a report download
type reportSavedMsg struct {
	stamp
	filename string
	err      error
}

// adminPage is the oversight dashboard for deans and commissioners
type adminPage struct {
	client      *api.Client
	sess        *session.Session
	downloadDir string
	gen         int

	downloading bool

	keys KeyMap
}

func newAdminPage(client *api.Client, sess *session.Session, downloadDir string, gen int) *adminPage {
	return &adminPage{
		client:      client,
		sess:        sess,
		downloadDir: downloadDir,
		gen:         gen,
		keys:        DefaultKeyMap(),
	}
}

func (p *adminPage) Init() tea.Cmd {
	return nil
}

// downloadCmd fetches the weekly report and writes it to the download
// directory under the server-supplied filename
func (p *adminPage) downloadCmd() tea.Cmd {
	client := p.client
	token := p.sess.Token
	dir := p.downloadDir
	gen := p.gen
	return func() tea.Msg {
		filename, data, err := client.WeeklyReport(token)
		if err != nil {
			return reportSavedMsg{stamp: stamp(gen), err: err}
		}
		path := filepath.Join(dir, filename)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return reportSavedMsg{stamp: stamp(gen), err: err}
		}
		return reportSavedMsg{stamp: stamp(gen), filename: path}
	}
}

func (p *adminPage) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportSavedMsg:
		p.downloading = false
		if msg.err != nil {
			return p, noticeCmd(msg.err.Error(), true)
		}
		return p, noticeCmd("Report downloaded: "+msg.filename, false)

	case tea.KeyMsg:
		if key.Matches(msg, p.keys.Download) {
			if p.downloading {
				return p, nil
			}
			p.downloading = true
			return p, p.downloadCmd()
		}
	}

	return p, nil
}

func (p *adminPage) View(width int) string {
	who := "the Dean"
	if p.sess.Role == session.RoleCommissioner {
		who = "a Commissioner"
	}
	welcome := welcomeLine(p.sess, "Admin", "Signed in as "+who+".")

	download := "[ Download Weekly Report ]"
	if p.downloading {
		download = "[ Generating Report... ]"
	}

	card := lipgloss.JoinVertical(lipgloss.Left,
		CardTitleStyle.Render("Weekly Hygiene Report"),
		"",
		LabelStyle.Render("A PDF summary of this week's approved cleanings."),
		"",
		submitStyle(p.downloading).Render(download),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		welcome,
		"",
		CardStyle.Render(card),
		"",
		DimStyle.Render("enter/d to download"),
	)
}
