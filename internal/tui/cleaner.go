package tui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wardkeep/tui-go/internal/api"
	"github.com/wardkeep/tui-go/internal/session"
)

// tasksLoadedMsg carries the cleaner's task list
type tasksLoadedMsg struct {
	stamp
	tasks []api.Task
	err   error
}

// uploadResultMsg carries the outcome of a room submission
type uploadResultMsg struct {
	stamp
	err error
}

// cleanerPage is the cleaner dashboard: a read-only task list fetched once
// per mount, and the room submission form
type cleanerPage struct {
	client *api.Client
	sess   *session.Session
	gen    int

	room  textinput.Model
	photo textinput.Model
	focus int // 0 room, 1 photo

	submitting bool

	tasks        []api.Task
	tasksErr     string
	loadingTasks bool

	keys KeyMap
}

func newCleanerPage(client *api.Client, sess *session.Session, gen int) *cleanerPage {
	room := textinput.New()
	room.Placeholder = "e.g. ICU-7"
	room.Prompt = "❯ "
	room.PromptStyle = InputPromptStyle
	room.CharLimit = 40
	room.Width = 30
	room.Focus()

	photo := textinput.New()
	photo.Placeholder = "path/to/after-photo.jpg"
	photo.Prompt = "❯ "
	photo.PromptStyle = InputPromptStyle
	photo.CharLimit = 200
	photo.Width = 40

	return &cleanerPage{
		client:       client,
		sess:         sess,
		gen:          gen,
		room:         room,
		photo:        photo,
		loadingTasks: true,
		keys:         DefaultKeyMap(),
	}
}

// Init fetches the task list once per mount
func (p *cleanerPage) Init() tea.Cmd {
	client := p.client
	userID := p.sess.UserID
	gen := p.gen
	fetch := func() tea.Msg {
		tasks, err := client.Tasks(userID)
		return tasksLoadedMsg{stamp: stamp(gen), tasks: tasks, err: err}
	}
	return tea.Batch(textinput.Blink, fetch)
}

// submitCmd uploads the room photo. Exactly one request per attempt.
func (p *cleanerPage) submitCmd() tea.Cmd {
	client := p.client
	gen := p.gen
	roomID := p.room.Value()
	photoPath := p.photo.Value()
	cleanerID := p.sess.UserID
	return func() tea.Msg {
		err := client.SubmitRoom(roomID, photoPath, cleanerID)
		return uploadResultMsg{stamp: stamp(gen), err: err}
	}
}

func (p *cleanerPage) setFocus(i int) tea.Cmd {
	p.focus = i
	if i == 0 {
		p.photo.Blur()
		return p.room.Focus()
	}
	p.room.Blur()
	return p.photo.Focus()
}

func (p *cleanerPage) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		p.loadingTasks = false
		if msg.err != nil {
			p.tasksErr = "Failed to load tasks"
			return p, nil
		}
		p.tasks = msg.tasks
		return p, nil

	case uploadResultMsg:
		p.submitting = false
		if msg.err != nil {
			// Field values are kept for a corrected retry.
			return p, noticeCmd(msg.err.Error(), true)
		}
		// Reset the form and the file preview to their initial state.
		p.room.Reset()
		p.photo.Reset()
		return p, noticeCmd("Work submitted for verification.", false)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.NextField):
			return p, p.setFocus((p.focus + 1) % 2)

		case key.Matches(msg, p.keys.PrevField):
			return p, p.setFocus((p.focus + 1) % 2)

		case key.Matches(msg, p.keys.Submit):
			if p.submitting {
				return p, nil
			}
			if p.room.Value() == "" || p.photo.Value() == "" {
				return p, noticeCmd("Room and photo are both required.", true)
			}
			p.submitting = true
			return p, p.submitCmd()
		}
	}

	var cmd tea.Cmd
	if p.focus == 0 {
		p.room, cmd = p.room.Update(msg)
	} else {
		p.photo, cmd = p.photo.Update(msg)
	}
	return p, cmd
}

func (p *cleanerPage) View(width int) string {
	welcome := welcomeLine(p.sess, "Cleaner", "Ready to submit your work?")

	roomLabel := LabelStyle.Render("Room")
	photoLabel := LabelStyle.Render("After Photo")
	if p.focus == 0 {
		roomLabel = FocusedLabelStyle.Render("Room")
	} else {
		photoLabel = FocusedLabelStyle.Render("After Photo")
	}

	preview := DimStyle.Render("No file selected")
	if p.photo.Value() != "" {
		preview = StatusCompletedStyle.Render("Selected: " + filepath.Base(p.photo.Value()))
	}

	submit := "[ Submit for Verification ]"
	if p.submitting {
		submit = "[ Submitting... ]"
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		CardTitleStyle.Render("Submit Cleaned Room"),
		"",
		roomLabel,
		p.room.View(),
		"",
		photoLabel,
		p.photo.View(),
		preview,
		"",
		submitStyle(p.submitting).Render(submit),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		welcome,
		"",
		CardStyle.Render(form),
		"",
		CardStyle.Render(p.taskList()),
	)
}

// taskList renders the read-only assigned-task view
func (p *cleanerPage) taskList() string {
	rows := []string{CardTitleStyle.Render("My Tasks"), ""}

	switch {
	case p.loadingTasks:
		rows = append(rows, DimStyle.Render("Loading tasks..."))
	case p.tasksErr != "":
		rows = append(rows, ErrorStyle.Render(p.tasksErr), DimStyle.Render("Please try again later"))
	case len(p.tasks) == 0:
		rows = append(rows,
			DimStyle.Render("No tasks assigned currently."),
			DimStyle.Render("Check back later for new assignments"))
	default:
		for _, task := range p.tasks {
			status := StatusPendingStyle.Render(task.Status)
			if task.Status == "Completed" {
				status = StatusCompletedStyle.Render(task.Status)
			}
			notes := task.Notes
			if notes == "" {
				notes = "No notes provided."
			}
			rows = append(rows,
				ItemStyle.Render(task.RoomID)+"  "+status+"  "+DimStyle.Render(task.AssignmentDate),
				RemarksStyle.Render("  "+notes),
				"")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// welcomeLine renders the dashboard greeting banner
func welcomeLine(sess *session.Session, fallback, tagline string) string {
	name := sess.FullName
	if name == "" {
		name = fallback
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		WelcomeStyle.Render("Welcome back, "+name+"!"),
		DimStyle.Render(" "+tagline),
	)
}
