package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wardkeep/tui-go/internal/api"
	"github.com/wardkeep/tui-go/internal/session"
)

const dateLayout = "2006-01-02"

// cleanersLoadedMsg carries the assignable-cleaner lookup
type cleanersLoadedMsg struct {
	stamp
	cleaners []api.Cleaner
	err      error
}

// approvalsLoadedMsg carries the pending approval queue
type approvalsLoadedMsg struct {
	stamp
	records []api.ApprovalRecord
	err     error
}

// assignResultMsg carries the outcome of a task assignment
type assignResultMsg struct {
	stamp
	err error
}

// decideResultMsg carries the outcome of an approve/rework decision
type decideResultMsg struct {
	stamp
	recordID int
	status   api.DecisionStatus
	err      error
}

// Manager page focus slots
const (
	mgrFocusCleaner = iota
	mgrFocusRoom
	mgrFocusDate
	mgrFocusNotes
	mgrFocusApprovals
	mgrFocusCount
)

// managerPage is the floor manager dashboard: the task assignment form and
// the pending approval queue
type managerPage struct {
	client *api.Client
	sess   *session.Session
	gen    int

	focus int

	cleaners    []api.Cleaner
	cleanerIdx  int // -1 = placeholder, nothing selected
	cleanersErr string
	loadingList bool

	room  textinput.Model
	date  textinput.Model
	notes textinput.Model
	today string

	submitting bool

	approvals approvalList

	keys KeyMap
}

func newManagerPage(client *api.Client, sess *session.Session, gen int) *managerPage {
	today := time.Now().Format(dateLayout)

	room := textinput.New()
	room.Placeholder = "e.g. WARD-3"
	room.Prompt = "❯ "
	room.PromptStyle = InputPromptStyle
	room.CharLimit = 40
	room.Width = 30

	date := textinput.New()
	date.Prompt = "❯ "
	date.PromptStyle = InputPromptStyle
	date.CharLimit = 10
	date.Width = 30
	date.SetValue(today)

	notes := textinput.New()
	notes.Placeholder = "optional notes"
	notes.Prompt = "❯ "
	notes.PromptStyle = InputPromptStyle
	notes.CharLimit = 200
	notes.Width = 40

	return &managerPage{
		client:      client,
		sess:        sess,
		gen:         gen,
		cleanerIdx:  -1,
		room:        room,
		date:        date,
		notes:       notes,
		today:       today,
		loadingList: true,
		approvals:   newApprovalList(),
		keys:        DefaultKeyMap(),
	}
}

// Init fetches the cleaner lookup and the approval queue once per mount
func (p *managerPage) Init() tea.Cmd {
	client := p.client
	token := p.sess.Token
	gen := p.gen

	fetchCleaners := func() tea.Msg {
		cleaners, err := client.Cleaners(token)
		return cleanersLoadedMsg{stamp: stamp(gen), cleaners: cleaners, err: err}
	}
	fetchApprovals := func() tea.Msg {
		records, err := client.PendingRecords(token)
		return approvalsLoadedMsg{stamp: stamp(gen), records: records, err: err}
	}

	return tea.Batch(textinput.Blink, fetchCleaners, fetchApprovals)
}

// assignCmd posts the assignment. Exactly one request per attempt.
func (p *managerPage) assignCmd() tea.Cmd {
	req := api.AssignTaskRequest{
		RoomID:         p.room.Value(),
		CleanerID:      p.cleaners[p.cleanerIdx].ID,
		AssignedByID:   p.sess.UserID,
		AssignmentDate: p.date.Value(),
		Notes:          p.notes.Value(),
	}

	client := p.client
	gen := p.gen
	return func() tea.Msg {
		_, err := client.AssignTask(req)
		return assignResultMsg{stamp: stamp(gen), err: err}
	}
}

// decideCmd issues one approve/rework decision for one record
func (p *managerPage) decideCmd(recordID int, status api.DecisionStatus) tea.Cmd {
	client := p.client
	token := p.sess.Token
	gen := p.gen
	return func() tea.Msg {
		_, err := client.Decide(token, recordID, status)
		return decideResultMsg{stamp: stamp(gen), recordID: recordID, status: status, err: err}
	}
}

func (p *managerPage) setFocus(i int) tea.Cmd {
	p.focus = i
	p.room.Blur()
	p.date.Blur()
	p.notes.Blur()
	switch i {
	case mgrFocusRoom:
		return p.room.Focus()
	case mgrFocusDate:
		return p.date.Focus()
	case mgrFocusNotes:
		return p.notes.Focus()
	}
	return nil
}

// validateForm checks the assignment form before any request is made
func (p *managerPage) validateForm() string {
	if p.cleanerIdx < 0 || p.cleanerIdx >= len(p.cleaners) {
		return "Please select a cleaner."
	}
	if p.room.Value() == "" {
		return "Room is required."
	}
	day, err := time.Parse(dateLayout, p.date.Value())
	if err != nil {
		return "Date must be YYYY-MM-DD."
	}
	today, _ := time.Parse(dateLayout, p.today)
	if day.Before(today) {
		return "Assignment date cannot be in the past."
	}
	return ""
}

// resetForm restores the form's initial presentation: empty fields,
// today's date, placeholder cleaner
func (p *managerPage) resetForm() {
	p.room.Reset()
	p.notes.Reset()
	p.date.SetValue(p.today)
	p.cleanerIdx = -1
}

// decide begins a decision for the selected record, if none is in flight
func (p *managerPage) decide(status api.DecisionStatus) tea.Cmd {
	record, ok := p.approvals.Selected()
	if !ok {
		return nil
	}
	if !p.approvals.Begin(record.ID) {
		return nil
	}
	return p.decideCmd(record.ID, status)
}

func (p *managerPage) Update(msg tea.Msg) (pageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case cleanersLoadedMsg:
		p.loadingList = false
		if msg.err != nil {
			p.cleanersErr = msg.err.Error()
			return p, nil
		}
		p.cleaners = msg.cleaners
		if len(p.cleaners) == 0 {
			p.cleanersErr = "No cleaners found"
		}
		return p, nil

	case approvalsLoadedMsg:
		if msg.err != nil {
			p.approvals.SetError(msg.err.Error())
			return p, nil
		}
		p.approvals.SetRecords(msg.records)
		return p, nil

	case assignResultMsg:
		p.submitting = false
		if msg.err != nil {
			// Field values are kept for a corrected retry.
			return p, noticeCmd(msg.err.Error(), true)
		}
		p.resetForm()
		return p, noticeCmd("Task assigned successfully.", false)

	case decideResultMsg:
		if msg.err != nil {
			p.approvals.Fail(msg.recordID)
			return p, noticeCmd(msg.err.Error(), true)
		}
		p.approvals.Complete(msg.recordID)
		if msg.status == api.DecisionApproved {
			return p, noticeCmd("Record approved successfully.", false)
		}
		return p, noticeCmd("Record sent for rework.", false)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.NextField):
			return p, p.setFocus((p.focus + 1) % mgrFocusCount)

		case key.Matches(msg, p.keys.PrevField):
			return p, p.setFocus((p.focus + mgrFocusCount - 1) % mgrFocusCount)

		case key.Matches(msg, p.keys.Up):
			switch p.focus {
			case mgrFocusCleaner:
				p.cycleCleaner(-1)
				return p, nil
			case mgrFocusApprovals:
				p.approvals.MoveUp()
				return p, nil
			}

		case key.Matches(msg, p.keys.Down):
			switch p.focus {
			case mgrFocusCleaner:
				p.cycleCleaner(1)
				return p, nil
			case mgrFocusApprovals:
				p.approvals.MoveDown()
				return p, nil
			}

		case key.Matches(msg, p.keys.Approve):
			if p.focus == mgrFocusApprovals {
				return p, p.decide(api.DecisionApproved)
			}

		case key.Matches(msg, p.keys.Rework):
			if p.focus == mgrFocusApprovals {
				return p, p.decide(api.DecisionRework)
			}

		case key.Matches(msg, p.keys.Submit):
			if p.focus == mgrFocusApprovals {
				return p, nil
			}
			if p.submitting {
				return p, nil
			}
			if problem := p.validateForm(); problem != "" {
				return p, noticeCmd(problem, true)
			}
			p.submitting = true
			return p, p.assignCmd()
		}
	}

	var cmd tea.Cmd
	switch p.focus {
	case mgrFocusRoom:
		p.room, cmd = p.room.Update(msg)
	case mgrFocusDate:
		p.date, cmd = p.date.Update(msg)
	case mgrFocusNotes:
		p.notes, cmd = p.notes.Update(msg)
	}
	return p, cmd
}

func (p *managerPage) cycleCleaner(delta int) {
	if len(p.cleaners) == 0 {
		return
	}
	if p.cleanerIdx < 0 {
		p.cleanerIdx = 0
		return
	}
	p.cleanerIdx = (p.cleanerIdx + delta + len(p.cleaners)) % len(p.cleaners)
}

func (p *managerPage) View(width int) string {
	welcome := welcomeLine(p.sess, "Manager", "Assign tasks and review submitted work.")

	label := func(slot int, text string) string {
		if p.focus == slot {
			return FocusedLabelStyle.Render(text)
		}
		return LabelStyle.Render(text)
	}

	submit := "[ Assign Task ]"
	if p.submitting {
		submit = "[ Assigning... ]"
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		CardTitleStyle.Render("Assign Cleaning Task"),
		"",
		label(mgrFocusCleaner, "Cleaner"),
		p.cleanerLine(),
		"",
		label(mgrFocusRoom, "Room"),
		p.room.View(),
		"",
		label(mgrFocusDate, "Date"),
		p.date.View(),
		"",
		label(mgrFocusNotes, "Notes"),
		p.notes.View(),
		"",
		submitStyle(p.submitting).Render(submit),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		welcome,
		"",
		CardStyle.Render(form),
		"",
		CardStyle.Render(p.approvals.Render(p.focus == mgrFocusApprovals)),
	)
}

func (p *managerPage) cleanerLine() string {
	switch {
	case p.loadingList:
		return DimStyle.Render("  Loading cleaners...")
	case p.cleanersErr != "":
		return ErrorStyle.Render("  " + p.cleanersErr)
	case p.cleanerIdx < 0:
		if p.focus == mgrFocusCleaner {
			return SelectorFocusedStyle.Render("‹ Select a cleaner ›")
		}
		return DimStyle.Render("  Select a cleaner")
	}

	name := p.cleaners[p.cleanerIdx].FullName
	if p.focus == mgrFocusCleaner {
		return SelectorFocusedStyle.Render("‹ " + name + " ›")
	}
	return SelectorStyle.Render("  " + name)
}
