package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/wardkeep/tui-go/internal/api"
)

// approvalList keeps the rendered pending-approval set consistent with the
// server. Items are removed only on a server-confirmed decision, never
// optimistically: the decision is not idempotent, so a record stays visible
// (with its controls disabled) until the server answers. Each record has at
// most one decision in flight; decisions on distinct records may overlap.
type approvalList struct {
	records  []api.ApprovalRecord
	cursor   int
	inflight map[int]bool

	loaded  bool
	loadErr string
}

func newApprovalList() approvalList {
	return approvalList{inflight: make(map[int]bool)}
}

// SetRecords replaces the rendered set with a fresh server fetch
func (l *approvalList) SetRecords(records []api.ApprovalRecord) {
	l.records = records
	l.loaded = true
	l.loadErr = ""
	l.cursor = 0
	l.inflight = make(map[int]bool)
}

// SetError records a fetch failure for inline display
func (l *approvalList) SetError(msg string) {
	l.loaded = true
	l.loadErr = msg
}

// Empty reports whether nothing is pending
func (l *approvalList) Empty() bool {
	return len(l.records) == 0
}

// Selected returns the record under the cursor
func (l *approvalList) Selected() (api.ApprovalRecord, bool) {
	if l.cursor < 0 || l.cursor >= len(l.records) {
		return api.ApprovalRecord{}, false
	}
	return l.records[l.cursor], true
}

// MoveUp moves the cursor one record up
func (l *approvalList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// MoveDown moves the cursor one record down
func (l *approvalList) MoveDown() {
	if l.cursor < len(l.records)-1 {
		l.cursor++
	}
}

// Begin marks a record's decision as in flight. It returns false when that
// record already has a decision pending; both approve and rework are blocked
// for it until the outcome arrives. Other records are unaffected.
func (l *approvalList) Begin(id int) bool {
	if l.inflight[id] {
		return false
	}
	l.inflight[id] = true
	return true
}

// Complete removes exactly the confirmed record from the rendered set
func (l *approvalList) Complete(id int) {
	delete(l.inflight, id)
	for i, record := range l.records {
		if record.ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			break
		}
	}
	if l.cursor >= len(l.records) && l.cursor > 0 {
		l.cursor = len(l.records) - 1
	}
}

// Fail re-enables a record's controls after a failed decision. The record
// stays in place; the set is otherwise unchanged.
func (l *approvalList) Fail(id int) {
	delete(l.inflight, id)
}

// Render replaces the list region each frame. An empty set renders the
// distinct all-caught-up state rather than an empty container.
func (l *approvalList) Render(focused bool) string {
	rows := []string{CardTitleStyle.Render("Pending Approvals"), ""}

	switch {
	case !l.loaded:
		rows = append(rows, DimStyle.Render("Loading approvals..."))
	case l.loadErr != "":
		rows = append(rows, ErrorStyle.Render("Failed to load approvals"), DimStyle.Render("Please try again later"))
	case len(l.records) == 0:
		rows = append(rows,
			StatusCompletedStyle.Render("All caught up!"),
			DimStyle.Render("No items pending approval"))
	default:
		for i, record := range l.records {
			rows = append(rows, l.renderRecord(record, focused && i == l.cursor))
		}
		if focused {
			rows = append(rows, DimStyle.Render("↑/↓ select · a approve · r rework"))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (l *approvalList) renderRecord(record api.ApprovalRecord, selected bool) string {
	// The cleaner id is an opaque uuid; only its prefix is informative.
	cleaner := record.CleanerID
	if len(cleaner) > 8 {
		cleaner = cleaner[:8] + "..."
	}

	title := ItemStyle.Render(record.RoomID)
	marker := "  "
	if selected {
		title = ItemSelectedStyle.Render(record.RoomID)
		marker = "❯ "
	}

	actions := DimStyle.Render("[a]pprove  [r]ework")
	if l.inflight[record.ID] {
		actions = ItemDisabledStyle.Render("deciding...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		marker+title+"  "+DimStyle.Render("#"+strconv.Itoa(record.ID))+"  "+DimStyle.Render("cleaner "+cleaner),
		"    "+LabelStyle.Render("AI Status: ")+statusStyle(record.CleanlinessStatus).Render(record.CleanlinessStatus),
		"    "+RemarksStyle.Render("\""+record.AIRemarks+"\""),
		"    "+actions,
		"",
	)
}
