package tui

import tea "github.com/charmbracelet/bubbletea"

// pageModel is one mounted page. A page is created when the router loads it
// and discarded on the next navigation; it is never updated in place across
// loads, so no handler can outlive its page.
type pageModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (pageModel, tea.Cmd)
	View(width int) string
}

// pageMsg is implemented by every message a page's async work produces.
// The generation is stamped at mount; the root drops messages whose
// generation no longer matches, so a response that arrives after the user
// has navigated away is inert.
type pageMsg interface {
	pageGen() int
}

// stamp is embedded in page messages to carry their mount generation
type stamp int

func (s stamp) pageGen() int { return int(s) }
