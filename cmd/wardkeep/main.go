package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wardkeep/tui-go/internal/api"
	"github.com/wardkeep/tui-go/internal/config"
	"github.com/wardkeep/tui-go/internal/session"
	"github.com/wardkeep/tui-go/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store := session.NewStore(cfg.TokenPath)
	client := api.NewClient(cfg.APIURL)

	p := tea.NewProgram(
		tui.NewRootModel(cfg, store, client),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
