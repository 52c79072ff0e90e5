package app

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sdsweep/internal/config"
	"sdsweep/internal/logging"
	"sdsweep/internal/services"
	"sdsweep/internal/state"
	"sdsweep/internal/ui"
)

func Run() {
	base := config.Default()
	loaded, loadErr := config.Load()
	if loadErr == nil {
		base = loaded
	}
	cfg := config.ParseFlags(base)

	roots, err := config.LoadAllowlist(config.AllowlistPath())
	if err != nil {
		fmt.Println("sdsweep allowlist error:", err)
		os.Exit(2)
	}
	cfg.ScanRoots = roots
	if err := cfg.Validate(); err != nil {
		fmt.Println("sdsweep config error:", err)
		os.Exit(2)
	}

	log := logging.StdLogger{Verbose: cfg.Verbose}
	runner := services.NewExecRunner(log)
	source := services.NewTmutilSource(runner, log)
	scanner := services.NewLibScanner(log)
	actions := services.NewSnapshotActions(source)

	appState := state.NewState(cfg)
	model := ui.NewModel(appState, scanner, source, actions, log)
	if loadErr != nil {
		model = model.WithStatus("Config warning: using defaults")
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		fmt.Println("sdsweep error:", err)
		return
	}
	if provider, ok := finalModel.(ui.ConfigProvider); ok {
		if err := config.Save(provider.ConfigSnapshot()); err != nil {
			log.Error("config save failed: %v", err)
		}
	}
}
