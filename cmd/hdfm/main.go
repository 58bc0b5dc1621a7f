package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"hdfm-tui/internal/config"
	"hdfm-tui/internal/decoder"
	"hdfm-tui/internal/imaging"
	"hdfm-tui/internal/station"
	"hdfm-tui/internal/ui"
)

func main() {
	frequency := 98.5
	program := 0

	args := os.Args[1:]
	if len(args) >= 1 {
		f, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "usage: hdfm [frequency] [program]\n")
			os.Exit(2)
		}
		frequency = f
	}
	if len(args) >= 2 {
		p, err := strconv.Atoi(args[1])
		if err != nil || p < 0 || p > decoder.MaxProgram {
			fmt.Fprintf(os.Stderr, "program must be 0-%d\n", decoder.MaxProgram)
			os.Exit(2)
		}
		program = p
	}

	appCfg := config.LoadConfig()
	presets, presetErr := config.LoadPresets()

	st := station.New()
	supervisor := decoder.NewSupervisor(st.Apply)

	workDir := filepath.Join(os.TempDir(), fmt.Sprintf("hdfm-%d", os.Getpid()))
	dumpDir := filepath.Join(workDir, "dump")

	cacheDir := ""
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "hdfm")
	}

	watcher := imaging.NewWatcher(imaging.Config{
		DumpDir:   dumpDir,
		OutDir:    filepath.Join(workDir, "images"),
		SaveDir:   appCfg.SaveDir,
		USMapPath: appCfg.USMapPath,
		CacheDir:  cacheDir,
	}, st.Apply)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	changes := st.Subscribe(64)
	model := ui.NewModel(supervisor, changes, presets, appCfg, dumpDir, frequency, program, presetErr)
	app := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	_ = supervisor.Stop()
	cancel()
	_ = os.RemoveAll(workDir)
}
