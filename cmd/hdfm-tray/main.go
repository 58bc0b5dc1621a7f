package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/getlantern/systray"

	"hdfm-tui/internal/config"
	"hdfm-tui/internal/decoder"
	"hdfm-tui/internal/imaging"
	"hdfm-tui/internal/ipc"
	"hdfm-tui/internal/station"
	"hdfm-tui/internal/ui"
)

const (
	cmdToggle = "TOGGLE"
	cmdQuit   = "QUIT"
	cmdStatus = "STATUS"
)

func main() {
	systray.Run(onReady, onExit)
}

func onReady() {
	systray.SetTitle("HDFM")
	systray.SetTooltip("HDFM")

	mToggle := systray.AddMenuItem("Start/Stop", "Toggle the decoder")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit HDFM")

	go func() {
		if err := runTUI(); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		systray.Quit()
	}()

	go func() {
		for range mToggle.ClickedCh {
			_, _ = sendCommand(cmdToggle)
		}
	}()
	go func() {
		for range mQuit.ClickedCh {
			_, _ = sendCommand(cmdQuit)
			systray.Quit()
		}
	}()

	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			status, err := sendCommand(cmdStatus)
			if err != nil {
				systray.SetTooltip("HDFM (disconnected)")
				mToggle.Disable()
				mQuit.Disable()
				continue
			}
			systray.SetTooltip("HDFM " + status)
			mToggle.Enable()
			mQuit.Enable()
		}
	}()
}

func onExit() {
	_, _ = sendCommand(cmdQuit)
}

func runTUI() error {
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
	model := ui.NewModel(supervisor, changes, presets, appCfg, dumpDir, 98.5, 0, presetErr)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()

	_ = supervisor.Stop()
	_ = os.RemoveAll(workDir)
	return err
}

func sendCommand(command string) (string, error) {
	ep, err := ipc.ResolveEndpoint()
	if err != nil {
		return "", err
	}

	conn, err := net.DialTimeout(ep.Network, ep.Address, 500*time.Millisecond)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	_, err = fmt.Fprintln(conn, command)
	if err != nil {
		return "", err
	}

	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "ERR ") {
		return "", errors.New(strings.TrimPrefix(line, "ERR "))
	}
	if line == "OK" {
		return "", nil
	}
	return line, nil
}
