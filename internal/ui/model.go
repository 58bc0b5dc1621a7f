package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"hdfm-tui/internal/config"
	"hdfm-tui/internal/decoder"
	"hdfm-tui/internal/station"
)

type inputMode int

const (
	inputNone inputMode = iota
	inputFrequency
	inputProgram
)

// maxLogLines bounds the decoder log ring kept for display.
const maxLogLines = 200

// Controller is the slice of the decoder supervisor the UI drives.
type Controller interface {
	Start(decoder.Config) error
	Stop() error
	Running() bool
}

type Model struct {
	control Controller
	presets *config.Presets
	appCfg  config.AppConfig
	dumpDir string
	styles  Styles
	ipc     *ipcServer

	changes <-chan station.Change
	snap    station.Snapshot

	frequency float64
	program   int

	logLines []string

	errMsg string

	inputMode inputMode
	freqInput textinput.Model
	progInput textinput.Model

	showHelp    bool
	showTheme   bool
	themeIdx    int
	theme       Theme
	showPresets bool
	presetIdx   int

	width  int
	height int
}

type stateMsg struct {
	change station.Change
}

type stateClosedMsg struct{}

type startResultMsg struct{ err error }

type stopResultMsg struct{ err error }

type themeSavedMsg struct{ err error }

func NewModel(control Controller, changes <-chan station.Change, presets *config.Presets, appCfg config.AppConfig, dumpDir string, frequency float64, program int, presetErr error) Model {
	freqInput := textinput.New()
	freqInput.Prompt = "Frequency: "
	freqInput.Placeholder = "98.5"
	freqInput.CharLimit = 5
	freqInput.Width = 8

	progInput := textinput.New()
	progInput.Prompt = "Program: "
	progInput.Placeholder = "0"
	progInput.CharLimit = 1
	progInput.Width = 4

	theme := ThemeBySlug(appCfg.Theme)
	themeIdx := 0
	for i, t := range Themes {
		if t.Slug == theme.Slug {
			themeIdx = i
			break
		}
	}

	m := Model{
		control:   control,
		changes:   changes,
		presets:   presets,
		appCfg:    appCfg,
		dumpDir:   dumpDir,
		styles:    BuildStyles(theme),
		theme:     theme,
		themeIdx:  themeIdx,
		frequency: frequency,
		program:   program,
	}

	if presetErr != nil {
		m.errMsg = presetErr.Error()
	}

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listenStateCmd(), m.startIPCCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" || (key == "q" && m.inputMode == inputNone && !m.showPresets && !m.showTheme && !m.showHelp) {
			return m.quit()
		}

		if m.showHelp {
			if key == "?" || key == "esc" || key == "enter" {
				m.showHelp = false
			}
			return m, nil
		}

		if m.showTheme {
			switch key {
			case "t", "T", "esc", "q":
				m.showTheme = false
			case "up", "k":
				if m.themeIdx > 0 {
					m.themeIdx--
					m.theme = Themes[m.themeIdx]
					m.styles = BuildStyles(m.theme)
				}
			case "down", "j":
				if m.themeIdx < len(Themes)-1 {
					m.themeIdx++
					m.theme = Themes[m.themeIdx]
					m.styles = BuildStyles(m.theme)
				}
			case "enter":
				m.showTheme = false
				return m, m.saveThemeCmd()
			}
			return m, nil
		}

		if m.showPresets {
			return m.updatePresetPicker(key)
		}

		switch m.inputMode {
		case inputFrequency:
			return m.updateFrequencyInput(msg)
		case inputProgram:
			return m.updateProgramInput(msg)
		}

		switch key {
		case "?":
			m.showHelp = true
		case "enter":
			m.errMsg = ""
			return m, m.startDecoderCmd()
		case " ":
			m.errMsg = ""
			if m.snap.Running {
				return m, m.stopDecoderCmd()
			}
			return m, m.startDecoderCmd()
		case "f", "F":
			m.inputMode = inputFrequency
			m.freqInput.SetValue(formatFrequency(m.frequency))
			m.freqInput.Focus()
			m.freqInput.CursorEnd()
			return m, textinput.Blink
		case "c", "C":
			m.inputMode = inputProgram
			m.progInput.SetValue(strconv.Itoa(m.program))
			m.progInput.Focus()
			m.progInput.CursorEnd()
			return m, textinput.Blink
		case "p", "P":
			m.showPresets = true
			m.ensurePresetSelection()
		case "b", "B":
			if m.presets != nil && m.frequency > 0 {
				name := m.snap.StationID
				if name == "" {
					name = formatFrequency(m.frequency) + " MHz"
				}
				if _, err := m.presets.Toggle(config.Preset{Name: name, Frequency: m.frequency, Program: m.program}); err != nil {
					m.errMsg = err.Error()
				}
			}
		case "t", "T":
			m.showTheme = true
		}
	case stateMsg:
		m.applyChange(msg.change)
		return m, m.listenStateCmd()
	case stateClosedMsg:
		return m, nil
	case startResultMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil
	case stopResultMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil
	case ipcReadyMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.ipc = msg.server
		return m, m.listenIPCCmd()
	case ipcMsg:
		return m.handleIPC(msg)
	case ipcClosedMsg:
		m.ipc = nil
		return m, nil
	case themeSavedMsg:
		if msg.err != nil {
			m.errMsg = "Failed to save theme: " + msg.err.Error()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.control != nil && m.control.Running() {
		_ = m.control.Stop()
	}
	if m.ipc != nil {
		m.ipc.Close()
	}
	return m, tea.Quit
}

// applyChange folds a station state change into the display model.
func (m *Model) applyChange(change station.Change) {
	ev := change.Event
	m.snap = change.Snapshot

	switch ev.Kind {
	case decoder.EventLogLine:
		m.appendLog(ev.Text)
	case decoder.EventProcessExited:
		if ev.Code == 0 {
			m.appendLog("decoder exited")
		} else {
			m.appendLog(fmt.Sprintf("decoder exited (code %d)", ev.Code))
			m.errMsg = fmt.Sprintf("decoder exited with code %d", ev.Code)
		}
	case decoder.EventProcessStarted:
		m.errMsg = ""
		m.appendLog(fmt.Sprintf("decoder started on %s MHz program %d", formatFrequency(m.frequency), m.program))
	}
}

func (m *Model) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
}

func (m Model) decoderConfig() decoder.Config {
	return decoder.Config{
		Frequency:    m.frequency,
		Program:      m.program,
		BinaryPath:   m.appCfg.DecoderPath,
		DumpDir:      m.dumpDir,
		LogLevel:     m.appCfg.LogLevel,
		DisableAudio: m.appCfg.DisableAudio,
		PPM:          m.appCfg.PPM,
	}
}

func (m Model) startDecoderCmd() tea.Cmd {
	control := m.control
	cfg := m.decoderConfig()
	return func() tea.Msg {
		if control == nil {
			return startResultMsg{err: fmt.Errorf("decoder not available")}
		}
		return startResultMsg{err: control.Start(cfg)}
	}
}

func (m Model) stopDecoderCmd() tea.Cmd {
	control := m.control
	return func() tea.Msg {
		if control == nil {
			return stopResultMsg{err: fmt.Errorf("decoder not available")}
		}
		return stopResultMsg{err: control.Stop()}
	}
}

func (m Model) saveThemeCmd() tea.Cmd {
	slug := m.theme.Slug
	return func() tea.Msg {
		err := config.SaveTheme(slug)
		return themeSavedMsg{err: err}
	}
}

func (m Model) listenStateCmd() tea.Cmd {
	changes := m.changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return stateClosedMsg{}
		}
		return stateMsg{change: change}
	}
}

func (m Model) startIPCCmd() tea.Cmd {
	return func() tea.Msg {
		server, err := newIPCServer()
		return ipcReadyMsg{server: server, err: err}
	}
}

func (m Model) listenIPCCmd() tea.Cmd {
	if m.ipc == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg := <-m.ipc.messages:
			return msg
		case <-m.ipc.done:
			return ipcClosedMsg{}
		}
	}
}

func (m Model) updateFrequencyInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.freqInput, cmd = m.freqInput.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			value := strings.TrimSpace(m.freqInput.Value())
			freq, err := strconv.ParseFloat(value, 64)
			if err != nil || freq < decoder.MinFrequency || freq > decoder.MaxFrequency {
				m.errMsg = fmt.Sprintf("frequency must be %.1f-%.1f MHz", decoder.MinFrequency, decoder.MaxFrequency)
				return m, cmd
			}
			m.errMsg = ""
			m.frequency = freq
			m.inputMode = inputNone
			m.freqInput.Blur()
			return m, nil
		case "esc":
			m.inputMode = inputNone
			m.freqInput.Blur()
			return m, nil
		}
	}

	return m, cmd
}

func (m Model) updateProgramInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.progInput, cmd = m.progInput.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			value := strings.TrimSpace(m.progInput.Value())
			prog, err := strconv.Atoi(value)
			if err != nil || prog < 0 || prog > decoder.MaxProgram {
				m.errMsg = fmt.Sprintf("program must be 0-%d", decoder.MaxProgram)
				return m, cmd
			}
			m.errMsg = ""
			m.program = prog
			m.inputMode = inputNone
			m.progInput.Blur()
			return m, nil
		case "esc":
			m.inputMode = inputNone
			m.progInput.Blur()
			return m, nil
		}
	}

	return m, cmd
}

func (m Model) updatePresetPicker(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "p", "P", "esc", "q":
		m.showPresets = false
	case "up", "k":
		m.movePresetSelection(-1)
	case "down", "j":
		m.movePresetSelection(1)
	case "b", "B":
		if preset, ok := m.currentPreset(); ok {
			if _, err := m.presets.Toggle(preset); err != nil {
				m.errMsg = err.Error()
			}
			m.ensurePresetSelection()
		}
	case "enter":
		if preset, ok := m.currentPreset(); ok {
			m.showPresets = false
			m.frequency = preset.Frequency
			m.program = preset.Program
			m.errMsg = ""
			if m.snap.Running {
				// Retune: stop the current run, then start on the preset.
				return m, tea.Sequence(m.stopDecoderCmd(), m.startDecoderCmd())
			}
			return m, m.startDecoderCmd()
		}
	}
	return m, nil
}

func (m *Model) movePresetSelection(delta int) {
	count := m.presetCount()
	if count == 0 {
		m.presetIdx = 0
		return
	}
	m.presetIdx += delta
	if m.presetIdx < 0 {
		m.presetIdx = 0
	}
	if m.presetIdx >= count {
		m.presetIdx = count - 1
	}
}

func (m *Model) ensurePresetSelection() {
	count := m.presetCount()
	if count == 0 {
		m.presetIdx = 0
		return
	}
	if m.presetIdx < 0 {
		m.presetIdx = 0
	}
	if m.presetIdx >= count {
		m.presetIdx = count - 1
	}
}

func (m *Model) presetCount() int {
	if m.presets == nil {
		return 0
	}
	return m.presets.Count()
}

func (m *Model) currentPreset() (config.Preset, bool) {
	if m.presets == nil {
		return config.Preset{}, false
	}
	list := m.presets.List()
	if m.presetIdx < 0 || m.presetIdx >= len(list) {
		return config.Preset{}, false
	}
	return list[m.presetIdx], true
}

func (m Model) handleIPC(msg ipcMsg) (tea.Model, tea.Cmd) {
	cmd, err := parseIPCCommand(msg.cmd)
	if err != nil {
		sendIPCReply(msg.reply, ipcReply{ok: false, err: err.Error()})
		return m, m.listenIPCCmd()
	}

	var reply ipcReply
	var cmdTea tea.Cmd

	switch cmd {
	case "TOGGLE":
		if m.snap.Running {
			cmdTea = m.stopDecoderCmd()
		} else {
			cmdTea = m.startDecoderCmd()
		}
		reply = ipcReply{ok: true, data: "QUEUED"}
	case "START":
		cmdTea = m.startDecoderCmd()
		reply = ipcReply{ok: true, data: "QUEUED"}
	case "STOP":
		cmdTea = m.stopDecoderCmd()
		reply = ipcReply{ok: true, data: "QUEUED"}
	case "STATUS":
		reply = ipcReply{ok: true, data: m.ipcStatus()}
	case "PING":
		reply = ipcReply{ok: true, data: "OK"}
	case "QUIT":
		sendIPCReply(msg.reply, ipcReply{ok: true})
		return m.quit()
	default:
		reply = ipcReply{ok: false, err: "unknown command"}
	}

	sendIPCReply(msg.reply, reply)
	return m, tea.Batch(cmdTea, m.listenIPCCmd())
}

func (m *Model) ipcStatus() string {
	running := "false"
	if m.snap.Running {
		running = "true"
	}
	name := m.snap.StationID
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("{\"running\":%s,\"frequency\":%s,\"program\":%d,\"station\":%q}",
		running, formatFrequency(m.frequency), m.program, name)
}

func sendIPCReply(ch chan ipcReply, reply ipcReply) {
	if ch == nil {
		return
	}
	select {
	case ch <- reply:
	case <-time.After(200 * time.Millisecond):
	}
}

func formatFrequency(freq float64) string {
	return strconv.FormatFloat(freq, 'f', 1, 64)
}
