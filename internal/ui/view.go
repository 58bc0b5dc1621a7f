package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hdfm-tui/internal/decoder"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	contentWidth := m.width - 4
	if contentWidth < 10 {
		contentWidth = m.width
	}

	compact := contentWidth < 60 || m.height < 24
	tiny := contentWidth < 44 || m.height < 18

	header := m.renderHeader(contentWidth)
	tuning := m.styles.Panel.Width(contentWidth).Render(m.renderTuning(contentWidth))

	var meta string
	if tiny {
		meta = m.styles.InsetPanel.Width(contentWidth).Render(m.renderNowPlayingCompact(contentWidth))
	} else {
		meta = m.styles.InsetPanel.Width(contentWidth).Render(m.renderNowPlaying())
	}

	keyHints := m.styles.KeyHint.Width(contentWidth).Render(m.renderKeyHints(contentWidth))

	var errLine string
	if m.errMsg != "" {
		errLine = m.styles.Error.Width(contentWidth).Render(m.errMsg)
	}

	appPadding := 2
	baseHeight := lipgloss.Height(header) + lipgloss.Height(tuning) + lipgloss.Height(meta) + lipgloss.Height(keyHints)
	if errLine != "" {
		baseHeight += lipgloss.Height(errLine)
	}

	var images string
	if !compact && len(m.snap.Images) > 0 {
		images = m.styles.Panel.Width(contentWidth).Render(m.renderImages(contentWidth))
		baseHeight += lipgloss.Height(images)
	}

	available := m.height - baseHeight - appPadding
	logLines := available - 5
	if logLines < 1 {
		logLines = 1
	}
	logPanel := m.renderLog(contentWidth, logLines)

	sections := []string{header, tuning, meta}
	if images != "" {
		sections = append(sections, images)
	}
	sections = append(sections, logPanel, keyHints)
	if errLine != "" {
		sections = append(sections, errLine)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	view := m.styles.App.Render(content)

	if m.showHelp {
		help := m.renderHelp()
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, help)
	}
	if m.showTheme {
		picker := m.renderThemePicker()
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, picker)
	}
	if m.showPresets {
		picker := m.renderPresetPicker(contentWidth, m.height)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, picker)
	}

	return view
}

func (m Model) renderHeader(width int) string {
	status := "STOPPED"
	statusStyle := m.styles.Muted
	if m.snap.Running {
		status = "RUNNING"
		statusStyle = m.styles.Success
	}

	left := "HDFM"
	if width >= 34 {
		left = fmt.Sprintf("HDFM %s MHz HD%d", formatFrequency(m.frequency), m.program+1)
	} else if width >= 20 {
		left = fmt.Sprintf("HDFM %s", formatFrequency(m.frequency))
	}
	right := statusStyle.Render(status)
	line := joinHeader(left, right, width)
	return m.styles.Header.Width(width).Render(line)
}

func (m Model) renderTuning(width int) string {
	if m.inputMode == inputFrequency {
		return m.freqInput.View()
	}
	if m.inputMode == inputProgram {
		return m.progInput.View()
	}

	tuned := fmt.Sprintf("%s MHz program %d", formatFrequency(m.frequency), m.program)
	tuned = truncateText(tuned, max(width-8, 10))
	line := m.styles.Label.Render("Tuned ") + m.styles.StationName.Render(tuned)
	if m.presets != nil && m.presets.IsPreset(m.frequency, m.program) {
		line += m.styles.Accent.Render(" *")
	}
	return line
}

func (m Model) renderNowPlaying() string {
	name := fallback(m.snap.StationID, "No station data yet")

	bitrate := "Bit rate: -"
	if m.snap.BitRate != "" {
		bitrate = "Bit rate: " + m.snap.BitRate
	}

	lines := []string{
		m.styles.StationName.Render(name),
		m.styles.Meta.Render("Slogan: " + fallback(m.snap.Slogan, "-")),
		m.styles.Meta.Render("Artist: " + fallback(m.snap.Artist, "-")),
		m.styles.Meta.Render("Title:  " + fallback(m.snap.Title, "-")),
		m.styles.Meta.Render(bitrate),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderNowPlayingCompact(width int) string {
	name := fallback(m.snap.StationID, "-")
	track := fallback(m.snap.Artist, "-") + " / " + fallback(m.snap.Title, "-")
	line1 := m.styles.StationName.Render(truncateText(name, max(width-6, 10)))
	line2 := m.styles.Meta.Render(truncateText(track, max(width-6, 10)))
	return lipgloss.JoinVertical(lipgloss.Left, line1, line2)
}

func (m Model) renderImages(width int) string {
	inner := innerWidthForPanel(width)
	lines := []string{m.styles.ListHeader.Render("Images")}

	for _, kind := range []decoder.ImageKind{decoder.ImageWeather, decoder.ImageTraffic, decoder.ImageArt} {
		path, ok := m.snap.Images[kind]
		if !ok {
			continue
		}
		label := fmt.Sprintf("%-8s %s", kind, filepath.Base(path))
		lines = append(lines, m.styles.Meta.Render(truncateText(label, inner)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderLog(width int, maxItems int) string {
	inner := innerWidthForPanel(width)
	lines := []string{m.styles.ListHeader.Render("Decoder log")}

	if len(m.logLines) == 0 {
		lines = append(lines, m.styles.Muted.Render("No output yet"))
		return m.styles.Panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	start := len(m.logLines) - maxItems
	if start < 0 {
		start = 0
	}
	for _, line := range m.logLines[start:] {
		lines = append(lines, m.styles.LogText.Render(truncateText(line, inner)))
	}

	return m.styles.Panel.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderKeyHints(width int) string {
	if width < 30 {
		return "Enter Start  Q Quit"
	}
	if width < 52 {
		return "Enter Start  Space Stop  F Freq  C Prog  Q Quit"
	}
	return "Enter Start  Space Stop/Start  F Frequency  C Program  P Presets  B Save  T Theme  ? Help  Q Quit"
}

func (m Model) renderHelp() string {
	lines := []string{
		"Controls",
		"",
		"Enter        Start decoder",
		"Space        Stop/Start",
		"F            Set frequency",
		"C            Set program (0-3)",
		"P            Preset picker",
		"B            Save/remove preset",
		"T            Change theme",
		"?            Close help",
		"Q            Quit",
	}
	return m.styles.HelpBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderThemePicker() string {
	lines := []string{
		m.styles.ListHeader.Render("Select Theme"),
		"",
	}
	for i, t := range Themes {
		marker := "  "
		style := m.styles.ListItem
		if i == m.themeIdx {
			marker = "> "
			style = m.styles.ListActive
		}
		lines = append(lines, style.Render(marker+t.Name))
	}
	lines = append(lines, "", m.styles.Muted.Render("Enter save  Esc cancel"))
	return m.styles.HelpBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderPresetPicker(width int, height int) string {
	panelWidth := width
	if panelWidth <= 0 {
		panelWidth = 10
	}
	innerWidth := innerWidthForPanel(panelWidth)
	if innerWidth < 10 {
		innerWidth = max(panelWidth-2, 4)
	}

	lines := []string{m.styles.ListHeader.Render("Presets")}

	var list []string
	if m.presets != nil {
		for _, p := range m.presets.List() {
			label := fmt.Sprintf("%5s MHz  HD%d  %s", formatFrequency(p.Frequency), p.Program+1, p.Name)
			list = append(list, label)
		}
	}

	if len(list) == 0 {
		lines = append(lines, m.styles.Muted.Render("No presets saved (B saves the current tuning)"))
		return m.styles.Panel.Width(panelWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	maxItems := max(height-10, 4)
	if maxItems > 12 {
		maxItems = 12
	}
	start, end := listWindow(len(list), m.presetIdx, maxItems)
	for i := start; i < end; i++ {
		marker := "  "
		style := m.styles.ListItem
		if i == m.presetIdx {
			marker = "> "
			style = m.styles.ListActive
		}
		label := truncateText(list[i], innerWidth)
		lines = append(lines, style.Width(innerWidth).MaxWidth(innerWidth).Render(marker+label))
	}
	lines = append(lines, "", m.styles.Muted.Render("Enter tune  B remove  Esc close"))

	return m.styles.Panel.Width(panelWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func joinHeader(left, right string, width int) string {
	if width <= 0 {
		return ""
	}

	rightWidth := lipgloss.Width(right)
	if rightWidth >= width {
		return truncateText(right, width)
	}

	maxLeft := width - rightWidth - 1
	left = truncateText(left, maxLeft)
	space := max(width-lipgloss.Width(left)-rightWidth, 1)
	return left + strings.Repeat(" ", space) + right
}

func listWindow(length, selected, max int) (int, int) {
	if length <= max {
		return 0, length
	}
	start := selected - max/2
	if start < 0 {
		start = 0
	}
	end := start + max
	if end > length {
		end = length
		start = end - max
	}
	if start < 0 {
		start = 0
	}
	return start, end
}

func fallback(value, alt string) string {
	if strings.TrimSpace(value) == "" {
		return alt
	}
	return value
}

func truncateText(value string, maxLen int) string {
	value = strings.TrimSpace(value)
	if maxLen <= 0 {
		return ""
	}
	if len(value) <= maxLen {
		return value
	}
	if maxLen <= 3 {
		return value[:maxLen]
	}
	return value[:maxLen-3] + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func innerWidthForPanel(width int) int {
	inner := width - 6
	if inner < 4 {
		inner = max(width-2, 2)
	}
	if inner > width {
		inner = width
	}
	return inner
}
