package ui

import (
	"strings"
	"testing"

	"hdfm-tui/internal/decoder"
	"hdfm-tui/internal/station"
)

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		maxLen   int
		expected string
	}{
		// Basic cases
		{"short text fits", "Hello", 10, "Hello"},
		{"exact length", "Hello", 5, "Hello"},
		{"needs truncation", "Hello World", 8, "Hello..."},

		// Edge cases
		{"empty string", "", 10, ""},
		{"max zero", "Hello", 0, ""},
		{"max negative", "Hello", -5, ""},
		{"max 1", "Hello", 1, "H"},
		{"max 2", "Hello", 2, "He"},
		{"max 3", "Hello", 3, "Hel"},
		{"max 4 truncates", "Hello World", 4, "H..."},

		// Whitespace handling
		{"leading space trimmed", "  Hello", 10, "Hello"},
		{"trailing space trimmed", "Hello  ", 10, "Hello"},
		{"both spaces trimmed", "  Hello  ", 10, "Hello"},

		// Unicode (note: truncateText uses byte length, not rune count)
		// Multi-byte characters that fit within the limit work correctly
		{"unicode fits", "日本語", 10, "日本語"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateText(tt.value, tt.maxLen)
			if got != tt.expected {
				t.Errorf("truncateText(%q, %d) = %q, want %q", tt.value, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestFallback(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		alt      string
		expected string
	}{
		{"non-empty value", "hello", "default", "hello"},
		{"empty value", "", "default", "default"},
		{"whitespace only", "   ", "default", "default"},
		{"tabs only", "\t\t", "default", "default"},
		{"newlines only", "\n\n", "default", "default"},
		{"mixed whitespace", " \t\n ", "default", "default"},
		{"value with spaces", "  hello  ", "default", "  hello  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fallback(tt.value, tt.alt)
			if got != tt.expected {
				t.Errorf("fallback(%q, %q) = %q, want %q", tt.value, tt.alt, got, tt.expected)
			}
		})
	}
}

func TestListWindow(t *testing.T) {
	tests := []struct {
		name          string
		length        int
		selected      int
		max           int
		expectedStart int
		expectedEnd   int
	}{
		// Small list (fits entirely)
		{"small list", 5, 2, 10, 0, 5},
		{"small list at start", 3, 0, 10, 0, 3},

		// Large list
		{"large list start", 20, 0, 5, 0, 5},
		{"large list middle", 20, 10, 5, 8, 13},
		{"large list end", 20, 19, 5, 15, 20},
		{"large list near end", 20, 18, 5, 15, 20},

		// Edge cases
		{"single item", 1, 0, 5, 0, 1},
		{"max equals length", 10, 5, 10, 0, 10},
		{"selected at boundary", 10, 2, 5, 0, 5},

		// Window centering
		{"center window", 100, 50, 10, 45, 55},
		{"window shifted at start", 100, 3, 10, 0, 10},
		{"window shifted at end", 100, 97, 10, 90, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := listWindow(tt.length, tt.selected, tt.max)
			if start != tt.expectedStart || end != tt.expectedEnd {
				t.Errorf("listWindow(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.length, tt.selected, tt.max, start, end, tt.expectedStart, tt.expectedEnd)
			}
		})
	}
}

func TestJoinHeader(t *testing.T) {
	tests := []struct {
		name     string
		left     string
		right    string
		width    int
		expected string
	}{
		{"basic join", "LEFT", "RIGHT", 20, "LEFT           RIGHT"},
		{"zero width", "LEFT", "RIGHT", 0, ""},
		{"right exceeds width", "L", "VERYLONGRIGHT", 5, "VE..."},
		{"exact fit", "AB", "CD", 5, "AB CD"},
		{"left truncated", "VERYLONGLEFT", "R", 10, "VERYL... R"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := joinHeader(tt.left, tt.right, tt.width)
			if got != tt.expected {
				t.Errorf("joinHeader(%q, %q, %d) = %q, want %q",
					tt.left, tt.right, tt.width, got, tt.expected)
			}
		})
	}
}

func TestInnerWidthForPanel(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		expected int
	}{
		{"standard width", 80, 74},
		{"narrow width", 20, 14},
		{"very narrow", 8, 6},
		{"tiny", 4, 2},
		{"minimum", 2, 2},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := innerWidthForPanel(tt.width)
			if got != tt.expected {
				t.Errorf("innerWidthForPanel(%d) = %d, want %d", tt.width, got, tt.expected)
			}
		})
	}
}

func TestMax(t *testing.T) {
	tests := []struct {
		name     string
		a        int
		b        int
		expected int
	}{
		{"a greater", 10, 5, 10},
		{"b greater", 5, 10, 10},
		{"equal", 7, 7, 7},
		{"negative a", -5, 3, 3},
		{"negative b", 3, -5, 3},
		{"both negative", -5, -3, -3},
		{"zero and positive", 0, 5, 5},
		{"zero and negative", 0, -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := max(tt.a, tt.b)
			if got != tt.expected {
				t.Errorf("max(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestView_RendersWithoutSize(t *testing.T) {
	m := createTestModel()
	m.width = 0

	if got := m.View(); got != "Loading..." {
		t.Errorf("View() before first WindowSizeMsg = %q, want Loading...", got)
	}
}

func TestView_ShowsMetadata(t *testing.T) {
	m := createTestModel()
	m.snap = station.Snapshot{
		StationID: "KWOD",
		Artist:    "M83",
		Title:     "Midnight City",
		BitRate:   "128 kbps",
		Running:   true,
	}

	out := m.View()
	for _, want := range []string{"KWOD", "M83", "Midnight City", "128 kbps", "RUNNING"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestView_ShowsStoppedState(t *testing.T) {
	m := createTestModel()

	out := m.View()
	if !strings.Contains(out, "STOPPED") {
		t.Error("View() should show STOPPED while idle")
	}
}

func TestView_ShowsImages(t *testing.T) {
	m := createTestModel()
	m.height = 40
	m.snap.Images = map[decoder.ImageKind]string{
		decoder.ImageWeather: "/tmp/out/weather.png",
	}

	out := m.View()
	if !strings.Contains(out, "weather.png") {
		t.Error("View() should list received image files")
	}
}

func TestView_LogTail(t *testing.T) {
	m := createTestModel()
	for i := 0; i < 50; i++ {
		m.appendLog("old line")
	}
	m.appendLog("newest line")

	out := m.View()
	if !strings.Contains(out, "newest line") {
		t.Error("View() should show the newest log line")
	}
}

func TestView_Overlays(t *testing.T) {
	m := createTestModel()

	m.showHelp = true
	if out := m.View(); !strings.Contains(out, "Controls") {
		t.Error("help overlay should render")
	}
	m.showHelp = false

	m.showTheme = true
	if out := m.View(); !strings.Contains(out, "Select Theme") {
		t.Error("theme picker should render")
	}
	m.showTheme = false

	m.showPresets = true
	if out := m.View(); !strings.Contains(out, "Presets") {
		t.Error("preset picker should render")
	}
}
