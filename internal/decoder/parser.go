package decoder

import (
	"regexp"
	"strings"
)

// The decoder emits one metadata field per line, after an HH:MM:SS
// timestamp prefix. Patterns are tried in priority order; the first
// match wins and captures the variable text following the fixed label.
var linePatterns = []struct {
	re   *regexp.Regexp
	kind EventKind
}{
	{regexp.MustCompile(`Artist: (.*)$`), EventArtist},
	{regexp.MustCompile(`Title: (.*)$`), EventTitle},
	{regexp.MustCompile(`Station name: (.*)$`), EventStationID},
	{regexp.MustCompile(`Slogan: (.*)$`), EventSlogan},
	{regexp.MustCompile(`Audio bit rate: (.*)$`), EventBitRate},
}

// ParseLine maps one line of decoder output to at most one event.
// It is stateless and total: unmatched non-empty lines become
// EventLogLine, empty lines produce no event, and it never fails.
func ParseLine(line string) (Event, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return Event{}, false
	}

	for _, p := range linePatterns {
		if m := p.re.FindStringSubmatch(line); m != nil {
			return Event{Kind: p.kind, Text: strings.TrimSpace(m[1])}, true
		}
	}

	// Everything else (sync status, LOT file notices, debug output) is
	// diagnostic text. Image files are detected on disk, not from logs.
	return Event{Kind: EventLogLine, Text: line}, true
}
