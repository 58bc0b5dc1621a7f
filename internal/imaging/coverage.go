package imaging

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Coverage describes the geographic area a station's radar overlay spans,
// read from the DWRI_* config file the station transmits.
type Coverage struct {
	AreaID    string
	TopLat    float64
	LeftLon   float64
	BottomLat float64
	RightLon  float64
}

var coverageEntryRe = regexp.MustCompile(`(\w+)=(.*)$`)

// ParseCoverage reads the station's key=value coverage config. Values may
// be quoted; the Coordinates entry holds two semicolon-separated
// "(lat,lon)" corner pairs (top-left then bottom-right).
func ParseCoverage(text string) (Coverage, error) {
	entries := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		m := coverageEntryRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		entries[m[1]] = stripQuotes(m[2])
	}

	coords, ok := entries["Coordinates"]
	if !ok {
		return Coverage{}, errors.New("coverage config has no Coordinates entry")
	}

	cov := Coverage{AreaID: entries["DWR_Area_ID"]}

	corners := strings.Split(coords, ";")
	if len(corners) != 2 {
		return Coverage{}, fmt.Errorf("malformed Coordinates entry %q", coords)
	}

	var err error
	cov.TopLat, cov.LeftLon, err = parseCorner(corners[0])
	if err != nil {
		return Coverage{}, err
	}
	cov.BottomLat, cov.RightLon, err = parseCorner(corners[1])
	if err != nil {
		return Coverage{}, err
	}
	return cov, nil
}

func parseCorner(s string) (lat, lon float64, err error) {
	s = strings.TrimSpace(stripQuotes(s))
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed coordinate pair %q", s)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("latitude in %q: %w", s, err)
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("longitude in %q: %w", s, err)
	}
	return lat, lon, nil
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
