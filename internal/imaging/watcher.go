package imaging

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hdfm-tui/internal/decoder"
)

const defaultInterval = 500 * time.Millisecond

// Config locates the directories the watcher works with.
type Config struct {
	// DumpDir is where the decoder dumps the station's AAS files.
	DumpDir string
	// OutDir receives the assembled display images.
	OutDir string
	// SaveDir, when set, receives timestamped copies of finished maps.
	SaveDir string
	// USMapPath is an optional mercator-projected US street map used as
	// the radar base; without it the overlay is shown on a blank canvas.
	USMapPath string
	// CacheDir holds cropped base maps, keyed by coverage area id.
	CacheDir string
	// Interval between dump directory sweeps.
	Interval time.Duration
}

// Watcher turns the decoder's dump-directory side channel into ImageReady
// events: radar overlays are composited over the coverage base map,
// traffic tiles are assembled into a mosaic, and album art is surfaced
// as it arrives. Processed source files are removed, matching the
// decoder's repeat-transmission behavior.
type Watcher struct {
	cfg     Config
	handler decoder.Handler

	mosaic       *TrafficMosaic
	base         *image.RGBA
	haveCoverage bool
	lastOverlay  string
}

func NewWatcher(cfg Config, handler decoder.Handler) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	return &Watcher{
		cfg:     cfg,
		handler: handler,
		mosaic:  NewTrafficMosaic(),
	}
}

// Run sweeps the dump directory until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	_ = os.MkdirAll(w.cfg.DumpDir, 0o755)
	_ = os.MkdirAll(w.cfg.OutDir, 0o755)
	if w.cfg.CacheDir != "" {
		_ = os.MkdirAll(w.cfg.CacheDir, 0o755)
	}

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Scan()
		}
	}
}

// Scan performs one sweep of the dump directory.
func (w *Watcher) Scan() {
	w.scanCoverage()
	w.scanWeather()
	w.scanTraffic()
	w.scanArt()
}

// scanCoverage reads the station's DWRI config once and prepares the
// radar base map for its coverage area.
func (w *Watcher) scanCoverage() {
	if w.haveCoverage {
		return
	}
	matches, _ := filepath.Glob(filepath.Join(w.cfg.DumpDir, "DWRI_*"))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cov, err := ParseCoverage(string(data))
		if err != nil {
			continue
		}
		if w.cfg.USMapPath != "" {
			if base, err := LoadBaseMap(w.cfg.USMapPath, w.cfg.CacheDir, cov); err == nil {
				w.base = base
			}
		}
		w.haveCoverage = true
		return
	}
}

func (w *Watcher) scanWeather() {
	matches, _ := filepath.Glob(filepath.Join(w.cfg.DumpDir, "DWRO_*"))
	for _, path := range matches {
		// Stations retransmit the same overlay; only a new name is news.
		if path != w.lastOverlay {
			w.lastOverlay = path
			if overlay, err := readImage(path); err == nil {
				base := w.base
				if base == nil {
					base = BlankBase()
				}
				composite := ComposeRadar(base, overlay)
				out := filepath.Join(w.cfg.OutDir, "weather.png")
				if writePNG(out, composite) == nil {
					w.emitImage(decoder.ImageWeather, out)
					w.saveCopy("weather", composite)
				}
			}
		}
		os.Remove(path)
	}
}

func (w *Watcher) scanTraffic() {
	matches, _ := filepath.Glob(filepath.Join(w.cfg.DumpDir, "TMT_*"))
	updated := false
	for _, path := range matches {
		row, col, ok := TileCell(filepath.Base(path))
		if ok {
			if tile, err := readImage(path); err == nil {
				w.mosaic.Paste(row, col, tile)
				updated = true
			}
		}
		os.Remove(path)
	}
	if !updated {
		return
	}

	out := filepath.Join(w.cfg.OutDir, "traffic.png")
	if writePNG(out, w.mosaic.Image()) == nil {
		w.emitImage(decoder.ImageTraffic, out)
	}
	if w.mosaic.Complete() {
		w.saveCopy("traffic", w.mosaic.Image())
		w.mosaic.Reset()
	}
}

// scanArt surfaces album/station artwork: any remaining image file in the
// dump directory that is not weather or traffic data.
func (w *Watcher) scanArt() {
	matches, _ := filepath.Glob(filepath.Join(w.cfg.DumpDir, "*"))
	for _, path := range matches {
		name := filepath.Base(path)
		if strings.HasPrefix(name, "DWRI_") || strings.HasPrefix(name, "DWRO_") || strings.HasPrefix(name, "TMT_") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
			continue
		}

		out := filepath.Join(w.cfg.OutDir, name)
		if err := moveFile(path, out); err == nil {
			w.emitImage(decoder.ImageArt, out)
		} else {
			os.Remove(path)
		}
	}
}

func (w *Watcher) emitImage(kind decoder.ImageKind, path string) {
	if w.handler != nil {
		w.handler(decoder.Event{Kind: decoder.EventImageReady, Image: kind, Path: path})
	}
}

// saveCopy writes a timestamped copy of a finished map into the user's
// save directory, when one is configured.
func (w *Watcher) saveCopy(prefix string, img image.Image) {
	if w.cfg.SaveDir == "" {
		return
	}
	stamp := time.Now().Format("01-02-2006_03-04-05_PM")
	path := filepath.Join(w.cfg.SaveDir, prefix+"_"+stamp+".png")
	_ = writePNG(path, img)
}

func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	// Rename fails across filesystems; fall back to copy + remove.
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return err
	}
	return os.Remove(src)
}
