package imaging

import (
	"image"
	"regexp"
	"strconv"

	"golang.org/x/image/draw"
)

const (
	// Traffic maps arrive as a 3x3 grid of 200x200 tiles.
	trafficTileSize = 200
	trafficGridSize = 3
)

// Tile filenames carry their one-indexed grid position: TMT_..._<row>_<col>_...
var tileCellRe = regexp.MustCompile(`_([123])_([123])_`)

// TileCell extracts a tile's zero-indexed grid position from its filename.
func TileCell(name string) (row, col int, ok bool) {
	m := tileCellRe.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	row, _ = strconv.Atoi(m[1])
	col, _ = strconv.Atoi(m[2])
	return row - 1, col - 1, true
}

// TrafficMosaic assembles received tiles into the full traffic map and
// tracks which cells have been updated since the last complete set.
type TrafficMosaic struct {
	img  *image.RGBA
	seen [trafficGridSize * trafficGridSize]bool
}

func NewTrafficMosaic() *TrafficMosaic {
	side := trafficTileSize * trafficGridSize
	return &TrafficMosaic{img: image.NewRGBA(image.Rect(0, 0, side, side))}
}

// Paste places a tile at its zero-indexed grid cell.
func (m *TrafficMosaic) Paste(row, col int, tile image.Image) {
	if row < 0 || row >= trafficGridSize || col < 0 || col >= trafficGridSize {
		return
	}
	origin := image.Pt(col*trafficTileSize, row*trafficTileSize)
	rect := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(trafficTileSize, trafficTileSize))}
	draw.CatmullRom.Scale(m.img, rect, tile, tile.Bounds(), draw.Src, nil)
	m.seen[col+row*trafficGridSize] = true
}

// Complete reports whether every cell has been updated since the last Reset.
func (m *TrafficMosaic) Complete() bool {
	for _, ok := range m.seen {
		if !ok {
			return false
		}
	}
	return true
}

// Reset clears the update tracker; pasted pixels are kept so stale cells
// still show the previous tile until a fresh one arrives.
func (m *TrafficMosaic) Reset() {
	m.seen = [trafficGridSize * trafficGridSize]bool{}
}

// Image returns the mosaic canvas.
func (m *TrafficMosaic) Image() *image.RGBA {
	return m.img
}
