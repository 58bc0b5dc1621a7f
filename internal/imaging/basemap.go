package imaging

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	// Codecs for the map and overlay files the station transmits.
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// Radar composites are rendered on a 900x900 canvas.
const baseMapSize = 900

// Calibration of the bundled mercator-projected US street map:
// reference latitudes in linear (asinh tan) form and the known
// pixel positions they map to.
const (
	usMapLatMax = 1.0799224683069641 // 52.482780 deg, top edge
	usMapLatRef = 0.7380009964270406 // 38.898 deg reference
	usMapLonMin = 130.781250         // degrees west of the left edge
	usMapXScale = 7162 / 39.34135    // pixels per degree of longitude
	usMapYScale = 3565               // pixels at the reference latitude
)

// CropBaseMap cuts the station's coverage area out of the mercator US map
// and scales it to the radar canvas size. Latitudes are linearized first
// because mercator latitude spacing grows toward the poles; longitudes
// are linear already.
func CropBaseMap(src image.Image, cov Coverage) *image.RGBA {
	x1 := int((cov.LeftLon + usMapLonMin) * usMapXScale)
	x2 := int((cov.RightLon + usMapLonMin) * usMapXScale)

	den := usMapLatMax - usMapLatRef
	y1 := int(linearLat(cov.TopLat) * usMapYScale / den)
	y2 := int(linearLat(cov.BottomLat) * usMapYScale / den)

	rect := image.Rect(x1, y1, x2, y2).Intersect(src.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, baseMapSize, baseMapSize))
	if rect.Empty() {
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, rect, draw.Src, nil)
	return dst
}

// linearLat converts a latitude to the linear form used for pixel math.
func linearLat(lat float64) float64 {
	return usMapLatMax - math.Asinh(math.Tan(lat*math.Pi/180))
}

// BlankBase is the fallback canvas used when no coverage config or US map
// is available: the radar overlay is then shown on its own.
func BlankBase() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, baseMapSize, baseMapSize))
}

// LoadBaseMap builds the base map for cov from the US map at mapPath,
// caching the crop per area so the large source image is decoded once.
func LoadBaseMap(mapPath, cacheDir string, cov Coverage) (*image.RGBA, error) {
	if cov.AreaID != "" && cacheDir != "" {
		cached := cachePath(cacheDir, cov.AreaID)
		if img, err := readImage(cached); err == nil {
			return toRGBA(img), nil
		}
	}

	src, err := readImage(mapPath)
	if err != nil {
		return nil, fmt.Errorf("load us map: %w", err)
	}

	base := CropBaseMap(src, cov)
	if cov.AreaID != "" && cacheDir != "" {
		_ = writePNG(cachePath(cacheDir, cov.AreaID), base)
	}
	return base, nil
}

func cachePath(cacheDir, areaID string) string {
	return filepath.Join(cacheDir, "map_"+areaID+".png")
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	dst := image.NewRGBA(img.Bounds())
	draw.Copy(dst, img.Bounds().Min, img, img.Bounds(), draw.Src, nil)
	return dst
}
