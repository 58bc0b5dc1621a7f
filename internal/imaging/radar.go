package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// ComposeRadar scales the transmitted radar overlay to the canvas size and
// alpha-composites it over the base map. The base is never modified.
func ComposeRadar(base *image.RGBA, overlay image.Image) *image.RGBA {
	out := image.NewRGBA(base.Bounds())
	draw.Copy(out, base.Bounds().Min, base, base.Bounds(), draw.Src, nil)
	draw.CatmullRom.Scale(out, out.Bounds(), overlay, overlay.Bounds(), draw.Over, nil)
	return out
}
