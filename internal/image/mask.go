package imagepkg

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

// roundedRectMask returns a w x h coverage mask of a rounded rectangle.
func roundedRectMask(w, h, radius int) *image.Alpha {
	z := vector.NewRasterizer(w, h)
	roundedRectPath(z, 0, 0, float32(w), float32(h), float32(radius), false)
	return rasterize(z, w, h)
}

// roundedRingMask returns the mask of a stroke of the given width centered on
// the outline of a w x h rounded rectangle. The mask extends pad pixels past
// the rectangle on every side.
func roundedRingMask(w, h, radius, width int) (*image.Alpha, int) {
	half := float32(width) / 2
	pad := int(math.Ceil(float64(half)))
	mw, mh := w+2*pad, h+2*pad
	p := float32(pad)

	z := vector.NewRasterizer(mw, mh)
	roundedRectPath(z, p-half, p-half, p+float32(w)+half, p+float32(h)+half, float32(radius)+half, false)
	// reversed winding cancels the inner area
	roundedRectPath(z, p+half, p+half, p+float32(w)-half, p+float32(h)-half, float32(radius)-half, true)
	return rasterize(z, mw, mh), pad
}

func rasterize(z *vector.Rasterizer, w, h int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.DrawOp = draw.Src
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// roundedRectPath adds a closed rounded rectangle from (x0,y0) to (x1,y1).
func roundedRectPath(z *vector.Rasterizer, x0, y0, x1, y1, r float32, reverse bool) {
	if maxR := min((x1-x0)/2, (y1-y0)/2); r > maxR {
		r = maxR
	}
	if r < 0 {
		r = 0
	}
	k := r * kappa

	if !reverse {
		z.MoveTo(x0+r, y0)
		z.LineTo(x1-r, y0)
		z.CubeTo(x1-r+k, y0, x1, y0+r-k, x1, y0+r)
		z.LineTo(x1, y1-r)
		z.CubeTo(x1, y1-r+k, x1-r+k, y1, x1-r, y1)
		z.LineTo(x0+r, y1)
		z.CubeTo(x0+r-k, y1, x0, y1-r+k, x0, y1-r)
		z.LineTo(x0, y0+r)
		z.CubeTo(x0, y0+r-k, x0+r-k, y0, x0+r, y0)
		z.ClosePath()
		return
	}

	z.MoveTo(x0+r, y0)
	z.CubeTo(x0+r-k, y0, x0, y0+r-k, x0, y0+r)
	z.LineTo(x0, y1-r)
	z.CubeTo(x0, y1-r+k, x0+r-k, y1, x0+r, y1)
	z.LineTo(x1-r, y1)
	z.CubeTo(x1-r+k, y1, x1, y1-r+k, x1, y1-r)
	z.LineTo(x1, y0+r)
	z.CubeTo(x1, y0+r-k, x1-r+k, y0, x1-r, y0)
	z.ClosePath()
}
