package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// Mode selects the compositing algorithm.
type Mode string

const (
	ModeFit       Mode = "fit"
	ModeFill      Mode = "fill"
	ModeWallpaper Mode = "wallpaper"
)

// Wallpaper geometry.
const (
	WallpaperWidth  = 1920
	WallpaperHeight = 1080
	wallpaperBoxW   = 1200
	wallpaperBoxH   = 900
	cornerRadius    = 20
	shadowBlur      = 20
	shadowOffset    = 8
	borderWidth     = 3
)

// MaxDimension bounds fit and fill outputs.
const MaxDimension = 8000

var (
	white       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black       = color.NRGBA{A: 0xff}
	shadowColor = color.NRGBA{A: 0x80}
	borderColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x4d}
)

// CompositeRequest is consumed once by Composite.
// Width and Height are ignored for ModeWallpaper.
type CompositeRequest struct {
	Source     image.Image
	Background image.Image
	Width      int
	Height     int
	Mode       Mode
}

// Composite runs the algorithm named by req.Mode.
func Composite(req CompositeRequest) (*image.NRGBA, error) {
	if req.Source == nil {
		return nil, ErrNoSource
	}
	b := req.Source.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty source", ErrDecode)
	}
	switch req.Mode {
	case ModeFit, ModeFill:
		if req.Width <= 0 || req.Height <= 0 || req.Width > MaxDimension || req.Height > MaxDimension {
			return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, req.Width, req.Height)
		}
		if req.Mode == ModeFit {
			return FitResize(req.Source, req.Width, req.Height), nil
		}
		return FillCrop(req.Source, req.Width, req.Height), nil
	case ModeWallpaper:
		return ComposeWallpaper(req.Source, req.Background), nil
	default:
		return nil, fmt.Errorf("unknown composite mode %q", req.Mode)
	}
}

// FitResize letterboxes src into a w x h white canvas. The whole source stays visible.
func FitResize(src image.Image, w, h int) *image.NRGBA {
	sw, sh := scaledSize(src.Bounds(), math.Min(ratio(w, src.Bounds().Dx()), ratio(h, src.Bounds().Dy())), w, h)
	canvas := imaging.New(w, h, white)
	resized := imaging.Resize(src, sw, sh, imaging.Lanczos)
	return imaging.Overlay(canvas, resized, image.Pt((w-sw)/2, (h-sh)/2), 1.0)
}

// FillCrop scales src to cover w x h and crops the centered overflow.
func FillCrop(src image.Image, w, h int) *image.NRGBA {
	filled := imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
	// transparent pixels land on white, as with fit
	return imaging.Overlay(imaging.New(w, h, white), filled, image.Pt(0, 0), 1.0)
}

// ComposeWallpaper draws src framed on a 1920x1080 background.
// A nil background leaves the canvas opaque black.
func ComposeWallpaper(src, background image.Image) *image.NRGBA {
	canvas := imaging.New(WallpaperWidth, WallpaperHeight, black)
	if background != nil {
		stretched := imaging.Resize(background, WallpaperWidth, WallpaperHeight, imaging.Lanczos)
		canvas = imaging.Overlay(canvas, stretched, image.Pt(0, 0), 1.0)
	}

	b := src.Bounds()
	scale := math.Min(ratio(wallpaperBoxW, b.Dx()), ratio(wallpaperBoxH, b.Dy()))
	sw, sh := scaledSize(b, scale, wallpaperBoxW, wallpaperBoxH)
	x := (WallpaperWidth - sw) / 2
	y := (WallpaperHeight - sh) / 2
	frame := image.Rect(x, y, x+sw, y+sh)

	drawShadow(canvas, frame)

	resized := imaging.Resize(src, sw, sh, imaging.Lanczos)
	clip := roundedRectMask(sw, sh, cornerRadius)
	draw.DrawMask(canvas, frame, resized, image.Point{}, clip, image.Point{}, draw.Over)

	ring, pad := roundedRingMask(sw, sh, cornerRadius, borderWidth)
	draw.DrawMask(canvas, frame.Inset(-pad), image.NewUniform(borderColor), image.Point{}, ring, image.Point{}, draw.Over)

	return canvas
}

// drawShadow paints a blurred, offset copy of the rounded frame beneath it.
func drawShadow(canvas *image.NRGBA, frame image.Rectangle) {
	pad := 2 * shadowBlur
	w, h := frame.Dx(), frame.Dy()
	mask := roundedRectMask(w, h, cornerRadius)

	layer := image.NewNRGBA(image.Rect(0, 0, w+2*pad, h+2*pad))
	draw.DrawMask(layer, image.Rect(pad, pad, pad+w, pad+h), image.NewUniform(shadowColor), image.Point{}, mask, image.Point{}, draw.Src)

	// canvas shadowBlur is twice the gaussian sigma
	blurred := imaging.Blur(layer, shadowBlur/2)
	origin := frame.Min.Add(image.Pt(shadowOffset-pad, shadowOffset-pad))
	draw.Draw(canvas, blurred.Bounds().Add(origin), blurred, image.Point{}, draw.Over)
}

func ratio(target, source int) float64 {
	return float64(target) / float64(source)
}

// scaledSize applies scale to b and clamps the result to [1, max].
func scaledSize(b image.Rectangle, scale float64, maxW, maxH int) (int, int) {
	sw := clamp(int(math.Round(float64(b.Dx())*scale)), 1, maxW)
	sh := clamp(int(math.Round(float64(b.Dy())*scale)), 1, maxH)
	return sw, sh
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
