// Package raster turns planar shapes into pixels.
//
// Shapes are orb rings in pixel coordinates (x right, y down). Filled shapes
// go through golang.org/x/image/vector for anti-aliased coverage. Covered
// pixels are replaced by the fill colour in proportion to coverage instead of
// being alpha-blended over the destination.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/paulmach/orb"
	"golang.org/x/image/vector"
)

// Box is an axis-aligned bounding box in continuous pixel coordinates.
type Box struct {
	X0, Y0, X1, Y1 float64
}

// Inset shrinks the box by d on every side.
func (b Box) Inset(d float64) Box {
	return Box{X0: b.X0 + d, Y0: b.Y0 + d, X1: b.X1 - d, Y1: b.Y1 - d}
}

func (b Box) center() (cx, cy, rx, ry float64) {
	return (b.X0 + b.X1) / 2, (b.Y0 + b.Y1) / 2, (b.X1 - b.X0) / 2, (b.Y1 - b.Y0) / 2
}

// Coverage rasterises poly into an alpha mask the size of b. Rings after the
// first are holes when they wind opposite to the outer ring.
func Coverage(b image.Rectangle, poly orb.Polygon) *image.Alpha {
	m := image.NewAlpha(b)
	if b.Empty() {
		return m
	}
	ras := vector.NewRasterizer(b.Dx(), b.Dy())
	ras.DrawOp = draw.Src

	drawn := false
	for _, ring := range poly {
		if len(ring) < 3 {
			continue
		}
		for i, pt := range ring {
			x := float32(pt[0] - float64(b.Min.X))
			y := float32(pt[1] - float64(b.Min.Y))
			if i == 0 {
				ras.MoveTo(x, y)
			} else {
				ras.LineTo(x, y)
			}
		}
		ras.ClosePath()
		drawn = true
	}
	if drawn {
		ras.Draw(m, b, image.Opaque, image.Point{})
	}
	return m
}

// FillPolygon paints poly into dst with c.
func FillPolygon(dst draw.Image, poly orb.Polygon, c color.Color) {
	if len(poly) == 0 {
		return
	}
	b := dst.Bounds()
	Apply(dst, Coverage(b, poly), c)
}

// Apply moves every pixel of dst towards c by the coverage in m. Full
// coverage replaces the pixel, alpha included.
func Apply(dst draw.Image, m *image.Alpha, c color.Color) {
	r := dst.Bounds().Intersect(m.Bounds())

	if img, ok := dst.(*image.NRGBA); ok {
		src := color.NRGBAModel.Convert(c).(color.NRGBA)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				a := m.AlphaAt(x, y).A
				if a == 0 {
					continue
				}
				d := img.NRGBAAt(x, y)
				img.SetNRGBA(x, y, color.NRGBA{
					R: mix8(src.R, d.R, a),
					G: mix8(src.G, d.G, a),
					B: mix8(src.B, d.B, a),
					A: mix8(src.A, d.A, a),
				})
			}
		}
		return
	}

	src := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			a := m.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			d := color.NRGBA64Model.Convert(dst.At(x, y)).(color.NRGBA64)
			t := uint32(a)
			mix := func(s, d uint16) uint16 {
				return uint16((uint32(s)*t + uint32(d)*(0xff-t)) / 0xff)
			}
			dst.Set(x, y, color.NRGBA64{
				R: mix(src.R, d.R),
				G: mix(src.G, d.G),
				B: mix(src.B, d.B),
				A: mix(src.A, d.A),
			})
		}
	}
}

func mix8(s, d, a uint8) uint8 {
	return uint8((uint32(s)*uint32(a) + uint32(d)*uint32(0xff-a)) / 0xff)
}

// FillRect replaces every pixel of r (clipped to dst) with c.
func FillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// RectOutline draws a border of the given width inside r.
func RectOutline(dst draw.Image, r image.Rectangle, width int, c color.Color) {
	if width <= 0 || r.Empty() {
		return
	}
	if 2*width >= r.Dx() || 2*width >= r.Dy() {
		FillRect(dst, r, c)
		return
	}
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	FillRect(dst, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y+width, r.Min.X+width, r.Max.Y-width), c)
	FillRect(dst, image.Rect(r.Max.X-width, r.Min.Y+width, r.Max.X, r.Max.Y-width), c)
}

// HLine fills width whole rows centred on row y, from column x0 up to x1.
func HLine(dst draw.Image, y, x0, x1, width int, c color.Color) {
	if width <= 0 {
		return
	}
	top := y - (width-1)/2
	FillRect(dst, image.Rect(x0, top, x1, top+width), c)
}

// StrokeLine draws a straight segment of the given width with butt caps.
func StrokeLine(dst draw.Image, x0, y0, x1, y1, width float64, c color.Color) {
	dx := x1 - x0
	dy := y1 - y0
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	// Perpendicular offset of half the width.
	px := -dy / length * width / 2
	py := dx / length * width / 2

	ring := orb.Ring{
		{x0 + px, y0 + py},
		{x1 + px, y1 + py},
		{x1 - px, y1 - py},
		{x0 - px, y0 - py},
		{x0 + px, y0 + py},
	}
	FillPolygon(dst, orb.Polygon{ring}, c)
}
