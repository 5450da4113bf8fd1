package texture

import (
	"image"
	"image/color"
	"image/draw"
)

// TileImage samples src periodically into a w×h image, starting at the
// given offsets. A 2×2 repeat shifted by half a period puts both wrap seams
// in the middle of the result, where they are easy to inspect.
func TileImage(src image.Image, w, h int, offsetX, offsetY int) *image.NRGBA {
	if src == nil || w <= 0 || h <= 0 {
		return nil
	}

	bounds := src.Bounds()
	sw := bounds.Dx()
	sh := bounds.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if sw == 0 || sh == 0 {
		return dst
	}

	flat := image.NewNRGBA(image.Rect(0, 0, sw, sh))
	draw.Draw(flat, flat.Bounds(), src, bounds.Min, draw.Src)

	for y := 0; y < h; y++ {
		sy := wrapIndex(offsetY+y, sh)
		for x := 0; x < w; x++ {
			sx := wrapIndex(offsetX+x, sw)
			dst.SetNRGBA(x, y, flat.NRGBAAt(sx, sy))
		}
	}

	return dst
}

// SeamStats compares colour steps across the wrap seams of an image with
// the steps between neighbouring pixels inside it.
type SeamStats struct {
	Seam     float64 // mean absolute step across the wrap seams
	Interior float64 // mean absolute step between interior neighbours
}

// Ratio is Seam relative to Interior. A tileable image scores close to 1.
func (s SeamStats) Ratio() float64 {
	if s.Interior == 0 {
		if s.Seam == 0 {
			return 1
		}
		return s.Seam
	}
	return s.Seam / s.Interior
}

// MeasureSeams computes SeamStats over the RGB channels of img.
func MeasureSeams(img image.Image) SeamStats {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 2 || h < 2 {
		return SeamStats{}
	}

	at := func(x, y int) color.NRGBA {
		return color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
	}
	step := func(p, q color.NRGBA) float64 {
		d := absDiff(p.R, q.R) + absDiff(p.G, q.G) + absDiff(p.B, q.B)
		return float64(d) / 3
	}

	var seam, interior float64
	var nSeam, nInterior int

	for y := 0; y < h; y++ {
		seam += step(at(w-1, y), at(0, y))
		nSeam++
		for x := 1; x < w; x++ {
			interior += step(at(x-1, y), at(x, y))
			nInterior++
		}
	}
	for x := 0; x < w; x++ {
		seam += step(at(x, h-1), at(x, 0))
		nSeam++
		for y := 1; y < h; y++ {
			interior += step(at(x, y-1), at(x, y))
			nInterior++
		}
	}

	return SeamStats{
		Seam:     seam / float64(nSeam),
		Interior: interior / float64(nInterior),
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
