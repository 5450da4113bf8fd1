// Package mask builds greyscale masks from geometric primitives and softens them.
package mask

import (
	"image"
	"image/color"

	"github.com/disintegration/gift"
	"github.com/paulmach/orb"

	"github.com/MeKo-Tech/pbrtex/internal/raster"
)

// Shape rasterises poly into a w×h mask. Fully covered pixels get fill,
// partially covered edge pixels a proportional value.
func Shape(w, h int, poly orb.Polygon, fill uint8) *image.Gray {
	bounds := image.Rect(0, 0, w, h)
	m := image.NewGray(bounds)
	if fill == 0 || bounds.Empty() {
		return m
	}

	cov := raster.Coverage(bounds, poly)
	for i, a := range cov.Pix {
		if a == 0 {
			continue
		}
		m.Pix[i] = uint8(uint32(a) * uint32(fill) / 255)
	}

	return m
}

// Ellipse returns a mask with the ellipse inscribed in b filled with fill.
// The box may extend past the canvas.
func Ellipse(w, h int, b raster.Box, fill uint8) *image.Gray {
	return Shape(w, h, orb.Polygon{raster.Ellipse(b)}, fill)
}

// PieSlice fills the sector of the ellipse inscribed in b between startDeg and
// endDeg, measured clockwise from 3 o'clock.
func PieSlice(w, h int, b raster.Box, startDeg, endDeg float64, fill uint8) *image.Gray {
	return Shape(w, h, orb.Polygon{raster.Pie(b, startDeg, endDeg)}, fill)
}

// RoundedRect fills b with corners rounded by radius.
func RoundedRect(w, h int, b raster.Box, radius float64, fill uint8) *image.Gray {
	return Shape(w, h, orb.Polygon{raster.RoundedRect(b, radius)}, fill)
}

// Rect fills the pixels of r, clipped to the canvas.
func Rect(w, h int, r image.Rectangle, fill uint8) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	raster.FillRect(m, r, color.Gray{Y: fill})
	return m
}

// GaussianBlur applies a Gaussian blur filter to soften mask edges.
// The sigma parameter controls the blur radius (larger = more blur).
func GaussianBlur(mask *image.Gray, sigma float32) *image.Gray {
	if sigma <= 0 {
		return clone(mask)
	}

	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewGray(g.Bounds(mask.Bounds()))
	g.Draw(dst, mask)

	return dst
}

func clone(mask *image.Gray) *image.Gray {
	dst := image.NewGray(mask.Bounds())
	copy(dst.Pix, mask.Pix)
	return dst
}
