package texture

import (
	"image"
	"math"

	"github.com/disintegration/gift"
)

// PaddingFor returns the number of wrapped pixels needed on each side of an
// image so that a Gaussian blur of the given sigma sees no boundary.
// 3*sigma covers the kernel gift builds for that sigma.
func PaddingFor(sigma float32) int {
	if sigma <= 0 {
		return 0
	}
	return int(math.Ceil(float64(sigma)*3.0)) + 2
}

// TileGray samples src periodically into a w×h image. Offsets shift the
// sampling window, so TileGray(src, w+2p, h+2p, -p, -p) is src padded by p
// wrapped pixels on every side.
func TileGray(src *image.Gray, w, h int, offsetX, offsetY int) *image.Gray {
	if src == nil || w <= 0 || h <= 0 {
		return nil
	}

	bounds := src.Bounds()
	sw := bounds.Dx()
	sh := bounds.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if sw == 0 || sh == 0 {
		return dst
	}

	for y := 0; y < h; y++ {
		sy := bounds.Min.Y + wrapIndex(offsetY+y, sh)
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x := range row {
			sx := bounds.Min.X + wrapIndex(offsetX+x, sw)
			row[x] = src.GrayAt(sx, sy).Y
		}
	}
	return dst
}

// BlurWrapped applies a Gaussian blur that treats the image as a torus:
// pixels leaving one edge re-enter at the opposite edge. The result is
// shift-equivariant, so tileable input stays tileable.
func BlurWrapped(src *image.Gray, sigma float32) *image.Gray {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if sigma <= 0 {
		return TileGray(src, w, h, 0, 0)
	}

	pad := PaddingFor(sigma)
	padded := TileGray(src, w+2*pad, h+2*pad, -pad, -pad)

	g := gift.New(gift.GaussianBlur(sigma))
	blurred := image.NewGray(g.Bounds(padded.Bounds()))
	g.Draw(blurred, padded)

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srcOff := (y+pad)*blurred.Stride + pad
		copy(out.Pix[y*out.Stride:y*out.Stride+w], blurred.Pix[srcOff:srcOff+w])
	}
	return out
}
