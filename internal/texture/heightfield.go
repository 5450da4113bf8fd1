package texture

import (
	"image"

	"golang.org/x/exp/constraints"
)

// HeightField is a square scalar field with values in [0,1], stored row-major.
// Fields returned by this package are never modified afterwards.
type HeightField struct {
	Size int
	Data []float32
}

func newHeightField(size int) *HeightField {
	return &HeightField{Size: size, Data: make([]float32, size*size)}
}

func (h *HeightField) idx(x, y int) int { return y*h.Size + x }

// At returns the value at (x, y), wrapping both coordinates toroidally.
func (h *HeightField) At(x, y int) float32 {
	return h.Data[h.idx(wrapIndex(x, h.Size), wrapIndex(y, h.Size))]
}

// Gray quantises the field into an 8-bit greyscale image.
func (h *HeightField) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, h.Size, h.Size))
	for y := 0; y < h.Size; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+h.Size]
		for x := range row {
			row[x] = ToByte(float64(h.Data[h.idx(x, y)]) * 255)
		}
	}
	return img
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToByte clamps v to [0,255] and truncates it to a byte.
func ToByte(v float64) uint8 {
	if v != v { // NaN
		return 0
	}
	return uint8(Clamp(v, 0, 255))
}

func wrapIndex(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}
	return x
}
