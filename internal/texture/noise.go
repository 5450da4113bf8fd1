package texture

import (
	"image"
	"math"
	"math/rand"

	"github.com/MeKo-Tech/pbrtex/internal/types"
)

// TileableNoise generates a seamless value-noise height field.
//
// Uniform noise is averaged with its own toroidal shifts by size/2 (rows,
// columns, both) and then by size/3 (rows, columns), quantised to 8 bits,
// blurred with a wrapped Gaussian of the given sigma and scaled back to [0,1].
// Identical (size, seed, blur) always produce bit-identical fields.
func TileableNoise(size int, seed int64, blur float64) (*HeightField, error) {
	if size <= 0 {
		return nil, types.Invalid("size", size, "must be positive")
	}
	if blur < 0 || math.IsNaN(blur) || math.IsInf(blur, 0) {
		return nil, types.Invalid("blur", blur, "must be a finite value >= 0")
	}

	rng := rand.New(rand.NewSource(seed))
	field := make([]float32, size*size)
	for i := range field {
		field[i] = rng.Float32()
	}

	half := size / 2
	field = averageShifted(field, size, []shift{{0, 0}, {half, 0}, {0, half}, {half, half}})
	third := size / 3
	field = averageShifted(field, size, []shift{{0, 0}, {third, 0}, {0, third}})

	gray := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			gray.Pix[y*gray.Stride+x] = uint8(field[y*size+x] * 255)
		}
	}

	blurred := BlurWrapped(gray, float32(blur))

	out := newHeightField(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			out.Data[out.idx(x, y)] = float32(blurred.Pix[y*blurred.Stride+x]) / 255
		}
	}
	return out, nil
}

// shift is a toroidal displacement in rows (dy) and columns (dx).
type shift struct{ dy, dx int }

// averageShifted returns the mean of src rolled by each shift:
// rolled[y][x] = src[y-dy][x-dx] with wraparound.
func averageShifted(src []float32, size int, shifts []shift) []float32 {
	out := make([]float32, len(src))
	for _, s := range shifts {
		for y := 0; y < size; y++ {
			sy := wrapIndex(y-s.dy, size)
			for x := 0; x < size; x++ {
				sx := wrapIndex(x-s.dx, size)
				out[y*size+x] += src[sy*size+sx]
			}
		}
	}
	n := float32(len(shifts))
	for i := range out {
		out[i] /= n
	}
	return out
}
