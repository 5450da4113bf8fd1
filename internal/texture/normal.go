package texture

import (
	"image"
	"math"

	"github.com/MeKo-Tech/pbrtex/internal/types"
)

const normalEpsilon = 1e-6

// HeightToNormal converts a height field into a tangent-space normal map.
//
// Gradients are central differences with toroidal wraparound, scaled by
// strength. The normal (gx, gy, 1) is divided by its length plus a small
// epsilon and packed as ((nx+1)*127.5, (ny+1)*127.5, nz*255).
func HeightToNormal(h *HeightField, strength float64) (*image.NRGBA, error) {
	if h == nil || h.Size <= 0 || len(h.Data) != h.Size*h.Size {
		return nil, types.Invalid("height", nil, "height field is empty")
	}
	if strength < 0 || math.IsNaN(strength) || math.IsInf(strength, 0) {
		return nil, types.Invalid("strength", strength, "must be a finite value >= 0")
	}

	n := h.Size
	out := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			gx := float64(h.At(x+1, y)-h.At(x-1, y)) / 2 * strength
			gy := float64(h.At(x, y+1)-h.At(x, y-1)) / 2 * strength

			length := math.Sqrt(gx*gx+gy*gy+1) + normalEpsilon
			nx := gx / length
			ny := gy / length
			nz := 1 / length

			i := out.PixOffset(x, y)
			out.Pix[i+0] = ToByte((nx + 1) * 127.5)
			out.Pix[i+1] = ToByte((ny + 1) * 127.5)
			out.Pix[i+2] = ToByte(nz * 255)
			out.Pix[i+3] = 255
		}
	}
	return out, nil
}

// DecodeNormal unpacks a normal map texel into its vector.
func DecodeNormal(r, g, b uint8) (x, y, z float64) {
	return float64(r)/127.5 - 1, float64(g)/127.5 - 1, float64(b) / 255
}
