package composite

import (
	"image"

	"github.com/MeKo-Tech/pbrtex/internal/texture"
	"github.com/MeKo-Tech/pbrtex/internal/types"
)

// Axis selects the direction a ramp runs along.
type Axis int

const (
	// Rows ramps vary with y: every pixel of a row gets the same value.
	Rows Axis = iota
	// Columns ramps vary with x.
	Columns
)

// Canvas is a floating-point RGB working buffer. Values are unbounded while
// composing and clamped once, when the canvas is converted to an image.
type Canvas struct {
	W, H int
	Pix  []float32 // 3 values per pixel, row-major
}

// NewCanvas returns a black w×h canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{W: w, H: h, Pix: make([]float32, w*h*3)}
}

func (c *Canvas) offset(x, y int) int { return (y*c.W + x) * 3 }

// At returns the channel values at (x, y).
func (c *Canvas) At(x, y int) [3]float32 {
	i := c.offset(x, y)
	return [3]float32{c.Pix[i], c.Pix[i+1], c.Pix[i+2]}
}

// Set stores the channel values at (x, y).
func (c *Canvas) Set(x, y int, v [3]float32) {
	i := c.offset(x, y)
	c.Pix[i], c.Pix[i+1], c.Pix[i+2] = v[0], v[1], v[2]
}

// Fill sets every pixel to col.
func (c *Canvas) Fill(col types.RGB) *Canvas {
	v := [3]float32{float32(col[0]), float32(col[1]), float32(col[2])}
	for i := 0; i < len(c.Pix); i += 3 {
		c.Pix[i], c.Pix[i+1], c.Pix[i+2] = v[0], v[1], v[2]
	}
	return c
}

// AddRamp adds a linear ramp from..to along axis, scaled per channel by weights.
func (c *Canvas) AddRamp(axis Axis, from, to float64, weights [3]float64) *Canvas {
	ramp := Linspace(from, to, c.axisLen(axis))
	c.each(axis, ramp, func(px []float32, v float32) {
		for ch := range px {
			px[ch] += v * float32(weights[ch])
		}
	})
	return c
}

// MulRamp multiplies every channel by a linear ramp from..to along axis.
func (c *Canvas) MulRamp(axis Axis, from, to float64) *Canvas {
	ramp := Linspace(from, to, c.axisLen(axis))
	c.each(axis, ramp, func(px []float32, v float32) {
		px[0] *= v
		px[1] *= v
		px[2] *= v
	})
	return c
}

// AddField adds (h-0.5)*scale to every channel. The field must match the
// canvas size.
func (c *Canvas) AddField(h *texture.HeightField, scale float64) *Canvas {
	s := float32(scale)
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			v := (h.Data[y*h.Size+x] - 0.5) * s
			i := c.offset(x, y)
			c.Pix[i] += v
			c.Pix[i+1] += v
			c.Pix[i+2] += v
		}
	}
	return c
}

// NRGBA clamps the canvas to [0,255] and truncates it into an opaque image.
func (c *Canvas) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.W, c.H))
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			i := c.offset(x, y)
			o := img.PixOffset(x, y)
			img.Pix[o] = texture.ToByte(float64(c.Pix[i]))
			img.Pix[o+1] = texture.ToByte(float64(c.Pix[i+1]))
			img.Pix[o+2] = texture.ToByte(float64(c.Pix[i+2]))
			img.Pix[o+3] = 255
		}
	}
	return img
}

func (c *Canvas) axisLen(axis Axis) int {
	if axis == Rows {
		return c.H
	}
	return c.W
}

func (c *Canvas) each(axis Axis, ramp []float32, fn func(px []float32, v float32)) {
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			v := ramp[x]
			if axis == Rows {
				v = ramp[y]
			}
			i := c.offset(x, y)
			fn(c.Pix[i:i+3], v)
		}
	}
}

// Linspace returns n evenly spaced values from start to stop inclusive.
// A single value is start.
func Linspace(start, stop float64, n int) []float32 {
	if n <= 0 {
		return nil
	}
	out := make([]float32, n)
	if n == 1 {
		out[0] = float32(start)
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = float32(start + step*float64(i))
	}
	out[n-1] = float32(stop)
	return out
}

// FieldGray maps a height field to greyscale: base + (h-0.5)*scale, clamped
// and truncated.
func FieldGray(h *texture.HeightField, base, scale float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, h.Size, h.Size))
	for y := 0; y < h.Size; y++ {
		for x := 0; x < h.Size; x++ {
			v := base + (float64(h.Data[y*h.Size+x])-0.5)*scale
			img.Pix[y*img.Stride+x] = texture.ToByte(v)
		}
	}
	return img
}
