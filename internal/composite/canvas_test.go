package composite

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MeKo-Tech/pbrtex/internal/texture"
	"github.com/MeKo-Tech/pbrtex/internal/types"
)

func TestLinspace(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		n           int
		want        []float32
	}{
		{"empty", 0, 1, 0, nil},
		{"single", -12, 12, 1, []float32{-12}},
		{"endpoints", -12, 12, 2, []float32{-12, 12}},
		{"five", 0, 1, 5, []float32{0, 0.25, 0.5, 0.75, 1}},
		{"descending", 1.08, 0.78, 3, []float32{1.08, 0.93, 0.78}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Linspace(tt.start, tt.stop, tt.n)
			if diff := cmp.Diff(tt.want, got, cmp.Comparer(func(a, b float32) bool {
				d := a - b
				return d < 1e-6 && d > -1e-6
			})); diff != "" {
				t.Fatalf("Linspace mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCanvasFillAndClamp(t *testing.T) {
	c := NewCanvas(2, 2).Fill(types.RGB{250, 10, 128})
	c.AddRamp(Rows, 0, 20, [3]float64{1, -1, 0})

	img := c.NRGBA()
	// Row 1 gets +20 red and -20 green: both clamp.
	if got := img.NRGBAAt(0, 1); got != (color.NRGBA{R: 255, G: 0, B: 128, A: 255}) {
		t.Fatalf("unexpected clamped pixel %v", got)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{R: 250, G: 10, B: 128, A: 255}) {
		t.Fatalf("unexpected first row pixel %v", got)
	}
}

func TestCanvasMulRampColumns(t *testing.T) {
	c := NewCanvas(3, 1).Fill(types.RGB{100, 100, 100})
	c.MulRamp(Columns, 1, 0)

	img := c.NRGBA()
	want := []uint8{100, 50, 0}
	for x, w := range want {
		if got := img.NRGBAAt(x, 0).R; got != w {
			t.Fatalf("x=%d: expected %d, got %d", x, w, got)
		}
	}
}

func TestCanvasAddFieldAndFieldGray(t *testing.T) {
	h := &texture.HeightField{Size: 2, Data: []float32{0, 0.5, 1, 0.75}}

	c := NewCanvas(2, 2).Fill(types.RGB{100, 100, 100}).AddField(h, 20)
	img := c.NRGBA()
	want := []uint8{90, 100, 110, 105}
	for i, w := range want {
		x, y := i%2, i/2
		if got := img.NRGBAAt(x, y).G; got != w {
			t.Fatalf("(%d,%d): expected %d, got %d", x, y, w, got)
		}
	}

	g := FieldGray(h, 200, 255*0.12)
	if got := g.GrayAt(0, 0).Y; got != 184 {
		t.Fatalf("expected truncated 184.7 -> 184, got %d", got)
	}
	if got := g.GrayAt(0, 1).Y; got != 215 {
		t.Fatalf("expected truncated 215.3 -> 215, got %d", got)
	}
}

func TestCanvasSetAt(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(1, 1, [3]float32{1, 2, 3})
	if got := c.At(1, 1); got != [3]float32{1, 2, 3} {
		t.Fatalf("unexpected value %v", got)
	}
	c.Set(0, 0, [3]float32{-5, 300, 7.9})
	if got := c.NRGBA().NRGBAAt(0, 0); got != (color.NRGBA{R: 0, G: 255, B: 7, A: 255}) {
		t.Fatalf("unexpected clamped pixel %v", got)
	}
}
