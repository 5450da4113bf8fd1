package texture

import (
	"errors"
	"math"
	"testing"

	"github.com/MeKo-Tech/pbrtex/internal/types"
)

func TestTileableNoiseDeterministic(t *testing.T) {
	a, err := TileableNoise(256, 12, 5.0)
	if err != nil {
		t.Fatalf("TileableNoise failed: %v", err)
	}
	b, err := TileableNoise(256, 12, 5.0)
	if err != nil {
		t.Fatalf("TileableNoise failed: %v", err)
	}

	if len(a.Data) != 256*256 {
		t.Fatalf("expected %d values, got %d", 256*256, len(a.Data))
	}
	for i := range a.Data {
		if math.Float32bits(a.Data[i]) != math.Float32bits(b.Data[i]) {
			t.Fatalf("same parameters should produce identical fields, index %d: %v != %v", i, a.Data[i], b.Data[i])
		}
	}
}

func TestTileableNoiseSeedChangesField(t *testing.T) {
	a, err := TileableNoise(64, 1, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := TileableNoise(64, 2, 1.0)
	if err != nil {
		t.Fatal(err)
	}

	different := 0
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			different++
		}
	}
	if different < len(a.Data)/2 {
		t.Errorf("different seeds should produce mostly different noise, only %d/%d values differ", different, len(a.Data))
	}
}

func TestTileableNoiseRange(t *testing.T) {
	for _, blur := range []float64{0, 0.5, 5, 40} {
		h, err := TileableNoise(48, 7, blur)
		if err != nil {
			t.Fatalf("blur %v: %v", blur, err)
		}
		for i, v := range h.Data {
			if v < 0 || v > 1 {
				t.Fatalf("blur %v: value %v at %d outside [0,1]", blur, v, i)
			}
		}
	}
}

func TestTileableNoiseSeamless(t *testing.T) {
	h, err := TileableNoise(256, 12, 5.0)
	if err != nil {
		t.Fatal(err)
	}
	n := h.Size

	var interiorX, interiorY float64
	var seamX, seamY float64
	for i := 0; i < n; i++ {
		seamX += math.Abs(float64(h.At(0, i) - h.At(n-1, i)))
		seamY += math.Abs(float64(h.At(i, 0) - h.At(i, n-1)))
		for j := 0; j < n-1; j++ {
			interiorX += math.Abs(float64(h.At(j+1, i) - h.At(j, i)))
			interiorY += math.Abs(float64(h.At(i, j+1) - h.At(i, j)))
		}
	}
	seamX /= float64(n)
	seamY /= float64(n)
	interiorX /= float64(n * (n - 1))
	interiorY /= float64(n * (n - 1))

	const tol = 1.0 / 255
	if seamX > 3*interiorX+tol {
		t.Errorf("left/right seam too strong: mean diff %.5f vs interior %.5f", seamX, interiorX)
	}
	if seamY > 3*interiorY+tol {
		t.Errorf("top/bottom seam too strong: mean diff %.5f vs interior %.5f", seamY, interiorY)
	}
}

func TestTileableNoiseInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		size int
		blur float64
	}{
		{"zero size", 0, 1},
		{"negative size", -4, 1},
		{"negative blur", 16, -1},
		{"nan blur", 16, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TileableNoise(tt.size, 1, tt.blur)
			var invalid *types.InvalidParameterError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidParameterError, got %v", err)
			}
		})
	}
}

func TestAverageShiftedRollsWithWraparound(t *testing.T) {
	src := []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}

	rows := averageShifted(src, 3, []shift{{1, 0}})
	wantRows := []float32{
		7, 8, 9,
		1, 2, 3,
		4, 5, 6,
	}
	for i := range wantRows {
		if rows[i] != wantRows[i] {
			t.Fatalf("row roll mismatch at %d: got %v, want %v", i, rows, wantRows)
		}
	}

	cols := averageShifted(src, 3, []shift{{0, 1}})
	wantCols := []float32{
		3, 1, 2,
		6, 4, 5,
		9, 7, 8,
	}
	for i := range wantCols {
		if cols[i] != wantCols[i] {
			t.Fatalf("column roll mismatch at %d: got %v, want %v", i, cols, wantCols)
		}
	}

	avg := averageShifted(src, 3, []shift{{0, 0}, {1, 0}})
	if avg[0] != 4 { // (1+7)/2
		t.Fatalf("expected mean 4 at (0,0), got %v", avg[0])
	}
}
