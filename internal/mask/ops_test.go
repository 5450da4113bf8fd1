package mask

import (
	"image"
	"testing"
)

func TestGaussianBlurKeepsBoundsAndConstantMask(t *testing.T) {
	m := Rect(32, 16, image.Rect(0, 0, 32, 16), 190)

	blurred := GaussianBlur(m, 8)
	if blurred.Bounds() != m.Bounds() {
		t.Fatalf("bounds changed: %v -> %v", m.Bounds(), blurred.Bounds())
	}
	for i, v := range blurred.Pix {
		if v < 189 || v > 191 {
			t.Fatalf("pixel %d: expected ~190 for constant mask, got %d", i, v)
		}
	}
}

func TestGaussianBlurZeroSigmaCopies(t *testing.T) {
	m := Rect(4, 4, image.Rect(1, 1, 3, 3), 255)
	out := GaussianBlur(m, 0)
	if out == m {
		t.Fatal("expected a copy, got the same image")
	}
	for i := range m.Pix {
		if out.Pix[i] != m.Pix[i] {
			t.Fatalf("pixel %d differs: %d vs %d", i, out.Pix[i], m.Pix[i])
		}
	}
}
