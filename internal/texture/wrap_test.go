package texture

import (
	"image"
	"math/rand"
	"testing"
)

func randomGray(w, h int, seed int64) *image.Gray {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}

func TestTileGrayWithOffsetsSeamless(t *testing.T) {
	src := randomGray(4, 4, 1)

	ref := TileGray(src, 8, 8, 0, 0)
	right := TileGray(src, 4, 4, 4, 0)
	shifted := TileGray(src, 4, 4, -1, -1)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got, want := right.GrayAt(x, y).Y, ref.GrayAt(x+4, y).Y; got != want {
				t.Fatalf("tile at offset (4,0) mismatch at (%d,%d): got %d want %d", x, y, got, want)
			}
		}
	}
	if got, want := shifted.GrayAt(0, 0).Y, src.GrayAt(3, 3).Y; got != want {
		t.Fatalf("negative offset should wrap: got %d want %d", got, want)
	}
}

func TestBlurWrappedShiftEquivariant(t *testing.T) {
	src := randomGray(32, 24, 9)
	const dx, dy = 11, 5

	shiftedSrc := TileGray(src, 32, 24, dx, dy)
	a := TileGray(BlurWrapped(src, 2.5), 32, 24, dx, dy)
	b := BlurWrapped(shiftedSrc, 2.5)

	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("blur of shifted image differs from shifted blur at index %d: %d != %d", i, a.Pix[i], b.Pix[i])
		}
	}
}

func TestBlurWrappedLargeSigmaOnSmallImage(t *testing.T) {
	src := randomGray(6, 6, 3)
	out := BlurWrapped(src, 20)
	if out.Bounds().Dx() != 6 || out.Bounds().Dy() != 6 {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}

	lo, hi := uint8(255), uint8(0)
	for _, v := range out.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi-lo > 2 {
		t.Errorf("very wide wrapped blur should flatten the image, got range %d..%d", lo, hi)
	}
}

func TestPaddingFor(t *testing.T) {
	if got := PaddingFor(0); got != 0 {
		t.Errorf("PaddingFor(0) = %d, want 0", got)
	}
	if got := PaddingFor(2); got != 8 {
		t.Errorf("PaddingFor(2) = %d, want 8", got)
	}
}
