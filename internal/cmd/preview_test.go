package cmd

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestPreviewTexture(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "ramp.png")

	img := image.NewGray(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 16)})
		}
	}
	writePNG(t, src, img)

	outDir := filepath.Join(dir, "previews")
	out, stats, err := previewTexture(src, outDir)
	if err != nil {
		t.Fatalf("previewTexture: %v", err)
	}

	if out != filepath.Join(outDir, "ramp_preview.png") {
		t.Errorf("preview path = %s", out)
	}
	if stats.Ratio() < 5 {
		t.Errorf("expected a strong seam for a ramp, got ratio %.2f", stats.Ratio())
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Failed to open preview: %v", err)
	}
	defer f.Close()
	preview, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode preview: %v", err)
	}
	if preview.Bounds().Dx() != 32 || preview.Bounds().Dy() != 16 {
		t.Errorf("preview size = %v, want 32x16", preview.Bounds())
	}

	// Half-period shift: the first preview column is source column 8.
	r, _, _, _ := preview.At(0, 0).RGBA()
	if uint8(r>>8) != 128 {
		t.Errorf("preview(0,0) = %d, want 128", r>>8)
	}
}

func TestPreviewTextureMissingFile(t *testing.T) {
	if _, _, err := previewTexture(filepath.Join(t.TempDir(), "nope.png"), ""); err == nil {
		t.Error("Expected error for missing texture")
	}
}
