package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MeKo-Tech/pbrtex/internal/pipeline"
	"github.com/MeKo-Tech/pbrtex/internal/texpack"
)

func writeTestPack(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gallery.texpack")
	w, err := texpack.New(path, texpack.Metadata{
		Name:        "gallery",
		Description: "test pack",
		Generator:   "pbrtex",
		RunID:       "run-1",
		Created:     time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Failed to create texpack: %v", err)
	}
	entries := []texpack.Entry{
		{Stem: "ceiling_baseColor", Channel: "baseColor", Format: "jpg", Width: 4, Height: 4, Data: []byte("jpeg-bytes")},
		{Stem: "plaque_base", Channel: "image", Format: "png", Width: 8, Height: 2, Data: []byte("png")},
	}
	for _, e := range entries {
		if err := w.WriteTexture(e); err != nil {
			t.Fatalf("Failed to write %s: %v", e.Stem, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close texpack: %v", err)
	}
	return path
}

func TestListPack(t *testing.T) {
	path := writeTestPack(t)

	var buf bytes.Buffer
	if err := listPack(&buf, path); err != nil {
		t.Fatalf("listPack: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"gallery: test pack",
		"run: run-1",
		"created: 2026-05-04T10:00:00Z",
		"ceiling_baseColor",
		"4x4",
		"plaque_base",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, out)
		}
	}

	// Entries are listed by stem.
	if strings.Index(out, "ceiling_baseColor") > strings.Index(out, "plaque_base") {
		t.Errorf("Expected entries ordered by stem, got:\n%s", out)
	}
}

func TestListPackMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := listPack(&buf, filepath.Join(t.TempDir(), "missing.texpack")); err == nil {
		t.Error("Expected error for missing texpack")
	}
}

func TestExtractPack(t *testing.T) {
	path := writeTestPack(t)
	dir := t.TempDir()

	n, err := extractPack(path, dir)
	if err != nil {
		t.Fatalf("extractPack: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 extracted textures, got %d", n)
	}

	data, err := os.ReadFile(filepath.Join(dir, "ceiling_baseColor.jpg"))
	if err != nil {
		t.Fatalf("Failed to read extracted file: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("Extracted data = %q, want %q", data, "jpeg-bytes")
	}

	if !(pipeline.FolderWriter{Dir: dir}).Exists("plaque_base") {
		t.Error("Expected plaque_base to be extracted")
	}
}

func TestFloorConverted(t *testing.T) {
	dir := t.TempDir()
	out := pipeline.FolderWriter{Dir: dir}

	if floorConverted(out) {
		t.Fatal("Expected empty dir to need conversion")
	}

	for _, name := range []string{"floor_baseColor.jpg", "floor_normal.jpg", "floor_roughness.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if floorConverted(out) {
		t.Error("Expected missing ao map to need conversion")
	}

	if err := os.WriteFile(filepath.Join(dir, "floor_ao.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !floorConverted(out) {
		t.Error("Expected complete floor set to be detected")
	}
}
