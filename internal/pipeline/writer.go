package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MeKo-Tech/pbrtex/internal/texpack"
)

// TextureWriter persists one encoded map. *texpack.Writer satisfies it.
type TextureWriter interface {
	WriteTexture(e texpack.Entry) error
}

// FolderWriter writes every map to "<Dir>/<stem>.<format>".
type FolderWriter struct {
	Dir string
}

// Path returns the file an entry is written to.
func (w FolderWriter) Path(e texpack.Entry) string {
	return filepath.Join(w.Dir, e.Stem+"."+e.Format)
}

// WriteTexture writes the entry through a temporary file so readers never
// see a partial image.
func (w FolderWriter) WriteTexture(e texpack.Entry) error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(w.Dir, "."+e.Stem+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // nolint:errcheck // no-op after rename

	if _, err := tmp.Write(e.Data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", e.Stem, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", e.Stem, err)
	}

	if err := os.Rename(tmp.Name(), w.Path(e)); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", e.Stem, err)
	}
	return nil
}

// Exists reports whether a file for stem exists in any supported format.
func (w FolderWriter) Exists(stem string) bool {
	for _, f := range []Format{FormatPNG, FormatJPEG} {
		if _, err := os.Stat(filepath.Join(w.Dir, stem+"."+string(f))); err == nil {
			return true
		}
	}
	return false
}
