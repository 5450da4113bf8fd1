package floor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
)

const (
	// DefaultPrefix is the file prefix of the bundled wood floor material.
	DefaultPrefix = "WoodFloor044_2K-PNG"
	// DefaultURL serves the zip archive of the default material.
	DefaultURL = "https://ambientcg.com/get?file=WoodFloor044_2K-PNG.zip"
)

// ErrNoSource is returned by EnsureSources when the colour map is missing
// and no download URL is configured.
var ErrNoSource = errors.New("floor sources missing and no source URL configured")

// EnsureSources makes sure the colour map of the material exists in dir.
// When it is missing, the zip archive at src (a URL or a local path) is
// downloaded and unpacked into dir.
func EnsureSources(ctx context.Context, dir, prefix, src string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	expected := DirSource{Dir: dir, Prefix: prefix}.Path(Color)
	if _, err := os.Stat(expected); err == nil {
		logger.Debug("Floor sources present", "path", expected)
		return nil
	}
	if src == "" {
		return ErrNoSource
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create download dir: %w", err)
	}

	logger.Info("Downloading floor sources", "src", src, "dir", dir)
	if err := getter.Get(dir, archiveSource(src), getter.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to fetch floor sources: %w", err)
	}

	if _, err := os.Stat(expected); err != nil {
		return fmt.Errorf("archive did not contain %s: %w", filepath.Base(expected), err)
	}

	return nil
}

// archiveSource forces zip extraction for sources whose path does not end in
// .zip, such as download endpoints that take the file name as a query.
func archiveSource(src string) string {
	p, query, hasQuery := strings.Cut(src, "?")
	if strings.HasSuffix(p, ".zip") || strings.Contains(query, "archive=") {
		return src
	}
	if hasQuery {
		return src + "&archive=zip"
	}
	return src + "?archive=zip"
}
