// Package floor converts an externally sourced PBR floor material into a
// texture set named "floor".
package floor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	"github.com/MeKo-Tech/pbrtex/internal/types"
)

// SourceChannel is the suffix a source material uses for one of its maps.
type SourceChannel string

const (
	Color            SourceChannel = "Color"
	NormalGL         SourceChannel = "NormalGL"
	Roughness        SourceChannel = "Roughness"
	AmbientOcclusion SourceChannel = "AmbientOcclusion"
)

// Mapping pairs source maps with the channels they become, in output order.
var Mapping = []struct {
	Source SourceChannel
	Target types.Channel
}{
	{Color, types.ChannelBaseColor},
	{NormalGL, types.ChannelNormal},
	{Roughness, types.ChannelRoughness},
	{AmbientOcclusion, types.ChannelAO},
}

// SetName is the name of the converted texture set.
const SetName = "floor"

// Source provides the source maps of a floor material.
type Source interface {
	Fetch(ctx context.Context, ch SourceChannel) (image.Image, error)
}

// DirSource reads "<Prefix>_<channel>.png" files from Dir.
type DirSource struct {
	Dir    string
	Prefix string
}

// Path returns the file a channel is read from.
func (s DirSource) Path(ch SourceChannel) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s_%s.png", s.Prefix, ch))
}

// Fetch decodes one source map. A missing file is reported as a
// *types.MissingAssetError.
func (s DirSource) Fetch(ctx context.Context, ch SourceChannel) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path(ch)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.MissingAssetError{Channel: target(ch), Path: path, Err: err}
		}
		return nil, fmt.Errorf("failed to open source %s: %w", path, err)
	}
	defer file.Close() // nolint:errcheck

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode source %s: %w", path, err)
	}

	return img, nil
}

func target(ch SourceChannel) types.Channel {
	for _, m := range Mapping {
		if m.Source == ch {
			return m.Target
		}
	}
	return types.Channel(ch)
}
