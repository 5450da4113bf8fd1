// Package pipeline generates texture sets and persists their encoded maps.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MeKo-Tech/pbrtex/internal/material"
	"github.com/MeKo-Tech/pbrtex/internal/texpack"
	"github.com/MeKo-Tech/pbrtex/internal/types"
)

// Options configure a Generator.
type Options struct {
	OutputDir string
	Force     bool // regenerate even when every output already exists
	Encoder   Encoder
	// Writer receives encoded maps. Nil writes files into OutputDir.
	Writer TextureWriter
	Logger *slog.Logger
}

// Generator runs recipes and writes their maps.
type Generator struct {
	writer TextureWriter
	folder *FolderWriter
	logger *slog.Logger
	enc    Encoder
	force  bool
}

// NewGenerator prepares a generator.
func NewGenerator(opts Options) (*Generator, error) {
	g := &Generator{
		writer: opts.Writer,
		logger: opts.Logger,
		enc:    opts.Encoder,
		force:  opts.Force,
	}

	if g.writer == nil {
		if opts.OutputDir == "" {
			return nil, errors.New("output dir is required without a texture writer")
		}
		g.folder = &FolderWriter{Dir: opts.OutputDir}
		g.writer = g.folder
	}

	return g, nil
}

// Generate runs one recipe and writes every map of its set.
// Returns the written file names ("<stem>.<format>"); nothing is written
// when the outputs already exist and Force is off.
func (g *Generator) Generate(ctx context.Context, r material.Recipe) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := r.RecipeName()
	if g.upToDate(r) {
		g.log().Info("Texture set already exists; skipping", "recipe", name)
		return nil, nil
	}

	g.log().Debug("Generating texture set", "recipe", name)
	set, err := r.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", name, err)
	}

	quality := 0
	if h, ok := r.(material.QualityHinter); ok {
		quality = h.EncodeQuality()
	}

	return g.WriteSet(ctx, set, quality)
}

// WriteSet encodes and writes every map of set. A positive quality overrides
// the encoder's lossy quality. Every map is encoded before the first write,
// so an encoding failure leaves nothing of the set behind.
func (g *Generator) WriteSet(ctx context.Context, set *types.TextureSet, quality int) ([]string, error) {
	entries := make([]texpack.Entry, 0, len(set.Maps))

	for _, ch := range set.Channels() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img := set.Maps[ch]
		stem := set.Stem(ch)

		data, format, err := g.enc.Encode(img, quality)
		if err != nil {
			return nil, &types.EncodingError{Stem: stem, Err: err}
		}

		b := img.Bounds()
		entries = append(entries, texpack.Entry{
			Stem:    stem,
			Channel: string(ch),
			Format:  string(format),
			Width:   b.Dx(),
			Height:  b.Dy(),
			Data:    data,
		})
	}

	written := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := g.writer.WriteTexture(entry); err != nil {
			return written, &types.EncodingError{Stem: entry.Stem, Err: err}
		}

		g.log().Debug("Wrote texture", "stem", entry.Stem, "format", entry.Format, "bytes", len(entry.Data))
		written = append(written, entry.Stem+"."+entry.Format)
	}

	return written, nil
}

func (g *Generator) upToDate(r material.Recipe) bool {
	if g.force || g.folder == nil {
		return false
	}
	for _, stem := range material.OutputStems(r) {
		if !g.folder.Exists(stem) {
			return false
		}
	}
	return true
}

func (g *Generator) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return slog.Default()
}
