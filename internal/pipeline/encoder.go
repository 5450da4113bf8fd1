package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
)

// Format is an output image encoding.
type Format string

const (
	// FormatAuto picks JPEG for opaque maps and PNG for maps with alpha.
	FormatAuto Format = ""
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
)

// DefaultQuality is the lossy quality used unless a recipe asks for another.
const DefaultQuality = 95

// Encoder turns texture maps into bytes.
type Encoder struct {
	Format         Format
	Quality        int
	PNGCompression png.CompressionLevel
}

// DefaultEncoder returns the encoder used by the CLI when no flags are given.
func DefaultEncoder() Encoder {
	return Encoder{
		Format:         FormatAuto,
		Quality:        DefaultQuality,
		PNGCompression: png.BestCompression,
	}
}

// FormatFor resolves the encoding of img. JPEG has no alpha channel, so
// images that are not fully opaque always go to PNG.
func (e Encoder) FormatFor(img image.Image) Format {
	if e.Format != FormatAuto {
		if e.Format == FormatJPEG && !opaque(img) {
			return FormatPNG
		}
		return e.Format
	}
	if opaque(img) {
		return FormatJPEG
	}
	return FormatPNG
}

// Encode encodes img. A positive quality overrides the encoder's own.
func (e Encoder) Encode(img image.Image, quality int) ([]byte, Format, error) {
	format := e.FormatFor(img)
	if quality <= 0 {
		quality = e.Quality
	}
	if quality <= 0 {
		quality = DefaultQuality
	}

	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: e.PNGCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, format, err
		}
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, format, err
		}
	default:
		return nil, format, fmt.Errorf("unsupported format %q", format)
	}

	return buf.Bytes(), format, nil
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}
