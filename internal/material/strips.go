package material

import (
	"image"
	"image/color"
	"math"

	"github.com/MeKo-Tech/pbrtex/internal/composite"
	"github.com/MeKo-Tech/pbrtex/internal/raster"
	"github.com/MeKo-Tech/pbrtex/internal/types"
)

// TrimStrip is a thin moulding strip with a vertical gradient and a
// translucent drop shadow along its bottom edge.
type TrimStrip struct {
	Name         string     `mapstructure:"name"`
	Width        int        `mapstructure:"width"`
	SourceHeight int        `mapstructure:"source_height"`
	Height       int        `mapstructure:"height"`
	Top          types.RGB  `mapstructure:"top"`
	Falloff      [3]float64 `mapstructure:"falloff"` // subtracted per channel over the strip height
	ShadowRows   int        `mapstructure:"shadow_rows"`
	ShadowAlpha  int        `mapstructure:"shadow_alpha"`
	Crop         int        `mapstructure:"crop"`
}

func DefaultTrimStrip() *TrimStrip {
	return &TrimStrip{
		Name:         "trim_strip",
		Width:        1024,
		SourceHeight: 64,
		Height:       48,
		Top:          types.RGB{240, 217, 180},
		Falloff:      [3]float64{60, 80, 95},
		ShadowRows:   8,
		ShadowAlpha:  60,
		Crop:         4,
	}
}

func (s *TrimStrip) RecipeName() string { return s.Name }

func (s *TrimStrip) Validate() error {
	if err := firstErr(
		checkName(s.Name),
		checkSize("width", s.Width),
		checkSize("source_height", s.SourceHeight),
		checkSize("height", s.Height),
		checkColor("top", s.Top),
		checkFinite("falloff", s.Falloff[:]...),
		checkNonNegative("shadow_rows", float64(s.ShadowRows)),
		checkLevel("shadow_alpha", s.ShadowAlpha),
		checkNonNegative("crop", float64(s.Crop)),
	); err != nil {
		return err
	}
	if s.SourceHeight-2*s.Crop <= 0 {
		return types.Invalid("crop", s.Crop, "leaves no rows of the source strip")
	}
	return nil
}

// Generate keeps the order blur, crop, resize, sharpen.
func (s *TrimStrip) Generate() (*types.TextureSet, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	w, h := s.Width, s.SourceHeight

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h)
		var row types.RGB
		for ch := range row {
			row[ch] = int(float64(s.Top[ch]) - s.Falloff[ch]*t)
		}
		raster.FillRect(img, image.Rect(0, y, w, y+1), row.NRGBA())
	}
	raster.FillRect(img, image.Rect(0, h-s.ShadowRows, w, h), color.NRGBA{A: uint8(s.ShadowAlpha)})

	out := composite.GaussianBlur(img, 1.5)
	out = composite.Crop(out, image.Rect(0, s.Crop, w, h-s.Crop))
	out = composite.ResizeBicubic(out, w, s.Height)
	out = composite.UnsharpMask(out, 2, 0.6, 3)

	set := types.NewTextureSet(s.Name)
	set.Maps[types.ChannelImage] = out
	return set, nil
}

// Skylight is a frosted glass strip, brightest in the middle, crossed by
// horizontal ribs with a thin glint below each.
type Skylight struct {
	Name       string    `mapstructure:"name"`
	Width      int       `mapstructure:"width"`
	Height     int       `mapstructure:"height"`
	Centre     types.RGB `mapstructure:"centre"`
	RibColor   types.RGB `mapstructure:"rib_color"`
	RibStart   int       `mapstructure:"rib_start"`
	RibSpacing int       `mapstructure:"rib_spacing"`
	RibWidth   int       `mapstructure:"rib_width"`
	GlintGap   int       `mapstructure:"glint_gap"`
	Quality    int       `mapstructure:"quality"`
}

// skylightFalloff is how much each channel drops from the centre to the edge, per unit |t-0.5|.
var skylightFalloff = [3]float64{20, 30, 40}

func DefaultSkylight() *Skylight {
	return &Skylight{
		Name:       "skylight_strip",
		Width:      1024,
		Height:     512,
		Centre:     types.RGB{250, 247, 242},
		RibColor:   types.RGB{206, 210, 216},
		RibStart:   32,
		RibSpacing: 72,
		RibWidth:   3,
		GlintGap:   6,
		Quality:    90,
	}
}

func (s *Skylight) RecipeName() string { return s.Name }

// EncodeQuality is the lossy quality the strip is written with; 0 leaves
// the encoder default.
func (s *Skylight) EncodeQuality() int { return s.Quality }

func (s *Skylight) Validate() error {
	return firstErr(
		checkName(s.Name),
		checkSize("width", s.Width),
		checkSize("height", s.Height),
		checkColor("centre", s.Centre),
		checkColor("rib_color", s.RibColor),
		checkNonNegative("rib_start", float64(s.RibStart)),
		checkSize("rib_spacing", s.RibSpacing),
		checkSize("rib_width", s.RibWidth),
		checkNonNegative("glint_gap", float64(s.GlintGap)),
		checkRange("quality", s.Quality, 0, 100),
	)
}

func (s *Skylight) Generate() (*types.TextureSet, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	w, h := s.Width, s.Height

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		t := 0.0
		if w > 1 {
			t = float64(x) / float64(w-1)
		}
		d := math.Abs(t - 0.5)
		var col types.RGB
		for ch := range col {
			col[ch] = int(float64(s.Centre[ch]) - skylightFalloff[ch]*d)
		}
		raster.FillRect(img, image.Rect(x, 0, x+1, h), col.NRGBA())
	}

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for y := s.RibStart; y < h; y += s.RibSpacing {
		raster.HLine(img, y, 0, w, s.RibWidth, s.RibColor.NRGBA())
		raster.HLine(img, y+s.GlintGap, 0, w, 1, white)
	}

	set := types.NewTextureSet(s.Name)
	set.Maps[types.ChannelImage] = img
	return set, nil
}
