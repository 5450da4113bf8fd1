package material

import (
	"image"
	"image/color"

	"github.com/MeKo-Tech/pbrtex/internal/composite"
	"github.com/MeKo-Tech/pbrtex/internal/mask"
	"github.com/MeKo-Tech/pbrtex/internal/raster"
	"github.com/MeKo-Tech/pbrtex/internal/types"
)

// Frame is a gilded picture frame made of nested outlines that brighten
// towards the centre, washed with a warm glow.
type Frame struct {
	Name      string    `mapstructure:"name"`
	Size      int       `mapstructure:"size"`
	Base      types.RGB `mapstructure:"base"`
	Steps     int       `mapstructure:"steps"`
	LineWidth int       `mapstructure:"line_width"`
	Glow      types.RGB `mapstructure:"glow"`
	GlowLevel int       `mapstructure:"glow_level"`
	GlowBlur  float32   `mapstructure:"glow_blur"`
}

func DefaultFrame() *Frame {
	return &Frame{
		Name:      "frame_gilded",
		Size:      2048,
		Base:      types.RGB{119, 86, 46},
		Steps:     18,
		LineWidth: 10,
		Glow:      types.RGB{186, 143, 81},
		GlowLevel: 190,
		GlowBlur:  80,
	}
}

func (f *Frame) RecipeName() string { return f.Name }

func (f *Frame) Validate() error {
	return firstErr(
		checkName(f.Name),
		checkSize("size", f.Size),
		checkSize("steps", f.Steps),
		checkSize("line_width", f.LineWidth),
		checkColor("base", f.Base),
		checkColor("glow", f.Glow),
		checkLevel("glow_level", f.GlowLevel),
		checkNonNegative("glow_blur", float64(f.GlowBlur)),
	)
}

func (f *Frame) Generate() (*types.TextureSet, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	size := f.Size

	img := composite.Flat(size, size, f.Base.NRGBA())
	for i := 0; i < f.Steps; i++ {
		inset := i * size / (f.Steps * 10)
		// Outlines include their far edge.
		r := image.Rect(inset, inset, size-inset+1, size-inset+1)
		raster.RectOutline(img, r, f.LineWidth, f.stepColor(i))
	}

	glow := mask.Rect(size, size, image.Rect(0, 0, size, size), uint8(f.GlowLevel))
	glow = mask.GaussianBlur(glow, f.GlowBlur)

	out, err := composite.MaskBlend(img, composite.Flat(size, size, f.Glow.NRGBA()), glow)
	if err != nil {
		return nil, err
	}

	set := types.NewTextureSet(f.Name)
	set.Maps[types.ChannelImage] = out
	return set, nil
}

func (f *Frame) stepColor(i int) color.NRGBA {
	intensity := 60 + 110*i/f.Steps
	return types.RGB{
		min(intensity+70, 255),
		min(intensity+30, 255),
		min(intensity+10, 255),
	}.NRGBA()
}
