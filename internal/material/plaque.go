package material

import (
	"image"

	"github.com/MeKo-Tech/pbrtex/internal/composite"
	"github.com/MeKo-Tech/pbrtex/internal/mask"
	"github.com/MeKo-Tech/pbrtex/internal/raster"
	"github.com/MeKo-Tech/pbrtex/internal/types"
)

// Plaque is a translucent dark name plate with a soft highlight on its upper half.
type Plaque struct {
	Name           string    `mapstructure:"name"`
	Width          int       `mapstructure:"width"`
	Height         int       `mapstructure:"height"`
	Radius         float64   `mapstructure:"radius"`
	Fill           types.RGB `mapstructure:"fill"`
	FillAlpha      int       `mapstructure:"fill_alpha"`
	HighlightInset float64   `mapstructure:"highlight_inset"`
	HighlightAlpha int       `mapstructure:"highlight_alpha"`
	HighlightBlur  float32   `mapstructure:"highlight_blur"`
	SoftenBlur     float32   `mapstructure:"soften_blur"`
	SharpenAmount  float32   `mapstructure:"sharpen_amount"`
}

func DefaultPlaque() *Plaque {
	return &Plaque{
		Name:           "plaque_base",
		Width:          1024,
		Height:         256,
		Radius:         80,
		Fill:           types.RGB{64, 48, 36},
		FillAlpha:      240,
		HighlightInset: 12,
		HighlightAlpha: 40,
		HighlightBlur:  6,
		SoftenBlur:     1.2,
		SharpenAmount:  0.8,
	}
}

func (p *Plaque) RecipeName() string { return p.Name }

func (p *Plaque) Validate() error {
	return firstErr(
		checkName(p.Name),
		checkSize("width", p.Width),
		checkSize("height", p.Height),
		checkNonNegative("radius", p.Radius),
		checkColor("fill", p.Fill),
		checkLevel("fill_alpha", p.FillAlpha),
		checkNonNegative("highlight_inset", p.HighlightInset),
		checkLevel("highlight_alpha", p.HighlightAlpha),
		checkNonNegative("highlight_blur", float64(p.HighlightBlur)),
		checkNonNegative("soften_blur", float64(p.SoftenBlur)),
		checkNonNegative("sharpen_amount", float64(p.SharpenAmount)),
	)
}

func (p *Plaque) Generate() (*types.TextureSet, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	full := raster.Box{X1: float64(p.Width), Y1: float64(p.Height)}

	plate, err := p.layer(p.Fill, mask.RoundedRect(p.Width, p.Height, full, p.Radius, uint8(p.FillAlpha)))
	if err != nil {
		return nil, err
	}

	// The highlight covers the upper half of the inset plate.
	box := full.Inset(p.HighlightInset)
	box.Y1 = full.Y1 / 2
	highlight, err := p.layer(types.RGB{255, 255, 255},
		mask.RoundedRect(p.Width, p.Height, box, p.Radius/2, uint8(p.HighlightAlpha)))
	if err != nil {
		return nil, err
	}

	img, err := composite.AlphaOver(plate, composite.GaussianBlur(highlight, p.HighlightBlur))
	if err != nil {
		return nil, err
	}
	img = composite.GaussianBlur(img, p.SoftenBlur)
	img = composite.UnsharpMask(img, 2, p.SharpenAmount, 3)

	set := types.NewTextureSet(p.Name)
	set.Maps[types.ChannelImage] = img
	return set, nil
}

// layer paints c with the mask as its alpha.
func (p *Plaque) layer(c types.RGB, alpha *image.Gray) (*image.NRGBA, error) {
	return composite.MaskBlend(
		composite.Flat(p.Width, p.Height, c.WithAlpha(0)),
		composite.Flat(p.Width, p.Height, c.WithAlpha(255)),
		alpha)
}
