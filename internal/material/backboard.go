package material

import (
	"github.com/MeKo-Tech/pbrtex/internal/composite"
	"github.com/MeKo-Tech/pbrtex/internal/mask"
	"github.com/MeKo-Tech/pbrtex/internal/raster"
	"github.com/MeKo-Tech/pbrtex/internal/types"
)

// Backboard is a mounting panel with a bright centre fading to darker edges.
type Backboard struct {
	Name          string    `mapstructure:"name"`
	Width         int       `mapstructure:"width"`
	Height        int       `mapstructure:"height"`
	Edge          types.RGB `mapstructure:"edge"`
	Centre        types.RGB `mapstructure:"centre"`
	VignetteLevel int       `mapstructure:"vignette_level"`
	VignetteBlur  float32   `mapstructure:"vignette_blur"`
}

func DefaultBackboard() *Backboard {
	return &Backboard{
		Name:          "mounting_panel",
		Width:         1024,
		Height:        512,
		Edge:          types.RGB{162, 132, 101},
		Centre:        types.RGB{186, 158, 128},
		VignetteLevel: 180,
		VignetteBlur:  120,
	}
}

func (b *Backboard) RecipeName() string { return b.Name }

func (b *Backboard) Validate() error {
	return firstErr(
		checkName(b.Name),
		checkSize("width", b.Width),
		checkSize("height", b.Height),
		checkColor("edge", b.Edge),
		checkColor("centre", b.Centre),
		checkLevel("vignette_level", b.VignetteLevel),
		checkNonNegative("vignette_blur", float64(b.VignetteBlur)),
	)
}

func (b *Backboard) Generate() (*types.TextureSet, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	w, h := float64(b.Width), float64(b.Height)

	// The ellipse overshoots the panel by a fifth on every side.
	box := raster.Box{X0: -0.2 * w, Y0: -0.2 * h, X1: 1.2 * w, Y1: 1.2 * h}
	vignette := mask.Ellipse(b.Width, b.Height, box, uint8(b.VignetteLevel))
	vignette = mask.GaussianBlur(vignette, b.VignetteBlur)

	img, err := composite.MaskBlend(
		composite.Flat(b.Width, b.Height, b.Edge.NRGBA()),
		composite.Flat(b.Width, b.Height, b.Centre.NRGBA()),
		vignette,
	)
	if err != nil {
		return nil, err
	}

	set := types.NewTextureSet(b.Name)
	set.Maps[types.ChannelImage] = img
	return set, nil
}
