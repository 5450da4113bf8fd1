package material

import (
	"github.com/MeKo-Tech/pbrtex/internal/composite"
	"github.com/MeKo-Tech/pbrtex/internal/mask"
	"github.com/MeKo-Tech/pbrtex/internal/raster"
	"github.com/MeKo-Tech/pbrtex/internal/types"
)

// Arch is the span above a doorway: a soft half-disc of darker stone with a
// mortar ledge, a highlight trim and a central joint.
type Arch struct {
	Name      string    `mapstructure:"name"`
	Width     int       `mapstructure:"width"`
	Height    int       `mapstructure:"height"`
	Base      types.RGB `mapstructure:"base"`
	Stone     types.RGB `mapstructure:"stone"`
	Mortar    types.RGB `mapstructure:"mortar"`
	Trim      types.RGB `mapstructure:"trim"`
	Joint     types.RGB `mapstructure:"joint"`
	ArchLevel int       `mapstructure:"arch_level"`
	ArchBlur  float32   `mapstructure:"arch_blur"`
}

func DefaultArch() *Arch {
	return &Arch{
		Name:      "arch_span",
		Width:     1024,
		Height:    512,
		Base:      types.RGB{232, 214, 182},
		Stone:     types.RGB{198, 170, 128},
		Mortar:    types.RGB{156, 126, 86},
		Trim:      types.RGB{255, 236, 204},
		Joint:     types.RGB{174, 148, 112},
		ArchLevel: 200,
		ArchBlur:  6,
	}
}

func (a *Arch) RecipeName() string { return a.Name }

func (a *Arch) Validate() error {
	return firstErr(
		checkName(a.Name),
		checkSize("width", a.Width),
		checkSize("height", a.Height),
		checkColor("base", a.Base),
		checkColor("stone", a.Stone),
		checkColor("mortar", a.Mortar),
		checkColor("trim", a.Trim),
		checkColor("joint", a.Joint),
		checkLevel("arch_level", a.ArchLevel),
		checkNonNegative("arch_blur", float64(a.ArchBlur)),
	)
}

func (a *Arch) Generate() (*types.TextureSet, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	w, h := float64(a.Width), float64(a.Height)

	// Lower half of an ellipse centred on the top edge.
	disc := mask.PieSlice(a.Width, a.Height, raster.Box{X0: 0, Y0: -w, X1: w, Y1: w}, 0, 180, uint8(a.ArchLevel))
	disc = mask.GaussianBlur(disc, a.ArchBlur)

	img, err := composite.MaskBlend(
		composite.Flat(a.Width, a.Height, a.Base.NRGBA()),
		composite.Flat(a.Width, a.Height, a.Stone.NRGBA()),
		disc,
	)
	if err != nil {
		return nil, err
	}

	ledge := h * 0.92
	raster.StrokeLine(img, w*0.05, ledge, w*0.95, ledge, 10, a.Mortar.NRGBA())
	raster.StrokeLine(img, w*0.08, ledge, w*0.92, ledge, 4, a.Trim.NRGBA())
	raster.StrokeLine(img, w*0.5, h*0.15, w*0.5, ledge, 10, a.Joint.NRGBA())

	set := types.NewTextureSet(a.Name)
	set.Maps[types.ChannelImage] = img
	return set, nil
}
