package material

import (
	"fmt"

	"github.com/MeKo-Tech/pbrtex/internal/composite"
	"github.com/MeKo-Tech/pbrtex/internal/texture"
	"github.com/MeKo-Tech/pbrtex/internal/types"
)

const (
	plasterBlur           = 5.0
	plasterNormalStrength = 4.0

	ceilingBlur           = 4.5
	ceilingNormalStrength = 3.0
	ceilingVariation      = 14.0
	ceilingRoughBase      = 180.0
	ceilingRoughRange     = 80.0
)

// ceilingRamp is the per-channel weight of the top-to-bottom warm shift.
var ceilingRamp = [3]float64{0.4, 0.2, 0.2}

// Plaster is a tinted noisy wall surface with normal and roughness maps.
type Plaster struct {
	Name           string    `mapstructure:"name"`
	BaseColor      types.RGB `mapstructure:"base_color"`
	TintStrength   float64   `mapstructure:"tint_strength"`
	RoughBase      int       `mapstructure:"rough_base"`
	RoughVariation float64   `mapstructure:"rough_variation"`
	Size           int       `mapstructure:"size"`
	Seed           int64     `mapstructure:"seed"`
}

// DefaultWallLower is the warm lower wall plaster.
func DefaultWallLower() *Plaster {
	return &Plaster{
		Name:           "wall_lower",
		BaseColor:      types.RGB{210, 179, 150},
		TintStrength:   22,
		RoughBase:      180,
		RoughVariation: 0.18,
		Size:           2048,
		Seed:           12,
	}
}

// DefaultWallUpper is the pale upper wall plaster.
func DefaultWallUpper() *Plaster {
	return &Plaster{
		Name:           "wall_upper",
		BaseColor:      types.RGB{241, 232, 215},
		TintStrength:   16,
		RoughBase:      200,
		RoughVariation: 0.12,
		Size:           2048,
		Seed:           28,
	}
}

func (p *Plaster) RecipeName() string { return p.Name }

// Validate checks the parameters before any pixel work.
func (p *Plaster) Validate() error {
	return firstErr(
		checkName(p.Name),
		checkSize("size", p.Size),
		checkColor("base_color", p.BaseColor),
		checkNonNegative("tint_strength", p.TintStrength),
		checkLevel("rough_base", p.RoughBase),
		checkNonNegative("rough_variation", p.RoughVariation),
	)
}

// Generate produces baseColor, normal and roughness maps.
func (p *Plaster) Generate() (*types.TextureSet, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	h, err := texture.TileableNoise(p.Size, p.Seed, plasterBlur)
	if err != nil {
		return nil, fmt.Errorf("failed to generate height field: %w", err)
	}
	normal, err := texture.HeightToNormal(h, plasterNormalStrength)
	if err != nil {
		return nil, fmt.Errorf("failed to derive normal map: %w", err)
	}

	set := types.NewTextureSet(p.Name)
	set.Maps[types.ChannelBaseColor] = composite.NewCanvas(p.Size, p.Size).
		Fill(p.BaseColor).
		AddField(h, 2*p.TintStrength).
		NRGBA()
	set.Maps[types.ChannelNormal] = normal
	set.Maps[types.ChannelRoughness] = composite.FieldGray(h, float64(p.RoughBase), 255*p.RoughVariation)

	return set, nil
}

// Ceiling is a plaster with a vertical warm gradient and fixed roughness.
type Ceiling struct {
	Name      string    `mapstructure:"name"`
	BaseColor types.RGB `mapstructure:"base_color"`
	Size      int       `mapstructure:"size"`
	Seed      int64     `mapstructure:"seed"`
}

func DefaultCeiling() *Ceiling {
	return &Ceiling{
		Name:      "ceiling",
		BaseColor: types.RGB{240, 232, 214},
		Size:      2048,
		Seed:      23,
	}
}

func (c *Ceiling) RecipeName() string { return c.Name }

func (c *Ceiling) Validate() error {
	return firstErr(
		checkName(c.Name),
		checkSize("size", c.Size),
		checkColor("base_color", c.BaseColor),
	)
}

func (c *Ceiling) Generate() (*types.TextureSet, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	h, err := texture.TileableNoise(c.Size, c.Seed, ceilingBlur)
	if err != nil {
		return nil, fmt.Errorf("failed to generate height field: %w", err)
	}
	normal, err := texture.HeightToNormal(h, ceilingNormalStrength)
	if err != nil {
		return nil, fmt.Errorf("failed to derive normal map: %w", err)
	}

	set := types.NewTextureSet(c.Name)
	set.Maps[types.ChannelBaseColor] = composite.NewCanvas(c.Size, c.Size).
		Fill(c.BaseColor).
		AddRamp(composite.Rows, -12, 12, ceilingRamp).
		AddField(h, ceilingVariation).
		NRGBA()
	set.Maps[types.ChannelNormal] = normal
	set.Maps[types.ChannelRoughness] = composite.FieldGray(h, ceilingRoughBase, ceilingRoughRange)

	return set, nil
}
