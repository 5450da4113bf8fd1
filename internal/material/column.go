package material

import (
	"image"
	"image/color"
	"math"

	"github.com/MeKo-Tech/pbrtex/internal/composite"
	"github.com/MeKo-Tech/pbrtex/internal/mask"
	"github.com/MeKo-Tech/pbrtex/internal/raster"
	"github.com/MeKo-Tech/pbrtex/internal/types"
)

// Column is a cylindrical plaster column shaded left to right and darkened
// towards its foot and capital.
type Column struct {
	Name        string    `mapstructure:"name"`
	Width       int       `mapstructure:"width"`
	Height      int       `mapstructure:"height"`
	Shade       types.RGB `mapstructure:"shade"`
	Base        types.RGB `mapstructure:"base"`
	Highlight   types.RGB `mapstructure:"highlight"`
	ShadowColor types.RGB `mapstructure:"shadow_color"`
	TopShade    float64   `mapstructure:"top_shade"`    // vertical multiplier at the top row
	BottomShade float64   `mapstructure:"bottom_shade"` // vertical multiplier at the bottom row
	FootHeight  int       `mapstructure:"foot_height"`
	FootLevel   int       `mapstructure:"foot_level"`
	CapHeight   int       `mapstructure:"cap_height"`
	CapLevel    int       `mapstructure:"cap_level"`
	ShadowBlur  float32   `mapstructure:"shadow_blur"`
}

func DefaultColumn() *Column {
	return &Column{
		Name:        "column_plaster",
		Width:       512,
		Height:      2048,
		Shade:       types.RGB{189, 168, 138},
		Base:        types.RGB{214, 193, 163},
		Highlight:   types.RGB{245, 233, 205},
		ShadowColor: types.RGB{140, 120, 90},
		TopShade:    1.08,
		BottomShade: 0.78,
		FootHeight:  220,
		FootLevel:   140,
		CapHeight:   160,
		CapLevel:    70,
		ShadowBlur:  32,
	}
}

func (c *Column) RecipeName() string { return c.Name }

func (c *Column) Validate() error {
	return firstErr(
		checkName(c.Name),
		checkSize("width", c.Width),
		checkSize("height", c.Height),
		checkColor("shade", c.Shade),
		checkColor("base", c.Base),
		checkColor("highlight", c.Highlight),
		checkColor("shadow_color", c.ShadowColor),
		checkNonNegative("top_shade", c.TopShade),
		checkNonNegative("bottom_shade", c.BottomShade),
		checkNonNegative("foot_height", float64(c.FootHeight)),
		checkNonNegative("cap_height", float64(c.CapHeight)),
		checkLevel("foot_level", c.FootLevel),
		checkLevel("cap_level", c.CapLevel),
		checkNonNegative("shadow_blur", float64(c.ShadowBlur)),
	)
}

func (c *Column) Generate() (*types.TextureSet, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	w, h := c.Width, c.Height

	canvas := composite.NewCanvas(w, h)
	for x, t := range composite.Linspace(0, 1, w) {
		v := c.profile(float64(t))
		for y := 0; y < h; y++ {
			canvas.Set(x, y, v)
		}
	}
	column := canvas.MulRamp(composite.Rows, c.TopShade, c.BottomShade).NRGBA()

	// The cap band is painted after the foot band and wins where they meet.
	shadow := mask.Rect(w, h, image.Rect(0, h-c.FootHeight, w, h), uint8(c.FootLevel))
	raster.FillRect(shadow, image.Rect(0, 0, w, c.CapHeight+1), color.Gray{Y: uint8(c.CapLevel)})
	shadow = mask.GaussianBlur(shadow, c.ShadowBlur)

	out, err := composite.MaskBlend(composite.Flat(w, h, c.ShadowColor.NRGBA()), column, shadow)
	if err != nil {
		return nil, err
	}

	set := types.NewTextureSet(c.Name)
	set.Maps[types.ChannelImage] = out
	return set, nil
}

// profile mixes shade, base and highlight across the column at t in [0,1].
func (c *Column) profile(t float64) [3]float32 {
	left := 1 - math.Min(math.Max(t*2, 0), 1)
	mid := 1 - math.Abs(t-0.5)*2
	right := math.Min(math.Max((t-0.5)*2, 0), 1)

	var v [3]float32
	for ch := range v {
		s := float64(c.Shade[ch])*left + float64(c.Base[ch])*mid + float64(c.Highlight[ch])*right
		v[ch] = float32(math.Min(math.Max(s, 0), 255))
	}
	return v
}
