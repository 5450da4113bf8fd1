package types

import (
	"fmt"
	"image"
	"image/color"
)

// Channel names one map of a texture set.
type Channel string

const (
	ChannelBaseColor Channel = "baseColor"
	ChannelNormal    Channel = "normal"
	ChannelRoughness Channel = "roughness"
	ChannelAO        Channel = "ao"
	// ChannelImage is the single composited output of a decorative recipe.
	ChannelImage Channel = "image"
)

// ChannelOrder is the fixed order in which channels are listed and written.
var ChannelOrder = []Channel{
	ChannelBaseColor,
	ChannelNormal,
	ChannelRoughness,
	ChannelAO,
	ChannelImage,
}

// TextureSet is the complete output of one generator invocation.
type TextureSet struct {
	Name string
	Maps map[Channel]image.Image
}

// NewTextureSet creates an empty set for the given output stem.
func NewTextureSet(name string) *TextureSet {
	return &TextureSet{Name: name, Maps: make(map[Channel]image.Image)}
}

// Stem returns the file stem of a channel: "<name>_<channel>", or just the
// set name for a decorative single-image set.
func (s *TextureSet) Stem(ch Channel) string {
	if ch == ChannelImage {
		return s.Name
	}
	return fmt.Sprintf("%s_%s", s.Name, ch)
}

// Channels lists the populated channels in ChannelOrder.
func (s *TextureSet) Channels() []Channel {
	out := make([]Channel, 0, len(s.Maps))
	for _, ch := range ChannelOrder {
		if _, ok := s.Maps[ch]; ok {
			out = append(out, ch)
		}
	}
	return out
}

// RGB is an 8-bit colour tuple as written in recipe configuration.
// Components are ints so out-of-range configuration can be reported instead of wrapped.
type RGB [3]int

// Valid reports whether every component is within [0,255].
func (c RGB) Valid() bool {
	for _, v := range c {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

// NRGBA converts the colour to an opaque color.NRGBA. Components are clamped.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: clampByte(c[0]), G: clampByte(c[1]), B: clampByte(c[2]), A: 255}
}

// WithAlpha converts the colour to color.NRGBA with the given alpha.
func (c RGB) WithAlpha(a uint8) color.NRGBA {
	n := c.NRGBA()
	n.A = a
	return n
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
