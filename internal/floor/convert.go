package floor

import (
	"context"
	"image"
	"image/draw"

	"github.com/MeKo-Tech/pbrtex/internal/types"
)

// Convert fetches every mapped channel from src and returns the floor set.
// Images that are neither RGB nor RGBA (greyscale, paletted, YCbCr) are
// converted to opaque RGB. Any failure returns no set at all.
func Convert(ctx context.Context, src Source) (*types.TextureSet, error) {
	set := types.NewTextureSet(SetName)

	for _, m := range Mapping {
		img, err := src.Fetch(ctx, m.Source)
		if err != nil {
			return nil, err
		}
		set.Maps[m.Target] = toRGB(img)
	}

	return set, nil
}

func toRGB(img image.Image) image.Image {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return img
	}

	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 255
	}
	return dst
}
