// Package composite blends images, masks and filters them.
package composite

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/gift"
)

// Flat returns a w×h image filled with c.
func Flat(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// MaskBlend mixes a and b per pixel as a + (b-a)*m/255: mask 0 keeps a, mask
// 255 gives b. All three images must share the same bounds.
func MaskBlend(a, b image.Image, m *image.Gray) (*image.NRGBA, error) {
	if a == nil || b == nil || m == nil {
		return nil, fmt.Errorf("mask blend needs two images and a mask")
	}
	bounds := a.Bounds()
	if b.Bounds() != bounds || m.Bounds() != bounds {
		return nil, fmt.Errorf("bounds do not match: a %v, b %v, mask %v", bounds, b.Bounds(), m.Bounds())
	}

	na := toNRGBA(a)
	nb := toNRGBA(b)
	dst := image.NewNRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			t := float64(m.GrayAt(x, y).Y) / 255.0
			i := dst.PixOffset(x, y)
			ia := na.PixOffset(x, y)
			ib := nb.PixOffset(x, y)
			for c := 0; c < 4; c++ {
				va := float64(na.Pix[ia+c])
				vb := float64(nb.Pix[ib+c])
				dst.Pix[i+c] = uint8(math.Round(va + (vb-va)*t))
			}
		}
	}

	return dst, nil
}

// AlphaOver composites src over dst with straight alpha and returns the result
// as a new image. Both images must share the same bounds.
func AlphaOver(dst, src image.Image) (*image.NRGBA, error) {
	if dst.Bounds() != src.Bounds() {
		return nil, fmt.Errorf("bounds do not match: dst %v, src %v", dst.Bounds(), src.Bounds())
	}

	out := cloneNRGBA(dst)
	alphaOver(out, src)

	return out, nil
}

func alphaOver(dst *image.NRGBA, src image.Image) {
	bounds := dst.Bounds()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			if s.A == 0 {
				continue
			}

			d := dst.NRGBAAt(x, y)

			sa := float64(s.A) / 255.0
			da := float64(d.A) / 255.0

			outA := sa + da*(1.0-sa)
			if outA == 0 {
				dst.SetNRGBA(x, y, color.NRGBA{})
				continue
			}

			blend := func(srcVal, dstVal uint8) uint8 {
				srcPremult := float64(srcVal) * sa
				dstPremult := float64(dstVal) * da
				outPremult := srcPremult + dstPremult*(1.0-sa)
				return uint8(math.Round(outPremult / outA))
			}

			dst.SetNRGBA(x, y, color.NRGBA{
				R: blend(s.R, d.R),
				G: blend(s.G, d.G),
				B: blend(s.B, d.B),
				A: uint8(math.Round(outA * 255.0)),
			})
		}
	}
}

// GaussianBlur blurs every channel, alpha included. Edges are extended.
func GaussianBlur(img image.Image, sigma float32) *image.NRGBA {
	if sigma <= 0 {
		return cloneNRGBA(img)
	}
	return apply(img, gift.GaussianBlur(sigma))
}

// UnsharpMask sharpens img. amount is a fraction (0.8 for 80%), threshold is
// the minimum per-channel difference on the 0..255 scale.
func UnsharpMask(img image.Image, sigma, amount float32, threshold uint8) *image.NRGBA {
	return apply(img, gift.UnsharpMask(sigma, amount, float32(threshold)/255))
}

// Crop returns the part of img inside r, re-based at the origin.
func Crop(img image.Image, r image.Rectangle) *image.NRGBA {
	return apply(img, gift.Crop(r))
}

// ResizeBicubic scales img to w×h with cubic resampling.
func ResizeBicubic(img image.Image, w, h int) *image.NRGBA {
	return apply(img, gift.Resize(w, h, gift.CubicResampling))
}

func apply(img image.Image, filters ...gift.Filter) *image.NRGBA {
	g := gift.New(filters...)
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return cloneNRGBA(img)
}

func cloneNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	if n, ok := img.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			copy(dst.Pix[dst.PixOffset(b.Min.X, y):dst.PixOffset(b.Max.X, y)], n.Pix[n.PixOffset(b.Min.X, y):])
		}
		return dst
	}
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}
