package raster

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/paulmach/orb"
)

func fill(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func TestFillPolygonLeavesUncoveredPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	bg := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	fill(img, bg)

	red := color.NRGBA{R: 255, A: 255}
	FillPolygon(img, orb.Polygon{Rect(Box{X0: 5, Y0: 5, X1: 15, Y1: 15})}, red)

	if got := img.NRGBAAt(10, 10); got != red {
		t.Fatalf("expected %v inside, got %v", red, got)
	}
	if got := img.NRGBAAt(2, 2); got != bg {
		t.Fatalf("expected background %v outside, got %v", bg, got)
	}
}

func TestFillPolygonReplacesAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	fill(img, color.NRGBA{R: 200, G: 200, B: 200, A: 255})

	c := color.NRGBA{R: 64, G: 48, B: 36, A: 240}
	FillPolygon(img, orb.Polygon{Rect(Box{X1: 8, Y1: 8})}, c)

	if got := img.NRGBAAt(4, 4); got != c {
		t.Fatalf("expected %v, got %v", c, got)
	}
}

func TestFillPolygonHole(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	outer := Rect(Box{X1: 20, Y1: 20})
	hole := Rect(Box{X0: 5, Y0: 5, X1: 15, Y1: 15})
	slices.Reverse(hole)

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	FillPolygon(img, orb.Polygon{outer, hole}, white)

	if got := img.NRGBAAt(1, 1); got != white {
		t.Fatalf("expected ring pixel filled, got %v", got)
	}
	if got := img.NRGBAAt(10, 10); got.A != 0 {
		t.Fatalf("expected hole pixel untouched, got %v", got)
	}
}

func TestCoverageClipsOutsideGeometry(t *testing.T) {
	b := image.Rect(0, 0, 10, 10)
	m := Coverage(b, orb.Polygon{Rect(Box{X0: -50, Y0: -50, X1: 50, Y1: 50})})
	for i, a := range m.Pix {
		if a != 0xff {
			t.Fatalf("pixel %d: expected full coverage, got %d", i, a)
		}
	}
}

func TestRectOutline(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 30, 30))
	c := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	RectOutline(img, image.Rect(0, 0, 30, 30), 10, c)

	if got := img.NRGBAAt(9, 15); got != c {
		t.Fatalf("expected border at x=9, got %v", got)
	}
	if got := img.NRGBAAt(15, 15); got.A != 0 {
		t.Fatalf("expected untouched centre, got %v", got)
	}
}

func TestHLineCentresWidth(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 10))
	HLine(img, 5, 0, 4, 3, color.Gray{Y: 200})

	for y := 0; y < 10; y++ {
		want := uint8(0)
		if y >= 4 && y <= 6 {
			want = 200
		}
		if got := img.GrayAt(1, y).Y; got != want {
			t.Fatalf("row %d: expected %d, got %d", y, want, got)
		}
	}
}

func TestStrokeLineHorizontal(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 20))
	c := color.NRGBA{R: 156, G: 126, B: 86, A: 255}
	StrokeLine(img, 10, 10, 90, 10, 10, c)

	if got := img.NRGBAAt(50, 10); got != c {
		t.Fatalf("expected line colour on the stroke, got %v", got)
	}
	if got := img.NRGBAAt(50, 6); got != c {
		t.Fatalf("expected line colour within half width, got %v", got)
	}
	if got := img.NRGBAAt(5, 10); got.A != 0 {
		t.Fatalf("expected nothing before the start, got %v", got)
	}
	if got := img.NRGBAAt(50, 16); got.A != 0 {
		t.Fatalf("expected nothing beyond the width, got %v", got)
	}
}

func TestEllipseRingIsClosed(t *testing.T) {
	r := Ellipse(Box{X1: 10, Y1: 10})
	if !r.Closed() {
		t.Fatal("expected closed ring")
	}
	p := Pie(Box{X1: 10, Y1: 10}, 0, 90)
	if p[0] != (orb.Point{5, 5}) {
		t.Fatalf("expected pie to start at centre, got %v", p[0])
	}
}
