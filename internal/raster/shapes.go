package raster

import (
	"math"

	"github.com/paulmach/orb"
)

// arcSegments picks a segment count that keeps chord error below a quarter pixel.
func arcSegments(rx, ry, sweepDeg float64) int {
	r := math.Max(math.Abs(rx), math.Abs(ry))
	if r < 1 {
		return 8
	}
	// chord error = r*(1-cos(step/2)) <= 0.25
	step := 2 * math.Acos(1-0.25/r)
	n := int(math.Ceil(sweepDeg * math.Pi / 180 / step))
	if n < 8 {
		n = 8
	}
	return n
}

// appendArc appends points of an elliptical arc. Angles are in degrees,
// measured clockwise from 3 o'clock on a y-down canvas.
func appendArc(ring orb.Ring, cx, cy, rx, ry, startDeg, endDeg float64) orb.Ring {
	sweep := endDeg - startDeg
	n := arcSegments(rx, ry, math.Abs(sweep))
	for i := 0; i <= n; i++ {
		a := (startDeg + sweep*float64(i)/float64(n)) * math.Pi / 180
		ring = append(ring, orb.Point{cx + rx*math.Cos(a), cy + ry*math.Sin(a)})
	}
	return ring
}

func closeRing(ring orb.Ring) orb.Ring {
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// Rect returns the outline of b.
func Rect(b Box) orb.Ring {
	return orb.Ring{
		{b.X0, b.Y0},
		{b.X1, b.Y0},
		{b.X1, b.Y1},
		{b.X0, b.Y1},
		{b.X0, b.Y0},
	}
}

// Ellipse returns the ellipse inscribed in b.
func Ellipse(b Box) orb.Ring {
	cx, cy, rx, ry := b.center()
	ring := appendArc(nil, cx, cy, rx, ry, 0, 360)
	return closeRing(ring[:len(ring)-1])
}

// Pie returns the sector of the ellipse inscribed in b between the two angles.
func Pie(b Box, startDeg, endDeg float64) orb.Ring {
	cx, cy, rx, ry := b.center()
	ring := orb.Ring{{cx, cy}}
	ring = appendArc(ring, cx, cy, rx, ry, startDeg, endDeg)
	return closeRing(ring)
}

// RoundedRect returns b with its corners rounded by radius. The radius is
// limited to half the shorter side.
func RoundedRect(b Box, radius float64) orb.Ring {
	w := b.X1 - b.X0
	h := b.Y1 - b.Y0
	radius = math.Min(radius, math.Min(w, h)/2)
	if radius <= 0 {
		return Rect(b)
	}

	var ring orb.Ring
	ring = appendArc(ring, b.X1-radius, b.Y1-radius, radius, radius, 0, 90)
	ring = appendArc(ring, b.X0+radius, b.Y1-radius, radius, radius, 90, 180)
	ring = appendArc(ring, b.X0+radius, b.Y0+radius, radius, radius, 180, 270)
	ring = appendArc(ring, b.X1-radius, b.Y0+radius, radius, radius, 270, 360)
	return closeRing(ring)
}
