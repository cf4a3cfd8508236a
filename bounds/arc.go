package bounds

import "math"

const twoPi = 2 * math.Pi

// cardinal angles, with the box extreme each one reaches.
var cardinals = []struct {
	angle float64
	apply func(b *Rect, cx, cy, r float64)
}{
	{0, func(b *Rect, cx, cy, r float64) { b.MaxX = cx + r }},
	{math.Pi / 2, func(b *Rect, cx, cy, r float64) { b.MaxY = cy + r }},
	{math.Pi, func(b *Rect, cx, cy, r float64) { b.MinX = cx - r }},
	{3 * math.Pi / 2, func(b *Rect, cx, cy, r float64) { b.MinY = cy - r }},
}

// Rect is an axis aligned rectangle at the XY plane.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// normalizeAngle maps radians to [0, 2π).
func normalizeAngle(radians float64) float64 {
	a := math.Mod(radians, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a = 0
	}
	return a
}

// sweepCovers tells whether angle a lies within the arc going from start, for sweep radians,
// decreasing when clockwise, increasing otherwise. All angles must be normalized.
func sweepCovers(start, sweep, a float64, clockwise bool) bool {
	var d float64
	if clockwise {
		d = normalizeAngle(start - a)
	} else {
		d = normalizeAngle(a - start)
	}
	return d <= sweep
}

// ArcBox returns the bounding rectangle of an arc centered at cx, cy with given radius, going
// from startAngle to endAngle (radians, as given by math.Atan2 relative to the center). Equal start
// and end angles describe a full circle.
func ArcBox(cx, cy, radius, startAngle, endAngle float64, clockwise bool) Rect {
	start := normalizeAngle(startAngle)
	end := normalizeAngle(endAngle)

	sx, sy := cx+radius*math.Cos(start), cy+radius*math.Sin(start)
	ex, ey := cx+radius*math.Cos(end), cy+radius*math.Sin(end)
	r := Rect{
		MinX: math.Min(sx, ex),
		MinY: math.Min(sy, ey),
		MaxX: math.Max(sx, ex),
		MaxY: math.Max(sy, ey),
	}

	var sweep float64
	if clockwise {
		sweep = normalizeAngle(start - end)
	} else {
		sweep = normalizeAngle(end - start)
	}
	if sweep == 0 {
		sweep = twoPi
	}

	for _, c := range cardinals {
		if sweepCovers(start, sweep, c.angle, clockwise) {
			c.apply(&r, cx, cy, radius)
		}
	}
	return r
}
