package envelope

import "math"

// Point is a vertex in m.
type Point struct {
	X, Y, Z float64
}

func (p Point) sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }
func (p Point) add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }
func (p Point) scale(f float64) Point { return Point{p.X * f, p.Y * f, p.Z * f} }
func (p Point) dot(q Point) float64   { return p.X*q.X + p.Y*q.Y + p.Z*q.Z }
func (p Point) length() float64       { return math.Sqrt(p.dot(p)) }

func (p Point) cross(q Point) Point {
	return Point{p.Y*q.Z - p.Z*q.Y, p.Z*q.X - p.X*q.Z, p.X*q.Y - p.Y*q.X}
}

// newell returns the area weighted normal of a planar polygon. Its length
// is twice the polygon area.
func newell(vs []Point) Point {
	var n Point
	for i, v := range vs {
		n = n.add(v.cross(vs[(i+1)%len(vs)]))
	}
	return n
}

// Area returns the area of a planar polygon in m2.
func Area(vs []Point) float64 {
	if len(vs) < 3 {
		return 0
	}
	return newell(vs).length() / 2
}

// Centroid returns the area centroid of a planar polygon. A degenerate
// polygon falls back to the vertex average.
func Centroid(vs []Point) Point {
	if len(vs) == 0 {
		return Point{}
	}
	n := newell(vs)
	if len(vs) >= 3 && n.length() > 0 {
		unit := n.scale(1 / n.length())
		var c Point
		var total float64
		for i := 1; i+1 < len(vs); i++ {
			a, b, d := vs[0], vs[i], vs[i+1]
			area := b.sub(a).cross(d.sub(a)).dot(unit) / 2
			c = c.add(a.add(b).add(d).scale(area / 3))
			total += area
		}
		if total != 0 {
			return c.scale(1 / total)
		}
	}
	var c Point
	for _, v := range vs {
		c = c.add(v)
	}
	return c.scale(1 / float64(len(vs)))
}

func checkFraction(fraction float64) error {
	if fraction < 0 || fraction >= 1 || math.IsNaN(fraction) {
		return ErrInvalidFraction
	}
	return nil
}

// ShrinkTowardCentroid moves every vertex toward the centroid so the area
// drops by fraction. fraction must be in [0, 1).
func ShrinkTowardCentroid(vs []Point, fraction float64) ([]Point, error) {
	if err := checkFraction(fraction); err != nil {
		return nil, err
	}
	g := Centroid(vs)
	f := math.Sqrt(1 - fraction)
	out := make([]Point, len(vs))
	for i, v := range vs {
		out[i] = g.add(v.sub(g).scale(f))
	}
	return out, nil
}

// RaiseSill lifts the lowest vertices so the height, and with it the area
// of a vertical rectangle, drops by fraction. The head height is kept.
func RaiseSill(vs []Point, fraction float64) ([]Point, error) {
	if err := checkFraction(fraction); err != nil {
		return nil, err
	}
	if len(vs) == 0 {
		return nil, nil
	}
	lo, hi := vs[0].Z, vs[0].Z
	for _, v := range vs[1:] {
		lo = min(lo, v.Z)
		hi = max(hi, v.Z)
	}
	sill := hi - (hi-lo)*(1-fraction)
	out := make([]Point, len(vs))
	for i, v := range vs {
		if v.Z == lo {
			v.Z = sill
		}
		out[i] = v
	}
	return out, nil
}

// IsVerticalRectangle reports whether vs is a rectangle with a bottom edge
// parallel to the ground.
func IsVerticalRectangle(vs []Point) bool {
	if len(vs) != 4 {
		return false
	}
	zs := []float64{vs[0].Z, vs[1].Z, vs[2].Z, vs[3].Z}
	lowest, second := math.Inf(1), math.Inf(1)
	for _, z := range zs {
		switch {
		case z < lowest:
			lowest, second = z, lowest
		case z < second:
			second = z
		}
	}
	if lowest != second {
		return false
	}
	const tol = 1e-9
	return math.Abs(vs[0].sub(vs[2]).length()-vs[1].sub(vs[3]).length()) < tol
}
