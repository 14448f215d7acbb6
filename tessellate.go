// seehuhn.de/go/skygrid - adaptive tessellation of spherical grid lines
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package skygrid

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Tessellator converts constant-latitude arcs into device-space polylines.
// The zero value is not usable; create instances with NewTessellator and
// adjust the exported fields as needed. A Tessellator holds no per-call
// state and may be shared between goroutines tessellating independent arcs.
type Tessellator struct {
	// MaxTurnAngle is the largest angle (in radians) between consecutive
	// projected segment directions that is still accepted without further
	// subdivision.
	MaxTurnAngle float64

	// CollinearityThreshold is used to detect truly collinear segment
	// directions by the magnitude of their cross product. For turns below
	// this threshold the shared midpoint is elided.
	CollinearityThreshold float64

	// MinLengthRatio is the smallest accepted ratio between the squared
	// lengths of two adjacent segments. Below it, the projection is
	// foreshortening one half of the span so strongly (typically near a
	// limb) that only the longer half is emitted.
	MinLengthRatio float64

	// MaxDepth caps the recursion depth per seed interval.
	MaxDepth int

	// Seeds is the number of equal sub-intervals an arc is split into
	// before recursive refinement starts. Seeding with several intervals
	// keeps a globally curved arc from passing the flatness test when
	// sampled only at its two extreme endpoints.
	Seeds int

	// BoundaryTolerance sizes the domain-boundary search tolerance as a
	// fraction of the camera aperture.
	BoundaryTolerance float64
}

// Default values for tessellator parameters.
const (
	// defaultMaxTurnAngle is 12 degrees in radians.
	defaultMaxTurnAngle = 0.174533

	// defaultCollinearityThreshold detects collinear unit directions.
	defaultCollinearityThreshold = 1e-2

	// defaultMinLengthRatio triggers the foreshortening cutoff when one
	// half-span projects to less than a tenth of the other (in squared
	// length).
	defaultMinLengthRatio = 0.1

	defaultMaxDepth = 4
	defaultSeeds    = 5

	// defaultBoundaryTolerance resolves the domain boundary to 2% of the
	// field of view; coarser when zoomed out, finer when zoomed in.
	defaultBoundaryTolerance = 0.02

	// lonLengthSlack guards the antipodal-split test against spans whose
	// forward length exceeds π only through rounding.
	lonLengthSlack = 1e-6
)

// NewTessellator creates a Tessellator with default parameters.
func NewTessellator() *Tessellator {
	return &Tessellator{
		MaxTurnAngle:          defaultMaxTurnAngle,
		CollinearityThreshold: defaultCollinearityThreshold,
		MinLengthRatio:        defaultMinLengthRatio,
		MaxDepth:              defaultMaxDepth,
		Seeds:                 defaultSeeds,
		BoundaryTolerance:     defaultBoundaryTolerance,
	}
}

// Parallel tessellates the constant-latitude arc from lon1 to lon2
// (increasing longitude, wrapping through 2π if lon2 < lon1) and returns the
// polyline as consecutive segment endpoint pairs: vertices 0-1 form the
// first segment, 2-3 the second, and so on. Adjacent segments repeat their
// shared vertex.
//
// Preconditions: lat in [-π/2, π/2], lon1 and lon2 in [0, 2π), and at least
// one of the two endpoints projectable. An arc that lies entirely outside
// the projection's domain yields an empty polyline.
func (t *Tessellator) Parallel(lat, lon1, lon2 float64, cam Camera, proj Projector) []vec.Vec2 {
	return t.AppendParallel(nil, lat, lon1, lon2, cam, proj)
}

// AppendParallel is like Parallel but appends the vertices to dst and
// returns the extended slice.
func (t *Tessellator) AppendParallel(dst []vec.Vec2, lat, lon1, lon2 float64, cam Camera, proj Projector) []vec.Vec2 {
	lonLen := intervalLength(lon1, lon2)
	if lonLen == 0 {
		return dst
	}

	if lonLen > math.Pi+lonLengthSlack {
		// The span covers more than half the sphere, which is ambiguous
		// for direct tessellation. Split at the point antipodal to lon1;
		// each half then has forward length at most π.
		var lonMid float64
		if lon1+math.Pi >= twoPi {
			lon1 -= twoPi
			lonMid = lon1 + math.Pi
		} else {
			lonMid = lon1 + math.Pi
		}

		dst = t.AppendParallel(dst, lat, lon1, lonMid, cam, proj)
		dst = t.AppendParallel(dst, lat, lonMid, lon2, cam, proj)
		return dst
	}

	lon2 = lon1 + lonLen

	// The span can cross the 0-meridian but not both the 0 and 180 ones.
	// Shift it to a contiguous, monotonic representation.
	if lon2 > twoPi {
		lon2 -= twoPi
		lon1 -= twoPi
	}

	_, ok1 := proj.Project(lon1, lat)
	_, ok2 := proj.Project(lon2, lat)

	switch {
	case ok1 && ok2:
		dst = t.subdivideSeeds(dst, lat, lon1, lon2, cam, proj)
	case ok2:
		lo, hi := t.clipToDomain(lat, lon2, lon1, cam, proj)
		dst = t.subdivideSeeds(dst, lat, lo, hi, cam, proj)
	case ok1:
		lo, hi := t.clipToDomain(lat, lon1, lon2, cam, proj)
		dst = t.subdivideSeeds(dst, lat, lo, hi, cam, proj)
	default:
		// The arc lies entirely outside the projectable region.
	}
	return dst
}

// clipToDomain narrows the span between a projectable and a non-projectable
// longitude down to a projectable sub-span, by bisecting for the domain
// boundary until the bracket is smaller than the aperture-scaled tolerance.
// It returns the sub-span endpoints in increasing order; one endpoint is the
// original validLon, the other is the converged projectable bound.
//
// Preconditions: (validLon, lat) projects, (invalidLon, lat) does not, and
// the angular distance between the two is less than π.
func (t *Tessellator) clipToDomain(lat, validLon, invalidLon float64, cam Camera, proj Projector) (float64, float64) {
	tol := cam.Aperture() * t.BoundaryTolerance

	lValid := validLon
	lInvalid := invalidLon
	for math.Abs(lValid-lInvalid) > tol {
		lonMid := (lValid + lInvalid) * 0.5
		if _, ok := proj.Project(lonMid, lat); ok {
			lValid = lonMid
		} else {
			lInvalid = lonMid
		}
	}

	if validLon > invalidLon {
		return lValid, validLon
	}
	return validLon, lValid
}

// subdivideSeeds splits the span into equal seed intervals and refines each
// independently.
func (t *Tessellator) subdivideSeeds(dst []vec.Vec2, lat, lonStart, lonEnd float64, cam Camera, proj Projector) []vec.Vec2 {
	dlon := (lonEnd - lonStart) / float64(t.Seeds)
	for i := range t.Seeds {
		lon1 := lonStart + float64(i)*dlon
		dst = t.subdivide(dst, lat, lon1, lon1+dlon, cam, proj, 0)
	}
	return dst
}

// subdivide appends segments approximating the projected arc between lon1
// and lon2, recursing while the projected curvature demands it. Sub-spans
// whose projection becomes undefined mid-recursion are dropped silently: the
// caller has already clipped the span to a mostly-projectable region, so any
// residue is below the boundary tolerance.
func (t *Tessellator) subdivide(dst []vec.Vec2, lat, lon1, lon2 float64, cam Camera, proj Projector, depth int) []vec.Vec2 {
	if depth >= t.MaxDepth {
		return dst
	}

	p1, ok1 := proj.Project(lon1, lat)
	p2, ok2 := proj.Project(lon2, lat)

	lon0 := (lon1 + lon2) * 0.5
	pm, okm := proj.Project(lon0, lat)

	if !ok1 || !okm || !ok2 {
		return dst
	}

	ab := pm.Sub(p1)
	bc := p2.Sub(pm)
	abLen := ab.X*ab.X + ab.Y*ab.Y
	bcLen := bc.X*bc.X + bc.Y*bc.Y
	if abLen < degenerateLength2 || bcLen < degenerateLength2 {
		// Coincident sample points; nothing to measure a turn on.
		dst = append(dst, p1, p2)
		return dst
	}

	ab = ab.Mul(1 / math.Sqrt(abLen))
	bc = bc.Mul(1 / math.Sqrt(bcLen))
	cross := ab.X*bc.Y - ab.Y*bc.X
	theta := math.Atan2(cross, ab.Dot(bc))

	switch {
	case math.Abs(theta) < t.MaxTurnAngle:
		if math.Abs(cross) < t.CollinearityThreshold {
			// Truly collinear: collapse the midpoint.
			dst = append(dst, p1, p2)
		} else {
			dst = append(dst, p1, pm, pm, p2)
		}
	case min(abLen, bcLen)/max(abLen, bcLen) < t.MinLengthRatio:
		// Extreme foreshortening near a limb: emit a single half-span and
		// give up on the other one.
		if abLen < bcLen {
			dst = append(dst, p1, pm)
		} else {
			dst = append(dst, pm, p2)
		}
	default:
		dst = t.subdivide(dst, lat, lon1, lon0, cam, proj, depth+1)
		dst = t.subdivide(dst, lat, lon0, lon2, cam, proj, depth+1)
	}
	return dst
}

// degenerateLength2 is the minimum squared length for a projected half-span
// to take part in the turn-angle test. Shorter vectors cannot be normalized
// reliably.
const degenerateLength2 = 1e-20
