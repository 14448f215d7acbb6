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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

// flatProj maps the sphere linearly onto the plane, so every parallel
// projects to a straight horizontal line. Defined everywhere, including for
// the temporarily shifted longitudes the tessellator uses near the
// 0-meridian.
var flatProj = ProjectorFunc(func(lon, lat float64) (vec.Vec2, bool) {
	return vec.Vec2{X: lon / math.Pi, Y: 2 * lat / math.Pi}, true
})

// bandProj is like flatProj but undefined for longitudes strictly between
// 170° and 190°, simulating a projection limb.
var bandProj = ProjectorFunc(func(lon, lat float64) (vec.Vec2, bool) {
	l := wrapLongitude(lon)
	if l > deg(170) && l < deg(190) {
		return vec.Vec2{}, false
	}
	return vec.Vec2{X: lon / math.Pi, Y: 2 * lat / math.Pi}, true
})

func TestParallelFlat(t *testing.T) {
	tess := NewTessellator()
	cam := NewViewport(180)

	verts := tess.Parallel(0, 0, math.Pi/2, cam, flatProj)

	// zero curvature: every seed interval collapses to one segment
	require.Len(t, verts, 2*tess.Seeds)

	p0, _ := flatProj.Project(0, 0)
	p1, _ := flatProj.Project(math.Pi/2, 0)
	assert.InDelta(t, p0.X, verts[0].X, 1e-12)
	assert.InDelta(t, p0.Y, verts[0].Y, 1e-12)
	assert.InDelta(t, p1.X, verts[len(verts)-1].X, 1e-12)
	assert.InDelta(t, p1.Y, verts[len(verts)-1].Y, 1e-12)

	assertContinuous(t, verts, 1e-9)
}

func TestParallelSegmentCountBounded(t *testing.T) {
	tess := NewTessellator()
	cam := NewViewport(180)

	// nearly full parallel, forcing the antipodal split into two halves
	verts := tess.Parallel(0, 0, deg(359), cam, flatProj)

	require.NotEmpty(t, verts)
	require.Zero(t, len(verts)%2, "odd number of segment endpoints")

	// two halves, each at most Seeds * 2^MaxDepth segments
	maxSegments := 2 * tess.Seeds * (1 << tess.MaxDepth)
	assert.LessOrEqual(t, len(verts)/2, maxSegments)
}

func TestParallelAntipodalSplit(t *testing.T) {
	tess := NewTessellator()
	cam := NewViewport(180)

	// lon span of 359° exceeds half the sphere; the resulting polyline must
	// still be one continuous path covering the whole span.
	lat := deg(45)
	verts := tess.Parallel(lat, 0, deg(359), cam, flatProj)
	require.NotEmpty(t, verts)

	assertContinuous(t, verts, 1e-9)

	first, _ := flatProj.Project(0, lat)
	last, _ := flatProj.Project(deg(359), lat)
	assert.InDelta(t, first.X, verts[0].X, 1e-9)
	assert.InDelta(t, first.Y, verts[0].Y, 1e-9)
	assert.InDelta(t, last.X, verts[len(verts)-1].X, 1e-9)
	assert.InDelta(t, last.Y, verts[len(verts)-1].Y, 1e-9)
}

func TestParallelIdempotent(t *testing.T) {
	tess := NewTessellator()
	cam := NewViewport(100)
	proj := NewOrthographic(deg(30), deg(10))

	a := tess.Parallel(deg(20), deg(300), deg(100), cam, proj)
	b := tess.Parallel(deg(20), deg(300), deg(100), cam, proj)
	assert.Equal(t, a, b)
}

func TestParallelZeroLengthSpan(t *testing.T) {
	tess := NewTessellator()
	cam := NewViewport(180)

	verts := tess.Parallel(0, 1.25, 1.25, cam, flatProj)
	assert.Empty(t, verts)
}

func TestParallelOutsideDomain(t *testing.T) {
	tess := NewTessellator()
	cam := NewViewport(180)
	proj := NewOrthographic(0, 0)

	// the whole span lies on the far hemisphere
	verts := tess.Parallel(0, deg(100), deg(120), cam, proj)
	assert.Empty(t, verts)
}

func TestParallelLimb(t *testing.T) {
	tess := NewTessellator()
	cam := NewViewport(180)

	// the span straddles the undefined band (170°, 190°) on both sides
	verts := tess.Parallel(0, deg(160), deg(200), cam, bandProj)
	require.NotEmpty(t, verts)

	// the polyline must stop short of the band: no vertex inside it
	loX := deg(170) / math.Pi
	hiX := deg(190) / math.Pi
	for _, v := range verts {
		assert.False(t, v.X > loX && v.X < hiX,
			"vertex at X=%g inside the unprojectable band", v.X)
	}

	// both sides of the band are represented
	var before, after bool
	for _, v := range verts {
		if v.X <= loX {
			before = true
		}
		if v.X >= hiX {
			after = true
		}
	}
	assert.True(t, before, "no vertices before the band")
	assert.True(t, after, "no vertices after the band")
}

func TestParallelClippedAtLimb(t *testing.T) {
	tess := NewTessellator()
	cam := NewViewport(180)
	proj := NewOrthographic(0, 0)

	// lon2 lies on the far hemisphere, so the span must be clipped to the
	// domain boundary at lon = 90°
	lat := deg(30)
	verts := tess.Parallel(lat, 0, deg(120), cam, proj)
	require.NotEmpty(t, verts)

	for _, v := range verts {
		assert.LessOrEqual(t, v.X*v.X+v.Y*v.Y, 1+1e-9,
			"vertex outside the unit disk")
	}
}

func TestClipToDomain(t *testing.T) {
	tess := NewTessellator()
	cam := NewViewport(180)
	tol := cam.Aperture() * tess.BoundaryTolerance

	const edge = 1.0

	t.Run("validBelow", func(t *testing.T) {
		// domain is lon < edge
		proj := ProjectorFunc(func(lon, lat float64) (vec.Vec2, bool) {
			if lon >= edge {
				return vec.Vec2{}, false
			}
			return vec.Vec2{X: lon, Y: lat}, true
		})

		lo, hi := tess.clipToDomain(0, 0.5, 1.5, cam, proj)
		assert.Equal(t, 0.5, lo)
		assert.Less(t, hi, edge)
		assert.LessOrEqual(t, edge-hi, tol)
	})

	t.Run("validAbove", func(t *testing.T) {
		// domain is lon > edge
		proj := ProjectorFunc(func(lon, lat float64) (vec.Vec2, bool) {
			if lon <= edge {
				return vec.Vec2{}, false
			}
			return vec.Vec2{X: lon, Y: lat}, true
		})

		lo, hi := tess.clipToDomain(0, 1.5, 0.5, cam, proj)
		assert.Equal(t, 1.5, hi)
		assert.Greater(t, lo, edge)
		assert.LessOrEqual(t, lo-edge, tol)
	})
}

// TestParallelConcurrent checks that independent arcs can be tessellated
// concurrently with a shared Tessellator.
func TestParallelConcurrent(t *testing.T) {
	tess := NewTessellator()
	cam := NewViewport(120)
	proj := NewOrthographic(deg(45), deg(20))

	lats := []float64{deg(-60), deg(-30), 0, deg(30), deg(60)}

	want := make([][]vec.Vec2, len(lats))
	for i, lat := range lats {
		want[i] = tess.Parallel(lat, 0, deg(359), cam, proj)
	}

	got := make([][]vec.Vec2, len(lats))
	var wg sync.WaitGroup
	for i, lat := range lats {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = tess.Parallel(lat, 0, deg(359), cam, proj)
		}()
	}
	wg.Wait()

	for i := range lats {
		assert.Equal(t, want[i], got[i], "latitude %g", lats[i])
	}
}

// assertContinuous checks that each segment's end equals the next segment's
// start, so the pairs form one continuous path.
func assertContinuous(t *testing.T, verts []vec.Vec2, tol float64) {
	t.Helper()
	require.Zero(t, len(verts)%2, "odd number of segment endpoints")
	for i := 2; i < len(verts); i += 2 {
		prev := verts[i-1]
		next := verts[i]
		if math.Abs(prev.X-next.X) > tol || math.Abs(prev.Y-next.Y) > tol {
			t.Fatalf("discontinuity between segment %d and %d: (%g, %g) vs (%g, %g)",
				i/2-1, i/2, prev.X, prev.Y, next.X, next.Y)
		}
	}
}
