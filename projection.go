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

	"github.com/owlpinetech/flatsphere"
	"seehuhn.de/go/geom/vec"
)

// A Projector maps sphere coordinates to normalized device coordinates.
// Longitude and latitude are in radians, with latitude in [-π/2, π/2].
// The second return value is false when the coordinate lies outside the
// projection's domain (for example on the invisible hemisphere of an
// orthographic view); in that case the vertex is meaningless.
//
// Implementations must be pure functions of their inputs.
type Projector interface {
	Project(lon, lat float64) (vec.Vec2, bool)
}

// ProjectorFunc adapts an ordinary function to the Projector interface.
type ProjectorFunc func(lon, lat float64) (vec.Vec2, bool)

// Project calls f.
func (f ProjectorFunc) Project(lon, lat float64) (vec.Vec2, bool) {
	return f(lon, lat)
}

// A Camera exposes the state of the viewport that the tessellator needs.
type Camera interface {
	// Aperture returns the current field of view in radians.
	// It is used only to scale numerical tolerances, so curves need to be
	// resolved no finer than the current zoom level can show.
	Aperture() float64
}

// Viewport is a minimal Camera implementation holding the current field of
// view.
type Viewport struct {
	fov float64 // radians
}

// NewViewport creates a viewport with the given field of view in degrees.
// The field of view must be positive.
func NewViewport(fovDegrees float64) *Viewport {
	v := &Viewport{}
	v.SetAperture(fovDegrees)
	return v
}

// SetAperture changes the field of view, given in degrees.
func (v *Viewport) SetAperture(fovDegrees float64) {
	if fovDegrees <= 0 {
		panic("skygrid: viewport field of view must be positive")
	}
	v.fov = fovDegrees * math.Pi / 180
}

// Aperture returns the field of view in radians.
func (v *Viewport) Aperture() float64 {
	return v.fov
}

// Orthographic is a view of the sphere from infinity, centered on a given
// direction. Only the hemisphere facing the viewer is projectable; the far
// hemisphere is outside the domain. Device coordinates fall inside the unit
// disk.
type Orthographic struct {
	CenterLon, CenterLat float64

	sinLat0, cosLat0 float64
}

// NewOrthographic creates an orthographic projection centered on the given
// sphere coordinate (radians).
func NewOrthographic(centerLon, centerLat float64) *Orthographic {
	sin, cos := math.Sincos(centerLat)
	return &Orthographic{
		CenterLon: centerLon,
		CenterLat: centerLat,
		sinLat0:   sin,
		cosLat0:   cos,
	}
}

// Project implements the Projector interface.
func (o *Orthographic) Project(lon, lat float64) (vec.Vec2, bool) {
	sinLat, cosLat := math.Sincos(lat)
	sinDlon, cosDlon := math.Sincos(lon - o.CenterLon)

	// cosine of the angular distance to the projection center
	cosC := o.sinLat0*sinLat + o.cosLat0*cosLat*cosDlon
	if cosC < 0 {
		return vec.Vec2{}, false
	}

	return vec.Vec2{
		X: cosLat * sinDlon,
		Y: o.cosLat0*sinLat - o.sinLat0*cosLat*cosDlon,
	}, true
}

// Gnomonic projects the sphere onto a plane tangent at the view center.
// The domain is a spherical cap of angular radius MaxRadius (< π/2) around
// the center; device coordinates are scaled so the cap boundary maps to the
// unit circle.
type Gnomonic struct {
	CenterLon, CenterLat float64
	MaxRadius            float64

	sinLat0, cosLat0 float64
	cosMax, tanMax   float64
}

// NewGnomonic creates a gnomonic projection centered on the given sphere
// coordinate, with the given angular radius of the projectable cap.
// The radius must lie in (0, π/2).
func NewGnomonic(centerLon, centerLat, maxRadius float64) *Gnomonic {
	if maxRadius <= 0 || maxRadius >= math.Pi/2 {
		panic("skygrid: gnomonic cap radius must be in (0, π/2)")
	}
	sin, cos := math.Sincos(centerLat)
	return &Gnomonic{
		CenterLon: centerLon,
		CenterLat: centerLat,
		MaxRadius: maxRadius,
		sinLat0:   sin,
		cosLat0:   cos,
		cosMax:    math.Cos(maxRadius),
		tanMax:    math.Tan(maxRadius),
	}
}

// Project implements the Projector interface.
func (g *Gnomonic) Project(lon, lat float64) (vec.Vec2, bool) {
	sinLat, cosLat := math.Sincos(lat)
	sinDlon, cosDlon := math.Sincos(lon - g.CenterLon)

	cosC := g.sinLat0*sinLat + g.cosLat0*cosLat*cosDlon
	if cosC < g.cosMax {
		return vec.Vec2{}, false
	}

	s := 1 / (cosC * g.tanMax)
	return vec.Vec2{
		X: s * cosLat * sinDlon,
		Y: s * (g.cosLat0*sinLat - g.sinLat0*cosLat*cosDlon),
	}, true
}

// Planar adapts a flatsphere projection to the Projector interface, rescaling
// its planar coordinates so that the projection's full planar bounds map to
// the square [-1, 1] × [-1, 1].
//
// Most flatsphere projections are total, so the resulting Projector is
// defined everywhere; coordinates that project to a non-finite point (such as
// the poles under Mercator) are reported as outside the domain.
type Planar struct {
	proj flatsphere.Projection

	xMin, yMin    float64
	width, height float64
}

// NewPlanar wraps the given flatsphere projection.
func NewPlanar(p flatsphere.Projection) *Planar {
	bounds := p.PlanarBounds()
	return &Planar{
		proj:   p,
		xMin:   bounds.XMin,
		yMin:   bounds.YMin,
		width:  bounds.Width(),
		height: bounds.Height(),
	}
}

// Project implements the Projector interface.
func (p *Planar) Project(lon, lat float64) (vec.Vec2, bool) {
	// flatsphere expects longitude in [-π, π]
	lon = wrapLongitude(lon)
	if lon >= math.Pi {
		lon -= twoPi
	}

	x, y := p.proj.Project(lat, lon)
	if math.IsInf(x, 0) || math.IsInf(y, 0) || math.IsNaN(x) || math.IsNaN(y) {
		return vec.Vec2{}, false
	}

	return vec.Vec2{
		X: 2*(x-p.xMin)/p.width - 1,
		Y: 2*(y-p.yMin)/p.height - 1,
	}, true
}
