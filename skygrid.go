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

// Package skygrid converts constant-latitude arcs on the sphere into
// device-space polylines, for drawing coordinate grids under an arbitrary,
// possibly partial, sky projection.
//
// The central type is [Tessellator], which refines an arc adaptively: flat
// stretches of the projected curve are covered by few segments, while sharply
// bending or foreshortened regions near a projection's limb are refined
// further. Projections that are only locally defined (for example the visible
// hemisphere of an orthographic view) are handled by locating the domain
// boundary along the arc and clipping the tessellated span to it.
package skygrid
