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

import "math"

const twoPi = 2 * math.Pi

// intervalLength returns the forward (increasing-longitude) angular distance
// from lon1 to lon2, wrapping through 2π if lon2 < lon1.
// For lon1, lon2 in [0, 2π) the result is in [0, 2π).
func intervalLength(lon1, lon2 float64) float64 {
	if lon1 > lon2 {
		return lon2 + twoPi - lon1
	}
	return lon2 - lon1
}

// wrapLongitude reduces lon to the range [0, 2π).
func wrapLongitude(lon float64) float64 {
	lon = math.Mod(lon, twoPi)
	if lon < 0 {
		lon += twoPi
	}
	return lon
}

// IsInLongitudeRange reports whether lon0 lies inside the directed longitude
// interval from lon1 to lon2.
//
// The interval is half-open: lon1 is included, lon2 is excluded. A signed
// delta lon2-lon1 with magnitude greater than π denotes an interval that
// wraps around the 0-meridian, in which case the test is inverted.
//
// The half-open boundary handling matters for polygon containment: a test
// point whose longitude equals a vertex shared by a wrapping and a
// non-wrapping edge must be counted against exactly one of the two edges,
// otherwise the crossing count comes out even when it should be odd.
func IsInLongitudeRange(lon0, lon1, lon2 float64) bool {
	dlon := lon2 - lon1
	if dlon < 0 {
		return (dlon >= -math.Pi) == (lon2 <= lon0 && lon0 < lon1)
	}
	return (dlon <= math.Pi) == (lon1 <= lon0 && lon0 < lon2)
}
