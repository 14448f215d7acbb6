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
	"strings"
)

// TransferFunction selects how normalized pixel values are remapped for
// display, stretching either the dark or the bright end of the range.
type TransferFunction int

const (
	TransferLinear TransferFunction = iota
	TransferSqrt
	TransferLog
	TransferAsinh
	TransferPow2
)

// ParseTransferFunction selects a transfer function by substring match on
// the given identifier. Unrecognized identifiers select Asinh.
func ParseTransferFunction(id string) TransferFunction {
	switch {
	case strings.Contains(id, "linear"):
		return TransferLinear
	case strings.Contains(id, "pow2"):
		return TransferPow2
	case strings.Contains(id, "log"):
		return TransferLog
	case strings.Contains(id, "sqrt"):
		return TransferSqrt
	default:
		return TransferAsinh
	}
}

// String returns the identifier of the transfer function.
func (f TransferFunction) String() string {
	switch f {
	case TransferLinear:
		return "linear"
	case TransferSqrt:
		return "sqrt"
	case TransferLog:
		return "log"
	case TransferAsinh:
		return "asinh"
	case TransferPow2:
		return "pow2"
	}
	return "unknown"
}

// Apply remaps a normalized pixel value x in [0, 1]. All transfer functions
// are monotonic and map 0 to 0 and 1 to 1.
func (f TransferFunction) Apply(x float64) float64 {
	x = min(max(x, 0), 1)
	switch f {
	case TransferSqrt:
		return math.Sqrt(x)
	case TransferLog:
		return math.Log1p(1000*x) / math.Log1p(1000)
	case TransferAsinh:
		return math.Asinh(10*x) / math.Asinh(10)
	case TransferPow2:
		return x * x
	default:
		return x
	}
}
