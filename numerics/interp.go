//----------------------------------------------------------------------
// This file is part of magforge.
// Copyright (C) 2024-present The magforge Authors.
//
// magforge is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// magforge is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL-3.0-or-later
//----------------------------------------------------------------------

package numerics

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Spline is a natural cubic spline over a monotone table of (x,y) pairs.
type Spline struct {
	x, y       []float64
	a, b, c, d []float64 // per-segment coefficients
}

// NewSpline builds a cubic spline through the given monotone-x table,
// solving the standard tridiagonal system for second derivatives via a
// dense gonum solve — adequate for the catalogue-sized tables (tens of
// points) this substrate is used for, grounded on lib/math.go's use of
// gonum/mat for least-squares solves.
func NewSpline(x, y []float64) *Spline {
	n := len(x)
	sp := &Spline{x: append([]float64(nil), x...), y: append([]float64(nil), y...)}
	if n < 3 {
		sp.a, sp.b, sp.c, sp.d = y, make([]float64, n), make([]float64, n), make([]float64, n)
		return sp
	}
	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = x[i+1] - x[i]
	}
	// build tridiagonal system for second derivatives m[1..n-2], natural
	// boundary conditions m[0]=m[n-1]=0.
	A := mat.NewDense(n-2, n-2, nil)
	rhs := mat.NewVecDense(n-2, nil)
	for i := 1; i <= n-2; i++ {
		row := i - 1
		if row > 0 {
			A.Set(row, row-1, h[i-1])
		}
		A.Set(row, row, 2*(h[i-1]+h[i]))
		if row < n-3 {
			A.Set(row, row+1, h[i])
		}
		rhs.SetVec(row, 6*((y[i+1]-y[i])/h[i]-(y[i]-y[i-1])/h[i-1]))
	}
	m := make([]float64, n)
	if n > 2 {
		var sol mat.VecDense
		if err := sol.SolveVec(A, rhs); err == nil {
			for i := 1; i <= n-2; i++ {
				m[i] = sol.AtVec(i - 1)
			}
		}
	}
	sp.a = make([]float64, n-1)
	sp.b = make([]float64, n-1)
	sp.c = make([]float64, n-1)
	sp.d = make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		sp.a[i] = y[i]
		sp.b[i] = (y[i+1]-y[i])/h[i] - h[i]*(2*m[i]+m[i+1])/6
		sp.c[i] = m[i] / 2
		sp.d[i] = (m[i+1] - m[i]) / (6 * h[i])
	}
	return sp
}

// At evaluates the spline at x, clamping to the table's endpoints.
func (sp *Spline) At(xv float64) float64 {
	n := len(sp.x)
	if n == 0 {
		return 0
	}
	if xv <= sp.x[0] {
		return sp.y[0]
	}
	if xv >= sp.x[n-1] {
		return sp.y[n-1]
	}
	if n == 1 || n == 2 {
		if n == 1 {
			return sp.y[0]
		}
		t := (xv - sp.x[0]) / (sp.x[1] - sp.x[0])
		return sp.y[0] + t*(sp.y[1]-sp.y[0])
	}
	i := sort.SearchFloat64s(sp.x, xv) - 1
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	dx := xv - sp.x[i]
	return sp.a[i] + dx*(sp.b[i]+dx*(sp.c[i]+dx*sp.d[i]))
}

// Bilinear interpolates z(x,y) from a rectangular grid. xs and ys must be
// ascending; zs is indexed zs[ix][iy].
func Bilinear(xs, ys []float64, zs [][]float64, x, y float64) float64 {
	ix := clampIndex(xs, x)
	iy := clampIndex(ys, y)
	x0, x1 := xs[ix], xs[min(ix+1, len(xs)-1)]
	y0, y1 := ys[iy], ys[min(iy+1, len(ys)-1)]
	ix1, iy1 := min(ix+1, len(xs)-1), min(iy+1, len(ys)-1)

	tx, ty := 0.0, 0.0
	if x1 != x0 {
		tx = (x - x0) / (x1 - x0)
	}
	if y1 != y0 {
		ty = (y - y0) / (y1 - y0)
	}
	z00, z10 := zs[ix][iy], zs[ix1][iy]
	z01, z11 := zs[ix][iy1], zs[ix1][iy1]
	z0 := z00 + tx*(z10-z00)
	z1 := z01 + tx*(z11-z01)
	return z0 + ty*(z1-z0)
}

func clampIndex(xs []float64, x float64) int {
	i := sort.SearchFloat64s(xs, x)
	if i > 0 {
		i--
	}
	if i > len(xs)-2 {
		i = max(0, len(xs)-2)
	}
	return i
}