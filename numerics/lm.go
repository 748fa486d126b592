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
	"math"

	"gonum.org/v1/gonum/mat"
)

// Residual is a caller-supplied residual function for Levenberg-Marquardt:
// given parameters x, it returns the vector of residuals to minimize in
// the least-squares sense.
type Residual func(x []float64) []float64

// LMResult is the outcome of a Levenberg-Marquardt run.
type LMResult struct {
	X         []float64
	Cost      float64
	Iters     int
	Converged bool
}

// LevenbergMarquardt minimizes sum(residual(x)^2) starting from x0,
// generalizing the normal-equations least-squares solve the teacher
// performs directly in lib/math.go's BestFitSphere (there a single
// linear solve; here, an iterated, damped Gauss-Newton step using a
// numerically-differenced Jacobian, since the physics core's residuals
// — e.g. core-loss-curve fits, wire-equivalence searches — are
// nonlinear in their parameters).
func LevenbergMarquardt(residual Residual, x0 []float64) (LMResult, error) {
	n := len(x0)
	x := append([]float64(nil), x0...)
	r := residual(x)
	m := len(r)
	lambda := 1e-3
	const maxIter = 200
	const h = 1e-6

	cost := sumSq(r)
	for iter := 0; iter < maxIter; iter++ {
		// numerically differenced Jacobian (m x n)
		J := mat.NewDense(m, n, nil)
		for j := 0; j < n; j++ {
			xp := append([]float64(nil), x...)
			step := h * math.Max(1, math.Abs(xp[j]))
			xp[j] += step
			rp := residual(xp)
			for i := 0; i < m; i++ {
				J.Set(i, j, (rp[i]-r[i])/step)
			}
		}
		var JT mat.Dense
		JT.CloneFrom(J.T())
		var JTJ mat.Dense
		JTJ.Mul(&JT, J)
		for d := 0; d < n; d++ {
			JTJ.Set(d, d, JTJ.At(d, d)*(1+lambda))
		}
		rVec := mat.NewVecDense(m, r)
		var JTr mat.VecDense
		JTr.MulVec(&JT, rVec)

		var delta mat.VecDense
		if err := delta.SolveVec(&JTJ, &JTr); err != nil {
			lambda *= 10
			if lambda > 1e12 {
				return LMResult{X: x, Cost: cost, Iters: iter}, errDiverged
			}
			continue
		}
		xNew := make([]float64, n)
		for j := range xNew {
			xNew[j] = x[j] - delta.AtVec(j)
		}
		rNew := residual(xNew)
		costNew := sumSq(rNew)
		if costNew < cost {
			converged := math.Abs(cost-costNew) < 1e-14 || relChange(delta, xNew) < 1e-8
			x, r, cost = xNew, rNew, costNew
			lambda = math.Max(lambda/10, 1e-12)
			if converged {
				return LMResult{X: x, Cost: cost, Iters: iter + 1, Converged: true}, nil
			}
		} else {
			lambda *= 10
			if lambda > 1e12 {
				return LMResult{X: x, Cost: cost, Iters: iter, Converged: true}, nil
			}
		}
	}
	return LMResult{X: x, Cost: cost, Iters: maxIter}, errDiverged
}

func sumSq(v []float64) float64 {
	s := 0.0
	for _, vi := range v {
		s += vi * vi
	}
	return s
}

func relChange(delta mat.VecDense, x []float64) float64 {
	num, den := 0.0, 0.0
	for i := 0; i < delta.Len(); i++ {
		num += math.Abs(delta.AtVec(i))
		den += math.Abs(x[i])
	}
	if den == 0 {
		return num
	}
	return num / den
}

type divergedErr struct{}

func (divergedErr) Error() string { return "Diverged: levenberg-marquardt exceeded iteration budget" }

var errDiverged = divergedErr{}