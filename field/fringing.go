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

package field

import (
	"math"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/numerics"
)

// RoshenFringingFlux estimates the additional fringing-field energy near
// a gap, following Roshen's semi-empirical gap-loss formula: an
// effective extra H contribution proportional to gap length and
// inversely proportional to the square of the distance from the gap.
func RoshenFringingFlux(gapLengthM, currentA, distanceM float64) (float64, error) {
	if gapLengthM <= 0 || distanceM <= 0 {
		return 0, errs.New(errs.InvalidInput, "field.RoshenFringingFlux", "gap length and distance must be positive")
	}
	h := currentA * gapLengthM / (2 * math.Pi * distanceM * distanceM)
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, errs.New(errs.NaNResult, "field.RoshenFringingFlux", "non-physical fringing field")
	}
	return h, nil
}

// AlbachFringingFactor gives Albach's fundamental-harmonic fringing
// correction to gap-edge eddy-current loss, using the elliptic integral
// K to capture the field's non-uniformity across the gap mouth.
func AlbachFringingFactor(gapLengthM, sectionWidthM float64) (float64, error) {
	if gapLengthM <= 0 || sectionWidthM <= 0 {
		return 0, errs.New(errs.InvalidInput, "field.AlbachFringingFactor", "gap length and section width must be positive")
	}
	k := gapLengthM / (gapLengthM + sectionWidthM)
	if k >= 1 {
		return 0, errs.New(errs.InvalidInput, "field.AlbachFringingFactor", "degenerate gap/section ratio")
	}
	factor := 1 + (2/math.Pi)*numerics.EllipticK(k)
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return 0, errs.New(errs.NaNResult, "field.AlbachFringingFactor", "non-physical fringing factor")
	}
	return factor, nil
}

// SullivanFringingLossFactor follows Sullivan's approach of bounding the
// fringing-loss contribution by an iteration on harmonic order, guarding
// against divergence when the series fails to settle within budget
// iterations.
func SullivanFringingLossFactor(gapLengthM, conductorDistanceM float64, budget int) (float64, error) {
	if budget <= 0 {
		budget = 50
	}
	sum, term := 0.0, 1.0
	ratio := gapLengthM / (gapLengthM + conductorDistanceM)
	for i := 1; i <= budget; i++ {
		term *= ratio / float64(i)
		sum += term
		if term < 1e-12 {
			return sum, nil
		}
	}
	return 0, errs.New(errs.Diverged, "field.SullivanFringingLossFactor", "series did not converge within %d terms", budget)
}
