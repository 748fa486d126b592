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

package winding

import (
	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
)

// DCResistance returns the DC resistance (ohm) of lengthM of one wire
// (one parallel strand) given the material resistivity at temperature tC.
func DCResistance(w *magnetic.Wire, material *magnetic.WireMaterial, lengthM, tC float64) (float64, error) {
	if w == nil || material == nil {
		return 0, errs.New(errs.InvalidInput, "winding.DCResistance", "wire and material are required")
	}
	area := w.ConductingArea()
	if area <= 0 {
		return 0, errs.New(errs.InvalidInput, "winding.DCResistance", "wire has non-positive conducting area")
	}
	rho := material.ResistivityAt(tC)
	return rho * lengthM / area, nil
}

// CurrentPerParallel splits a winding's total current evenly across its
// parallel strands (spec.md §4.6's "current divider per turn"); uneven
// parallel-strand current sharing from differing path lengths is not
// modeled (spec.md Non-goals).
func CurrentPerParallel(totalCurrentA float64, numberParallels int) float64 {
	if numberParallels < 1 {
		numberParallels = 1
	}
	return totalCurrentA / float64(numberParallels)
}
