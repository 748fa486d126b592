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

package magnetic

import (
	"math"

	"github.com/magforge/engine/errs"
)

// Magnetic is the top-level design entity of spec.md §3: a core, a coil
// wound on it, the inputs it must satisfy, and the processed outputs
// computed for each operating point.
type Magnetic struct {
	Name    string
	Core    Core
	Coil    Coil
	Inputs  Inputs
	Outputs []Outputs
}

// TurnsRatios returns turns[0]/turns[k+1] for every winding after the
// first (spec.md §3 invariant: turns_ratios(magnetic)[k] =
// turns[0]/turns[k+1]).
func (m Magnetic) TurnsRatios() ([]float64, error) {
	if len(m.Coil.Windings) < 2 {
		return nil, nil
	}
	primary := m.Coil.Windings[0].NumberTurns
	if primary == 0 {
		return nil, errs.New(errs.InvalidInput, "Magnetic.TurnsRatios", "primary winding has zero turns")
	}
	ratios := make([]float64, len(m.Coil.Windings)-1)
	for k, w := range m.Coil.Windings[1:] {
		if w.NumberTurns == 0 {
			return nil, errs.New(errs.InvalidInput, "Magnetic.TurnsRatios", "winding %d has zero turns", k+1)
		}
		ratios[k] = float64(primary) / float64(w.NumberTurns)
	}
	return ratios, nil
}

// CheckTurnsRatios verifies the coil's actual turns ratios against
// Inputs.DesignRequirements.TurnsRatios within relative tolerance tol.
func (m Magnetic) CheckTurnsRatios(tol float64) error {
	want := m.Inputs.DesignRequirements.TurnsRatios
	if len(want) == 0 {
		return nil
	}
	got, err := m.TurnsRatios()
	if err != nil {
		return err
	}
	if len(got) != len(want) {
		return errs.New(errs.InvalidInput, "Magnetic.CheckTurnsRatios",
			"winding count mismatch: have %d ratios, want %d", len(got), len(want))
	}
	for i := range want {
		if want[i] == 0 {
			continue
		}
		if math.Abs(got[i]-want[i])/want[i] > tol {
			return errs.New(errs.InvalidInput, "Magnetic.CheckTurnsRatios",
				"turns ratio %d = %.6g, want %.6g (tol %.3g)", i, got[i], want[i], tol)
		}
	}
	return nil
}

// OutputFor returns the processed Outputs for the named operating point.
func (m Magnetic) OutputFor(operatingPointName string) (Outputs, bool) {
	for _, o := range m.Outputs {
		if o.OperatingPointName == operatingPointName {
			return o, true
		}
	}
	return Outputs{}, false
}