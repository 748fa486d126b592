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

package insulation

import (
	"math"

	"github.com/magforge/engine/magnetic"
)

// recurring-peak and temporary-overvoltage factors of spec.md §4.9.
const (
	factorF1 = 1.2
	factorF3 = 1.25
	factorF4 = 1.1
)

// SolidInsulationVoltage returns the maximum of the transient, temporary,
// recurring-peak and steady-state-peak components, per spec.md §4.9.
func SolidInsulationVoltage(req Requirement) float64 {
	reinforced := isReinforcing(req.InsulationType)

	transient := transientOvervoltage(req.OvervoltageCategory, req.MainsVoltageRMS)

	temporary := req.WorkingVoltageRMS + 1200
	if reinforced {
		temporary = 2 * (req.WorkingVoltageRMS + 1200)
	}

	f1 := factorF1
	if reinforced {
		f1 *= factorF3
	}
	recurringPeak := f1 * req.WorkingVoltagePeak

	steadyState := factorF4 * req.WorkingVoltagePeak
	if steadyState < req.WorkingVoltagePeak {
		steadyState = req.WorkingVoltagePeak
	}

	return math.Max(math.Max(transient, temporary), math.Max(recurringPeak, steadyState))
}

// transientOvervoltage returns IEC 60664-1 Table F.1's rated impulse
// withstand voltage for the mains supply's overvoltage category, keyed
// by the nominal mains RMS voltage bin.
func transientOvervoltage(ovc magnetic.OvervoltageCategory, mainsVoltageRMS float64) float64 {
	bins := []struct {
		maxRMS          float64
		ovcI, ovcII, ovcIII, ovcIV float64
	}{
		{50, 330, 500, 800, 1500},
		{150, 800, 1500, 2500, 4000},
		{300, 1500, 2500, 4000, 6000},
		{600, 2500, 4000, 6000, 8000},
		{1000, 4000, 6000, 8000, 12000},
	}
	row := bins[len(bins)-1]
	for _, b := range bins {
		if mainsVoltageRMS <= b.maxRMS {
			row = b
			break
		}
	}
	switch ovc {
	case magnetic.OVCI:
		return row.ovcI
	case magnetic.OVCII:
		return row.ovcII
	case magnetic.OVCIII:
		return row.ovcIII
	default:
		return row.ovcIV
	}
}
