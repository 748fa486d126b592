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
	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
)

// clearanceRow is one bin of IEC 60664-1 Table F.2 (inhomogeneous field,
// pollution degree 2), keyed by the nominal mains RMS voltage feeding
// transientOvervoltage's bin selection and overvoltage category.
type clearanceRow struct {
	maxRMS                     float64
	ovcI, ovcII, ovcIII, ovcIV float64
}

// clearanceTableF2 mirrors the shape of IEC 60664-1's Table F.2: clearance
// in meters for pollution degree 2, increasing with rated impulse
// withstand voltage (i.e. with overvoltage category and mains voltage).
var clearanceTableF2 = []clearanceRow{
	{50, 0.2e-3, 0.5e-3, 0.8e-3, 1.5e-3},
	{150, 0.5e-3, 1.5e-3, 1.5e-3, 3.0e-3},
	{300, 0.8e-3, 1.5e-3, 1.4e-3, 5.5e-3},
	{600, 1.5e-3, 3.0e-3, 5.5e-3, 8.0e-3},
	{1000, 3.0e-3, 5.5e-3, 8.0e-3, 14.0e-3},
}

// pollutionClearanceScale applies IEC 60664-1's pollution-degree scaling
// relative to the Table F.2 pollution-degree-2 baseline.
var pollutionClearanceScale = map[magnetic.PollutionDegree]float64{
	1: 0.8,
	2: 1.0,
	3: 1.6,
}

// Clearance returns the through-air clearance distance required by IEC
// 60664-1, applying the high-frequency correction above 30kHz (60664-4),
// the planar substitution (60664-5) and the altitude correction (A.2)
// above 2000m, per spec.md §4.9.
func Clearance(req Requirement) (float64, error) {
	scale, ok := pollutionClearanceScale[req.PollutionDegree]
	if !ok {
		return 0, errs.New(errs.InvalidInput, "insulation.Clearance", "unsupported pollution degree %d", req.PollutionDegree)
	}

	row := clearanceTableF2[len(clearanceTableF2)-1]
	for _, r := range clearanceTableF2 {
		if req.MainsVoltageRMS <= r.maxRMS {
			row = r
			break
		}
	}
	var base float64
	switch req.OvervoltageCategory {
	case magnetic.OVCI:
		base = row.ovcI
	case magnetic.OVCII:
		base = row.ovcII
	case magnetic.OVCIII:
		base = row.ovcIII
	default:
		base = row.ovcIV
	}
	clearance := base * scale

	if req.Wiring == WiringPrinted && req.AltitudeM <= 2000 {
		// 60664-5 allows a tighter planar clearance at sea-level altitudes
		clearance *= 0.9
	}

	if req.FrequencyHz > 30e3 {
		clearance = highFrequencyClearance(clearance, req.FrequencyHz)
	}

	if req.AltitudeM > 2000 {
		clearance *= altitudeClearanceFactor(req.AltitudeM)
	}

	if isReinforcing(req.InsulationType) {
		clearance *= 2
	}
	return clearance, nil
}

// highFrequencyClearance applies IEC 60664-4's homogeneous-field
// correction above 30kHz: clearance grows roughly linearly with the
// logarithm of frequency beyond the mains-frequency baseline.
func highFrequencyClearance(base, fHz float64) float64 {
	decades := 0.0
	for f := fHz; f > 30e3; f /= 10 {
		decades++
	}
	return base * (1 + 0.15*decades)
}

// altitudeClearanceFactor implements IEC 60664-1 Annex A.2's
// multiplicative correction for altitudes above 2000m.
func altitudeClearanceFactor(altitudeM float64) float64 {
	switch {
	case altitudeM <= 3000:
		return 1.14
	case altitudeM <= 4000:
		return 1.29
	case altitudeM <= 5000:
		return 1.48
	default:
		return 1.70
	}
}
