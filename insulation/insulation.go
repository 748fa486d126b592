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

// Package insulation coordinates solid insulation voltage, clearance and
// creepage requirements across IEC 60664-1/-4/-5 and IEC 62368-1, per a
// design's insulation type, overvoltage category, pollution degree, CTI
// group, altitude and working voltage.
package insulation

import (
	"math"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
)

// WiringTechnology distinguishes wound (F.2/F.5) from printed (60664-5)
// conductor routing, which use different clearance/creepage tables.
type WiringTechnology int

const (
	WiringWound WiringTechnology = iota
	WiringPrinted
)

// Requirement is the full set of inputs needed to coordinate insulation
// for one winding pair, mirroring spec.md §4.9's input list.
type Requirement struct {
	Standards           []magnetic.InsulationStandard
	InsulationType      magnetic.InsulationType
	PollutionDegree     magnetic.PollutionDegree
	CTIGroup            int
	OvervoltageCategory magnetic.OvervoltageCategory
	Wiring              WiringTechnology
	AltitudeM           float64
	FrequencyHz         float64
	MainsVoltageRMS     float64
	WorkingVoltageRMS   float64
	WorkingVoltagePeak  float64
}

// Result is the coordinated insulation requirement: the worst case (the
// maximum) across every requested standard.
type Result struct {
	SolidInsulationVoltageV float64
	ClearanceM              float64
	CreepageM               float64
}

// Coordinate evaluates every standard named in req.Standards and returns
// the worst-case (largest) clearance, creepage and solid-insulation
// voltage across them, per spec.md §4.9's closing instruction.
func Coordinate(req Requirement) (Result, error) {
	if req.PollutionDegree < 1 || req.PollutionDegree > 3 {
		return Result{}, errs.New(errs.InvalidInput, "insulation.Coordinate", "pollution degree must be 1..3")
	}
	if len(req.Standards) == 0 {
		req.Standards = []magnetic.InsulationStandard{magnetic.StandardIEC60664_1}
	}

	var result Result
	for _, std := range req.Standards {
		var r Result
		var err error
		switch std {
		case magnetic.StandardIEC62368_1:
			r, err = coordinateIEC62368(req)
		default:
			r, err = coordinateIEC60664(req)
		}
		if err != nil {
			return Result{}, err
		}
		result.SolidInsulationVoltageV = math.Max(result.SolidInsulationVoltageV, r.SolidInsulationVoltageV)
		result.ClearanceM = math.Max(result.ClearanceM, r.ClearanceM)
		result.CreepageM = math.Max(result.CreepageM, r.CreepageM)
	}
	return result, nil
}

// coordinateIEC60664 implements the IEC 60664-1/-4/-5 path.
func coordinateIEC60664(req Requirement) (Result, error) {
	voltage := SolidInsulationVoltage(req)
	clearance, err := Clearance(req)
	if err != nil {
		return Result{}, err
	}
	creepage, err := Creepage(req)
	if err != nil {
		return Result{}, err
	}
	// enforce creepage >= clearance unless pollution degree permits
	// otherwise (spec.md §4.9), P1/P2 allow a thin, well-controlled
	// creepage path shorter than the clearance in unusual geometries.
	if req.PollutionDegree >= 3 && creepage < clearance {
		creepage = clearance
	}
	return Result{SolidInsulationVoltageV: voltage, ClearanceM: clearance, CreepageM: creepage}, nil
}

// coordinateIEC62368 applies the same table lookups but replicates the
// parallel-path selection of IEC 62368-1 (the larger of the working-
// voltage and transient-mains procedures), per spec.md §4.9.
func coordinateIEC62368(req Requirement) (Result, error) {
	viaWorking, err := coordinateIEC60664(req)
	if err != nil {
		return Result{}, err
	}
	transientReq := req
	transientReq.WorkingVoltageRMS = req.MainsVoltageRMS
	viaMains, err := coordinateIEC60664(transientReq)
	if err != nil {
		return Result{}, err
	}
	return Result{
		SolidInsulationVoltageV: math.Max(viaWorking.SolidInsulationVoltageV, viaMains.SolidInsulationVoltageV),
		ClearanceM:              math.Max(viaWorking.ClearanceM, viaMains.ClearanceM),
		CreepageM:               math.Max(viaWorking.CreepageM, viaMains.CreepageM),
	}, nil
}

func isReinforcing(t magnetic.InsulationType) bool {
	return t == magnetic.InsulationReinforced || t == magnetic.InsulationDouble
}
