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
	"testing"

	"github.com/magforge/engine/magnetic"
)

func scenarioS6() Requirement {
	return Requirement{
		Standards:           []magnetic.InsulationStandard{magnetic.StandardIEC60664_1},
		InsulationType:      magnetic.InsulationBasic,
		PollutionDegree:     2,
		CTIGroup:            2,
		OvervoltageCategory: magnetic.OVCIII,
		Wiring:              WiringWound,
		AltitudeM:           2000,
		FrequencyHz:         50,
		MainsVoltageRMS:     230,
		WorkingVoltageRMS:   230,
		WorkingVoltagePeak:  325,
	}
}

func TestScenarioS6ClearanceAndCreepage(t *testing.T) {
	res, err := Coordinate(scenarioS6())
	if err != nil {
		t.Fatalf("Coordinate: %v", err)
	}
	if res.ClearanceM < 1.4e-3 {
		t.Fatalf("clearance = %.6gm, want >= 1.4mm", res.ClearanceM)
	}
	if res.CreepageM < 1.8e-3 {
		t.Fatalf("creepage = %.6gm, want >= 1.8mm", res.CreepageM)
	}
}

func TestCreepageReinforcedAtLeastDoubleBasic(t *testing.T) {
	basicReq := scenarioS6()
	basicReq.InsulationType = magnetic.InsulationBasic
	basic, err := Creepage(basicReq)
	if err != nil {
		t.Fatalf("Creepage basic: %v", err)
	}

	reinforcedReq := scenarioS6()
	reinforcedReq.InsulationType = magnetic.InsulationReinforced
	reinforced, err := Creepage(reinforcedReq)
	if err != nil {
		t.Fatalf("Creepage reinforced: %v", err)
	}

	if reinforced < 2*basic {
		t.Fatalf("creepage(reinforced) = %.6g, want >= 2*creepage(basic) = %.6g", reinforced, 2*basic)
	}
}

func TestClearanceMonotoneInVoltage(t *testing.T) {
	low := scenarioS6()
	low.MainsVoltageRMS = 100
	high := scenarioS6()
	high.MainsVoltageRMS = 500

	cLow, err := Clearance(low)
	if err != nil {
		t.Fatalf("Clearance low: %v", err)
	}
	cHigh, err := Clearance(high)
	if err != nil {
		t.Fatalf("Clearance high: %v", err)
	}
	if cHigh < cLow {
		t.Fatalf("clearance not monotone in voltage: low=%.6g high=%.6g", cLow, cHigh)
	}
}

func TestClearanceMonotoneInAltitudeAbove2000(t *testing.T) {
	req2000 := scenarioS6()
	req2000.AltitudeM = 2000
	req4000 := scenarioS6()
	req4000.AltitudeM = 4000

	c2000, err := Clearance(req2000)
	if err != nil {
		t.Fatalf("Clearance 2000m: %v", err)
	}
	c4000, err := Clearance(req4000)
	if err != nil {
		t.Fatalf("Clearance 4000m: %v", err)
	}
	if c4000 < c2000 {
		t.Fatalf("clearance not monotone in altitude: 2000m=%.6g 4000m=%.6g", c2000, c4000)
	}
}

func TestClearanceMonotoneInPollutionDegree(t *testing.T) {
	var prev float64
	for _, pd := range []magnetic.PollutionDegree{1, 2, 3} {
		req := scenarioS6()
		req.PollutionDegree = pd
		c, err := Clearance(req)
		if err != nil {
			t.Fatalf("Clearance P%d: %v", pd, err)
		}
		if c < prev {
			t.Fatalf("clearance not monotone in pollution degree at P%d: %.6g < %.6g", pd, c, prev)
		}
		prev = c
	}
}
