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
	"math"
	"testing"

	"github.com/magforge/engine/magnetic"
)

func TestSkinDepthScenarioS3(t *testing.T) {
	const rhoCopper20C = 1.678e-8
	got := SkinDepth(rhoCopper20C, 1, 123000)
	want := 186.09e-6
	if math.Abs(got-want)/want > 0.01 {
		t.Fatalf("skin depth = %.6gm, want %.6gm +/-1%%", got, want)
	}
}

func TestDCResistanceScenarioS4(t *testing.T) {
	w := &magnetic.Wire{Kind: magnetic.WireRound, Round: magnetic.RoundDims{ConductingDiameterM: 321.14e-6}}
	mat := &magnetic.WireMaterial{ResistivityOhmM20C: 1.724e-8}
	got, err := DCResistance(w, mat, 1.0, 20)
	if err != nil {
		t.Fatalf("DCResistance: %v", err)
	}
	want := 0.2111
	if math.Abs(got-want)/want > 0.05 {
		t.Fatalf("Rdc = %.6g ohm, want %.6g +/-5%%", got, want)
	}
}

func TestProximityLossFactorNeverNegative(t *testing.T) {
	for _, name := range []string{"ferreira", "wang", "rossmanith", "albach", "lammeraner"} {
		model, err := ProximityModelFromKey(name)
		if err != nil {
			t.Fatalf("model %q: %v", name, err)
		}
		for _, h := range []float64{-500, 0, 1, 1000} {
			f, err := model.LossFactor(0.5e-3, 0.2e-3, h)
			if err != nil {
				t.Fatalf("%s: LossFactor: %v", name, err)
			}
			if f < 0 {
				t.Fatalf("%s: loss factor %.6g is negative for h=%.6g", name, f, h)
			}
		}
	}
}

func TestAllSkinModelsRegistered(t *testing.T) {
	for _, name := range []string{"albach", "wojda", "payne", "kutkut", "ferreira", "lotfi"} {
		if _, err := SkinModelFromKey(name); err != nil {
			t.Fatalf("skin model %q not registered: %v", name, err)
		}
	}
}
