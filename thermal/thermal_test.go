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

package thermal

import (
	"math"
	"testing"

	"github.com/magforge/engine/magnetic"
)

func TestCoreTemperatureScenarioS2(t *testing.T) {
	model, err := ThermalModelFromKey("maniktala")
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	const veM3 = 24.0e-6 // ~24 cm^3, ETD49
	got, err := CoreTemperature(model, 25, 1.44, veM3, 0)
	if err != nil {
		t.Fatalf("CoreTemperature: %v", err)
	}
	want := 59.0
	if math.Abs(got-want)/want > 0.60 {
		t.Fatalf("core temp = %.6gC, want %.6gC +/-60%%", got, want)
	}
}

func TestBFromLossInverse(t *testing.T) {
	model, err := CoreLossModelFromKey("steinmetz")
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	sp := magnetic.SteinmetzPoint{K: 1.5, Alpha: 1.3, Beta: 2.5}
	const fHz = 100e3
	bTarget := 0.15
	loss, err := model.LossDensity(sp, bTarget, fHz)
	if err != nil {
		t.Fatalf("LossDensity: %v", err)
	}
	bGot, err := BFromLoss(model, sp, loss, fHz, 0.4)
	if err != nil {
		t.Fatalf("BFromLoss: %v", err)
	}
	if math.Abs(bGot-bTarget)/bTarget > 0.01 {
		t.Fatalf("B recovered = %.6gT, want %.6gT +/-1%%", bGot, bTarget)
	}
}

func TestAllThermalModelsRegistered(t *testing.T) {
	for _, name := range []string{"kazimierczuk", "maniktala", "tdk", "dixon", "amidon"} {
		if _, err := ThermalModelFromKey(name); err != nil {
			t.Fatalf("thermal model %q not registered: %v", name, err)
		}
	}
}

func TestAllCoreLossModelsRegistered(t *testing.T) {
	for _, name := range []string{"steinmetz", "igse", "mse", "loss_factor", "roshen", "tabular"} {
		if _, err := CoreLossModelFromKey(name); err != nil {
			t.Fatalf("core-loss model %q not registered: %v", name, err)
		}
	}
}

func TestTabularModelInterpolatesLossSurface(t *testing.T) {
	model, err := CoreLossModelFromKey("tabular")
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	sp := magnetic.SteinmetzPoint{Surface: &magnetic.LossSurface{
		LogFreqHz: []float64{math.Log10(50e3), math.Log10(200e3)},
		LogBPeakT: []float64{math.Log10(0.05), math.Log10(0.2)},
		LogLossWM3: [][]float64{
			{math.Log10(10e3), math.Log10(100e3)},
			{math.Log10(40e3), math.Log10(400e3)},
		},
	}}
	got, err := model.LossDensity(sp, 0.1, 100e3)
	if err != nil {
		t.Fatalf("LossDensity: %v", err)
	}
	if got <= 10e3 || got >= 400e3 {
		t.Fatalf("loss density = %.6g, want strictly within the surface's corner values", got)
	}
}

func TestTabularModelRejectsMissingSurface(t *testing.T) {
	model, err := CoreLossModelFromKey("tabular")
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	if _, err := model.LossDensity(magnetic.SteinmetzPoint{}, 0.1, 100e3); err == nil {
		t.Fatal("expected error for material with no tabulated loss surface")
	}
}
