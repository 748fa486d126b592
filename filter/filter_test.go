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

package filter

import (
	"testing"

	"github.com/magforge/engine/magnetic"
)

func sampleMagnetic(t *testing.T) *magnetic.Magnetic {
	t.Helper()
	shape := &magnetic.CoreShape{
		Name: "ETD49", Family: magnetic.ShapeETD,
		Dimensions: map[string]float64{"A": 11e-3, "C": 20.4e-3, "E": 97.4e-3, "B": 19.6e-3, "F": 15.8e-3},
	}
	core := magnetic.Core{ShapeName: "ETD49", Shape: shape, StackCount: 1}
	if err := core.Process(); err != nil {
		t.Fatalf("process: %v", err)
	}

	wire := &magnetic.Wire{Kind: magnetic.WireRound, Round: magnetic.RoundDims{ConductingDiameterM: 0.5e-3, OuterDiameterM: 0.55e-3}}
	coil := magnetic.Coil{Windings: []magnetic.Winding{
		{Name: "primary", NumberTurns: 10, NumberParallels: 1, Wire: wire},
		{Name: "secondary", NumberTurns: 5, NumberParallels: 1, Wire: wire},
	}}

	current := magnetic.SignalDescriptor{Waveform: magnetic.Waveform{Label: magnetic.WaveformSinusoidal, FrequencyHz: 100e3}}
	current.Process()
	voltage := magnetic.SignalDescriptor{Waveform: magnetic.Waveform{Label: magnetic.WaveformSquare, FrequencyHz: 100e3}}
	voltage.Process()

	op := magnetic.OperatingPoint{
		Name:         "nominal",
		AmbientTempC: 25,
		Excitations: []magnetic.OperatingPointExcitation{
			{WindingIndex: 0, Current: current, Voltage: voltage},
			{WindingIndex: 1, Current: current, Voltage: voltage},
		},
	}

	inputs := magnetic.Inputs{
		DesignRequirements: magnetic.DesignRequirements{
			TurnsRatios: []float64{2},
		},
		OperatingPoints: []magnetic.OperatingPoint{op},
	}

	out := magnetic.Outputs{
		OperatingPointName:     "nominal",
		CoreLosses:             magnetic.CoreLossOutput{TotalLossesW: 0.5},
		WindingLosses: []magnetic.WindingLossOutput{
			{WindingIndex: 0, DCLossesW: 0.1, SkinLossesW: 0.02, ProximityLossesW: 0.01, TotalLossesW: 0.13},
			{WindingIndex: 1, DCLossesW: 0.05, SkinLossesW: 0.01, ProximityLossesW: 0.005, TotalLossesW: 0.065},
		},
		TotalLossesW:           0.695,
		MagnetizingInductanceH: 1e-3,
		CoreTemperatureC:       60,
	}

	return &magnetic.Magnetic{
		Name:    "sample",
		Core:    core,
		Coil:    coil,
		Inputs:  inputs,
		Outputs: []magnetic.Outputs{out},
	}
}

func TestRegisteredNamesIncludesEveryFamily(t *testing.T) {
	names := RegisteredNames()
	want := []string{
		"area_product", "energy_stored", "estimated_cost",
		"core_dc_losses", "core_dc_skin_losses", "losses", "losses_without_proximity",
		"core_minimum_impedance", "turns_ratios", "maximum_dimensions", "saturation",
		"impedance", "magnetizing_inductance", "fringing_factor",
		"area_no_parallels", "area_with_parallels", "effective_resistance",
		"proximity_factor", "skin_losses_density", "solid_insulation_requirements",
		"dc_current_density", "effective_current_density", "magnetomotive_force",
		"volume", "area", "height", "temperature_rise",
		"losses_volume", "volume_delta_t", "losses_volume_delta_t",
		"losses_volume_without_proximity", "volume_delta_t_without_proximity",
		"losses_volume_delta_t_without_proximity",
	}
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, w := range want {
		if !have[w] {
			t.Errorf("RegisteredNames missing %q", w)
		}
	}
}

func TestFromKeyUnknownFilter(t *testing.T) {
	if _, err := FromKey("does_not_exist"); err == nil {
		t.Fatal("expected error for unknown filter key")
	}
}

func TestFromKeyResolvesRegisteredFilter(t *testing.T) {
	f, err := FromKey("volume")
	if err != nil {
		t.Fatalf("FromKey: %v", err)
	}
	if f.Name() != "volume" {
		t.Fatalf("Name() = %q, want volume", f.Name())
	}
}

func TestWeightedScoreComposesAndInvalidates(t *testing.T) {
	ResetCache()
	m := sampleMagnetic(t)

	turnsFilter, err := FromKey("turns_ratios")
	if err != nil {
		t.Fatalf("FromKey: %v", err)
	}
	volumeFilter, err := FromKey("volume")
	if err != nil {
		t.Fatalf("FromKey: %v", err)
	}

	weighted := []Weighted{
		{Filter: turnsFilter, Weight: 1},
		{Filter: volumeFilter, Weight: 0.5},
	}
	valid, score, err := WeightedScore(weighted, m, &m.Inputs, m.Outputs)
	if err != nil {
		t.Fatalf("WeightedScore: %v", err)
	}
	if !valid {
		t.Fatal("expected a matching turns ratio and positive volume to be valid")
	}
	if score <= 0 {
		t.Fatalf("score = %v, want positive", score)
	}

	// Scorings are cached per magnetic pointer, so drop the cache before
	// re-scoring the same magnetic against changed requirements.
	m.Inputs.DesignRequirements.TurnsRatios = []float64{99}
	ResetCache()
	valid, _, err = WeightedScore(weighted, m, &m.Inputs, m.Outputs)
	if err != nil {
		t.Fatalf("WeightedScore: %v", err)
	}
	if valid {
		t.Fatal("expected mismatched turns ratio to invalidate the candidate")
	}
}

func TestEvaluateCachedReturnsStableResultPerMagnetic(t *testing.T) {
	ResetCache()
	m := sampleMagnetic(t)
	f, err := FromKey("volume")
	if err != nil {
		t.Fatalf("FromKey: %v", err)
	}

	_, first, err := evaluateCached(f, m, &m.Inputs, m.Outputs)
	if err != nil {
		t.Fatalf("evaluateCached: %v", err)
	}

	// Mutate the core after the first evaluation; a cached result must
	// not reflect the mutation since the cache key is the magnetic's
	// pointer identity, not its contents.
	m.Core.StackCount = 4

	_, second, err := evaluateCached(f, m, &m.Inputs, m.Outputs)
	if err != nil {
		t.Fatalf("evaluateCached: %v", err)
	}
	if first != second {
		t.Fatalf("cached volume changed after mutation: %v vs %v", first, second)
	}

	// Core.Processed returns the geometry cached by the last Process call,
	// so reprocess the mutated core before re-scoring it.
	ResetCache()
	if err := m.Core.Process(); err != nil {
		t.Fatalf("process: %v", err)
	}
	_, third, err := evaluateCached(f, m, &m.Inputs, m.Outputs)
	if err != nil {
		t.Fatalf("evaluateCached: %v", err)
	}
	if third == second {
		t.Fatalf("expected ResetCache to force recomputation against the mutated core")
	}
}
