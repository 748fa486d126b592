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

package adviser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/magforge/engine/catalog"
	"github.com/magforge/engine/filter"
	"github.com/magforge/engine/magnetic"
)

func writeNDJSON(t *testing.T, dir, name string, records ...any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode record: %v", err)
		}
	}
	return path
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	dir := t.TempDir()
	cat := catalog.New()

	coresPath := writeNDJSON(t, dir, "cores.ndjson",
		map[string]any{"name": "ETD29", "family": "ETD", "dimensions": map[string]float64{"A": 6.9e-3, "C": 9.9e-3, "E": 69.2e-3, "B": 9.8e-3, "F": 7.9e-3}},
		map[string]any{"name": "ETD49", "family": "ETD", "dimensions": map[string]float64{"A": 11e-3, "C": 20.4e-3, "E": 97.4e-3, "B": 19.6e-3, "F": 15.8e-3}},
	)
	if err := cat.LoadCores(coresPath); err != nil {
		t.Fatalf("LoadCores: %v", err)
	}

	materialsPath := writeNDJSON(t, dir, "core_materials.ndjson",
		map[string]any{
			"name": "3C95", "manufacturer": "ferroxcube", "kind": "ferrite", "baseMuR": 3000,
			"saturationB": []map[string]float64{{"t": 25, "v": 0.47}},
			"steinmetz":   []map[string]float64{{"t": 25, "k": 1.5, "alpha": 1.3, "beta": 2.6}},
		},
	)
	if err := cat.LoadCoreMaterials(materialsPath); err != nil {
		t.Fatalf("LoadCoreMaterials: %v", err)
	}

	wiresPath := writeNDJSON(t, dir, "wires.ndjson",
		map[string]any{
			"name": "round_0.50mm", "kind": "round", "materialName": "copper",
			"conductingDiameterM": 0.5e-3, "outerDiameterM": 0.55e-3,
			"coating": map[string]any{"kind": "enamelled", "numberLayers": 1, "thicknessM": 25e-6, "breakdownVoltageV": 1500, "grade": 1},
		},
		map[string]any{
			"name": "round_0.80mm", "kind": "round", "materialName": "copper",
			"conductingDiameterM": 0.8e-3, "outerDiameterM": 0.87e-3,
			"coating": map[string]any{"kind": "enamelled", "numberLayers": 1, "thicknessM": 30e-6, "breakdownVoltageV": 1500, "grade": 1},
		},
	)
	if err := cat.LoadWires(wiresPath); err != nil {
		t.Fatalf("LoadWires: %v", err)
	}

	wireMaterialsPath := writeNDJSON(t, dir, "wire_materials.ndjson",
		map[string]any{"name": "copper", "resistivityOhmM20C": 1.68e-8, "temperatureCoeff": 0.00393, "relativePermeability": 1, "densityKgM3": 8960},
	)
	if err := cat.LoadWireMaterials(wireMaterialsPath); err != nil {
		t.Fatalf("LoadWireMaterials: %v", err)
	}

	return cat
}

func testTemplate() *magnetic.Magnetic {
	current := magnetic.SignalDescriptor{Waveform: magnetic.Waveform{Label: magnetic.WaveformSinusoidal, FrequencyHz: 100e3}}
	current.Process()
	voltage := magnetic.SignalDescriptor{Waveform: magnetic.Waveform{Label: magnetic.WaveformSquare, FrequencyHz: 100e3}}
	voltage.Process()

	op := magnetic.OperatingPoint{
		Name:         "nominal",
		AmbientTempC: 25,
		Excitations: []magnetic.OperatingPointExcitation{
			{WindingIndex: 0, Current: current, Voltage: voltage},
		},
	}

	return &magnetic.Magnetic{
		Name: "template",
		Coil: magnetic.Coil{Windings: []magnetic.Winding{
			{Name: "primary", NumberTurns: 20, NumberParallels: 1},
		}},
		Inputs: magnetic.Inputs{
			DesignRequirements: magnetic.DesignRequirements{
				MagnetizingInductanceH: [2]float64{50e-6, 200e-6},
			},
			OperatingPoints: []magnetic.OperatingPoint{op},
		},
	}
}

func TestCoreAdviserAdviseReturnsRankedCandidates(t *testing.T) {
	filter.ResetCache()
	cat := testCatalog(t)
	adviser := &CoreAdviser{Catalog: cat, MaxStack: 1}

	candidates, stats, err := adviser.Advise(testTemplate(), 5)
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if stats.Considered == 0 {
		t.Fatal("expected at least one candidate to be considered")
	}
	if len(candidates) == 0 {
		t.Fatal("expected at least one surviving candidate")
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Score < candidates[i-1].Score {
			t.Fatalf("candidates not sorted by ascending score at index %d", i)
		}
	}
}

func TestCoreAdviserDeterministicAcrossRuns(t *testing.T) {
	filter.ResetCache()
	cat := testCatalog(t)
	adviser := &CoreAdviser{Catalog: cat, MaxStack: 1}

	first, _, err := adviser.Advise(testTemplate(), 5)
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	filter.ResetCache()
	second, _, err := adviser.Advise(testTemplate(), 5)
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("candidate counts differ across runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Magnetic.Name != second[i].Magnetic.Name {
			t.Fatalf("candidate order differs at index %d: %q vs %q", i, first[i].Magnetic.Name, second[i].Magnetic.Name)
		}
	}
}

func TestCoilAdviserAssignsWireToEveryWinding(t *testing.T) {
	filter.ResetCache()
	cat := testCatalog(t)
	coreAdviser := &CoreAdviser{Catalog: cat, MaxStack: 1}
	winners, _, err := coreAdviser.Advise(testTemplate(), 1)
	if err != nil {
		t.Fatalf("CoreAdviser.Advise: %v", err)
	}
	if len(winners) == 0 {
		t.Fatal("expected a core candidate to advise windings for")
	}

	coilAdviser := &CoilAdviser{Catalog: cat}
	candidates, stats, err := coilAdviser.Advise(winners[0].Magnetic, 5)
	if err != nil {
		t.Fatalf("CoilAdviser.Advise: %v", err)
	}
	if stats.Considered == 0 {
		t.Fatal("expected at least one wire/parallel combination to be considered")
	}
	for _, c := range candidates {
		for _, w := range c.Magnetic.Coil.Windings {
			if w.Wire == nil {
				t.Fatalf("candidate %q has a winding with no wire assigned", c.Magnetic.Name)
			}
		}
	}
}
