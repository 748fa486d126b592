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

package field

import (
	"math"
	"testing"
)

func TestModelFromKeyRegistersAllFour(t *testing.T) {
	for _, key := range []string{"binns_lawrenson", "lammeraner", "wang", "albach"} {
		if _, err := ModelFromKey(key); err != nil {
			t.Fatalf("model %q not registered: %v", key, err)
		}
	}
}

// TestFilamentMidpointConsistency checks the two-opposite-filament
// consistency property: two line filaments of equal and opposite current
// I separated by d produce, by symmetry, a field at their midpoint equal
// to twice the single-filament field at distance d/2 (spec.md §8
// testable property 6's filament-consistency check).
func TestFilamentMidpointConsistency(t *testing.T) {
	const I = 2.5
	const d = 4e-3
	filaments := []Filament{
		{XM: 0, YM: 0, CurrentA: I},
		{XM: d, YM: 0, CurrentA: -I},
	}
	model, err := ModelFromKey("binns_lawrenson")
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	hx, hy, err := model.HField(filaments, d/2, 0)
	if err != nil {
		t.Fatalf("HField: %v", err)
	}
	got := math.Hypot(hx, hy)
	want := 2 * I / (2 * math.Pi * (d / 2))
	if math.Abs(got-want)/want > 1e-6 {
		t.Fatalf("|H| at midpoint = %.9g, want %.9g", got, want)
	}
}

func TestHFieldNotNaNAwayFromSource(t *testing.T) {
	filaments := []Filament{{XM: 0, YM: 0, CurrentA: 1.0}}
	for _, name := range RegisteredModels() {
		model, _ := ModelFromKey(name)
		hx, hy, err := model.HField(filaments, 1e-3, 1e-3)
		if err != nil {
			t.Fatalf("%s: HField error: %v", name, err)
		}
		if math.IsNaN(hx) || math.IsNaN(hy) {
			t.Fatalf("%s: NaN field component", name)
		}
	}
}
