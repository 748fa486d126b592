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

package catalog

import (
	"math"
	"testing"

	"github.com/magforge/engine/magnetic"
)

func TestCoatingLabelRoundTrip(t *testing.T) {
	cases := []struct {
		label    string
		standard string
	}{
		{"IEC60317-GRADE1", "IEC60317"},
		{"IEC60317-GRADE2", "IEC60317"},
		{"IEC60317-GRADE3", "IEC60317"},
		{"NEMA-MW1000-SINGLE", "NEMA-MW1000"},
		{"NEMA-MW1000-HEAVY", "NEMA-MW1000"},
		{"NEMA-MW1000-TRIPLE", "NEMA-MW1000"},
	}
	for _, tc := range cases {
		coating, err := DecodeCoatingLabel(tc.label)
		if err != nil {
			t.Fatalf("DecodeCoatingLabel(%q): %v", tc.label, err)
		}
		got, err := EncodeCoatingLabel(tc.standard, coating)
		if err != nil {
			t.Fatalf("EncodeCoatingLabel(%q, %+v): %v", tc.standard, coating, err)
		}
		if got != tc.label {
			t.Fatalf("re-encoded label = %q, want %q", got, tc.label)
		}
		reDecoded, err := DecodeCoatingLabel(got)
		if err != nil {
			t.Fatalf("DecodeCoatingLabel(%q) after re-encode: %v", got, err)
		}
		if reDecoded != coating {
			t.Fatalf("round trip lost data: started %+v, ended %+v", coating, reDecoded)
		}
	}
}

func TestEncodeCoatingLabelRejectsUnmatchedLayerCount(t *testing.T) {
	if _, err := EncodeCoatingLabel("IEC60317", magnetic.Coating{NumberLayers: 9}); err == nil {
		t.Fatal("expected error for a layer count no grade defines")
	}
}

// TestEquivalentWireLitzToRound checks scenario S5: a litz bundle reduced
// to an equivalent round conductor by the same-conducting-area rule lands
// within 5% of the expected ~1.6mm diameter.
func TestEquivalentWireLitzToRound(t *testing.T) {
	const wantDiameterM = 1.6e-3
	targetArea := math.Pi * (wantDiameterM / 2) * (wantDiameterM / 2)

	const numberStrands = 100
	strandArea := targetArea / numberStrands
	strandDiameter := 2 * math.Sqrt(strandArea/math.Pi)

	litz := &magnetic.Wire{
		Name: "litz-100x", Kind: magnetic.WireLitz,
		Strand:           &magnetic.RoundDims{ConductingDiameterM: strandDiameter, OuterDiameterM: strandDiameter * 1.05},
		NumberConductors: numberStrands,
	}

	cat := New()
	for _, mm := range []float64{0.5, 1.0, 1.6, 2.0, 2.5, 3.15} {
		d := mm * 1e-3
		name := "round-" + mmName(mm)
		cat.wires[name] = &magnetic.Wire{
			Name: name, Kind: magnetic.WireRound,
			Round: magnetic.RoundDims{ConductingDiameterM: d, OuterDiameterM: d * 1.05},
		}
		cat.wireOrder = append(cat.wireOrder, name)
	}

	got, err := cat.EquivalentWire(litz, magnetic.WireRound)
	if err != nil {
		t.Fatalf("EquivalentWire: %v", err)
	}
	gotDiameter := got.Round.ConductingDiameterM
	if math.Abs(gotDiameter-wantDiameterM)/wantDiameterM > 0.05 {
		t.Fatalf("equivalent round diameter = %.4gmm, want %.4gmm +/-5%%", gotDiameter*1e3, wantDiameterM*1e3)
	}
}

func mmName(mm float64) string {
	switch mm {
	case 0.5:
		return "0p50"
	case 1.0:
		return "1p00"
	case 1.6:
		return "1p60"
	case 2.0:
		return "2p00"
	case 2.5:
		return "2p50"
	case 3.15:
		return "3p15"
	default:
		return "x"
	}
}
