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

package leakage

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/magforge/engine/magnetic"
)

func twoWindingCore(t *testing.T) *magnetic.Core {
	t.Helper()
	shape := &magnetic.CoreShape{
		Name: "ETD49", Family: magnetic.ShapeETD,
		Dimensions: map[string]float64{"A": 11e-3, "C": 20.4e-3, "E": 97.4e-3, "B": 19.6e-3, "F": 15.8e-3},
	}
	core := &magnetic.Core{ShapeName: "ETD49", Shape: shape, StackCount: 1}
	if err := core.Process(); err != nil {
		t.Fatalf("process: %v", err)
	}
	return core
}

func twoWindingCoil(t *testing.T) *magnetic.Coil {
	t.Helper()
	wire := &magnetic.Wire{Kind: magnetic.WireRound, Round: magnetic.RoundDims{ConductingDiameterM: 0.5e-3, OuterDiameterM: 0.55e-3}}
	coil := &magnetic.Coil{Windings: []magnetic.Winding{
		{Name: "primary", NumberTurns: 2, NumberParallels: 1, Wire: wire},
		{Name: "secondary", NumberTurns: 2, NumberParallels: 1, Wire: wire},
	}}
	turns := []magnetic.Turn{
		{WindingIndex: 0, CoordinateM: [3]float64{1e-3, 1e-3, 0}},
		{WindingIndex: 0, CoordinateM: [3]float64{1e-3, 2e-3, 0}},
		{WindingIndex: 1, CoordinateM: [3]float64{2e-3, 1e-3, 0}},
		{WindingIndex: 1, CoordinateM: [3]float64{2e-3, 2e-3, 0}},
	}
	coil.SetWound(turns, nil, nil, true)
	return coil
}

func TestLeakageInductancePositive(t *testing.T) {
	core := twoWindingCore(t)
	coil := twoWindingCoil(t)
	l, err := LeakageInductance(coil, core, 0, 1.0, "binns_lawrenson")
	if err != nil {
		t.Fatalf("LeakageInductance: %v", err)
	}
	if l <= 0 || math.IsNaN(l) {
		t.Fatalf("leakage inductance = %v, want positive finite", l)
	}
}

func TestLeakageInductanceRejectsOutOfRangeWinding(t *testing.T) {
	core := twoWindingCore(t)
	coil := twoWindingCoil(t)
	if _, err := LeakageInductance(coil, core, 5, 1.0, "binns_lawrenson"); err == nil {
		t.Fatal("expected error for out-of-range winding index")
	}
}

func TestImpedanceAndSelfResonantBound(t *testing.T) {
	p := Parameters{
		DCResistanceOhm:        0.2,
		SkinFactor:             1.1,
		MagnetizingInductanceH: 1e-3,
		LeakageInductanceH:     1e-6,
		SelfCapacitanceF:       10e-12,
	}
	z, err := Impedance(p, 100e3)
	if err != nil {
		t.Fatalf("Impedance: %v", err)
	}
	if real(z) <= 0 || imag(z) <= 0 {
		t.Fatalf("Z = %v, want positive real and imaginary parts", z)
	}

	srf, err := p.SelfResonantFrequencyHz()
	if err != nil {
		t.Fatalf("SelfResonantFrequencyHz: %v", err)
	}
	ok, err := WithinSelfResonantBound(p, 0.1*srf)
	if err != nil {
		t.Fatalf("WithinSelfResonantBound: %v", err)
	}
	if !ok {
		t.Fatalf("0.1*srf should be within the 25%% bound")
	}
	ok, err = WithinSelfResonantBound(p, 0.5*srf)
	if err != nil {
		t.Fatalf("WithinSelfResonantBound: %v", err)
	}
	if ok {
		t.Fatalf("0.5*srf should exceed the 25%% bound")
	}
}

func TestReflectionRoundTrip(t *testing.T) {
	z0 := complex(50, 0)
	z := complex(75, 25)
	g := ToReflection(z, z0)
	back := FromReflection(g, z0)
	if cmplx.Abs(back-z) > 1e-9 {
		t.Fatalf("round trip: got %v, want %v", back, z)
	}
	if v := VSWR(g); math.IsNaN(v) || v < 1 {
		t.Fatalf("VSWR = %v, want >= 1", v)
	}
}
