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

package mesh

import (
	"testing"

	"github.com/magforge/engine/magnetic"
)

func buildTestCore(t *testing.T) *magnetic.Core {
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

func buildTestCoil(t *testing.T) *magnetic.Coil {
	t.Helper()
	wire := &magnetic.Wire{Kind: magnetic.WireRound, Round: magnetic.RoundDims{ConductingDiameterM: 0.5e-3, OuterDiameterM: 0.55e-3}}
	coil := &magnetic.Coil{Windings: []magnetic.Winding{{Name: "primary", NumberTurns: 2, NumberParallels: 1, Wire: wire}}}
	turns := []magnetic.Turn{
		{WindingIndex: 0, CoordinateM: [3]float64{1e-3, 1e-3, 0}},
		{WindingIndex: 0, CoordinateM: [3]float64{1e-3, 2e-3, 0}},
	}
	coil.SetWound(turns, nil, nil, true)
	return coil
}

func TestBuildProducesOneFilamentPerTurnPlusMirrors(t *testing.T) {
	core := buildTestCore(t)
	coil := buildTestCoil(t)
	m, err := Build(coil, core, []float64{1.0})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(m.Points) != 2 {
		t.Fatalf("len(Points) = %d, want 2", len(m.Points))
	}
	if len(m.Filaments) < 2 {
		t.Fatalf("len(Filaments) = %d, want at least 2 real filaments", len(m.Filaments))
	}
}

func TestMirrorCurrentMultiplierDecaysWithOrder(t *testing.T) {
	const muR = 2300.0
	m1 := mirrorCurrentMultiplier(muR, 1, 0)
	m2 := mirrorCurrentMultiplier(muR, 2, 1)
	if m1 <= 0 || m1 >= 1 {
		t.Fatalf("order-1 multiplier = %v, want in (0, 1)", m1)
	}
	if m2 >= m1 {
		t.Fatalf("order-2 multiplier %v should be smaller than order-1 %v", m2, m1)
	}
	if mult := mirrorCurrentMultiplier(1, 1, 0); mult != 0 {
		t.Fatalf("mu_r == order multiplier = %v, want 0", mult)
	}
}

func TestBuildRejectsOutOfRangeWindingIndex(t *testing.T) {
	core := buildTestCore(t)
	coil := buildTestCoil(t)
	coil.SetWound([]magnetic.Turn{{WindingIndex: 5}}, nil, nil, true)
	if _, err := Build(coil, core, []float64{1.0}); err == nil {
		t.Fatal("expected error for out-of-range winding index")
	}
}
