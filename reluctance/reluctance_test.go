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

package reluctance

import (
	"math"
	"testing"

	"github.com/magforge/engine/magnetic"
)

func etd49Core(t *testing.T) *magnetic.Core {
	t.Helper()
	shape := &magnetic.CoreShape{
		Name: "ETD49", Family: magnetic.ShapeETD,
		Dimensions: map[string]float64{"A": 11.0e-3, "C": 20.4e-3, "E": 97.4e-3, "B": 19.6e-3, "F": 15.8e-3},
	}
	mat := &magnetic.CoreMaterial{
		Name: "3C97",
		PermeabilityTable: magnetic.PermeabilityTable{BaseMuR: 2300},
	}
	core := &magnetic.Core{ShapeName: "ETD49", Shape: shape, Material: mat, StackCount: 1}
	if err := core.Process(); err != nil {
		t.Fatalf("process: %v", err)
	}
	return core
}

func TestModelFromKeyUnknown(t *testing.T) {
	if _, err := ModelFromKey("nonexistent"); err == nil {
		t.Fatal("expected error for unknown model key")
	}
}

func TestAllModelsRegistered(t *testing.T) {
	for _, key := range []string{"zhang", "partridge", "balakrishnan", "mclyman"} {
		if _, err := ModelFromKey(key); err != nil {
			t.Fatalf("model %q not registered: %v", key, err)
		}
	}
}

func TestInductanceFromTurnsAndGapPositive(t *testing.T) {
	core := etd49Core(t)
	core.Gapping = []magnetic.CoreGap{{Kind: magnetic.GapSubtractive, LengthM: 0.5e-3, SectionWidthM: 15e-3, SectionHeightM: 15e-3}}
	if err := core.Process(); err != nil {
		t.Fatalf("process: %v", err)
	}
	l, err := InductanceFromTurnsAndGap(core, "mclyman", 40, 25, 100e3)
	if err != nil {
		t.Fatalf("inductance: %v", err)
	}
	if l <= 0 || math.IsNaN(l) {
		t.Fatalf("inductance = %v, want positive", l)
	}
}

func TestTurnsFromGapAndInductanceInverse(t *testing.T) {
	core := etd49Core(t)
	core.Gapping = []magnetic.CoreGap{{Kind: magnetic.GapSubtractive, LengthM: 0.5e-3, SectionWidthM: 15e-3, SectionHeightM: 15e-3}}
	if err := core.Process(); err != nil {
		t.Fatalf("process: %v", err)
	}
	lTarget, err := InductanceFromTurnsAndGap(core, "mclyman", 40, 25, 100e3)
	if err != nil {
		t.Fatalf("inductance: %v", err)
	}
	turns, err := TurnsFromGapAndInductance(core, "mclyman", lTarget, 25, 100e3)
	if err != nil {
		t.Fatalf("turns: %v", err)
	}
	if turns < 1 {
		t.Fatalf("turns = %d, want >= 1", turns)
	}
	lGot, err := InductanceFromTurnsAndGap(core, "mclyman", turns, 25, 100e3)
	if err != nil {
		t.Fatalf("inductance: %v", err)
	}
	if math.Abs(lGot-lTarget)/lTarget > 0.05 {
		t.Fatalf("recovered inductance %.6g differs from target %.6g by more than 5%%", lGot, lTarget)
	}
}

func TestInductanceFromTurnsAndGapRejectsNonPositiveTurns(t *testing.T) {
	core := etd49Core(t)
	if _, err := InductanceFromTurnsAndGap(core, "mclyman", 0, 25, 100e3); err == nil {
		t.Fatal("expected error for zero turns")
	}
}

func TestGappingFromTurnsAndInductanceRejectsResidual(t *testing.T) {
	core := etd49Core(t)
	if _, err := GappingFromTurnsAndInductance(core, "mclyman", 40, 2e-4, 25, 100e3, GappingResidual, 1); err == nil {
		t.Fatal("expected error for residual gapping type")
	}
}

func TestGappingFromTurnsAndInductanceGrinded(t *testing.T) {
	core := etd49Core(t)
	gaps, err := GappingFromTurnsAndInductance(core, "mclyman", 40, 2e-4, 25, 100e3, GappingGrinded, 1)
	if err != nil {
		t.Fatalf("gapping: %v", err)
	}
	if len(gaps) != 1 {
		t.Fatalf("len(gaps) = %d, want 1", len(gaps))
	}
	if gaps[0].LengthM <= 0 {
		t.Fatalf("gap length = %v, want positive", gaps[0].LengthM)
	}
}

func TestGappingFromTurnsAndInductanceDistributed(t *testing.T) {
	core := etd49Core(t)
	gaps, err := GappingFromTurnsAndInductance(core, "mclyman", 40, 2e-4, 25, 100e3, GappingDistributed, 3)
	if err != nil {
		t.Fatalf("gapping: %v", err)
	}
	if len(gaps) < 3 || len(gaps)%2 == 0 {
		t.Fatalf("len(gaps) = %d, want an odd count >= 3", len(gaps))
	}
	c := *core
	c.Gapping = gaps
	if err := c.Process(); err != nil {
		t.Fatalf("process distributed gapping: %v", err)
	}
	model, err := ModelFromKey("mclyman")
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	p, err := c.Processed()
	if err != nil {
		t.Fatalf("processed: %v", err)
	}
	sectionSide := gaps[0].SectionWidthM
	windowWidth := 0.0
	if len(p.WindingWindows) > 0 {
		windowWidth = p.WindingWindows[0].WidthM
	}
	f, err := model.FringingFactor(GapGeometry{
		LengthM: gaps[0].LengthM, SectionAreaM2: sectionSide * sectionSide,
		SectionWidthM: sectionSide, SectionHeightM: sectionSide, WindowWidthM: windowWidth,
	})
	if err != nil {
		t.Fatalf("fringing factor: %v", err)
	}
	if f < minDistributedFringingFactor-1e-6 || f > maxDistributedFringingFactor+1e-6 {
		t.Fatalf("single sub-gap fringing factor = %.4g, want within [%.2f, %.2f]", f, minDistributedFringingFactor, maxDistributedFringingFactor)
	}
}
