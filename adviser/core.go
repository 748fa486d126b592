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
	"sort"
	"time"

	"github.com/magforge/engine/catalog"
	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/filter"
	"github.com/magforge/engine/magnetic"
	"github.com/magforge/engine/reluctance"
	"github.com/magforge/engine/settings"
)

// firstFilterWeights assigns a weight to each cheap, output-independent
// geometric filter used for the coarse first cull across every core
// shape/material/stack combination, mirroring the teacher's two-stage
// "compute cheap geometry first, simulate survivors second" Optimize
// loop (lib/model.go).
var firstFilterWeights = []filter.Weighted{
	{Filter: mustFilter("area_product"), Weight: -1},
	{Filter: mustFilter("energy_stored"), Weight: -1},
	{Filter: mustFilter("estimated_cost"), Weight: 1},
}

// remainingFilterWeights score the survivors of the first cull once
// their Outputs have been computed (losses, temperature, impedance).
var remainingFilterWeights = []filter.Weighted{
	{Filter: mustFilter("losses"), Weight: 1},
	{Filter: mustFilter("temperature_rise"), Weight: 1},
	{Filter: mustFilter("turns_ratios"), Weight: 1},
	{Filter: mustFilter("saturation"), Weight: 1},
	{Filter: mustFilter("maximum_dimensions"), Weight: 1},
}

func familyAllowed(family magnetic.CoreShapeFamily, allowed []magnetic.CoreShapeFamily) bool {
	for _, f := range allowed {
		if f == family {
			return true
		}
	}
	return false
}

func mustFilter(key string) filter.Filter {
	f, err := filter.FromKey(key)
	if err != nil {
		panic(err) // keys are compile-time constants registered by filter's init()
	}
	return f
}

// CoreAdviser searches the catalogue's core shapes and materials for
// candidates that satisfy m's design requirements, grounded on the
// teacher's Model.Optimize two-stage search (lib/model.go): a cheap
// geometric cull across every shape/stack/material combination, then a
// full physics evaluation of the survivors.
type CoreAdviser struct {
	Catalog *catalog.Catalog

	// IncludeToroids lets a caller opt in to the toroid family, which
	// has no gapping or stacking degrees of freedom and so is often
	// searched separately.
	IncludeToroids bool

	// MaxStack bounds the stack-count sweep for every non-toroid family;
	// toroids are not stacked (spec.md §4.11's "stacked cores" adviser knob).
	MaxStack int
}

// Advise runs the two-stage search and returns up to n ranked
// candidates plus run statistics. Stacked variants (stack count > 1) are
// only considered if the unstacked pass leaves fewer than n survivors,
// mirroring the teacher's "retry with a wider search only if the first
// pass came up short" adviser loop.
func (a *CoreAdviser) Advise(m *magnetic.Magnetic, n int) ([]Candidate, Stats, error) {
	start := time.Now()
	if a.Catalog == nil {
		return nil, Stats{}, errs.New(errs.InvalidInput, "CoreAdviser.Advise", "no catalogue supplied")
	}
	view := settings.Snapshot()
	maxStack := a.MaxStack
	if maxStack < 1 {
		maxStack = 1
	}
	if !view.IncludeStacks {
		maxStack = 1
	}

	considered := 0
	var candidates []Candidate
	survived := 0
	for stackLimit := 1; stackLimit <= maxStack; stackLimit++ {
		firstPass, n1 := a.buildFirstPass(m, view, stackLimit)
		considered += n1

		sort.Slice(firstPass, func(i, j int) bool {
			_, si, erri := filter.WeightedScore(firstFilterWeights, firstPass[i], &firstPass[i].Inputs, nil)
			_, sj, errj := filter.WeightedScore(firstFilterWeights, firstPass[j], &firstPass[j].Inputs, nil)
			if erri != nil || errj != nil {
				return false
			}
			return si < sj
		})

		ceiling := view.MaxMagneticsAfterFirstFilter
		if ceiling > 0 && len(firstPass) > ceiling {
			firstPass = firstPass[:ceiling]
		}

		candidates = candidates[:0]
		survived = 0
		for _, cand := range firstPass {
			if err := a.assignTurnsAndGap(cand, view); err != nil {
				continue
			}
			outs, err := Evaluate(a.Catalog, cand)
			if err != nil {
				continue
			}
			cand.Outputs = outs
			valid, score, err := filter.WeightedScore(remainingFilterWeights, cand, &cand.Inputs, cand.Outputs)
			if err != nil || !valid {
				continue
			}
			survived++
			candidates = append(candidates, Candidate{Magnetic: cand, Score: score})
		}

		if len(candidates) >= n || stackLimit == maxStack {
			break
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Score < candidates[j].Score })
	if n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}

	return candidates, Stats{Considered: considered, Survived: survived, Elapsed: time.Since(start)}, nil
}

// buildFirstPass enumerates every (shape, material, stack) combination
// up to stackLimit, returning the cheaply-processed candidates and a
// count of how many were considered.
func (a *CoreAdviser) buildFirstPass(m *magnetic.Magnetic, view settings.View, stackLimit int) ([]*magnetic.Magnetic, int) {
	allowedFamilies := m.Inputs.DesignRequirements.AllowedCoreShapes
	materialNames := a.Catalog.CoreMaterialNames()

	considered := 0
	var firstPass []*magnetic.Magnetic
	for _, shapeName := range a.Catalog.CoreShapeNames() {
		shape, ok := a.Catalog.FindCoreShapeByName(shapeName)
		if !ok {
			continue
		}
		if shape.Family == magnetic.ShapeToroid && !a.IncludeToroids {
			continue
		}
		if len(allowedFamilies) > 0 && !familyAllowed(shape.Family, allowedFamilies) {
			continue
		}
		stacks := stackLimit
		if shape.Family == magnetic.ShapeToroid {
			stacks = 1
		}
		for _, materialName := range materialNames {
			material, ok := a.Catalog.FindCoreMaterialByName(materialName)
			if !ok {
				continue
			}
			for stack := 1; stack <= stacks; stack++ {
				windings := make([]magnetic.Winding, len(m.Coil.Windings))
				copy(windings, m.Coil.Windings)
				cand := &magnetic.Magnetic{
					Name: shapeName,
					Core: magnetic.Core{
						ShapeName: shapeName, Shape: shape, StackCount: stack,
						MaterialName: materialName, Material: material,
					},
					Coil:   magnetic.Coil{Bobbin: m.Coil.Bobbin, Windings: windings},
					Inputs: m.Inputs,
				}
				if err := cand.Core.Process(); err != nil {
					continue
				}
				considered++
				firstPass = append(firstPass, cand)
			}
		}
	}
	return firstPass, considered
}

// assignTurnsAndGap sets the primary winding's turns count from the
// design's magnetizing-inductance requirement and derives a matching
// gap, mirroring spec.md §4.3's "solve gap from turns and target
// inductance" adviser step.
func (a *CoreAdviser) assignTurnsAndGap(m *magnetic.Magnetic, view settings.View) error {
	if len(m.Coil.Windings) == 0 {
		return errs.New(errs.InvalidInput, "CoreAdviser.assignTurnsAndGap", "candidate has no windings")
	}
	targetH := m.Inputs.DesignRequirements.MagnetizingInductanceH[0]
	if targetH <= 0 {
		targetH = m.Inputs.DesignRequirements.MagnetizingInductanceH[1]
	}
	if targetH <= 0 {
		return nil // no inductance requirement to solve against; leave turns as supplied
	}
	tC, fHz := 25.0, 0.0
	if len(m.Inputs.OperatingPoints) > 0 {
		op := m.Inputs.OperatingPoints[0]
		tC = op.AmbientTempC
		if exc, ok := op.ExcitationFor(0); ok {
			freq, _ := dominantHarmonic(exc.Current)
			fHz = freq
		}
	}
	turns, err := reluctance.TurnsFromGapAndInductance(&m.Core, view.ReluctanceGapModel, targetH, tC, fHz)
	if err != nil {
		return err
	}
	gaps, err := reluctance.GappingFromTurnsAndInductance(&m.Core, view.ReluctanceGapModel, turns, targetH, tC, fHz, reluctance.GappingGrinded, 1)
	if err != nil {
		return err
	}
	m.Core.Gapping = gaps
	if err := m.Core.Process(); err != nil {
		return err
	}
	m.Coil.Windings[0].NumberTurns = turns
	wanted := m.Inputs.DesignRequirements.TurnsRatios
	for i := 1; i < len(m.Coil.Windings); i++ {
		if i-1 < len(wanted) && wanted[i-1] > 0 {
			m.Coil.Windings[i].NumberTurns = int(float64(turns)/wanted[i-1] + 0.5)
		}
	}
	return nil
}
