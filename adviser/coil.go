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
	"github.com/magforge/engine/settings"
)

// windingFilterWeights score wound candidates on their per-winding
// surrogate costs. effective_resistance, proximity_factor and
// skin_losses_density read Outputs computed by Evaluate; the others work
// from the wire choice, the design requirements and the excitations.
var windingFilterWeights = []filter.Weighted{
	{Filter: mustFilter("area_with_parallels"), Weight: 1},
	{Filter: mustFilter("effective_resistance"), Weight: 1},
	{Filter: mustFilter("proximity_factor"), Weight: 1},
	{Filter: mustFilter("skin_losses_density"), Weight: 0.5},
	{Filter: mustFilter("dc_current_density"), Weight: 1},
	{Filter: mustFilter("solid_insulation_requirements"), Weight: 1},
}

// CoilAdviser searches the wire catalogue for a per-winding wire choice
// and parallel count that fits the core's bobbin and scores well on the
// winding filters, grounded on the same two-stage cull-then-score shape
// as CoreAdviser: geometric fit first (cheap), physics losses second.
//
// No turn-by-turn layout solver is built (spec.md §4.11 Non-goals): fit
// is judged by comparing total conducting cross-section area (wire
// coating not counted) against the bobbin area with a packing margin, not a literal layer-by-layer
// placement.
type CoilAdviser struct {
	Catalog *catalog.Catalog

	// PackingFactor is the fraction of the bobbin area a real winding
	// can occupy once round-wire packing and margin are accounted for;
	// applied as a derating on the available area rather than modeled
	// geometrically.
	PackingFactor float64
}

const defaultPackingFactor = 0.6

// interleavingRelief is how much extra window-area fraction each
// interleaving retry assumes an alternating (primary/secondary/primary)
// winding arrangement recovers over a single-section layout, since
// interleaving shortens each section's build height without changing
// conductor area. No layout is computed (spec.md §4.11 Non-goals); this
// only widens the footprint-area feasibility check the teacher's
// WireAdviser.cpp would reach for once a plain stack-up fit nothing.
const interleavingRelief = 0.08

// maxInterleavingRetries bounds how many times the packing margin is
// relaxed before giving up on a wire/parallels sweep entirely.
const maxInterleavingRetries = 2

// Advise searches wire choices for every winding of m.Coil and returns
// up to n ranked whole-coil candidates. If fewer than n candidates fit
// under the plain packing assumption, the search retries with a progressively
// relaxed margin representing an interleaved winding arrangement.
func (a *CoilAdviser) Advise(m *magnetic.Magnetic, n int) ([]Candidate, Stats, error) {
	start := time.Now()
	if a.Catalog == nil {
		return nil, Stats{}, errs.New(errs.InvalidInput, "CoilAdviser.Advise", "no catalogue supplied")
	}
	if len(m.Coil.Windings) == 0 {
		return nil, Stats{}, errs.New(errs.InvalidInput, "CoilAdviser.Advise", "magnetic has no windings")
	}
	packing := a.PackingFactor
	if packing <= 0 {
		packing = defaultPackingFactor
	}
	view := settings.Snapshot()
	maxParallels := view.MaxParallels
	if maxParallels < 1 {
		maxParallels = 1
	}

	bobbin, err := magnetic.QuickBobbin(&m.Core)
	if err != nil {
		return nil, Stats{}, err
	}
	windowArea := bobbin.AreaM2 / float64(len(m.Coil.Windings))

	wireNames := a.candidateWireNames(view)

	considered := 0
	var candidates []Candidate
	for attempt := 0; attempt <= maxInterleavingRetries; attempt++ {
		margin := packing + float64(attempt)*interleavingRelief
		if margin > 1 {
			margin = 1
		}
		candidates = candidates[:0]
		for _, wireName := range wireNames {
			wire, ok := a.Catalog.FindWireByName(wireName)
			if !ok {
				continue
			}
			if _, ok := a.Catalog.FindWireMaterialByName(wire.MaterialName); !ok {
				continue // material unresolved; candidate cannot be evaluated
			}
			for parallels := 1; parallels <= maxParallels; parallels++ {
				considered++
				cand := cloneMagnetic(m)
				fits := true
				for i := range cand.Coil.Windings {
					w := &cand.Coil.Windings[i]
					w.Wire = wire
					w.WireName = wireName
					w.NumberParallels = parallels
					area := w.Wire.ConductingArea() * float64(parallels) * float64(w.NumberTurns)
					if area > windowArea*margin {
						fits = false
					}
				}
				if !fits {
					break // larger parallel counts only make it worse
				}
				outs, err := Evaluate(a.Catalog, cand)
				if err != nil {
					continue
				}
				cand.Outputs = outs
				valid, score, err := filter.WeightedScore(windingFilterWeights, cand, &cand.Inputs, cand.Outputs)
				if err != nil || !valid {
					continue
				}
				candidates = append(candidates, Candidate{Magnetic: cand, Score: score})
			}
		}
		if len(candidates) >= n || margin >= 1 {
			break
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Score < candidates[j].Score })
	if n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, Stats{Considered: considered, Survived: len(candidates), Elapsed: time.Since(start)}, nil
}

// candidateWireNames filters the catalogue's wire names down to the
// kinds enabled in view, preserving catalogue load order for
// determinism (spec.md §8 testable property 9).
func (a *CoilAdviser) candidateWireNames(view settings.View) []string {
	names := a.Catalog.WireNames()
	out := make([]string, 0, len(names))
	for _, name := range names {
		wire, ok := a.Catalog.FindWireByName(name)
		if !ok {
			continue
		}
		switch wire.Kind {
		case magnetic.WireRound:
			if !view.EnableRound {
				continue
			}
		case magnetic.WireLitz:
			if !view.EnableLitz {
				continue
			}
		case magnetic.WireRectangular:
			if !view.EnableRectangular {
				continue
			}
		case magnetic.WireFoil, magnetic.WirePlanar:
			if !view.EnableFoil {
				continue
			}
		}
		out = append(out, name)
	}
	return out
}

// cloneMagnetic makes a shallow-independent copy of m suitable for a
// single candidate trial: Core/Coil are duplicated so mutating one
// candidate's winding assignment never leaks into another's.
func cloneMagnetic(m *magnetic.Magnetic) *magnetic.Magnetic {
	windings := make([]magnetic.Winding, len(m.Coil.Windings))
	copy(windings, m.Coil.Windings)
	return &magnetic.Magnetic{
		Name:   m.Name,
		Core:   m.Core,
		Coil:   magnetic.Coil{Bobbin: m.Coil.Bobbin, Windings: windings},
		Inputs: m.Inputs,
	}
}
