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

// Package mesh turns a wound Coil into the set of inducing and induced
// field points the field package needs: one filament per turn
// cross-section, plus mirror-source filaments approximating the core's
// effect on the field the way the method of images does for a
// high-permeability boundary.
package mesh

import (
	"math"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/field"
	"github.com/magforge/engine/magnetic"
	"github.com/magforge/engine/settings"
)

// Point is a location in the winding-window plane where the field is to
// be evaluated (an "induced" point, typically the center of some other
// turn's cross-section).
type Point struct {
	XM, YM       float64
	WindingIndex int
	TurnIndex    int
}

// Mesh bundles the inducing filaments (current sources) and induced
// points (evaluation locations) derived from one wound coil.
type Mesh struct {
	Filaments []field.Filament
	Points    []Point
}

// wireRadius returns a representative filament radius for a wound wire,
// used for near-field regularization by the field models.
func wireRadius(w *magnetic.Wire) float64 {
	if w == nil {
		return 0
	}
	switch w.Kind {
	case magnetic.WireRound:
		return w.Round.ConductingDiameterM / 2
	case magnetic.WireLitz:
		if w.Strand != nil {
			return w.Strand.ConductingDiameterM / 2
		}
		return 0
	default:
		return w.Rect.ConductingHeightM / 2
	}
}

// Build constructs the mesh for a wound coil carrying per-winding peak
// currents currentsA (indexed like coil.Windings). Rectangular winding
// windows mirror filaments across the core boundary up to
// Settings.MesherMirrorOrder; toroidal cores skip mirroring entirely
// since the core fully encircles the winding and there is no flat
// high-permeability boundary to image against.
func Build(coil *magnetic.Coil, core *magnetic.Core, currentsA []float64) (*Mesh, error) {
	turns, err := coil.Turns()
	if err != nil {
		return nil, err
	}
	processed, err := core.Processed()
	if err != nil {
		return nil, err
	}
	toroidal := len(processed.WindingWindows) > 0 && processed.WindingWindows[0].Shape == magnetic.WindowRadial

	var filaments []field.Filament
	var points []Point
	for i, t := range turns {
		if t.WindingIndex >= len(coil.Windings) || t.WindingIndex >= len(currentsA) {
			return nil, errs.New(errs.InvalidInput, "mesh.Build", "turn references winding %d outside range", t.WindingIndex)
		}
		w := coil.Windings[t.WindingIndex]
		current := currentsA[t.WindingIndex]
		if w.NumberParallels > 1 {
			current /= float64(w.NumberParallels)
		}
		radius := wireRadius(w.Wire)
		filaments = append(filaments, field.Filament{
			XM: t.CoordinateM[0], YM: t.CoordinateM[1], CurrentA: current, RadiusM: radius,
		})
		points = append(points, Point{XM: t.CoordinateM[0], YM: t.CoordinateM[1], WindingIndex: t.WindingIndex, TurnIndex: i})
	}

	if !toroidal {
		order := settings.Snapshot().MesherMirrorOrder
		filaments = append(filaments, mirrorFilaments(filaments, processed, order, effectiveMuR(core))...)
	}

	if excluded := pointsInsideConductors(points, filaments); len(excluded) > 0 {
		settings.Debug("mesh: excluded %d evaluation points landing inside a conductor", len(excluded))
	}

	return &Mesh{Filaments: filaments, Points: points}, nil
}

// effectiveMuR returns the core material's low-field relative
// permeability used to attenuate mirror-source currents, falling back to
// 1 when the core carries no material data (which cancels the
// first-order images entirely).
func effectiveMuR(core *magnetic.Core) float64 {
	if core == nil || core.Material == nil {
		return 1
	}
	mu := core.Material.PermeabilityTable.BaseMuR
	if mu <= 0 {
		return 1
	}
	return mu
}

// mirrorCurrentMultiplier scales a mirror filament's current for its
// reflection order (m, n): a perfectly permeable boundary (µ_r → ∞)
// reflects full current, while µ_r equal to the reflection order
// max(|m|,|n|) cancels that image entirely.
func mirrorCurrentMultiplier(muR float64, m, n int) float64 {
	k := math.Max(math.Abs(float64(m)), math.Abs(float64(n)))
	denom := muR + k
	if denom == 0 {
		return 0
	}
	return (muR - k) / denom
}

// mirrorFilaments approximates a high-permeability rectangular boundary
// by reflecting every real filament across the winding-window walls on
// both axes, for every (m, n) reflection order pair with
// max(|m|, |n|) <= order — the 2-D method-of-images treatment of a
// ferrite boundary — scaling each reflection's current by
// mirrorCurrentMultiplier so higher orders and lower-permeability cores
// contribute a progressively weaker image.
func mirrorFilaments(real []field.Filament, processed *magnetic.Processed, order int, muR float64) []field.Filament {
	if order <= 0 || len(processed.WindingWindows) == 0 {
		return nil
	}
	w := processed.WindingWindows[0]
	var mirrors []field.Filament
	for m := -order; m <= order; m++ {
		for n := -order; n <= order; n++ {
			if m == 0 && n == 0 {
				continue
			}
			mult := mirrorCurrentMultiplier(muR, m, n)
			xOffset := float64(m) * w.WidthM
			yOffset := float64(n) * w.HeightM
			for _, f := range real {
				mirrors = append(mirrors, field.Filament{
					XM: -f.XM + 2*xOffset, YM: -f.YM + 2*yOffset,
					CurrentA: f.CurrentA * mult, RadiusM: f.RadiusM,
				})
			}
		}
	}
	return mirrors
}

// pointsInsideConductors reports which evaluation points fall within a
// filament's own conductor radius and should be excluded from field
// statistics (spec.md §4.4 edge case: evaluation points inside
// conductors or the core body are not physically meaningful).
func pointsInsideConductors(points []Point, filaments []field.Filament) []int {
	var excluded []int
	for i, p := range points {
		for _, f := range filaments {
			if f.RadiusM <= 0 {
				continue
			}
			dx, dy := p.XM-f.XM, p.YM-f.YM
			if dx*dx+dy*dy < f.RadiusM*f.RadiusM {
				excluded = append(excluded, i)
				break
			}
		}
	}
	return excluded
}
