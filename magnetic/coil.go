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

package magnetic

import "github.com/magforge/engine/errs"

// Turn is one physical turn placement: the winding it belongs to, its
// layer, cross-section coordinate, parallel index and length.
type Turn struct {
	WindingIndex  int
	LayerIndex    int
	CoordinateM   [3]float64
	ParallelIndex int
	LengthM       float64
}

// Layer is a contiguous run of turns belonging to one winding within a
// section, wound either in round-pack or rectangular-stack order.
type Layer struct {
	WindingIndex int
	TurnIndices  []int
	OrientationAngleRad float64
}

// Section is a horizontal or radial slice of the winding window assigned
// to exactly one physical winding (interleaving boundary).
type Section struct {
	WindingIndex int
	LayerIndices []int
	WidthM, HeightM float64
	CoordinateM     [3]float64
}

// Winding is one named electrical winding of the coil.
type Winding struct {
	Name            string
	NumberTurns     int
	NumberParallels int
	WireName        string
	Wire            *Wire
}

// Coil is the functional+processed composite of spec.md §3: an ordered
// list of windings plus, once wound, the physical layout (turns grouped
// into layers and sections).
type Coil struct {
	Bobbin   *Bobbin
	Windings []Winding

	turns    []Turn
	layers   []Layer
	sections []Section
	fits     bool
	wound    bool
}

// SetWound records a winding attempt's result. fits reports whether the
// produced layout physically fit within the bobbin (spec.md §3's
// geometric-fit diagnostic); turns/layers/sections are recorded
// regardless so partial/failed layouts remain inspectable.
func (c *Coil) SetWound(turns []Turn, layers []Layer, sections []Section, fits bool) {
	c.turns, c.layers, c.sections, c.fits, c.wound = turns, layers, sections, fits, true
}

// Fits reports whether the coil's last winding attempt produced a layout
// that fit inside the bobbin. Calling before a winding attempt is a
// CoilNotWound error.
func (c Coil) Fits() (bool, error) {
	if !c.wound {
		return false, errs.New(errs.CoilNotWound, "Coil.Fits", "coil has not been wound")
	}
	return c.fits, nil
}

// Turns returns the physical turn placements of the last winding attempt.
func (c Coil) Turns() ([]Turn, error) {
	if !c.wound {
		return nil, errs.New(errs.CoilNotWound, "Coil.Turns", "coil has not been wound")
	}
	return c.turns, nil
}

// TotalPhysicalTurns returns the sum of NumberTurns*NumberParallels over
// all windings; the coil's wound turn count must equal this value
// (spec.md §3 physical-turns-count invariant).
func (c Coil) TotalPhysicalTurns() int {
	total := 0
	for _, w := range c.Windings {
		n := w.NumberParallels
		if n < 1 {
			n = 1
		}
		total += w.NumberTurns * n
	}
	return total
}

// CheckPhysicalTurnsInvariant verifies the wound turn count against
// TotalPhysicalTurns.
func (c Coil) CheckPhysicalTurnsInvariant() error {
	if !c.wound {
		return errs.New(errs.CoilNotWound, "Coil.CheckPhysicalTurnsInvariant", "coil has not been wound")
	}
	if len(c.turns) != c.TotalPhysicalTurns() {
		return errs.New(errs.InvalidInput, "Coil.CheckPhysicalTurnsInvariant",
			"wound turn count %d does not match declared physical turns %d", len(c.turns), c.TotalPhysicalTurns())
	}
	return nil
}

// TurnsForWinding returns the subset of wound turns belonging to the
// winding at windingIndex.
func (c Coil) TurnsForWinding(windingIndex int) ([]Turn, error) {
	all, err := c.Turns()
	if err != nil {
		return nil, err
	}
	var out []Turn
	for _, t := range all {
		if t.WindingIndex == windingIndex {
			out = append(out, t)
		}
	}
	return out, nil
}