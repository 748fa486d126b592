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
	"sort"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
)

// FindWireByDimension returns the catalogue wire whose conducting
// cross-section is closest to targetArea (m^2), optionally restricted to
// a WireKind and/or a standard designation prefix (e.g. "IEC", "AWG"
// families encoded in the wire's Name). Ties break on catalogue order
// for determinism (spec.md §8 property 9).
func (c *Catalog) FindWireByDimension(targetArea float64, kind *magnetic.WireKind, standardPrefix string) (*magnetic.Wire, error) {
	var best *magnetic.Wire
	bestDiff := math.Inf(1)
	for _, name := range c.wireOrder {
		w := c.wires[name]
		if kind != nil && w.Kind != *kind {
			continue
		}
		if standardPrefix != "" && !hasPrefix(w.Name, standardPrefix) {
			continue
		}
		diff := math.Abs(w.ConductingArea() - targetArea)
		if diff < bestDiff {
			best, bestDiff = w, diff
		}
	}
	if best == nil {
		return nil, errs.New(errs.ResourceMissing, "catalog.FindWireByDimension", "no wire matches area=%.6g kind=%v prefix=%q", targetArea, kind, standardPrefix)
	}
	return best, nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// EquivalentWire finds the catalogue wire of the requested kind whose
// conducting area (same-area rule) most closely matches source's, used
// to translate an adviser candidate between wire families (e.g. round
// bundled into litz, or litz reduced to an equivalent round conductor
// for a quick skin-depth estimate per spec.md §6 scenario S5).
func (c *Catalog) EquivalentWire(source *magnetic.Wire, targetKind magnetic.WireKind) (*magnetic.Wire, error) {
	if source.Kind == targetKind {
		return source, nil
	}
	area := source.ConductingArea()
	return c.FindWireByDimension(area, &targetKind, "")
}

// WiresSortedByArea returns the catalogue wires of the given kind sorted
// by ascending conducting area; wires of equal area keep catalogue order.
func (c *Catalog) WiresSortedByArea(kind magnetic.WireKind) []*magnetic.Wire {
	var out []*magnetic.Wire
	for _, name := range c.wireOrder {
		w := c.wires[name]
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ConductingArea() < out[j].ConductingArea() })
	return out
}
