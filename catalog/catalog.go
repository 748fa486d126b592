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

// Package catalog loads and indexes the component libraries (core
// shapes, core materials, wires, wire materials) that the adviser
// searches over. Entries are read from newline-delimited JSON files,
// one record per line, with damaged records skipped rather than
// aborting the whole file — a catalogue of a few thousand parts
// shouldn't fail to load because one row has a typo.
package catalog

import (
	"github.com/magforge/engine/magnetic"
)

// Catalog is an in-memory index of the component libraries.
type Catalog struct {
	cores         map[string]*magnetic.CoreShape
	coreMaterials map[string]*magnetic.CoreMaterial
	wires         map[string]*magnetic.Wire
	wireMaterials map[string]*magnetic.WireMaterial

	coreOrder         []string
	coreMaterialOrder []string
	wireOrder         []string
}

// New returns an empty Catalog ready for Load*.
func New() *Catalog {
	return &Catalog{
		cores:         make(map[string]*magnetic.CoreShape),
		coreMaterials: make(map[string]*magnetic.CoreMaterial),
		wires:         make(map[string]*magnetic.Wire),
		wireMaterials: make(map[string]*magnetic.WireMaterial),
	}
}

// FindCoreShapeByName looks up a core shape by its catalogue name.
func (c *Catalog) FindCoreShapeByName(name string) (*magnetic.CoreShape, bool) {
	s, ok := c.cores[name]
	return s, ok
}

// FindCoreMaterialByName looks up a core material by its catalogue name.
func (c *Catalog) FindCoreMaterialByName(name string) (*magnetic.CoreMaterial, bool) {
	m, ok := c.coreMaterials[name]
	return m, ok
}

// FindWireByName looks up a wire by its catalogue name.
func (c *Catalog) FindWireByName(name string) (*magnetic.Wire, bool) {
	w, ok := c.wires[name]
	return w, ok
}

// FindWireMaterialByName looks up a wire material by its catalogue name.
func (c *Catalog) FindWireMaterialByName(name string) (*magnetic.WireMaterial, bool) {
	m, ok := c.wireMaterials[name]
	return m, ok
}

// CoreShapeNames returns catalogue core-shape names in load order, the
// order the adviser iterates them in (determinism, spec.md §8 property 9).
func (c *Catalog) CoreShapeNames() []string {
	out := make([]string, len(c.coreOrder))
	copy(out, c.coreOrder)
	return out
}

// WireNames returns catalogue wire names in load order.
func (c *Catalog) WireNames() []string {
	out := make([]string, len(c.wireOrder))
	copy(out, c.wireOrder)
	return out
}

// CoreMaterialNames returns catalogue core-material names in load order.
func (c *Catalog) CoreMaterialNames() []string {
	out := make([]string, len(c.coreMaterialOrder))
	copy(out, c.coreMaterialOrder)
	return out
}
