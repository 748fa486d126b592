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

// Package reluctance implements the magnetic-circuit (reluctance) model:
// gap fringing models and the turns/gap/inductance relations built on
// top of them.
//
// Grounded on the teacher's named-model registry (lib/generator.go's
// Generator interface, gens map and GetGenerator factory): here the
// registry holds air-gap fringing models instead of antenna-geometry
// generators, selected by key the same way.
package reluctance

import (
	"strings"

	"github.com/magforge/engine/errs"
)

// GapGeometry is the local geometry around one gap needed to evaluate its
// fringing factor.
type GapGeometry struct {
	LengthM        float64
	SectionAreaM2  float64
	SectionWidthM  float64
	SectionHeightM float64
	WindowWidthM   float64
	DistanceToWindingM float64
}

// Model computes a gap's fringing factor, the ratio by which the ideal
// (fringing-free) gap reluctance is reduced.
type Model interface {
	// Name of the model, used as its registry key.
	Name() string
	// Info is a one-line human-readable description.
	Info() string
	// FringingFactor returns F >= 1 for the given gap geometry.
	FringingFactor(g GapGeometry) (float64, error)
}

var models map[string]Model

func init() {
	models = make(map[string]Model)
	register := func(m Model) { models[m.Name()] = m }
	register(zhangModel{})
	register(partridgeModel{})
	register(balakrishnanModel{})
	register(mcLymanModel{})
}

// ModelFromKey returns the registered fringing model for key.
func ModelFromKey(key string) (Model, error) {
	key = strings.TrimSpace(key)
	m, ok := models[key]
	if !ok {
		return nil, errs.New(errs.ModelNotAvailable, "reluctance.ModelFromKey", "unknown gap model %q", key)
	}
	return m, nil
}

// RegisteredModels returns the known model keys, for CLI help text and
// adviser enumeration.
func RegisteredModels() []string {
	out := make([]string, 0, len(models))
	for k := range models {
		out = append(out, k)
	}
	return out
}
