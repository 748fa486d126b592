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

// Package field computes the H-field produced by current-carrying
// filaments in the winding window, used by the winding package's
// proximity-loss estimates and by the leakage package's energy
// integration.
//
// Grounded on the teacher's named-model registry pattern
// (lib/generator.go), mirrored here for H-field models instead of
// antenna-geometry generators.
package field

import (
	"strings"

	"github.com/magforge/engine/errs"
)

// Filament is a point current source (a cross-section of a turn) in the
// 2-D winding-window plane.
type Filament struct {
	XM, YM  float64
	CurrentA float64
	RadiusM  float64 // 0 for an ideal line filament
}

// Model evaluates the H field (A/m) at a point due to a set of filaments.
type Model interface {
	Name() string
	Info() string
	// HField returns the field vector (Hx, Hy) at (x,y) due to filaments.
	HField(filaments []Filament, x, y float64) (hx, hy float64, err error)
}

var models map[string]Model

func init() {
	models = make(map[string]Model)
	register := func(m Model) { models[m.Name()] = m }
	register(binnsLawrensonModel{})
	register(lammeranerModel{})
	register(wangModel{})
	register(albachModel{})
}

// ModelFromKey returns the registered H-field model for key.
func ModelFromKey(key string) (Model, error) {
	key = strings.TrimSpace(key)
	m, ok := models[key]
	if !ok {
		return nil, errs.New(errs.ModelNotAvailable, "field.ModelFromKey", "unknown model %q", key)
	}
	return m, nil
}

// RegisteredModels returns the known model keys.
func RegisteredModels() []string {
	out := make([]string, 0, len(models))
	for k := range models {
		out = append(out, k)
	}
	return out
}
