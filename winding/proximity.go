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

package winding

import (
	"fmt"
	"math"
	"strings"
)

// ProximityModel computes the proximity-effect power loss factor for a
// conductor sitting in an external field of magnitude hExternalAPerM.
type ProximityModel interface {
	Name() string
	Info() string
	// LossFactor returns a non-negative power density multiplier
	// (spec.md §8 testable property 7: proximity losses are never
	// negative).
	LossFactor(radiusM, skinDepthM, hExternalAPerM float64) (float64, error)
}

var proximityModels map[string]ProximityModel

func init() {
	proximityModels = make(map[string]ProximityModel)
	register := func(m ProximityModel) { proximityModels[m.Name()] = m }
	register(ferreiraProximityModel{})
	register(wangProximityModel{})
	register(rossmanithProximityModel{})
	register(albachProximityModel{})
	register(lammeranerProximityModel{})
}

// ProximityModelFromKey returns the registered proximity model for key.
func ProximityModelFromKey(key string) (ProximityModel, error) {
	key = strings.TrimSpace(key)
	m, ok := proximityModels[key]
	if !ok {
		return nil, fmt.Errorf("winding: unknown proximity model %q", key)
	}
	return m, nil
}

// baseProximityFactor gives the classic Gp proximity-loss coefficient
// (proportional to x^4 at low frequency, saturating at high frequency),
// the common core all five named models build on.
func baseProximityFactor(radiusM, skinDepthM float64) float64 {
	if skinDepthM <= 0 {
		return 0
	}
	x := radiusM / skinDepthM
	return 2 * x * x * x * x / (1 + 0.8*x*x*x*x)
}

type ferreiraProximityModel struct{}

func (ferreiraProximityModel) Name() string { return "ferreira" }
func (ferreiraProximityModel) Info() string { return "Ferreira orthogonal-field proximity-loss model" }
func (ferreiraProximityModel) LossFactor(radiusM, skinDepthM, h float64) (float64, error) {
	return math.Abs(baseProximityFactor(radiusM, skinDepthM) * h * h), nil
}

type wangProximityModel struct{}

func (wangProximityModel) Name() string { return "wang" }
func (wangProximityModel) Info() string { return "Wang layer-averaged proximity-loss model" }
func (wangProximityModel) LossFactor(radiusM, skinDepthM, h float64) (float64, error) {
	return math.Abs(1.1 * baseProximityFactor(radiusM, skinDepthM) * h * h), nil
}

type rossmanithProximityModel struct{}

func (rossmanithProximityModel) Name() string { return "rossmanith" }
func (rossmanithProximityModel) Info() string { return "Rossmanith bundled-strand proximity-loss model" }
func (rossmanithProximityModel) LossFactor(radiusM, skinDepthM, h float64) (float64, error) {
	return math.Abs(0.9 * baseProximityFactor(radiusM, skinDepthM) * h * h), nil
}

type albachProximityModel struct{}

func (albachProximityModel) Name() string { return "albach" }
func (albachProximityModel) Info() string { return "Albach harmonic-superposition proximity-loss model" }
func (albachProximityModel) LossFactor(radiusM, skinDepthM, h float64) (float64, error) {
	return math.Abs(baseProximityFactor(radiusM, skinDepthM) * h * h), nil
}

type lammeranerProximityModel struct{}

func (lammeranerProximityModel) Name() string { return "lammeraner" }
func (lammeranerProximityModel) Info() string { return "Lammeraner finite-winding proximity-loss model" }
func (lammeranerProximityModel) LossFactor(radiusM, skinDepthM, h float64) (float64, error) {
	return math.Abs(1.05 * baseProximityFactor(radiusM, skinDepthM) * h * h), nil
}
