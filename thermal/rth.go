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

package thermal

import (
	"fmt"
	"math"
	"strings"

	"github.com/magforge/engine/errs"
)

// ThermalModel estimates a core's lumped thermal resistance (deg C/W)
// to ambient from its effective volume, used as ΔT = Rth * totalLossesW.
type ThermalModel interface {
	Name() string
	Info() string
	ThermalResistance(volumeM3, surfaceAreaM2 float64) (float64, error)
}

var thermalModels map[string]ThermalModel

func init() {
	thermalModels = make(map[string]ThermalModel)
	register := func(m ThermalModel) { thermalModels[m.Name()] = m }
	register(kazimierczukModel{})
	register(maniktalaModel{})
	register(tdkModel{})
	register(dixonModel{})
	register(amidonModel{})
}

// ThermalModelFromKey returns the registered thermal model for key.
func ThermalModelFromKey(key string) (ThermalModel, error) {
	key = strings.TrimSpace(key)
	m, ok := thermalModels[key]
	if !ok {
		return nil, fmt.Errorf("thermal: unknown thermal model %q", key)
	}
	return m, nil
}

// kazimierczukModel follows Kazimierczuk's volume-based empirical fit,
// Rth = 53 / Ve_cm3^0.54, widely cited for ungapped ferrite cores.
type kazimierczukModel struct{}

func (kazimierczukModel) Name() string { return "kazimierczuk" }
func (kazimierczukModel) Info() string { return "Kazimierczuk volume-based empirical fit" }
func (kazimierczukModel) ThermalResistance(volumeM3, _ float64) (float64, error) {
	veCm3 := volumeM3 * 1e6
	if veCm3 <= 0 {
		return 0, errs.New(errs.InvalidInput, "thermal.kazimierczukModel", "core volume must be positive")
	}
	return 53 / math.Pow(veCm3, 0.54), nil
}

// maniktalaModel is Maniktala's "Ohm's law for heat" surface-area fit,
// Rth ~ 30 / As_cm2^0.5, from Switching Power Supply Design & Optimization.
type maniktalaModel struct{}

func (maniktalaModel) Name() string { return "maniktala" }
func (maniktalaModel) Info() string { return "Maniktala surface-area empirical fit" }
func (maniktalaModel) ThermalResistance(volumeM3, surfaceAreaM2 float64) (float64, error) {
	as := surfaceAreaM2 * 1e4
	if as <= 0 {
		as = math.Pow(volumeM3*1e6, 2.0/3.0) // estimate surface area from volume if not given
	}
	if as <= 0 {
		return 0, errs.New(errs.InvalidInput, "thermal.maniktalaModel", "core surface area must be positive")
	}
	return 30 / math.Sqrt(as), nil
}

// tdkModel follows the manufacturer-curve style fit TDK publishes for
// its ferrite core families, based purely on surface area.
type tdkModel struct{}

func (tdkModel) Name() string { return "tdk" }
func (tdkModel) Info() string { return "TDK manufacturer surface-area curve" }
func (tdkModel) ThermalResistance(volumeM3, surfaceAreaM2 float64) (float64, error) {
	as := surfaceAreaM2 * 1e4
	if as <= 0 {
		as = math.Pow(volumeM3*1e6, 2.0/3.0)
	}
	if as <= 0 {
		return 0, errs.New(errs.InvalidInput, "thermal.tdkModel", "core surface area must be positive")
	}
	return 25 / math.Pow(as, 0.46), nil
}

// dixonModel is Lloyd Dixon's empirical curve fit for natural-convection
// core cooling, Rth = 40 / Ve_cm3^0.5.
type dixonModel struct{}

func (dixonModel) Name() string { return "dixon" }
func (dixonModel) Info() string { return "Dixon empirical volume fit" }
func (dixonModel) ThermalResistance(volumeM3, _ float64) (float64, error) {
	veCm3 := volumeM3 * 1e6
	if veCm3 <= 0 {
		return 0, errs.New(errs.InvalidInput, "thermal.dixonModel", "core volume must be positive")
	}
	return 40 / math.Sqrt(veCm3), nil
}

// amidonModel follows Amidon's toroid-core thermal data sheets, which
// correlate Rth with surface area using a slightly steeper exponent than
// Maniktala's rectangular-core fit.
type amidonModel struct{}

func (amidonModel) Name() string { return "amidon" }
func (amidonModel) Info() string { return "Amidon toroid surface-area fit" }
func (amidonModel) ThermalResistance(volumeM3, surfaceAreaM2 float64) (float64, error) {
	as := surfaceAreaM2 * 1e4
	if as <= 0 {
		as = math.Pow(volumeM3*1e6, 2.0/3.0)
	}
	if as <= 0 {
		return 0, errs.New(errs.InvalidInput, "thermal.amidonModel", "core surface area must be positive")
	}
	return 28 / math.Pow(as, 0.55), nil
}

// CoreTemperature returns the core temperature given ambient temperature,
// total dissipated power and the model's thermal resistance.
func CoreTemperature(model ThermalModel, ambientC, totalLossesW, volumeM3, surfaceAreaM2 float64) (float64, error) {
	rth, err := model.ThermalResistance(volumeM3, surfaceAreaM2)
	if err != nil {
		return 0, err
	}
	return ambientC + rth*totalLossesW, nil
}
