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

package leakage

import (
	"math"
	"math/cmplx"

	"github.com/magforge/engine/errs"
)

// Parameters bundles the lumped elements driving Impedance(f): DC
// resistance, the winding's AC skin-factor at the evaluation frequency,
// magnetizing inductance, leakage inductance and a self-capacitance
// estimate for the self-resonance bound.
type Parameters struct {
	DCResistanceOhm    float64
	SkinFactor         float64 // Rac/Rdc at the evaluation frequency, from package winding
	MagnetizingInductanceH float64
	LeakageInductanceH     float64
	SelfCapacitanceF       float64
}

// SelfResonantFrequencyHz returns the frequency at which the winding's
// self-capacitance resonates with its magnetizing+leakage inductance,
// the bound beyond which Impedance(f) is no longer a valid small-signal
// model (spec.md §4.8).
func (p Parameters) SelfResonantFrequencyHz() (float64, error) {
	l := p.MagnetizingInductanceH + p.LeakageInductanceH
	if l <= 0 || p.SelfCapacitanceF <= 0 {
		return 0, errs.New(errs.InvalidInput, "leakage.SelfResonantFrequencyHz", "inductance and self-capacitance must be positive")
	}
	return 1 / (2 * math.Pi * math.Sqrt(l*p.SelfCapacitanceF)), nil
}

// Impedance returns the complex small-signal impedance at frequency fHz,
// the series combination of DC resistance, AC skin-effect resistance and
// the magnetizing-inductance reactance, per spec.md §4.8.
func Impedance(p Parameters, fHz float64) (complex128, error) {
	if fHz < 0 {
		return 0, errs.New(errs.InvalidInput, "leakage.Impedance", "frequency must be non-negative")
	}
	rac := p.DCResistanceOhm * p.SkinFactor
	w := 2 * math.Pi * fHz
	xl := w * p.MagnetizingInductanceH
	z := complex(rac, xl)
	if cmplx.IsNaN(z) || cmplx.IsInf(z) {
		return 0, errs.New(errs.NaNResult, "leakage.Impedance", "impedance computed as %v", z)
	}
	return z, nil
}

// WithinSelfResonantBound reports whether fHz is within the validity
// bound spec.md §4.10's core-minimum-impedance filter enforces: a
// required frequency must not exceed 25% of the self-resonant frequency.
func WithinSelfResonantBound(p Parameters, fHz float64) (bool, error) {
	srf, err := p.SelfResonantFrequencyHz()
	if err != nil {
		return false, err
	}
	return fHz <= 0.25*srf, nil
}

// ToReflection computes the complex reflection factor (Smith-chart
// coordinate) of impedance z against reference impedance z0, following
// the teacher's Zmatch/Smith-chart machinery.
func ToReflection(z, z0 complex128) complex128 {
	return (z - z0) / (z + z0)
}

// FromReflection recovers the impedance for a reflection coefficient g
// against reference impedance z0.
func FromReflection(g, z0 complex128) complex128 {
	k := (1 + g) / (1 - g)
	return k * z0
}

// VSWR returns the voltage standing-wave ratio implied by a reflection
// coefficient, a convenience diagnostic alongside the impedance model.
func VSWR(g complex128) float64 {
	mag := cmplx.Abs(g)
	if mag >= 1 {
		return math.Inf(1)
	}
	return (1 + mag) / (1 - mag)
}
