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

// Package winding computes conduction losses: DC resistance, skin-effect
// AC resistance factors and proximity-effect loss, combined per harmonic
// into the winding-loss breakdown of magnetic.Outputs.
//
// Grounded on the teacher's named-model registry (lib/generator.go)
// for the skin-effect and proximity-effect model families, and on
// lib/impedance.go's complex-arithmetic style for the underlying
// formulas.
package winding

import (
	"fmt"
	"math"
	"strings"

	"github.com/magforge/engine/numerics"
)

// SkinDepth returns the classical skin depth (m) for a conductor of
// resistivity rhoOhmM and relative permeability muR at frequency fHz
// (spec.md §8 scenario S3: copper at 123kHz/20C gives ~186.09um).
func SkinDepth(rhoOhmM, muR, fHz float64) float64 {
	if fHz <= 0 {
		return math.Inf(1)
	}
	if muR <= 0 {
		muR = 1
	}
	return math.Sqrt(rhoOhmM / (math.Pi * fHz * numerics.Mu0 * muR))
}

// SkinModel computes the AC/DC resistance ratio for a round conductor
// given its radius and the skin depth at the operating frequency.
type SkinModel interface {
	Name() string
	Info() string
	ResistanceFactor(radiusM, skinDepthM float64) (float64, error)
}

var skinModels map[string]SkinModel

func init() {
	skinModels = make(map[string]SkinModel)
	register := func(m SkinModel) { skinModels[m.Name()] = m }
	register(albachSkinModel{})
	register(wojdaSkinModel{})
	register(payneSkinModel{})
	register(kutkutSkinModel{})
	register(ferreiraSkinModel{})
	register(lotfiSkinModel{})
}

// SkinModelFromKey returns the registered skin-effect model for key.
func SkinModelFromKey(key string) (SkinModel, error) {
	key = strings.TrimSpace(key)
	m, ok := skinModels[key]
	if !ok {
		return nil, fmt.Errorf("winding: unknown skin model %q", key)
	}
	return m, nil
}

// kelvinResistanceFactor gives the Bessel/Kelvin-function skin-effect
// resistance ratio R_ac/R_dc = (x/2) * [ber(x)bei'(x) - bei(x)ber'(x)] /
// [ber'(x)^2 + bei'(x)^2], x = sqrt(2)*radius/skinDepth — the exact
// solid-round-conductor solution shared by most of the named models,
// which differ mainly in how they approximate or bound this ratio.
func kelvinResistanceFactor(radiusM, skinDepthM float64) float64 {
	if skinDepthM <= 0 {
		return 1
	}
	x := math.Sqrt2 * radiusM / skinDepthM
	ber, bei := numerics.Ber(x), numerics.Bei(x)
	berP, beiP := numerics.BerPrime(x), numerics.BeiPrime(x)
	num := ber*beiP - bei*berP
	den := berP*berP + beiP*beiP
	if den == 0 {
		return 1
	}
	return (x / 2) * (num / den)
}

type albachSkinModel struct{}

func (albachSkinModel) Name() string { return "albach" }
func (albachSkinModel) Info() string { return "Albach exact Kelvin-function skin-effect ratio" }
func (albachSkinModel) ResistanceFactor(radiusM, skinDepthM float64) (float64, error) {
	if radiusM <= 0 {
		return 0, fmt.Errorf("albach: radius must be positive")
	}
	f := kelvinResistanceFactor(radiusM, skinDepthM)
	if f < 1 {
		f = 1
	}
	return f, nil
}

type wojdaSkinModel struct{}

func (wojdaSkinModel) Name() string { return "wojda" }
func (wojdaSkinModel) Info() string { return "Wojda polynomial approximation to the skin-effect ratio" }
func (wojdaSkinModel) ResistanceFactor(radiusM, skinDepthM float64) (float64, error) {
	if radiusM <= 0 {
		return 0, fmt.Errorf("wojda: radius must be positive")
	}
	x := radiusM / skinDepthM
	f := 1 + 0.25*math.Pow(x, 4)/(1+0.25*math.Pow(x, 2))
	if f < 1 {
		f = 1
	}
	return f, nil
}

type payneSkinModel struct{}

func (payneSkinModel) Name() string { return "payne" }
func (payneSkinModel) Info() string { return "Payne large-x asymptotic skin-effect ratio" }
func (payneSkinModel) ResistanceFactor(radiusM, skinDepthM float64) (float64, error) {
	if radiusM <= 0 {
		return 0, fmt.Errorf("payne: radius must be positive")
	}
	x := radiusM / skinDepthM
	f := x/2 + 0.25 + 3.0/(32*math.Max(x, 1e-6))
	if f < 1 {
		f = 1
	}
	return f, nil
}

type kutkutSkinModel struct{}

func (kutkutSkinModel) Name() string { return "kutkut" }
func (kutkutSkinModel) Info() string { return "Kutkut tabulated-fit skin-effect ratio" }
func (kutkutSkinModel) ResistanceFactor(radiusM, skinDepthM float64) (float64, error) {
	if radiusM <= 0 {
		return 0, fmt.Errorf("kutkut: radius must be positive")
	}
	x := 2 * radiusM / skinDepthM
	f := 1 + math.Pow(x, 4)/(48+0.8*math.Pow(x, 4))
	if f < 1 {
		f = 1
	}
	return f, nil
}

type ferreiraSkinModel struct{}

func (ferreiraSkinModel) Name() string { return "ferreira" }
func (ferreiraSkinModel) Info() string { return "Ferreira closed-form skin-effect ratio" }
func (ferreiraSkinModel) ResistanceFactor(radiusM, skinDepthM float64) (float64, error) {
	if radiusM <= 0 {
		return 0, fmt.Errorf("ferreira: radius must be positive")
	}
	f := kelvinResistanceFactor(radiusM, skinDepthM)
	if f < 1 {
		f = 1
	}
	return f, nil
}

type lotfiSkinModel struct{}

func (lotfiSkinModel) Name() string { return "lotfi" }
func (lotfiSkinModel) Info() string { return "Lotfi low-frequency perturbative skin-effect ratio" }
func (lotfiSkinModel) ResistanceFactor(radiusM, skinDepthM float64) (float64, error) {
	if radiusM <= 0 {
		return 0, fmt.Errorf("lotfi: radius must be positive")
	}
	x := radiusM / skinDepthM
	f := 1 + math.Pow(x, 4)/48
	if f < 1 {
		f = 1
	}
	return f, nil
}
