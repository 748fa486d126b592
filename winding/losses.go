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
// Affero License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL-3.0-or-later
//----------------------------------------------------------------------

package winding

import (
	"hash/fnv"
	"math"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
	"github.com/magforge/engine/numerics"
	"github.com/magforge/engine/settings"
)

// wireHash derives a stable cache key component from a wire's physical
// dimensions, since *magnetic.Wire values are not comparable as map keys
// once they carry a *RoundDims strand pointer.
func wireHash(w *magnetic.Wire) uint64 {
	h := fnv.New64a()
	for _, v := range []float64{
		float64(w.Kind), w.Round.ConductingDiameterM, w.Rect.ConductingWidthM, w.Rect.ConductingHeightM,
	} {
		b := math.Float64bits(v)
		h.Write([]byte{byte(b), byte(b >> 8), byte(b >> 16), byte(b >> 24), byte(b >> 32), byte(b >> 40), byte(b >> 48), byte(b >> 56)})
	}
	return h.Sum64()
}

// lossFactors is the cached (skin,proximity) resistance-multiplier pair
// for one (wire, frequency, temperature) combination.
type lossFactors struct {
	skinFactor       float64
	proximityFactor  float64
}

func computeLossFactors(w *magnetic.Wire, skinModelKey, proximityModelKey string, fHz, tC, rhoOhmM, hExternalAPerM float64) (lossFactors, error) {
	radius := w.Round.ConductingDiameterM / 2
	if w.Kind == magnetic.WireLitz && w.Strand != nil {
		radius = w.Strand.ConductingDiameterM / 2
	}
	depth := SkinDepth(rhoOhmM, 1, fHz)

	skinModel, err := SkinModelFromKey(skinModelKey)
	if err != nil {
		return lossFactors{}, err
	}
	skinFactor, err := skinModel.ResistanceFactor(radius, depth)
	if err != nil {
		return lossFactors{}, err
	}

	proxModel, err := ProximityModelFromKey(proximityModelKey)
	if err != nil {
		return lossFactors{}, err
	}
	proxFactor, err := proxModel.LossFactor(radius, depth, hExternalAPerM)
	if err != nil {
		return lossFactors{}, err
	}
	if proxFactor < 0 {
		return lossFactors{}, errs.New(errs.CalculationError, "winding.computeLossFactors", "proximity loss factor is negative: %.6g", proxFactor)
	}
	return lossFactors{skinFactor: skinFactor, proximityFactor: proxFactor}, nil
}

// WindingLoss computes one winding's loss breakdown across the supplied
// current harmonics, skipping harmonics below the configured amplitude
// threshold (spec.md §4.6 step 4's harmonic pruning) and doubling the
// pruning threshold in quick mode once the winding's turns count exceeds
// Settings.QuickModeTurnThreshold.
func WindingLoss(windingIndex int, w *magnetic.Wire, material *magnetic.WireMaterial, lengthM float64, turns int,
	harmonics []numerics.Harmonic, tC float64, hExternalAPerM float64, skinModelKey, proximityModelKey string) (magnetic.WindingLossOutput, error) {

	view := settings.Snapshot()
	threshold := view.HarmonicThreshold
	if turns > view.QuickModeTurnThreshold {
		threshold *= view.QuickModeMultiplier
	}

	dc, err := DCResistance(w, material, lengthM, tC)
	if err != nil {
		return magnetic.WindingLossOutput{}, err
	}

	var dcLoss float64
	var perHarmonic []magnetic.HarmonicLoss
	significant := numerics.SignificantHarmonics(harmonics, threshold)

	rho := material.ResistivityAt(tC)
	key := settings.LossFactorKey{WireHash: wireHash(w), FrequencyHz: 0, TemperatureC: tC}
	for _, h := range significant {
		if h.Index == 0 {
			dcLoss = h.Amplitude * h.Amplitude * dc
			continue
		}
		key.FrequencyHz = h.Frequency
		cached := settings.LossFactorCache.GetOrCompute(key, func() any {
			f, err := computeLossFactors(w, skinModelKey, proximityModelKey, h.Frequency, tC, rho, hExternalAPerM)
			if err != nil {
				return lossFactors{skinFactor: 1, proximityFactor: 0}
			}
			return f
		}).(lossFactors)

		iRms := h.Amplitude / math.Sqrt2
		skinW := iRms * iRms * dc * cached.skinFactor
		proxW := iRms * iRms * dc * cached.proximityFactor
		if proxW < 0 {
			return magnetic.WindingLossOutput{}, errs.New(errs.CalculationError, "winding.WindingLoss", "negative proximity loss at harmonic %d", h.Index)
		}
		perHarmonic = append(perHarmonic, magnetic.HarmonicLoss{
			HarmonicIndex: h.Index, FrequencyHz: h.Frequency, SkinLossesW: skinW, ProximityLossesW: proxW,
		})
	}

	var skinTotal, proxTotal float64
	for _, hl := range perHarmonic {
		skinTotal += hl.SkinLossesW
		proxTotal += hl.ProximityLossesW
	}

	return magnetic.WindingLossOutput{
		WindingIndex:     windingIndex,
		DCLossesW:        dcLoss,
		SkinLossesW:      skinTotal,
		ProximityLossesW: proxTotal,
		TotalLossesW:     dcLoss + skinTotal + proxTotal,
		Harmonics:        perHarmonic,
	}, nil
}
