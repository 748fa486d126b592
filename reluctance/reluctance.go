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

package reluctance

import (
	"math"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
	"github.com/magforge/engine/numerics"
	"github.com/magforge/engine/settings"
)

// gapReluctance returns one gap's reluctance (A*turns/Wb) including its
// fringing correction.
func gapReluctance(model Model, gap magnetic.CoreGap, windowWidthM float64) (float64, error) {
	area := gap.SectionWidthM * gap.SectionHeightM
	if area <= 0 {
		area = gap.SectionWidthM // allow pre-computed section area stashed in width
	}
	length := gap.LengthM
	if length <= 0 {
		length = magnetic.ResidualGapM
	}
	f, err := model.FringingFactor(GapGeometry{
		LengthM: length, SectionAreaM2: area,
		SectionWidthM: gap.SectionWidthM, SectionHeightM: gap.SectionHeightM,
		WindowWidthM: windowWidthM,
	})
	if err != nil {
		return 0, err
	}
	if f < 1 {
		f = 1
	}
	return length / (numerics.Mu0 * area * f), nil
}

// coreReluctance returns the reluctance of the core's magnetic material
// path (excluding gaps), using its effective length/area and the
// material's permeability at the given operating condition.
func coreReluctance(core *magnetic.Core, muR, tC, hBias, fHz float64) (float64, error) {
	p, err := core.Processed()
	if err != nil {
		return 0, err
	}
	if muR <= 0 {
		muR = core.Material.PermeabilityTable.MuR(tC, hBias, fHz)
	}
	if muR <= 0 {
		muR = 1
	}
	return p.Effective.LengthM / (numerics.Mu0 * muR * p.Effective.AreaM2), nil
}

// TotalReluctance sums the core-material and gap reluctances for a
// magnetizing-field estimate hBiasAPerM (A/m), temperature tC and
// excitation frequency fHz (used to look up the frequency roll-off of
// permeability).
func TotalReluctance(core *magnetic.Core, gapModelKey string, hBiasAPerM, tC, fHz float64) (float64, error) {
	model, err := ModelFromKey(gapModelKey)
	if err != nil {
		return 0, err
	}
	p, err := core.Processed()
	if err != nil {
		return 0, err
	}
	windowWidth := 0.0
	if len(p.WindingWindows) > 0 {
		windowWidth = p.WindingWindows[0].WidthM
	}

	rCore, err := coreReluctance(core, 0, tC, hBiasAPerM, fHz)
	if err != nil {
		return 0, err
	}
	total := rCore
	gaps := core.Gapping
	if len(gaps) == 0 {
		gaps = []magnetic.CoreGap{{Kind: magnetic.GapResidual, LengthM: magnetic.ResidualGapM,
			SectionWidthM: math.Sqrt(p.Effective.AreaM2), SectionHeightM: math.Sqrt(p.Effective.AreaM2)}}
	}
	for _, g := range gaps {
		rGap, err := gapReluctance(model, g, windowWidth)
		if err != nil {
			return 0, err
		}
		total += rGap
	}
	return total, nil
}

// InductanceFromTurnsAndGap computes the magnetizing inductance for a
// given turns count, iteratively refining the core material's
// permeability against the resulting operating field until the relative
// change in inductance falls below 1% or a 100-iteration budget is spent
// (spec.md §8 testable property 3).
func InductanceFromTurnsAndGap(core *magnetic.Core, gapModelKey string, turns int, tC, fHz float64) (float64, error) {
	if turns <= 0 {
		return 0, errs.New(errs.InvalidInput, "reluctance.InductanceFromTurnsAndGap", "turns must be positive, got %d", turns)
	}
	const maxIter = 100
	const tol = 0.01

	l := 0.0
	hBias := 0.0
	for i := 0; i < maxIter; i++ {
		r, err := TotalReluctance(core, gapModelKey, hBias, tC, fHz)
		if err != nil {
			return 0, err
		}
		if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return 0, errs.New(errs.NaNResult, "reluctance.InductanceFromTurnsAndGap", "non-physical reluctance %.6g", r)
		}
		lNew := float64(turns) * float64(turns) / r
		if i > 0 && math.Abs(lNew-l)/l < tol {
			l = lNew
			settings.Debug("reluctance: inductance converged after %d iterations", i+1)
			break
		}
		l = lNew
		p, _ := core.Processed()
		hBias = float64(turns) / p.Effective.LengthM // crude working-point field estimate for the next mu_r lookup
		if i == maxIter-1 {
			return 0, errs.New(errs.Diverged, "reluctance.InductanceFromTurnsAndGap", "inductance did not converge within %d iterations", maxIter)
		}
	}
	return l, nil
}

// TurnsFromGapAndInductance inverts InductanceFromTurnsAndGap by
// bisection on the turns count, returning the smallest integer turns
// count whose inductance reaches targetH; a result more than 5% off
// target is logged as a warning (spec.md §8 testable property 4). The
// result is clamped to at least 1 turn.
func TurnsFromGapAndInductance(core *magnetic.Core, gapModelKey string, targetH, tC, fHz float64) (int, error) {
	if targetH <= 0 {
		return 0, errs.New(errs.InvalidInput, "reluctance.TurnsFromGapAndInductance", "target inductance must be positive")
	}
	lo, hi := 1, 100000
	for lo < hi {
		mid := (lo + hi) / 2
		l, err := InductanceFromTurnsAndGap(core, gapModelKey, mid, tC, fHz)
		if err != nil {
			return 0, err
		}
		if l < targetH {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < 1 {
		lo = 1
	}
	l, err := InductanceFromTurnsAndGap(core, gapModelKey, lo, tC, fHz)
	if err != nil {
		return 0, err
	}
	if math.Abs(l-targetH)/targetH > 0.05 {
		settings.Warn("reluctance: turns_from_gap_and_inductance settled at %.3g%% error", 100*math.Abs(l-targetH)/targetH)
	}
	return lo, nil
}

// GappingType enumerates how a gap is physically realized.
type GappingType int

const (
	GappingGrinded GappingType = iota
	GappingSpacer
	GappingResidual
	GappingDistributed
)

// minDistributedFringingFactor and maxDistributedFringingFactor bound a
// single distributed sub-gap's fringing factor (named after
// minimum_distributed_fringing_factor/maximum_distributed_fringing_factor
// in the original C++ source's gapping-constants table).
const (
	minDistributedFringingFactor = 1.15
	maxDistributedFringingFactor = 1.4
)

// adjustDistributedSubGaps grows or shrinks n by 2 (never below 3, the
// smallest odd count with a true center gap) until the fringing factor of
// a single sub-gap of length totalGap/n falls within
// [minDistributedFringingFactor, maxDistributedFringingFactor], mirroring
// the original source's two while-loops at MagnetizingInductance.cpp:257-280.
func adjustDistributedSubGaps(model Model, totalGap, sectionSide, windowWidth float64, n int) (int, error) {
	fringingAt := func(n int) (float64, error) {
		perGap := totalGap / float64(n)
		return model.FringingFactor(GapGeometry{
			LengthM: perGap, SectionAreaM2: sectionSide * sectionSide,
			SectionWidthM: sectionSide, SectionHeightM: sectionSide, WindowWidthM: windowWidth,
		})
	}
	for n > 3 {
		f, err := fringingAt(n)
		if err != nil {
			return 0, err
		}
		if f >= minDistributedFringingFactor {
			break
		}
		n -= 2
	}
	for {
		f, err := fringingAt(n)
		if err != nil {
			return 0, err
		}
		if f <= maxDistributedFringingFactor {
			break
		}
		n += 2
	}
	return n, nil
}

// GappingFromTurnsAndInductance finds, by bisection on gap length, the
// single-gap (or, for Distributed, evenly-split multi-gap) length that
// produces targetH for a fixed turns count. Residual gapping cannot be
// solved for since it has no adjustable length (spec.md §4.3: "residual
// (forbidden)"). Distributed gapping re-derives its sub-gap count each
// round by growing or shrinking it in steps of two to keep the resulting
// single-gap fringing factor within bounds, then re-bisects the gap
// length against the new count, iterating until the count stops moving.
func GappingFromTurnsAndInductance(core *magnetic.Core, gapModelKey string, turns int, targetH, tC, fHz float64, gapping GappingType, numberSubGaps int) ([]magnetic.CoreGap, error) {
	if turns <= 0 {
		return nil, errs.New(errs.InvalidInput, "reluctance.GappingFromTurnsAndInductance", "turns must be positive")
	}
	if gapping == GappingResidual {
		return nil, errs.New(errs.InvalidInput, "reluctance.GappingFromTurnsAndInductance",
			"residual type cannot be chosen to calculate the needed gapping")
	}
	model, err := ModelFromKey(gapModelKey)
	if err != nil {
		return nil, err
	}
	p, err := core.Processed()
	if err != nil {
		return nil, err
	}
	sectionSide := math.Sqrt(p.Effective.AreaM2)
	windowWidth := 0.0
	if len(p.WindingWindows) > 0 {
		windowWidth = p.WindingWindows[0].WidthM
	}

	n := numberSubGaps
	if n < 1 {
		n = 1
	}
	if gapping == GappingDistributed && n < 3 {
		n = 3
	}

	trial := func(totalGap float64, subGaps int) (float64, error) {
		c := *core
		gaps := make([]magnetic.CoreGap, subGaps)
		for i := range gaps {
			gaps[i] = magnetic.CoreGap{Kind: magnetic.GapSubtractive, LengthM: totalGap / float64(subGaps),
				SectionWidthM: sectionSide, SectionHeightM: sectionSide}
		}
		c.Gapping = gaps
		if err := c.Process(); err != nil {
			return 0, err
		}
		return InductanceFromTurnsAndGap(&c, gapModelKey, turns, tC, fHz)
	}

	const maxSubGapRounds = 5
	var hi float64
	for round := 0; ; round++ {
		var lo float64
		lo, hi = magnetic.ResidualGapM, 10e-3
		lInit, err := trial(hi, n)
		if err != nil {
			return nil, err
		}
		if lInit > targetH {
			return nil, errs.New(errs.GapException, "reluctance.GappingFromTurnsAndInductance",
				"even a %.3gmm gap yields %.6gH, above target %.6gH", hi*1000, lInit, targetH)
		}
		for i := 0; i < 60; i++ {
			mid := (lo + hi) / 2
			l, err := trial(mid, n)
			if err != nil {
				return nil, err
			}
			if l > targetH {
				lo = mid
			} else {
				hi = mid
			}
		}
		if gapping != GappingDistributed || round == maxSubGapRounds-1 {
			break
		}
		adjusted, err := adjustDistributedSubGaps(model, hi, sectionSide, windowWidth, n)
		if err != nil {
			return nil, err
		}
		if adjusted == n {
			break
		}
		n = adjusted
	}

	gaps := make([]magnetic.CoreGap, n)
	perGap := hi / float64(n)
	for i := range gaps {
		gaps[i] = magnetic.CoreGap{Kind: magnetic.GapSubtractive, LengthM: perGap,
			SectionWidthM: sectionSide, SectionHeightM: sectionSide}
	}
	return gaps, nil
}
