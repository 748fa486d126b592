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

// Package thermal computes core losses (Steinmetz-family volumetric loss
// density models) and the resulting core temperature rise from a
// lumped thermal-resistance estimate.
package thermal

import (
	"fmt"
	"math"
	"strings"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
	"github.com/magforge/engine/numerics"
)

// CoreLossModel estimates volumetric core-loss density (W/m^3) from peak
// flux density, frequency and the material's Steinmetz coefficients.
type CoreLossModel interface {
	Name() string
	Info() string
	LossDensity(sp magnetic.SteinmetzPoint, bPeakT, fHz float64) (float64, error)
}

var coreLossModels map[string]CoreLossModel

func init() {
	coreLossModels = make(map[string]CoreLossModel)
	register := func(m CoreLossModel) { coreLossModels[m.Name()] = m }
	register(steinmetzModel{})
	register(igseModel{})
	register(mseModel{})
	register(lossFactorModel{})
	register(roshenModel{})
	register(tabularModel{})
}

// CoreLossModelFromKey returns the registered core-loss model for key.
func CoreLossModelFromKey(key string) (CoreLossModel, error) {
	key = strings.TrimSpace(key)
	m, ok := coreLossModels[key]
	if !ok {
		return nil, fmt.Errorf("thermal: unknown core-loss model %q", key)
	}
	return m, nil
}

// steinmetzModel is the classical sinusoidal Steinmetz equation:
// P_v = K * f^alpha * B^beta.
type steinmetzModel struct{}

func (steinmetzModel) Name() string { return "steinmetz" }
func (steinmetzModel) Info() string { return "classical Steinmetz equation" }
func (steinmetzModel) LossDensity(sp magnetic.SteinmetzPoint, bPeakT, fHz float64) (float64, error) {
	if bPeakT < 0 || fHz < 0 {
		return 0, errs.New(errs.InvalidInput, "thermal.steinmetzModel", "flux density and frequency must be non-negative")
	}
	return sp.K * math.Pow(fHz, sp.Alpha) * math.Pow(bPeakT, sp.Beta), nil
}

// igseModel is the improved generalized Steinmetz equation's correction
// coefficient ki, derived from alpha/beta, applied as ki*f^alpha*B^beta.
// Only the peak flux density and frequency reach the model, so the
// waveform's dB/dt is not integrated.
type igseModel struct{}

func (igseModel) Name() string { return "igse" }
func (igseModel) Info() string { return "improved generalized Steinmetz equation" }
func (igseModel) LossDensity(sp magnetic.SteinmetzPoint, bPeakT, fHz float64) (float64, error) {
	if bPeakT < 0 || fHz < 0 {
		return 0, errs.New(errs.InvalidInput, "thermal.igseModel", "flux density and frequency must be non-negative")
	}
	ki := sp.K / (math.Pow(2, sp.Beta+1) * math.Pi * betaIntegral(sp.Alpha, sp.Beta))
	return ki * math.Pow(fHz, sp.Alpha) * math.Pow(bPeakT, sp.Beta), nil
}

// betaIntegral approximates IGSE's angular correction integral
// int_0^2pi |cos(theta)|^alpha * 2^(beta-alpha) dtheta via the trapezoidal rule.
func betaIntegral(alpha, beta float64) float64 {
	const n = 200
	h := 2 * math.Pi / n
	sum := 0.0
	for i := 0; i <= n; i++ {
		theta := float64(i) * h
		w := 1.0
		if i == 0 || i == n {
			w = 0.5
		}
		sum += w * math.Pow(math.Abs(math.Cos(theta)), alpha) * math.Pow(2, beta-alpha)
	}
	return sum * h
}

// mseModel is the modified Steinmetz equation, which replaces the
// excitation frequency with an equivalent frequency derived from the
// waveform's average |dB/dt| (approximated here from fHz and beta alone
// since the caller already reduces the waveform to fundamental + peak).
type mseModel struct{}

func (mseModel) Name() string { return "mse" }
func (mseModel) Info() string { return "modified Steinmetz equation" }
func (mseModel) LossDensity(sp magnetic.SteinmetzPoint, bPeakT, fHz float64) (float64, error) {
	if bPeakT < 0 || fHz < 0 {
		return 0, errs.New(errs.InvalidInput, "thermal.mseModel", "flux density and frequency must be non-negative")
	}
	fEq := 2 * fHz * fHz / math.Pi
	return sp.K * math.Pow(fEq, sp.Alpha) * math.Pow(bPeakT, sp.Beta), nil
}

// lossFactorModel uses a manufacturer-style loss-factor figure (already
// folding in K) at a reference temperature, applicable when only a
// single published loss curve is available instead of separate
// Steinmetz coefficients.
type lossFactorModel struct{}

func (lossFactorModel) Name() string { return "loss_factor" }
func (lossFactorModel) Info() string { return "manufacturer loss-factor curve" }
func (lossFactorModel) LossDensity(sp magnetic.SteinmetzPoint, bPeakT, fHz float64) (float64, error) {
	if bPeakT < 0 || fHz < 0 {
		return 0, errs.New(errs.InvalidInput, "thermal.lossFactorModel", "flux density and frequency must be non-negative")
	}
	return sp.K * fHz * math.Pow(bPeakT, sp.Beta), nil
}

// roshenModel splits the loss into separate hysteresis and eddy-current
// terms with independent frequency exponents (Roshen's two-term model),
// rather than Steinmetz's single combined power law.
type roshenModel struct{}

func (roshenModel) Name() string { return "roshen" }
func (roshenModel) Info() string { return "Roshen hysteresis+eddy two-term model" }
func (roshenModel) LossDensity(sp magnetic.SteinmetzPoint, bPeakT, fHz float64) (float64, error) {
	if bPeakT < 0 || fHz < 0 {
		return 0, errs.New(errs.InvalidInput, "thermal.roshenModel", "flux density and frequency must be non-negative")
	}
	hyst := sp.K * fHz * math.Pow(bPeakT, sp.Beta)
	eddy := sp.K * 0.1 * fHz * fHz * bPeakT * bPeakT
	return hyst + eddy, nil
}

// tabularModel looks up loss density from a manufacturer-published
// measured grid instead of a closed-form equation, for materials whose
// datasheet gives discrete (f, B) -> loss points rather than Steinmetz
// coefficients. Interpolation is bilinear on log10(f)/log10(B)/log10(P),
// the conventional axes loss curves are published and read on.
type tabularModel struct{}

func (tabularModel) Name() string { return "tabular" }
func (tabularModel) Info() string {
	return "proprietary tabulated loss-density surface (bilinear log-log interpolation)"
}
func (tabularModel) LossDensity(sp magnetic.SteinmetzPoint, bPeakT, fHz float64) (float64, error) {
	if bPeakT <= 0 || fHz <= 0 {
		return 0, errs.New(errs.InvalidInput, "thermal.tabularModel", "flux density and frequency must be positive")
	}
	s := sp.Surface
	if s == nil || len(s.LogFreqHz) == 0 || len(s.LogBPeakT) == 0 || len(s.LogLossWM3) == 0 {
		return 0, errs.New(errs.InvalidInput, "thermal.tabularModel", "material has no tabulated loss surface")
	}
	logLoss := numerics.Bilinear(s.LogFreqHz, s.LogBPeakT, s.LogLossWM3, math.Log10(fHz), math.Log10(bPeakT))
	return math.Pow(10, logLoss), nil
}

// BFromLoss inverts a CoreLossModel by bisection on peak flux density,
// finding B such that LossDensity(B) matches targetLossDensity within
// 1% (spec.md §8 testable property 5).
func BFromLoss(model CoreLossModel, sp magnetic.SteinmetzPoint, targetLossDensityWM3, fHz, bSaturationT float64) (float64, error) {
	if targetLossDensityWM3 <= 0 {
		return 0, errs.New(errs.InvalidInput, "thermal.BFromLoss", "target loss density must be positive")
	}
	lo, hi := 1e-6, bSaturationT
	if hi <= lo {
		hi = 1.0
	}
	lHi, err := model.LossDensity(sp, hi, fHz)
	if err != nil {
		return 0, err
	}
	if lHi < targetLossDensityWM3 {
		return 0, errs.New(errs.GapException, "thermal.BFromLoss", "target loss density %.6g unreachable below saturation %.3gT", targetLossDensityWM3, bSaturationT)
	}
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		l, err := model.LossDensity(sp, mid, fHz)
		if err != nil {
			return 0, err
		}
		if l < targetLossDensityWM3 {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-9 {
			break
		}
	}
	b := (lo + hi) / 2
	l, err := model.LossDensity(sp, b, fHz)
	if err != nil {
		return 0, err
	}
	if math.Abs(l-targetLossDensityWM3)/targetLossDensityWM3 > 0.01 {
		return 0, errs.New(errs.Diverged, "thermal.BFromLoss", "bisection settled %.3g%% off target", 100*math.Abs(l-targetLossDensityWM3)/targetLossDensityWM3)
	}
	return b, nil
}
