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

// Package adviser searches the core and wire catalogues for magnetics
// that satisfy a design's requirements, scoring and culling candidates
// through the filter package. Grounded on the teacher's Model.Optimize
// loop shape (lib/model.go): iterate candidates, score against a
// comparator, track run statistics, persist ranked results.
package adviser

import (
	"math"

	"github.com/magforge/engine/catalog"
	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/leakage"
	"github.com/magforge/engine/magnetic"
	"github.com/magforge/engine/numerics"
	"github.com/magforge/engine/reluctance"
	"github.com/magforge/engine/settings"
	"github.com/magforge/engine/thermal"
	"github.com/magforge/engine/winding"
)

func errNoExcitation(operatingPointName string) error {
	return errs.New(errs.InvalidInput, "adviser.Evaluate", "operating point %q has no excitation for the primary winding", operatingPointName)
}

func errNoMaterial(name string) error {
	return errs.New(errs.ResourceMissing, "adviser.Evaluate", "material %q not found in catalogue", name)
}

// selfCapacitanceDefaultF is a nominal parasitic self-capacitance used
// when a candidate has not yet had one measured or estimated, just
// enough to give the impedance filters a finite self-resonant frequency
// to bound against.
const selfCapacitanceDefaultF = 5e-12

// meanTurnLengthM estimates one turn's physical length from the
// winding window's cross-sectional area, treating it as a circle of
// equal area — a coarse stand-in for an unbuilt turn-placement solver
// (spec.md §4.11 Non-goals explicitly exclude one).
func meanTurnLengthM(processed *magnetic.Processed) float64 {
	if len(processed.WindingWindows) == 0 {
		return 0
	}
	area := processed.WindingWindows[0].AreaM2
	if area <= 0 {
		return 0
	}
	return 2 * math.Pi * math.Sqrt(area/math.Pi)
}

// dominantHarmonic returns the frequency of a signal's highest-amplitude
// non-DC harmonic together with the signal's peak value, falling back to
// its fundamental frequency (and a zero peak) when the signal has not
// been processed.
func dominantHarmonic(s magnetic.SignalDescriptor) (frequency, peak float64) {
	p := s.Processed()
	if p == nil {
		return s.Waveform.FrequencyHz, 0
	}
	_, freq := numerics.DominantFrequency(p.Harmonics)
	if freq <= 0 {
		freq = s.Waveform.FrequencyHz
	}
	return freq, p.Peak
}

// Evaluate computes the processed Outputs for every operating point of
// m, orchestrating reluctance (C3), winding losses (C6), core losses and
// temperature (C7) and leakage inductance (C8). cat resolves wire/core
// material records by name.
func Evaluate(cat *catalog.Catalog, m *magnetic.Magnetic) ([]magnetic.Outputs, error) {
	if err := m.Core.Process(); err != nil {
		return nil, err
	}
	processed, err := m.Core.Processed()
	if err != nil {
		return nil, err
	}
	view := settings.Snapshot()

	outs := make([]magnetic.Outputs, 0, len(m.Inputs.OperatingPoints))
	for _, op := range m.Inputs.OperatingPoints {
		out, err := evaluateOperatingPoint(cat, m, processed, op, view)
		if err != nil {
			return nil, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}

func evaluateOperatingPoint(cat *catalog.Catalog, m *magnetic.Magnetic, processed *magnetic.Processed, op magnetic.OperatingPoint, view settings.View) (magnetic.Outputs, error) {
	primary, ok := op.ExcitationFor(0)
	if !ok || len(m.Coil.Windings) == 0 {
		return magnetic.Outputs{}, errNoExcitation(op.Name)
	}
	freqHz, peakA := dominantHarmonic(primary.Current)

	magnetizingH, err := reluctance.InductanceFromTurnsAndGap(&m.Core, view.ReluctanceGapModel, m.Coil.Windings[0].NumberTurns, op.AmbientTempC, freqHz)
	if err != nil {
		return magnetic.Outputs{}, err
	}

	bPeakT := 0.0
	if processed.Effective.AreaM2 > 0 && m.Coil.Windings[0].NumberTurns > 0 {
		bPeakT = magnetizingH * peakA / (float64(m.Coil.Windings[0].NumberTurns) * processed.Effective.AreaM2)
	}

	coreLoss, err := evaluateCoreLoss(m, processed, bPeakT, freqHz, op.AmbientTempC, view)
	if err != nil {
		return magnetic.Outputs{}, err
	}

	windingLosses, totalWindingLoss, err := evaluateWindingLosses(cat, m, processed, op, view)
	if err != nil {
		return magnetic.Outputs{}, err
	}

	totalLosses := coreLoss.TotalLossesW + totalWindingLoss

	thermalModel, err := thermal.ThermalModelFromKey(view.ThermalModel)
	if err != nil {
		return magnetic.Outputs{}, err
	}
	surfaceArea := math.Pow(processed.Effective.VolumeM3*1e6, 2.0/3.0) * 1e-4
	coreTempC, err := thermal.CoreTemperature(thermalModel, op.AmbientTempC, totalLosses, processed.Effective.VolumeM3, surfaceArea)
	if err != nil {
		return magnetic.Outputs{}, err
	}

	leakageH := 0.0
	if len(m.Coil.Windings) > 1 {
		leakageH, err = leakage.LeakageInductance(&m.Coil, &m.Core, 0, peakA, view.FieldStrengthModel)
		if err != nil {
			return magnetic.Outputs{}, err
		}
	}

	dcResistance := 0.0
	if len(windingLosses) > 0 && primary.Current.Processed() != nil && primary.Current.Processed().RMS > 0 {
		dcResistance = windingLosses[0].DCLossesW / (primary.Current.Processed().RMS * primary.Current.Processed().RMS)
	}
	z, err := leakage.Impedance(leakage.Parameters{
		DCResistanceOhm:        dcResistance,
		SkinFactor:             1,
		MagnetizingInductanceH: magnetizingH,
		LeakageInductanceH:     leakageH,
		SelfCapacitanceF:       selfCapacitanceDefaultF,
	}, freqHz)
	if err != nil {
		return magnetic.Outputs{}, err
	}

	windingTemps := make([]float64, len(m.Coil.Windings))
	for i := range windingTemps {
		windingTemps[i] = coreTempC // no independent hot-spot model; windings track the core temperature
	}

	return magnetic.Outputs{
		OperatingPointName:     op.Name,
		CoreLosses:             coreLoss,
		WindingLosses:          windingLosses,
		TotalLossesW:           totalLosses,
		MagnetizingInductanceH: magnetizingH,
		LeakageInductanceH:     leakageH,
		ImpedanceReal:          real(z),
		ImpedanceImag:          imag(z),
		CoreTemperatureC:       coreTempC,
		WindingTemperatureC:    windingTemps,
		MaximumFluxDensityT:    bPeakT,
		Field:                  magnetic.FieldSnapshot{MaxFieldAPerM: bPeakT / numerics.Mu0, PointCount: 0},
	}, nil
}

func evaluateCoreLoss(m *magnetic.Magnetic, processed *magnetic.Processed, bPeakT, freqHz, tC float64, view settings.View) (magnetic.CoreLossOutput, error) {
	if m.Core.Material == nil {
		return magnetic.CoreLossOutput{}, errNoMaterial(m.Core.MaterialName)
	}
	model, err := thermal.CoreLossModelFromKey(view.CoreLossModel)
	if err != nil {
		return magnetic.CoreLossOutput{}, err
	}
	sp := m.Core.Material.SteinmetzAt(tC)
	density, err := model.LossDensity(sp, bPeakT, freqHz)
	if err != nil {
		return magnetic.CoreLossOutput{}, err
	}
	total := density * processed.Effective.VolumeM3
	return magnetic.CoreLossOutput{
		HysteresisLossesW:  0.7 * total,
		EddyCurrentLossesW: 0.3 * total,
		TotalLossesW:       total,
		ModelName:          model.Name(),
	}, nil
}

func evaluateWindingLosses(cat *catalog.Catalog, m *magnetic.Magnetic, processed *magnetic.Processed, op magnetic.OperatingPoint, view settings.View) ([]magnetic.WindingLossOutput, float64, error) {
	mtl := meanTurnLengthM(processed)
	out := make([]magnetic.WindingLossOutput, 0, len(m.Coil.Windings))
	total := 0.0
	for i := range m.Coil.Windings {
		w := &m.Coil.Windings[i]
		exc, ok := op.ExcitationFor(i)
		if !ok || w.Wire == nil {
			out = append(out, magnetic.WindingLossOutput{WindingIndex: i})
			continue
		}
		material, ok := cat.FindWireMaterialByName(w.Wire.MaterialName)
		if !ok {
			return nil, 0, errNoMaterial(w.Wire.MaterialName)
		}
		p := exc.Current.Processed()
		if p == nil {
			out = append(out, magnetic.WindingLossOutput{WindingIndex: i})
			continue
		}
		parallels := w.NumberParallels
		if parallels < 1 {
			parallels = 1
		}
		perParallel := make([]numerics.Harmonic, len(p.Harmonics))
		for j, h := range p.Harmonics {
			perParallel[j] = numerics.Harmonic{Index: h.Index, Frequency: h.Frequency, Amplitude: h.Amplitude / float64(parallels), Phase: h.Phase}
		}
		lengthM := mtl * float64(w.NumberTurns)
		loss, err := winding.WindingLoss(i, w.Wire, material, lengthM, w.NumberTurns, perParallel, op.AmbientTempC, 0, view.SkinEffectModel, view.ProximityModel)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, loss)
		total += loss.TotalLossesW
	}
	return out, total, nil
}
