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

package magnetic

import "github.com/magforge/engine/numerics"

// WireMaterial describes a conductor material (spec.md §3).
type WireMaterial struct {
	Name        string
	// Catalogue entries supply the 20C resistivity and its linear
	// temperature coefficient; ResistivityAt applies the linear model.
	// See catalog.FindWireMaterialByName.
	ResistivityOhmM20C  float64 // resistivity at 20C, ohm*m
	TemperatureCoeff    float64 // linear temperature coefficient per deg C
	RelativePermeability float64
	DensityKgM3         float64
}

// ResistivityAt returns resistivity at temperature tC using the linear
// model rho(T) = rho20 * (1 + alpha*(T-20)), matching copper/aluminium
// datasheet conventions.
func (m WireMaterial) ResistivityAt(tC float64) float64 {
	return m.ResistivityOhmM20C * (1 + m.TemperatureCoeff*(tC-20))
}

// SteinmetzPoint is one temperature-indexed row of Steinmetz coefficients.
// Materials published only as a measured loss-density grid instead of
// closed-form coefficients attach that grid as Surface; K/Alpha/Beta are
// then left zero and callers select the tabular core-loss model instead.
type SteinmetzPoint struct {
	TemperatureC float64
	K, Alpha, Beta float64
	Surface *LossSurface
}

// LossSurface is a manufacturer-published core-loss-density grid (W/m^3)
// over frequency and peak flux density, stored on log10 axes since loss
// curves are conventionally published and interpolated on log-log paper.
type LossSurface struct {
	LogFreqHz  []float64
	LogBPeakT  []float64
	LogLossWM3 [][]float64 // indexed [iFreq][iB]
}

// CoreMaterialKind distinguishes ferrite from powder cores.
type CoreMaterialKind int

const (
	MaterialFerrite CoreMaterialKind = iota
	MaterialPowder
)

// CoreMaterial describes a magnetic core material (spec.md §3).
type CoreMaterial struct {
	Name         string
	Manufacturer string
	Kind         CoreMaterialKind

	// PermeabilityTable.MuR(tC, hDcAPerM, fHz) looks up mu_r from the
	// material's tabulated curve (temperature/bias-field/frequency).
	PermeabilityTable PermeabilityTable

	// SaturationBAt(tC) returns the saturation flux density (Tesla).
	SaturationBTable []TemperaturePoint

	Steinmetz []SteinmetzPoint

	ResistivityOhmM float64
}

// TemperaturePoint is a (temperature, value) table row.
type TemperaturePoint struct {
	TemperatureC float64
	Value        float64
}

// PermeabilityTable holds a small tabulated mu_r(T, Hdc, f) surface.
// A minimal but functional model: baseline mu_r at 25C/0 bias/low
// frequency, with independent multiplicative roll-offs for temperature,
// DC bias and frequency, each interpolated from sparse tables with a
// cubic spline (numerics.Spline) and clamped at the table ends.
type PermeabilityTable struct {
	BaseMuR           float64
	TemperatureCurve  []TemperaturePoint // value = multiplier
	BiasCurve         []BiasPoint
	FrequencyCurve    []FrequencyPoint
}

type BiasPoint struct {
	HDcAPerM float64
	Value    float64 // multiplier
}

type FrequencyPoint struct {
	FrequencyHz float64
	Value       float64 // multiplier
}

// interp1 evaluates a 1-D curve via the shared spline substrate
// (numerics.Spline), clamping to the table's endpoints outside its
// domain, the same clamping convention as its old hand-rolled
// linear-interpolation replacement.
func interp1(xs []float64, ys []float64, x float64) float64 {
	if len(xs) == 0 {
		return 1
	}
	return numerics.NewSpline(xs, ys).At(x)
}

// MuR evaluates the tabulated permeability surface at the given
// temperature, DC bias field and frequency.
func (p PermeabilityTable) MuR(tC, hDcAPerM, fHz float64) float64 {
	mu := p.BaseMuR
	if len(p.TemperatureCurve) > 0 {
		xs := make([]float64, len(p.TemperatureCurve))
		ys := make([]float64, len(p.TemperatureCurve))
		for i, pt := range p.TemperatureCurve {
			xs[i], ys[i] = pt.TemperatureC, pt.Value
		}
		mu *= interp1(xs, ys, tC)
	}
	if len(p.BiasCurve) > 0 {
		xs := make([]float64, len(p.BiasCurve))
		ys := make([]float64, len(p.BiasCurve))
		for i, pt := range p.BiasCurve {
			xs[i], ys[i] = pt.HDcAPerM, pt.Value
		}
		mu *= interp1(xs, ys, hDcAPerM)
	}
	if len(p.FrequencyCurve) > 0 {
		xs := make([]float64, len(p.FrequencyCurve))
		ys := make([]float64, len(p.FrequencyCurve))
		for i, pt := range p.FrequencyCurve {
			xs[i], ys[i] = pt.FrequencyHz, pt.Value
		}
		mu *= interp1(xs, ys, fHz)
	}
	return mu
}

// SaturationBAt interpolates saturation flux density at temperature tC.
func (m CoreMaterial) SaturationBAt(tC float64) float64 {
	if len(m.SaturationBTable) == 0 {
		return 0.4 // conservative ferrite default, Tesla
	}
	xs := make([]float64, len(m.SaturationBTable))
	ys := make([]float64, len(m.SaturationBTable))
	for i, pt := range m.SaturationBTable {
		xs[i], ys[i] = pt.TemperatureC, pt.Value
	}
	return interp1(xs, ys, tC)
}

// SteinmetzAt returns the (k, alpha, beta) triple nearest in temperature.
func (m CoreMaterial) SteinmetzAt(tC float64) SteinmetzPoint {
	if len(m.Steinmetz) == 0 {
		return SteinmetzPoint{K: 1, Alpha: 1.3, Beta: 2.5}
	}
	best := m.Steinmetz[0]
	bestDiff := absF(best.TemperatureC - tC)
	for _, sp := range m.Steinmetz[1:] {
		if d := absF(sp.TemperatureC - tC); d < bestDiff {
			best, bestDiff = sp, d
		}
	}
	return best
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}