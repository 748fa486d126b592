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

// HarmonicLoss is one harmonic's contribution to a per-winding loss
// breakdown (spec.md §4.6's "per-harmonic breakdown").
type HarmonicLoss struct {
	HarmonicIndex int
	FrequencyHz   float64
	SkinLossesW   float64
	ProximityLossesW float64
}

// WindingLossOutput is one winding's loss breakdown at one operating
// point.
type WindingLossOutput struct {
	WindingIndex  int
	DCLossesW     float64
	SkinLossesW   float64
	ProximityLossesW float64
	TotalLossesW  float64
	Harmonics     []HarmonicLoss
}

// CoreLossOutput is the core-loss breakdown at one operating point.
type CoreLossOutput struct {
	HysteresisLossesW float64
	EddyCurrentLossesW float64
	TotalLossesW       float64
	ModelName          string
}

// FieldSnapshot captures the mesh/field evaluation used to derive losses
// and leakage at one operating point, kept for diagnostics and rendering.
type FieldSnapshot struct {
	MaxFieldAPerM float64
	PointCount    int
}

// Outputs is the processed result for one operating point (spec.md §3):
// core losses, total and per-winding winding losses, magnetizing and
// leakage inductance, impedance and temperature.
type Outputs struct {
	OperatingPointName string

	CoreLosses      CoreLossOutput
	WindingLosses   []WindingLossOutput
	TotalLossesW    float64

	MagnetizingInductanceH float64
	LeakageInductanceH     float64

	ImpedanceReal float64
	ImpedanceImag float64

	CoreTemperatureC  float64
	WindingTemperatureC []float64

	MaximumFluxDensityT float64
	Field               FieldSnapshot
}

// TotalWindingLossesW sums WindingLosses, used to cross-check
// Outputs.TotalLossesW against CoreLosses.TotalLossesW + winding losses.
func (o Outputs) TotalWindingLossesW() float64 {
	total := 0.0
	for _, w := range o.WindingLosses {
		total += w.TotalLossesW
	}
	return total
}