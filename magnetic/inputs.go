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

// OperatingPointExcitation is one winding's current and voltage signal
// pair at one operating point (spec.md §3).
type OperatingPointExcitation struct {
	WindingIndex int
	Current      SignalDescriptor
	Voltage      SignalDescriptor
}

// OperatingPoint bundles the per-winding excitations that coexist at one
// ambient/operating condition.
type OperatingPoint struct {
	Name          string
	AmbientTempC  float64
	Excitations   []OperatingPointExcitation
}

// ExcitationFor returns the excitation for windingIndex, or ok=false if
// none was supplied.
func (op OperatingPoint) ExcitationFor(windingIndex int) (OperatingPointExcitation, bool) {
	for _, e := range op.Excitations {
		if e.WindingIndex == windingIndex {
			return e, true
		}
	}
	return OperatingPointExcitation{}, false
}

// InsulationStandard names one insulation-coordination standard family
// consulted by the insulation package.
type InsulationStandard int

const (
	StandardIEC60664_1 InsulationStandard = iota
	StandardIEC62368_1
	StandardIEC61558
)

// OvervoltageCategory is IEC 60664-1's OVC-I..OVC-IV classification.
type OvervoltageCategory int

const (
	OVCI OvervoltageCategory = iota + 1
	OVCII
	OVCIII
	OVCIV
)

// PollutionDegree is IEC 60664-1's pollution-degree classification (1-3).
type PollutionDegree int

// InsulationType distinguishes functional/basic/supplementary/reinforced
// insulation per IEC 60664-1.
type InsulationType int

const (
	InsulationFunctional InsulationType = iota
	InsulationBasic
	InsulationSupplementary
	InsulationReinforced
	InsulationDouble
)

// ImpedanceRequirement is one minimum-|Z| point a design must meet at a
// given frequency (spec.md §3 Inputs: "minimum impedance vs. frequency").
type ImpedanceRequirement struct {
	FrequencyHz  float64
	MinimumOhms  float64
}

// DesignRequirements constrains the search space explored by the adviser
// package (spec.md §4.11).
type DesignRequirements struct {
	Name                  string
	MagnetizingInductanceH [2]float64 // [min,max], max<=0 means unbounded
	TurnsRatios           []float64
	LeakageInductanceH    [2]float64
	MaximumDimensionsM    [3]float64 // 0 means unconstrained on that axis
	MaximumWeightKg       float64
	TopologyName          string
	InsulationType        InsulationType
	OvervoltageCategory   OvervoltageCategory
	PollutionDegree       PollutionDegree
	CTIGroup              int // IEC 60664-1 material group, 1-3b encoded 1..4
	AltitudeM             float64
	Standards             []InsulationStandard
	AllowedWireTypes      []WireKind
	AllowedCoreShapes     []CoreShapeFamily
	Market                string
	MaximumCost           float64
	MinimumImpedance      []ImpedanceRequirement
	MaxLossFraction       float64 // fraction of mean input power; 0 means default 0.1
	MaxCurrentDensityAPerM2 float64 // 0 means default 5e6 A/m^2
	MaxFringingFactor     float64 // 0 means default 1.15
}

// Inputs is the full functional input of a design: the operating points a
// magnetic must satisfy plus the requirements bounding its design space.
type Inputs struct {
	DesignRequirements DesignRequirements
	OperatingPoints    []OperatingPoint
}