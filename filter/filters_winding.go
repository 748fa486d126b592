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

package filter

import (
	"math"

	"github.com/magforge/engine/insulation"
	"github.com/magforge/engine/magnetic"
)

func init() {
	register(areaFilter{withParallels: false})
	register(areaFilter{withParallels: true})
	register(effectiveResistanceFilter{})
	register(proximityFactorFilter{})
	register(skinLossesDensityFilter{})
	register(solidInsulationRequirementsFilter{})
	register(currentDensityFilter{effective: false})
	register(currentDensityFilter{effective: true})
	register(magnetomotiveForceFilter{})
}

func windingConductorAreaM2(w *magnetic.Winding) float64 {
	if w.Wire == nil {
		return 0
	}
	parallels := w.NumberParallels
	if parallels < 1 {
		parallels = 1
	}
	return w.Wire.ConductingArea() * float64(parallels)
}

// areaFilter checks whether a winding's total conductor area (optionally
// spread across parallels) fits within its assigned bobbin section,
// penalizing overflow proportionally (spec.md §4.10 "area no/with
// parallels").
type areaFilter struct {
	withParallels bool
}

func (f areaFilter) Name() string {
	if f.withParallels {
		return "area_with_parallels"
	}
	return "area_no_parallels"
}

func (f areaFilter) Evaluate(m *magnetic.Magnetic, _ *magnetic.Inputs, _ []magnetic.Outputs) (bool, float64, error) {
	bobbin, err := magnetic.QuickBobbin(&m.Core)
	if err != nil {
		return false, 0, err
	}
	if len(m.Coil.Windings) == 0 || bobbin.AreaM2 <= 0 {
		return false, 0, nil
	}
	windowArea := bobbin.AreaM2 / float64(len(m.Coil.Windings))

	var worst float64
	for i := range m.Coil.Windings {
		w := &m.Coil.Windings[i]
		area := windingConductorAreaM2(w) * float64(w.NumberTurns)
		if !f.withParallels {
			parallels := w.NumberParallels
			if parallels < 1 {
				parallels = 1
			}
			area /= float64(parallels)
		}
		ratio := area / windowArea
		if ratio > worst {
			worst = ratio
		}
	}
	return worst <= 1, worst, nil
}

// effectiveFrequencyHz picks the highest-frequency harmonic present in
// any operating point's excitation for windingIndex, the "maximum
// effective frequency" spec.md §4.10 evaluates per-winding surrogate
// costs at.
func effectiveFrequencyHz(in *magnetic.Inputs, windingIndex int) float64 {
	var maxF float64
	for _, op := range in.OperatingPoints {
		exc, ok := op.ExcitationFor(windingIndex)
		if !ok {
			continue
		}
		p := exc.Current.Processed()
		if p == nil {
			continue
		}
		for _, h := range p.Harmonics {
			if h.Frequency > maxF {
				maxF = h.Frequency
			}
		}
	}
	return maxF
}

// effectiveResistanceFilter scores each winding's total-to-DC loss ratio
// as reported in the outputs (all harmonics already aggregated) as a
// cheap surrogate cost, without re-running the loss models. It does not
// evaluate the ratio at a single maximum effective frequency.
type effectiveResistanceFilter struct{}

func (effectiveResistanceFilter) Name() string { return "effective_resistance" }
func (effectiveResistanceFilter) Evaluate(m *magnetic.Magnetic, _ *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error) {
	if len(out) == 0 {
		return true, 0, nil
	}
	var worst float64
	for _, o := range out {
		for _, wl := range o.WindingLosses {
			if wl.DCLossesW <= 0 {
				continue
			}
			ratio := wl.TotalLossesW / wl.DCLossesW
			if ratio > worst {
				worst = ratio
			}
		}
	}
	return true, worst, nil
}

// proximityFactorFilter surfaces the worst proximity-to-skin loss ratio
// reported across operating points, a per-winding surrogate cost.
type proximityFactorFilter struct{}

func (proximityFactorFilter) Name() string { return "proximity_factor" }
func (proximityFactorFilter) Evaluate(_ *magnetic.Magnetic, _ *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error) {
	var worst float64
	for _, o := range out {
		for _, wl := range o.WindingLosses {
			if wl.SkinLossesW <= 0 {
				continue
			}
			ratio := wl.ProximityLossesW / wl.SkinLossesW
			if ratio > worst {
				worst = ratio
			}
		}
	}
	return true, worst, nil
}

// skinLossesDensityFilter scores skin losses per unit conductor volume,
// a manufacturing-independent surrogate for hot-spot risk.
type skinLossesDensityFilter struct{}

func (skinLossesDensityFilter) Name() string { return "skin_losses_density" }
func (skinLossesDensityFilter) Evaluate(m *magnetic.Magnetic, _ *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error) {
	var totalSkin float64
	for _, o := range out {
		for _, wl := range o.WindingLosses {
			totalSkin += wl.SkinLossesW
		}
	}
	volume := 0.0
	for i := range m.Coil.Windings {
		w := &m.Coil.Windings[i]
		volume += windingConductorAreaM2(w) * float64(w.NumberTurns) * 0.05 // nominal mean-turn length, m
	}
	if volume <= 0 {
		return true, 0, nil
	}
	return true, totalSkin / volume, nil
}

// solidInsulationRequirementsFilter verifies every winding's coating
// breakdown voltage meets the solid-insulation voltage derived from the
// insulation coordinator for this design. Coating grade and layer count
// are not checked.
type solidInsulationRequirementsFilter struct{}

func (solidInsulationRequirementsFilter) Name() string { return "solid_insulation_requirements" }
func (solidInsulationRequirementsFilter) Evaluate(m *magnetic.Magnetic, in *magnetic.Inputs, _ []magnetic.Outputs) (bool, float64, error) {
	dr := in.DesignRequirements
	if len(dr.Standards) == 0 {
		return true, 0, nil
	}
	req := insulation.Requirement{
		Standards:           dr.Standards,
		InsulationType:      dr.InsulationType,
		PollutionDegree:     dr.PollutionDegree,
		CTIGroup:            dr.CTIGroup,
		OvervoltageCategory: dr.OvervoltageCategory,
		AltitudeM:           dr.AltitudeM,
	}
	result, err := insulation.Coordinate(req)
	if err != nil {
		return false, 0, err
	}
	required := result.SolidInsulationVoltageV

	worst := 0.0
	for i := range m.Coil.Windings {
		w := &m.Coil.Windings[i]
		if w.Wire == nil {
			continue
		}
		breakdown := w.Wire.Coating.BreakdownVoltageV
		if breakdown <= 0 {
			return false, math.Inf(1), nil
		}
		ratio := required / breakdown
		if ratio > worst {
			worst = ratio
		}
	}
	return worst <= 1, worst, nil
}

// currentDensityFilter checks per-winding DC or effective (RMS) current
// density against a conservative ceiling (spec.md §4.10).
type currentDensityFilter struct {
	effective bool
}

func (f currentDensityFilter) Name() string {
	if f.effective {
		return "effective_current_density"
	}
	return "dc_current_density"
}

func (f currentDensityFilter) Evaluate(m *magnetic.Magnetic, in *magnetic.Inputs, _ []magnetic.Outputs) (bool, float64, error) {
	ceiling := in.DesignRequirements.MaxCurrentDensityAPerM2
	if ceiling <= 0 {
		ceiling = 5e6
	}
	worst := 0.0
	for i := range m.Coil.Windings {
		w := &m.Coil.Windings[i]
		area := windingConductorAreaM2(w)
		if area <= 0 {
			continue
		}
		var current float64
		for _, op := range in.OperatingPoints {
			exc, ok := op.ExcitationFor(i)
			if !ok {
				continue
			}
			p := exc.Current.Processed()
			if p == nil {
				continue
			}
			c := p.RMS
			if !f.effective {
				c = p.Peak // DC/peak surrogate when effective=false
			}
			if c > current {
				current = c
			}
		}
		density := current / area
		if density > worst {
			worst = density
		}
	}
	return worst <= ceiling, worst / ceiling, nil
}

// magnetomotiveForceFilter finds the maximum |N*I| across all windings
// and operating points, using each excitation's peak current.
type magnetomotiveForceFilter struct{}

func (magnetomotiveForceFilter) Name() string { return "magnetomotive_force" }
func (magnetomotiveForceFilter) Evaluate(m *magnetic.Magnetic, in *magnetic.Inputs, _ []magnetic.Outputs) (bool, float64, error) {
	worst := 0.0
	for i := range m.Coil.Windings {
		w := &m.Coil.Windings[i]
		for _, op := range in.OperatingPoints {
			exc, ok := op.ExcitationFor(i)
			if !ok {
				continue
			}
			p := exc.Current.Processed()
			if p == nil {
				continue
			}
			mmf := math.Abs(float64(w.NumberTurns) * p.Peak)
			if mmf > worst {
				worst = mmf
			}
		}
	}
	return true, worst, nil
}
