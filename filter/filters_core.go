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

	"github.com/magforge/engine/magnetic"
)

func init() {
	register(areaProductFilter{})
	register(energyStoredFilter{})
	register(estimatedCostFilter{})
	register(lossesFilter{name: "core_dc_losses", includeSkin: false, includeProximity: false})
	register(lossesFilter{name: "core_dc_skin_losses", includeSkin: true, includeProximity: false})
	register(lossesFilter{name: "losses", includeSkin: true, includeProximity: true})
	register(lossesFilter{name: "losses_without_proximity", includeSkin: true, includeProximity: false})
	register(coreMinimumImpedanceFilter{})
	register(turnsRatiosFilter{})
	register(maximumDimensionsFilter{})
	register(saturationFilter{})
	register(impedanceFilter{})
	register(magnetizingInductanceFilter{})
	register(fringingFactorFilter{})
}

func meanInputPowerW(in *magnetic.Inputs) float64 {
	if len(in.OperatingPoints) == 0 {
		return 0
	}
	total := 0.0
	for _, op := range in.OperatingPoints {
		for _, exc := range op.Excitations {
			vp, ip := exc.Voltage.Processed(), exc.Current.Processed()
			if vp != nil && ip != nil {
				total += vp.RMS * ip.RMS
			}
		}
	}
	return total / float64(len(in.OperatingPoints))
}

func lossFraction(in *magnetic.Inputs) float64 {
	f := in.DesignRequirements.MaxLossFraction
	if f <= 0 {
		f = 0.1
	}
	return f
}

// areaProductFilter checks core area-product (Ae*Aw) against the value
// required to transfer mean power at a scaled flux density, the classic
// Ap-method core-selection screen (spec.md §4.10).
type areaProductFilter struct{}

func (areaProductFilter) Name() string { return "area_product" }
func (areaProductFilter) Evaluate(m *magnetic.Magnetic, in *magnetic.Inputs, _ []magnetic.Outputs) (bool, float64, error) {
	processed, err := m.Core.Processed()
	if err != nil {
		return false, 0, err
	}
	if len(processed.WindingWindows) == 0 {
		return false, 0, nil
	}
	ae := processed.Effective.AreaM2
	aw := processed.WindingWindows[0].AreaM2
	actual := ae * aw

	power := meanInputPowerW(in)
	const utilizationFactor = 0.4
	const scaledB = 0.2 // Tesla, conservative reference flux swing
	const currentDensity = 4e6
	required := power / (utilizationFactor * scaledB * currentDensity)

	const epsilon = 1e-12
	valid := actual >= required*(1-epsilon)
	score := required / math.Max(actual, 1e-18)
	return valid, score, nil
}

// energyStoredFilter compares the core's maximum stored magnetic energy
// (1/2 * B_sat^2/mu_eff * Ve) against the energy required by the design's
// magnetizing inductance and peak current.
type energyStoredFilter struct{}

func (energyStoredFilter) Name() string { return "energy_stored" }
func (energyStoredFilter) Evaluate(m *magnetic.Magnetic, in *magnetic.Inputs, _ []magnetic.Outputs) (bool, float64, error) {
	processed, err := m.Core.Processed()
	if err != nil {
		return false, 0, err
	}
	bSat := 0.3
	if m.Core.Material != nil {
		bSat = m.Core.Material.SaturationBAt(25)
	}
	muEff := 2000.0
	if m.Core.Material != nil {
		muEff = m.Core.Material.PermeabilityTable.MuR(25, 0, 0)
	}
	const mu0 = 1.25663706212e-6
	maxEnergy := 0.5 * bSat * bSat / (mu0 * muEff) * processed.Effective.VolumeM3

	lMin := in.DesignRequirements.MagnetizingInductanceH[0]
	peakI := peakExcitationCurrent(in, 0)
	required := 0.5 * lMin * peakI * peakI

	valid := maxEnergy >= required
	score := required / math.Max(maxEnergy, 1e-18)
	return valid, score, nil
}

func peakExcitationCurrent(in *magnetic.Inputs, windingIndex int) float64 {
	var peak float64
	for _, op := range in.OperatingPoints {
		if exc, ok := op.ExcitationFor(windingIndex); ok {
			if p := exc.Current.Processed(); p != nil && p.Peak > peak {
				peak = p.Peak
			}
		}
	}
	return peak
}

// estimatedCostFilter scores manufacturability by layer count and stack
// factor: more layers and stacked cores cost more to wind and assemble.
type estimatedCostFilter struct{}

func (estimatedCostFilter) Name() string { return "estimated_cost" }
func (estimatedCostFilter) Evaluate(m *magnetic.Magnetic, _ *magnetic.Inputs, _ []magnetic.Outputs) (bool, float64, error) {
	layers := 0
	for _, w := range m.Coil.Windings {
		layers += w.NumberParallels
		if w.NumberParallels == 0 {
			layers++
		}
	}
	stack := m.Core.StackCount
	if stack < 1 {
		stack = 1
	}
	score := float64(layers) * (1 + 0.25*float64(stack-1))
	return true, score, nil
}

// lossesFilter implements the core&DC / core,DC&skin / losses /
// losses-without-proximity family of spec.md §4.10: sum the requested
// loss terms across operating points and compare to a fraction of mean
// input power.
type lossesFilter struct {
	name             string
	includeSkin      bool
	includeProximity bool
}

func (f lossesFilter) Name() string { return f.name }
func (f lossesFilter) Evaluate(_ *magnetic.Magnetic, in *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error) {
	if len(out) == 0 {
		return false, 0, nil
	}
	var totalLoss float64
	for _, o := range out {
		totalLoss += o.CoreLosses.TotalLossesW
		for _, wl := range o.WindingLosses {
			totalLoss += wl.DCLossesW
			if f.includeSkin {
				totalLoss += wl.SkinLossesW
			}
			if f.includeProximity {
				totalLoss += wl.ProximityLossesW
			}
		}
	}
	meanLoss := totalLoss / float64(len(out))
	power := meanInputPowerW(in)
	if power <= 0 {
		return meanLoss == 0, meanLoss, nil
	}
	limit := lossFraction(in) * power
	return meanLoss < limit, meanLoss / power, nil
}

// coreMinimumImpedanceFilter rejects a candidate when the |Z| reported in
// any operating point's outputs is below a required minimum impedance
// (spec.md §4.10). Each requirement is compared against every output
// regardless of the requirement's frequency, and no self-resonant
// frequency bound is checked.
type coreMinimumImpedanceFilter struct{}

func (coreMinimumImpedanceFilter) Name() string { return "core_minimum_impedance" }
func (coreMinimumImpedanceFilter) Evaluate(_ *magnetic.Magnetic, in *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error) {
	reqs := in.DesignRequirements.MinimumImpedance
	if len(reqs) == 0 || len(out) == 0 {
		return true, 0, nil
	}
	worstRatio := 0.0
	for _, r := range reqs {
		for _, o := range out {
			z := math.Hypot(o.ImpedanceReal, o.ImpedanceImag)
			if z <= 0 {
				continue
			}
			ratio := r.MinimumOhms / z
			if ratio > worstRatio {
				worstRatio = ratio
			}
			if ratio > 1 {
				return false, worstRatio, nil
			}
		}
	}
	return true, worstRatio, nil
}

// turnsRatiosFilter checks each design requirement's turns ratio is
// reproduced within tolerance (spec.md §4.10).
type turnsRatiosFilter struct{}

func (turnsRatiosFilter) Name() string { return "turns_ratios" }
func (turnsRatiosFilter) Evaluate(m *magnetic.Magnetic, in *magnetic.Inputs, _ []magnetic.Outputs) (bool, float64, error) {
	wanted := in.DesignRequirements.TurnsRatios
	if len(wanted) == 0 {
		return true, 0, nil
	}
	got, err := m.TurnsRatios()
	if err != nil {
		return false, 0, err
	}
	var worst float64
	for i, w := range wanted {
		if i >= len(got) {
			return false, 1, nil
		}
		if w == 0 {
			continue
		}
		diff := math.Abs(got[i]-w) / w
		if diff > worst {
			worst = diff
		}
	}
	const tol = 0.05
	return worst <= tol, worst, nil
}

// maximumDimensionsFilter checks the core's bounding dimensions against
// the design's envelope, using the shape's catalogue dimensions
// (A+2B, C, E) as a proxy for the physical outline.
type maximumDimensionsFilter struct{}

func (maximumDimensionsFilter) Name() string { return "maximum_dimensions" }
func (maximumDimensionsFilter) Evaluate(m *magnetic.Magnetic, in *magnetic.Inputs, _ []magnetic.Outputs) (bool, float64, error) {
	limits := in.DesignRequirements.MaximumDimensionsM
	if limits == [3]float64{} {
		return true, 0, nil
	}
	dims := m.Core.Shape.Dimensions
	actual := [3]float64{dims["A"] + 2*dims["B"], dims["C"], dims["E"]}
	worst := 0.0
	for i, limit := range limits {
		if limit <= 0 {
			continue
		}
		ratio := actual[i] / limit
		if ratio > worst {
			worst = ratio
		}
	}
	return worst <= 1, worst, nil
}

// saturationFilter checks the peak flux density at every operating point
// stays below the material's saturation flux density.
type saturationFilter struct{}

func (saturationFilter) Name() string { return "saturation" }
func (saturationFilter) Evaluate(m *magnetic.Magnetic, _ *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error) {
	bSat := 0.3
	if m.Core.Material != nil {
		bSat = m.Core.Material.SaturationBAt(25)
	}
	worst := 0.0
	for _, o := range out {
		if o.MaximumFluxDensityT > worst {
			worst = o.MaximumFluxDensityT
		}
	}
	return worst < bSat, worst / bSat, nil
}

// impedanceFilter checks |Z| reported in the outputs is within the
// design's minimum-impedance requirement tolerance and reuses the value
// already populated by the adviser's physics pass.
type impedanceFilter struct{}

func (impedanceFilter) Name() string { return "impedance" }
func (impedanceFilter) Evaluate(_ *magnetic.Magnetic, in *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error) {
	return coreMinimumImpedanceFilter{}.Evaluate(nil, in, out)
}

// magnetizingInductanceFilter checks the computed magnetizing inductance
// falls within the design's [min,max] band.
type magnetizingInductanceFilter struct{}

func (magnetizingInductanceFilter) Name() string { return "magnetizing_inductance" }
func (magnetizingInductanceFilter) Evaluate(_ *magnetic.Magnetic, in *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error) {
	band := in.DesignRequirements.MagnetizingInductanceH
	if len(out) == 0 {
		return false, 0, nil
	}
	l := out[0].MagnetizingInductanceH
	if band[0] > 0 && l < band[0] {
		return false, band[0]/math.Max(l, 1e-18) - 1, nil
	}
	if band[1] > 0 && l > band[1] {
		return false, l/band[1] - 1, nil
	}
	return true, 0, nil
}

// fringingFactorFilter rejects gapped cores whose fringing factor exceeds
// a practical ceiling, beyond which the gap-reluctance model's fringing
// correction stops being trustworthy.
type fringingFactorFilter struct{}

func (fringingFactorFilter) Name() string { return "fringing_factor" }
func (fringingFactorFilter) Evaluate(m *magnetic.Magnetic, in *magnetic.Inputs, _ []magnetic.Outputs) (bool, float64, error) {
	ceiling := in.DesignRequirements.MaxFringingFactor
	if ceiling <= 0 {
		ceiling = 1.15
	}
	worst := 1.0
	for _, g := range m.Core.Gapping {
		if g.FringingFactor > worst {
			worst = g.FringingFactor
		}
	}
	return worst <= ceiling, worst / ceiling, nil
}
