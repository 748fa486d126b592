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

import "github.com/magforge/engine/magnetic"

func init() {
	register(geometryFilter{kind: geometryVolume})
	register(geometryFilter{kind: geometryArea})
	register(geometryFilter{kind: geometryHeight})
	register(temperatureRiseFilter{})
	for _, includeProximity := range []bool{true, false} {
		register(compositeFilter{kind: compositeLossesVolume, includeProximity: includeProximity})
		register(compositeFilter{kind: compositeVolumeDeltaT, includeProximity: includeProximity})
		register(compositeFilter{kind: compositeLossesVolumeDeltaT, includeProximity: includeProximity})
	}
}

type geometryKind int

const (
	geometryVolume geometryKind = iota
	geometryArea
	geometryHeight
)

// geometryFilter reports the core's volume, footprint area or height as
// a pure scoring (never invalid on its own), letting the adviser weight
// smaller-is-better packaging preferences (spec.md §4.10).
type geometryFilter struct {
	kind geometryKind
}

func (f geometryFilter) Name() string {
	switch f.kind {
	case geometryArea:
		return "area"
	case geometryHeight:
		return "height"
	default:
		return "volume"
	}
}

func (f geometryFilter) Evaluate(m *magnetic.Magnetic, _ *magnetic.Inputs, _ []magnetic.Outputs) (bool, float64, error) {
	processed, err := m.Core.Processed()
	if err != nil {
		return false, 0, err
	}
	switch f.kind {
	case geometryArea:
		dims := m.Core.Shape.Dimensions
		return true, (dims["A"] + 2*dims["B"]) * dims["C"], nil
	case geometryHeight:
		return true, m.Core.Shape.Dimensions["E"], nil
	default:
		return true, processed.Effective.VolumeM3, nil
	}
}

// temperatureRiseFilter reports the worst core-temperature rise above
// ambient seen across operating points.
type temperatureRiseFilter struct{}

func (temperatureRiseFilter) Name() string { return "temperature_rise" }
func (temperatureRiseFilter) Evaluate(_ *magnetic.Magnetic, in *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error) {
	var worst float64
	for i, o := range out {
		if i >= len(in.OperatingPoints) {
			continue
		}
		rise := o.CoreTemperatureC - in.OperatingPoints[i].AmbientTempC
		if rise > worst {
			worst = rise
		}
	}
	return true, worst, nil
}

type compositeKind int

const (
	compositeLossesVolume compositeKind = iota
	compositeVolumeDeltaT
	compositeLossesVolumeDeltaT
)

// compositeFilter implements the Losses*Volume / Volume*deltaT /
// Losses*Volume*deltaT composite scorings of spec.md §4.10, each with a
// "without proximity" variant that omits proximity loss from the losses
// term.
type compositeFilter struct {
	kind             compositeKind
	includeProximity bool
}

func (f compositeFilter) Name() string {
	suffix := ""
	if !f.includeProximity {
		suffix = "_without_proximity"
	}
	switch f.kind {
	case compositeVolumeDeltaT:
		return "volume_delta_t" + suffix
	case compositeLossesVolumeDeltaT:
		return "losses_volume_delta_t" + suffix
	default:
		return "losses_volume" + suffix
	}
}

func (f compositeFilter) Evaluate(m *magnetic.Magnetic, in *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error) {
	var losses float64
	for _, o := range out {
		losses += o.CoreLosses.TotalLossesW
		for _, wl := range o.WindingLosses {
			losses += wl.DCLossesW + wl.SkinLossesW
			if f.includeProximity {
				losses += wl.ProximityLossesW
			}
		}
	}
	if len(out) > 0 {
		losses /= float64(len(out))
	}

	processed, err := m.Core.Processed()
	if err != nil {
		return false, 0, err
	}
	volume := processed.Effective.VolumeM3

	_, deltaT, err := temperatureRiseFilter{}.Evaluate(m, in, out)
	if err != nil {
		return false, 0, err
	}

	switch f.kind {
	case compositeVolumeDeltaT:
		return true, volume * deltaT, nil
	case compositeLossesVolumeDeltaT:
		return true, losses * volume * deltaT, nil
	default:
		return true, losses * volume, nil
	}
}
