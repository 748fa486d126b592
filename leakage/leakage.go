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

// Package leakage computes leakage inductance by energy integration over
// the winding-window field and small-signal impedance versus frequency.
package leakage

import (
	"math"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/field"
	"github.com/magforge/engine/magnetic"
	"github.com/magforge/engine/mesh"
	"github.com/magforge/engine/numerics"
	"github.com/magforge/engine/settings"
)

// GridResolution controls the density of the energy-integration grid
// along each axis of the winding window.
type GridResolution struct {
	NX, NY int
}

// autoGrid returns a uniform grid at the configured mesh resolution (at
// least 8 per side), doubling the vertical count for planar
// (low-profile, wide-window) geometries, which need finer sampling to
// resolve the field gradient across a thin winding window. The density
// is not raised locally near conductors.
func autoGrid(windowWidthM, windowHeightM float64) GridResolution {
	base := settings.Snapshot().MeshResolution
	if base < 8 {
		base = 8
	}
	nx, ny := base, base
	if windowHeightM > 0 && windowWidthM/windowHeightM > 3 {
		// planar: wide, shallow window, needs finer vertical resolution
		ny *= 2
	}
	return GridResolution{NX: nx, NY: ny}
}

// currentDirections builds the +1/-1 excitation pattern of spec.md
// §4.8: the referenced winding carries +1, every other winding -1, so
// the resulting field is the leakage (non-cancelling) component only.
func currentDirections(numberWindings, referenceWinding int) []float64 {
	dirs := make([]float64, numberWindings)
	for i := range dirs {
		if i == referenceWinding {
			dirs[i] = 1
		} else {
			dirs[i] = -1
		}
	}
	return dirs
}

// LeakageInductance integrates |H|^2 over the winding-window grid
// (excluding turn interiors) to estimate the leakage inductance of
// windingIndex referred to the excited winding, per spec.md §4.8:
// L_leak = (2/Ipeak^2) * integral(mu0 * |H|^2) dV.
func LeakageInductance(coil *magnetic.Coil, core *magnetic.Core, windingIndex int, peakCurrentA float64, fieldModelKey string) (float64, error) {
	if peakCurrentA <= 0 {
		return 0, errs.New(errs.InvalidInput, "leakage.LeakageInductance", "peak current must be positive")
	}
	numberWindings := len(coil.Windings)
	if windingIndex < 0 || windingIndex >= numberWindings {
		return 0, errs.New(errs.InvalidInput, "leakage.LeakageInductance", "winding index %d out of range", windingIndex)
	}

	dirs := currentDirections(numberWindings, windingIndex)
	currents := make([]float64, numberWindings)
	for i, d := range dirs {
		currents[i] = d * peakCurrentA
	}

	m, err := mesh.Build(coil, core, currents)
	if err != nil {
		return 0, err
	}
	processed, err := core.Processed()
	if err != nil {
		return 0, err
	}
	if len(processed.WindingWindows) == 0 {
		return 0, errs.New(errs.CoreNotProcessed, "leakage.LeakageInductance", "core has no winding window")
	}
	win := processed.WindingWindows[0]

	model, err := field.ModelFromKey(fieldModelKey)
	if err != nil {
		return 0, err
	}

	grid := autoGrid(win.WidthM, win.HeightM)
	if grid.NX < 2 || grid.NY < 2 {
		return 0, errs.New(errs.InvalidInput, "leakage.LeakageInductance", "grid resolution too coarse")
	}

	dx := win.WidthM / float64(grid.NX)
	dy := win.HeightM / float64(grid.NY)
	cellArea := dx * dy
	left := win.CoordinateM[0] - win.WidthM/2
	bottom := win.CoordinateM[1] - win.HeightM/2

	conductorRadii := make([]float64, len(m.Filaments))
	for i, f := range m.Filaments {
		conductorRadii[i] = f.RadiusM
	}

	energy := 0.0
	for ix := 0; ix < grid.NX; ix++ {
		x := left + (float64(ix)+0.5)*dx
		for iy := 0; iy < grid.NY; iy++ {
			y := bottom + (float64(iy)+0.5)*dy
			if insideAnyConductor(x, y, m.Filaments, conductorRadii) {
				continue
			}
			hx, hy, err := model.HField(m.Filaments, x, y)
			if err != nil {
				return 0, err
			}
			h2 := hx*hx + hy*hy
			if math.IsNaN(h2) || math.IsInf(h2, 0) {
				continue
			}
			energy += h2 * cellArea
		}
	}
	l := numerics.Mu0 * energy * 2 / (peakCurrentA * peakCurrentA)
	if math.IsNaN(l) || math.IsInf(l, 0) || l < 0 {
		return 0, errs.New(errs.NaNResult, "leakage.LeakageInductance", "leakage inductance computed as %.6g", l)
	}
	return l, nil
}

func insideAnyConductor(x, y float64, filaments []field.Filament, radii []float64) bool {
	for i, f := range filaments {
		dx, dy := x-f.XM, y-f.YM
		if dx*dx+dy*dy < radii[i]*radii[i] {
			return true
		}
	}
	return false
}
