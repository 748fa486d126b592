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

package render

import (
	"bytes"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/leakage"
)

// ImpedancePlot renders |Z(f)| over freqsHz as an SVG, mirroring the
// teacher's gonum/plot usage for performance-vs-parameter sweeps
// (lib/plot.go's plotXY) applied to leakage.Impedance instead of antenna
// gain.
func ImpedancePlot(p leakage.Parameters, freqsHz []float64) (string, error) {
	if len(freqsHz) == 0 {
		return "", errs.New(errs.InvalidInput, "render.ImpedancePlot", "no frequencies supplied")
	}

	pts := make(plotter.XYs, 0, len(freqsHz))
	for _, f := range freqsHz {
		z, err := leakage.Impedance(p, f)
		if err != nil {
			continue
		}
		mag := realAbs(z)
		pts = append(pts, plotter.XY{X: f, Y: mag})
	}
	if len(pts) == 0 {
		return "", errs.New(errs.CalculationError, "render.ImpedancePlot", "impedance evaluated at no frequency")
	}

	plt := plot.New()
	plt.Title.Text = "impedance magnitude vs frequency"
	plt.X.Label.Text = "Hz"
	plt.Y.Label.Text = "ohm"
	plt.X.Scale = plot.LogScale{}
	plt.Y.Scale = plot.LogScale{}
	plt.X.Tick.Marker = plot.LogTicks{}
	plt.Y.Tick.Marker = plot.LogTicks{}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", err
	}
	plt.Add(line)

	writer, err := plt.WriterTo(6*vg.Inch, 4*vg.Inch, "svg")
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func realAbs(z complex128) float64 {
	return math.Hypot(real(z), imag(z))
}
