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

// Package render draws already-computed core/coil geometry as a
// diagnostic SVG cross-section. It does not decide layout; Core.Process
// and Coil's winding bookkeeping own every coordinate drawn here.
package render

import (
	"bytes"

	svg "github.com/ajstarks/svgo"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
)

// scale converts meters to SVG user units; chosen so a typical ETD/PQ
// core cross-section (tens of millimeters) renders at a legible size.
const scale = 4000.0
const margin = 20

var (
	clrCore    = "fill:none;stroke:#444444;stroke-width:1"
	clrWindow  = "fill:#eef3ff;stroke:#8899bb;stroke-width:1"
	clrWinding = "fill:#ffcc66;stroke:#996600;stroke-width:1"
)

// CrossSection renders m's processed core columns and winding window as
// an SVG document, one winding band per entry in m.Coil.Windings stacked
// across the window height.
func CrossSection(m *magnetic.Magnetic) (string, error) {
	p, err := m.Core.Processed()
	if err != nil {
		return "", errs.Wrap(errs.NotProcessed, "render.CrossSection", err)
	}
	if len(p.WindingWindows) == 0 {
		return "", errs.New(errs.NotProcessed, "render.CrossSection", "core has no winding window")
	}
	window := p.WindingWindows[0]

	width := int(window.WidthM*scale) + 4*margin
	height := int(window.HeightM*scale) + 2*margin
	if width < 200 {
		width = 200
	}
	if height < 200 {
		height = 200
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Title(m.Name)

	for _, col := range p.Columns {
		x := margin
		y := margin
		w := int(col.WidthM * scale)
		h := int(col.HeightM * scale)
		canvas.Rect(x, y, w, h, clrCore)
	}

	winX := margin + margin
	winY := margin
	winW := int(window.WidthM * scale)
	winH := int(window.HeightM * scale)
	canvas.Rect(winX, winY, winW, winH, clrWindow)

	if n := len(m.Coil.Windings); n > 0 {
		bandH := winH / n
		for i, w := range m.Coil.Windings {
			y := winY + i*bandH
			canvas.Rect(winX, y, winW, bandH-2, clrWinding)
			canvas.Text(winX+4, y+bandH/2, w.Name, "font-size:10px")
		}
	}

	canvas.End()
	return buf.String(), nil
}
