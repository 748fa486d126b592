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

import (
	"math"

	"github.com/magforge/engine/errs"
)

// CoreShapeFamily enumerates the standard shape families of spec.md §3.
type CoreShapeFamily int

const (
	ShapeE CoreShapeFamily = iota
	ShapeEQ
	ShapeETD
	ShapePQ
	ShapeU
	ShapeUI
	ShapePQI
	ShapeToroid
)

// CoreShape is a geometric descriptor of a standard shape family with
// named parametric dimensions (catalogue entity, looked up by name).
type CoreShape struct {
	Name   string
	Family CoreShapeFamily
	// Dimensions holds the family's named parametric dimensions in
	// meters (e.g. "A","B","C","D","E","F" for E-cores, "De"/"Di"/"H"
	// for toroids), matching how manufacturer datasheets tabulate them.
	Dimensions map[string]float64
}

// GapKind enumerates the gap types of spec.md §3.
type GapKind int

const (
	GapSubtractive GapKind = iota
	GapAdditive
	GapResidual
)

// ResidualGapM is the default gap length assumed when gapping is
// unspecified (spec.md §3: "residual gap is a small constant").
const ResidualGapM = 5e-6

// CoreGap is one air gap in the magnetic path (spec.md §3).
type CoreGap struct {
	Kind            GapKind
	LengthM         float64
	SectionWidthM   float64
	SectionHeightM  float64
	CoordinateM     [3]float64
	FringingFactor  float64
	ReluctanceAtPerWb float64
}

// Column is a processed core column (main or lateral).
type Column struct {
	CoordinateM [3]float64
	WidthM, HeightM float64
	AreaM2          float64
	LengthM         float64
}

// WindingWindowShape distinguishes rectangular (E/U/PQ) from radial
// (toroid) winding windows.
type WindingWindowShape int

const (
	WindowRectangular WindingWindowShape = iota
	WindowRadial
)

// WindingWindow is a processed winding-window region.
type WindingWindow struct {
	Shape       WindingWindowShape
	CoordinateM [3]float64
	WidthM, HeightM float64
	AreaM2          float64
}

// EffectiveParameters are the lumped reluctance-model parameters derived
// from a core's processed geometry.
type EffectiveParameters struct {
	AreaM2   float64
	LengthM  float64
	VolumeM3 float64
}

// Processed holds the derived form of a Core, computed deterministically
// from Functional fields by Core.Process(). Accessing Processed before
// Process() has run is a CoreNotProcessed error.
type Processed struct {
	Columns        []Column
	WindingWindows []WindingWindow
	Effective      EffectiveParameters
}

// Core is the functional+processed composite of spec.md §3.
type Core struct {
	ShapeName    string
	MaterialName string
	Gapping      []CoreGap
	StackCount   int

	Shape    *CoreShape
	Material *CoreMaterial

	processed *Processed
}

// Process computes Core.processed deterministically from the functional
// fields. Reprocessing with unchanged functional fields must be
// deterministic (spec.md §3 invariant); this implementation is a pure
// function of ShapeName/Shape/StackCount/Gapping, so repeated calls are
// idempotent and reproducible.
func (c *Core) Process() error {
	if c.Shape == nil {
		return errs.New(errs.ResourceMissing, "Core.Process", "shape %q not resolved", c.ShapeName)
	}
	stack := c.StackCount
	if stack < 1 {
		stack = 1
	}
	dims := c.Shape.Dimensions

	var columns []Column
	var windows []WindingWindow
	var effArea, effLength, effVolume float64

	if c.Shape.Family == ShapeToroid {
		de, di, h := dims["De"], dims["Di"], dims["H"]
		effArea = (de - di) / 2 * h * float64(stack)
		effLength = math.Pi * (de + di) / 2
		effVolume = effArea * effLength
		columns = []Column{{WidthM: (de - di) / 2, HeightM: h, AreaM2: effArea, LengthM: effLength}}
		windows = []WindingWindow{{
			Shape: WindowRadial, WidthM: di, HeightM: h, AreaM2: math.Pi * di * di / 4,
		}}
	} else {
		// generic E/EQ/ETD/PQ/U/UI rectangular-column shape: central
		// column of width A, depth C (stacked), height E; two lateral
		// columns implied by symmetry; window width/height from B/F.
		A, C, E := dims["A"], dims["C"], dims["E"]
		B, F := dims["B"], dims["F"]
		colArea := A * C * float64(stack)
		effArea = colArea
		effLength = E
		effVolume = colArea * E
		columns = []Column{
			{CoordinateM: [3]float64{0, 0, 0}, WidthM: A, HeightM: C * float64(stack), AreaM2: colArea, LengthM: E},
		}
		windows = []WindingWindow{{
			Shape: WindowRectangular, WidthM: B, HeightM: F, AreaM2: B * F,
		}}
	}

	c.processed = &Processed{
		Columns:        columns,
		WindingWindows: windows,
		Effective:      EffectiveParameters{AreaM2: effArea, LengthM: effLength, VolumeM3: effVolume},
	}
	return nil
}

// Processed returns the derived geometry, or a CoreNotProcessed error if
// Process() has not run.
func (c *Core) Processed() (*Processed, error) {
	if c.processed == nil {
		return nil, errs.New(errs.CoreNotProcessed, "Core.Processed", "core %q has not been processed", c.ShapeName)
	}
	return c.processed, nil
}

// TotalGapLengthM sums the non-lateral gap lengths, defaulting residual
// gaps to ResidualGapM when a gap's length is unset.
func (c Core) TotalGapLengthM() float64 {
	if len(c.Gapping) == 0 {
		return ResidualGapM
	}
	total := 0.0
	for _, g := range c.Gapping {
		l := g.LengthM
		if g.Kind == GapResidual && l == 0 {
			l = ResidualGapM
		}
		total += l
	}
	return total
}

// Bobbin is the usable winding area inside the core window (spec.md §3).
type Bobbin struct {
	WindowShape WindingWindowShape
	WidthM, HeightM float64
	AreaM2          float64
	WallThicknessM  float64
}

// QuickBobbin derives a bobbin from a processed core by shrinking the
// core's winding window by a nominal wall thickness, matching the
// "quick bobbin" fallback of spec.md §3.
func QuickBobbin(c *Core) (*Bobbin, error) {
	p, err := c.Processed()
	if err != nil {
		return nil, err
	}
	if len(p.WindingWindows) == 0 {
		return nil, errs.New(errs.NotProcessed, "QuickBobbin", "core has no winding window")
	}
	w := p.WindingWindows[0]
	const wall = 0.3e-3
	bw := w.WidthM - 2*wall
	bh := w.HeightM - 2*wall
	if bw < 0 {
		bw = 0
	}
	if bh < 0 {
		bh = 0
	}
	area := bw * bh
	if w.Shape == WindowRadial {
		area = math.Pi * bw * bw / 4
	}
	return &Bobbin{WindowShape: w.Shape, WidthM: bw, HeightM: bh, AreaM2: area, WallThicknessM: wall}, nil
}