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

package catalog

import (
	"fmt"
	"math"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
	"github.com/magforge/engine/settings"
)

type coatingRecord struct {
	Kind              string  `json:"kind"`
	NumberLayers      int     `json:"numberLayers"`
	ThicknessM        float64 `json:"thicknessM"`
	BreakdownVoltageV float64 `json:"breakdownVoltageV"`
	Grade             int     `json:"grade"`
	TemperatureRating float64 `json:"temperatureRatingC"`
	DielectricStrength float64 `json:"dielectricStrengthVPerM"`
	RelativePermittivity float64 `json:"relativePermittivity"`
}

func (r coatingRecord) toCoating() magnetic.Coating {
	kind := magnetic.CoatingEnamelled
	switch r.Kind {
	case "served":
		kind = magnetic.CoatingServed
	case "insulated":
		kind = magnetic.CoatingInsulated
	}
	return magnetic.Coating{
		Kind: kind, NumberLayers: r.NumberLayers, ThicknessM: r.ThicknessM,
		BreakdownVoltageV: r.BreakdownVoltageV, Grade: r.Grade,
		TemperatureRating: r.TemperatureRating, DielectricStrengthVPerM: r.DielectricStrength,
		RelativePermittivity: r.RelativePermittivity,
	}
}

type wireRecord struct {
	Name         string        `json:"name"`
	Kind         string        `json:"kind"`
	MaterialName string        `json:"materialName"`
	Coating      coatingRecord `json:"coating"`

	ConductingDiameterM float64 `json:"conductingDiameterM"`
	OuterDiameterM      float64 `json:"outerDiameterM"`

	ConductingWidthM  float64 `json:"conductingWidthM"`
	ConductingHeightM float64 `json:"conductingHeightM"`
	OuterWidthM       float64 `json:"outerWidthM"`
	OuterHeightM      float64 `json:"outerHeightM"`

	StrandConductingDiameterM float64 `json:"strandConductingDiameterM"`
	StrandOuterDiameterM      float64 `json:"strandOuterDiameterM"`
	NumberConductors          int     `json:"numberConductors"`

	CuttableHeightM float64 `json:"cuttableHeightM"`
}

var wireKindByName = map[string]magnetic.WireKind{
	"round": magnetic.WireRound, "litz": magnetic.WireLitz,
	"rectangular": magnetic.WireRectangular, "foil": magnetic.WireFoil, "planar": magnetic.WirePlanar,
}

func (r wireRecord) toWire() (*magnetic.Wire, error) {
	kind, known := wireKindByName[r.Kind]
	if !known {
		return nil, fmt.Errorf("unknown wire kind %q", r.Kind)
	}
	w := &magnetic.Wire{
		Name: r.Name, Kind: kind, MaterialName: r.MaterialName, Coating: r.Coating.toCoating(),
		Round: magnetic.RoundDims{ConductingDiameterM: r.ConductingDiameterM, OuterDiameterM: r.OuterDiameterM},
		Rect: magnetic.RectDims{
			ConductingWidthM: r.ConductingWidthM, ConductingHeightM: r.ConductingHeightM,
			OuterWidthM: r.OuterWidthM, OuterHeightM: r.OuterHeightM,
		},
		NumberConductors: r.NumberConductors,
		CuttableHeightM:  r.CuttableHeightM,
	}
	if kind == magnetic.WireLitz {
		if r.StrandConductingDiameterM <= 0 || r.NumberConductors <= 0 {
			return nil, fmt.Errorf("litz wire %q missing strand geometry", r.Name)
		}
		w.Strand = &magnetic.RoundDims{ConductingDiameterM: r.StrandConductingDiameterM, OuterDiameterM: r.StrandOuterDiameterM}
	}
	return w, nil
}

// LoadWires reads a wires.ndjson file and merges its records into the
// catalogue, keyed by name.
func (c *Catalog) LoadWires(path string) error {
	f, err := openNDJSON(path)
	if err != nil {
		return errs.Wrap(errs.ResourceMissing, "catalog.LoadWires", err)
	}
	defer f.Close()

	ok, skipped := eachRecord(f, path, func(line []byte) error {
		var rec wireRecord
		if err := jsonRecord(line, &rec); err != nil {
			return err
		}
		if rec.Name == "" {
			return fmt.Errorf("missing name")
		}
		w, err := rec.toWire()
		if err != nil {
			return err
		}
		if _, exists := c.wires[rec.Name]; !exists {
			c.wireOrder = append(c.wireOrder, rec.Name)
		}
		c.wires[rec.Name] = w
		return nil
	})
	settings.Info("catalog: loaded %d wires from %s (%d skipped)", ok, path, skipped)
	return nil
}

type wireMaterialRecord struct {
	Name                 string  `json:"name"`
	ResistivityOhmM20C   float64 `json:"resistivityOhmM20C"`
	TemperatureCoeff     float64 `json:"temperatureCoeff"`
	RelativePermeability float64 `json:"relativePermeability"`
	DensityKgM3          float64 `json:"densityKgM3"`
}

// LoadWireMaterials reads a materials.ndjson file of conductor materials
// (copper, aluminium, silver-plated variants).
func (c *Catalog) LoadWireMaterials(path string) error {
	f, err := openNDJSON(path)
	if err != nil {
		return errs.Wrap(errs.ResourceMissing, "catalog.LoadWireMaterials", err)
	}
	defer f.Close()

	ok, skipped := eachRecord(f, path, func(line []byte) error {
		var rec wireMaterialRecord
		if err := jsonRecord(line, &rec); err != nil {
			return err
		}
		if rec.Name == "" {
			return fmt.Errorf("missing name")
		}
		if rec.ResistivityOhmM20C <= 0 || math.IsNaN(rec.ResistivityOhmM20C) {
			return fmt.Errorf("invalid resistivity for %q", rec.Name)
		}
		c.wireMaterials[rec.Name] = &magnetic.WireMaterial{
			Name: rec.Name, ResistivityOhmM20C: rec.ResistivityOhmM20C, TemperatureCoeff: rec.TemperatureCoeff,
			RelativePermeability: rec.RelativePermeability, DensityKgM3: rec.DensityKgM3,
		}
		return nil
	})
	settings.Info("catalog: loaded %d wire materials from %s (%d skipped)", ok, path, skipped)
	return nil
}
