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

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
	"github.com/magforge/engine/settings"
)

type coreShapeRecord struct {
	Name       string             `json:"name"`
	Family     string             `json:"family"`
	Dimensions map[string]float64 `json:"dimensions"`
}

var shapeFamilyByName = map[string]magnetic.CoreShapeFamily{
	"E": magnetic.ShapeE, "EQ": magnetic.ShapeEQ, "ETD": magnetic.ShapeETD,
	"PQ": magnetic.ShapePQ, "U": magnetic.ShapeU, "UI": magnetic.ShapeUI,
	"PQI": magnetic.ShapePQI, "TOROID": magnetic.ShapeToroid,
}

// LoadCores reads a cores.ndjson file and merges its records into the
// catalogue, keyed by name. A name collision overwrites the earlier
// entry, matching a YAML-override file layered over a base catalogue.
func (c *Catalog) LoadCores(path string) error {
	f, err := openNDJSON(path)
	if err != nil {
		return errs.Wrap(errs.ResourceMissing, "catalog.LoadCores", err)
	}
	defer f.Close()

	ok, skipped := eachRecord(f, path, func(line []byte) error {
		var rec coreShapeRecord
		if err := jsonRecord(line, &rec); err != nil {
			return err
		}
		if rec.Name == "" {
			return fmt.Errorf("missing name")
		}
		family, known := shapeFamilyByName[rec.Family]
		if !known {
			return fmt.Errorf("unknown shape family %q", rec.Family)
		}
		if _, exists := c.cores[rec.Name]; !exists {
			c.coreOrder = append(c.coreOrder, rec.Name)
		}
		c.cores[rec.Name] = &magnetic.CoreShape{Name: rec.Name, Family: family, Dimensions: rec.Dimensions}
		return nil
	})
	settings.Info("catalog: loaded %d core shapes from %s (%d skipped)", ok, path, skipped)
	return nil
}

type temperaturePointRecord struct {
	T float64 `json:"t"`
	V float64 `json:"v"`
}

type biasPointRecord struct {
	HDc float64 `json:"hDc"`
	V   float64 `json:"v"`
}

type frequencyPointRecord struct {
	F float64 `json:"f"`
	V float64 `json:"v"`
}

type steinmetzRecord struct {
	T     float64 `json:"t"`
	K     float64 `json:"k"`
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

type coreMaterialRecord struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Kind         string `json:"kind"`

	BaseMuR          float64                 `json:"baseMuR"`
	TemperatureCurve []temperaturePointRecord `json:"temperatureCurve"`
	BiasCurve        []biasPointRecord        `json:"biasCurve"`
	FrequencyCurve   []frequencyPointRecord   `json:"frequencyCurve"`

	SaturationB []temperaturePointRecord `json:"saturationB"`
	Steinmetz   []steinmetzRecord        `json:"steinmetz"`
	Resistivity float64                  `json:"resistivityOhmM"`
}

// LoadCoreMaterials reads a materials.ndjson file of core materials.
func (c *Catalog) LoadCoreMaterials(path string) error {
	f, err := openNDJSON(path)
	if err != nil {
		return errs.Wrap(errs.ResourceMissing, "catalog.LoadCoreMaterials", err)
	}
	defer f.Close()

	ok, skipped := eachRecord(f, path, func(line []byte) error {
		var rec coreMaterialRecord
		if err := jsonRecord(line, &rec); err != nil {
			return err
		}
		if rec.Name == "" {
			return fmt.Errorf("missing name")
		}
		kind := magnetic.MaterialFerrite
		if rec.Kind == "powder" {
			kind = magnetic.MaterialPowder
		}
		m := &magnetic.CoreMaterial{
			Name: rec.Name, Manufacturer: rec.Manufacturer, Kind: kind,
			PermeabilityTable: magnetic.PermeabilityTable{BaseMuR: rec.BaseMuR},
			ResistivityOhmM:   rec.Resistivity,
		}
		for _, p := range rec.TemperatureCurve {
			m.PermeabilityTable.TemperatureCurve = append(m.PermeabilityTable.TemperatureCurve,
				magnetic.TemperaturePoint{TemperatureC: p.T, Value: p.V})
		}
		for _, p := range rec.BiasCurve {
			m.PermeabilityTable.BiasCurve = append(m.PermeabilityTable.BiasCurve,
				magnetic.BiasPoint{HDcAPerM: p.HDc, Value: p.V})
		}
		for _, p := range rec.FrequencyCurve {
			m.PermeabilityTable.FrequencyCurve = append(m.PermeabilityTable.FrequencyCurve,
				magnetic.FrequencyPoint{FrequencyHz: p.F, Value: p.V})
		}
		for _, p := range rec.SaturationB {
			m.SaturationBTable = append(m.SaturationBTable, magnetic.TemperaturePoint{TemperatureC: p.T, Value: p.V})
		}
		for _, s := range rec.Steinmetz {
			m.Steinmetz = append(m.Steinmetz, magnetic.SteinmetzPoint{TemperatureC: s.T, K: s.K, Alpha: s.Alpha, Beta: s.Beta})
		}
		if _, exists := c.coreMaterials[rec.Name]; !exists {
			c.coreMaterialOrder = append(c.coreMaterialOrder, rec.Name)
		}
		c.coreMaterials[rec.Name] = m
		return nil
	})
	settings.Info("catalog: loaded %d core materials from %s (%d skipped)", ok, path, skipped)
	return nil
}
