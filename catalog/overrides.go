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
	"os"

	"gopkg.in/yaml.v3"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/settings"
)

// Overrides is a local YAML file of catalogue tweaks: per-entry field
// overlays applied on top of the base ndjson catalogue, for users who
// need to correct a datasheet value or add a one-off part without
// forking the shared catalogue files.
type Overrides struct {
	CoreMaterials map[string]map[string]float64 `yaml:"coreMaterials"`
	WireMaterials map[string]map[string]float64 `yaml:"wireMaterials"`
}

// LoadOverrides reads a YAML overrides file and applies scalar field
// overlays onto already-loaded catalogue entries. Unknown entry names
// are logged and skipped; this file is meant to tweak an existing
// catalogue, not introduce new parts (use LoadCores/LoadWires for that).
func (c *Catalog) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrap(errs.ResourceMissing, "catalog.LoadOverrides", err)
	}
	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return errs.Wrap(errs.InvalidInput, "catalog.LoadOverrides", err)
	}

	applied := 0
	for name, fields := range ov.CoreMaterials {
		m, ok := c.coreMaterials[name]
		if !ok {
			settings.Warn("catalog: override for unknown core material %q ignored", name)
			continue
		}
		for field, v := range fields {
			switch field {
			case "resistivityOhmM":
				m.ResistivityOhmM = v
			case "baseMuR":
				m.PermeabilityTable.BaseMuR = v
			default:
				settings.Warn("catalog: unknown override field %q for core material %q", field, name)
				continue
			}
			applied++
		}
	}
	for name, fields := range ov.WireMaterials {
		m, ok := c.wireMaterials[name]
		if !ok {
			settings.Warn("catalog: override for unknown wire material %q ignored", name)
			continue
		}
		for field, v := range fields {
			switch field {
			case "resistivityOhmM20C":
				m.ResistivityOhmM20C = v
			case "temperatureCoeff":
				m.TemperatureCoeff = v
			default:
				settings.Warn("catalog: unknown override field %q for wire material %q", field, name)
				continue
			}
			applied++
		}
	}
	settings.Info("catalog: applied %d overrides from %s", applied, path)
	return nil
}
