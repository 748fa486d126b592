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

// Package simba exports a processed magnetic as a SIMBA component
// document (the JSON schema SIMBA imports for a coupled-inductor
// component), without driving a SIMBA simulation itself.
package simba

import (
	"encoding/json"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
)

// SimbaWinding is one winding entry of a SimbaDocument.
type SimbaWinding struct {
	Name            string  `json:"name"`
	NumberTurns     int     `json:"numberTurns"`
	ResistanceOhm   float64 `json:"resistanceOhm"`
	LeakageInductanceH float64 `json:"leakageInductanceH"`
}

// SimbaDocument is the component schema SIMBA's "Import component"
// dialog accepts for a coupled inductor/transformer.
type SimbaDocument struct {
	Kind                   string         `json:"kind"`
	Name                   string         `json:"name"`
	MagnetizingInductanceH float64        `json:"magnetizingInductanceH"`
	CoreLossesW            float64        `json:"coreLossesW"`
	Windings               []SimbaWinding `json:"windings"`
}

// Export builds a SimbaDocument from m and out[0] and returns its
// indented JSON encoding.
func Export(m *magnetic.Magnetic, out []magnetic.Outputs) (string, error) {
	if len(m.Coil.Windings) == 0 {
		return "", errs.New(errs.InvalidInput, "simba.Export", "magnetic has no windings")
	}
	if len(out) == 0 {
		return "", errs.New(errs.InvalidInput, "simba.Export", "no outputs supplied")
	}
	o := out[0]

	doc := SimbaDocument{
		Kind:                   "coupled-inductor",
		Name:                   m.Name,
		MagnetizingInductanceH: o.MagnetizingInductanceH,
		CoreLossesW:            o.CoreLosses.TotalLossesW,
	}
	var irms float64
	if len(m.Inputs.OperatingPoints) > 0 {
		op := m.Inputs.OperatingPoints[0]
		if exc, ok := op.ExcitationFor(0); ok {
			if p := exc.Current.Processed(); p != nil {
				irms = p.RMS
			}
		}
	}
	for i, w := range m.Coil.Windings {
		rdc := 0.0
		if i < len(o.WindingLosses) && irms > 0 {
			rdc = o.WindingLosses[i].DCLossesW / (irms * irms)
		}
		doc.Windings = append(doc.Windings, SimbaWinding{
			Name:               w.Name,
			NumberTurns:        w.NumberTurns,
			ResistanceOhm:      rdc,
			LeakageInductanceH: o.LeakageInductanceH,
		})
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(body), nil
}
