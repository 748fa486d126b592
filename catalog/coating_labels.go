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
)

// coatingStandardRow is one named insulation grade from a published
// enamel-wire standard, carrying the minimum layer count and breakdown
// voltage it guarantees.
type coatingStandardRow struct {
	layers     int
	breakdownV float64
	tempRatingC float64
}

// IEC 60317 grades (1 = single build, 2 = heavy/double build, 3 = triple
// build) and NEMA MW 1000-C's single/heavy/triple build labels, collapsed
// onto the same grade numbering since both standards define the same
// three-tier coating thickness progression.
var coatingStandardTable = map[string]coatingStandardRow{
	"IEC60317-GRADE1": {layers: 1, breakdownV: 1000, tempRatingC: 180},
	"IEC60317-GRADE2": {layers: 2, breakdownV: 1800, tempRatingC: 180},
	"IEC60317-GRADE3": {layers: 3, breakdownV: 2500, tempRatingC: 200},
	"NEMA-MW1000-SINGLE": {layers: 1, breakdownV: 1000, tempRatingC: 180},
	"NEMA-MW1000-HEAVY":  {layers: 2, breakdownV: 1800, tempRatingC: 180},
	"NEMA-MW1000-TRIPLE": {layers: 3, breakdownV: 2500, tempRatingC: 220},
}

// EncodeCoatingLabel returns the standard label matching c's layer count,
// or an error if no standard grade matches (a custom coating must be
// described directly via the Coating fields, not a label).
func EncodeCoatingLabel(standard string, c magnetic.Coating) (string, error) {
	for label, row := range coatingStandardTable {
		if !hasPrefix(label, standard) {
			continue
		}
		if row.layers == c.NumberLayers {
			return label, nil
		}
	}
	return "", errs.New(errs.ResourceMissing, "catalog.EncodeCoatingLabel", "no %s grade matches %d coating layers", standard, c.NumberLayers)
}

// DecodeCoatingLabel expands a standard grade label (e.g.
// "IEC60317-GRADE2") into an enamelled Coating with the standard's
// guaranteed layer count, breakdown voltage and temperature rating.
func DecodeCoatingLabel(label string) (magnetic.Coating, error) {
	row, ok := coatingStandardTable[label]
	if !ok {
		return magnetic.Coating{}, fmt.Errorf("unknown coating label %q", label)
	}
	return magnetic.Coating{
		Kind: magnetic.CoatingEnamelled, NumberLayers: row.layers,
		BreakdownVoltageV: row.breakdownV, Grade: row.layers, TemperatureRating: row.tempRatingC,
	}, nil
}
