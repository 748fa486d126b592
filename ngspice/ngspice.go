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

// Package ngspice exports a processed magnetic as a standalone ngspice
// netlist (.cir), using K-coupling statements between per-winding
// inductors rather than LTspice's subcircuit-pin convention. No
// simulation is run; the text is handed to an external ngspice binary
// by the caller.
package ngspice

import (
	"fmt"
	"strings"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
)

// Export renders m and out[0] as an ngspice netlist: one inductor and
// one series resistor per winding, plus K-coupling statements derived
// from the magnetizing/leakage split.
func Export(m *magnetic.Magnetic, out []magnetic.Outputs) (string, error) {
	if len(m.Coil.Windings) == 0 {
		return "", errs.New(errs.InvalidInput, "ngspice.Export", "magnetic has no windings")
	}
	if len(out) == 0 {
		return "", errs.New(errs.InvalidInput, "ngspice.Export", "no outputs supplied")
	}
	o := out[0]

	var b strings.Builder
	fmt.Fprintf(&b, "* %s\n", m.Name)

	selfH := o.MagnetizingInductanceH + o.LeakageInductanceH
	var irms float64
	if len(m.Inputs.OperatingPoints) > 0 {
		op := m.Inputs.OperatingPoints[0]
		if exc, ok := op.ExcitationFor(0); ok {
			if p := exc.Current.Processed(); p != nil {
				irms = p.RMS
			}
		}
	}

	for i := range m.Coil.Windings {
		rdc := 0.0
		if i < len(o.WindingLosses) && irms > 0 {
			rdc = o.WindingLosses[i].DCLossesW / (irms * irms)
		}
		fmt.Fprintf(&b, "L%d n%da n%db %.9g\n", i+1, i+1, i+1, selfH)
		fmt.Fprintf(&b, "R%d n%db n%dc %.9g\n", i+1, i+1, i+1, rdc)
	}

	if len(m.Coil.Windings) > 1 && selfH > 0 {
		k := (selfH - o.LeakageInductanceH) / selfH
		for i := 1; i < len(m.Coil.Windings); i++ {
			fmt.Fprintf(&b, "K1%d L1 L%d %.6g\n", i+1, i+1, k)
		}
	}
	b.WriteString(".end\n")
	return b.String(), nil
}
