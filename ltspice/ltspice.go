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

// Package ltspice exports a processed magnetic as an LTspice subcircuit
// built from lumped elements: a magnetizing and a leakage inductance on
// the first winding and one series resistance per winding. No
// coupled-inductor (K) statement is emitted, so the secondaries are not
// magnetically coupled in the exported circuit. It does not simulate anything; the exported .asc/.cir text
// is meant to be dropped into LTspice by the caller.
package ltspice

import (
	"fmt"
	"strings"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
)

// Export renders m and its per-operating-point Outputs as an LTspice
// subcircuit definition. out must have one entry per m.Inputs.OperatingPoints
// entry, matched by index; only out[0] is used for the lumped element
// values (a single equivalent circuit, not a per-point family).
func Export(m *magnetic.Magnetic, out []magnetic.Outputs) (string, error) {
	if len(m.Coil.Windings) == 0 {
		return "", errs.New(errs.InvalidInput, "ltspice.Export", "magnetic has no windings")
	}
	if len(out) == 0 {
		return "", errs.New(errs.InvalidInput, "ltspice.Export", "no outputs supplied")
	}
	o := out[0]

	var b strings.Builder
	name := subcircuitName(m.Name)
	fmt.Fprintf(&b, "* %s -- magnetizing/leakage lumped model\n", m.Name)
	fmt.Fprintf(&b, ".subckt %s", name)
	for i := range m.Coil.Windings {
		fmt.Fprintf(&b, " p%d n%d", i+1, i+1)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Lmag p1 n1mid %.9g\n", o.MagnetizingInductanceH)
	fmt.Fprintf(&b, "Llk n1mid n1 %.9g\n", o.LeakageInductanceH)

	var irms [9]float64 // scratch, avoids an alloc for the common few-winding case
	if len(m.Inputs.OperatingPoints) > 0 {
		op := m.Inputs.OperatingPoints[0]
		for i := range m.Coil.Windings {
			if exc, ok := op.ExcitationFor(i); ok && i < len(irms) {
				if p := exc.Current.Processed(); p != nil {
					irms[i] = p.RMS
				}
			}
		}
	}

	for i := range m.Coil.Windings {
		rdc := 0.0
		if i < len(o.WindingLosses) && i < len(irms) {
			rdc = dcResistanceFromLoss(o.WindingLosses[i], irms[i])
		}
		fmt.Fprintf(&b, "Rw%d p%d w%dmid %.9g\n", i+1, i+1, i+1, rdc)
	}
	fmt.Fprintf(&b, ".ends %s\n", name)
	return b.String(), nil
}

func subcircuitName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
	if clean == "" {
		clean = "magnetic"
	}
	return clean
}

// dcResistanceFromLoss backs out an equivalent DC resistance from the
// reported DC loss and the winding's RMS current (P = I^2*R), used for a
// first-order LTspice lumped-element estimate.
func dcResistanceFromLoss(w magnetic.WindingLossOutput, irms float64) float64 {
	if w.DCLossesW <= 0 || irms <= 0 {
		return 0
	}
	return w.DCLossesW / (irms * irms)
}
