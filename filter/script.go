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

package filter

import (
	"fmt"

	lua "github.com/Shopify/go-lua"

	"github.com/magforge/engine/magnetic"
)

// ScriptFilter runs a user-supplied Lua script as a filter, mirroring
// the teacher's LuaGenerator (lib/lua.go): geometry/loss summaries are
// pushed in as globals, the script calls back into "report(valid,
// score)" the way the teacher's generator scripts call "setAngle".
type ScriptFilter struct {
	path  string
	state *lua.State
}

// NewScriptFilter loads path as a Lua-scripted filter, registered under
// the key "lua:<path>" (spec.md §4.10, mirroring the teacher's
// "lua:<script>" custom evaluator wiring).
func NewScriptFilter(path string) (*ScriptFilter, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)
	return &ScriptFilter{path: path, state: state}, nil
}

func (f *ScriptFilter) Name() string { return "lua:" + f.path }

func (f *ScriptFilter) Evaluate(m *magnetic.Magnetic, in *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error) {
	var valid bool
	var score float64
	reported := false

	f.state.PushNumber(float64(len(m.Coil.Windings)))
	f.state.SetGlobal("numberWindings")

	var totalLosses float64
	for _, o := range out {
		totalLosses += o.TotalLossesW
	}
	f.state.PushNumber(totalLosses / float64(maxInt(len(out), 1)))
	f.state.SetGlobal("meanTotalLosses")

	if dr := in.DesignRequirements; dr.MaximumWeightKg > 0 {
		f.state.PushNumber(dr.MaximumWeightKg)
		f.state.SetGlobal("maximumWeightKg")
	}

	f.state.Register("report", func(state *lua.State) int {
		v := state.ToBoolean(1)
		s, _ := state.ToNumber(2)
		valid, score, reported = v, s, true
		return 0
	})

	if err := lua.DoFile(f.state, f.path); err != nil {
		return false, 0, fmt.Errorf("filter: lua script %q failed: %w", f.path, err)
	}
	if !reported {
		return false, 0, fmt.Errorf("filter: lua script %q never called report(valid, score)", f.path)
	}
	return valid, score, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
