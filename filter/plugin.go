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
	"plugin"
	"sync"

	"github.com/magforge/engine/magnetic"
)

// loadedPlugins caches opened plugin.Plugin handles by path, mirroring
// the teacher's package-level "plugins" map (lib/plugins.go).
var (
	loadedPluginsMu sync.Mutex
	loadedPlugins   = make(map[string]*plugin.Plugin)
)

func getPlugin(path string) (*plugin.Plugin, error) {
	loadedPluginsMu.Lock()
	defer loadedPluginsMu.Unlock()
	if pi, ok := loadedPlugins[path]; ok {
		return pi, nil
	}
	pi, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	loadedPlugins[path] = pi
	return pi, nil
}

// PluginEvaluate is the symbol a filter plugin must export: a function
// with the exact signature of Filter.Evaluate, looked up by name
// "Evaluate" exactly as the teacher's GetSymbol[Evaluate] does for its
// antenna-performance plugins (lib/plugins.go).
type PluginEvaluate func(m *magnetic.Magnetic, in *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error)

// PluginFilter wraps a shared-library filter plugin, registered under
// the key "plugin:<path>".
type PluginFilter struct {
	path string
	eval PluginEvaluate
}

// NewPluginFilter opens path as a Go plugin and resolves its exported
// "Evaluate" symbol.
func NewPluginFilter(path string) (*PluginFilter, error) {
	pi, err := getPlugin(path)
	if err != nil {
		return nil, fmt.Errorf("filter: opening plugin %q: %w", path, err)
	}
	sym, err := pi.Lookup("Evaluate")
	if err != nil {
		return nil, fmt.Errorf("filter: plugin %q has no Evaluate symbol: %w", path, err)
	}
	eval, ok := sym.(func(*magnetic.Magnetic, *magnetic.Inputs, []magnetic.Outputs) (bool, float64, error))
	if !ok {
		return nil, fmt.Errorf("filter: plugin %q Evaluate has the wrong signature", path)
	}
	return &PluginFilter{path: path, eval: eval}, nil
}

func (f *PluginFilter) Name() string { return "plugin:" + f.path }

func (f *PluginFilter) Evaluate(m *magnetic.Magnetic, in *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error) {
	return f.eval(m, in, out)
}
