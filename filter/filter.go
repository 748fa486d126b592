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

// Package filter scores and validates candidate magnetics against a
// design's requirements. Every filter implements the same
// valid/score contract, registered in a closed, named registry and
// composed by the adviser via weighted sums, mirroring the teacher's
// CustomEvaluators/Comparator machinery (lib/performance.go).
package filter

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/magforge/engine/magnetic"
)

// Filter scores one candidate magnetic against its design requirements
// and operating points. Smaller scores are better unless the adviser
// inverts the sign for a particular weighting (spec.md §4.10).
type Filter interface {
	Name() string
	Evaluate(m *magnetic.Magnetic, in *magnetic.Inputs, out []magnetic.Outputs) (valid bool, score float64, err error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Filter)
)

// register adds a filter to the closed registry. Called from each
// filter family's init().
func register(f Filter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[f.Name()] = f
}

// FromKey returns the registered filter for key, or an error if no
// filter of that name exists. A "lua:<path>" key is resolved via
// NewScriptFilter and a "plugin:<path>" key via NewPluginFilter,
// mirroring the teacher's target-string dispatch in NewComparator.
func FromKey(key string) (Filter, error) {
	ref := strings.SplitN(key, ":", 2)
	switch ref[0] {
	case "lua":
		if len(ref) < 2 {
			return nil, fmt.Errorf("filter: incomplete lua filter specification %q", key)
		}
		return NewScriptFilter(ref[1])
	case "plugin":
		if len(ref) < 2 {
			return nil, fmt.Errorf("filter: incomplete plugin filter specification %q", key)
		}
		return NewPluginFilter(ref[1])
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("filter: unknown filter %q", key)
	}
	return f, nil
}

// RegisteredNames returns the names of every built-in (non-scripted,
// non-plugin) filter, sorted for deterministic listing.
func RegisteredNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Weighted is one (filter, weight) pair in a composed scoring scheme.
type Weighted struct {
	Filter Filter
	Weight float64
}

// WeightedScore composes a set of filters exactly like the teacher's
// Comparator.Value/Compare chain: each filter is evaluated in turn and
// its score contributes weight*score to the total; a filter reporting
// valid=false makes the whole candidate invalid regardless of weight.
func WeightedScore(weighted []Weighted, m *magnetic.Magnetic, in *magnetic.Inputs, out []magnetic.Outputs) (valid bool, score float64, err error) {
	valid = true
	for _, w := range weighted {
		v, s, err := evaluateCached(w.Filter, m, in, out)
		if err != nil {
			return false, 0, err
		}
		if !v {
			valid = false
		}
		score += w.Weight * s
	}
	return valid, score, nil
}

// scoreCache caches a filter's (valid,score) result by (filter name,
// magnetic pointer identity), per spec.md §4.10's "filters cache their
// own scorings by magnetic reference to avoid recomputation".
var scoreCache sync.Map

type cacheKey struct {
	filterName string
	magnetic   *magnetic.Magnetic
}

type cachedResult struct {
	valid bool
	score float64
}

func evaluateCached(f Filter, m *magnetic.Magnetic, in *magnetic.Inputs, out []magnetic.Outputs) (bool, float64, error) {
	key := cacheKey{filterName: f.Name(), magnetic: m}
	if v, ok := scoreCache.Load(key); ok {
		r := v.(cachedResult)
		return r.valid, r.score, nil
	}
	valid, score, err := f.Evaluate(m, in, out)
	if err != nil {
		return false, 0, err
	}
	scoreCache.Store(key, cachedResult{valid: valid, score: score})
	return valid, score, nil
}

// ResetCache clears every filter's cached scorings, used between
// independent adviser runs so stale magnetic pointers never leak
// results into a new search (magnetic pointers may be reused across
// runs by the caller's own object pooling).
func ResetCache() {
	scoreCache = sync.Map{}
}
