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
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/magforge/engine/adviser"
	"github.com/magforge/engine/catalog"
	"github.com/magforge/engine/magnetic"
	"github.com/magforge/engine/settings"
)

// magforge searches a component catalogue for core and winding
// candidates that satisfy a design's requirements, following the same
// "load config, load inputs, search, report" shape as the teacher's
// antgen CLI (cmd/antgen/main.go), with antenna models replaced by
// magnetic advisers.
func main() {
	var (
		configFile  string
		catalogDir  string
		designFile  string
		storeFile   string
		numCores    int
		numCoils    int
		includeTor  bool
		maxStack    int
		verbose     bool
	)
	flag.StringVar(&configFile, "config", "", "settings JSON file (optional)")
	flag.StringVar(&catalogDir, "catalog", "./catalog-data", "directory holding cores.ndjson, core_materials.ndjson, wires.ndjson, wire_materials.ndjson")
	flag.StringVar(&designFile, "design", "", "JSON file holding a magnetic.Magnetic design template")
	flag.StringVar(&storeFile, "store", "", "SQLite file to persist ranked candidates into (optional)")
	flag.IntVar(&numCores, "cores", 5, "number of core candidates to keep")
	flag.IntVar(&numCoils, "coils", 5, "number of coil candidates to keep per core")
	flag.BoolVar(&includeTor, "toroids", false, "include toroid shapes in the core search")
	flag.IntVar(&maxStack, "max-stack", 1, "maximum core stack count to search")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.Parse()

	settings.SetVerbose(verbose)
	if configFile != "" {
		if err := settings.ReadConfig(configFile); err != nil {
			log.Fatalf("magforge: reading config: %v", err)
		}
	}
	if designFile == "" {
		log.Fatal("magforge: -design is required")
	}

	cat := catalog.New()
	if err := loadCatalog(cat, catalogDir); err != nil {
		log.Fatalf("magforge: loading catalog: %v", err)
	}

	design, err := loadDesign(designFile)
	if err != nil {
		log.Fatalf("magforge: loading design: %v", err)
	}

	coreAdviser := &adviser.CoreAdviser{Catalog: cat, IncludeToroids: includeTor, MaxStack: maxStack}
	cores, coreStats, err := coreAdviser.Advise(design, numCores)
	if err != nil {
		log.Fatalf("magforge: core search: %v", err)
	}
	fmt.Printf("core search: considered=%d survived=%d elapsed=%s\n", coreStats.Considered, coreStats.Survived, coreStats.Elapsed)

	coilAdviser := &adviser.CoilAdviser{Catalog: cat}
	var all []adviser.Candidate
	for _, core := range cores {
		coils, coilStats, err := coilAdviser.Advise(core.Magnetic, numCoils)
		if err != nil {
			log.Printf("magforge: coil search for %q: %v", core.Magnetic.Name, err)
			continue
		}
		fmt.Printf("  coil search for %s: considered=%d survived=%d\n", core.Magnetic.Name, coilStats.Considered, coilStats.Survived)
		all = append(all, coils...)
	}

	for i, c := range all {
		if i >= numCores*numCoils {
			break
		}
		fmt.Printf("%2d. %-20s score=%.6g turns=%v\n", i+1, c.Magnetic.Name, c.Score, turnsOf(c.Magnetic))
	}

	if storeFile != "" {
		if err := persist(design, all, storeFile); err != nil {
			log.Fatalf("magforge: persisting results: %v", err)
		}
	}
}

func loadCatalog(cat *catalog.Catalog, dir string) error {
	steps := []struct {
		file string
		load func(string) error
	}{
		{"cores.ndjson", cat.LoadCores},
		{"core_materials.ndjson", cat.LoadCoreMaterials},
		{"wires.ndjson", cat.LoadWires},
		{"wire_materials.ndjson", cat.LoadWireMaterials},
	}
	for _, s := range steps {
		path := filepath.Join(dir, s.file)
		if _, err := os.Stat(path); err != nil {
			continue // optional catalog slices: a design may only exercise some of them
		}
		if err := s.load(path); err != nil {
			return fmt.Errorf("%s: %w", s.file, err)
		}
	}
	return nil
}

func loadDesign(path string) (*magnetic.Magnetic, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m magnetic.Magnetic
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func turnsOf(m *magnetic.Magnetic) []int {
	turns := make([]int, len(m.Coil.Windings))
	for i, w := range m.Coil.Windings {
		turns[i] = w.NumberTurns
	}
	return turns
}

func persist(design *magnetic.Magnetic, candidates []adviser.Candidate, storeFile string) error {
	store, err := adviser.OpenStore(storeFile)
	if err != nil {
		return err
	}
	defer store.Close()
	hash, err := adviser.InputsHash(&design.Inputs)
	if err != nil {
		return err
	}
	return store.SaveCandidates(hash, candidates)
}
