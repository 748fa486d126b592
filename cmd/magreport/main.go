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
	"flag"
	"fmt"
	"log"

	"github.com/magforge/engine/adviser"
)

// magreport lists a stored adviser run's ranked candidates, mirroring
// the teacher's tabula tool (cmd/tabula/main.go) reading rows out of a
// results database rather than re-running a search.
func main() {
	var dbFile, hash string
	flag.StringVar(&dbFile, "db", "./out/candidates.db", "candidates SQLite database")
	flag.StringVar(&hash, "hash", "", "inputs hash to list (required)")
	flag.Parse()

	if hash == "" {
		log.Fatal("magreport: -hash is required")
	}

	store, err := adviser.OpenStore(dbFile)
	if err != nil {
		log.Fatalf("magreport: open %s: %v", dbFile, err)
	}
	defer store.Close()

	rows, err := store.LoadCandidates(hash)
	if err != nil {
		log.Fatalf("magreport: query: %v", err)
	}
	if len(rows) == 0 {
		fmt.Println("no candidates stored for that inputs hash")
		return
	}
	for _, r := range rows {
		fmt.Printf("%3d. %-20s %-10s stack=%d  %-24s score=%.6g\n",
			r.Rank, r.CoreName, r.CoreShape, r.CoreStack, r.CoilName, r.Score)
	}
}
