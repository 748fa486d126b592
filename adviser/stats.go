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

package adviser

import (
	"time"

	"github.com/magforge/engine/magnetic"
)

// Stats reports a run's iteration counts, mirroring the teacher's
// optimization Stats (lib/model.go): how many candidates were
// considered, how many survived, and wall-clock elapsed.
type Stats struct {
	Considered int
	Survived   int
	Elapsed    time.Duration
}

// Candidate pairs a scored magnetic with its running filter score.
type Candidate struct {
	Magnetic *magnetic.Magnetic
	Score    float64
}
