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
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/magforge/engine/errs"
	"github.com/magforge/engine/magnetic"
)

// schema mirrors the teacher's performance table (lib/database.go): one
// row per ranked candidate, keyed by the inputs that produced it.
var schema = `
create table if not exists candidates (
    id          integer primary key,
    inputsHash  varchar(64) not null,
    coreName    varchar(63) not null,
    coreShape   varchar(31) not null,
    coreStack   integer not null,
    coilName    varchar(63) not null,
    score       float not null,
    rank        integer not null,
    createdAt   integer not null default (strftime('%s','now'))
);
create index if not exists idx_candidates_hash on candidates(inputsHash);
`

// Store persists adviser runs to a SQLite database, grounded on the
// teacher's Database type (lib/database.go): Open/Insert/Query over one
// table rather than an ORM.
type Store struct {
	inst *sql.DB
}

// OpenStore opens (creating if needed) a SQLite database at fname.
func OpenStore(fname string) (*Store, error) {
	inst, err := sql.Open("sqlite3", fname)
	if err != nil {
		return nil, errs.Wrap(errs.ResourceMissing, "adviser.OpenStore", err)
	}
	if _, err := inst.Exec(schema); err != nil {
		inst.Close()
		return nil, errs.Wrap(errs.ResourceMissing, "adviser.OpenStore", err)
	}
	return &Store{inst: inst}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.inst == nil {
		return errors.New("adviser: store not opened")
	}
	return s.inst.Close()
}

// InputsHash returns a stable identifier for an Inputs value, used to
// group candidates that came from the same design run.
func InputsHash(in *magnetic.Inputs) (string, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}

// SaveCandidates replaces any previously stored candidates for inputsHash
// and inserts the given ranked list, rank following slice order.
func (s *Store) SaveCandidates(inputsHash string, candidates []Candidate) error {
	tx, err := s.inst.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("delete from candidates where inputsHash = ?", inputsHash); err != nil {
		tx.Rollback()
		return err
	}
	stmt := "insert into candidates(inputsHash,coreName,coreShape,coreStack,coilName,score,rank)" +
		" values(?,?,?,?,?,?,?)"
	for rank, c := range candidates {
		coilName := coilDescription(c.Magnetic)
		if _, err := tx.Exec(stmt, inputsHash, c.Magnetic.Name, c.Magnetic.Core.ShapeName,
			c.Magnetic.Core.StackCount, coilName, c.Score, rank); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// LoadCandidates returns the stored rows for inputsHash ordered by rank,
// without reconstructing the magnetic.Magnetic values (the table keeps a
// score record, not a full design snapshot).
func (s *Store) LoadCandidates(inputsHash string) ([]CandidateRecord, error) {
	rows, err := s.inst.Query(
		"select coreName,coreShape,coreStack,coilName,score,rank from candidates"+
			" where inputsHash = ? order by rank asc", inputsHash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CandidateRecord
	for rows.Next() {
		var rec CandidateRecord
		if err := rows.Scan(&rec.CoreName, &rec.CoreShape, &rec.CoreStack, &rec.CoilName, &rec.Score, &rec.Rank); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CandidateRecord is the flattened, persisted form of a Candidate.
type CandidateRecord struct {
	CoreName  string
	CoreShape string
	CoreStack int
	CoilName  string
	Score     float64
	Rank      int
}

func coilDescription(m *magnetic.Magnetic) string {
	if len(m.Coil.Windings) == 0 {
		return ""
	}
	w := m.Coil.Windings[0]
	return fmt.Sprintf("%s x%d (%dT)", w.WireName, w.NumberParallels, w.NumberTurns)
}
