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

// Package simreader reads exported circuit-simulator waveform tables
// (LTspice/ngspice/SIMBA CSV exports) and extracts a single steady-state
// period of current and voltage suitable for feeding into magnetic.
// Column delimiters, the time column, and the role of each remaining
// column are all detected rather than configured, since exporters vary
// in header naming and column order.
package simreader

import (
	"bufio"
	"database/sql"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/magforge/engine/errs"
)

// Table is a parsed waveform export: one time column plus zero or more
// named signal columns, each cell a sql.NullFloat64 since exporters
// leave trailing columns blank on short rows.
type Table struct {
	Headers []string
	Time    []float64
	Columns map[string][]sql.NullFloat64
}

// timeAliases and signal aliases used for column classification by name;
// matched case-insensitively against the header after trimming units in
// parentheses (e.g. "time(s)" -> "time").
var timeAliases = map[string]bool{"time": true, "t": true}

var currentAliases = map[string]bool{"i": true, "current": true, "ix": true}
var voltageAliases = map[string]bool{"v": true, "voltage": true, "vx": true}

// ReadTable parses r as a delimited table, auto-detecting the delimiter
// among comma, tab and semicolon from the header line.
func ReadTable(r io.Reader) (*Table, error) {
	buf := bufio.NewReader(r)
	first, err := buf.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, errs.Wrap(errs.InvalidInput, "simreader.ReadTable", err)
	}
	delim := detectDelimiter(string(first))

	cr := csv.NewReader(buf)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errs.Wrap(errs.InvalidInput, "simreader.ReadTable", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	timeCol, err := detectTimeColumn(cr, header)
	if err != nil {
		return nil, err
	}

	tbl := &Table{Headers: header, Columns: make(map[string][]sql.NullFloat64)}
	for i, h := range header {
		if i == timeCol {
			continue
		}
		tbl.Columns[h] = nil
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Wrap(errs.InvalidInput, "simreader.ReadTable", err)
		}
		t, ok := parseFloat(rec, timeCol)
		if !ok {
			continue // damaged row: skip rather than abort the whole file
		}
		tbl.Time = append(tbl.Time, t)
		for i, h := range header {
			if i == timeCol {
				continue
			}
			var v sql.NullFloat64
			if i < len(rec) {
				if f, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64); err == nil {
					v = sql.NullFloat64{Float64: f, Valid: true}
				}
			}
			tbl.Columns[h] = append(tbl.Columns[h], v)
		}
	}

	if !strictlyMonotonic(tbl.Time) {
		return nil, errs.New(errs.InvalidInput, "simreader.ReadTable", "time column %q is not strictly monotonic", header[timeCol])
	}
	return tbl, nil
}

func detectDelimiter(sample string) rune {
	counts := map[rune]int{',': 0, '\t': 0, ';': 0}
	if nl := strings.IndexByte(sample, '\n'); nl >= 0 {
		sample = sample[:nl]
	}
	for _, r := range sample {
		if _, ok := counts[r]; ok {
			counts[r]++
		}
	}
	best, bestCount := ',', -1
	for d, n := range counts {
		if n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// detectTimeColumn returns the header index classified as the time axis:
// first by name alias, falling back to the first column when no header
// matches. No rows are inspected here; ReadTable rejects the table
// afterwards if the chosen column is not strictly monotonic.
func detectTimeColumn(cr *csv.Reader, header []string) (int, error) {
	for i, h := range header {
		if timeAliases[normalizeHeader(h)] {
			return i, nil
		}
	}
	if len(header) > 0 {
		return 0, nil // exporters conventionally put time first when unlabeled
	}
	return 0, errs.New(errs.InvalidInput, "simreader.detectTimeColumn", "empty header")
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if p := strings.IndexByte(h, '('); p >= 0 {
		h = strings.TrimSpace(h[:p])
	}
	return h
}

// ClassifyColumn reports whether name looks like a current or voltage
// trace by alias; unrecognized names are reported as neither.
func ClassifyColumn(name string) (isCurrent, isVoltage bool) {
	n := normalizeHeader(name)
	if currentAliases[n] || strings.HasPrefix(n, "i(") {
		return true, false
	}
	if voltageAliases[n] || strings.HasPrefix(n, "v(") {
		return false, true
	}
	return false, false
}

func parseFloat(rec []string, i int) (float64, bool) {
	if i >= len(rec) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func strictlyMonotonic(t []float64) bool {
	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			return false
		}
	}
	return true
}

// OnePeriod extracts [start,end) indices spanning exactly one period of
// col, found as the span between the first and second positive-going
// zero crossing after the signal's mean is removed (AC-coupled before
// crossing detection, since many exports carry a DC offset).
func OnePeriod(values []sql.NullFloat64) (start, end int, ok bool) {
	mean := 0.0
	n := 0
	for _, v := range values {
		if v.Valid {
			mean += v.Float64
			n++
		}
	}
	if n == 0 {
		return 0, 0, false
	}
	mean /= float64(n)

	var crossings []int
	prev := 0.0
	havePrev := false
	for i, v := range values {
		if !v.Valid {
			continue
		}
		cur := v.Float64 - mean
		if havePrev && prev < 0 && cur >= 0 {
			crossings = append(crossings, i)
		}
		prev = cur
		havePrev = true
	}
	if len(crossings) < 2 {
		return 0, 0, false
	}
	return crossings[0], crossings[1], true
}
