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

package catalog

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/magforge/engine/settings"
)

// eachRecord scans r line by line, skipping blank lines and lines that
// begin with '#' (comments), and calls decode with each remaining line's
// bytes. A line that fails to decode is logged and skipped rather than
// aborting the scan, so one malformed row never takes down the whole
// catalogue file.
func eachRecord(r io.Reader, source string, decode func(line []byte) error) (ok, skipped int) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := decode([]byte(line)); err != nil {
			settings.Warn("catalog: %s:%d: skipping malformed record: %v", source, lineNo, err)
			skipped++
			continue
		}
		ok++
	}
	return ok, skipped
}

func openNDJSON(path string) (*os.File, error) {
	return os.Open(path)
}

// jsonRecord decodes a single ndjson line into v.
func jsonRecord(line []byte, v any) error {
	return json.Unmarshal(line, v)
}
