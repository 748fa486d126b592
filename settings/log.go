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

package settings

import (
	"log"
	"os"
)

// Logger is a level-filtered wrapper around the standard logger. It
// answers spec.md §9 Open Question (a): debug output scattered through
// the physics core (the teacher's cmd/* use plain log.Printf/log.Fatal,
// lib/generator.go's GenGeo uses log.Fatal on bad input) is routed
// through one gate instead of ad-hoc fmt.Println/std::cout calls.
type Logger struct {
	out *log.Logger
}

// Std is the default, process-wide logger instance.
var Std = &Logger{out: log.New(os.Stderr, "", log.LstdFlags)}

// Debug logs only when Global.Verbose is set.
func (l *Logger) Debug(format string, args ...any) {
	if Snapshot().Verbose {
		l.out.Printf("DEBUG "+format, args...)
	}
}

// Info logs unconditionally at INFO level (adviser candidate counts per
// spec.md §4.11's "log the number of candidates at each stage").
func (l *Logger) Info(format string, args ...any) {
	l.out.Printf("INFO "+format, args...)
}

// Warn logs a warning (e.g. a catalogue record that failed to parse).
func (l *Logger) Warn(format string, args ...any) {
	l.out.Printf("WARN "+format, args...)
}

// Error logs an error without aborting.
func (l *Logger) Error(format string, args ...any) {
	l.out.Printf("ERROR "+format, args...)
}

func Debug(format string, args ...any) { Std.Debug(format, args...) }
func Info(format string, args ...any)  { Std.Info(format, args...) }
func Warn(format string, args ...any)  { Std.Warn(format, args...) }
func Error(format string, args ...any) { Std.Error(format, args...) }