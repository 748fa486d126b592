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

// Package settings holds the process-wide, mutable configuration of the
// physics core (spec.md §6) plus the read-only view consumers receive.
//
// This generalizes the teacher's single global Cfg *Config
// (lib/config.go, ReadConfig) into a mutex-guarded registry with
// setters and a ResetToDefaults call, as called for by spec.md §9's
// "global state" design note.
package settings

import (
	"encoding/json"
	"os"
	"sync"
)

// Settings is the process-wide configuration registry.
type Settings struct {
	mu sync.RWMutex

	Verbose bool `json:"verbose"`

	// harmonic pruning (§4.6 step 4)
	HarmonicThreshold       float64 `json:"harmonicThreshold"`
	QuickModeMultiplier     float64 `json:"quickModeMultiplier"`
	QuickModeTurnThreshold  int     `json:"quickModeTurnThreshold"`

	// default model keys, selected by factories (§9 "model_from(key)")
	ReluctanceGapModel  string `json:"reluctanceGapModel"`
	FieldStrengthModel  string `json:"fieldStrengthModel"`
	FringingModel       string `json:"fringingModel"`
	SkinEffectModel     string `json:"skinEffectModel"`
	ProximityModel      string `json:"proximityModel"`
	CoreLossModel       string `json:"coreLossModel"`
	ThermalModel        string `json:"thermalModel"`

	// adviser controls (§4.11)
	MaxMagneticsAfterFirstFilter int  `json:"maxMagneticsAfterFirstFilter"`
	IncludeStacks                bool `json:"includeStacks"`
	IncludeDistributedGaps       bool `json:"includeDistributedGaps"`
	IncludeMargin                bool `json:"includeMargin"`
	MaxParallels                 int  `json:"maxParallels"`

	// wire-type enable flags
	EnableRound       bool `json:"enableRound"`
	EnableLitz        bool `json:"enableLitz"`
	EnableRectangular bool `json:"enableRectangular"`
	EnableFoil        bool `json:"enableFoil"`

	// mesher (§4.4, supplemented per SPEC_FULL §16)
	MesherMirrorOrder int `json:"mesherMirrorOrder"`
	MeshResolution    int `json:"meshResolution"`

	// iteration/convergence
	MaxIterations int `json:"maxIterations"`

	// painter options (opaque key/value map; the render package does not read it)
	Painter map[string]string `json:"painter"`
}

// defaults mirrors lib/config.go's Cfg literal: a fully populated,
// ready-to-use default configuration.
func defaults() *Settings {
	return &Settings{
		Verbose:                      false,
		HarmonicThreshold:            0.01,
		QuickModeMultiplier:          2.0,
		QuickModeTurnThreshold:       100,
		ReluctanceGapModel:           "mclyman",
		FieldStrengthModel:           "binns_lawrenson",
		FringingModel:                "albach",
		SkinEffectModel:              "albach",
		ProximityModel:               "ferreira",
		CoreLossModel:                "steinmetz",
		ThermalModel:                 "maniktala",
		MaxMagneticsAfterFirstFilter: 50,
		IncludeStacks:                false,
		IncludeDistributedGaps:       false,
		IncludeMargin:                true,
		MaxParallels:                 10,
		EnableRound:                  true,
		EnableLitz:                   true,
		EnableRectangular:            true,
		EnableFoil:                   true,
		MesherMirrorOrder:            2,
		MeshResolution:               32,
		MaxIterations:                100,
		Painter:                      make(map[string]string),
	}
}

// Global is the globally-accessible configuration (pre-set with defaults).
var Global = defaults()

// ResetToDefaults restores Global to its default values.
func ResetToDefaults() {
	Global.mu.Lock()
	defer Global.mu.Unlock()
	d := defaults()
	Global.Verbose = d.Verbose
	Global.HarmonicThreshold = d.HarmonicThreshold
	Global.QuickModeMultiplier = d.QuickModeMultiplier
	Global.QuickModeTurnThreshold = d.QuickModeTurnThreshold
	Global.ReluctanceGapModel = d.ReluctanceGapModel
	Global.FieldStrengthModel = d.FieldStrengthModel
	Global.FringingModel = d.FringingModel
	Global.SkinEffectModel = d.SkinEffectModel
	Global.ProximityModel = d.ProximityModel
	Global.CoreLossModel = d.CoreLossModel
	Global.ThermalModel = d.ThermalModel
	Global.MaxMagneticsAfterFirstFilter = d.MaxMagneticsAfterFirstFilter
	Global.IncludeStacks = d.IncludeStacks
	Global.IncludeDistributedGaps = d.IncludeDistributedGaps
	Global.IncludeMargin = d.IncludeMargin
	Global.MaxParallels = d.MaxParallels
	Global.EnableRound = d.EnableRound
	Global.EnableLitz = d.EnableLitz
	Global.EnableRectangular = d.EnableRectangular
	Global.EnableFoil = d.EnableFoil
	Global.MesherMirrorOrder = d.MesherMirrorOrder
	Global.MeshResolution = d.MeshResolution
	Global.MaxIterations = d.MaxIterations
	Global.Painter = d.Painter
}

// ReadConfig loads JSON configuration from file into Global, following
// lib/config.go's ReadConfig(fname) shape.
func ReadConfig(fname string) error {
	data, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	Global.mu.Lock()
	defer Global.mu.Unlock()
	return json.Unmarshal(data, Global)
}

// View is a read-only snapshot of Settings, handed to consumers so the
// mutable registry itself never escapes the settings package.
type View struct {
	Verbose                      bool
	HarmonicThreshold            float64
	QuickModeMultiplier          float64
	QuickModeTurnThreshold       int
	ReluctanceGapModel           string
	FieldStrengthModel           string
	FringingModel                string
	SkinEffectModel              string
	ProximityModel               string
	CoreLossModel                string
	ThermalModel                 string
	MaxMagneticsAfterFirstFilter int
	IncludeStacks                bool
	IncludeDistributedGaps       bool
	IncludeMargin                bool
	MaxParallels                 int
	EnableRound                  bool
	EnableLitz                   bool
	EnableRectangular            bool
	EnableFoil                   bool
	MesherMirrorOrder            int
	MeshResolution               int
	MaxIterations                int
}

// Snapshot returns a read-only copy of the current settings.
func Snapshot() View {
	Global.mu.RLock()
	defer Global.mu.RUnlock()
	return View{
		Verbose:                      Global.Verbose,
		HarmonicThreshold:            Global.HarmonicThreshold,
		QuickModeMultiplier:          Global.QuickModeMultiplier,
		QuickModeTurnThreshold:       Global.QuickModeTurnThreshold,
		ReluctanceGapModel:           Global.ReluctanceGapModel,
		FieldStrengthModel:           Global.FieldStrengthModel,
		FringingModel:                Global.FringingModel,
		SkinEffectModel:              Global.SkinEffectModel,
		ProximityModel:               Global.ProximityModel,
		CoreLossModel:                Global.CoreLossModel,
		ThermalModel:                 Global.ThermalModel,
		MaxMagneticsAfterFirstFilter: Global.MaxMagneticsAfterFirstFilter,
		IncludeStacks:                Global.IncludeStacks,
		IncludeDistributedGaps:       Global.IncludeDistributedGaps,
		IncludeMargin:                Global.IncludeMargin,
		MaxParallels:                 Global.MaxParallels,
		EnableRound:                  Global.EnableRound,
		EnableLitz:                   Global.EnableLitz,
		EnableRectangular:            Global.EnableRectangular,
		EnableFoil:                   Global.EnableFoil,
		MesherMirrorOrder:            Global.MesherMirrorOrder,
		MeshResolution:               Global.MeshResolution,
		MaxIterations:                Global.MaxIterations,
	}
}

// SetVerbose toggles verbose logging.
func SetVerbose(v bool) {
	Global.mu.Lock()
	defer Global.mu.Unlock()
	Global.Verbose = v
}

// SetHarmonicThreshold sets the harmonic-pruning amplitude threshold.
func SetHarmonicThreshold(v float64) {
	Global.mu.Lock()
	defer Global.mu.Unlock()
	Global.HarmonicThreshold = v
}

// SetMaxMagneticsAfterFirstFilter sets the adviser culling ceiling.
func SetMaxMagneticsAfterFirstFilter(n int) {
	Global.mu.Lock()
	defer Global.mu.Unlock()
	Global.MaxMagneticsAfterFirstFilter = n
}