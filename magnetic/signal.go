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

package magnetic

import (
	"math"

	"github.com/magforge/engine/numerics"
)

// WaveformLabel names the canonical shape of an excitation signal.
type WaveformLabel int

const (
	WaveformSinusoidal WaveformLabel = iota
	WaveformTriangular
	WaveformSquare
	WaveformRectangular
	WaveformCustom
)

// Waveform is the time-domain description of a periodic signal: either
// explicit (Data,Time) samples, or a label plus the parameters needed to
// synthesize one period (duty cycle for square/rectangular waves).
type Waveform struct {
	Label      WaveformLabel
	Data       []float64
	TimeS      []float64
	DutyCycle  float64
	FrequencyHz float64
}

// SignalProcessed holds derived harmonic content and summary values
// (RMS, peak, peak-to-peak, effective frequency), cached by SignalDescriptor.Process so repeated evaluation of the same
// functional waveform doesn't re-run harmonic decomposition.
type SignalProcessed struct {
	Harmonics     []numerics.Harmonic
	RMS           float64
	Peak          float64
	PeakToPeak    float64
	EffectiveFreq float64
}

// SignalDescriptor is the functional+processed composite of spec.md §3
// for one excitation signal (current or voltage) on one winding.
type SignalDescriptor struct {
	Waveform  Waveform
	processed *SignalProcessed
}

// Process derives harmonic content from Waveform.Data (or, if empty, from
// a synthesized one period of the labelled waveform at DutyCycle),
// maintaining the waveform/harmonics consistency invariant of spec.md §3:
// Processed is always recomputed fresh from the functional Waveform, so
// the two can never disagree after a call to Process.
func (s *SignalDescriptor) Process() {
	samples := s.Waveform.Data
	if len(samples) == 0 {
		samples = synthesize(s.Waveform)
	}
	dt := 1.0
	if s.Waveform.FrequencyHz > 0 && len(samples) > 0 {
		dt = 1.0 / (s.Waveform.FrequencyHz * float64(len(samples)))
	}
	harmonics := numerics.Harmonics(numerics.ResamplePow2(samples), dt)

	var sumSq, peak, min float64
	if len(samples) > 0 {
		min = samples[0]
	}
	for _, v := range samples {
		sumSq += v * v
		if v > peak {
			peak = v
		}
		if v < min {
			min = v
		}
	}
	rms := 0.0
	if len(samples) > 0 {
		rms = math.Sqrt(sumSq / float64(len(samples)))
	}

	idx, freq := numerics.DominantFrequency(harmonics)
	_ = idx
	s.processed = &SignalProcessed{
		Harmonics:     harmonics,
		RMS:           rms,
		Peak:          peak,
		PeakToPeak:    peak - min,
		EffectiveFreq: freq,
	}
}

// Processed returns the last Process() result, or nil if Process has not
// been called.
func (s SignalDescriptor) Processed() *SignalProcessed { return s.processed }

func synthesize(w Waveform) []float64 {
	const n = 256
	out := make([]float64, n)
	duty := w.DutyCycle
	if duty <= 0 || duty >= 1 {
		duty = 0.5
	}
	for i := 0; i < n; i++ {
		phase := float64(i) / float64(n)
		switch w.Label {
		case WaveformTriangular:
			if phase < duty {
				out[i] = -1 + 2*phase/duty
			} else {
				out[i] = 1 - 2*(phase-duty)/(1-duty)
			}
		case WaveformSquare:
			if phase < 0.5 {
				out[i] = 1
			} else {
				out[i] = -1
			}
		case WaveformRectangular:
			if phase < duty {
				out[i] = 1
			} else {
				out[i] = -1
			}
		case WaveformSinusoidal:
			out[i] = math.Sin(2 * math.Pi * phase)
		default:
			out[i] = 0
		}
	}
	return out
}