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

package numerics

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Harmonic is one entry of a decomposed periodic waveform; index 0 is DC.
type Harmonic struct {
	Index     int
	Frequency float64
	Amplitude float64
	Phase     float64
}

// Harmonics computes the harmonic decomposition of a uniformly sampled
// periodic waveform via a real DFT (gonum.org/v1/gonum/dsp/fourier),
// scaling bin magnitudes to amplitude as spec.md §4.1 specifies:
// 2/N for k>0, 1/N for the DC bin.
func Harmonics(samples []float64, dt float64) []Harmonic {
	n := len(samples)
	if n == 0 {
		return nil
	}
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, samples)
	period := float64(n) * dt
	out := make([]Harmonic, len(coeffs))
	for k, c := range coeffs {
		scale := 2.0 / float64(n)
		if k == 0 {
			scale = 1.0 / float64(n)
		}
		amp := scale * math.Hypot(real(c), imag(c))
		out[k] = Harmonic{
			Index:     k,
			Frequency: float64(k) / period,
			Amplitude: amp,
			Phase:     math.Atan2(imag(c), real(c)),
		}
	}
	return out
}

// Reconstruct rebuilds a time-domain waveform of n samples from harmonics
// whose amplitude exceeds threshold times the maximum amplitude.
func Reconstruct(harmonics []Harmonic, threshold float64, n int) []float64 {
	maxAmp := 0.0
	for _, h := range harmonics {
		if h.Amplitude > maxAmp {
			maxAmp = h.Amplitude
		}
	}
	out := make([]float64, n)
	if maxAmp == 0 {
		return out
	}
	for i := range out {
		t := float64(i) / float64(n)
		var v float64
		for _, h := range harmonics {
			if h.Amplitude < threshold*maxAmp {
				continue
			}
			if h.Index == 0 {
				v += h.Amplitude
				continue
			}
			v += h.Amplitude * math.Cos(2*math.Pi*float64(h.Index)*t+h.Phase)
		}
		out[i] = v
	}
	return out
}

// ResamplePow2 linearly resamples samples to the nearest power-of-two
// length at or above the original length.
func ResamplePow2(samples []float64) []float64 {
	n := len(samples)
	if n == 0 {
		return nil
	}
	m := 1
	for m < n {
		m *= 2
	}
	if m == n {
		return append([]float64(nil), samples...)
	}
	out := make([]float64, m)
	for i := range out {
		pos := float64(i) * float64(n-1) / float64(m-1)
		lo := int(math.Floor(pos))
		hi := min(lo+1, n-1)
		frac := pos - float64(lo)
		out[i] = samples[lo]*(1-frac) + samples[hi]*frac
	}
	return out
}

// DominantFrequency returns the index/frequency pair of the largest
// non-DC harmonic, used to pick an "effective frequency" for a waveform.
func DominantFrequency(harmonics []Harmonic) (index int, freq float64) {
	best := -1.0
	for _, h := range harmonics {
		if h.Index == 0 {
			continue
		}
		if h.Amplitude > best {
			best = h.Amplitude
			index = h.Index
			freq = h.Frequency
		}
	}
	return
}

// SignificantHarmonics returns the harmonics whose |A_k|*sqrt(f_k) exceeds
// fraction times the maximum such value over all harmonics, per spec.md
// §4.4's field-mesher harmonic-significance rule. Results stay sorted
// ascending by index, matching the field mesher's ordering guarantee.
func SignificantHarmonics(harmonics []Harmonic, fraction float64) []Harmonic {
	weight := func(h Harmonic) float64 {
		return h.Amplitude * math.Sqrt(math.Max(h.Frequency, 0))
	}
	maxW := 0.0
	for _, h := range harmonics {
		if w := weight(h); w > maxW {
			maxW = w
		}
	}
	var out []Harmonic
	for _, h := range harmonics {
		if maxW == 0 || weight(h) >= fraction*maxW {
			out = append(out, h)
		}
	}
	return out
}