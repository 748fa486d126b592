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
	"testing"
)

func TestIsNull(t *testing.T) {
	if !IsNull(1e-12) {
		t.Fatal("expected near-zero value to be null")
	}
	if IsNull(0.01) {
		t.Fatal("expected 0.01 to not be null")
	}
}

func TestEllipticAtZero(t *testing.T) {
	// K(0) = E(0) = pi/2
	if got := EllipticK(0); math.Abs(got-math.Pi/2) > 1e-6 {
		t.Fatalf("EllipticK(0) = %v, want pi/2", got)
	}
	if got := EllipticE(0); math.Abs(got-math.Pi/2) > 1e-6 {
		t.Fatalf("EllipticE(0) = %v, want pi/2", got)
	}
}

func TestBesselI0AtZero(t *testing.T) {
	if got := BesselI0(0); math.Abs(got-1) > 1e-6 {
		t.Fatalf("BesselI0(0) = %v, want 1", got)
	}
	if got := BesselI1(0); math.Abs(got) > 1e-6 {
		t.Fatalf("BesselI1(0) = %v, want 0", got)
	}
}

func TestSplineLinearExact(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 2, 4, 6, 8}
	sp := NewSpline(x, y)
	for _, xv := range []float64{0.5, 1.5, 2.5, 3.5} {
		got := sp.At(xv)
		want := 2 * xv
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("spline(%v) = %v, want %v", xv, got, want)
		}
	}
}

func TestBilinearCorners(t *testing.T) {
	xs := []float64{0, 1}
	ys := []float64{0, 1}
	zs := [][]float64{{0, 1}, {1, 2}}
	if got := Bilinear(xs, ys, zs, 0, 0); got != 0 {
		t.Fatalf("corner (0,0) = %v, want 0", got)
	}
	if got := Bilinear(xs, ys, zs, 1, 1); got != 2 {
		t.Fatalf("corner (1,1) = %v, want 2", got)
	}
	if got := Bilinear(xs, ys, zs, 0.5, 0.5); math.Abs(got-1) > 1e-9 {
		t.Fatalf("center = %v, want 1", got)
	}
}

func TestLevenbergMarquardtFitsLine(t *testing.T) {
	// fit y = a*x + b to noiseless data; residual(x) = model - data
	xs := []float64{0, 1, 2, 3, 4}
	ys := make([]float64, len(xs))
	for i, xv := range xs {
		ys[i] = 3*xv + 1
	}
	residual := func(p []float64) []float64 {
		r := make([]float64, len(xs))
		for i, xv := range xs {
			r[i] = (p[0]*xv + p[1]) - ys[i]
		}
		return r
	}
	res, err := LevenbergMarquardt(residual, []float64{0, 0})
	if err != nil {
		t.Fatalf("LM failed: %v", err)
	}
	if math.Abs(res.X[0]-3) > 1e-3 || math.Abs(res.X[1]-1) > 1e-3 {
		t.Fatalf("LM fit = %v, want [3 1]", res.X)
	}
}

func TestConvolve1DValidLength(t *testing.T) {
	sig := []float64{1, 2, 3, 4, 5}
	out := Convolve1D(sig, MovingAverageKernel(3))
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	if math.Abs(out[0]-2) > 1e-9 {
		t.Fatalf("out[0] = %v, want 2", out[0])
	}
}

func TestHarmonicsDCComponent(t *testing.T) {
	n := 64
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 5.0
	}
	h := Harmonics(samples, 1.0/float64(n))
	if math.Abs(h[0].Amplitude-5) > 1e-9 {
		t.Fatalf("DC amplitude = %v, want 5", h[0].Amplitude)
	}
}

func TestSignificantHarmonicsMonotoneThreshold(t *testing.T) {
	harmonics := []Harmonic{
		{Index: 0, Frequency: 0, Amplitude: 1},
		{Index: 1, Frequency: 100, Amplitude: 10},
		{Index: 2, Frequency: 200, Amplitude: 0.01},
	}
	lo := SignificantHarmonics(harmonics, 0.01)
	hi := SignificantHarmonics(harmonics, 0.5)
	if len(hi) > len(lo) {
		t.Fatalf("raising threshold increased surviving harmonic count: %d > %d", len(hi), len(lo))
	}
}