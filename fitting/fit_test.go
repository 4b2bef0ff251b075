// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package fitting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clas12-calib/dc-badwires/hist"
)

// sl1Ranges mirrors the production boundaries of superlayer 1.
func sl1Ranges() Ranges {
	return Ranges{
		StartG1: 0, EndG1: 7,
		StartG2: 6, EndG2: 32,
		StartG3: 30, EndG3: 75,
		StartG4: 75, MaxWire: 114,
	}
}

func wireProfile() *hist.Profile {
	return hist.New("wires", 115, -0.5, 114.5)
}

func TestFitRecoversCubic(t *testing.T) {
	p := wireProfile()
	truth := []float64{40, 2, -0.5, 0.01}
	for i := 1; i <= p.NBins(); i++ {
		x := p.Center(i)
		p.SetContent(i, truth[0]+truth[1]*x+truth[2]*x*x+truth[3]*x*x*x)
	}

	set := FitProfile(p, sl1Ranges())
	for _, seg := range set.Segs[:3] {
		require.Equal(t, Cubic, seg.Kind)
		for j, want := range truth {
			assert.InDelta(t, want, seg.Params[j], 1e-6, "param %d of segment [%v,%v]", j, seg.XMin, seg.XMax)
		}
	}
}

func TestFitRecoversTail(t *testing.T) {
	p := wireProfile()
	p0, p1, p2 := 120.0, -0.8, 300.0
	for i := 1; i <= p.NBins(); i++ {
		x := p.Center(i)
		if x == 0 {
			continue
		}
		p.SetContent(i, p0+p1*x+p2/x)
	}

	set := FitProfile(p, sl1Ranges())
	tail := set.Segs[3]
	require.Equal(t, PolyHyperbolic, tail.Kind)
	require.Len(t, tail.Params, 3)
	assert.InDelta(t, p0, tail.Params[0], 1e-6)
	assert.InDelta(t, p1, tail.Params[1], 1e-6)
	assert.InDelta(t, p2, tail.Params[2], 1e-4)
}

func TestFitUnderdeterminedSegmentIsZero(t *testing.T) {
	p := wireProfile()
	for i := 1; i <= p.NBins(); i++ {
		p.SetContent(i, 100)
	}
	// Second segment covers [40,41]: two points cannot pin a cubic.
	r := sl1Ranges()
	r.StartG2, r.EndG2 = 40, 41

	set := FitProfile(p, r)
	for _, param := range set.Segs[1].Params {
		assert.Equal(t, 0.0, param)
	}
	// The other segments still fit.
	assert.InDelta(t, 100, set.Segs[0].Params[0], 1e-6)
}

func TestNormalization(t *testing.T) {
	coarse := wireProfile()
	fine := wireProfile()
	for i := 1; i <= coarse.NBins(); i++ {
		coarse.SetContent(i, 10)
		fine.SetContent(i, 2.5)
	}

	assert.InDelta(t, 0.25, Normalization(fine, coarse, 1, 114), 1e-12)
}

func TestNormalizationDegenerateDenominator(t *testing.T) {
	coarse := wireProfile()
	fine := wireProfile()
	for i := 1; i <= fine.NBins(); i++ {
		fine.SetContent(i, 5)
	}

	assert.Equal(t, 0.0, Normalization(fine, coarse, 1, 114),
		"no data in the coarser profile means no model, not an error")
}

func TestZeroIntegralYieldsAllZeroDerivedFit(t *testing.T) {
	p := wireProfile()
	for i := 1; i <= p.NBins(); i++ {
		p.SetContent(i, 50+float64(i))
	}
	set := FitProfile(p, sl1Ranges())

	empty := wireProfile()
	scaled := set.CloneScale(Normalization(empty, empty, 1, 114))
	for _, seg := range scaled.Segs {
		for _, param := range seg.Params {
			require.Equal(t, 0.0, param)
			require.False(t, param != param, "parameters must not be NaN")
		}
	}
}
