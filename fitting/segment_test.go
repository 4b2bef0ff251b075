// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package fitting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentEvalForms(t *testing.T) {
	cubic := Segment{Kind: Cubic, Params: []float64{1, 2, 3, 4}}
	assert.InDelta(t, 1+2*2+3*4+4*8, cubic.Eval(2), 1e-12)

	tail := Segment{Kind: PolyHyperbolic, Params: []float64{5, 1, 8}}
	assert.InDelta(t, 5+4+2, tail.Eval(4), 1e-12)
}

// constSet builds a set whose four segments evaluate to four distinct
// constants, so segment selection is observable.
func constSet(r Ranges) *SegmentSet {
	set := &SegmentSet{Ranges: r}
	for i := range set.Segs {
		kind := Cubic
		params := []float64{float64(i + 1) * 100, 0, 0, 0}
		if i == 3 {
			kind = PolyHyperbolic
			params = params[:3]
		}
		set.Segs[i] = Segment{Kind: kind, Params: params}
	}
	return set
}

func TestEvalBoundaryAsymmetry(t *testing.T) {
	// Superlayer-1 style boundaries: the g1/g2 fit ranges overlap on
	// [6,7], g2/g3 on [30,32].
	r := Ranges{
		StartG1: 0, EndG1: 7,
		StartG2: 6, EndG2: 32,
		StartG3: 30, EndG3: 75,
		StartG4: 75, MaxWire: 114,
	}
	set := constSet(r)

	// The sector rule hands x=7 to segment 1 (x <= endG1); the layer rule
	// hands it to segment 2 (x > startG2).
	assert.Equal(t, 100.0, set.EvalSector(7))
	assert.Equal(t, 200.0, set.EvalLayer(7))

	// x=31 straddles the g2/g3 overlap the same way.
	assert.Equal(t, 200.0, set.EvalSector(31))
	assert.Equal(t, 300.0, set.EvalLayer(31))

	// Far tail agrees under both rules.
	assert.Equal(t, 400.0, set.EvalSector(100))
	assert.Equal(t, 400.0, set.EvalLayer(100))
}

func TestEvalCoversWholeAxis(t *testing.T) {
	r := sl1Ranges()
	set := constSet(r)
	for x := 0.0; x <= r.MaxWire; x++ {
		v := set.EvalLayer(x)
		assert.Contains(t, []float64{100, 200, 300, 400}, v, "x=%v", x)
		v = set.EvalSector(x)
		assert.Contains(t, []float64{100, 200, 300, 400}, v, "x=%v", x)
	}
}

func TestCloneScaleIdentity(t *testing.T) {
	set := constSet(sl1Ranges())
	set.Segs[0].Params = []float64{1.5, -2, 0.25, 7}

	clone := set.CloneScale(1)
	require.Equal(t, set.Ranges, clone.Ranges)
	for i := range set.Segs {
		assert.Equal(t, set.Segs[i].Params, clone.Segs[i].Params, "segment %d", i)
	}
}

func TestCloneScaleIsAValueCopy(t *testing.T) {
	set := constSet(sl1Ranges())
	clone := set.CloneScale(2)

	assert.Equal(t, 200.0, clone.Segs[0].Params[0])
	clone.Segs[0].Params[0] = -1
	assert.Equal(t, 100.0, set.Segs[0].Params[0], "scaling must not share parameter storage")
}

func TestCloneScaleZeroFactor(t *testing.T) {
	set := constSet(sl1Ranges())
	clone := set.CloneScale(0)
	for _, seg := range clone.Segs {
		for _, p := range seg.Params {
			assert.Equal(t, 0.0, p)
		}
	}
}
