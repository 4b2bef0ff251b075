// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Package fitting fits the piecewise occupancy model used for drift-chamber
// wire screening: three cubic polynomials over the low/mid wire ranges and a
// polynomial-plus-reciprocal tail over the high range. All four forms are
// linear in their parameters, so fits are plain least squares.
package fitting

import "fmt"

// Kind discriminates the functional form of a fit segment.
type Kind int

const (
	// Cubic is p0 + p1*x + p2*x^2 + p3*x^3.
	Cubic Kind = iota
	// PolyHyperbolic is p0 + p1*x + p2/x.
	PolyHyperbolic
)

// NParams reports the parameter count for the kind.
func (k Kind) NParams() int {
	if k == PolyHyperbolic {
		return 3
	}
	return 4
}

func (k Kind) String() string {
	switch k {
	case Cubic:
		return "pol3"
	case PolyHyperbolic:
		return "pol1+hyperb"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Segment is one fitted curve restricted to [XMin, XMax].
type Segment struct {
	Kind   Kind
	XMin   float64
	XMax   float64
	Params []float64
}

// Eval evaluates the segment's curve at x, regardless of range.
func (s Segment) Eval(x float64) float64 {
	p := s.Params
	switch s.Kind {
	case PolyHyperbolic:
		return p[0] + p[1]*x + p[2]/x
	default:
		return p[0] + x*(p[1]+x*(p[2]+x*p[3]))
	}
}

// basis returns the basis functions of the segment kind.
func (k Kind) basis() []func(float64) float64 {
	one := func(float64) float64 { return 1 }
	id := func(x float64) float64 { return x }
	switch k {
	case PolyHyperbolic:
		return []func(float64) float64{one, id, func(x float64) float64 { return 1 / x }}
	default:
		return []func(float64) float64{
			one, id,
			func(x float64) float64 { return x * x },
			func(x float64) float64 { return x * x * x },
		}
	}
}

// Ranges carries the superlayer-specific subrange boundaries of the
// four-segment model. Fit ranges are [StartG1,EndG1], [StartG2,EndG2],
// [StartG3,EndG3] and [StartG4,MaxWire]; evaluation boundaries differ by
// stage (see SegmentSet.EvalSector and EvalLayer).
type Ranges struct {
	StartG1 float64 `yaml:"startG1"`
	EndG1   float64 `yaml:"endG1"`
	StartG2 float64 `yaml:"startG2"`
	EndG2   float64 `yaml:"endG2"`
	StartG3 float64 `yaml:"startG3"`
	EndG3   float64 `yaml:"endG3"`
	StartG4 float64 `yaml:"startG4"`
	MaxWire float64 `yaml:"maxWire"`
}

// SegmentSet is the fitted four-segment model for one profile.
type SegmentSet struct {
	Ranges Ranges
	Segs   [4]Segment
}

// CloneScale returns a copy of the set with every parameter of every
// segment multiplied by factor. No refit happens; scaling a fit by the
// integral ratio of a finer profile is how the model descends the
// superlayer -> sector -> layer hierarchy. A factor of 0 (degenerate
// normalization) legitimately zeroes the whole model.
func (s *SegmentSet) CloneScale(factor float64) *SegmentSet {
	c := &SegmentSet{Ranges: s.Ranges}
	for i, seg := range s.Segs {
		ps := make([]float64, len(seg.Params))
		for j, p := range seg.Params {
			ps[j] = p * factor
		}
		c.Segs[i] = Segment{Kind: seg.Kind, XMin: seg.XMin, XMax: seg.XMax, Params: ps}
	}
	return c
}

// EvalSector evaluates the piecewise model with the sector-stage boundary
// rule: segment selection compares x against each interior segment's fit
// end. EvalLayer uses the next segment's start instead. The two rules
// assign the overlap wires differently and both are load-bearing; do not
// unify them.
func (s *SegmentSet) EvalSector(x float64) float64 {
	r := s.Ranges
	switch {
	case x <= r.EndG1:
		return s.Segs[0].Eval(x)
	case x <= r.EndG2:
		return s.Segs[1].Eval(x)
	case x <= r.EndG3:
		return s.Segs[2].Eval(x)
	default:
		return s.Segs[3].Eval(x)
	}
}

// EvalLayer evaluates the piecewise model with the layer-stage boundary
// rule. See EvalSector.
func (s *SegmentSet) EvalLayer(x float64) float64 {
	r := s.Ranges
	switch {
	case x <= r.StartG2:
		return s.Segs[0].Eval(x)
	case x <= r.StartG3:
		return s.Segs[1].Eval(x)
	case x <= r.StartG4:
		return s.Segs[2].Eval(x)
	default:
		return s.Segs[3].Eval(x)
	}
}
