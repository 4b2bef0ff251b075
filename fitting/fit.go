// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package fitting

import (
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/clas12-calib/dc-badwires/hist"
)

// FitProfile fits the four-segment model to a profile. Each segment is a
// least-squares fit accumulated only over bins whose center lies inside the
// segment's closed fit range; the full profile is always passed in, never a
// pre-filtered slice. A segment whose subrange holds too few points, or
// whose normal equations are singular, comes back with all-zero parameters
// rather than an error ("no data, no model").
func FitProfile(p *hist.Profile, r Ranges) *SegmentSet {
	set := &SegmentSet{Ranges: r}
	bounds := [4][2]float64{
		{r.StartG1, r.EndG1},
		{r.StartG2, r.EndG2},
		{r.StartG3, r.EndG3},
		{r.StartG4, r.MaxWire},
	}
	kinds := [4]Kind{Cubic, Cubic, Cubic, PolyHyperbolic}

	for i := range set.Segs {
		lo, hi := bounds[i][0], bounds[i][1]
		var xs, ys []float64
		for bin := 1; bin <= p.NBins(); bin++ {
			x := p.Center(bin)
			if x < lo || x > hi {
				continue
			}
			if kinds[i] == PolyHyperbolic && x == 0 {
				continue
			}
			xs = append(xs, x)
			ys = append(ys, p.Content(bin))
		}
		params := leastSquares(xs, ys, kinds[i])
		if params == nil {
			log.Printf("fitting: %s segment %d of %q over [%v,%v] is degenerate, zeroing",
				kinds[i], i+1, p.Name, lo, hi)
			params = make([]float64, kinds[i].NParams())
		}
		set.Segs[i] = Segment{Kind: kinds[i], XMin: lo, XMax: hi, Params: params}
	}
	return set
}

// leastSquares solves the unweighted linear least-squares problem for the
// kind's basis. Returns nil when underdetermined or singular.
func leastSquares(xs, ys []float64, kind Kind) []float64 {
	basis := kind.basis()
	n := len(xs)
	m := len(basis)
	if n < m {
		return nil
	}

	a := mat.NewDense(n, m, nil)
	b := mat.NewVecDense(n, nil)
	for i, x := range xs {
		for j, f := range basis {
			a.Set(i, j, f(x))
		}
		b.SetVec(i, ys[i])
	}

	var qr mat.QR
	qr.Factorize(a)
	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, b); err != nil {
		return nil
	}

	params := make([]float64, m)
	for j := range params {
		params[j] = sol.AtVec(j)
	}
	return params
}

// Normalization returns the multiplicative factor carrying a coarser fit
// down to a finer profile: integral(finer)/integral(coarser) over the
// trusted bin range, clamped to 0 when the coarser integral is not
// positive.
func Normalization(finer, coarser *hist.Profile, loBin, hiBin int) float64 {
	den := coarser.Integral(loBin, hiBin)
	if den <= 0 {
		return 0
	}
	return finer.Integral(loBin, hiBin) / den
}
