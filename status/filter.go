// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package status

import (
	"fmt"
	"math"

	"github.com/clas12-calib/dc-badwires/fitting"
	"github.com/clas12-calib/dc-badwires/hist"
)

// FilterSector builds the filtered copy of a sector profile. A bin survives
// when it sits inside [minBorder*fit, maxBorder*fit], except that the edge
// regions x < 15 and x >= 107 are structurally noisy and always kept.
// Rejected bins stay at zero in the output.
func (c Config) FilterSector(obs *hist.Profile, fit *fitting.SegmentSet) *hist.Profile {
	out := obs.EmptyClone(fmt.Sprintf("%s_filtered", obs.Name))
	minB, maxB := c.minBorder(), c.maxBorder()
	for bin := 1; bin <= obs.NBins(); bin++ {
		x := obs.Center(bin)
		y := obs.Content(bin)
		f := fit.EvalSector(x)
		inBand := minB*f < y && y < maxB*f && 15 <= x && x < 107
		if inBand || x < 15 || x >= 107 {
			out.SetContent(bin, y)
		}
	}
	return out
}

// FilterLayer builds the filtered copy of a layer profile, using the
// four-regime accept bands, then runs the spike-suppression pass over the
// result. Regimes are keyed on the 1-based bin index, not the wire center.
func (c Config) FilterLayer(obs *hist.Profile, fit *fitting.SegmentSet) *hist.Profile {
	out := obs.EmptyClone(fmt.Sprintf("%s_filtered", obs.Name))
	minLay := c.minBorderLay()
	minLayMid := c.minBorderLayMid()
	maxLay := c.maxBorderLay()

	for bin := 1; bin <= obs.NBins(); bin++ {
		x := obs.Center(bin)
		y := obs.Content(bin)
		f := fit.EvalLayer(x)

		keep := (bin < 12 && y < maxLay*f && y > minLay*f) ||
			bin < 4 || bin > 105 ||
			(bin >= 12 && bin < 75 && y < 2.0*maxLay*f && y > minLayMid*f) ||
			(bin >= 75 && bin < 100 && y < orBound(2.0*maxLay*f, bin > 98) && y > 1.0*minLay*f) ||
			(bin >= 100 && y < 2.0*maxLay*f && y > 0.6*minLay*f)

		if keep {
			out.SetContent(bin, y)
		}
	}

	c.suppressSpikes(out, fit)
	return out
}

// orBound reproduces the production cut's upper bound for the 75..99 regime
// verbatim: when the band limit is exactly zero the bound collapses to the
// truth value of the bin-index test (1 past bin 98, 0 otherwise). Suspicious
// but load-bearing; do not simplify without revalidating flagged runs.
func orBound(limit float64, pastTail bool) float64 {
	if limit != 0 {
		return limit
	}
	if pastTail {
		return 1
	}
	return 0
}

// suppressSpikes removes isolated single-bin excursions that slipped through
// the band filter. It walks the already-filtered profile once, in order, and
// when the wires around bin-1 agree with the fit while bin-1 itself jumps
// away from fit, neighbours and its own history, bin-1 is zeroed
// retroactively. Only bins strictly between 12 and 90 are eligible, and the
// pass reads its own earlier modifications.
func (c Config) suppressSpikes(filtered *hist.Profile, fit *fitting.SegmentSet) {
	for bin := 13; bin <= filtered.NBins() && bin < 90; bin++ {
		f := fit.EvalLayer(filtered.Center(bin))
		prev1 := fit.EvalLayer(filtered.Center(bin - 1))
		prev2 := fit.EvalLayer(filtered.Center(bin - 2))

		cur := filtered.Content(bin)
		pr1 := filtered.Content(bin - 1)
		pr2 := filtered.Content(bin - 2)

		if cur > 1 && pr1 > 1 && pr2 > 1 &&
			math.Abs(cur-f)/f < 0.2 &&
			math.Abs(pr1-prev1)/prev1 > 0.25 &&
			math.Abs(pr1-cur)/pr1 > 0.25 &&
			math.Abs(pr1-pr2)/pr2 > 0.25 &&
			math.Abs(pr2-prev2)/prev2 < 0.2 {
			filtered.SetContent(bin-1, 0)
		}
	}
}

// BadWire flags one disabled sense wire. All indices are 1-based physical
// labels, with Layer local to its superlayer.
type BadWire struct {
	SuperLayer int
	Sector     int
	Layer      int
	Wire       int
}

// AbsoluteLayer maps the per-superlayer layer to the 1..36 numbering used
// by the calibration database.
func (b BadWire) AbsoluteLayer() int { return b.Layer + (b.SuperLayer-1)*6 }

// ExtractBadWires scans a layer-level filtered profile for wires whose
// surviving content is effectively zero. Only bins 5..N are scanned and only
// wire centers strictly inside (5, 106) are trusted; outside that range low
// occupancy is expected and not evidence of a dead wire.
func ExtractBadWires(filtered *hist.Profile, sl, sec, lay int) []BadWire {
	var out []BadWire
	for bin := 5; bin <= filtered.NBins(); bin++ {
		wire := filtered.Center(bin)
		if filtered.Content(bin) <= 1 && 5 < wire && wire < 106 {
			out = append(out, BadWire{
				SuperLayer: sl,
				Sector:     sec,
				Layer:      lay,
				Wire:       int(wire),
			})
		}
	}
	return out
}
