// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Package render draws the diagnostic output of the bad-wire pipeline:
// multi-pad occupancy canvases with fit overlays, 2D layer-vs-component
// maps, the flagged-wire grid, and the paginated review PDF.
package render

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// FuncScale maps an axis through an arbitrary monotonic function. Used for
// the log-scale occupancy pads, where empty bins would otherwise blow up
// the transform.
type FuncScale struct {
	Func func(float64) float64
}

func (s *FuncScale) Normalize(min, max, x float64) float64 {
	if s.Func == nil {
		panic("s.Func is nil")
	}
	fMin := s.Func(min)
	return (s.Func(x) - fMin) / (s.Func(max) - fMin)
}

// Log10Min3 is log10 clamped at 1e-3, keeping empty occupancy bins finite.
func Log10Min3(x float64) float64 {
	if x <= 0.001 {
		return -3
	}
	return math.Log10(x)
}

// LogTicks places decade ticks with minor marks at each integer multiple.
type LogTicks struct{}

func (LogTicks) Ticks(min, max float64) []plot.Tick {
	val := math.Pow10(int(Log10Min3(min)))
	max = math.Pow10(int(math.Ceil(Log10Min3(max))))
	var ticks []plot.Tick
	for val < max {
		for i := 1; i < 10; i++ {
			if i == 1 {
				ticks = append(ticks, plot.Tick{Value: val, Label: formatFloatTick(val, 5)})
			}
			ticks = append(ticks, plot.Tick{Value: val * float64(i)})
		}
		val *= 10
	}
	ticks = append(ticks, plot.Tick{Value: val, Label: formatFloatTick(val, 5)})

	return ticks
}

func formatFloatTick(v float64, prec int) string {
	return strconv.FormatFloat(v, 'g', prec, 64)
}
