// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package render

import (
	"image/color"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Palette of the diagnostic canvases.
var (
	ColorObserved = color.NRGBA{R: 0xd6, G: 0x28, B: 0x28, A: 0xff} // red fill, raw occupancy
	ColorFiltered = color.NRGBA{R: 0x3b, G: 0x4c, B: 0xc0, A: 0xff} // blue fill, surviving bins
	ColorSummed   = color.NRGBA{R: 0x46, G: 0x32, B: 0x96, A: 0xff}
	ColorMarker   = color.NRGBA{R: 0x20, G: 0x20, B: 0xff, A: 0xff}
)

// HistStyle is the explicit styling carried into each pad. There is no
// shared drawing state: every pad gets its own value.
type HistStyle struct {
	XLabel string
	YLabel string
	XMax   float64
	LogY   bool
}

// DefaultHistStyle is the wire-occupancy pad styling.
func DefaultHistStyle() HistStyle {
	return HistStyle{XLabel: "wire", YLabel: "events", XMax: 115}
}

// newPad builds an hplot pad with the style applied.
func newPad(title string, st HistStyle) *hplot.Plot {
	p := hplot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(11)
	p.X.Label.Text = st.XLabel
	p.Y.Label.Text = st.YLabel
	p.X.Min = 0
	if st.XMax > 0 {
		p.X.Max = st.XMax
	}
	if st.LogY {
		p.Y.Scale = &FuncScale{Func: Log10Min3}
		p.Y.Tick.Marker = LogTicks{}
	} else {
		p.Y.Tick.Marker = plot.DefaultTicks{}
	}
	p.Add(hplot.NewGrid())
	return p
}
