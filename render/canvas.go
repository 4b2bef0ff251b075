// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/clas12-calib/dc-badwires/fitting"
	"github.com/clas12-calib/dc-badwires/hist"
	"github.com/clas12-calib/dc-badwires/status"
)

// writeCanvas rasterizes a tiled canvas to a PNG file.
func writeCanvas(img *vgimg.Canvas, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func histogram(p *hist.Profile, fill, line color.Color) *hplot.H1D {
	h := hplot.NewH1D(p.H1D())
	h.FillColor = fill
	h.LineStyle.Color = line
	h.LineStyle.Width = vg.Points(0.5)
	return h
}

// fitCurves renders each segment of a fitted model over its own fit range.
func fitCurves(set *fitting.SegmentSet) []*plotter.Function {
	var fns []*plotter.Function
	for _, seg := range set.Segs {
		seg := seg
		fn := plotter.NewFunction(seg.Eval)
		fn.XMin = seg.XMin
		fn.XMax = seg.XMax
		if seg.Kind == fitting.PolyHyperbolic && fn.XMin < 0.5 {
			fn.XMin = 0.5
		}
		fn.Color = ColorMarker
		fn.Width = vg.Points(1.5)
		fn.Samples = 200
		fns = append(fns, fn)
	}
	return fns
}

func occupancyPad(title string, st HistStyle, obs, filtered *hist.Profile, fit *fitting.SegmentSet) *hplot.Plot {
	p := newPad(title, st)
	p.Add(histogram(obs, ColorObserved, ColorObserved))
	if filtered != nil {
		p.Add(histogram(filtered, ColorFiltered, ColorFiltered))
	}
	if fit != nil {
		for _, fn := range fitCurves(fit) {
			p.Add(fn)
		}
	}
	return p
}

// SummedCanvas draws the six all-sector summed profiles on a 3x2 canvas
// (plots/avgWireSum.png).
func SummedCanvas(res *status.RunResults, path string) error {
	img := vgimg.New(25*vg.Inch/2, 6*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 2, Cols: 3, PadX: vg.Millimeter, PadY: vg.Millimeter}
	for i := range res.Superlayers {
		sl := &res.Superlayers[i]
		p := occupancyPad(fmt.Sprintf("Sum All Sec, SupLay %d", i+1), DefaultHistStyle(), sl.Summed, nil, nil)
		p.Draw(tiles.At(dc, i%3, i/3))
	}
	return writeCanvas(img, path)
}

// IntegratedCanvas draws the summed profiles again, heavier line, x capped
// at the last real wire (plots/avgWireInt.png).
func IntegratedCanvas(res *status.RunResults, path string) error {
	img := vgimg.New(10*vg.Inch, 3*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 2, Cols: 3, PadX: vg.Millimeter, PadY: vg.Millimeter}
	st := DefaultHistStyle()
	st.XMax = 114
	for i := range res.Superlayers {
		sl := &res.Superlayers[i]
		p := newPad(fmt.Sprintf("SupLay %d", i+1), st)
		h := histogram(sl.Summed, nil, ColorSummed)
		h.LineStyle.Width = vg.Points(1.5)
		p.Add(h)
		p.Draw(tiles.At(dc, i%3, i/3))
	}
	return writeCanvas(img, path)
}

// SuperlayerCanvas draws one superlayer's sector view on a 4x2 canvas: six
// sector pads with observed, filtered and fit overlays, and the summed
// profile with its fit in the last pad (SupLayers/SLnew<k>.png).
func SuperlayerCanvas(sl *status.SuperlayerResult, path string) error {
	img := vgimg.New(25*vg.Inch/2, 5*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 2, Cols: 4, PadX: vg.Millimeter, PadY: vg.Millimeter}

	for sec := 0; sec < 6; sec++ {
		sres := &sl.Sectors[sec]
		title := fmt.Sprintf("avgWire Sec %d, SupLay %d", sec+1, sl.Index+1)
		p := occupancyPad(title, DefaultHistStyle(), sres.Observed, sres.Filtered, sres.Fit)
		// pads 0..2 on the top row, 3..5 on the bottom; the last column is
		// reserved for the sum
		p.Draw(tiles.At(dc, sec%3, sec/3))
	}

	sum := occupancyPad(fmt.Sprintf("avgWire Sum, SupLay %d", sl.Index+1), DefaultHistStyle(), sl.Summed, nil, sl.SumFit)
	sum.Draw(tiles.At(dc, 3, 1))

	return writeCanvas(img, path)
}

// SectorLayersCanvas draws one (superlayer, sector) layer view on a 4x2
// canvas: six per-layer pads plus the left/right layer-vs-component maps
// (results/SL<k>/sec<m>.png).
func SectorLayersCanvas(sl *status.SuperlayerResult, sec int, st HistStyle, path string) error {
	sres := &sl.Sectors[sec]

	img := vgimg.New(19*vg.Inch/2, 6*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 2, Cols: 4, PadX: vg.Millimeter, PadY: vg.Millimeter}

	for lay := 0; lay < 6; lay++ {
		lres := &sres.Layers[lay]
		title := fmt.Sprintf("Wires, S %d, SupLay %d, Abs. Lay %d", sec+1, sl.Index+1, sl.Index*6+lay+1)
		p := occupancyPad(title, st, lres.Observed, lres.Filtered, lres.Fit)
		p.Draw(tiles.At(dc, lay%3, lay/3))
	}

	colorMap := moreland.Kindlmann()
	for i, h2 := range []*hbook.H2D{sres.MapLeft, sres.MapRight} {
		p := newPad(fmt.Sprintf("S%d", sec+1), HistStyle{XLabel: "wire", YLabel: "layer"})
		if h2 != nil {
			p.Add(hplot.NewH2D(h2, colorMap.Palette(1000)))
		}
		p.Draw(tiles.At(dc, 3, i))
	}

	return writeCanvas(img, path)
}
