// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package render

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/clas12-calib/dc-badwires/table"
)

// BadWireGrid draws one 2D map per sector of the flagged wires on a 2x3
// canvas. With two inputs the weights differ (1 and 2, overlaps reaching 3)
// so a comparison between aggregations stays readable; a single input fills
// with a flat weight.
func BadWireGrid(primary, secondary []table.CCDBRow, title, path string) error {
	var hists [6]*hbook.H2D
	for sec := 0; sec < 6; sec++ {
		hists[sec] = hbook.NewH2D(
			table.NComponents+1, 0.5, float64(table.NComponents)+1.5,
			table.NLayers+1, 0.5, float64(table.NLayers)+1.5,
		)
	}

	weight := 1.0
	if secondary == nil {
		weight = 3.0
	}
	fill := func(rows []table.CCDBRow, w float64) {
		for _, r := range rows {
			if r.Sector < 1 || r.Sector > 6 {
				continue
			}
			hists[r.Sector-1].Fill(float64(r.Component), float64(r.Layer), w)
		}
	}
	fill(primary, weight)
	fill(secondary, 2)

	img := vgimg.New(14*vg.Inch/2, 9*vg.Inch/2)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 3, Cols: 2, PadX: vg.Millimeter, PadY: vg.Millimeter}
	colorMap := moreland.Kindlmann()

	for sec := 0; sec < 6; sec++ {
		padTitle := fmt.Sprintf("Sector %d", sec+1)
		if title != "" {
			padTitle = fmt.Sprintf("%s - Sector %d", title, sec+1)
		}
		p := newPad(padTitle, HistStyle{XLabel: "wire", YLabel: "layer"})
		p.Add(hplot.NewH2D(hists[sec], colorMap.Palette(1000)))
		p.Draw(tiles.At(dc, sec%2, sec/2))
	}

	return writeCanvas(img, path)
}
