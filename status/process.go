// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package status

import (
	"go-hep.org/x/hep/hbook"

	"github.com/clas12-calib/dc-badwires/data"
	"github.com/clas12-calib/dc-badwires/fitting"
	"github.com/clas12-calib/dc-badwires/hist"
)

// LayerResult is the screening outcome for one wire layer.
type LayerResult struct {
	Observed *hist.Profile
	Filtered *hist.Profile
	Fit      *fitting.SegmentSet
	BadWires []BadWire
}

// SectorResult is the screening outcome for one sector of a superlayer.
// The sector fit is retained: it is the coarser model the layer stage
// rescales from, not something to refit.
type SectorResult struct {
	Observed *hist.Profile
	Filtered *hist.Profile
	Fit      *fitting.SegmentSet
	Layers   [6]LayerResult

	// Side occupancy maps, carried through for the diagnostics canvas.
	MapLeft  *hbook.H2D
	MapRight *hbook.H2D
}

// SuperlayerResult is the screening outcome for one superlayer.
type SuperlayerResult struct {
	Index   int // 0-based
	Summed  *hist.Profile
	SumFit  *fitting.SegmentSet
	Sectors [6]SectorResult
}

// RunResults is the full screening outcome for one run.
type RunResults struct {
	Superlayers [6]SuperlayerResult
}

// BadWires flattens every flagged wire of the run.
func (r *RunResults) BadWires() []BadWire {
	var out []BadWire
	for _, sl := range r.Superlayers {
		for _, sec := range sl.Sectors {
			for _, lay := range sec.Layers {
				out = append(out, lay.BadWires...)
			}
		}
	}
	return out
}

// ProcessRun runs the fit+filter hierarchy over every superlayer of a run.
//
// The descent is multiplicative: the summed profile is fitted once per
// superlayer, each sector rescales that fit by its integral ratio, and each
// layer rescales the sector fit in turn. Integrals are taken over the
// trusted bin range [startG1, maxWire].
func ProcessRun(src *data.HistFile, cfg Config) (*RunResults, error) {
	res := &RunResults{}
	for isl := 0; isl < 6; isl++ {
		if err := processSuperlayer(src, cfg, isl, &res.Superlayers[isl]); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func processSuperlayer(src *data.HistFile, cfg Config, isl int, out *SuperlayerResult) error {
	r := cfg.Ranges[isl]
	loBin, hiBin := int(r.StartG1), int(r.MaxWire)

	summed, err := src.SummedProfile(isl)
	if err != nil {
		return err
	}
	summed.ApplyTailFloor(cfg.TailFloorStart, cfg.TailFloorValue)

	out.Index = isl
	out.Summed = summed
	out.SumFit = fitting.FitProfile(summed, r)

	for sec := 0; sec < 6; sec++ {
		sres := &out.Sectors[sec]

		sres.Observed, err = src.SectorProfile(sec, isl)
		if err != nil {
			return err
		}
		norm := fitting.Normalization(sres.Observed, summed, loBin, hiBin)
		sres.Fit = out.SumFit.CloneScale(norm)
		sres.Filtered = cfg.FilterSector(sres.Observed, sres.Fit)

		for lay := 0; lay < 6; lay++ {
			lres := &sres.Layers[lay]

			lres.Observed, err = src.LayerProfile(sec, isl, lay)
			if err != nil {
				return err
			}
			norm := fitting.Normalization(lres.Observed, sres.Observed, loBin, hiBin)
			lres.Fit = sres.Fit.CloneScale(norm)
			lres.Filtered = cfg.FilterLayer(lres.Observed, lres.Fit)
			lres.BadWires = ExtractBadWires(lres.Filtered, isl+1, sec+1, lay+1)
		}

		if sres.MapLeft, err = src.LayerVsCompLeft(sec, isl); err != nil {
			return err
		}
		if sres.MapRight, err = src.LayerVsCompRight(sec, isl); err != nil {
			return err
		}
	}
	return nil
}
