// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Package data holds the I/O plumbing around the screening pipeline: the
// ROOT histogram source adapter, run discovery over local directories and
// GCS buckets, per-run output preparation, and the chain stage runner.
package data

import (
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/rootcnv"

	"github.com/clas12-calib/dc-badwires/hist"
)

// histDir is the file directory the upstream converter writes under.
const histDir = "overview"

// HistFile adapts the reconstruction framework's ROOT output to pipeline
// profiles. All index arguments are 0-based, matching the histogram naming
// scheme of the upstream converter.
type HistFile struct {
	f *riofs.File
}

// OpenHistFile opens a per-run ROOT histogram file.
func OpenHistFile(path string) (*HistFile, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, fmt.Errorf("data: opening histogram file: %w", err)
	}
	return &HistFile{f: f}, nil
}

// Close releases the underlying file.
func (hf *HistFile) Close() error { return hf.f.Close() }

func (hf *HistFile) profile(name string) (*hist.Profile, error) {
	obj, err := riofs.Dir(hf.f).Get(histDir + "/" + name)
	if err != nil {
		return nil, fmt.Errorf("data: histogram %s/%s: %w", histDir, name, err)
	}
	h1, ok := obj.(rhist.H1)
	if !ok {
		return nil, fmt.Errorf("data: %s/%s is a %T, not a 1D histogram", histDir, name, obj)
	}
	return hist.FromH1D(name, rootcnv.H1D(h1)), nil
}

func (hf *HistFile) hist2d(name string) (*hbook.H2D, error) {
	obj, err := riofs.Dir(hf.f).Get(histDir + "/" + name)
	if err != nil {
		return nil, fmt.Errorf("data: histogram %s/%s: %w", histDir, name, err)
	}
	h2, ok := obj.(rhist.H2)
	if !ok {
		return nil, fmt.Errorf("data: %s/%s is a %T, not a 2D histogram", histDir, name, obj)
	}
	return rootcnv.H2D(h2), nil
}

// SummedProfile returns the all-sector occupancy sum for a superlayer.
func (hf *HistFile) SummedProfile(sl int) (*hist.Profile, error) {
	return hf.profile(fmt.Sprintf("avgWireSummed_SL%d", sl))
}

// SectorProfile returns the per-sector occupancy for a superlayer.
func (hf *HistFile) SectorProfile(sec, sl int) (*hist.Profile, error) {
	return hf.profile(fmt.Sprintf("avgWire_S%d_SL%d", sec, sl))
}

// LayerProfile returns the per-layer wire occupancy.
func (hf *HistFile) LayerProfile(sec, sl, lay int) (*hist.Profile, error) {
	return hf.profile(fmt.Sprintf("wireINlayer_S%d_SL%d_L%d", sec, sl, lay))
}

// LayerVsCompLeft returns the left-side layer-vs-component occupancy map.
func (hf *HistFile) LayerVsCompLeft(sec, sl int) (*hbook.H2D, error) {
	return hf.hist2d(fmt.Sprintf("layVScomp_leftSL_S%d_SL%d", sec, sl))
}

// LayerVsCompRight returns the right-side layer-vs-component occupancy map.
func (hf *HistFile) LayerVsCompRight(sec, sl int) (*hbook.H2D, error) {
	return hf.hist2d(fmt.Sprintf("layVScomp_rightSL_S%d_SL%d", sec, sl))
}
