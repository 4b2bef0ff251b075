// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Package pipeline wires the screening, aggregation and reporting stages
// together so the per-stage tools and the batch chain share one
// implementation.
package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/clas12-calib/dc-badwires/data"
	"github.com/clas12-calib/dc-badwires/render"
	"github.com/clas12-calib/dc-badwires/status"
	"github.com/clas12-calib/dc-badwires/table"
)

// StatusStage screens one run: reads the histogram file, runs the fit and
// filter hierarchy, renders the diagnostic canvases and writes the
// per-sector bad-wire CSVs. Returns the run-owned output directory.
func StatusStage(input, outputBase string, cfg status.Config) (string, error) {
	runDir, err := data.PrepareRunDir(input, outputBase)
	if err != nil {
		return "", err
	}
	resultsDir := filepath.Join(runDir, "results")
	for sl := 1; sl <= 6; sl++ {
		slDir := filepath.Join(resultsDir, fmt.Sprintf("SL%d", sl))
		if err := os.MkdirAll(slDir, 0755); err != nil {
			return "", err
		}
		if err := data.CleanCSVs(slDir); err != nil {
			return "", err
		}
	}

	src, err := data.OpenHistFile(input)
	if err != nil {
		return "", err
	}
	defer src.Close()

	res, err := status.ProcessRun(src, cfg)
	if err != nil {
		return "", err
	}

	plotsDir := filepath.Join(runDir, "plots")
	if err := render.SummedCanvas(res, filepath.Join(plotsDir, "avgWireSum.png")); err != nil {
		return "", err
	}
	if err := render.IntegratedCanvas(res, filepath.Join(plotsDir, "avgWireInt.png")); err != nil {
		return "", err
	}

	layerStyle := render.DefaultHistStyle()
	layerStyle.XMax = 114
	layerStyle.LogY = cfg.LogY
	for i := range res.Superlayers {
		sl := &res.Superlayers[i]
		slPng := filepath.Join(runDir, "SupLayers", fmt.Sprintf("SLnew%d.png", sl.Index+1))
		if err := render.SuperlayerCanvas(sl, slPng); err != nil {
			return "", err
		}
		for sec := 0; sec < 6; sec++ {
			secPng := filepath.Join(resultsDir, fmt.Sprintf("SL%d", sl.Index+1), fmt.Sprintf("sec%d.png", sec+1))
			if err := render.SectorLayersCanvas(sl, sec, layerStyle, secPng); err != nil {
				return "", err
			}
		}
	}

	if err := status.WriteSectionCSVs(res, resultsDir); err != nil {
		return "", err
	}
	return runDir, nil
}

// TableOptions tunes the aggregation stage.
type TableOptions struct {
	MakeGrid   bool
	DrawGrid   bool
	PlotOut    string // empty means <outDir>/bw_plot_grid.png
	SQLitePath string // empty disables the staging export
	Run        string // run label recorded in the staging database
}

// TableStage aggregates a run's section CSVs into the superlayer tables,
// the global table and the CCDB exports.
func TableStage(baseDir, outDir string, opts TableOptions) error {
	if _, err := table.BuildSuperlayerOutputs(baseDir, outDir); err != nil {
		return err
	}
	total, err := table.BuildTotal(outDir)
	if err != nil {
		return err
	}
	ccdb, err := table.ToCCDBOnly(total, outDir)
	if err != nil {
		return err
	}

	if opts.MakeGrid {
		grid, err := table.MergeGrid(ccdb, outDir)
		if err != nil {
			return err
		}
		if opts.SQLitePath != "" {
			jobID, err := table.ExportSQLite(opts.SQLitePath, opts.Run, grid)
			if err != nil {
				return err
			}
			log.Printf("pipeline: staged grid in %s as job %s", opts.SQLitePath, jobID)
		}
	}

	if opts.DrawGrid {
		rows, err := table.ReadCCDBTable(filepath.Join(outDir, "BW_only_ccdb.dat"))
		if err != nil {
			return err
		}
		plotOut := opts.PlotOut
		if plotOut == "" {
			plotOut = filepath.Join(outDir, "bw_plot_grid.png")
		}
		if err := render.BadWireGrid(rows, nil, "", plotOut); err != nil {
			return err
		}
		log.Printf("pipeline: grid plot saved -> %s", plotOut)
	}
	return nil
}

// PDFStage paginates a run's sector images into the review PDF.
func PDFStage(baseDir, output string) error {
	images, err := render.CollectImages(baseDir)
	if err != nil {
		return err
	}
	if err := render.MakePDF(images, output); err != nil {
		return err
	}
	log.Printf("pipeline: wrote %d pages to %s", len(images), output)
	return nil
}
