// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Command dc-table assembles a run's bad-wire CSVs into superlayer tables,
// a global table and the CCDB exports.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/clas12-calib/dc-badwires/pipeline"
)

var flagSet = flag.NewFlagSet("dc-table", flag.ExitOnError)

var (
	baseDir    = flagSet.String("base-dir", ".", "directory containing the SL1..SL6 subfolders")
	outDir     = flagSet.String("out-dir", ".", "directory to write outputs")
	makeGrid   = flagSet.Bool("make-grid", true, "also generate BW_ccdb.dat merged with the full grid")
	drawGrid   = flagSet.Bool("draw-grid", true, "draw the 2x3 per-sector grid plot")
	plotOut    = flagSet.String("plot-out", "", "output image for the grid plot (default <out-dir>/bw_plot_grid.png)")
	sqlitePath = flagSet.String("sqlite", "", "optional SQLite staging database to export the merged grid into")
)

func main() {
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\noptions:\n", os.Args[0])
		flagSet.PrintDefaults()
	}
	flagSet.Parse(os.Args[1:])

	opts := pipeline.TableOptions{
		MakeGrid:   *makeGrid,
		DrawGrid:   *drawGrid,
		PlotOut:    *plotOut,
		SQLitePath: *sqlitePath,
		Run:        filepath.Base(*outDir),
	}
	if err := pipeline.TableStage(*baseDir, *outDir, opts); err != nil {
		log.Fatal(err)
	}
	log.Print("done")
}
