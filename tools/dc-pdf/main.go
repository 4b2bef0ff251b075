// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Command dc-pdf collects a run's per-sector diagnostic images into a
// single review PDF, one page per image.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/clas12-calib/dc-badwires/pipeline"
)

var flagSet = flag.NewFlagSet("dc-pdf", flag.ExitOnError)

var (
	baseDir = flagSet.String("base-dir", ".", "base directory containing SL*/sec*.png")
	output  = flagSet.String("output", "combined_plots.pdf", "output PDF file path")
)

func main() {
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\noptions:\n", os.Args[0])
		flagSet.PrintDefaults()
	}
	flagSet.Parse(os.Args[1:])

	if err := pipeline.PDFStage(*baseDir, *output); err != nil {
		log.Fatal(err)
	}
}
