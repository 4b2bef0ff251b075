// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Command dc-status screens one run's occupancy histograms for bad sense
// wires and writes the per-sector CSVs and diagnostic canvases.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/clas12-calib/dc-badwires/pipeline"
	"github.com/clas12-calib/dc-badwires/status"
)

var flagSet = flag.NewFlagSet("dc-status", flag.ExitOnError)

var (
	input      = flagSet.String("input", "", "path to the input histogram file")
	output     = flagSet.String("output", "", "base output directory for plots and CSVs")
	configPath = flagSet.String("config", "", "optional YAML file overriding the screening parameters")
	logY       = flagSet.Bool("logy", false, "draw layer occupancy pads with a log scale")
)

func main() {
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s --input <run.root> --output <dir> [options]\n\noptions:\n", os.Args[0])
		flagSet.PrintDefaults()
	}
	flagSet.Parse(os.Args[1:])

	if *input == "" || *output == "" {
		flagSet.Usage()
		log.Fatal("Invalid arguments")
	}

	cfg := status.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = status.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	cfg.LogY = cfg.LogY || *logY

	runDir, err := pipeline.StatusStage(*input, *output, cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("run output in %s", runDir)
}
