// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Command dc-chain batches the whole pipeline over every run under a
// resource URL: screening, table aggregation and PDF assembly per run.
// Runs are independent; a failing run is reported and skipped.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/clas12-calib/dc-badwires/data"
	"github.com/clas12-calib/dc-badwires/pipeline"
	"github.com/clas12-calib/dc-badwires/status"
)

var flagSet = flag.NewFlagSet("dc-chain", flag.ExitOnError)

var (
	runsURL     = flagSet.String("runs", "", "resource URL of the run files, file://dir or gs://bucket/prefix")
	output      = flagSet.String("output", "", "base output directory")
	credentials = flagSet.String("credentials", "", "path to GCS credentials JSON, if the runs live in a bucket")
	configPath  = flagSet.String("config", "", "optional YAML file overriding the screening parameters")
	sqliteName  = flagSet.String("sqlite", "", "optional SQLite staging database name written per run directory")
)

func main() {
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s --runs <url> --output <dir> [options]\n\noptions:\n", os.Args[0])
		flagSet.PrintDefaults()
	}
	flagSet.Parse(os.Args[1:])

	if *runsURL == "" || *output == "" {
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

	var creds string
	if *credentials != "" {
		buf, err := os.ReadFile(*credentials)
		if err != nil {
			log.Fatal(err)
		}
		creds = string(buf)
	}

	ctx := context.Background()
	runs, err := data.ListResourceRuns(ctx, *runsURL, creds)
	if err != nil {
		log.Fatal(err)
	}
	if len(runs) == 0 {
		log.Fatalf("no runs found under %s", *runsURL)
	}

	failed := 0
	for _, run := range runs {
		if err := processRun(ctx, run, creds, cfg); err != nil {
			log.Printf("run %s failed: %v", run.Name, err)
			failed++
		}
	}
	if failed > 0 {
		log.Fatalf("%d of %d runs failed", failed, len(runs))
	}
}

func processRun(ctx context.Context, run *data.RunObject, creds string, cfg status.Config) error {
	input, err := data.ResourcePath(ctx, *runsURL, run.Name, filepath.Join(*output, "staging"), creds)
	if err != nil {
		return err
	}

	ops := data.OpArray{
		data.OpFunc{
			Description: "Screens occupancy profiles and flags bad wires",
			Func: func(ctx context.Context, rc *data.RunContext) error {
				runDir, err := pipeline.StatusStage(rc.Input, *output, cfg)
				if err != nil {
					return err
				}
				rc.RunDir = runDir
				return nil
			},
		},
		data.OpFunc{
			Description: "Aggregates flagged wires into CCDB tables",
			Func: func(ctx context.Context, rc *data.RunContext) error {
				opts := pipeline.TableOptions{
					MakeGrid: true,
					DrawGrid: true,
					Run:      filepath.Base(rc.RunDir),
				}
				if *sqliteName != "" {
					opts.SQLitePath = filepath.Join(rc.RunDir, *sqliteName)
				}
				return pipeline.TableStage(filepath.Join(rc.RunDir, "results"), rc.RunDir, opts)
			},
		},
		data.OpFunc{
			Description: "Paginates diagnostic images into the review PDF",
			Func: func(ctx context.Context, rc *data.RunContext) error {
				return pipeline.PDFStage(filepath.Join(rc.RunDir, "results"), filepath.Join(rc.RunDir, "wire_distrib.pdf"))
			},
		},
	}
	return ops.Run(ctx, &data.RunContext{Input: input})
}
