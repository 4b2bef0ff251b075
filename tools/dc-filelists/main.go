// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Command dc-filelists walks a directory tree for .hipo files and writes
// one path-list file per directory containing them, for the upstream
// histogram converter to chain over.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/clas12-calib/dc-badwires/data"
)

var flagSet = flag.NewFlagSet("dc-filelists", flag.ExitOnError)

var outDir = flagSet.String("out-dir", "run_paths", "directory to write the list files into")

func main() {
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <base-input-folder>\n\noptions:\n", os.Args[0])
		flagSet.PrintDefaults()
	}
	flagSet.Parse(os.Args[1:])

	if flagSet.NArg() != 1 {
		flagSet.Usage()
		log.Fatal("Invalid arguments")
	}

	out := *outDir
	if !filepath.IsAbs(out) {
		wd, err := os.Getwd()
		if err != nil {
			log.Fatal(err)
		}
		out = filepath.Join(wd, out)
	}

	n, err := data.WriteHipoLists(flagSet.Arg(0), out)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d list files to %s", n, out)
}
