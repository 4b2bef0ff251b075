// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package data

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// PrepareRunDir creates <baseOutputDir>/<run number> for an input file and
// returns it. The directory is shared across stages of the same run and
// owned exclusively by that run.
func PrepareRunDir(inputPath, baseOutputDir string) (string, error) {
	run, err := RunNumber(inputPath)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(baseOutputDir, run)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("data: creating run directory: %w", err)
	}
	return dir, nil
}

// CleanCSVs deletes every *.csv under dir. Result directories are reused
// between invocations of the screening stage and a stale section file from
// an earlier pass would leak into the aggregation step.
func CleanCSVs(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return err
	}
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			log.Printf("data: cannot delete stale file %s: %v", file, err)
			continue
		}
		log.Printf("data: deleted stale file %s", file)
	}
	return nil
}
