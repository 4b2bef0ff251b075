// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package status

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// SectionHeader is the column set of the per-sector bad-wire CSVs and of
// every table derived from them.
var SectionHeader = []string{"Super Layer", "Sector", "Layer", "Wire"}

// WriteSectionCSVs writes BWsec<m>.csv files under <resultsDir>/SL<k>/.
// A (superlayer, sector) pair with no flagged wires produces no file at
// all; the aggregation stage treats a missing section file as "nothing
// flagged here".
func WriteSectionCSVs(res *RunResults, resultsDir string) error {
	for _, sl := range res.Superlayers {
		outDir := filepath.Join(resultsDir, fmt.Sprintf("SL%d", sl.Index+1))
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return err
		}
		for sec, sres := range sl.Sectors {
			var records []BadWire
			for _, lres := range sres.Layers {
				records = append(records, lres.BadWires...)
			}
			if len(records) == 0 {
				continue
			}
			if err := writeSectionCSV(filepath.Join(outDir, fmt.Sprintf("BWsec%d.csv", sec+1)), records); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSectionCSV(path string, records []BadWire) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(SectionHeader); err != nil {
		f.Close()
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.SuperLayer),
			strconv.Itoa(r.Sector),
			strconv.Itoa(r.Layer),
			strconv.Itoa(r.Wire),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
