// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Package table assembles per-sector bad-wire CSVs into superlayer tables,
// a global table, and the calibration-database exports.
package table

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/clas12-calib/dc-badwires/status"
)

// Detector extents of the CCDB grid.
const (
	NSectors    = 6
	NLayers     = 36
	NComponents = 112
)

// ReadSectionFiles reads BWsec1..6.csv from a superlayer directory.
// Missing section files mean "no bad wires in that sector" and are skipped
// with a warning; an unreadable or malformed file is skipped the same way.
func ReadSectionFiles(slDir string) []status.BadWire {
	var records []status.BadWire
	for sec := 1; sec <= NSectors; sec++ {
		path := filepath.Join(slDir, fmt.Sprintf("BWsec%d.csv", sec))
		if _, err := os.Stat(path); err != nil {
			log.Printf("table: skipping missing file: %s", path)
			continue
		}
		recs, err := readRecords(path)
		if err != nil {
			log.Printf("table: could not read %s: %v", path, err)
			continue
		}
		records = append(records, recs...)
	}
	return records
}

// readRecords parses one bad-wire table. The header must carry exactly the
// section schema; anything else is a schema error naming the path and the
// expected column set.
func readRecords(path string) ([]status.BadWire, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty table, expected columns %v", path, status.SectionHeader)
	}
	if err := checkHeader(rows[0], status.SectionHeader); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	records := make([]status.BadWire, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var vals [4]int
		for i := range vals {
			// The wire column may come through as a float from older
			// producers; parse accordingly and truncate.
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad value %q in column %q", path, row[i], status.SectionHeader[i])
			}
			vals[i] = int(v)
		}
		records = append(records, status.BadWire{
			SuperLayer: vals[0],
			Sector:     vals[1],
			Layer:      vals[2],
			Wire:       vals[3],
		})
	}
	return records, nil
}

func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("expected columns %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("expected columns %v, got %v", want, got)
		}
	}
	return nil
}

func writeRecords(path string, records []status.BadWire) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(status.SectionHeader); err != nil {
		f.Close()
		return err
	}
	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.SuperLayer),
			strconv.Itoa(rec.Sector),
			strconv.Itoa(rec.Layer),
			strconv.Itoa(rec.Wire),
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

// BuildSuperlayerOutputs reads each superlayer's section CSVs under baseDir
// (SL1..SL6 subdirectories) and writes BW_SL<k>.dat under outDir. A
// superlayer with nothing flagged still gets a header-only table so the
// total stage can tell "empty" from "missing". Returns the total row count.
func BuildSuperlayerOutputs(baseDir, outDir string) (int, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, err
	}
	total := 0
	for sl := 1; sl <= 6; sl++ {
		records := ReadSectionFiles(filepath.Join(baseDir, fmt.Sprintf("SL%d", sl)))
		outFile := filepath.Join(outDir, fmt.Sprintf("BW_SL%d.dat", sl))
		if err := writeRecords(outFile, records); err != nil {
			return total, err
		}
		log.Printf("table: [SL%d] rows=%d -> %s", sl, len(records), outFile)
		total += len(records)
	}
	return total, nil
}

// BuildTotal concatenates BW_SL1..6.dat into BW_total.dat. A missing
// per-superlayer file here is fatal: silently producing a short global
// table would un-flag every wire of the absent superlayer.
func BuildTotal(outDir string) ([]status.BadWire, error) {
	var total []status.BadWire
	for sl := 1; sl <= 6; sl++ {
		path := filepath.Join(outDir, fmt.Sprintf("BW_SL%d.dat", sl))
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("table: expected file not found: %s", path)
		}
		records, err := readRecords(path)
		if err != nil {
			return nil, err
		}
		total = append(total, records...)
	}
	outFile := filepath.Join(outDir, "BW_total.dat")
	if err := writeRecords(outFile, total); err != nil {
		return nil, err
	}
	log.Printf("table: [TOTAL] rows=%d -> %s", len(total), outFile)
	return total, nil
}
