// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package table

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/clas12-calib/dc-badwires/status"
)

// StatusDisabled is the CCDB status constant for a disabled component.
const StatusDisabled = 112

// CCDBRow is one calibration-database record. Layer is the absolute layer
// index 1..36 across superlayers.
type CCDBRow struct {
	Sector    int
	Layer     int
	Component int
	Status    int
}

var ccdbHeader = []string{"sector", "layer", "component", "status"}

// ToCCDBOnly converts the global bad-wire table to CCDB rows: absolute
// layer numbering, status 112 everywhere, sorted by (sector, layer,
// component). Writes BW_only_ccdb.dat under outDir.
func ToCCDBOnly(total []status.BadWire, outDir string) ([]CCDBRow, error) {
	rows := make([]CCDBRow, len(total))
	for i, bw := range total {
		rows[i] = CCDBRow{
			Sector:    bw.Sector,
			Layer:     bw.AbsoluteLayer(),
			Component: bw.Wire,
			Status:    StatusDisabled,
		}
	}
	sortRows(rows)

	outFile := filepath.Join(outDir, "BW_only_ccdb.dat")
	if err := writeCCDBRows(outFile, rows, ",", "status"); err != nil {
		return nil, err
	}
	log.Printf("table: [CCDB only] rows=%d -> %s", len(rows), outFile)
	return rows, nil
}

func sortRows(rows []CCDBRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Sector != b.Sector {
			return a.Sector < b.Sector
		}
		if a.Layer != b.Layer {
			return a.Layer < b.Layer
		}
		return a.Component < b.Component
	})
}

// FullGrid builds the dense (sector, layer, component) grid with status 0,
// in (sector, layer, component) ascending order. Every key appears exactly
// once; the grid always has NSectors*NLayers*NComponents rows.
func FullGrid() []CCDBRow {
	rows := make([]CCDBRow, 0, NSectors*NLayers*NComponents)
	for sec := 1; sec <= NSectors; sec++ {
		for lay := 1; lay <= NLayers; lay++ {
			for comp := 1; comp <= NComponents; comp++ {
				rows = append(rows, CCDBRow{Sector: sec, Layer: lay, Component: comp})
			}
		}
	}
	return rows
}

// MergeGrid left-joins the CCDB-only rows onto the dense grid: matched keys
// take status 112, everything else stays 0. Writes the pre-merge grid to
// BW_empty.dat and the merged grid to BW_ccdb.dat (both space-separated).
func MergeGrid(ccdb []CCDBRow, outDir string) ([]CCDBRow, error) {
	grid := FullGrid()

	if err := writeCCDBRows(filepath.Join(outDir, "BW_empty.dat"), grid, " ", "status0"); err != nil {
		return nil, err
	}

	flagged := make(map[[3]int]int, len(ccdb))
	for _, r := range ccdb {
		flagged[[3]int{r.Sector, r.Layer, r.Component}] = r.Status
	}
	for i := range grid {
		if st, ok := flagged[[3]int{grid[i].Sector, grid[i].Layer, grid[i].Component}]; ok {
			grid[i].Status += st
		}
	}

	outFile := filepath.Join(outDir, "BW_ccdb.dat")
	if err := writeCCDBRows(outFile, grid, " ", "status"); err != nil {
		return nil, err
	}
	log.Printf("table: [Grid merge] rows=%d -> %s", len(grid), outFile)
	return grid, nil
}

func writeCCDBRows(path string, rows []CCDBRow, sep, statusCol string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	header := append(append([]string{}, ccdbHeader[:3]...), statusCol)
	fmt.Fprintln(w, strings.Join(header, sep))
	for _, r := range rows {
		fmt.Fprintf(w, "%d%s%d%s%d%s%d\n", r.Sector, sep, r.Layer, sep, r.Component, sep, r.Status)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCCDBTable reads a CCDB-style table, comma- or space-separated, and
// keeps only rows with non-zero status. Used by the diagnostics grid plot.
func ReadCCDBTable(path string) ([]CCDBRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: input file not found: %s", path)
	}
	defer f.Close()

	var rows []CCDBRow
	sc := bufio.NewScanner(f)
	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
		if first {
			first = false
			if err := checkHeader(fields, ccdbHeader); err != nil {
				return nil, fmt.Errorf("%s: missing required columns: %w", path, err)
			}
			continue
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("%s: malformed row %q", path, line)
		}
		var vals [4]int
		for i, fv := range fields {
			v, err := strconv.ParseFloat(fv, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad value %q", path, fv)
			}
			vals[i] = int(v)
		}
		if vals[3] == 0 {
			continue
		}
		rows = append(rows, CCDBRow{Sector: vals[0], Layer: vals[1], Component: vals[2], Status: vals[3]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
