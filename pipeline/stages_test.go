// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clas12-calib/dc-badwires/table"
)

func TestTableStage(t *testing.T) {
	baseDir := t.TempDir()
	outDir := filepath.Join(baseDir, "tables")
	for sl := 1; sl <= 6; sl++ {
		dir := filepath.Join(baseDir, fmt.Sprintf("SL%d", sl))
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	body := "Super Layer,Sector,Layer,Wire\n2,1,4,55\n"
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "SL2", "BWsec1.csv"), []byte(body), 0644))

	dbPath := filepath.Join(baseDir, "staging.db")
	err := TableStage(baseDir, outDir, TableOptions{
		MakeGrid:   true,
		DrawGrid:   true,
		SQLitePath: dbPath,
		Run:        "005038",
	})
	require.NoError(t, err)

	for _, name := range []string{
		"BW_SL1.dat", "BW_SL2.dat", "BW_SL3.dat", "BW_SL4.dat", "BW_SL5.dat", "BW_SL6.dat",
		"BW_total.dat", "BW_only_ccdb.dat", "BW_empty.dat", "BW_ccdb.dat",
		"bw_plot_grid.png",
	} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	rows, err := table.ReadCCDBTable(filepath.Join(outDir, "BW_ccdb.dat"))
	require.NoError(t, err)
	// SL2 layer 4 maps to absolute layer 10.
	assert.Equal(t, []table.CCDBRow{{Sector: 1, Layer: 10, Component: 55, Status: table.StatusDisabled}}, rows)
}

func TestTableStageWithoutGrid(t *testing.T) {
	baseDir := t.TempDir()
	outDir := filepath.Join(baseDir, "tables")
	for sl := 1; sl <= 6; sl++ {
		require.NoError(t, os.MkdirAll(filepath.Join(baseDir, fmt.Sprintf("SL%d", sl)), 0755))
	}

	require.NoError(t, TableStage(baseDir, outDir, TableOptions{}))

	_, err := os.Stat(filepath.Join(outDir, "BW_total.dat"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "BW_ccdb.dat"))
	assert.True(t, os.IsNotExist(err), "grid tables are opt-in")
}
