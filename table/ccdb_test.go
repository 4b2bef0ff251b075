// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clas12-calib/dc-badwires/status"
)

func TestFullGrid(t *testing.T) {
	grid := FullGrid()
	require.Len(t, grid, NSectors*NLayers*NComponents)

	assert.Equal(t, CCDBRow{Sector: 1, Layer: 1, Component: 1}, grid[0])
	assert.Equal(t, CCDBRow{Sector: NSectors, Layer: NLayers, Component: NComponents}, grid[len(grid)-1])

	seen := make(map[[3]int]bool, len(grid))
	for _, r := range grid {
		key := [3]int{r.Sector, r.Layer, r.Component}
		require.False(t, seen[key], "duplicate key %v", key)
		seen[key] = true
		assert.Equal(t, 0, r.Status)
	}
}

func TestToCCDBOnlySortsAndNumbers(t *testing.T) {
	outDir := t.TempDir()
	total := []status.BadWire{
		{SuperLayer: 6, Sector: 3, Layer: 1, Wire: 20},
		{SuperLayer: 1, Sector: 3, Layer: 1, Wire: 90},
		{SuperLayer: 1, Sector: 3, Layer: 1, Wire: 10},
		{SuperLayer: 1, Sector: 1, Layer: 2, Wire: 50},
	}

	rows, err := ToCCDBOnly(total, outDir)
	require.NoError(t, err)
	want := []CCDBRow{
		{Sector: 1, Layer: 2, Component: 50, Status: StatusDisabled},
		{Sector: 3, Layer: 1, Component: 10, Status: StatusDisabled},
		{Sector: 3, Layer: 1, Component: 90, Status: StatusDisabled},
		{Sector: 3, Layer: 31, Component: 20, Status: StatusDisabled},
	}
	assert.Equal(t, want, rows)

	buf, err := os.ReadFile(filepath.Join(outDir, "BW_only_ccdb.dat"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(buf)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "sector,layer,component,status", lines[0])
	assert.Equal(t, "1,2,50,112", lines[1])
}

func TestMergeGridWritesBothTables(t *testing.T) {
	outDir := t.TempDir()
	ccdb := []CCDBRow{{Sector: 2, Layer: 5, Component: 7, Status: StatusDisabled}}

	grid, err := MergeGrid(ccdb, outDir)
	require.NoError(t, err)
	require.Len(t, grid, NSectors*NLayers*NComponents)

	buf, err := os.ReadFile(filepath.Join(outDir, "BW_empty.dat"))
	require.NoError(t, err)
	lines := strings.SplitN(string(buf), "\n", 3)
	assert.Equal(t, "sector layer component status0", lines[0])
	assert.Equal(t, "1 1 1 0", lines[1])

	back, err := ReadCCDBTable(filepath.Join(outDir, "BW_ccdb.dat"))
	require.NoError(t, err)
	assert.Equal(t, ccdb, back)
}

func TestReadCCDBTableSeparators(t *testing.T) {
	dir := t.TempDir()

	comma := filepath.Join(dir, "comma.dat")
	require.NoError(t, os.WriteFile(comma,
		[]byte("sector,layer,component,status\n1,2,3,112\n4,5,6,0\n"), 0644))
	rows, err := ReadCCDBTable(comma)
	require.NoError(t, err)
	assert.Equal(t, []CCDBRow{{Sector: 1, Layer: 2, Component: 3, Status: 112}}, rows)

	space := filepath.Join(dir, "space.dat")
	require.NoError(t, os.WriteFile(space,
		[]byte("sector layer component status\n1 2 3 0\n4 5 6 112\n"), 0644))
	rows, err = ReadCCDBTable(space)
	require.NoError(t, err)
	assert.Equal(t, []CCDBRow{{Sector: 4, Layer: 5, Component: 6, Status: 112}}, rows)
}

func TestReadCCDBTableBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dat")
	require.NoError(t, os.WriteFile(path,
		[]byte("sector layer component status0\n1 1 1 0\n"), 0644))

	_, err := ReadCCDBTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestReadCCDBTableMissingFile(t *testing.T) {
	_, err := ReadCCDBTable(filepath.Join(t.TempDir(), "nope.dat"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file not found")
}
