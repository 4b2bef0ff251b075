// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package table

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staging.db")
	grid := []CCDBRow{
		{Sector: 1, Layer: 1, Component: 1, Status: 0},
		{Sector: 1, Layer: 1, Component: 2, Status: StatusDisabled},
		{Sector: 2, Layer: 9, Component: 40, Status: StatusDisabled},
	}

	jobID, err := ExportSQLite(path, "005038", grid)
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var run string
	require.NoError(t, db.QueryRow(
		`SELECT run FROM jobs WHERE id = ?`, jobID).Scan(&run))
	assert.Equal(t, "005038", run)

	var n int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM wire_status WHERE job_id = ?`, jobID).Scan(&n))
	assert.Equal(t, len(grid), n)

	var flagged int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM wire_status WHERE job_id = ? AND status = ?`,
		jobID, StatusDisabled).Scan(&flagged))
	assert.Equal(t, 2, flagged)
}

// Re-exporting the same run gets a fresh job id; earlier rows survive.
func TestExportSQLiteKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staging.db")
	grid := []CCDBRow{{Sector: 1, Layer: 1, Component: 1, Status: StatusDisabled}}

	first, err := ExportSQLite(path, "005038", grid)
	require.NoError(t, err)
	second, err := ExportSQLite(path, "005038", grid)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var jobs int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM jobs`).Scan(&jobs))
	assert.Equal(t, 2, jobs)
}
