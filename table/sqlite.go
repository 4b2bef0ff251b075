// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package table

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS jobs (
	id         TEXT PRIMARY KEY,
	run        TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS wire_status (
	job_id    TEXT NOT NULL REFERENCES jobs(id),
	sector    INTEGER NOT NULL,
	layer     INTEGER NOT NULL,
	component INTEGER NOT NULL,
	status    INTEGER NOT NULL,
	PRIMARY KEY (job_id, sector, layer, component)
);
`

// ExportSQLite stages the merged grid into a SQLite database next to the
// flat tables, tagged with a fresh job id, so repeated aggregations of the
// same run stay distinguishable. Returns the job id.
func ExportSQLite(path, run string, grid []CCDBRow) (string, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return "", fmt.Errorf("table: opening staging db: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return "", fmt.Errorf("table: creating staging schema: %w", err)
	}

	jobID := uuid.New().String()

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO jobs (id, run, created_at) VALUES (?, ?, ?)`,
		jobID, run, time.Now().UTC(),
	); err != nil {
		return "", err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO wire_status (job_id, sector, layer, component, status) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, r := range grid {
		if _, err := stmt.Exec(jobID, r.Sector, r.Layer, r.Component, r.Status); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return jobID, nil
}
