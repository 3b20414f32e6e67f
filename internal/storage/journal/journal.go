// Package journal keeps a local history of installer runs: the chosen
// configuration, every package install outcome, and the verification
// results. It is informational; journal failures never gate an install.
package journal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
)

// Journal wraps the SQLite database connection.
type Journal struct {
	*sql.DB
}

// Open creates the journal database at path and runs migrations.
func Open(path string) (*Journal, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("setting pragmas: %w", err)
	}

	j := &Journal{DB: sqlDB}
	if err := j.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return j, nil
}

func (j *Journal) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			model TEXT NOT NULL,
			supply_mode TEXT NOT NULL,
			backend TEXT NOT NULL,
			os_family TEXT NOT NULL,
			runtime_tag TEXT,
			completed INTEGER DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS package_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			spec TEXT NOT NULL,
			outcome TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS verifications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			package TEXT NOT NULL,
			ok INTEGER NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := j.Exec(stmt); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

// BeginRun records a new run and returns its ID.
func (j *Journal) BeginRun(v domain.Variant, host domain.HostProfile) (int64, error) {
	res, err := j.Exec(
		`INSERT INTO runs (model, supply_mode, backend, os_family, runtime_tag) VALUES (?, ?, ?, ?, ?)`,
		v.Product.String(), v.Supply.String(), v.Backend.String(), host.OS.String(), host.RuntimeTag,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	return res.LastInsertId()
}

// RecordInstall stores one package install outcome for a run.
func (j *Journal) RecordInstall(runID int64, r domain.PackageResult) error {
	_, err := j.Exec(
		`INSERT INTO package_results (run_id, spec, outcome) VALUES (?, ?, ?)`,
		runID, r.Spec, r.Outcome.String(),
	)
	if err != nil {
		return fmt.Errorf("recording install result: %w", err)
	}
	return nil
}

// RecordVerification stores one import probe result for a run.
func (j *Journal) RecordVerification(runID int64, r domain.VerificationRecord) error {
	_, err := j.Exec(
		`INSERT INTO verifications (run_id, package, ok) VALUES (?, ?, ?)`,
		runID, r.Package, r.OK,
	)
	if err != nil {
		return fmt.Errorf("recording verification: %w", err)
	}
	return nil
}

// FinishRun marks a run as finished.
func (j *Journal) FinishRun(runID int64, completed bool) error {
	_, err := j.Exec(
		`UPDATE runs SET completed = ?, finished_at = CURRENT_TIMESTAMP WHERE id = ?`,
		completed, runID,
	)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	return nil
}

// RunCount returns how many runs have been recorded, including the current
// one.
func (j *Journal) RunCount() (int, error) {
	var n int
	if err := j.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}
