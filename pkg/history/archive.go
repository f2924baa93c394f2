// Package history persists per-generation statistics to SQLite so runs
// can be inspected after the fact. Only reporting statistics are stored;
// population state itself is never persisted.
package history

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ktorvald/evoagent/pkg/errors"
	"github.com/ktorvald/evoagent/pkg/evolution"
)

const schema = `
CREATE TABLE IF NOT EXISTS generation_stats (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	generation        INTEGER NOT NULL,
	population_size   INTEGER NOT NULL,
	average_fitness   REAL NOT NULL,
	best_fitness      REAL NOT NULL,
	genetic_diversity REAL NOT NULL,
	recorded_at       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generation_stats_generation
	ON generation_stats(generation);
`

// Archive is an append-only store of generation statistics. It
// implements evolution.Recorder.
type Archive struct {
	db *sql.DB
}

// Open opens (or creates) an archive at the given path. Use ":memory:"
// for an ephemeral archive.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to open archive database")
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to enable WAL mode")
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to set synchronous pragma")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to initialize archive schema")
	}

	return &Archive{db: db}, nil
}

// RecordGeneration appends one generation's statistics.
func (a *Archive) RecordGeneration(ctx context.Context, stats evolution.GenerationStats) error {
	recordedAt := stats.Timestamp
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	_, err := a.db.ExecContext(ctx,
		`INSERT INTO generation_stats
			(generation, population_size, average_fitness, best_fitness, genetic_diversity, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		stats.Generation,
		stats.PopulationSize,
		stats.AverageFitness,
		stats.BestFitness,
		stats.GeneticDiversity,
		recordedAt.UnixNano(),
	)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to record generation stats"),
			errors.Fields{"generation": stats.Generation})
	}
	return nil
}

// Recent returns the most recent generations, newest first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]evolution.GenerationStats, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT generation, population_size, average_fitness, best_fitness, genetic_diversity, recorded_at
		 FROM generation_stats
		 ORDER BY id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to query recent generations")
	}
	defer rows.Close()

	return scanStats(rows)
}

// Range returns generations with counter values in [from, to], oldest
// first.
func (a *Archive) Range(ctx context.Context, from, to int) ([]evolution.GenerationStats, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT generation, population_size, average_fitness, best_fitness, genetic_diversity, recorded_at
		 FROM generation_stats
		 WHERE generation BETWEEN ? AND ?
		 ORDER BY generation ASC, id ASC`, from, to)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to query generation range"),
			errors.Fields{"from": from, "to": to})
	}
	defer rows.Close()

	return scanStats(rows)
}

func scanStats(rows *sql.Rows) ([]evolution.GenerationStats, error) {
	var result []evolution.GenerationStats
	for rows.Next() {
		var stats evolution.GenerationStats
		var recordedAt int64
		if err := rows.Scan(
			&stats.Generation,
			&stats.PopulationSize,
			&stats.AverageFitness,
			&stats.BestFitness,
			&stats.GeneticDiversity,
			&recordedAt,
		); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan generation stats")
		}
		stats.Timestamp = time.Unix(0, recordedAt)
		result = append(result, stats)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to iterate generation stats")
	}
	return result, nil
}

// Close releases the underlying database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}
