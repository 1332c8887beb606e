package ttable

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"parmine/internal/services"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current compiled-table schema version. Bump this when
// the schema changes; tables must then be recompiled from the Giza files.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Save writes the table to a SQLite database at path, replacing any existing
// file.
func (t *Table) Save(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale table %q: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=OFF"); err != nil {
		return fmt.Errorf("apply pragma: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	for key, value := range map[string]string{
		"source_lang": t.SourceLang,
		"target_lang": t.TargetLang,
	} {
		if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("write meta: %w", err)
		}
	}

	vocabStmt, err := tx.PrepareContext(ctx, "INSERT INTO vocab (side, token, freq) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare vocab insert: %w", err)
	}
	defer vocabStmt.Close()
	for side, vocab := range map[string]map[string]int{"source": t.SourceVocab, "target": t.TargetVocab} {
		for token, freq := range vocab {
			if _, err := vocabStmt.ExecContext(ctx, side, token, freq); err != nil {
				return fmt.Errorf("insert vocab: %w", err)
			}
		}
	}

	probStmt, err := tx.PrepareContext(ctx, "INSERT INTO prob (direction, head, tail, p) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare prob insert: %w", err)
	}
	defer probStmt.Close()
	for direction, probs := range map[string]map[string]map[string]float64{"fwd": t.Fwd, "inv": t.Inv} {
		for head, row := range probs {
			for tail, p := range row {
				if _, err := probStmt.ExecContext(ctx, direction, head, tail, p); err != nil {
					return fmt.Errorf("insert prob: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit table: %w", err)
	}
	return nil
}

// Open loads a compiled table from a SQLite database into memory. The whole
// table is materialized up front so scoring never touches the database.
func Open(ctx context.Context, path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "ttable", "open", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	var version int
	if err := db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return nil, services.Wrap(services.ErrData, "ttable", "open", "read schema version of "+path, err)
	}
	if version != schemaVersion {
		return nil, fmt.Errorf("%w: %s has version %d, expected %d (recompile with 'parmine ttab compile')",
			ErrSchemaMismatch, path, version, schemaVersion)
	}

	table := &Table{
		Fwd:         make(map[string]map[string]float64),
		Inv:         make(map[string]map[string]float64),
		SourceVocab: make(map[string]int),
		TargetVocab: make(map[string]int),
	}

	metaRows, err := db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}
	defer metaRows.Close()
	for metaRows.Next() {
		var key, value string
		if err := metaRows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan meta: %w", err)
		}
		switch key {
		case "source_lang":
			table.SourceLang = value
		case "target_lang":
			table.TargetLang = value
		}
	}
	if err := metaRows.Err(); err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}

	vocabRows, err := db.QueryContext(ctx, "SELECT side, token, freq FROM vocab")
	if err != nil {
		return nil, fmt.Errorf("read vocab: %w", err)
	}
	defer vocabRows.Close()
	for vocabRows.Next() {
		var side, token string
		var freq int
		if err := vocabRows.Scan(&side, &token, &freq); err != nil {
			return nil, fmt.Errorf("scan vocab: %w", err)
		}
		if side == "source" {
			table.SourceVocab[token] = freq
		} else {
			table.TargetVocab[token] = freq
		}
	}
	if err := vocabRows.Err(); err != nil {
		return nil, fmt.Errorf("read vocab: %w", err)
	}

	probRows, err := db.QueryContext(ctx, "SELECT direction, head, tail, p FROM prob")
	if err != nil {
		return nil, fmt.Errorf("read probabilities: %w", err)
	}
	defer probRows.Close()
	for probRows.Next() {
		var direction, head, tail string
		var p float64
		if err := probRows.Scan(&direction, &head, &tail, &p); err != nil {
			return nil, fmt.Errorf("scan probability: %w", err)
		}
		target := table.Fwd
		if direction == "inv" {
			target = table.Inv
		}
		row := target[head]
		if row == nil {
			row = make(map[string]float64)
			target[head] = row
		}
		row[tail] = p
	}
	if err := probRows.Err(); err != nil {
		return nil, fmt.Errorf("read probabilities: %w", err)
	}

	return table, nil
}
