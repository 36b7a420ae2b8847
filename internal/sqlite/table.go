package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/estate/internal/codec"
	"github.com/mesh-intelligence/estate/pkg/types"
)

// table implements types.Table for one entity table. Ids are stored as
// INTEGER through a bit-preserving int64 conversion, so key order matches
// uint64 order for ids below 2^63.
type table[R any] struct {
	name    string
	backend *Backend
}

func tableFor[R any](b *Backend, name string) (types.Table[R], error) {
	if _, err := b.handle(); err != nil {
		return nil, err
	}
	return &table[R]{name: name, backend: b}, nil
}

func (t *table[R]) Get(id uint64) (R, bool, error) {
	var zero R
	db, err := t.backend.handle()
	if err != nil {
		return zero, false, err
	}

	var blob []byte
	err = db.QueryRow("SELECT record FROM "+t.name+" WHERE id = ?", int64(id)).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("getting %s %d: %w", t.name, id, err)
	}
	r, err := codec.Decode[R](blob)
	if err != nil {
		return zero, false, fmt.Errorf("getting %s %d: %w", t.name, id, err)
	}
	return r, true, nil
}

func (t *table[R]) Insert(id uint64, r R) error {
	blob, err := codec.Encode(r)
	if err != nil {
		return err
	}
	db, err := t.backend.handle()
	if err != nil {
		return err
	}

	_, err = db.Exec(
		"INSERT INTO "+t.name+" (id, record) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET record = excluded.record",
		int64(id), blob,
	)
	if err != nil {
		return fmt.Errorf("inserting %s %d: %w", t.name, id, err)
	}
	return nil
}

func (t *table[R]) Remove(id uint64) (R, bool, error) {
	var zero R
	db, err := t.backend.handle()
	if err != nil {
		return zero, false, err
	}

	tx, err := db.Begin()
	if err != nil {
		return zero, false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var blob []byte
	err = tx.QueryRow("SELECT record FROM "+t.name+" WHERE id = ?", int64(id)).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("removing %s %d: %w", t.name, id, err)
	}
	r, err := codec.Decode[R](blob)
	if err != nil {
		return zero, false, fmt.Errorf("removing %s %d: %w", t.name, id, err)
	}
	if _, err := tx.Exec("DELETE FROM "+t.name+" WHERE id = ?", int64(id)); err != nil {
		return zero, false, fmt.Errorf("removing %s %d: %w", t.name, id, err)
	}
	if err := tx.Commit(); err != nil {
		return zero, false, fmt.Errorf("committing removal: %w", err)
	}
	return r, true, nil
}

func (t *table[R]) Iterate() ([]types.Entry[R], error) {
	db, err := t.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT id, record FROM " + t.name + " ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("iterating %s: %w", t.name, err)
	}
	defer rows.Close()

	var out []types.Entry[R]
	for rows.Next() {
		var (
			id   int64
			blob []byte
		)
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", t.name, err)
		}
		r, err := codec.Decode[R](blob)
		if err != nil {
			return nil, fmt.Errorf("iterating %s: %w", t.name, err)
		}
		out = append(out, types.Entry[R]{ID: uint64(id), Record: r})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", t.name, err)
	}
	return out, nil
}

func (t *table[R]) Len() (int, error) {
	db, err := t.backend.handle()
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + t.name).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", t.name, err)
	}
	return n, nil
}
