package sqlite

import (
	"fmt"
)

// counter is a named row of the counters table.
type counter struct {
	backend *Backend
	name    string
}

func (c *counter) Get() (uint64, error) {
	db, err := c.backend.handle()
	if err != nil {
		return 0, err
	}
	var v int64
	if err := db.QueryRow("SELECT value FROM counters WHERE name = ?", c.name).Scan(&v); err != nil {
		return 0, fmt.Errorf("reading counter %s: %w", c.name, err)
	}
	return uint64(v), nil
}

func (c *counter) Set(v uint64) error {
	db, err := c.backend.handle()
	if err != nil {
		return err
	}
	_, err = db.Exec(
		"INSERT INTO counters (name, value) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value",
		c.name, int64(v),
	)
	if err != nil {
		return fmt.Errorf("writing counter %s: %w", c.name, err)
	}
	return nil
}
