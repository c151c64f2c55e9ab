// Package history persists rendered exposition buffers in SQLite so repeated
// CLI renders can be inspected after the fact. The promtext core itself never
// persists anything; this store is purely a CLI-side convenience.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Render is one recorded render run.
type Render struct {
	ID       int64
	RenderID string
	Source   string
	Created  time.Time
	Lines    int
	Output   string
}

// Store records renders in a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens a history database. Use ":memory:" for an ephemeral
// store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS renders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		render_id TEXT NOT NULL,
		source TEXT NOT NULL,
		created INTEGER NOT NULL,
		lines INTEGER NOT NULL,
		output BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_renders_created ON renders(created);
	CREATE INDEX IF NOT EXISTS idx_renders_render_id ON renders(render_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores one render run.
func (s *Store) Record(ctx context.Context, renderID, source, output string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := 0
	if output != "" {
		lines = strings.Count(output, "\n") + 1
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO renders (render_id, source, created, lines, output) VALUES (?, ?, ?, ?, ?)",
		renderID, source, time.Now().Unix(), lines, []byte(output),
	)
	if err != nil {
		return fmt.Errorf("insert render: %w", err)
	}
	return nil
}

// Recent returns up to limit renders, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Render, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, render_id, source, created, lines, output FROM renders ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query renders: %w", err)
	}
	defer rows.Close()

	var renders []Render
	for rows.Next() {
		var r Render
		var created int64
		var output []byte
		if err := rows.Scan(&r.ID, &r.RenderID, &r.Source, &created, &r.Lines, &output); err != nil {
			return nil, fmt.Errorf("scan render: %w", err)
		}
		r.Created = time.Unix(created, 0)
		r.Output = string(output)
		renders = append(renders, r)
	}
	return renders, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
