// Package store keeps named board saves in a sqlite table.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/board"
)

type Store struct {
	mu    sync.Mutex
	table string
	db    *sql.DB
}

var (
	ErrBadName  = fmt.Errorf("bad name for store")
	ErrNotFound = fmt.Errorf("save not found")
)

func isLetter(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !isLetter(c) {
			return false
		}
	}
	return true
}

// New creates table if needed. The table name is spliced into SQL, so it may
// only contain Latin letters.
func New(db *sql.DB, table string) (*Store, error) {
	if !isLetters(table) {
		return nil, ErrBadName
	}

	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS ` + table + ` (
	name		TEXT PRIMARY KEY,
	state		BLOB NOT NULL,
	saved_at	INTEGER NOT NULL
);`)
	if err != nil {
		return nil, err
	}
	s := &Store{table: table, db: db}
	return s, nil
}

// Save inserts a new save or overwrites an existing one.
func (s *Store) Save(name string, b *board.Board) error {
	if name == "" {
		return ErrBadName
	}
	state, err := b.Bytes()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
INSERT INTO `+s.table+` (name, state, saved_at)
VALUES(?, ?, ?)
ON CONFLICT(name)
DO UPDATE SET state=excluded.state, saved_at=excluded.saved_at;`,
		name, state, time.Now().Unix())
	return err
}

func (s *Store) Load(name string) (*board.Board, error) {
	var state []byte
	err := s.db.QueryRow(
		`SELECT state FROM `+s.table+` WHERE name = ?;`, name,
	).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return board.Decode(state)
}

// Delete removes name without checking that it existed.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM `+s.table+` WHERE name = ?;`, name)
	return err
}

// Names lists saves, most recent first.
func (s *Store) Names() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT name FROM ` + s.table + ` ORDER BY saved_at DESC, name;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
