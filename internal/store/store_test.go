package store

import (
	"database/sql"
	"fmt"
	"os"
	"slices"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vancomm/minesweeper-engine/internal/board"
)

func setupTestStore() (*Store, func(), error) {
	f, err := os.CreateTemp("", "sqlite-storage-")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp file: %v", err)
	}

	db, err := sql.Open("sqlite3", f.Name())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect sqlite db: %v", err)
	}

	s, err := New(db, "saves")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create new store: %v", err)
	}

	teardown := func() {
		db.Close()
		f.Close()
		os.Remove(f.Name())
	}

	return s, teardown, nil
}

func testBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.NewWithMines(4, 4, []board.Position{{X: 3, Y: 3}, {X: 0, Y: 3}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Open(board.Position{X: 0, Y: 0}); err != nil {
		t.Fatal(err)
	}
	if err := b.ToggleFlag(board.Position{X: 3, Y: 3}); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestStoreBadName(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	for _, name := range []string{"", "saves; DROP TABLE x", "saves1"} {
		if _, err := New(db, name); err != ErrBadName {
			t.Errorf("%q: expected bad name error, received %v", name, err)
		}
	}
}

func TestStoreLoadMissing(t *testing.T) {
	s, teardown, err := setupTestStore()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	if _, err = s.Load("nothing"); err != ErrNotFound {
		t.Fatalf("expected not found error, received %v", err)
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	s, teardown, err := setupTestStore()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	b := testBoard(t)
	if err = s.Save("game", b); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load("game")
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if !slices.Equal(b.Grid(), loaded.Grid()) {
		t.Fatalf("expected: %v, actual: %v", b.Grid(), loaded.Grid())
	}
	if loaded.MineCount() != 2 {
		t.Fatalf("have %d mines, want 2", loaded.MineCount())
	}
}

func TestStoreOverwrite(t *testing.T) {
	s, teardown, err := setupTestStore()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	b := testBoard(t)
	if err = s.Save("game", b); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Open(board.Position{X: 0, Y: 3}); err != nil {
		t.Fatal(err)
	}
	if err = s.Save("game", b); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load("game")
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Lost() {
		t.Fatal("failed to overwrite save")
	}
	if names, err := s.Names(); err != nil {
		t.Fatal(err)
	} else if len(names) != 1 {
		t.Fatalf("have %v, want one save", names)
	}
}

func TestStoreDelete(t *testing.T) {
	s, teardown, err := setupTestStore()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	if err := s.Delete("missing"); err != nil {
		t.Fatal(err)
	}

	if err = s.Save("game", testBoard(t)); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("game"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err = s.Load("game"); err != ErrNotFound {
		t.Fatalf("expected to get not found err, instead got %v", err)
	}
}

func TestStoreNames(t *testing.T) {
	s, teardown, err := setupTestStore()
	if err != nil {
		t.Fatal(err)
	}
	defer teardown()

	want := []string{"a", "b", "c"}
	for _, name := range want {
		if err := s.Save(name, testBoard(t)); err != nil {
			t.Fatal(err)
		}
	}

	names, err := s.Names()
	if err != nil {
		t.Fatal(err)
	}
	slices.Sort(names)
	if !slices.Equal(names, want) {
		t.Fatalf("have %v, want %v", names, want)
	}
}
