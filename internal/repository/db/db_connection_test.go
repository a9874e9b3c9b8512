package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solar.db")

	conn, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	for _, table := range []string{"users", "developer_overrides", "activity_events"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}

	var mode string
	if err := conn.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil || mode != "wal" {
		t.Fatalf("journal_mode = %q, %v", mode, err)
	}
}

func TestInitDB_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solar.db")

	first, err := InitDB(path)
	if err != nil {
		t.Fatalf("first InitDB: %v", err)
	}
	if _, err := first.Exec(`INSERT INTO users (name, email, password_hash) VALUES ('a', 'a@x', 'h')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_ = first.Close()

	second, err := InitDB(path)
	if err != nil {
		t.Fatalf("second InitDB: %v", err)
	}
	defer second.Close()

	var photo string
	if err := second.QueryRow(`SELECT photo FROM users WHERE email = 'a@x'`).Scan(&photo); err != nil {
		t.Fatalf("select: %v", err)
	}
	if photo != "default.png" {
		t.Fatalf("photo default = %q", photo)
	}
}

func TestInitDB_BadPath(t *testing.T) {
	if _, err := InitDB(filepath.Join(t.TempDir(), "missing", "dir", "solar.db")); err == nil {
		t.Fatalf("expected error for unwritable path")
	}
}
