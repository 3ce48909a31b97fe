package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pixil98/go-tollbooth/internal/entity"
	"github.com/pixil98/go-tollbooth/internal/tollbooth"
)

// Entry is one recorded name assignment.
type Entry struct {
	ID         entity.Identity
	Name       string
	Tick       uint64
	RecordedAt time.Time
}

// SQLiteLedger keeps an append-only history of name assignments for
// operators. It is a NameAssigned listener and plays no part in naming
// decisions.
type SQLiteLedger struct {
	db  *sql.DB
	now func() time.Time
}

func OpenSQLite(path string) (*SQLiteLedger, error) {
	if path == "" {
		return nil, fmt.Errorf("empty ledger path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteLedger{db: db, now: time.Now}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		`CREATE TABLE IF NOT EXISTS assignments (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			entity_index INTEGER NOT NULL,
			entity_version INTEGER NOT NULL,
			name TEXT NOT NULL,
			tick INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS assignments_entity ON assignments(entity_index, entity_version);",
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("initializing ledger schema: %w", err)
		}
	}
	return nil
}

func (l *SQLiteLedger) OnNameAssigned(ctx context.Context, ev tollbooth.NameAssigned) error {
	_, err := l.db.ExecContext(ctx,
		"INSERT INTO assignments (entity_index, entity_version, name, tick, recorded_at) VALUES (?, ?, ?, ?, ?)",
		ev.ID.Index, ev.ID.Version, ev.Name.String(), ev.Tick, l.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording assignment: %w", err)
	}
	return nil
}

// Assignments returns the recorded history of id, oldest first.
func (l *SQLiteLedger) assignments(ctx context.Context, id entity.Identity) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		"SELECT name, tick, recorded_at FROM assignments WHERE entity_index = ? AND entity_version = ? ORDER BY seq",
		id.Index, id.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("querying assignments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		e := Entry{ID: id}
		var recorded string
		if err := rows.Scan(&e.Name, &e.Tick, &recorded); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		e.RecordedAt, err = time.Parse(time.RFC3339Nano, recorded)
		if err != nil {
			return nil, fmt.Errorf("parsing recorded_at: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the total number of recorded assignments.
func (l *SQLiteLedger) Count(ctx context.Context) (int, error) {
	var n int
	if err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assignments").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting assignments: %w", err)
	}
	return n, nil
}

func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

// Start holds the ledger open until ctx is done, then reports its size and
// closes it.
func (l *SQLiteLedger) Start(ctx context.Context) error {
	<-ctx.Done()

	n, err := l.Count(context.WithoutCancel(ctx))
	if err != nil {
		slog.WarnContext(ctx, "counting ledger entries", "error", err)
	} else {
		slog.InfoContext(ctx, "closing name ledger", "assignments", n)
	}
	return l.Close()
}
