package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// takeTimeout bounds how long Get and Set wait for the connection.
const takeTimeout = 5 * time.Second

// SQLite is an Adapter backed by a single-table SQLite database.
type SQLite struct {
	pool *sqlitex.Pool
	path string
}

// DefaultSQLitePath returns ~/.local/state/aios/state.db.
func DefaultSQLitePath() (string, error) {
	path, err := xdg.StateFile("aios/state.db")
	if err != nil {
		return "", fmt.Errorf("failed to get state path: %w", err)
	}
	return path, nil
}

// OpenSQLite opens (creating if needed) the database at path, or the default
// path when empty.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		var err error
		if path, err = DefaultSQLitePath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize: 1,
		PrepareConn: func(conn *sqlite.Conn) error {
			for _, pragma := range []string{
				"PRAGMA journal_mode=WAL",
				"PRAGMA synchronous=NORMAL",
				"PRAGMA busy_timeout=5000",
			} {
				if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
					return fmt.Errorf("%s: %w", pragma, err)
				}
			}
			return sqlitex.ExecuteScript(conn, kvSchema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open state database %s: %w", path, err)
	}
	return &SQLite{pool: pool, path: path}, nil
}

// Path returns the database location.
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) take() (*sqlite.Conn, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(context.Background(), takeTimeout)
	conn, err := s.pool.Take(ctx)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to take state connection: %w", err)
	}
	return conn, cancel, nil
}

// Get implements Adapter. Read failures report the key as absent.
func (s *SQLite) Get(key string) (string, bool) {
	conn, cancel, err := s.take()
	if err != nil {
		return "", false
	}
	defer cancel()
	defer s.pool.Put(conn)

	var (
		value string
		found bool
	)
	err = sqlitex.Execute(conn, "SELECT value FROM kv WHERE key = ?", &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			value = stmt.ColumnText(0)
			found = true
			return nil
		},
	})
	if err != nil {
		return "", false
	}
	return value, found
}

// Set implements Adapter.
func (s *SQLite) Set(key, value string) error {
	conn, cancel, err := s.take()
	if err != nil {
		return err
	}
	defer cancel()
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		&sqlitex.ExecOptions{Args: []any{key, value, time.Now().Unix()}},
	)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// Close releases the database.
func (s *SQLite) Close() error {
	return s.pool.Close()
}
