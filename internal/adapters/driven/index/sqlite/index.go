package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/similar/internal/adapters/driven/index/sqlite/migrations"
	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.Index = (*Index)(nil)

// dbFileName is the database file inside the index directory.
const dbFileName = "index.db"

// Option configures an Index.
type Option func(*Index)

// WithExpandTerms sets how many terms of a document form its query.
func WithExpandTerms(n int) Option {
	return func(x *Index) {
		if n > 0 {
			x.expandTerms = n
		}
	}
}

// Index is a temporary SQLite FTS5 index stored in its own directory.
type Index struct {
	db          *sql.DB
	dir         string
	expandTerms int

	mu     sync.RWMutex
	tx     *sql.Tx
	nextID domain.DocumentID
	closed bool
}

// NewTemporary creates dir and an empty index inside it. dir must not
// exist: an existing directory is never reused or removed.
func NewTemporary(dir string, opts ...Option) (*Index, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrIndexExists, dir)
	}
	if err := os.Mkdir(dir, 0700); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIndexExists, dir)
		}
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("opening database: %w", err)
	}

	x := &Index{
		db:          db,
		dir:         dir,
		expandTerms: domain.DefaultExpandTerms,
		nextID:      1,
	}
	for _, opt := range opts {
		opt(x)
	}

	if err := x.migrate(migrations.FS); err != nil {
		db.Close()
		os.RemoveAll(dir)
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return x, nil
}

// Factory returns an IndexFactory creating temporary indexes.
func Factory(opts ...Option) driven.IndexFactory {
	return driven.IndexFactoryFunc(func(_ context.Context, dir string) (driven.Index, error) {
		return NewTemporary(dir, opts...)
	})
}

// Dir returns the index directory.
func (x *Index) Dir() string {
	return x.dir
}

// migrate applies the embedded schema files in version order.
func (x *Index) migrate(fsys embed.FS) error {
	if _, err := x.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := x.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil || version <= current {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := x.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}

// Add indexes content under label and returns its id. Documents become
// visible to queries on Commit.
func (x *Index) Add(ctx context.Context, label, content string) (domain.DocumentID, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return 0, domain.ErrIndexClosed
	}

	if x.tx == nil {
		tx, err := x.db.BeginTx(ctx, nil)
		if err != nil {
			return 0, fmt.Errorf("begin transaction: %w", err)
		}
		x.tx = tx
	}

	if _, err := x.tx.ExecContext(ctx, "SAVEPOINT add_document"); err != nil {
		return 0, fmt.Errorf("savepoint: %w", err)
	}
	id := x.nextID
	if err := x.insert(ctx, id, label, content); err != nil {
		// Undo the partial document so the id can be reused.
		undo := context.WithoutCancel(ctx)
		if _, rbErr := x.tx.ExecContext(undo, "ROLLBACK TO add_document"); rbErr != nil {
			return 0, errors.Join(err, fmt.Errorf("rollback document: %w", rbErr))
		}
		if _, rbErr := x.tx.ExecContext(undo, "RELEASE add_document"); rbErr != nil {
			return 0, errors.Join(err, fmt.Errorf("release savepoint: %w", rbErr))
		}
		return 0, err
	}
	if _, err := x.tx.ExecContext(ctx, "RELEASE add_document"); err != nil {
		return 0, fmt.Errorf("release savepoint: %w", err)
	}

	x.nextID++
	return id, nil
}

// insert writes one document's row, postings and searchable terms.
func (x *Index) insert(ctx context.Context, id domain.DocumentID, label, content string) error {
	terms := analyze(content)

	if _, err := x.tx.ExecContext(ctx,
		"INSERT INTO documents (id, label, length) VALUES (?, ?, ?)", id, label, len(terms)); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	stmt, err := x.tx.PrepareContext(ctx, "INSERT INTO postings (term, doc, wdf) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare postings: %w", err)
	}
	defer stmt.Close()
	for term, wdf := range termFrequencies(terms) {
		if _, err := stmt.ExecContext(ctx, term, id, wdf); err != nil {
			return fmt.Errorf("insert posting: %w", err)
		}
	}

	if _, err := x.tx.ExecContext(ctx,
		"INSERT INTO terms (rowid, body) VALUES (?, ?)", id, strings.Join(terms, " ")); err != nil {
		return fmt.Errorf("insert terms: %w", err)
	}
	return nil
}

// Commit makes every added document visible.
func (x *Index) Commit(_ context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return domain.ErrIndexClosed
	}
	if x.tx == nil {
		return nil
	}

	err := x.tx.Commit()
	x.tx = nil
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Documents returns the committed documents by id.
func (x *Index) Documents(ctx context.Context) ([]domain.Document, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.closed {
		return nil, domain.ErrIndexClosed
	}

	rows, err := x.db.QueryContext(ctx, "SELECT id, label FROM documents ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.Label); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Close discards the database and removes the index directory.
// Calling Close again is a no-op.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return nil
	}
	x.closed = true

	var errs []error
	if x.tx != nil {
		if err := x.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			errs = append(errs, fmt.Errorf("rollback: %w", err))
		}
		x.tx = nil
	}
	if err := x.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing database: %w", err))
	}
	if err := os.RemoveAll(x.dir); err != nil {
		errs = append(errs, fmt.Errorf("removing %s: %w", x.dir, err))
	}
	return errors.Join(errs...)
}
