// Package store opens the local SQLite database, runs the embedded schema
// migrations and bundles one repository per table. The bundle can be rebound
// to a transaction so multi-repository changes commit atomically.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/pvilks/wayfarer/internal/client/migrations"
	"github.com/pvilks/wayfarer/internal/client/repositories/expenses"
	"github.com/pvilks/wayfarer/internal/client/repositories/memories"
	"github.com/pvilks/wayfarer/internal/client/repositories/mutations"
	"github.com/pvilks/wayfarer/internal/client/repositories/profiles"
	"github.com/pvilks/wayfarer/internal/client/repositories/syncstate"
	"github.com/pvilks/wayfarer/internal/client/repositories/trips"
	"github.com/pvilks/wayfarer/internal/dbx"
	"github.com/pvilks/wayfarer/internal/filex"
)

// Repos bundles every repository bound to one DBTX. Bound to the database it
// serves plain reads; bound to a transaction (see Store.WithTx) it makes a
// multi-repository change atomic.
type Repos struct {
	Trips     trips.Repository
	Expenses  expenses.Repository
	Memories  memories.Repository
	Profiles  profiles.Repository
	Mutations mutations.Repository
	SyncState syncstate.Repository
}

// NewRepos binds all repositories to db.
func NewRepos(db dbx.DBTX) *Repos {
	return &Repos{
		Trips:     trips.NewSQLiteRepository(db),
		Expenses:  expenses.NewSQLiteRepository(db),
		Memories:  memories.NewSQLiteRepository(db),
		Profiles:  profiles.NewSQLiteRepository(db),
		Mutations: mutations.NewSQLiteRepository(db),
		SyncState: syncstate.NewSQLiteRepository(db),
	}
}

// Store is the local cache: the SQLite handle plus repositories bound to it.
type Store struct {
	*Repos
	db *sql.DB
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the database file at path, applies
// migrations and returns the ready Store. Any failure here is fatal for the
// app: without the local store nothing can be read or written.
func Open(ctx context.Context, path string) (*Store, error) {
	path, err := filex.EnsureParentDir(path)
	if err != nil {
		return nil, fmt.Errorf("local store unavailable: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("local store unavailable: %w", err)
	}
	// modernc sqlite serializes access through a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("local store unavailable: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("local store unavailable: %w", err)
	}

	return &Store{Repos: NewRepos(db), db: db}, nil
}

// OpenDB wraps an already opened database, for tests that use :memory:.
func OpenDB(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}
	return &Store{Repos: NewRepos(db), db: db}, nil
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// WithTx runs fn with the repository bundle rebound to one transaction.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, r *Repos) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, NewRepos(tx))
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}
