package postgres

import (
	"context"
	"database/sql"
	_ "embed"

	"boardcamp-backend/internal/domain"
	"boardcamp-backend/internal/logger"
	"boardcamp-backend/internal/repository"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository can run
// standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.CategoryRepository
	repository.GameRepository
	repository.CustomerRepository
	repository.RentalRepository
}

func NewStore(db *sql.DB) *Store {
	repos := newRepositories(db)
	return &Store{
		db:                 db,
		CategoryRepository: repos.Categories,
		GameRepository:     repos.Games,
		CustomerRepository: repos.Customers,
		RentalRepository:   repos.Rentals,
	}
}

func newRepositories(db DBTX) repository.Repositories {
	return repository.Repositories{
		Categories: NewCategoryRepository(db),
		Games:      NewGameRepository(db),
		Customers:  NewCustomerRepository(db),
		Rentals:    NewRentalRepository(db),
	}
}

// Repositories returns the non-transactional repositories.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Categories: s.CategoryRepository,
		Games:      s.GameRepository,
		Customers:  s.CustomerRepository,
		Rentals:    s.RentalRepository,
	}
}

// WithinTx runs fn against repositories bound to a single transaction. The
// transaction is rolled back if fn fails or ctx is cancelled before commit.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.StorageError{Op: "begin transaction", Err: err}
	}
	defer tx.Rollback()

	if err := fn(ctx, newRepositories(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &domain.StorageError{Op: "commit transaction", Err: err}
	}
	return nil
}

func (s *Store) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate creates the tables and indexes if they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	logger.DatabaseCall("migrate", "schema.sql")
	_, err := s.db.ExecContext(ctx, schema)
	logger.DatabaseResult("migrate", 0, err)
	if err != nil {
		return &domain.StorageError{Op: "migrate", Err: err}
	}
	return nil
}
