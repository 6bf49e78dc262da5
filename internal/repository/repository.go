package repository

import (
	"context"

	"boardcamp-backend/internal/domain"
)

// Lookups return domain.ErrNotFound for missing records and inserts return
// domain.ErrConflict on unique violations. Any other failure is a
// *domain.StorageError.

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int32) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) error
	GetByID(ctx context.Context, id int32) (*domain.Game, error)
	// GetByIDForUpdate locks the game row until the surrounding transaction
	// ends. Admissions for the same game serialize on this lock.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Game, error)
	GetByName(ctx context.Context, name string) (*domain.Game, error)
	// List matches games whose name starts with namePrefix, ignoring case.
	List(ctx context.Context, namePrefix string) ([]domain.Game, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByCPF(ctx context.Context, cpf string) (*domain.Customer, error)
	List(ctx context.Context, cpfPrefix string) ([]domain.Customer, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	// GetByIDForUpdate locks the rental row until the surrounding
	// transaction ends.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error)
	// CountActiveByGame counts rentals of the game that have not been
	// returned.
	CountActiveByGame(ctx context.Context, gameID int32) (int32, error)
	// MarkReturned writes return date and delay fee together, only if the
	// rental is still active. It returns domain.ErrAlreadySettled otherwise.
	MarkReturned(ctx context.Context, id int32, returnDate domain.Date, delayFee int64) error
	List(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error)
	// ListActive returns every rental that has not been returned yet.
	ListActive(ctx context.Context) ([]domain.Rental, error)
}

// Repositories groups the repositories bound to one connection or
// transaction.
type Repositories struct {
	Categories CategoryRepository
	Games      GameRepository
	Customers  CustomerRepository
	Rentals    RentalRepository
}

// Transactor runs fn inside a single transaction. The transaction commits
// when fn returns nil and rolls back otherwise, including when ctx is
// cancelled.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Pinger reports whether the record store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}
