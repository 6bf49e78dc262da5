package service

import (
	"context"

	"boardcamp-backend/internal/domain"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int32) (*domain.Category, error)
	CreateCategory(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)
}

type GameService interface {
	ListGames(ctx context.Context, namePrefix string) ([]domain.Game, error)
	GetGame(ctx context.Context, id int32) (*domain.Game, error)
	CreateGame(ctx context.Context, in CreateGameInput) (*domain.Game, error)
}

type CustomerService interface {
	ListCustomers(ctx context.Context, cpfPrefix string) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, in CreateCustomerInput) (*domain.Customer, error)
}

type RentalService interface {
	// CreateRental admits a rental if the game still has a free unit.
	CreateRental(ctx context.Context, in CreateRentalInput) (*domain.Rental, error)
	// ReturnRental settles an active rental and records its delay fee.
	ReturnRental(ctx context.Context, rentalID int32) (*domain.Rental, error)
	GetRental(ctx context.Context, rentalID int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error)
	// ListOverdueRentals reports active rentals past their expected return
	// date with the fee accrued so far. Nothing is persisted.
	ListOverdueRentals(ctx context.Context) ([]domain.OverdueRental, error)
}

type CreateCategoryInput struct {
	Name string `json:"name" validate:"required"`
}

type CreateGameInput struct {
	Name        string `json:"name" validate:"required"`
	Image       string `json:"image"`
	StockTotal  int32  `json:"stockTotal" validate:"gt=0"`
	CategoryID  int32  `json:"categoryId" validate:"gt=0"`
	PricePerDay int64  `json:"pricePerDay" validate:"gt=0"`
}

type CreateCustomerInput struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"phone"`
	CPF      string `json:"cpf" validate:"cpf"`
	Birthday string `json:"birthday" validate:"isodate"`
}

type CreateRentalInput struct {
	CustomerID int32 `json:"customerId"`
	GameID     int32 `json:"gameId"`
	DaysRented int32 `json:"daysRented"`
}
