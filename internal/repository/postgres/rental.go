package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"boardcamp-backend/internal/domain"
	"boardcamp-backend/internal/logger"
	"boardcamp-backend/internal/repository"
)

const rentalColumns = `r.id, r.customer_id, r.game_id, r.rent_date, r.days_rented, r.return_date, r.original_price, r.delay_fee`

type rentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func scanRental(row rowScanner, extra ...any) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var delayFee sql.NullInt64
	dest := []any{&rt.ID, &rt.CustomerID, &rt.GameID, &rt.RentDate, &rt.DaysRented, &rt.ReturnDate, &rt.OriginalPrice, &delayFee}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if delayFee.Valid {
		fee := delayFee.Int64
		rt.DelayFee = &fee
	}
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	logger.EnterMethod("rentalRepository.Create", "customerID", rt.CustomerID, "gameID", rt.GameID)
	query := `INSERT INTO rentals (customer_id, game_id, rent_date, days_rented, original_price)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, rt.CustomerID, rt.GameID, rt.RentDate, rt.DaysRented, rt.OriginalPrice).Scan(&rt.ID)
	if err != nil {
		err = mapError("insert rental", err)
		logger.ExitMethodWithError("rentalRepository.Create", err)
		return err
	}
	logger.ExitMethod("rentalRepository.Create", "rentalID", rt.ID)
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals r WHERE r.id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError("get rental", err)
	}
	return rt, nil
}

func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals r WHERE r.id = $1 FOR UPDATE`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError("lock rental", err)
	}
	return rt, nil
}

func (r *rentalRepository) CountActiveByGame(ctx context.Context, gameID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM rentals WHERE game_id = $1 AND return_date IS NULL`
	if err := r.db.QueryRowContext(ctx, query, gameID).Scan(&count); err != nil {
		return 0, mapError("count active rentals", err)
	}
	return count, nil
}

func (r *rentalRepository) MarkReturned(ctx context.Context, id int32, returnDate domain.Date, delayFee int64) error {
	logger.EnterMethod("rentalRepository.MarkReturned", "rentalID", id, "returnDate", returnDate.String())
	query := `UPDATE rentals SET return_date = $1, delay_fee = $2 WHERE id = $3 AND return_date IS NULL`
	logger.DatabaseCall("update", query, "rentalID", id)
	res, err := r.db.ExecContext(ctx, query, returnDate, delayFee, id)
	if err != nil {
		err = mapError("mark rental returned", err)
		logger.ExitMethodWithError("rentalRepository.MarkReturned", err)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("update", n, err)
	if err != nil {
		return &domain.StorageError{Op: "mark rental returned", Err: err}
	}
	if n == 0 {
		logger.ExitMethodWithError("rentalRepository.MarkReturned", domain.ErrAlreadySettled)
		return domain.ErrAlreadySettled
	}
	logger.ExitMethod("rentalRepository.MarkReturned")
	return nil
}

func (r *rentalRepository) List(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + `, cu.name, g.name, g.category_id, ca.name
	          FROM rentals r
	          JOIN customers cu ON cu.id = r.customer_id
	          JOIN games g ON g.id = r.game_id
	          JOIN categories ca ON ca.id = g.category_id
	          WHERE 1 = 1`

	var args []any
	argIdx := 1
	if filter.CustomerID != 0 {
		query += fmt.Sprintf(" AND r.customer_id = $%d", argIdx)
		args = append(args, filter.CustomerID)
		argIdx++
	}
	if filter.GameID != 0 {
		query += fmt.Sprintf(" AND r.game_id = $%d", argIdx)
		args = append(args, filter.GameID)
	}
	query += " ORDER BY r.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list rentals", err)
	}
	defer rows.Close()

	rentals := []domain.Rental{}
	for rows.Next() {
		cust := &domain.RentalCustomer{}
		game := &domain.RentalGame{}
		rt, err := scanRental(rows, &cust.Name, &game.Name, &game.CategoryID, &game.CategoryName)
		if err != nil {
			return nil, mapError("scan rental", err)
		}
		cust.ID = rt.CustomerID
		game.ID = rt.GameID
		rt.Customer = cust
		rt.Game = game
		rentals = append(rentals, *rt)
	}
	return rentals, mapError("list rentals", rows.Err())
}

func (r *rentalRepository) ListActive(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals r WHERE r.return_date IS NULL ORDER BY r.rent_date, r.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError("list active rentals", err)
	}
	defer rows.Close()

	rentals := []domain.Rental{}
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, mapError("scan rental", err)
		}
		rentals = append(rentals, *rt)
	}
	return rentals, mapError("list active rentals", rows.Err())
}
