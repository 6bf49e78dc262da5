package service

import (
	"context"
	"errors"
	"time"

	"boardcamp-backend/internal/domain"
	"boardcamp-backend/internal/events"
	"boardcamp-backend/internal/logger"
	"boardcamp-backend/internal/repository"
	"boardcamp-backend/internal/utils"
)

type rentalService struct {
	tx        repository.Transactor
	repos     repository.Repositories
	publisher events.Publisher
	loc       *time.Location
	now       func() time.Time
}

type RentalOption func(*rentalService)

// WithClock replaces time.Now as the source of admission timestamps and of
// the settlement date.
func WithClock(now func() time.Time) RentalOption {
	return func(s *rentalService) { s.now = now }
}

// WithLocation sets the timezone whose calendar dates drive delay fees.
func WithLocation(loc *time.Location) RentalOption {
	return func(s *rentalService) { s.loc = loc }
}

func NewRentalService(tx repository.Transactor, repos repository.Repositories, publisher events.Publisher, opts ...RentalOption) RentalService {
	s := &rentalService{
		tx:        tx,
		repos:     repos,
		publisher: publisher,
		loc:       time.UTC,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.publisher == nil {
		s.publisher = events.NoopPublisher{}
	}
	return s
}

func (s *rentalService) CreateRental(ctx context.Context, in CreateRentalInput) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.CreateRental", "customerID", in.CustomerID, "gameID", in.GameID, "daysRented", in.DaysRented)

	if in.DaysRented <= 0 {
		err := domain.InvalidInputf("daysRented must be greater than 0")
		logger.ExitMethodWithError("rentalService.CreateRental", err)
		return nil, err
	}

	var rental *domain.Rental
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		// Locking the game row serializes admissions for the same game, so
		// the count below cannot go stale before the insert.
		game, err := repos.Games.GetByIDForUpdate(ctx, in.GameID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.InvalidInputf("game %d does not exist", in.GameID)
		}
		if err != nil {
			return err
		}

		if _, err := repos.Customers.GetByID(ctx, in.CustomerID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.InvalidInputf("customer %d does not exist", in.CustomerID)
			}
			return err
		}

		active, err := repos.Rentals.CountActiveByGame(ctx, game.ID)
		if err != nil {
			return err
		}
		if active >= game.StockTotal {
			return domain.ErrCapacityExceeded
		}

		price, err := utils.CalculateOriginalPrice(game.PricePerDay, in.DaysRented)
		if err != nil {
			return domain.InvalidInputf("%v", err)
		}

		rental = &domain.Rental{
			CustomerID:    in.CustomerID,
			GameID:        game.ID,
			RentDate:      s.now(),
			DaysRented:    in.DaysRented,
			OriginalPrice: price,
		}
		return repos.Rentals.Create(ctx, rental)
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err, "gameID", in.GameID)
		return nil, err
	}

	s.publish(ctx, events.RentalCreated, events.NewRentalCreated(rental))
	logger.ExitMethod("rentalService.CreateRental", "rentalID", rental.ID, "originalPrice", rental.OriginalPrice)
	return rental, nil
}

func (s *rentalService) ReturnRental(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.ReturnRental", "rentalID", rentalID)

	var (
		rental     *domain.Rental
		settlement utils.SettlementBreakdown
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		rt, err := repos.Rentals.GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if !rt.IsActive() {
			return domain.ErrAlreadySettled
		}

		game, err := repos.Games.GetByID(ctx, rt.GameID)
		if err != nil {
			return err
		}

		today := domain.DateIn(s.now(), s.loc)
		settlement = utils.CalculateSettlement(rt.RentDate, rt.DaysRented, game.PricePerDay, today, s.loc)
		if err := repos.Rentals.MarkReturned(ctx, rt.ID, settlement.ReturnDate, settlement.DelayFee); err != nil {
			return err
		}

		rt.ReturnDate = &settlement.ReturnDate
		rt.DelayFee = &settlement.DelayFee
		rental = rt
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.ReturnRental", err, "rentalID", rentalID)
		return nil, err
	}

	s.publish(ctx, events.RentalReturned, events.RentalReturnedEvent{
		RentalID:   rental.ID,
		GameID:     rental.GameID,
		ReturnDate: settlement.ReturnDate,
		DelayFee:   settlement.DelayFee,
	})
	logger.ExitMethod("rentalService.ReturnRental", "rentalID", rentalID,
		"expectedReturnDate", settlement.ExpectedReturnDate.String(),
		"delayDays", settlement.DelayDays,
		"delayFee", settlement.DelayFee)
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID int32) (*domain.Rental, error) {
	return s.repos.Rentals.GetByID(ctx, rentalID)
}

func (s *rentalService) ListRentals(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error) {
	return s.repos.Rentals.List(ctx, filter)
}

func (s *rentalService) ListOverdueRentals(ctx context.Context) ([]domain.OverdueRental, error) {
	active, err := s.repos.Rentals.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	today := domain.DateIn(s.now(), s.loc)
	prices := map[int32]int64{}
	overdue := []domain.OverdueRental{}
	for _, rt := range active {
		expected := utils.ExpectedReturnDate(rt.RentDate, rt.DaysRented, s.loc)
		if !expected.Before(today) {
			continue
		}

		price, ok := prices[rt.GameID]
		if !ok {
			game, err := s.repos.Games.GetByID(ctx, rt.GameID)
			if err != nil {
				return nil, err
			}
			price = game.PricePerDay
			prices[rt.GameID] = price
		}

		delay := utils.DelayDays(expected, today)
		overdue = append(overdue, domain.OverdueRental{
			Rental:             rt,
			ExpectedReturnDate: expected,
			DelayDays:          delay,
			AccruedFee:         utils.CalculateDelayFee(price, delay),
		})
	}
	return overdue, nil
}

// publish sends an event after commit. A broker failure never fails the
// rental operation that produced the event.
func (s *rentalService) publish(ctx context.Context, routingKey string, payload any) {
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		logger.Warn("Failed to publish event", "routingKey", routingKey, "error", err)
	}
}
