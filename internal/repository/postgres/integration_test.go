package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"boardcamp-backend/internal/domain"
	"boardcamp-backend/internal/repository/postgres"
	"boardcamp-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prepareDB connects to the database named by BOARDCAMP_TEST_DATABASE_URL and
// resets the schema. The test is skipped when the variable is unset.
func prepareDB(t *testing.T) *postgres.Store {
	t.Helper()
	dsn := os.Getenv("BOARDCAMP_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("BOARDCAMP_TEST_DATABASE_URL not set")
	}

	var db *sql.DB
	var err error
	// Retry connection as DB might still be starting up
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			if err = db.Ping(); err == nil {
				break
			}
		}
		time.Sleep(2 * time.Second)
	}
	require.NoError(t, err, "failed to connect to database")
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	store := postgres.NewStore(db)
	require.NoError(t, store.Migrate(ctx))
	_, err = db.ExecContext(ctx, "TRUNCATE rentals, games, customers, categories RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return store
}

func seedGame(t *testing.T, store *postgres.Store, stock int32) (gameID, customerID int32) {
	t.Helper()
	ctx := context.Background()
	repos := store.Repositories()

	cat := &domain.Category{Name: "Estratégia"}
	require.NoError(t, repos.Categories.Create(ctx, cat))
	game := &domain.Game{Name: "War", Image: "http://img/war.png", StockTotal: stock, CategoryID: cat.ID, PricePerDay: 1000}
	require.NoError(t, repos.Games.Create(ctx, game))
	cust := &domain.Customer{Name: "Ana", Phone: "21999990000", CPF: "12345678901", Birthday: domain.Date{Year: 1990, Month: time.May, Day: 4}}
	require.NoError(t, repos.Customers.Create(ctx, cust))
	return game.ID, cust.ID
}

func TestIntegration_ConcurrentAdmissionsRespectStock(t *testing.T) {
	store := prepareDB(t)
	gameID, customerID := seedGame(t, store, 2)
	rentals := service.NewRentalService(store, store.Repositories(), nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted, rejected := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := rentals.CreateRental(context.Background(), service.CreateRentalInput{CustomerID: customerID, GameID: gameID, DaysRented: 2})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				admitted++
			case errors.Is(err, domain.ErrCapacityExceeded):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, admitted)
	assert.Equal(t, 8, rejected)

	active, err := store.Repositories().Rentals.CountActiveByGame(context.Background(), gameID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), active)
}

func TestIntegration_ConcurrentReturnsSettleOnce(t *testing.T) {
	store := prepareDB(t)
	gameID, customerID := seedGame(t, store, 1)
	rentals := service.NewRentalService(store, store.Repositories(), nil)

	rental, err := rentals.CreateRental(context.Background(), service.CreateRentalInput{CustomerID: customerID, GameID: gameID, DaysRented: 1})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := rentals.ReturnRental(context.Background(), rental.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	settled := 0
	for err := range results {
		if err == nil {
			settled++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadySettled)
	}
	assert.Equal(t, 1, settled)

	got, err := rentals.GetRental(context.Background(), rental.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReturnDate)
	require.NotNil(t, got.DelayFee)
	assert.Equal(t, int64(0), *got.DelayFee)
}
