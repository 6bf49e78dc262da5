package service_test

import (
	"context"
	"testing"

	"boardcamp-backend/internal/domain"
	"boardcamp-backend/internal/repository/memory"
	"boardcamp-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_GetCategoryIsCached(t *testing.T) {
	repo := new(MockCategoryRepo)
	svc, err := service.NewCategoryService(repo, 8)
	require.NoError(t, err)
	ctx := context.Background()

	repo.On("GetByID", ctx, int32(1)).Return(&domain.Category{ID: 1, Name: "Strategy"}, nil).Once()

	for i := 0; i < 3; i++ {
		c, err := svc.GetCategory(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Strategy", c.Name)
	}
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestCategoryService_MissesAreNotCached(t *testing.T) {
	repo := new(MockCategoryRepo)
	svc, err := service.NewCategoryService(repo, 8)
	require.NoError(t, err)
	ctx := context.Background()

	repo.On("GetByID", ctx, int32(2)).Return(nil, domain.ErrNotFound).Twice()

	_, err = svc.GetCategory(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetCategory(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestCategoryService_CreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyName", func(t *testing.T) {
		repo := new(MockCategoryRepo)
		svc, _ := service.NewCategoryService(repo, 0)

		_, err := svc.CreateCategory(ctx, service.CreateCategoryInput{Name: "   "})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate", func(t *testing.T) {
		repo := new(MockCategoryRepo)
		svc, _ := service.NewCategoryService(repo, 0)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Category")).Return(domain.ErrConflict)

		_, err := svc.CreateCategory(ctx, service.CreateCategoryInput{Name: "Strategy"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("SuccessPrimesCache", func(t *testing.T) {
		repo := new(MockCategoryRepo)
		svc, _ := service.NewCategoryService(repo, 0)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Category")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Category).ID = 5 }).
			Return(nil)

		c, err := svc.CreateCategory(ctx, service.CreateCategoryInput{Name: " Party "})
		require.NoError(t, err)
		assert.Equal(t, "Party", c.Name)

		cached, err := svc.GetCategory(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "Party", cached.Name)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func newCatalog(t *testing.T) (*memory.Store, service.CategoryService, service.GameService, service.CustomerService) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	categories, err := service.NewCategoryService(repos.Categories, 0)
	require.NoError(t, err)
	return store, categories, service.NewGameService(repos.Games, categories), service.NewCustomerService(repos.Customers)
}

func TestGameService_CreateGame(t *testing.T) {
	ctx := context.Background()
	_, categories, games, _ := newCatalog(t)
	category, err := categories.CreateCategory(ctx, service.CreateCategoryInput{Name: "Strategy"})
	require.NoError(t, err)

	valid := service.CreateGameInput{Name: "Azul", Image: "http://img", StockTotal: 3, CategoryID: category.ID, PricePerDay: 1500}

	game, err := games.CreateGame(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, "Strategy", game.CategoryName)

	_, err = games.CreateGame(ctx, valid)
	assert.ErrorIs(t, err, domain.ErrConflict)

	tests := []struct {
		name   string
		mutate func(in *service.CreateGameInput)
	}{
		{"EmptyName", func(in *service.CreateGameInput) { in.Name = "" }},
		{"ZeroStock", func(in *service.CreateGameInput) { in.StockTotal = 0 }},
		{"NegativePrice", func(in *service.CreateGameInput) { in.PricePerDay = -1 }},
		{"UnknownCategory", func(in *service.CreateGameInput) { in.CategoryID = 999 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			in.Name = "Catan"
			tt.mutate(&in)
			_, err := games.CreateGame(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	list, err := games.ListGames(ctx, "AZ")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	ctx := context.Background()
	_, _, _, customers := newCatalog(t)

	valid := service.CreateCustomerInput{Name: "Ana", Phone: "21998765432", CPF: "12345678901", Birthday: "1990-05-17"}
	c, err := customers.CreateCustomer(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, domain.Date{Year: 1990, Month: 5, Day: 17}, c.Birthday)

	_, err = customers.CreateCustomer(ctx, valid)
	assert.ErrorIs(t, err, domain.ErrConflict)

	tests := []struct {
		name string
		in   service.CreateCustomerInput
	}{
		{"EmptyName", service.CreateCustomerInput{Name: "", Phone: "2199876543", CPF: "10987654321", Birthday: "1990-05-17"}},
		{"ShortPhone", service.CreateCustomerInput{Name: "Bia", Phone: "123456789", CPF: "10987654321", Birthday: "1990-05-17"}},
		{"LetterInPhone", service.CreateCustomerInput{Name: "Bia", Phone: "21998765a32", CPF: "10987654321", Birthday: "1990-05-17"}},
		{"ShortCPF", service.CreateCustomerInput{Name: "Bia", Phone: "2199876543", CPF: "1098765432", Birthday: "1990-05-17"}},
		{"ImpossibleBirthday", service.CreateCustomerInput{Name: "Bia", Phone: "2199876543", CPF: "10987654321", Birthday: "1990-02-30"}},
		{"BirthdayWithTime", service.CreateCustomerInput{Name: "Bia", Phone: "2199876543", CPF: "10987654321", Birthday: "1990-05-17T00:00:00Z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := customers.CreateCustomer(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	found, err := customers.ListCustomers(ctx, "123")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = customers.GetCustomer(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
