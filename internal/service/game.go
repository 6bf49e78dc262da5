package service

import (
	"context"
	"errors"
	"strings"

	"boardcamp-backend/internal/domain"
	"boardcamp-backend/internal/logger"
	"boardcamp-backend/internal/repository"
)

type gameService struct {
	gameRepo    repository.GameRepository
	categorySvc CategoryService
}

func NewGameService(gameRepo repository.GameRepository, categorySvc CategoryService) GameService {
	return &gameService{gameRepo: gameRepo, categorySvc: categorySvc}
}

func (s *gameService) ListGames(ctx context.Context, namePrefix string) ([]domain.Game, error) {
	return s.gameRepo.List(ctx, namePrefix)
}

func (s *gameService) GetGame(ctx context.Context, id int32) (*domain.Game, error) {
	return s.gameRepo.GetByID(ctx, id)
}

func (s *gameService) CreateGame(ctx context.Context, in CreateGameInput) (*domain.Game, error) {
	logger.EnterMethod("gameService.CreateGame", "name", in.Name, "categoryID", in.CategoryID)

	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		logger.ExitMethodWithError("gameService.CreateGame", err)
		return nil, err
	}

	category, err := s.categorySvc.GetCategory(ctx, in.CategoryID)
	if errors.Is(err, domain.ErrNotFound) {
		err = domain.InvalidInputf("category %d does not exist", in.CategoryID)
	}
	if err != nil {
		logger.ExitMethodWithError("gameService.CreateGame", err)
		return nil, err
	}

	game := &domain.Game{
		Name:         in.Name,
		Image:        in.Image,
		StockTotal:   in.StockTotal,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		PricePerDay:  in.PricePerDay,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		logger.ExitMethodWithError("gameService.CreateGame", err)
		return nil, err
	}

	logger.ExitMethod("gameService.CreateGame", "gameID", game.ID)
	return game, nil
}
