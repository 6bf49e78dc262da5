package service

import (
	"context"
	"strings"

	"boardcamp-backend/internal/domain"
	"boardcamp-backend/internal/logger"
	"boardcamp-backend/internal/repository"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCategoryCacheSize = 256

type categoryService struct {
	categoryRepo repository.CategoryRepository
	// Categories never change once created, so cached entries never go stale.
	cache *lru.Cache[int32, domain.Category]
}

func NewCategoryService(categoryRepo repository.CategoryRepository, cacheSize int) (CategoryService, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCategoryCacheSize
	}
	cache, err := lru.New[int32, domain.Category](cacheSize)
	if err != nil {
		return nil, err
	}
	return &categoryService{categoryRepo: categoryRepo, cache: cache}, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		s.cache.Add(c.ID, c)
	}
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id int32) (*domain.Category, error) {
	if c, ok := s.cache.Get(id); ok {
		return &c, nil
	}
	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Add(c.ID, *c)
	return c, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*domain.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	c := &domain.Category{Name: in.Name}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Add(c.ID, *c)
	logger.Info("Category created", "categoryID", c.ID, "name", c.Name)
	return c, nil
}
