package postgres

import (
	"context"

	"boardcamp-backend/internal/domain"
	"boardcamp-backend/internal/repository"
)

const gameColumns = `g.id, g.name, g.image, g.stock_total, g.category_id, c.name, g.price_per_day`

type gameRepository struct {
	db DBTX
}

func NewGameRepository(db DBTX) repository.GameRepository {
	return &gameRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*domain.Game, error) {
	g := &domain.Game{}
	err := row.Scan(&g.ID, &g.Name, &g.Image, &g.StockTotal, &g.CategoryID, &g.CategoryName, &g.PricePerDay)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *gameRepository) Create(ctx context.Context, g *domain.Game) error {
	query := `INSERT INTO games (name, image, stock_total, category_id, price_per_day)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, g.Name, g.Image, g.StockTotal, g.CategoryID, g.PricePerDay).Scan(&g.ID)
	return mapError("insert game", err)
}

func (r *gameRepository) GetByID(ctx context.Context, id int32) (*domain.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games g JOIN categories c ON c.id = g.category_id WHERE g.id = $1`
	g, err := scanGame(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError("get game", err)
	}
	return g, nil
}

func (r *gameRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games g JOIN categories c ON c.id = g.category_id WHERE g.id = $1 FOR UPDATE OF g`
	g, err := scanGame(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError("lock game", err)
	}
	return g, nil
}

func (r *gameRepository) GetByName(ctx context.Context, name string) (*domain.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games g JOIN categories c ON c.id = g.category_id WHERE g.name = $1`
	g, err := scanGame(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, mapError("get game by name", err)
	}
	return g, nil
}

func (r *gameRepository) List(ctx context.Context, namePrefix string) ([]domain.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games g JOIN categories c ON c.id = g.category_id`
	var args []any
	if namePrefix != "" {
		query += ` WHERE g.name ILIKE $1 || '%'`
		args = append(args, escapeLike(namePrefix))
	}
	query += ` ORDER BY g.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("list games", err)
	}
	defer rows.Close()

	games := []domain.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, mapError("scan game", err)
		}
		games = append(games, *g)
	}
	return games, mapError("list games", rows.Err())
}
