package memory

import (
	"context"
	"fmt"
	"strings"

	"boardcamp-backend/internal/domain"
)

type categoryRepository struct{ s *session }

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	return r.s.do(ctx, func(st *state) error {
		for _, existing := range st.categories {
			if existing.Name == c.Name {
				return fmt.Errorf("insert category: %w", domain.ErrConflict)
			}
		}
		st.categorySeq++
		c.ID = st.categorySeq
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *categoryRepository) GetByID(ctx context.Context, id int32) (*domain.Category, error) {
	var out *domain.Category
	err := r.s.do(ctx, func(st *state) error {
		c, ok := st.categories[id]
		if !ok {
			return fmt.Errorf("get category: %w", domain.ErrNotFound)
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var out *domain.Category
	err := r.s.do(ctx, func(st *state) error {
		for _, c := range st.categories {
			if c.Name == name {
				out = &c
				return nil
			}
		}
		return fmt.Errorf("get category by name: %w", domain.ErrNotFound)
	})
	return out, err
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.s.do(ctx, func(st *state) error {
		for _, id := range sortedKeys(st.categories) {
			out = append(out, st.categories[id])
		}
		return nil
	})
	return out, err
}

type gameRepository struct{ s *session }

func (r *gameRepository) Create(ctx context.Context, g *domain.Game) error {
	return r.s.do(ctx, func(st *state) error {
		if _, ok := st.categories[g.CategoryID]; !ok {
			return domain.InvalidInputf("insert game: category %d does not exist", g.CategoryID)
		}
		for _, existing := range st.games {
			if existing.Name == g.Name {
				return fmt.Errorf("insert game: %w", domain.ErrConflict)
			}
		}
		st.gameSeq++
		g.ID = st.gameSeq
		stored := *g
		stored.CategoryName = ""
		st.games[g.ID] = stored
		return nil
	})
}

func withCategory(st *state, g domain.Game) domain.Game {
	g.CategoryName = st.categories[g.CategoryID].Name
	return g
}

func (r *gameRepository) GetByID(ctx context.Context, id int32) (*domain.Game, error) {
	var out *domain.Game
	err := r.s.do(ctx, func(st *state) error {
		g, ok := st.games[id]
		if !ok {
			return fmt.Errorf("get game: %w", domain.ErrNotFound)
		}
		g = withCategory(st, g)
		out = &g
		return nil
	})
	return out, err
}

// GetByIDForUpdate is GetByID: a transaction already holds the store lock.
func (r *gameRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Game, error) {
	return r.GetByID(ctx, id)
}

func (r *gameRepository) GetByName(ctx context.Context, name string) (*domain.Game, error) {
	var out *domain.Game
	err := r.s.do(ctx, func(st *state) error {
		for _, g := range st.games {
			if g.Name == name {
				g = withCategory(st, g)
				out = &g
				return nil
			}
		}
		return fmt.Errorf("get game by name: %w", domain.ErrNotFound)
	})
	return out, err
}

func (r *gameRepository) List(ctx context.Context, namePrefix string) ([]domain.Game, error) {
	prefix := strings.ToLower(namePrefix)
	out := []domain.Game{}
	err := r.s.do(ctx, func(st *state) error {
		for _, id := range sortedKeys(st.games) {
			g := st.games[id]
			if strings.HasPrefix(strings.ToLower(g.Name), prefix) {
				out = append(out, withCategory(st, g))
			}
		}
		return nil
	})
	return out, err
}

type customerRepository struct{ s *session }

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	return r.s.do(ctx, func(st *state) error {
		for _, existing := range st.customers {
			if existing.CPF == c.CPF {
				return fmt.Errorf("insert customer: %w", domain.ErrConflict)
			}
		}
		st.customerSeq++
		c.ID = st.customerSeq
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	var out *domain.Customer
	err := r.s.do(ctx, func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return fmt.Errorf("get customer: %w", domain.ErrNotFound)
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *customerRepository) GetByCPF(ctx context.Context, cpf string) (*domain.Customer, error) {
	var out *domain.Customer
	err := r.s.do(ctx, func(st *state) error {
		for _, c := range st.customers {
			if c.CPF == cpf {
				out = &c
				return nil
			}
		}
		return fmt.Errorf("get customer by cpf: %w", domain.ErrNotFound)
	})
	return out, err
}

func (r *customerRepository) List(ctx context.Context, cpfPrefix string) ([]domain.Customer, error) {
	out := []domain.Customer{}
	err := r.s.do(ctx, func(st *state) error {
		for _, id := range sortedKeys(st.customers) {
			if c := st.customers[id]; strings.HasPrefix(c.CPF, cpfPrefix) {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}

type rentalRepository struct{ s *session }

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	return r.s.do(ctx, func(st *state) error {
		if _, ok := st.customers[rt.CustomerID]; !ok {
			return domain.InvalidInputf("insert rental: customer %d does not exist", rt.CustomerID)
		}
		if _, ok := st.games[rt.GameID]; !ok {
			return domain.InvalidInputf("insert rental: game %d does not exist", rt.GameID)
		}
		st.rentalSeq++
		rt.ID = st.rentalSeq
		stored := *rt
		stored.ReturnDate, stored.DelayFee = nil, nil
		stored.Customer, stored.Game = nil, nil
		st.rentals[rt.ID] = stored
		return nil
	})
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	var out *domain.Rental
	err := r.s.do(ctx, func(st *state) error {
		rt, ok := st.rentals[id]
		if !ok {
			return fmt.Errorf("get rental: %w", domain.ErrNotFound)
		}
		out = &rt
		return nil
	})
	return out, err
}

func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	return r.GetByID(ctx, id)
}

func (r *rentalRepository) CountActiveByGame(ctx context.Context, gameID int32) (int32, error) {
	var count int32
	err := r.s.do(ctx, func(st *state) error {
		for _, rt := range st.rentals {
			if rt.GameID == gameID && rt.IsActive() {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *rentalRepository) MarkReturned(ctx context.Context, id int32, returnDate domain.Date, delayFee int64) error {
	return r.s.do(ctx, func(st *state) error {
		rt, ok := st.rentals[id]
		if !ok {
			return fmt.Errorf("mark rental returned: %w", domain.ErrNotFound)
		}
		if !rt.IsActive() {
			return domain.ErrAlreadySettled
		}
		rt.ReturnDate = &returnDate
		rt.DelayFee = &delayFee
		st.rentals[id] = rt
		return nil
	})
}

func (r *rentalRepository) List(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, error) {
	out := []domain.Rental{}
	err := r.s.do(ctx, func(st *state) error {
		for _, id := range sortedKeys(st.rentals) {
			rt := st.rentals[id]
			if filter.CustomerID != 0 && rt.CustomerID != filter.CustomerID {
				continue
			}
			if filter.GameID != 0 && rt.GameID != filter.GameID {
				continue
			}
			g := withCategory(st, st.games[rt.GameID])
			rt.Customer = &domain.RentalCustomer{ID: rt.CustomerID, Name: st.customers[rt.CustomerID].Name}
			rt.Game = &domain.RentalGame{ID: g.ID, Name: g.Name, CategoryID: g.CategoryID, CategoryName: g.CategoryName}
			out = append(out, rt)
		}
		return nil
	})
	return out, err
}

func (r *rentalRepository) ListActive(ctx context.Context) ([]domain.Rental, error) {
	out := []domain.Rental{}
	err := r.s.do(ctx, func(st *state) error {
		for _, id := range sortedKeys(st.rentals) {
			if rt := st.rentals[id]; rt.IsActive() {
				out = append(out, rt)
			}
		}
		return nil
	})
	return out, err
}
