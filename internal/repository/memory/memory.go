// Package memory is a process-local record store for development and tests.
// Every operation runs under one store-wide lock; a transaction works on a
// private copy of the state that replaces the live state only on commit.
package memory

import (
	"context"
	"sort"
	"sync"

	"boardcamp-backend/internal/domain"
	"boardcamp-backend/internal/repository"
)

type state struct {
	categories  map[int32]domain.Category
	games       map[int32]domain.Game
	customers   map[int32]domain.Customer
	rentals     map[int32]domain.Rental
	categorySeq int32
	gameSeq     int32
	customerSeq int32
	rentalSeq   int32
}

func newState() *state {
	return &state{
		categories: map[int32]domain.Category{},
		games:      map[int32]domain.Game{},
		customers:  map[int32]domain.Customer{},
		rentals:    map[int32]domain.Rental{},
	}
}

func (s *state) clone() *state {
	c := *s
	c.categories = cloneMap(s.categories)
	c.games = cloneMap(s.games)
	c.customers = cloneMap(s.customers)
	c.rentals = cloneMap(s.rentals)
	return &c
}

func cloneMap[V any](m map[int32]V) map[int32]V {
	out := make(map[int32]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[int32]V) []int32 {
	keys := make([]int32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type Store struct {
	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

// session binds repositories either to the live state (taking the lock per
// call) or to a transaction's staged state (lock already held).
type session struct {
	store  *Store
	staged *state
}

func (s *session) do(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return &domain.StorageError{Op: "memory", Err: err}
	}
	if s.staged != nil {
		return fn(s.staged)
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return fn(s.store.st)
}

func (s *session) repositories() repository.Repositories {
	return repository.Repositories{
		Categories: &categoryRepository{s},
		Games:      &gameRepository{s},
		Customers:  &customerRepository{s},
		Rentals:    &rentalRepository{s},
	}
}

// Repositories returns repositories that operate on the live state.
func (s *Store) Repositories() repository.Repositories {
	return (&session{store: s}).repositories()
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return &domain.StorageError{Op: "begin transaction", Err: err}
	}
	staged := s.st.clone()
	if err := fn(ctx, (&session{store: s, staged: staged}).repositories()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return &domain.StorageError{Op: "commit transaction", Err: err}
	}
	s.st = staged
	return nil
}

func (s *Store) PingContext(ctx context.Context) error {
	return ctx.Err()
}
