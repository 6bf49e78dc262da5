// Package app assembles the record store, event publisher and services from
// configuration. Both binaries share it.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"boardcamp-backend/internal/config"
	"boardcamp-backend/internal/events"
	"boardcamp-backend/internal/logger"
	"boardcamp-backend/internal/repository"
	"boardcamp-backend/internal/repository/memory"
	"boardcamp-backend/internal/repository/postgres"
	"boardcamp-backend/internal/service"
)

// Store is a record store usable by the services.
type Store interface {
	repository.Transactor
	repository.Pinger
	Repositories() repository.Repositories
}

// Services holds every application service.
type Services struct {
	Categories service.CategoryService
	Games      service.GameService
	Customers  service.CustomerService
	Rentals    service.RentalService
}

// OpenStore opens the configured storage driver. The returned close function
// releases the database pool, if any.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage, records are lost on restart")
		return memory.NewStore(), func() error { return nil }, nil

	case config.StorageDriverPostgres:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		if cfg.Database.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		}
		if cfg.Database.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		}
		db.SetConnMaxLifetime(30 * time.Minute)

		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		logger.Info("Database connection established")

		store := postgres.NewStore(db)
		if cfg.Database.AutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		return store, db.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}

// OpenPublisher connects to RabbitMQ when a URL is configured and falls back
// to a publisher that drops every event.
func OpenPublisher(cfg *config.Config) (events.Publisher, error) {
	if cfg.RabbitMQ.URL == "" {
		logger.Info("RabbitMQ not configured, rental events are disabled")
		return events.NoopPublisher{}, nil
	}
	p, err := events.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	if err != nil {
		return nil, err
	}
	logger.Info("Publishing rental events", "exchange", cfg.RabbitMQ.Exchange)
	return p, nil
}

// NewServices wires the services on top of store and publisher.
func NewServices(cfg *config.Config, store Store, publisher events.Publisher) (*Services, error) {
	repos := store.Repositories()

	categories, err := service.NewCategoryService(repos.Categories, cfg.Storage.CategoryCacheSize)
	if err != nil {
		return nil, err
	}

	return &Services{
		Categories: categories,
		Games:      service.NewGameService(repos.Games, categories),
		Customers:  service.NewCustomerService(repos.Customers),
		Rentals: service.NewRentalService(store, repos, publisher,
			service.WithLocation(cfg.RentalLocation())),
	}, nil
}
