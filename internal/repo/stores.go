package repo

import (
	"context"
	"fmt"

	"github.com/shaikazeem2001/inventory/internal/config"
	"github.com/shaikazeem2001/inventory/internal/db"
)

// Stores groups the repositories backed by one storage driver.
type Stores struct {
	Products ProductRepository
	Users    UserRepository
	Activity ActivityRepository
	Metrics  MetricsRepository

	closeFn func() error
}

func (s *Stores) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// NewInMemoryStores wires the in-memory repositories together.
func NewInMemoryStores() *Stores {
	products := NewInMemoryProductRepository()
	metrics := NewInMemoryMetricsRepository()
	metrics.SetRepositories(products)

	return &Stores{
		Products: products,
		Users:    NewInMemoryUserRepository(),
		Activity: NewInMemoryActivityRepository(),
		Metrics:  metrics,
	}
}

// Open connects to the configured driver and returns its repositories.
func Open(cfg config.StorageConfig) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewInMemoryStores(), nil

	case config.DriverPostgres:
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Products: NewPostgresProductRepository(database),
			Users:    NewPostgresUserRepository(database),
			Activity: NewPostgresActivityRepository(database),
			Metrics:  NewPostgresMetricsRepository(database),
			closeFn:  database.Close,
		}, nil

	case config.DriverMongo:
		client, mdb, err := db.ConnectMongo(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Products: NewMongoProductRepository(mdb),
			Users:    NewMongoUserRepository(mdb),
			Activity: NewMongoActivityRepository(mdb),
			Metrics:  NewMongoMetricsRepository(mdb),
			closeFn:  func() error { return client.Disconnect(context.Background()) },
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
