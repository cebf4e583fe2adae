package database

import (
	"fmt"

	"github.com/sahilchouksey/studyflow/config"
	"github.com/sahilchouksey/studyflow/repository"
)

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// Driver names the backend, one of the config.Driver* values
	Driver() string
	Repositories() repository.Repositories
}

// Open connects to the backend selected by DB_DRIVER
func Open(cfg *config.EnvironmentVariable) (Storage, error) {
	switch cfg.DB_DRIVER {
	case config.DriverPostgres, config.DriverSQLite:
		store, err := StartGORM(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverMongo:
		store, err := StartMongo(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB_DRIVER)
	}
}
