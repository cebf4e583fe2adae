package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sahilchouksey/studyflow/config"
	"github.com/sahilchouksey/studyflow/repository"
	"github.com/sahilchouksey/studyflow/repository/gormrepo"
)

type GORMStore struct {
	db     *gorm.DB
	driver string
	repos  repository.Repositories
}

// StartGORM initializes a GORM connection to PostgreSQL or SQLite
func StartGORM(cfg *config.EnvironmentVariable) (*GORMStore, error) {
	var dialector gorm.Dialector
	switch cfg.DB_DRIVER {
	case config.DriverSQLite:
		if err := ensureDirForSQLite(cfg.SQLITE_PATH); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(cfg.SQLITE_PATH)
	default:
		// Build DSN (Data Source Name)
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DB_HOST,
			cfg.DB_USER_NAME,
			cfg.DB_PASSWORD,
			cfg.DB_NAME,
			cfg.DB_PORT,
			cfg.DB_SSL_MODE,
		)
		dialector = postgres.Open(dsn)
	}

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	store, err := openGORM(dialector, cfg.DB_DRIVER, gormLogger)
	if err != nil {
		log.Printf("Unable to connect to %s with GORM: %v", cfg.DB_DRIVER, err)
		return nil, err
	}

	log.Printf("Successfully connected to %s Database with GORM.", cfg.DB_DRIVER)
	return store, nil
}

// OpenInMemory opens a private in-memory SQLite store with tables migrated.
// Each name gets its own database.
func OpenInMemory(name string) (*GORMStore, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.NewReplacer("/", "_", " ", "_").Replace(name))
	store, err := openGORM(sqlite.Open(dsn), config.DriverSQLite, logger.Default.LogMode(logger.Silent))
	if err != nil {
		return nil, err
	}
	if err := store.Init(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func openGORM(dialector gorm.Dialector, driver string, gormLogger logger.Interface) (*GORMStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            true, // Prepare statements for better performance
		TranslateError:         true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if driver == config.DriverSQLite {
		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &GORMStore{db: db, driver: driver, repos: gormrepo.New(db)}, nil
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	if err := s.db.AutoMigrate(gormrepo.Models()...); err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Printf("Closing GORM %s connection...", s.driver)
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the GORM handle
func (s *GORMStore) DB() *gorm.DB {
	return s.db
}

func (s *GORMStore) Driver() string {
	return s.driver
}

func (s *GORMStore) Repositories() repository.Repositories {
	return s.repos
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// ensureDirForSQLite creates the parent dir of a SQLite file if needed
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
