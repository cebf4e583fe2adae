package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sahilchouksey/studyflow/config"
	"github.com/sahilchouksey/studyflow/repository"
	"github.com/sahilchouksey/studyflow/repository/mongorepo"
)

const mongoTimeout = 10 * time.Second

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	repos  repository.Repositories
}

// StartMongo connects to MongoDB and verifies the connection with a ping
func StartMongo(cfg *config.EnvironmentVariable) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MONGODB_URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Println("Unable to connect to MongoDB:", err)
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Println("Unable to ping MongoDB:", err)
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(cfg.MONGODB_DATABASE)
	log.Printf("Successfully connected to MongoDB database %s.", cfg.MONGODB_DATABASE)

	return &MongoStore{client: client, db: db, repos: mongorepo.New(db)}, nil
}

// Init creates the collection indexes
func (s *MongoStore) Init() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	log.Println("Ensuring MongoDB indexes...")
	return mongorepo.EnsureIndexes(ctx, s.db)
}

func (s *MongoStore) Close() error {
	log.Println("Closing MongoDB connection...")
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Driver() string {
	return config.DriverMongo
}

func (s *MongoStore) Repositories() repository.Repositories {
	return s.repos
}

// Database returns the underlying handle
func (s *MongoStore) Database() *mongo.Database {
	return s.db
}
