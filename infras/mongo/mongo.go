package mongo

import (
	"context"
	"hotelier/config"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout      = 10 * time.Second
	defaultQueryTimeout = 5 * time.Second
	defaultURI          = "mongodb://localhost:27017"
	defaultDatabase     = "hotelier"
)

type Connection struct {
	Client       *mongo.Client
	Database     *mongo.Database
	QueryTimeout time.Duration
}

func New(config *config.Config) *Connection {
	uri := config.DB.Mongo.URI
	if uri == "" {
		uri = defaultURI
	}

	name := config.DB.Mongo.Name
	if name == "" {
		name = defaultDatabase
	}

	queryTimeout := defaultQueryTimeout
	if config.DB.Mongo.QueryTimeoutSeconds > 0 {
		queryTimeout = time.Duration(config.DB.Mongo.QueryTimeoutSeconds) * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping MongoDB")
	}

	log.Info().Str("database", name).Msg("Connected to MongoDB")

	return &Connection{
		Client:       client,
		Database:     client.Database(name),
		QueryTimeout: queryTimeout,
	}
}

func (c *Connection) Collection(name string) *mongo.Collection {
	return c.Database.Collection(name)
}

func (c *Connection) Close(ctx context.Context) {
	if err := c.Client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from MongoDB")

		return
	}

	log.Info().Msg("Disconnected from MongoDB")
}
