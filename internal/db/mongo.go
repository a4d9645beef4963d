package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Collection names in the application database.
const (
	UsersCollection    = "users"
	ServicesCollection = "services"
	BookingsCollection = "bookings"
)

// NewMongo returns a MongoDB client using the stable v1 server API. The
// driver connects lazily and pools connections for all requests.
func NewMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(connectTimeout).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return client, nil
}

// Ping checks that the primary is reachable within the connect timeout.
func Ping(ctx context.Context, client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	_, err = database.Collection(ServicesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "provider.email", Value: 1}}, Options: options.Index().SetName("provider_email")},
		{Keys: bson.D{
			{Key: "createdAt", Value: -1},
			{Key: "reviewCount", Value: -1},
			{Key: "averageRating", Value: -1},
		}, Options: options.Index().SetName("latest")},
	})
	if err != nil {
		return fmt.Errorf("create services indexes: %w", err)
	}

	_, err = database.Collection(BookingsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "providerEmail", Value: 1}}, Options: options.Index().SetName("provider_email")},
		{Keys: bson.D{{Key: "userEmail", Value: 1}}, Options: options.Index().SetName("user_email")},
	})
	if err != nil {
		return fmt.Errorf("create bookings indexes: %w", err)
	}
	return nil
}
