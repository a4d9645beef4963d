package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"herohome/internal/db"
	apperrors "herohome/internal/errors"
	"herohome/internal/model"
)

// BookingRepository defines booking persistence operations.
type BookingRepository interface {
	List(ctx context.Context) ([]model.Booking, error)
	Create(ctx context.Context, booking *model.Booking) (*model.InsertResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.DeleteResult, error)
	Count(ctx context.Context, filter model.BookingFilter) (int64, error)
	// Prices returns the raw price value of every matching booking.
	Prices(ctx context.Context, filter model.BookingFilter) ([]interface{}, error)
}

type bookingRepository struct {
	coll *mongo.Collection
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(database *mongo.Database) BookingRepository {
	return &bookingRepository{coll: database.Collection(db.BookingsCollection)}
}

func bookingFilter(f model.BookingFilter) bson.D {
	filter := bson.D{}
	if f.ProviderEmail != "" {
		filter = append(filter, bson.E{Key: "providerEmail", Value: f.ProviderEmail})
	}
	if f.UserEmail != "" {
		filter = append(filter, bson.E{Key: "userEmail", Value: f.UserEmail})
	}
	return filter
}

// List returns every booking.
func (r *bookingRepository) List(ctx context.Context) ([]model.Booking, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	bookings := make([]model.Booking, 0)
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

// Create inserts a booking.
func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) (*model.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		booking.ID = id
	}
	return insertResult(res), nil
}

// Delete removes a booking.
func (r *bookingRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return nil, fmt.Errorf("delete booking: %w", err)
	}
	if res.DeletedCount == 0 {
		return nil, apperrors.ErrBookingNotFound
	}
	return deleteResult(res), nil
}

// Count counts matching bookings.
func (r *bookingRepository) Count(ctx context.Context, filter model.BookingFilter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bookingFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

// Prices projects the price field of matching bookings.
func (r *bookingRepository) Prices(ctx context.Context, filter model.BookingFilter) ([]interface{}, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 0}})
	cur, err := r.coll.Find(ctx, bookingFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find booking prices: %w", err)
	}

	var rows []struct {
		Price interface{} `bson:"price"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode booking prices: %w", err)
	}

	prices := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		prices = append(prices, row.Price)
	}
	return prices, nil
}
