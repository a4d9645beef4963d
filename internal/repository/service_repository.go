package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"herohome/internal/db"
	apperrors "herohome/internal/errors"
	"herohome/internal/model"
)

// ServiceRepository defines service listing persistence operations.
type ServiceRepository interface {
	List(ctx context.Context) ([]model.Service, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Service, error)
	ListByProvider(ctx context.Context, email string) ([]model.Service, error)
	Latest(ctx context.Context, limit int64) ([]model.Service, error)
	Create(ctx context.Context, service *model.Service) (*model.InsertResult, error)
	Update(ctx context.Context, id primitive.ObjectID, patch model.Fields) (*model.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.DeleteResult, error)
	// AppendReview pushes review and recomputes the aggregates in a single
	// document update, returning the service after the change.
	AppendReview(ctx context.Context, id primitive.ObjectID, review model.Review) (*model.Service, error)
	// Count counts services, restricted to a provider when email is not empty.
	Count(ctx context.Context, providerEmail string) (int64, error)
	ExistsWithTitle(ctx context.Context, title string) (bool, error)
}

type serviceRepository struct {
	coll *mongo.Collection
}

// NewServiceRepository creates a new service repository.
func NewServiceRepository(database *mongo.Database) ServiceRepository {
	return &serviceRepository{coll: database.Collection(db.ServicesCollection)}
}

func (r *serviceRepository) find(ctx context.Context, filter bson.D, opts ...*options.FindOptions) ([]model.Service, error) {
	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find services: %w", err)
	}
	services := make([]model.Service, 0)
	if err := cur.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return services, nil
}

// List returns every service.
func (r *serviceRepository) List(ctx context.Context) ([]model.Service, error) {
	return r.find(ctx, bson.D{})
}

// FindByID finds a service by id.
func (r *serviceRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Service, error) {
	var service model.Service
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&service)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	return &service, nil
}

// ListByProvider returns the services owned by a provider email.
func (r *serviceRepository) ListByProvider(ctx context.Context, email string) ([]model.Service, error) {
	return r.find(ctx, bson.D{{Key: "provider.email", Value: email}})
}

// Latest returns the newest services, ties broken by review count then rating.
func (r *serviceRepository) Latest(ctx context.Context, limit int64) ([]model.Service, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "createdAt", Value: -1},
			{Key: "reviewCount", Value: -1},
			{Key: "averageRating", Value: -1},
		}).
		SetLimit(limit)
	return r.find(ctx, bson.D{}, opts)
}

// Create inserts a service.
func (r *serviceRepository) Create(ctx context.Context, service *model.Service) (*model.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, service)
	if err != nil {
		return nil, fmt.Errorf("insert service: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		service.ID = id
	}
	return insertResult(res), nil
}

// Update merges patch into the service with $set.
func (r *serviceRepository) Update(ctx context.Context, id primitive.ObjectID, patch model.Fields) (*model.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.M(patch)}},
	)
	if err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, apperrors.ErrServiceNotFound
	}
	return updateResult(res), nil
}

// Delete removes a service.
func (r *serviceRepository) Delete(ctx context.Context, id primitive.ObjectID) (*model.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return nil, fmt.Errorf("delete service: %w", err)
	}
	if res.DeletedCount == 0 {
		return nil, apperrors.ErrServiceNotFound
	}
	return deleteResult(res), nil
}

// AppendReview runs an update pipeline: the first stage appends the review,
// the second derives reviewCount and averageRating from the new array. The
// document-level atomicity of the update keeps aggregates consistent under
// concurrent submissions.
func (r *serviceRepository) AppendReview(ctx context.Context, id primitive.ObjectID, review model.Review) (*model.Service, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "reviews", Value: bson.D{{Key: "$concatArrays", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$reviews", bson.A{}}}},
				// $literal keeps "$..." strings in review text from being read as field paths.
				bson.A{bson.D{{Key: "$literal", Value: review}}},
			}}}},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "reviewCount", Value: bson.D{{Key: "$size", Value: "$reviews"}}},
			{Key: "averageRating", Value: bson.D{{Key: "$ifNull", Value: bson.A{
				bson.D{{Key: "$avg", Value: "$reviews.rating"}},
				0,
			}}}},
		}}},
	}

	var service model.Service
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&service)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("append review: %w", err)
	}
	return &service, nil
}

// Count counts services, optionally for one provider.
func (r *serviceRepository) Count(ctx context.Context, providerEmail string) (int64, error) {
	filter := bson.D{}
	if providerEmail != "" {
		filter = bson.D{{Key: "provider.email", Value: providerEmail}}
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return n, nil
}

// ExistsWithTitle reports whether a service with this title is stored.
func (r *serviceRepository) ExistsWithTitle(ctx context.Context, title string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "title", Value: title}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count services by title: %w", err)
	}
	return n > 0, nil
}
