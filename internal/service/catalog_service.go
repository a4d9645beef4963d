package service

import (
	"context"
	"strings"
	"time"

	"herohome/internal/errors"
	"herohome/internal/model"
	"herohome/internal/repository"
)

// LatestServicesLimit bounds the latest-services listing.
const LatestServicesLimit = 6

// CatalogService handles service listings.
type CatalogService interface {
	List(ctx context.Context) ([]model.Service, error)
	Get(ctx context.Context, id string) (*model.Service, error)
	ListByProvider(ctx context.Context, email string) ([]model.Service, error)
	Latest(ctx context.Context) ([]model.Service, error)
	Create(ctx context.Context, doc model.Fields) (*model.InsertResult, error)
	Update(ctx context.Context, id string, patch model.Fields) (*model.UpdateResult, error)
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
}

type catalogService struct {
	repo repository.ServiceRepository
}

// NewCatalogService creates a catalog service.
func NewCatalogService(repo repository.ServiceRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) List(ctx context.Context) ([]model.Service, error) {
	return s.repo.List(ctx)
}

func (s *catalogService) Get(ctx context.Context, id string) (*model.Service, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, oid)
}

func (s *catalogService) ListByProvider(ctx context.Context, email string) ([]model.Service, error) {
	return s.repo.ListByProvider(ctx, email)
}

func (s *catalogService) Latest(ctx context.Context) ([]model.Service, error) {
	return s.repo.Latest(ctx, LatestServicesLimit)
}

// Create stores the caller's document with zeroed aggregates.
func (s *catalogService) Create(ctx context.Context, doc model.Fields) (*model.InsertResult, error) {
	return s.repo.Create(ctx, model.NewService(doc, time.Now().UTC()))
}

// Update merges patch into the listing. The id and the review aggregates are
// not editable, neither as whole fields nor through dotted paths.
func (s *catalogService) Update(ctx context.Context, id string, patch model.Fields) (*model.UpdateResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set, err := editableFields(patch)
	if err != nil {
		return nil, err
	}
	if raw, ok := set["createdAt"]; ok {
		if t, ok := model.ParseTime(raw); ok {
			set["createdAt"] = t
		}
	}
	if len(set) == 0 {
		return nil, errors.ErrEmptyUpdate
	}
	return s.repo.Update(ctx, oid, set)
}

// editableFields drops protected keys and any path below them. Keys that
// would be read as operators are rejected.
func editableFields(patch model.Fields) (model.Fields, error) {
	protected := append([]string{"_id"}, model.AggregateKeys...)

	set := make(model.Fields, len(patch))
	for key, value := range patch {
		if key == "" || strings.HasPrefix(key, "$") || strings.Contains(key, ".$") {
			return nil, errors.ErrInvalidField
		}
		if isProtected(key, protected) {
			continue
		}
		set[key] = value
	}
	return set, nil
}

func isProtected(key string, protected []string) bool {
	for _, p := range protected {
		if key == p || strings.HasPrefix(key, p+".") {
			return true
		}
	}
	return false
}

func (s *catalogService) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, oid)
}
