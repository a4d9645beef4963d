package service

import (
	"context"
	"time"

	"herohome/internal/errors"
	"herohome/internal/model"
	"herohome/internal/repository"
)

// BookingService handles reservations.
type BookingService interface {
	List(ctx context.Context) ([]model.Booking, error)
	Create(ctx context.Context, doc model.Fields) (*model.InsertResult, error)
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
}

type bookingService struct {
	repo repository.BookingRepository
}

// NewBookingService creates a booking service.
func NewBookingService(repo repository.BookingRepository) BookingService {
	return &bookingService{repo: repo}
}

func (s *bookingService) List(ctx context.Context) ([]model.Booking, error) {
	return s.repo.List(ctx)
}

// Create stores a booking. serviceId must be an ObjectID hex string; nothing
// is written otherwise.
func (s *bookingService) Create(ctx context.Context, doc model.Fields) (*model.InsertResult, error) {
	raw, ok := doc["serviceId"].(string)
	if !ok {
		return nil, errors.ErrInvalidID
	}
	serviceID, err := parseObjectID(raw)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, model.NewBooking(doc, serviceID, time.Now().UTC()))
}

func (s *bookingService) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, oid)
}
