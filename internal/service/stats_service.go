package service

import (
	"context"
	"fmt"

	apperrors "herohome/internal/errors"
	"herohome/internal/model"
	"herohome/internal/repository"
)

// StatsService computes the dashboard summaries. Nothing is cached; every
// call reads the collections again.
type StatsService interface {
	Provider(ctx context.Context, email string) (*model.ProviderStats, error)
	Admin(ctx context.Context) (*model.AdminStats, error)
	User(ctx context.Context, email string) (*model.UserStats, error)
}

type statsService struct {
	users    repository.UserRepository
	services repository.ServiceRepository
	bookings repository.BookingRepository
}

// NewStatsService creates a stats service.
func NewStatsService(users repository.UserRepository, services repository.ServiceRepository, bookings repository.BookingRepository) StatsService {
	return &statsService{users: users, services: services, bookings: bookings}
}

// Provider reports one provider's listings, bookings and revenue. An empty
// email is rejected since the repositories read it as no filter.
func (s *statsService) Provider(ctx context.Context, email string) (*model.ProviderStats, error) {
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}
	filter := model.BookingFilter{ProviderEmail: email}

	serviceCount, err := s.services.Count(ctx, email)
	if err != nil {
		return nil, err
	}
	bookingCount, err := s.bookings.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	revenue, err := s.revenue(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &model.ProviderStats{
		ServiceCount: serviceCount,
		BookingCount: bookingCount,
		TotalRevenue: revenue,
	}, nil
}

func (s *statsService) Admin(ctx context.Context) (*model.AdminStats, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	serviceCount, err := s.services.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	bookingCount, err := s.bookings.Count(ctx, model.BookingFilter{})
	if err != nil {
		return nil, err
	}
	revenue, err := s.revenue(ctx, model.BookingFilter{})
	if err != nil {
		return nil, err
	}

	return &model.AdminStats{
		UserCount:    userCount,
		ServiceCount: serviceCount,
		BookingCount: bookingCount,
		TotalRevenue: revenue,
	}, nil
}

// User reports a customer's bookings and spend. Reviews are embedded without
// a reviewer key and bookings carry no status, so both remaining counters are
// always zero.
func (s *statsService) User(ctx context.Context, email string) (*model.UserStats, error) {
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}
	filter := model.BookingFilter{UserEmail: email}

	bookingCount, err := s.bookings.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	spent, err := s.revenue(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &model.UserStats{
		BookingCount: bookingCount,
		TotalSpent:   spent,
	}, nil
}

func (s *statsService) revenue(ctx context.Context, filter model.BookingFilter) (float64, error) {
	prices, err := s.bookings.Prices(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("load booking prices: %w", err)
	}
	return sumPrices(prices).InexactFloat64(), nil
}
