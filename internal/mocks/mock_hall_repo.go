package mocks

import (
	"context"

	"github.com/cinehall/cinehall/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHallRepo struct {
	mock.Mock
	domain.HallRepository
}

func (m *MockHallRepo) GetAll(ctx context.Context) ([]domain.HallSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HallSummary), args.Error(1)
}

func (m *MockHallRepo) GetByCinema(ctx context.Context, cinemaID int) ([]domain.HallSummary, error) {
	args := m.Called(ctx, cinemaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HallSummary), args.Error(1)
}

func (m *MockHallRepo) GetById(ctx context.Context, id int) (*domain.Hall, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hall), args.Error(1)
}

func (m *MockHallRepo) Create(ctx context.Context, hall *domain.Hall) error {
	args := m.Called(ctx, hall)
	return args.Error(0)
}

func (m *MockHallRepo) Update(ctx context.Context, hall *domain.Hall) error {
	args := m.Called(ctx, hall)
	return args.Error(0)
}

func (m *MockHallRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHallRepo) Exists(ctx context.Context, hallID int) (bool, error) {
	args := m.Called(ctx, hallID)
	return args.Bool(0), args.Error(1)
}

func (m *MockHallRepo) CinemaExists(ctx context.Context, cinemaID int) (bool, error) {
	args := m.Called(ctx, cinemaID)
	return args.Bool(0), args.Error(1)
}

func (m *MockHallRepo) HasAnySessions(ctx context.Context, hallID int) (bool, error) {
	args := m.Called(ctx, hallID)
	return args.Bool(0), args.Error(1)
}

func (m *MockHallRepo) HasAnyBookings(ctx context.Context, hallID int) (bool, error) {
	args := m.Called(ctx, hallID)
	return args.Bool(0), args.Error(1)
}
