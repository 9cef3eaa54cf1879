package mocks

import (
	"context"

	"github.com/cinehall/cinehall/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatRepo struct {
	mock.Mock
	domain.SeatRepository
}

func (m *MockSeatRepo) GetByHall(ctx context.Context, hallID int) ([]domain.Seat, error) {
	args := m.Called(ctx, hallID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepo) AnyForHall(ctx context.Context, hallID int) (bool, error) {
	args := m.Called(ctx, hallID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSeatRepo) ReplaceForHall(ctx context.Context, hallID int, seats []domain.Seat) error {
	args := m.Called(ctx, hallID, seats)
	return args.Error(0)
}
