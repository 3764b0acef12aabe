package mocks

import (
	"context"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockFilmRepo struct {
	mock.Mock
	domain.FilmRepository
}

func (m *MockFilmRepo) GetAll(ctx context.Context, filters domain.FilmFilters) ([]*domain.Film, *domain.Metadata, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]*domain.Film), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockFilmRepo) GetById(ctx context.Context, id string) (*domain.Film, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Film), args.Error(1)
}

func (m *MockFilmRepo) Create(ctx context.Context, film *domain.Film) error {
	args := m.Called(ctx, film)
	return args.Error(0)
}

func (m *MockFilmRepo) GetScreening(ctx context.Context, key domain.ScreeningKey) (*domain.Screening, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Screening), args.Error(1)
}

func (m *MockFilmRepo) TryReserve(ctx context.Context, key domain.ScreeningKey, seats []domain.SeatKey) error {
	args := m.Called(ctx, key, seats)
	return args.Error(0)
}

func (m *MockFilmRepo) Release(ctx context.Context, key domain.ScreeningKey, seats []domain.SeatKey) error {
	args := m.Called(ctx, key, seats)
	return args.Error(0)
}
