package mocks

import (
	"context"

	"github.com/metinatakli/movie-catalog/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	CreateFunc  func(ctx context.Context, input domain.NewMovie) (*domain.Movie, error)
	GetAllFunc  func(ctx context.Context, pagination domain.Pagination) ([]*domain.Movie, int, error)
	GetByIdFunc func(ctx context.Context, id int) (*domain.Movie, error)
	UpdateFunc  func(ctx context.Context, id int, patch domain.MoviePatch) (*domain.Movie, error)
	DeleteFunc  func(ctx context.Context, id int) error
}

func (m *MockMovieRepo) Create(ctx context.Context, input domain.NewMovie) (*domain.Movie, error) {
	return m.CreateFunc(ctx, input)
}

func (m *MockMovieRepo) GetAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Movie, int, error) {
	return m.GetAllFunc(ctx, pagination)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockMovieRepo) Update(ctx context.Context, id int, patch domain.MoviePatch) (*domain.Movie, error) {
	return m.UpdateFunc(ctx, id, patch)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
