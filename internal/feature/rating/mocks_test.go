package rating

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sustainably-yours/internal/domain"
)

type mockRatings struct{ mock.Mock }

func (m *mockRatings) Create(ctx context.Context, r *domain.Rating) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRatings) FindByID(ctx context.Context, id string) (*domain.Rating, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Rating)
	return r, args.Error(1)
}

func (m *mockRatings) FindByUserAndTarget(ctx context.Context, userID string, t domain.Target) (*domain.Rating, error) {
	args := m.Called(ctx, userID, t)
	r, _ := args.Get(0).(*domain.Rating)
	return r, args.Error(1)
}

func (m *mockRatings) ListByTarget(ctx context.Context, t domain.Target) ([]domain.Rating, error) {
	args := m.Called(ctx, t)
	list, _ := args.Get(0).([]domain.Rating)
	return list, args.Error(1)
}

func (m *mockRatings) Update(ctx context.Context, r *domain.Rating) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRatings) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRatings) DeleteByTarget(ctx context.Context, t domain.Target) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockRatings) ListByUser(ctx context.Context, userID string) ([]domain.Rating, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]domain.Rating)
	return list, args.Error(1)
}

type mockProducts struct{ mock.Mock }

func (m *mockProducts) Create(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProducts) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *mockProducts) FindByIDWithRatings(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *mockProducts) List(ctx context.Context, q domain.ListQuery) ([]domain.Product, int64, error) {
	args := m.Called(ctx, q)
	list, _ := args.Get(0).([]domain.Product)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockProducts) Update(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProducts) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProducts) SetAverageRating(ctx context.Context, id string, avg float64) error {
	return m.Called(ctx, id, avg).Error(0)
}

func (m *mockProducts) CountByOwner(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockBusinesses struct{ mock.Mock }

func (m *mockBusinesses) Create(ctx context.Context, b *domain.Business) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBusinesses) FindByID(ctx context.Context, id string) (*domain.Business, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Business)
	return b, args.Error(1)
}

func (m *mockBusinesses) FindByIDWithRatings(ctx context.Context, id string) (*domain.Business, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Business)
	return b, args.Error(1)
}

func (m *mockBusinesses) List(ctx context.Context, q domain.ListQuery) ([]domain.Business, int64, error) {
	args := m.Called(ctx, q)
	list, _ := args.Get(0).([]domain.Business)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockBusinesses) Update(ctx context.Context, b *domain.Business) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBusinesses) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBusinesses) SetAverageRating(ctx context.Context, id string, avg float64) error {
	return m.Called(ctx, id, avg).Error(0)
}

func (m *mockBusinesses) CountByOwner(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
