package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"menucup/internal/model"
	"menucup/internal/repository"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *model.MenuCategory) (*model.MenuCategory, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuCategory), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id string) (*model.MenuCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuCategory), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, restaurantID, slug string) (*model.MenuCategory, error) {
	args := m.Called(ctx, restaurantID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuCategory), args.Error(1)
}

func (m *MockCategoryRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]model.MenuCategory, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuCategory), args.Error(1)
}

func (m *MockCategoryRepository) Count(ctx context.Context, restaurantID string) (int, error) {
	args := m.Called(ctx, restaurantID)
	return args.Int(0), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *model.MenuCategory) (*model.MenuCategory, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuCategory), args.Error(1)
}

func (m *MockCategoryRepository) UpdateOrder(ctx context.Context, restaurantID string, ids []string) error {
	args := m.Called(ctx, restaurantID, ids)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, it *model.MenuItem) (*model.MenuItem, error) {
	args := m.Called(ctx, it)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockItemRepository) ListByRestaurant(ctx context.Context, restaurantID string, f repository.ItemFilter) ([]model.MenuItem, error) {
	args := m.Called(ctx, restaurantID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockItemRepository) ListByCategory(ctx context.Context, categoryID string, f repository.ItemFilter) ([]model.MenuItem, error) {
	args := m.Called(ctx, categoryID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, it *model.MenuItem) (*model.MenuItem, error) {
	args := m.Called(ctx, it)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockItemRepository) UpdateOrder(ctx context.Context, restaurantID string, ids []string) error {
	args := m.Called(ctx, restaurantID, ids)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
