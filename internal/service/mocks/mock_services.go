package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"menucup/internal/auth"
	"menucup/internal/model"
	"menucup/internal/service"
)

type MockRestaurantService struct {
	mock.Mock
}

func (m *MockRestaurantService) ListVisible(ctx context.Context, s *auth.Session) ([]model.Restaurant, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) GetBySlug(ctx context.Context, slug string) (*model.Restaurant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Editable(ctx context.Context, s *auth.Session, slug string) (*model.Restaurant, error) {
	args := m.Called(ctx, s, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Create(ctx context.Context, s *auth.Session, in model.CreateRestaurantInput) (*model.Restaurant, error) {
	args := m.Called(ctx, s, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) UpdateSettings(ctx context.Context, s *auth.Session, slug string, in model.RestaurantSettings) (*model.Restaurant, error) {
	args := m.Called(ctx, s, slug, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) UploadAsset(ctx context.Context, s *auth.Session, slug string, kind model.AssetKind, up service.Upload) (*model.Restaurant, error) {
	args := m.Called(ctx, s, slug, kind, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) GenerateQRCode(ctx context.Context, s *auth.Session, slug string) (*model.Restaurant, error) {
	args := m.Called(ctx, s, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Delete(ctx context.Context, s *auth.Session, slug string) error {
	args := m.Called(ctx, s, slug)
	return args.Error(0)
}

type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) Categories(ctx context.Context, restaurantID string) ([]model.MenuCategory, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuCategory), args.Error(1)
}

func (m *MockMenuService) CategoryBySlug(ctx context.Context, restaurantID, slug string) (*model.MenuCategory, error) {
	args := m.Called(ctx, restaurantID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuCategory), args.Error(1)
}

func (m *MockMenuService) CreateCategory(ctx context.Context, s *auth.Session, restaurantID string, in model.CreateCategoryInput) (*model.MenuCategory, error) {
	args := m.Called(ctx, s, restaurantID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuCategory), args.Error(1)
}

func (m *MockMenuService) UpdateCategory(ctx context.Context, s *auth.Session, id string, in model.UpdateCategoryInput) (*model.MenuCategory, error) {
	args := m.Called(ctx, s, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuCategory), args.Error(1)
}

func (m *MockMenuService) DeleteCategory(ctx context.Context, s *auth.Session, id string) error {
	args := m.Called(ctx, s, id)
	return args.Error(0)
}

func (m *MockMenuService) ReorderCategories(ctx context.Context, s *auth.Session, restaurantID string, ids []string) error {
	args := m.Called(ctx, s, restaurantID, ids)
	return args.Error(0)
}

func (m *MockMenuService) Items(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockMenuService) ItemsByCategory(ctx context.Context, categoryID string, availableOnly bool) ([]model.MenuItem, error) {
	args := m.Called(ctx, categoryID, availableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockMenuService) CreateItem(ctx context.Context, s *auth.Session, categoryID string, in model.CreateItemInput) (*model.MenuItem, error) {
	args := m.Called(ctx, s, categoryID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockMenuService) UpdateItem(ctx context.Context, s *auth.Session, id string, in model.UpdateItemInput) (*model.MenuItem, error) {
	args := m.Called(ctx, s, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockMenuService) DeleteItem(ctx context.Context, s *auth.Session, id string) error {
	args := m.Called(ctx, s, id)
	return args.Error(0)
}

func (m *MockMenuService) ReorderItems(ctx context.Context, s *auth.Session, restaurantID string, ids []string) error {
	args := m.Called(ctx, s, restaurantID, ids)
	return args.Error(0)
}

func (m *MockMenuService) UploadItemImage(ctx context.Context, s *auth.Session, id string, up service.Upload) (*model.MenuItem, error) {
	args := m.Called(ctx, s, id, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

type MockPublicMenuService struct {
	mock.Mock
}

func (m *MockPublicMenuService) RestaurantMenu(ctx context.Context, slug string) (*model.PublicMenu, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublicMenu), args.Error(1)
}

func (m *MockPublicMenuService) CategoryMenu(ctx context.Context, slug, categorySlug string) (*model.PublicCategoryPage, error) {
	args := m.Called(ctx, slug, categorySlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublicCategoryPage), args.Error(1)
}

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) SubmitLead(ctx context.Context, lead model.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}
