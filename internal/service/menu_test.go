package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"menucup/internal/logging"
	"menucup/internal/model"
	"menucup/internal/repository"
	repoMocks "menucup/internal/repository/mocks"
	"menucup/internal/storage"
	storeMocks "menucup/internal/storage/mocks"
)

type menuMocks struct {
	restaurants *repoMocks.MockRestaurantRepository
	categories  *repoMocks.MockCategoryRepository
	items       *repoMocks.MockItemRepository
	store       *storeMocks.MockStorage
}

func newMenuService() (MenuService, menuMocks) {
	m := menuMocks{
		restaurants: new(repoMocks.MockRestaurantRepository),
		categories:  new(repoMocks.MockCategoryRepository),
		items:       new(repoMocks.MockItemRepository),
		store:       new(storeMocks.MockStorage),
	}
	return NewMenuService(m.restaurants, m.categories, m.items, m.store, logging.Discard()), m
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }

var cocktails = &model.MenuCategory{ID: "c2", RestaurantID: "r1", Name: "Cocktails", Slug: "cocktails", Order: 2}

func TestMenuService_CreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("appends after existing categories", func(t *testing.T) {
		svc, m := newMenuService()
		m.restaurants.On("FindByID", ctx, "r1").Return(joesBar, nil)
		m.categories.On("Count", ctx, "r1").Return(2, nil)
		m.categories.On("Create", ctx, mock.MatchedBy(func(c *model.MenuCategory) bool {
			return c.Slug == "happy-hour" && c.Order == 3 && c.RestaurantID == "r1"
		})).Return(&model.MenuCategory{ID: "c3", Slug: "happy-hour", Order: 3}, nil)

		c, err := svc.CreateCategory(ctx, owner, "r1", model.CreateCategoryInput{Name: "Happy Hour"})

		require.NoError(t, err)
		assert.Equal(t, 3, c.Order)
		m.categories.AssertExpectations(t)
	})

	t.Run("explicit order skips count", func(t *testing.T) {
		svc, m := newMenuService()
		m.restaurants.On("FindByID", ctx, "r1").Return(joesBar, nil)
		m.categories.On("Create", ctx, mock.MatchedBy(func(c *model.MenuCategory) bool {
			return c.Order == 0
		})).Return(&model.MenuCategory{ID: "c3"}, nil)

		_, err := svc.CreateCategory(ctx, owner, "r1", model.CreateCategoryInput{Name: "Wine", Order: intPtr(0)})

		require.NoError(t, err)
		m.categories.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
	})

	t.Run("forbidden for other owners", func(t *testing.T) {
		svc, m := newMenuService()
		m.restaurants.On("FindByID", ctx, "r1").Return(joesBar, nil)

		_, err := svc.CreateCategory(ctx, other, "r1", model.CreateCategoryInput{Name: "Wine"})

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		svc, m := newMenuService()
		m.restaurants.On("FindByID", ctx, "nope").Return(nil, sql.ErrNoRows)

		_, err := svc.CreateCategory(ctx, admin, "nope", model.CreateCategoryInput{Name: "Wine"})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMenuService_UpdateCategory(t *testing.T) {
	ctx := context.Background()
	svc, m := newMenuService()
	m.categories.On("FindByID", ctx, "c2").Return(&model.MenuCategory{ID: "c2", RestaurantID: "r1", Name: "Cocktails", Slug: "cocktails"}, nil)
	m.restaurants.On("FindByID", ctx, "r1").Return(joesBar, nil)
	m.categories.On("Update", ctx, mock.MatchedBy(func(c *model.MenuCategory) bool {
		return c.Name == "Signature Cocktails" && c.Slug == "signature-cocktails"
	})).Return(&model.MenuCategory{ID: "c2", Name: "Signature Cocktails"}, nil)

	c, err := svc.UpdateCategory(ctx, owner, "c2", model.UpdateCategoryInput{Name: strPtr("Signature Cocktails"), Slug: strPtr("")})

	require.NoError(t, err)
	assert.Equal(t, "Signature Cocktails", c.Name)
	m.categories.AssertExpectations(t)
}

func TestMenuService_ReorderItems(t *testing.T) {
	ctx := context.Background()

	t.Run("mismatch is a validation error", func(t *testing.T) {
		svc, m := newMenuService()
		m.restaurants.On("FindByID", ctx, "r1").Return(joesBar, nil)
		m.items.On("UpdateOrder", ctx, "r1", []string{"i2", "x"}).Return(repository.ErrOrderMismatch)

		err := svc.ReorderItems(ctx, owner, "r1", []string{"i2", "x"})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("admin may reorder any restaurant", func(t *testing.T) {
		svc, m := newMenuService()
		m.restaurants.On("FindByID", ctx, "r1").Return(joesBar, nil)
		m.items.On("UpdateOrder", ctx, "r1", []string{"i2", "i1"}).Return(nil)

		assert.NoError(t, svc.ReorderItems(ctx, admin, "r1", []string{"i2", "i1"}))
	})
}

func TestMenuService_CreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to available", func(t *testing.T) {
		svc, m := newMenuService()
		m.categories.On("FindByID", ctx, "c2").Return(cocktails, nil)
		m.restaurants.On("FindByID", ctx, "r1").Return(joesBar, nil)
		m.items.On("Create", ctx, mock.MatchedBy(func(it *model.MenuItem) bool {
			return it.IsAvailable && it.RestaurantID == "r1" && it.CategoryID == "c2" && it.Price == 9.5
		})).Return(&model.MenuItem{ID: "i1", Name: "Mojito", Price: 9.5, IsAvailable: true}, nil)

		it, err := svc.CreateItem(ctx, owner, "c2", model.CreateItemInput{Name: "Mojito", Price: 9.5})

		require.NoError(t, err)
		assert.True(t, it.IsAvailable)
	})

	t.Run("negative price", func(t *testing.T) {
		svc, m := newMenuService()
		m.categories.On("FindByID", ctx, "c2").Return(cocktails, nil)
		m.restaurants.On("FindByID", ctx, "r1").Return(joesBar, nil)

		_, err := svc.CreateItem(ctx, owner, "c2", model.CreateItemInput{Name: "Mojito", Price: -1})

		assert.ErrorIs(t, err, ErrValidation)
		m.items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestMenuService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	mojito := func() *model.MenuItem {
		return &model.MenuItem{ID: "i1", RestaurantID: "r1", CategoryID: "c2", Name: "Mojito", Price: 9.5, IsAvailable: true}
	}

	t.Run("category of another restaurant is rejected", func(t *testing.T) {
		svc, m := newMenuService()
		m.items.On("FindByID", ctx, "i1").Return(mojito(), nil)
		m.restaurants.On("FindByID", ctx, "r1").Return(joesBar, nil)
		m.categories.On("FindByID", ctx, "c9").Return(&model.MenuCategory{ID: "c9", RestaurantID: "r2"}, nil)

		_, err := svc.UpdateItem(ctx, owner, "i1", model.UpdateItemInput{CategoryID: strPtr("c9")})

		assert.ErrorIs(t, err, ErrValidation)
		m.items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("applies only given fields", func(t *testing.T) {
		svc, m := newMenuService()
		m.items.On("FindByID", ctx, "i1").Return(mojito(), nil)
		m.restaurants.On("FindByID", ctx, "r1").Return(joesBar, nil)
		m.items.On("Update", ctx, mock.MatchedBy(func(it *model.MenuItem) bool {
			return it.Name == "Mojito" && it.Price == 10 && !it.IsAvailable
		})).Return(&model.MenuItem{ID: "i1", Price: 10}, nil)

		_, err := svc.UpdateItem(ctx, owner, "i1", model.UpdateItemInput{Price: floatPtr(10), IsAvailable: boolPtr(false)})

		require.NoError(t, err)
		m.items.AssertExpectations(t)
	})

	t.Run("missing item", func(t *testing.T) {
		svc, m := newMenuService()
		m.items.On("FindByID", ctx, "nope").Return(nil, sql.ErrNoRows)

		_, err := svc.UpdateItem(ctx, owner, "nope", model.UpdateItemInput{})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMenuService_DeleteItem(t *testing.T) {
	ctx := context.Background()
	svc, m := newMenuService()
	m.items.On("FindByID", ctx, "i1").Return(&model.MenuItem{ID: "i1", RestaurantID: "r1"}, nil)
	m.restaurants.On("FindByID", ctx, "r1").Return(joesBar, nil)
	m.items.On("Delete", ctx, "i1").Return(errors.New("db down"))

	assert.ErrorIs(t, svc.DeleteItem(ctx, other, "i1"), ErrForbidden)
	assert.EqualError(t, svc.DeleteItem(ctx, owner, "i1"), "db down")
	assert.ErrorIs(t, svc.DeleteItem(ctx, owner, ""), ErrIDRequired)
}

func TestMenuService_UploadItemImage(t *testing.T) {
	ctx := context.Background()
	item := func() *model.MenuItem { return &model.MenuItem{ID: "i1", RestaurantID: "r1", CategoryID: "c2", Name: "Mojito"} }
	isItemKey := mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "r1/i1-") && strings.HasSuffix(key, ".jpg")
	})

	t.Run("happy path", func(t *testing.T) {
		svc, m := newMenuService()
		r := strings.NewReader("jpg")
		m.items.On("FindByID", ctx, "i1").Return(item(), nil)
		m.restaurants.On("FindByID", ctx, "r1").Return(joesBar, nil)
		m.store.On("Put", ctx, isItemKey, r, storage.PutObjectOptions{
			Size: 3, ContentType: "image/jpeg", Metadata: map[string]string{"item-id": "i1"},
		}).Return(storage.ObjectInfo{URL: "http://cdn/menu-items/r1/i1-x.jpg"}, nil)
		m.items.On("Update", ctx, mock.MatchedBy(func(it *model.MenuItem) bool {
			return it.ImageURL == "http://cdn/menu-items/r1/i1-x.jpg"
		})).Return(&model.MenuItem{ID: "i1", ImageURL: "http://cdn/menu-items/r1/i1-x.jpg"}, nil)

		out, err := svc.UploadItemImage(ctx, owner, "i1", Upload{Reader: r, Filename: "photo.jpg", ContentType: "image/jpeg", Size: 3})

		require.NoError(t, err)
		assert.Equal(t, "http://cdn/menu-items/r1/i1-x.jpg", out.ImageURL)
		m.store.AssertExpectations(t)
	})

	t.Run("rollback delete failure is reported", func(t *testing.T) {
		svc, m := newMenuService()
		r := strings.NewReader("jpg")
		m.items.On("FindByID", ctx, "i1").Return(item(), nil)
		m.restaurants.On("FindByID", ctx, "r1").Return(joesBar, nil)
		m.store.On("Put", ctx, isItemKey, r, mock.Anything).Return(storage.ObjectInfo{URL: "u"}, nil)
		m.items.On("Update", ctx, mock.Anything).Return(nil, errors.New("db fail"))
		m.store.On("Delete", ctx, isItemKey).Return(errors.New("delete fail"))

		_, err := svc.UploadItemImage(ctx, owner, "i1", Upload{Reader: r, Filename: "photo.jpg", ContentType: "image/jpeg"})

		assert.EqualError(t, err, "db save failed: db fail; rollback delete failed: delete fail")
	})
}
