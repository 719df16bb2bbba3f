package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"menucup/internal/auth"
	"menucup/internal/logging"
	"menucup/internal/model"
	"menucup/internal/repository"
	"menucup/internal/storage"
)

// MenuService defines the use cases for categories and items.
// Mutations require the caller to own the restaurant or be an admin.
type MenuService interface {
	// Categories returns the categories of a restaurant in display order.
	Categories(ctx context.Context, restaurantID string) ([]model.MenuCategory, error)
	CategoryBySlug(ctx context.Context, restaurantID, slug string) (*model.MenuCategory, error)

	// CreateCategory derives the slug from the name when empty and appends the
	// category after the existing ones when no order is given.
	CreateCategory(ctx context.Context, s *auth.Session, restaurantID string, in model.CreateCategoryInput) (*model.MenuCategory, error)
	UpdateCategory(ctx context.Context, s *auth.Session, id string, in model.UpdateCategoryInput) (*model.MenuCategory, error)
	DeleteCategory(ctx context.Context, s *auth.Session, id string) error

	// ReorderCategories assigns display order by position in ids.
	ReorderCategories(ctx context.Context, s *auth.Session, restaurantID string, ids []string) error

	// Items returns every item of a restaurant in display order.
	Items(ctx context.Context, restaurantID string) ([]model.MenuItem, error)
	ItemsByCategory(ctx context.Context, categoryID string, availableOnly bool) ([]model.MenuItem, error)

	CreateItem(ctx context.Context, s *auth.Session, categoryID string, in model.CreateItemInput) (*model.MenuItem, error)

	// UpdateItem may move the item to another category of the same restaurant.
	UpdateItem(ctx context.Context, s *auth.Session, id string, in model.UpdateItemInput) (*model.MenuItem, error)
	DeleteItem(ctx context.Context, s *auth.Session, id string) error
	ReorderItems(ctx context.Context, s *auth.Session, restaurantID string, ids []string) error

	// UploadItemImage stores a photo and records its URL. The object is removed again when the row update fails.
	UploadItemImage(ctx context.Context, s *auth.Session, id string, up Upload) (*model.MenuItem, error)
}

type menuService struct {
	restaurants repository.RestaurantRepository
	categories  repository.CategoryRepository
	items       repository.ItemRepository
	images      storage.Storage
	log         *logging.Logger
}

// NewMenuService constructs a MenuService. images is the bucket for item photos.
func NewMenuService(
	restaurants repository.RestaurantRepository,
	categories repository.CategoryRepository,
	items repository.ItemRepository,
	images storage.Storage,
	log *logging.Logger,
) MenuService {
	if log == nil {
		log = logging.Discard()
	}
	return &menuService{
		restaurants: restaurants,
		categories:  categories,
		items:       items,
		images:      images,
		log:         log.With("menu_service"),
	}
}

// authorize loads a restaurant and checks the caller may edit it.
func (s *menuService) authorize(ctx context.Context, sess *auth.Session, restaurantID string) (*model.Restaurant, error) {
	if restaurantID == "" {
		return nil, ErrIDRequired
	}
	r, err := s.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, translate(err, "restaurant")
	}
	if !sess.CanEdit(r) {
		return nil, ErrForbidden
	}
	return r, nil
}

func (s *menuService) category(ctx context.Context, id string) (*model.MenuCategory, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "category")
	}
	return c, nil
}

func (s *menuService) item(ctx context.Context, id string) (*model.MenuItem, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	it, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "item")
	}
	return it, nil
}

func (s *menuService) Categories(ctx context.Context, restaurantID string) ([]model.MenuCategory, error) {
	if restaurantID == "" {
		return nil, ErrIDRequired
	}
	return s.categories.ListByRestaurant(ctx, restaurantID)
}

func (s *menuService) CategoryBySlug(ctx context.Context, restaurantID, slug string) (*model.MenuCategory, error) {
	if restaurantID == "" || slug == "" {
		return nil, ErrIDRequired
	}
	c, err := s.categories.FindBySlug(ctx, restaurantID, slug)
	if err != nil {
		return nil, translate(err, "category")
	}
	return c, nil
}

func (s *menuService) CreateCategory(ctx context.Context, sess *auth.Session, restaurantID string, in model.CreateCategoryInput) (*model.MenuCategory, error) {
	if _, err := s.authorize(ctx, sess, restaurantID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	slug, err := categorySlug(in.Slug, name)
	if err != nil {
		return nil, err
	}

	order := 0
	if in.Order != nil {
		order = *in.Order
	} else {
		n, err := s.categories.Count(ctx, restaurantID)
		if err != nil {
			return nil, err
		}
		order = n + 1
	}

	c, err := s.categories.Create(ctx, &model.MenuCategory{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Name:         name,
		Slug:         slug,
		Order:        order,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, translate(err, "category")
	}
	return c, nil
}

func (s *menuService) UpdateCategory(ctx context.Context, sess *auth.Session, id string, in model.UpdateCategoryInput) (*model.MenuCategory, error) {
	c, err := s.category(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, sess, c.RestaurantID); err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("name is required")
		}
		c.Name = name
	}
	if in.Slug != nil {
		slug, err := categorySlug(*in.Slug, c.Name)
		if err != nil {
			return nil, err
		}
		c.Slug = slug
	}
	if in.Order != nil {
		c.Order = *in.Order
	}

	updated, err := s.categories.Update(ctx, c)
	if err != nil {
		return nil, translate(err, "category")
	}
	return updated, nil
}

func (s *menuService) DeleteCategory(ctx context.Context, sess *auth.Session, id string) error {
	c, err := s.category(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.authorize(ctx, sess, c.RestaurantID); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		s.log.Error("delete category failed", err, logging.Fields{"category_id": id})
		return err
	}
	return nil
}

func (s *menuService) ReorderCategories(ctx context.Context, sess *auth.Session, restaurantID string, ids []string) error {
	if _, err := s.authorize(ctx, sess, restaurantID); err != nil {
		return err
	}
	if err := s.categories.UpdateOrder(ctx, restaurantID, ids); err != nil {
		s.log.Error("reorder categories failed", err, logging.Fields{"restaurant_id": restaurantID})
		return translate(err, "category")
	}
	return nil
}

func (s *menuService) Items(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	if restaurantID == "" {
		return nil, ErrIDRequired
	}
	return s.items.ListByRestaurant(ctx, restaurantID, repository.ItemFilter{})
}

func (s *menuService) ItemsByCategory(ctx context.Context, categoryID string, availableOnly bool) ([]model.MenuItem, error) {
	if categoryID == "" {
		return nil, ErrIDRequired
	}
	return s.items.ListByCategory(ctx, categoryID, repository.ItemFilter{AvailableOnly: availableOnly})
}

func (s *menuService) CreateItem(ctx context.Context, sess *auth.Session, categoryID string, in model.CreateItemInput) (*model.MenuItem, error) {
	c, err := s.category(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, sess, c.RestaurantID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if in.Price < 0 {
		return nil, invalid("price must not be negative")
	}
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	it, err := s.items.Create(ctx, &model.MenuItem{
		ID:           uuid.New().String(),
		RestaurantID: c.RestaurantID,
		CategoryID:   c.ID,
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		ImageURL:     in.ImageURL,
		IsAvailable:  available,
		Order:        in.Order,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, translate(err, "item")
	}
	return it, nil
}

func (s *menuService) UpdateItem(ctx context.Context, sess *auth.Session, id string, in model.UpdateItemInput) (*model.MenuItem, error) {
	it, err := s.item(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, sess, it.RestaurantID); err != nil {
		return nil, err
	}

	if in.CategoryID != nil && *in.CategoryID != it.CategoryID {
		c, err := s.category(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if c.RestaurantID != it.RestaurantID {
			return nil, invalid("category %s belongs to another restaurant", c.ID)
		}
		it.CategoryID = c.ID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("name is required")
		}
		it.Name = name
	}
	if in.Description != nil {
		it.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, invalid("price must not be negative")
		}
		it.Price = *in.Price
	}
	if in.ImageURL != nil {
		it.ImageURL = *in.ImageURL
	}
	if in.IsAvailable != nil {
		it.IsAvailable = *in.IsAvailable
	}
	if in.Order != nil {
		it.Order = *in.Order
	}

	updated, err := s.items.Update(ctx, it)
	if err != nil {
		return nil, translate(err, "item")
	}
	return updated, nil
}

func (s *menuService) DeleteItem(ctx context.Context, sess *auth.Session, id string) error {
	it, err := s.item(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.authorize(ctx, sess, it.RestaurantID); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		s.log.Error("delete item failed", err, logging.Fields{"item_id": id})
		return err
	}
	return nil
}

func (s *menuService) ReorderItems(ctx context.Context, sess *auth.Session, restaurantID string, ids []string) error {
	if _, err := s.authorize(ctx, sess, restaurantID); err != nil {
		return err
	}
	if err := s.items.UpdateOrder(ctx, restaurantID, ids); err != nil {
		s.log.Error("reorder items failed", err, logging.Fields{"restaurant_id": restaurantID})
		return translate(err, "item")
	}
	return nil
}

func (s *menuService) UploadItemImage(ctx context.Context, sess *auth.Session, id string, up Upload) (*model.MenuItem, error) {
	if err := up.validate(); err != nil {
		return nil, err
	}
	it, err := s.item(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, sess, it.RestaurantID); err != nil {
		return nil, err
	}

	key := objectKey(it.RestaurantID, it.ID+"-", up.Filename)
	info, err := s.images.Put(ctx, key, up.Reader, storage.PutObjectOptions{
		Size:        up.Size,
		ContentType: up.ContentType,
		Metadata:    map[string]string{"item-id": it.ID},
	})
	if err != nil {
		s.log.Error("item image upload failed", err, logging.Fields{"item_id": it.ID})
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	it.ImageURL = info.URL
	if it.ImageURL == "" {
		it.ImageURL = s.images.PublicURL(key)
	}
	updated, err := s.items.Update(ctx, it)
	if err != nil {
		if delErr := s.images.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", translate(err, "item"))
	}
	return updated, nil
}

func categorySlug(raw, name string) (string, error) {
	slug := strings.TrimSpace(raw)
	if slug == "" {
		slug = model.Slugify(name)
	}
	if !model.ValidSlug(slug) {
		return "", invalid("slug %q must be lowercase letters, digits and dashes", slug)
	}
	return slug, nil
}
