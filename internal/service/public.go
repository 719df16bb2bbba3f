package service

import (
	"context"

	"menucup/internal/model"
	"menucup/internal/repository"
)

// PublicMenuService assembles guest-facing menus.
type PublicMenuService interface {
	// RestaurantMenu returns every category with its items. Unavailable items are
	// included, marked, only when the service was built with showUnavailable.
	RestaurantMenu(ctx context.Context, slug string) (*model.PublicMenu, error)

	// CategoryMenu returns one category with its available items only.
	CategoryMenu(ctx context.Context, slug, categorySlug string) (*model.PublicCategoryPage, error)
}

type publicMenuService struct {
	restaurants     repository.RestaurantRepository
	categories      repository.CategoryRepository
	items           repository.ItemRepository
	showUnavailable bool
}

func NewPublicMenuService(
	restaurants repository.RestaurantRepository,
	categories repository.CategoryRepository,
	items repository.ItemRepository,
	showUnavailable bool,
) PublicMenuService {
	return &publicMenuService{
		restaurants:     restaurants,
		categories:      categories,
		items:           items,
		showUnavailable: showUnavailable,
	}
}

func (s *publicMenuService) restaurant(ctx context.Context, slug string) (*model.Restaurant, error) {
	if slug == "" {
		return nil, ErrIDRequired
	}
	r, err := s.restaurants.FindBySlug(ctx, slug)
	if err != nil {
		return nil, translate(err, "restaurant")
	}
	return r, nil
}

func (s *publicMenuService) RestaurantMenu(ctx context.Context, slug string) (*model.PublicMenu, error) {
	r, err := s.restaurant(ctx, slug)
	if err != nil {
		return nil, err
	}
	cats, err := s.categories.ListByRestaurant(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByRestaurant(ctx, r.ID, repository.ItemFilter{AvailableOnly: !s.showUnavailable})
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]model.PublicItem, len(cats))
	for _, it := range items {
		byCategory[it.CategoryID] = append(byCategory[it.CategoryID], model.NewPublicItem(it))
	}
	sections := make([]model.PublicSection, 0, len(cats))
	for _, c := range cats {
		section := model.PublicSection{Category: c, Items: byCategory[c.ID]}
		if section.Items == nil {
			section.Items = []model.PublicItem{}
		}
		sections = append(sections, section)
	}

	return &model.PublicMenu{Restaurant: *r, Theme: model.ThemeOf(*r), Sections: sections}, nil
}

func (s *publicMenuService) CategoryMenu(ctx context.Context, slug, categorySlug string) (*model.PublicCategoryPage, error) {
	r, err := s.restaurant(ctx, slug)
	if err != nil {
		return nil, err
	}
	if categorySlug == "" {
		return nil, ErrIDRequired
	}
	c, err := s.categories.FindBySlug(ctx, r.ID, categorySlug)
	if err != nil {
		return nil, translate(err, "category")
	}
	items, err := s.items.ListByCategory(ctx, c.ID, repository.ItemFilter{AvailableOnly: true})
	if err != nil {
		return nil, err
	}

	out := make([]model.PublicItem, 0, len(items))
	for _, it := range items {
		if it.IsAvailable {
			out = append(out, model.NewPublicItem(it))
		}
	}
	return &model.PublicCategoryPage{Restaurant: *r, Theme: model.ThemeOf(*r), Category: *c, Items: out}, nil
}
