// Package menubuilder holds the dashboard state of one signed-in user: the visible
// restaurants, the selected restaurant's categories and items, search and filter,
// and the local ordering that is persisted to the backend.
package menubuilder

import (
	"context"
	"errors"
	"strings"
	"sync"

	"menucup/internal/auth"
	"menucup/internal/logging"
	"menucup/internal/model"
	"menucup/internal/service"
)

// FilterAll is the active filter that matches every category.
const FilterAll = "all"

// PersistMode selects when a local reorder reaches the backend.
type PersistMode string

const (
	// PersistImmediate saves the new order after every move and reverts the move on failure.
	PersistImmediate PersistMode = "immediate"
	// PersistExplicit only marks the order dirty until SaveOrder or DiscardOrder.
	PersistExplicit PersistMode = "explicit"
)

// Move directions for MoveItem.
const (
	Up   = "up"
	Down = "down"
)

var (
	ErrNoRestaurant      = errors.New("no restaurant selected")
	ErrUnknownRestaurant = errors.New("restaurant is not visible to this session")
	ErrUnknownCategory   = errors.New("category is not part of the selected restaurant")
	ErrUnknownItem       = errors.New("item is not part of the selected restaurant")
	ErrBadDirection      = errors.New(`direction must be "up" or "down"`)
)

// ActionResult reports the outcome of a builder action. Local state changes only when Success is true.
type ActionResult struct {
	Success bool  `json:"success"`
	Err     error `json:"-"`
}

func succeeded() ActionResult { return ActionResult{Success: true} }

func failed(err error) ActionResult { return ActionResult{Err: err} }

// Restaurants lists the restaurants a session may manage.
type Restaurants interface {
	ListVisible(ctx context.Context, s *auth.Session) ([]model.Restaurant, error)
}

// Menu is the remote side of category and item edits.
type Menu interface {
	Categories(ctx context.Context, restaurantID string) ([]model.MenuCategory, error)
	Items(ctx context.Context, restaurantID string) ([]model.MenuItem, error)
	CreateCategory(ctx context.Context, s *auth.Session, restaurantID string, in model.CreateCategoryInput) (*model.MenuCategory, error)
	UpdateCategory(ctx context.Context, s *auth.Session, id string, in model.UpdateCategoryInput) (*model.MenuCategory, error)
	DeleteCategory(ctx context.Context, s *auth.Session, id string) error
	ReorderCategories(ctx context.Context, s *auth.Session, restaurantID string, ids []string) error
	CreateItem(ctx context.Context, s *auth.Session, categoryID string, in model.CreateItemInput) (*model.MenuItem, error)
	UpdateItem(ctx context.Context, s *auth.Session, id string, in model.UpdateItemInput) (*model.MenuItem, error)
	DeleteItem(ctx context.Context, s *auth.Session, id string) error
	ReorderItems(ctx context.Context, s *auth.Session, restaurantID string, ids []string) error
	UploadItemImage(ctx context.Context, s *auth.Session, id string, up service.Upload) (*model.MenuItem, error)
}

// State is a read-only snapshot of a Builder.
type State struct {
	Restaurants   []model.Restaurant   `json:"restaurants"`
	Selected      *model.Restaurant    `json:"selected_restaurant"`
	Categories    []model.MenuCategory `json:"categories"`
	Items         []model.MenuItem     `json:"items"`
	FilteredItems []model.MenuItem     `json:"filtered_items"`
	SearchTerm    string               `json:"search_term"`
	ActiveFilter  string               `json:"active_filter"`
	OrderDirty    bool                 `json:"order_dirty"`
	PersistMode   PersistMode          `json:"persist_mode"`
}

// Builder is the menu builder state of one session. Actions are serialized.
type Builder struct {
	mu          sync.Mutex
	session     *auth.Session
	restaurants Restaurants
	menu        Menu
	mode        PersistMode
	log         *logging.Logger

	list       []model.Restaurant
	selected   *model.Restaurant
	categories []model.MenuCategory
	items      []model.MenuItem
	search     string
	filter     string
	dirty      bool
}

// New returns an empty builder for session s.
func New(s *auth.Session, restaurants Restaurants, menu Menu, mode PersistMode, log *logging.Logger) *Builder {
	if mode != PersistExplicit {
		mode = PersistImmediate
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Builder{
		session:     s,
		restaurants: restaurants,
		menu:        menu,
		mode:        mode,
		log:         log.With("menubuilder"),
		filter:      FilterAll,
	}
}

func (b *Builder) setSession(s *auth.Session) {
	b.mu.Lock()
	b.session = s
	b.mu.Unlock()
}

// State returns a snapshot that shares no slices with the builder.
func (b *Builder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	st := State{
		Restaurants:   append([]model.Restaurant{}, b.list...),
		Categories:    append([]model.MenuCategory{}, b.categories...),
		Items:         append([]model.MenuItem{}, b.items...),
		FilteredItems: b.filteredItems(),
		SearchTerm:    b.search,
		ActiveFilter:  b.filter,
		OrderDirty:    b.dirty,
		PersistMode:   b.mode,
	}
	if b.selected != nil {
		sel := *b.selected
		st.Selected = &sel
	}
	return st
}

// FetchRestaurants reloads the restaurants visible to the session, newest first.
// A selection that is no longer visible is cleared.
func (b *Builder) FetchRestaurants(ctx context.Context) ActionResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	list, err := b.restaurants.ListVisible(ctx, b.session)
	if err != nil {
		b.log.Error("fetch restaurants failed", err, b.fields())
		return failed(err)
	}
	b.list = list
	if b.selected != nil {
		if r, ok := b.findRestaurant(b.selected.ID); ok {
			b.selected = &r
		} else {
			b.clearSelection()
		}
	}
	return succeeded()
}

// SelectRestaurant loads the categories and items of a visible restaurant and
// resets search and filter. Nothing changes when loading fails.
func (b *Builder) SelectRestaurant(ctx context.Context, id string) ActionResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.findRestaurant(id)
	if !ok {
		return failed(ErrUnknownRestaurant)
	}
	cats, items, err := b.load(ctx, r.ID)
	if err != nil {
		return failed(err)
	}

	b.selected = &r
	b.categories = cats
	b.items = items
	b.search = ""
	b.filter = FilterAll
	b.dirty = false
	return succeeded()
}

// SetSearchTerm changes the case-insensitive name filter.
func (b *Builder) SetSearchTerm(term string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.search = term
}

// SetActiveFilter selects FilterAll or the id of a loaded category.
func (b *Builder) SetActiveFilter(filter string) ActionResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if filter == "" {
		filter = FilterAll
	}
	if filter != FilterAll && b.categoryIndex(filter) < 0 {
		return failed(ErrUnknownCategory)
	}
	b.filter = filter
	return succeeded()
}

// FilteredItems returns the items whose name contains the search term and whose
// category matches the active filter, in display order.
func (b *Builder) FilteredItems() []model.MenuItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filteredItems()
}

func (b *Builder) filteredItems() []model.MenuItem {
	term := strings.ToLower(b.search)
	out := make([]model.MenuItem, 0, len(b.items))
	for _, it := range b.items {
		if !strings.Contains(strings.ToLower(it.Name), term) {
			continue
		}
		if b.filter != FilterAll && it.CategoryID != b.filter {
			continue
		}
		out = append(out, it)
	}
	return out
}

// DeleteItem deletes remotely, then drops the item locally.
func (b *Builder) DeleteItem(ctx context.Context, id string) ActionResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.menu.DeleteItem(ctx, b.session, id); err != nil {
		b.log.Error("delete item failed", err, b.fields(logging.Fields{"item_id": id}))
		return failed(err)
	}
	b.items = removeItems(b.items, func(it model.MenuItem) bool { return it.ID == id })
	return succeeded()
}

// DeleteCategory deletes remotely, then drops the category and its items locally.
// Deleting the active filter resets it to FilterAll.
func (b *Builder) DeleteCategory(ctx context.Context, id string) ActionResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.menu.DeleteCategory(ctx, b.session, id); err != nil {
		b.log.Error("delete category failed", err, b.fields(logging.Fields{"category_id": id}))
		return failed(err)
	}
	if i := b.categoryIndex(id); i >= 0 {
		b.categories = append(b.categories[:i:i], b.categories[i+1:]...)
	}
	b.items = removeItems(b.items, func(it model.MenuItem) bool { return it.CategoryID == id })
	if b.filter == id {
		b.filter = FilterAll
	}
	return succeeded()
}

// MoveItem swaps the item at index with its neighbour in direction.
// Moving past either end is a successful no-op.
func (b *Builder) MoveItem(ctx context.Context, index int, direction string) ActionResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	var target int
	switch direction {
	case Up:
		target = index - 1
	case Down:
		target = index + 1
	default:
		return failed(ErrBadDirection)
	}
	if index < 0 || index >= len(b.items) || target < 0 || target >= len(b.items) {
		return succeeded()
	}

	prev := append([]model.MenuItem{}, b.items...)
	b.items[index], b.items[target] = b.items[target], b.items[index]
	return b.persistItems(ctx, prev)
}

// MoveCategory moves the category at from to position to, shifting the ones between.
// Out of range positions are a successful no-op.
func (b *Builder) MoveCategory(ctx context.Context, from, to int) ActionResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.categories)
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return succeeded()
	}

	prev := append([]model.MenuCategory{}, b.categories...)
	moved := b.categories[from]
	rest := append(append([]model.MenuCategory{}, b.categories[:from]...), b.categories[from+1:]...)
	next := make([]model.MenuCategory, 0, n)
	next = append(next, rest[:to]...)
	next = append(next, moved)
	next = append(next, rest[to:]...)
	b.categories = next
	return b.persistCategories(ctx, prev)
}

func (b *Builder) persistItems(ctx context.Context, prev []model.MenuItem) ActionResult {
	if b.mode == PersistExplicit {
		b.dirty = true
		return succeeded()
	}
	if b.selected == nil {
		b.items = prev
		return failed(ErrNoRestaurant)
	}
	if err := b.menu.ReorderItems(ctx, b.session, b.selected.ID, itemIDs(b.items)); err != nil {
		b.log.Error("persist item order failed", err, b.fields())
		b.items = prev
		return failed(err)
	}
	renumberItems(b.items)
	return succeeded()
}

func (b *Builder) persistCategories(ctx context.Context, prev []model.MenuCategory) ActionResult {
	if b.mode == PersistExplicit {
		b.dirty = true
		return succeeded()
	}
	if b.selected == nil {
		b.categories = prev
		return failed(ErrNoRestaurant)
	}
	if err := b.menu.ReorderCategories(ctx, b.session, b.selected.ID, categoryIDs(b.categories)); err != nil {
		b.log.Error("persist category order failed", err, b.fields())
		b.categories = prev
		return failed(err)
	}
	renumberCategories(b.categories)
	return succeeded()
}

// SaveOrder persists the local category and item order. The order stays dirty when saving fails.
func (b *Builder) SaveOrder(ctx context.Context) ActionResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.selected == nil {
		return failed(ErrNoRestaurant)
	}
	if !b.dirty {
		return succeeded()
	}
	if err := b.menu.ReorderCategories(ctx, b.session, b.selected.ID, categoryIDs(b.categories)); err != nil {
		b.log.Error("save category order failed", err, b.fields())
		return failed(err)
	}
	if err := b.menu.ReorderItems(ctx, b.session, b.selected.ID, itemIDs(b.items)); err != nil {
		b.log.Error("save item order failed", err, b.fields())
		return failed(err)
	}
	renumberCategories(b.categories)
	renumberItems(b.items)
	b.dirty = false
	return succeeded()
}

// DiscardOrder reloads categories and items from the backend and clears the dirty flag.
func (b *Builder) DiscardOrder(ctx context.Context) ActionResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.selected == nil {
		return failed(ErrNoRestaurant)
	}
	cats, items, err := b.load(ctx, b.selected.ID)
	if err != nil {
		return failed(err)
	}
	b.categories = cats
	b.items = items
	b.dirty = false
	if b.filter != FilterAll && b.categoryIndex(b.filter) < 0 {
		b.filter = FilterAll
	}
	return succeeded()
}

// AddCategory creates a category in the selected restaurant and appends it locally.
func (b *Builder) AddCategory(ctx context.Context, in model.CreateCategoryInput) (*model.MenuCategory, ActionResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.selected == nil {
		return nil, failed(ErrNoRestaurant)
	}
	c, err := b.menu.CreateCategory(ctx, b.session, b.selected.ID, in)
	if err != nil {
		return nil, failed(err)
	}
	b.categories = append(b.categories, *c)
	return c, succeeded()
}

// RenameCategory updates a loaded category and replaces it locally.
func (b *Builder) RenameCategory(ctx context.Context, id string, in model.UpdateCategoryInput) (*model.MenuCategory, ActionResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.categoryIndex(id)
	if i < 0 {
		return nil, failed(ErrUnknownCategory)
	}
	c, err := b.menu.UpdateCategory(ctx, b.session, id, in)
	if err != nil {
		return nil, failed(err)
	}
	b.categories[i] = *c
	return c, succeeded()
}

// AddItem creates an item in a loaded category and appends it locally.
func (b *Builder) AddItem(ctx context.Context, categoryID string, in model.CreateItemInput) (*model.MenuItem, ActionResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.categoryIndex(categoryID) < 0 {
		return nil, failed(ErrUnknownCategory)
	}
	it, err := b.menu.CreateItem(ctx, b.session, categoryID, in)
	if err != nil {
		return nil, failed(err)
	}
	b.items = append(b.items, *it)
	return it, succeeded()
}

// UpdateItem updates a loaded item and replaces it locally.
func (b *Builder) UpdateItem(ctx context.Context, id string, in model.UpdateItemInput) (*model.MenuItem, ActionResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.itemIndex(id)
	if i < 0 {
		return nil, failed(ErrUnknownItem)
	}
	it, err := b.menu.UpdateItem(ctx, b.session, id, in)
	if err != nil {
		return nil, failed(err)
	}
	b.items[i] = *it
	return it, succeeded()
}

// SetItemImage uploads a photo for a loaded item and replaces it locally.
func (b *Builder) SetItemImage(ctx context.Context, id string, up service.Upload) (*model.MenuItem, ActionResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.itemIndex(id)
	if i < 0 {
		return nil, failed(ErrUnknownItem)
	}
	it, err := b.menu.UploadItemImage(ctx, b.session, id, up)
	if err != nil {
		return nil, failed(err)
	}
	b.items[i] = *it
	return it, succeeded()
}

func (b *Builder) load(ctx context.Context, restaurantID string) ([]model.MenuCategory, []model.MenuItem, error) {
	cats, err := b.menu.Categories(ctx, restaurantID)
	if err != nil {
		b.log.Error("load categories failed", err, b.fields(logging.Fields{"restaurant_id": restaurantID}))
		return nil, nil, err
	}
	items, err := b.menu.Items(ctx, restaurantID)
	if err != nil {
		b.log.Error("load items failed", err, b.fields(logging.Fields{"restaurant_id": restaurantID}))
		return nil, nil, err
	}
	return cats, items, nil
}

func (b *Builder) clearSelection() {
	b.selected = nil
	b.categories = nil
	b.items = nil
	b.search = ""
	b.filter = FilterAll
	b.dirty = false
}

func (b *Builder) findRestaurant(id string) (model.Restaurant, bool) {
	for _, r := range b.list {
		if r.ID == id {
			return r, true
		}
	}
	return model.Restaurant{}, false
}

func (b *Builder) categoryIndex(id string) int {
	for i, c := range b.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (b *Builder) itemIndex(id string) int {
	for i, it := range b.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (b *Builder) fields(extra ...logging.Fields) logging.Fields {
	f := logging.Fields{}
	if b.session != nil {
		f["user_id"] = b.session.UserID
	}
	if b.selected != nil {
		f["restaurant_id"] = b.selected.ID
	}
	for _, e := range extra {
		for k, v := range e {
			f[k] = v
		}
	}
	return f
}

func removeItems(items []model.MenuItem, drop func(model.MenuItem) bool) []model.MenuItem {
	out := make([]model.MenuItem, 0, len(items))
	for _, it := range items {
		if !drop(it) {
			out = append(out, it)
		}
	}
	return out
}

func itemIDs(items []model.MenuItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func categoryIDs(cats []model.MenuCategory) []string {
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	return ids
}

// renumberItems mirrors the order values written by a successful reorder.
func renumberItems(items []model.MenuItem) {
	for i := range items {
		items[i].Order = i + 1
	}
}

func renumberCategories(cats []model.MenuCategory) {
	for i := range cats {
		cats[i].Order = i + 1
	}
}
