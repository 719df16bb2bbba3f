package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"menucup/internal/auth"
	"menucup/internal/logging"
	"menucup/internal/model"
	"menucup/internal/repository"
	"menucup/internal/storage"
)

// qrSize is the edge length in pixels of generated QR codes, large enough for print.
const qrSize = 1024

// RestaurantService defines the use cases for restaurants.
type RestaurantService interface {
	// ListVisible returns every restaurant for admins and the caller's own otherwise, newest first.
	ListVisible(ctx context.Context, s *auth.Session) ([]model.Restaurant, error)

	// GetBySlug returns a restaurant for public display.
	GetBySlug(ctx context.Context, slug string) (*model.Restaurant, error)

	// Editable returns the restaurant if the caller may change it.
	Editable(ctx context.Context, s *auth.Session, slug string) (*model.Restaurant, error)

	// Create stores a new restaurant owned by the caller with the stock theme.
	Create(ctx context.Context, s *auth.Session, in model.CreateRestaurantInput) (*model.Restaurant, error)

	UpdateSettings(ctx context.Context, s *auth.Session, slug string, in model.RestaurantSettings) (*model.Restaurant, error)

	// UploadAsset stores a logo or background image and records its URL.
	// The object is removed again when the row update fails.
	UploadAsset(ctx context.Context, s *auth.Session, slug string, kind model.AssetKind, up Upload) (*model.Restaurant, error)

	// GenerateQRCode renders the public menu URL as a PNG and records its URL.
	GenerateQRCode(ctx context.Context, s *auth.Session, slug string) (*model.Restaurant, error)

	Delete(ctx context.Context, s *auth.Session, slug string) error
}

type restaurantService struct {
	repo    repository.RestaurantRepository
	assets  storage.Storage
	baseURL string
	log     *logging.Logger
}

// NewRestaurantService constructs a RestaurantService. baseURL prefixes public menu links.
func NewRestaurantService(repo repository.RestaurantRepository, assets storage.Storage, baseURL string, log *logging.Logger) RestaurantService {
	if log == nil {
		log = logging.Discard()
	}
	return &restaurantService{
		repo:    repo,
		assets:  assets,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log.With("restaurant_service"),
	}
}

func (s *restaurantService) ListVisible(ctx context.Context, sess *auth.Session) ([]model.Restaurant, error) {
	if sess == nil {
		return nil, ErrForbidden
	}
	f := repository.RestaurantFilter{OwnerID: sess.UserID}
	if sess.IsAdmin() {
		f.OwnerID = ""
	}
	list, err := s.repo.List(ctx, f)
	if err != nil {
		s.log.Error("list restaurants failed", err, logging.Fields{"user_id": sess.UserID})
		return nil, err
	}
	return list, nil
}

func (s *restaurantService) GetBySlug(ctx context.Context, slug string) (*model.Restaurant, error) {
	if slug == "" {
		return nil, ErrIDRequired
	}
	r, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, translate(err, "restaurant")
	}
	return r, nil
}

func (s *restaurantService) Editable(ctx context.Context, sess *auth.Session, slug string) (*model.Restaurant, error) {
	r, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !sess.CanEdit(r) {
		return nil, ErrForbidden
	}
	return r, nil
}

func (s *restaurantService) Create(ctx context.Context, sess *auth.Session, in model.CreateRestaurantInput) (*model.Restaurant, error) {
	if sess == nil {
		return nil, ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = model.Slugify(name)
	}
	if !model.ValidSlug(slug) {
		return nil, invalid("slug %q must be lowercase letters, digits and dashes", slug)
	}
	if model.ReservedSlug(slug) {
		return nil, invalid("slug %q is reserved", slug)
	}

	stored, err := s.repo.Create(ctx, &model.Restaurant{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		OwnerID:   sess.UserID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, translate(err, "restaurant")
	}
	s.log.Info("restaurant created", logging.Fields{"restaurant_id": stored.ID, "slug": stored.Slug, "owner_id": sess.UserID})
	return stored, nil
}

func (s *restaurantService) UpdateSettings(ctx context.Context, sess *auth.Session, slug string, in model.RestaurantSettings) (*model.Restaurant, error) {
	r, err := s.Editable(ctx, sess, slug)
	if err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, invalid("name is required")
	}
	if in.Appearance != "" && in.Appearance != model.AppearanceMinimal && in.Appearance != model.AppearanceVisual {
		return nil, invalid("appearance must be %q or %q", model.AppearanceMinimal, model.AppearanceVisual)
	}
	for _, c := range []struct{ field, value string }{
		{"accent_color", in.AccentColor},
		{"background_color", in.BackgroundColor},
		{"card_bg_color", in.CardBgColor},
		{"text_color", in.TextColor},
		{"muted_text_color", in.MutedTextColor},
	} {
		if c.value != "" && !model.ValidHexColor(c.value) {
			return nil, invalid("%s %q must be a #rgb or #rrggbb colour", c.field, c.value)
		}
	}

	updated, err := s.repo.UpdateSettings(ctx, r.ID, in.WithDefaults())
	if err != nil {
		return nil, translate(err, "restaurant")
	}
	return updated, nil
}

func (s *restaurantService) UploadAsset(ctx context.Context, sess *auth.Session, slug string, kind model.AssetKind, up Upload) (*model.Restaurant, error) {
	var prefix string
	switch kind {
	case model.AssetLogo:
		prefix = "logo-"
	case model.AssetBackground:
		prefix = "bg-"
	default:
		return nil, invalid("asset kind %q cannot be uploaded", kind)
	}
	if err := up.validate(); err != nil {
		return nil, err
	}
	r, err := s.Editable(ctx, sess, slug)
	if err != nil {
		return nil, err
	}

	key := objectKey(r.ID, prefix, up.Filename)
	return s.storeAsset(ctx, r, kind, key, up)
}

func (s *restaurantService) GenerateQRCode(ctx context.Context, sess *auth.Session, slug string) (*model.Restaurant, error) {
	r, err := s.Editable(ctx, sess, slug)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(s.baseURL+"/"+r.Slug, qrcode.High, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}

	return s.storeAsset(ctx, r, model.AssetQRCode, r.Slug+"/qr-code.png", Upload{
		Reader:      bytes.NewReader(png),
		Filename:    "qr-code.png",
		ContentType: "image/png",
		Size:        int64(len(png)),
	})
}

// storeAsset uploads up under key and writes its URL into the column of kind.
// When the row update fails the object is deleted, unless the row already points
// at it: Put then only replaced an object that is still referenced.
func (s *restaurantService) storeAsset(ctx context.Context, r *model.Restaurant, kind model.AssetKind, key string, up Upload) (*model.Restaurant, error) {
	info, err := s.assets.Put(ctx, key, up.Reader, storage.PutObjectOptions{
		Size:        up.Size,
		ContentType: up.ContentType,
		Metadata:    map[string]string{"restaurant-id": r.ID},
	})
	if err != nil {
		s.log.Error("asset upload failed", err, logging.Fields{"restaurant_id": r.ID, "kind": string(kind)})
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	url := info.URL
	if url == "" {
		url = s.assets.PublicURL(key)
	}
	updated, err := s.repo.UpdateAsset(ctx, r.ID, kind, url)
	if err != nil {
		if r.AssetURL(kind) == url {
			s.log.Warn("asset row update failed, keeping referenced object", logging.Fields{"restaurant_id": r.ID, "key": key})
			return nil, fmt.Errorf("db save failed: %w", translate(err, "restaurant"))
		}
		if delErr := s.assets.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", translate(err, "restaurant"))
	}
	return updated, nil
}

func (s *restaurantService) Delete(ctx context.Context, sess *auth.Session, slug string) error {
	r, err := s.Editable(ctx, sess, slug)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, r.ID); err != nil {
		return err
	}
	s.log.Info("restaurant deleted", logging.Fields{"restaurant_id": r.ID, "slug": r.Slug})
	return nil
}
