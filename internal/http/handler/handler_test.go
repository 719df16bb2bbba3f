package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"menucup/internal/auth"
	"menucup/internal/config"
	"menucup/internal/menubuilder"
	"menucup/internal/model"
	"menucup/internal/repository"
	repoMocks "menucup/internal/repository/mocks"
	"menucup/internal/service"
	serviceMocks "menucup/internal/service/mocks"
	"menucup/internal/web"
)

var (
	owner = &auth.Session{UserID: "u1", Email: "joe@example.com", Role: model.RoleOwner}

	joesBar   = &model.Restaurant{ID: "r1", Name: "Joe's Bar", Slug: "joes-bar", OwnerID: "u1"}
	cocktails = &model.MenuCategory{ID: "c2", RestaurantID: "r1", Name: "Cocktails", Slug: "cocktails", Order: 1}
	mojito    = model.MenuItem{ID: "i1", RestaurantID: "r1", CategoryID: "c2", Name: "Mojito", Price: 9.5, IsAvailable: true, Order: 1}
	negroni   = model.MenuItem{ID: "i2", RestaurantID: "r1", CategoryID: "c2", Name: "Negroni", Price: 11, IsAvailable: false, Order: 2}
)

type fakeSessions struct {
	signedOut []string
	onSignOut func(string)
}

func (f *fakeSessions) Authenticate(_ context.Context, raw string) (*auth.Session, error) {
	if raw == "owner-token" {
		return owner, nil
	}
	return nil, auth.ErrInvalidToken
}

func (f *fakeSessions) SignOut(userID string) {
	f.signedOut = append(f.signedOut, userID)
	if f.onSignOut != nil {
		f.onSignOut(userID)
	}
}

type testApp struct {
	app         *fiber.App
	restaurants *serviceMocks.MockRestaurantService
	menu        *serviceMocks.MockMenuService
	contact     *serviceMocks.MockContactService
	repoRests   *repoMocks.MockRestaurantRepository
	repoCats    *repoMocks.MockCategoryRepository
	repoItems   *repoMocks.MockItemRepository
	sessions    *fakeSessions
	builders    *menubuilder.Registry
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	pages, err := web.NewRenderer()
	require.NoError(t, err)

	ta := &testApp{
		restaurants: new(serviceMocks.MockRestaurantService),
		menu:        new(serviceMocks.MockMenuService),
		contact:     new(serviceMocks.MockContactService),
		repoRests:   new(repoMocks.MockRestaurantRepository),
		repoCats:    new(repoMocks.MockCategoryRepository),
		repoItems:   new(repoMocks.MockItemRepository),
		sessions:    &fakeSessions{},
	}
	ta.builders = menubuilder.NewRegistry(ta.restaurants, ta.menu, menubuilder.PersistImmediate, nil)
	ta.sessions.onSignOut = ta.builders.Drop

	ta.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(ta.app, Deps{
		Restaurants: ta.restaurants,
		Menu:        ta.menu,
		Public:      service.NewPublicMenuService(ta.repoRests, ta.repoCats, ta.repoItems, true),
		Contact:     ta.contact,
		Sessions:    ta.sessions,
		Builders:    ta.builders,
		Pages:       pages,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "# metrics")
		}),
		Auth:        config.AuthConfig{CookieName: "sb-access-token", LoginURL: "/login"},
		Locales:     []string{"en", "mk"},
		PersistMode: string(menubuilder.PersistImmediate),
	})
	return ta
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer owner-token")
	return req
}

func jsonRequest(method, target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublicPages(t *testing.T) {
	t.Run("category page lists only available items", func(t *testing.T) {
		ta := newTestApp(t)
		ta.repoRests.On("FindBySlug", mock.Anything, "joes-bar").Return(joesBar, nil)
		ta.repoCats.On("FindBySlug", mock.Anything, "r1", "cocktails").Return(cocktails, nil)
		ta.repoItems.On("ListByCategory", mock.Anything, "c2", repository.ItemFilter{AvailableOnly: true}).
			Return([]model.MenuItem{mojito, negroni}, nil)

		resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, "/joes-bar/cocktails", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		body := readBody(t, resp)
		assert.Contains(t, body, "Mojito")
		assert.Contains(t, body, "$9.50")
		assert.NotContains(t, body, "Negroni")
	})

	t.Run("full menu marks unavailable items", func(t *testing.T) {
		ta := newTestApp(t)
		ta.repoRests.On("FindBySlug", mock.Anything, "joes-bar").Return(joesBar, nil)
		ta.repoCats.On("ListByRestaurant", mock.Anything, "r1").Return([]model.MenuCategory{*cocktails}, nil)
		ta.repoItems.On("ListByRestaurant", mock.Anything, "r1", repository.ItemFilter{}).
			Return([]model.MenuItem{mojito, negroni}, nil)

		resp, _ := ta.app.Test(httptest.NewRequest(http.MethodGet, "/joes-bar", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, "Negroni")
		assert.Contains(t, body, "Coming soon")
	})

	t.Run("unknown restaurant renders not found", func(t *testing.T) {
		ta := newTestApp(t)
		ta.repoRests.On("FindBySlug", mock.Anything, "nope").Return(nil, sql.ErrNoRows)

		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		req.Header.Set("Accept-Language", "mk")
		resp, _ := ta.app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "Страницата не е пронајдена")
	})

	t.Run("menu json", func(t *testing.T) {
		ta := newTestApp(t)
		ta.repoRests.On("FindBySlug", mock.Anything, "joes-bar").Return(joesBar, nil)
		ta.repoCats.On("ListByRestaurant", mock.Anything, "r1").Return([]model.MenuCategory{*cocktails}, nil)
		ta.repoItems.On("ListByRestaurant", mock.Anything, "r1", repository.ItemFilter{}).
			Return([]model.MenuItem{mojito}, nil)

		resp, _ := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/restaurants/joes-bar/menu", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var menu model.PublicMenu
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&menu))
		require.Len(t, menu.Sections, 1)
		assert.Equal(t, "$9.50", menu.Sections[0].Items[0].PriceLabel)
	})
}

func TestLandingPage(t *testing.T) {
	ta := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "NEXT_LOCALE", Value: "mk"})
	resp, _ := ta.app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "mk", resp.Header.Get("Content-Language"))
	assert.Contains(t, readBody(t, resp), "Контактирајте нè")
}

func TestPublicAPI(t *testing.T) {
	t.Run("category items include unavailable ones", func(t *testing.T) {
		ta := newTestApp(t)
		ta.restaurants.On("GetBySlug", mock.Anything, "joes-bar").Return(joesBar, nil)
		ta.menu.On("CategoryBySlug", mock.Anything, "r1", "cocktails").Return(cocktails, nil)
		ta.menu.On("ItemsByCategory", mock.Anything, "c2", false).Return([]model.MenuItem{mojito, negroni}, nil)

		resp, _ := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/restaurants/joes-bar/categories/cocktails/items", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var items []model.MenuItem
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
		assert.Len(t, items, 2)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		ta := newTestApp(t)
		ta.restaurants.On("GetBySlug", mock.Anything, "nope").Return(nil, service.ErrNotFound)

		resp, _ := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/restaurants/nope/categories", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("backend failure hides details", func(t *testing.T) {
		ta := newTestApp(t)
		ta.restaurants.On("GetBySlug", mock.Anything, "joes-bar").Return(nil, errors.New("pq: connection refused"))

		resp, _ := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/restaurants/joes-bar", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.Equal(t, "internal server error", body.Error.Message)
	})
}

func TestRestaurantAPI(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		ta := newTestApp(t)

		resp, _ := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/restaurants", nil))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	})

	t.Run("lists visible restaurants", func(t *testing.T) {
		ta := newTestApp(t)
		ta.restaurants.On("ListVisible", mock.Anything, owner).Return([]model.Restaurant{*joesBar}, nil).Once()

		resp, _ := ta.app.Test(authed(httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var list []model.Restaurant
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		assert.Equal(t, "joes-bar", list[0].Slug)
		ta.restaurants.AssertExpectations(t)
	})

	t.Run("create", func(t *testing.T) {
		ta := newTestApp(t)
		in := model.CreateRestaurantInput{Name: "Joe's Bar"}
		ta.restaurants.On("Create", mock.Anything, owner, in).Return(joesBar, nil).Once()

		resp, _ := ta.app.Test(authed(jsonRequest(http.MethodPost, "/api/restaurants", in)))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		ta := newTestApp(t)
		ta.restaurants.On("Create", mock.Anything, owner, mock.Anything).
			Return(nil, fmt.Errorf("restaurant slug %w", service.ErrConflict)).Once()

		resp, _ := ta.app.Test(authed(jsonRequest(http.MethodPost, "/api/restaurants", model.CreateRestaurantInput{Name: "Joe's Bar"})))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		ta := newTestApp(t)
		req := authed(httptest.NewRequest(http.MethodPost, "/api/restaurants", strings.NewReader("{")))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := ta.app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})

	t.Run("delete by non-owner", func(t *testing.T) {
		ta := newTestApp(t)
		ta.restaurants.On("Delete", mock.Anything, owner, "cafe").Return(service.ErrForbidden).Once()

		resp, _ := ta.app.Test(authed(httptest.NewRequest(http.MethodDelete, "/api/restaurants/cafe", nil)))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Error.Code)
	})

	t.Run("qr code", func(t *testing.T) {
		ta := newTestApp(t)
		withQR := *joesBar
		withQR.QRCodeURL = "http://cdn/restaurant-assets/joes-bar/qr-code.png"
		ta.restaurants.On("GenerateQRCode", mock.Anything, owner, "joes-bar").Return(&withQR, nil).Once()

		resp, _ := ta.app.Test(authed(httptest.NewRequest(http.MethodPost, "/api/restaurants/joes-bar/qrcode", nil)))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var r model.Restaurant
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))
		assert.Equal(t, withQR.QRCodeURL, r.QRCodeURL)
	})
}

func multipartImage(t *testing.T, target, contentType string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="logo.PNG"`)
	h.Set("Content-Type", contentType)
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	part.Write([]byte("\x89PNG"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return authed(req)
}

func TestUploads(t *testing.T) {
	t.Run("restaurant logo", func(t *testing.T) {
		ta := newTestApp(t)
		ta.restaurants.On("UploadAsset", mock.Anything, owner, "joes-bar", model.AssetLogo,
			mock.MatchedBy(func(up service.Upload) bool {
				return up.Filename == "logo.PNG" && up.ContentType == "image/png" && up.Size == 4
			})).Return(joesBar, nil).Once()

		resp, _ := ta.app.Test(multipartImage(t, "/api/restaurants/joes-bar/assets/logo", "image/png"))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		ta.restaurants.AssertExpectations(t)
	})

	t.Run("rejected content type", func(t *testing.T) {
		ta := newTestApp(t)
		ta.menu.On("UploadItemImage", mock.Anything, owner, "i1", mock.Anything).
			Return(nil, fmt.Errorf("%w: content type is not an image", service.ErrValidation)).Once()

		resp, _ := ta.app.Test(multipartImage(t, "/api/items/i1/image", "text/plain"))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, resp).Error.Code)
	})

	t.Run("no file", func(t *testing.T) {
		ta := newTestApp(t)

		resp, _ := ta.app.Test(authed(httptest.NewRequest(http.MethodPost, "/api/items/i1/image", nil)))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})
}

func TestMenuAPI(t *testing.T) {
	t.Run("create category", func(t *testing.T) {
		ta := newTestApp(t)
		in := model.CreateCategoryInput{Name: "Cocktails"}
		ta.restaurants.On("Editable", mock.Anything, owner, "joes-bar").Return(joesBar, nil).Once()
		ta.menu.On("CreateCategory", mock.Anything, owner, "r1", in).Return(cocktails, nil).Once()

		resp, _ := ta.app.Test(authed(jsonRequest(http.MethodPost, "/api/restaurants/joes-bar/categories", in)))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		ta.menu.AssertExpectations(t)
	})

	t.Run("category of someone else's restaurant", func(t *testing.T) {
		ta := newTestApp(t)
		ta.restaurants.On("Editable", mock.Anything, owner, "cafe").Return(nil, service.ErrForbidden).Once()

		resp, _ := ta.app.Test(authed(httptest.NewRequest(http.MethodDelete, "/api/restaurants/cafe/categories/drinks", nil)))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		ta.menu.AssertNotCalled(t, "DeleteCategory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reorder categories", func(t *testing.T) {
		ta := newTestApp(t)
		ta.restaurants.On("Editable", mock.Anything, owner, "joes-bar").Return(joesBar, nil).Once()
		ta.menu.On("ReorderCategories", mock.Anything, owner, "r1", []string{"c2", "c1"}).Return(nil).Once()

		resp, _ := ta.app.Test(authed(jsonRequest(http.MethodPut, "/api/restaurants/joes-bar/categories/order", orderRequest{IDs: []string{"c2", "c1"}})))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("create item in category", func(t *testing.T) {
		ta := newTestApp(t)
		in := model.CreateItemInput{Name: "Mojito", Price: 9.5}
		ta.restaurants.On("Editable", mock.Anything, owner, "joes-bar").Return(joesBar, nil).Once()
		ta.menu.On("CategoryBySlug", mock.Anything, "r1", "cocktails").Return(cocktails, nil).Once()
		ta.menu.On("CreateItem", mock.Anything, owner, "c2", in).Return(&mojito, nil).Once()

		resp, _ := ta.app.Test(authed(jsonRequest(http.MethodPost, "/api/restaurants/joes-bar/categories/cocktails/items", in)))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("update item forbidden", func(t *testing.T) {
		ta := newTestApp(t)
		ta.menu.On("UpdateItem", mock.Anything, owner, "i9", mock.Anything).Return(nil, service.ErrForbidden).Once()

		resp, _ := ta.app.Test(authed(jsonRequest(http.MethodPatch, "/api/items/i9", map[string]any{"price": 12})))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("delete item", func(t *testing.T) {
		ta := newTestApp(t)
		ta.menu.On("DeleteItem", mock.Anything, owner, "i1").Return(nil).Once()

		resp, _ := ta.app.Test(authed(httptest.NewRequest(http.MethodDelete, "/api/items/i1", nil)))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestContact(t *testing.T) {
	t.Run("form post", func(t *testing.T) {
		ta := newTestApp(t)
		lead := model.Lead{FullName: "Ana", Email: "ana@example.com", CompanyName: "Bistro"}
		ta.contact.On("SubmitLead", mock.Anything, lead).Return(nil).Once()

		form := url.Values{"fullName": {"Ana"}, "email": {"ana@example.com"}, "companyName": {"Bistro"}}
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, _ := ta.app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body contactResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
	})

	t.Run("missing fields", func(t *testing.T) {
		ta := newTestApp(t)
		ta.contact.On("SubmitLead", mock.Anything, mock.Anything).Return(service.ErrValidation).Once()

		resp, _ := ta.app.Test(jsonRequest(http.MethodPost, "/api/contact", model.Lead{FullName: "Ana"}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body contactResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
	})
}

func TestDashboard(t *testing.T) {
	t.Run("redirects to login", func(t *testing.T) {
		ta := newTestApp(t)

		resp, _ := ta.app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login?next=%2Fdashboard", resp.Header.Get("Location"))
	})

	t.Run("lists restaurants with cookie session", func(t *testing.T) {
		ta := newTestApp(t)
		ta.restaurants.On("ListVisible", mock.Anything, owner).Return([]model.Restaurant{*joesBar}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: "owner-token"})
		resp, _ := ta.app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, `href="/joes-bar"`)
		assert.Contains(t, body, "joe@example.com")
	})

	t.Run("builder api answers 401", func(t *testing.T) {
		ta := newTestApp(t)

		resp, _ := ta.app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/api/state", nil))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func decodeBuilder(t *testing.T, resp *http.Response) builderResponse {
	t.Helper()
	var body builderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestBuilderAPI(t *testing.T) {
	ta := newTestApp(t)
	ta.restaurants.On("ListVisible", mock.Anything, owner).Return([]model.Restaurant{*joesBar}, nil)
	ta.menu.On("Categories", mock.Anything, "r1").Return([]model.MenuCategory{*cocktails}, nil)
	ta.menu.On("Items", mock.Anything, "r1").Return([]model.MenuItem{mojito, negroni}, nil)

	resp, _ := ta.app.Test(authed(httptest.NewRequest(http.MethodPost, "/dashboard/api/refresh", nil)))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ta.app.Test(authed(jsonRequest(http.MethodPost, "/dashboard/api/select", selectRequest{RestaurantID: "r1"})))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decodeBuilder(t, resp).State
	assert.Equal(t, "r1", st.Selected.ID)
	assert.Len(t, st.Items, 2)

	t.Run("search narrows filtered items", func(t *testing.T) {
		resp, _ := ta.app.Test(authed(jsonRequest(http.MethodPut, "/dashboard/api/search", searchRequest{Term: "NEG"})))

		body := decodeBuilder(t, resp)
		require.Len(t, body.State.FilteredItems, 1)
		assert.Equal(t, "Negroni", body.State.FilteredItems[0].Name)

		ta.app.Test(authed(jsonRequest(http.MethodPut, "/dashboard/api/search", searchRequest{Term: ""})))
	})

	t.Run("failed delete keeps items", func(t *testing.T) {
		ta.menu.On("DeleteItem", mock.Anything, owner, "i1").Return(service.ErrForbidden).Once()

		resp, _ := ta.app.Test(authed(httptest.NewRequest(http.MethodDelete, "/dashboard/api/items/i1", nil)))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		body := decodeBuilder(t, resp)
		assert.False(t, body.Success)
		assert.Equal(t, "FORBIDDEN", body.Error.Code)
		assert.Len(t, body.State.Items, 2)
	})

	t.Run("move item persists", func(t *testing.T) {
		ta.menu.On("ReorderItems", mock.Anything, owner, "r1", []string{"i2", "i1"}).Return(nil).Once()

		resp, _ := ta.app.Test(authed(jsonRequest(http.MethodPost, "/dashboard/api/items/move", moveItemRequest{Index: 1, Direction: "up"})))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Negroni", decodeBuilder(t, resp).State.Items[0].Name)
	})

	t.Run("bad direction", func(t *testing.T) {
		resp, _ := ta.app.Test(authed(jsonRequest(http.MethodPost, "/dashboard/api/items/move", moveItemRequest{Index: 0, Direction: "left"})))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown filter", func(t *testing.T) {
		resp, _ := ta.app.Test(authed(jsonRequest(http.MethodPut, "/dashboard/api/filter", filterRequest{Filter: "c9"})))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("logout drops builder state", func(t *testing.T) {
		require.Equal(t, 1, ta.builders.Len())

		resp, _ := ta.app.Test(authed(httptest.NewRequest(http.MethodPost, "/logout", nil)))

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
		assert.Equal(t, []string{"u1"}, ta.sessions.signedOut)
		assert.Equal(t, 0, ta.builders.Len())
	})
}

func TestRouting(t *testing.T) {
	ta := newTestApp(t)

	t.Run("not found route", func(t *testing.T) {
		resp, _ := ta.app.Test(httptest.NewRequest(http.MethodGet, "/a/b/c", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, _ := ta.app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("metrics are served before the restaurant catch-all", func(t *testing.T) {
		resp, _ := ta.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "# metrics", readBody(t, resp))
	})

	t.Run("health without a database", func(t *testing.T) {
		resp, _ := ta.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
