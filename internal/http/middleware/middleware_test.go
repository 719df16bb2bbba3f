package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menucup/internal/auth"
	"menucup/internal/model"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString(RequestIDFrom(c))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})

	t.Run("should replace oversized request id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))

		resp, _ := app.Test(req)

		rid := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, rid)
		assert.Len(t, rid, 36)
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	loc := time.UTC

	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, loc))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.Equal(t, "info", logData["level"])
	assert.Equal(t, "http", logData["component"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
	assert.NotContains(t, logData, "trace_id")
}

func TestLogger_ErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(LoggerWithWriter(&buf, time.UTC))
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	app.Test(httptest.NewRequest("GET", "/boom", nil))

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, float64(fiber.StatusInternalServerError), logData["status"])
	assert.Equal(t, "error", logData["level"])
}

type fakeAuthenticator struct {
	sessions map[string]*auth.Session
	err      error
}

func (f fakeAuthenticator) Authenticate(_ context.Context, raw string) (*auth.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.sessions[raw]; ok {
		return s, nil
	}
	return nil, auth.ErrInvalidToken
}

func TestRequireSession(t *testing.T) {
	owner := &auth.Session{UserID: "u1", Role: model.RoleOwner}
	a := fakeAuthenticator{sessions: map[string]*auth.Session{"good": owner}}

	api := fiber.New()
	api.Use(RequireSession(a, SessionOptions{CookieName: "sb-access-token"}))
	api.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(SessionFrom(c).UserID)
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer good")
		resp, _ := api.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, "u1", buf.String())
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: "good"})
		resp, _ := api.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing token", func(t *testing.T) {
		resp, _ := api.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer forged")
		resp, _ := api.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic abc")
		resp, _ := api.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("role lookup failure is a server error", func(t *testing.T) {
		app := fiber.New()
		app.Use(RequireSession(fakeAuthenticator{err: errors.New("resolve role: db down")}, SessionOptions{}))
		app.Get("/me", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer good")
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("pages redirect to login", func(t *testing.T) {
		pages := fiber.New()
		pages.Use(RequireSession(a, SessionOptions{LoginURL: "/login"}))
		pages.Get("/dashboard", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

		resp, _ := pages.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login?next=%2Fdashboard", resp.Header.Get("Location"))
	})
}

func TestLocale(t *testing.T) {
	app := fiber.New()
	app.Use(Locale([]string{"en", "mk"}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(LocaleFrom(c))
	})

	tests := []struct {
		name   string
		cookie string
		accept string
		want   string
	}{
		{"default", "", "", "en"},
		{"cookie wins", "mk", "en-US", "mk"},
		{"unsupported cookie falls through", "sr", "mk-MK,mk;q=0.9", "mk"},
		{"accept-language", "", "mk-MK,mk;q=0.9,en;q=0.8", "mk"},
		{"unsupported accept-language", "", "de-DE", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LocaleCookie, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			resp, _ := app.Test(req)

			buf := new(bytes.Buffer)
			buf.ReadFrom(resp.Body)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.want, resp.Header.Get("Content-Language"))
		})
	}
}
