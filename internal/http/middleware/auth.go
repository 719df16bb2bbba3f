package middleware

import (
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"menucup/internal/auth"
)

// SessionLocalKey is the Fiber locals key holding the *auth.Session.
const SessionLocalKey = "session"

// Authenticator resolves a raw session token into a Session.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*auth.Session, error)
}

// SessionOptions configures RequireSession.
type SessionOptions struct {
	// CookieName is read when no Authorization header is present.
	CookieName string
	// LoginURL, when set, makes unauthenticated requests redirect there instead of failing with 401.
	LoginURL string
}

// RequireSession authenticates the request from "Authorization: Bearer" or the
// session cookie and stores the session in locals.
func RequireSession(a Authenticator, opts SessionOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := authenticate(c, a, opts.CookieName)
		if err != nil {
			if opts.LoginURL != "" {
				return c.Redirect(loginRedirect(opts.LoginURL, c.OriginalURL()), fiber.StatusSeeOther)
			}
			if errors.Is(err, auth.ErrNoToken) || errors.Is(err, auth.ErrInvalidToken) {
				return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
			}
			return err
		}
		c.Locals(SessionLocalKey, s)
		return c.Next()
	}
}

// SessionFrom returns the session stored by RequireSession, or nil.
func SessionFrom(c *fiber.Ctx) *auth.Session {
	s, _ := c.Locals(SessionLocalKey).(*auth.Session)
	return s
}

// SessionToken returns the raw token of the request without verifying it.
func SessionToken(c *fiber.Ctx, cookieName string) (string, error) {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if t := auth.BearerToken(h); t != "" {
			return t, nil
		}
		return "", auth.ErrInvalidToken
	}
	if cookieName != "" {
		if v := c.Cookies(cookieName); v != "" {
			return v, nil
		}
	}
	return "", auth.ErrNoToken
}

func authenticate(c *fiber.Ctx, a Authenticator, cookieName string) (*auth.Session, error) {
	raw, err := SessionToken(c, cookieName)
	if err != nil {
		return nil, err
	}
	return a.Authenticate(c.UserContext(), raw)
}

func loginRedirect(loginURL, next string) string {
	u, err := url.Parse(loginURL)
	if err != nil {
		return loginURL
	}
	q := u.Query()
	q.Set("next", next)
	u.RawQuery = q.Encode()
	return u.String()
}
