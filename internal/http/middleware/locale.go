package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

const (
	// LocaleCookie overrides Accept-Language when it names a supported locale.
	LocaleCookie = "NEXT_LOCALE"
	// LocaleLocalKey is the Fiber locals key holding the resolved locale.
	LocaleLocalKey = "locale"
)

// Locale resolves the request locale from the locale cookie, then Accept-Language,
// then the first supported locale, and sets Content-Language.
func Locale(supported []string) fiber.Handler {
	if len(supported) == 0 {
		supported = []string{"en"}
	}
	tags := make([]language.Tag, 0, len(supported))
	allowed := make(map[string]bool, len(supported))
	for _, s := range supported {
		tags = append(tags, language.Make(s))
		allowed[s] = true
	}
	matcher := language.NewMatcher(tags)

	return func(c *fiber.Ctx) error {
		loc := c.Cookies(LocaleCookie)
		if !allowed[loc] {
			loc = supported[0]
			if h := c.Get(fiber.HeaderAcceptLanguage); h != "" {
				prefs, _, err := language.ParseAcceptLanguage(h)
				if err == nil && len(prefs) > 0 {
					_, idx, conf := matcher.Match(prefs...)
					if conf != language.No {
						loc = supported[idx]
					}
				}
			}
		}

		c.Locals(LocaleLocalKey, loc)
		c.Set(fiber.HeaderContentLanguage, loc)
		return c.Next()
	}
}

// LocaleFrom returns the locale stored by Locale, or "".
func LocaleFrom(c *fiber.Ctx) string {
	loc, _ := c.Locals(LocaleLocalKey).(string)
	return loc
}
