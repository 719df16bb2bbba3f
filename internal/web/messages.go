package web

// DefaultLocale is used when no supported locale matches the request.
const DefaultLocale = "en"

// Messages maps message keys to localized strings.
type Messages map[string]string

// Get returns the message for key, or the key itself when it is missing.
func (m Messages) Get(key string) string {
	if s, ok := m[key]; ok {
		return s
	}
	return key
}

var catalog = map[string]Messages{
	"en": {
		"landing.title":        "MenuCup | Digital menus for restaurants",
		"landing.headline":     "Your menu, one QR code away",
		"landing.subline":      "Build a beautiful digital menu, update it in seconds and share it with a single scan.",
		"landing.features":     "Features",
		"landing.contact":      "Contact",
		"contact.title":        "Get in touch",
		"contact.fullName":     "Full name",
		"contact.email":        "Email",
		"contact.company":      "Restaurant or company",
		"contact.send":         "Send",
		"contact.success":      "Thanks! We will get back to you shortly.",
		"contact.error":        "Something went wrong. Please try again.",
		"menu.title":           "Menu",
		"menu.empty":           "No categories available.",
		"menu.noItems":         "No items yet.",
		"menu.comingSoon":      "Coming soon",
		"menu.viewItems":       "View items",
		"menu.back":            "Back to menu",
		"notFound.title":       "Page not found",
		"notFound.body":        "The menu you are looking for does not exist.",
		"dashboard.title":      "Dashboard",
		"dashboard.empty":      "You have no restaurants yet.",
		"dashboard.builder":    "Open menu builder",
		"dashboard.signOut":    "Sign out",
		"builder.title":        "Menu builder",
		"builder.search":       "Search items",
		"builder.all":          "All",
		"builder.saveOrder":    "Save order",
		"builder.discardOrder": "Discard changes",
	},
	"mk": {
		"landing.title":        "MenuCup | Дигитални менија за ресторани",
		"landing.headline":     "Вашето мени, на еден QR код растојание",
		"landing.subline":      "Направете прекрасно дигитално мени, ажурирајте го за неколку секунди и споделете го со едно скенирање.",
		"landing.features":     "Можности",
		"landing.contact":      "Контакт",
		"contact.title":        "Контактирајте нè",
		"contact.fullName":     "Име и презиме",
		"contact.email":        "Е-пошта",
		"contact.company":      "Ресторан или компанија",
		"contact.send":         "Испрати",
		"contact.success":      "Ви благодариме! Наскоро ќе ве контактираме.",
		"contact.error":        "Нешто тргна наопаку. Обидете се повторно.",
		"menu.title":           "Мени",
		"menu.empty":           "Нема достапни категории.",
		"menu.noItems":         "Сè уште нема ставки.",
		"menu.comingSoon":      "Наскоро",
		"menu.viewItems":       "Види ставки",
		"menu.back":            "Назад кон менито",
		"notFound.title":       "Страницата не е пронајдена",
		"notFound.body":        "Менито што го барате не постои.",
		"dashboard.title":      "Контролна табла",
		"dashboard.empty":      "Сè уште немате ресторани.",
		"dashboard.builder":    "Отвори уредувач на мени",
		"dashboard.signOut":    "Одјава",
		"builder.title":        "Уредувач на мени",
		"builder.search":       "Пребарај ставки",
		"builder.all":          "Сите",
		"builder.saveOrder":    "Зачувај редослед",
		"builder.discardOrder": "Отфрли промени",
	},
}

// MessagesFor returns the catalog of locale, falling back to DefaultLocale.
func MessagesFor(locale string) Messages {
	if m, ok := catalog[locale]; ok {
		return m
	}
	return catalog[DefaultLocale]
}

// HasLocale reports whether a message catalog exists for locale.
func HasLocale(locale string) bool {
	_, ok := catalog[locale]
	return ok
}

// NewPage builds the common page data for locale.
func NewPage(title, locale string) Page {
	if !HasLocale(locale) {
		locale = DefaultLocale
	}
	return Page{Title: title, Locale: locale, T: MessagesFor(locale)}
}
