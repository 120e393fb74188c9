package model

// Locale identifies the language the storefront is currently displayed in.
type Locale string

const (
	LocaleDefault Locale = "default"
	LocaleRU      Locale = "ru"
	LocaleUZ      Locale = "uz"
)

// ParseLocale maps arbitrary input to a known locale, defaulting on unknown values.
func ParseLocale(s string) Locale {
	switch Locale(s) {
	case LocaleRU:
		return LocaleRU
	case LocaleUZ:
		return LocaleUZ
	default:
		return LocaleDefault
	}
}

// LocalizedText holds the per-locale variants of a single text field.
type LocalizedText struct {
	EN string
	RU string
	UZ string
}

// fallbackOrder lists, per locale, which variants to try and in what order.
// The default locale is the English field family; missing data degrades to
// the next entry silently.
var fallbackOrder = map[Locale][]func(LocalizedText) string{
	LocaleDefault: {
		func(t LocalizedText) string { return t.EN },
		func(t LocalizedText) string { return t.RU },
		func(t LocalizedText) string { return t.UZ },
	},
	LocaleRU: {
		func(t LocalizedText) string { return t.RU },
		func(t LocalizedText) string { return t.EN },
		func(t LocalizedText) string { return t.UZ },
	},
	LocaleUZ: {
		func(t LocalizedText) string { return t.UZ },
		func(t LocalizedText) string { return t.EN },
		func(t LocalizedText) string { return t.RU },
	},
}

// Resolve returns the best variant for the locale, falling back in a fixed
// order and returning the first non-empty value. It never fails; when every
// variant is empty the result is the empty string.
func (t LocalizedText) Resolve(loc Locale) string {
	chain, ok := fallbackOrder[loc]
	if !ok {
		chain = fallbackOrder[LocaleDefault]
	}
	for _, pick := range chain {
		if v := pick(t); v != "" {
			return v
		}
	}
	return ""
}
