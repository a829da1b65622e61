// Package i18n resolves the visitor's language and holds the site's
// bilingual message catalog.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Lang is one of the two site languages.
type Lang string

const (
	Arabic  Lang = "ar"
	English Lang = "en"
)

// Default is the language used when nothing else selects one.
const Default = Arabic

// CookieName stores the visitor's language preference.
const CookieName = "lang"

// Arabic first so an unmatched Accept-Language resolves to it.
var matcher = language.NewMatcher([]language.Tag{language.Arabic, language.English})

// Parse accepts "ar" or "en" (any case, surrounding space ignored).
func Parse(s string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case Arabic:
		return Arabic, true
	case English:
		return English, true
	}
	return "", false
}

// Dir returns the text direction for l.
func (l Lang) Dir() string {
	if l == English {
		return "ltr"
	}
	return "rtl"
}

// Other returns the opposite language.
func (l Lang) Other() Lang {
	if l == English {
		return Arabic
	}
	return English
}

// Tag returns the BCP 47 tag for l.
func (l Lang) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.Arabic
}

// Resolve picks the request language: the preference cookie if set, then
// the best Accept-Language match, then Default.
func Resolve(r *http.Request) Lang {
	if r == nil {
		return Default
	}
	if c, err := r.Cookie(CookieName); err == nil {
		if l, ok := Parse(c.Value); ok {
			return l
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		return Negotiate(accept)
	}
	return Default
}

// Negotiate matches an Accept-Language header against the site languages.
func Negotiate(accept string) Lang {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx != 1 {
		return Arabic
	}
	return English
}

// SetCookie persists l as the visitor's preference.
func SetCookie(w http.ResponseWriter, l Lang, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(l),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: false,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
