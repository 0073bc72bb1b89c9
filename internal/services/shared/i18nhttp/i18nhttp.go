// Package i18nhttp resolves the request language for setup assistant pages.
package i18nhttp

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/setupassistant/internal/ui/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "sa_lang"
)

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return i18n.Printer(tag)
}

// ResolveTag determines the best language tag for the request, falling back
// to fallback when nothing matches. The bool indicates whether the lang query
// param should be persisted as a cookie.
func ResolveTag(r *http.Request, fallback language.Tag) (language.Tag, bool) {
	if r == nil {
		return fallback, false
	}

	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if tag, ok := i18n.ParseTag(langValue); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := i18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return i18n.MatchTags(tags), false
		}
	}

	return fallback, false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
