// Package i18n picks the language used for notification emails and view links.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "locale"
)

var supportedTags = []language.Tag{
	language.English,
	language.Spanish,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the base codes of the supported languages.
func Supported() []string {
	out := make([]string, len(supportedTags))
	for i, tag := range supportedTags {
		out[i] = tag.String()
	}
	return out
}

// Normalize maps value to a supported base code, falling back to fallback and then to "en".
func Normalize(value, fallback string) string {
	if code, ok := parse(value); ok {
		return code
	}
	if code, ok := parse(fallback); ok {
		return code
	}
	return language.English.String()
}

// Resolve determines the locale for a request: the lang query parameter wins,
// then the locale cookie, then Accept-Language, then fallback.
func Resolve(r *http.Request, fallback string) string {
	if r == nil {
		return Normalize("", fallback)
	}
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if code, ok := parse(v); ok {
			return code
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if code, ok := parse(cookie.Value); ok {
			return code
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if _, idx, conf := tagMatcher.Match(tags...); conf != language.No {
				return supportedTags[idx].String()
			}
		}
	}
	return Normalize("", fallback)
}

func parse(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, s := range supportedTags {
		if sb, _ := s.Base(); sb == base {
			return s.String(), true
		}
	}
	return "", false
}
