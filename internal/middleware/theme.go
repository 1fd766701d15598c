package middleware

import (
	"net/http"
	"strings"
)

const themeCookieName = "theme"

// Theme resolves the visitor's color scheme from the session, falling back
// to the plain `theme` cookie. Unknown values collapse to light.
func Theme(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r)
		if s.Theme == "" {
			if c, err := r.Cookie(themeCookieName); err == nil && validTheme(c.Value) {
				s.Theme = c.Value
				s.MarkDirty()
			}
		}
		if !validTheme(s.Theme) {
			s.Theme = "light"
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentTheme returns the active theme for the request, default "light".
func CurrentTheme(r *http.Request) string {
	if s := GetSession(r); s != nil && validTheme(s.Theme) {
		return s.Theme
	}
	return "light"
}

// SetTheme persists a theme choice in the session and the `theme` cookie.
func SetTheme(w http.ResponseWriter, r *http.Request, theme string) string {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if !validTheme(theme) {
		theme = "light"
	}
	s := GetSession(r)
	s.Theme = theme
	s.MarkDirty()
	http.SetCookie(w, &http.Cookie{
		Name:     themeCookieName,
		Value:    theme,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		Secure:   sessionSecure,
	})
	return theme
}

func validTheme(t string) bool {
	return t == "light" || t == "dark"
}
