package main

import (
	"net/http"

	mw "cvaluepro.com/cvalue-web/internal/middleware"
)

// ThemeToggleHandler flips the color scheme and re-renders the toggle.
func ThemeToggleHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	next := r.PostFormValue("theme")
	if next == "" {
		// no explicit choice: flip the current one
		if mw.CurrentTheme(r) == "dark" {
			next = "light"
		} else {
			next = "dark"
		}
	}
	applied := mw.SetTheme(w, r, next)

	if mw.IsHTMX(r.Context()) {
		renderTemplate(w, r, "frag_theme_toggle", map[string]any{
			"Theme": applied,
			"Lang":  mw.Lang(r),
		})
		return
	}
	ref := r.Referer()
	if ref == "" {
		ref = "/"
	}
	http.Redirect(w, r, ref, http.StatusSeeOther)
}
