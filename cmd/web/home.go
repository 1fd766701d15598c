package main

import (
	"net/http"

	handlersPkg "cvaluepro.com/cvalue-web/internal/handlers"
	"cvaluepro.com/cvalue-web/internal/i18n"
	mw "cvaluepro.com/cvalue-web/internal/middleware"
	"cvaluepro.com/cvalue-web/internal/nav"
)

// basePageData assembles the layout fields every page shares.
func basePageData(r *http.Request, title string) handlersPkg.PageData {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	vm := handlersPkg.PageData{
		Title:       title,
		Lang:        lang,
		Dir:         i18n.Dir(lang),
		Theme:       mw.CurrentTheme(r),
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		Flash:       sess.TakeFlash(),
		CSRFToken:   sess.CSRFToken,
		Analytics:   handlersPkg.LoadAnalyticsFromEnv(),
	}
	brand := i18nOrDefault(lang, "brand.name", "CValue")
	vm.SEO.Title = title + " | " + brand
	vm.SEO.Canonical = absoluteURL(r)
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = brand
	vm.SEO.OG.Title = vm.SEO.Title
	vm.SEO.OG.Type = "website"
	return vm
}

// HomeHandler renders the landing page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	title := i18nOrDefault(lang, "home.title", "Professional resumes that open doors")
	vm := basePageData(r, title)
	vm.SEO.Description = i18nOrDefault(lang, "home.desc", "AI-assisted resumes, cover letters, and LinkedIn profiles, ready in minutes.")
	vm.SEO.OG.Description = vm.SEO.Description
	vm.Home = handlersPkg.BuildHomeData()
	renderPage(w, r, "home", vm)
}

// NotFoundHandler renders the localized 404 page.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	title := i18nOrDefault(lang, "notfound.title", "Page not found")
	vm := basePageData(r, title)
	vm.SEO.Robots = "noindex, nofollow"
	w.WriteHeader(http.StatusNotFound)
	renderPage(w, r, "not_found", vm)
}
