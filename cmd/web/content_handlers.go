package main

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cvaluepro.com/cvalue-web/internal/cms"
	mw "cvaluepro.com/cvalue-web/internal/middleware"
)

// ContentView drives markdown-backed static pages.
type ContentView struct {
	Title         string
	Summary       string
	Body          template.HTML
	Version       string
	EffectiveDate string
	UpdatedAt     string
}

// ContentPageHandler renders marketing and legal pages from local markdown.
func ContentPageHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	lang := mw.Lang(r)

	page, err := contentStore.GetPage(slug, lang)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			NotFoundHandler(w, r)
			return
		}
		http.Error(w, "content error", http.StatusInternalServerError)
		return
	}

	view := ContentView{
		Title:   page.Title,
		Summary: page.Summary,
		Body:    template.HTML(page.BodyHTML),
		Version: page.Version,
	}
	if !page.EffectiveDate.IsZero() {
		view.EffectiveDate = page.EffectiveDate.Format("2006-01-02")
	}
	if !page.UpdatedAt.IsZero() {
		view.UpdatedAt = page.UpdatedAt.Format("2006-01-02")
	}

	vm := basePageData(r, page.Title)
	if page.SEO.Title != "" {
		vm.SEO.Title = page.SEO.Title
	}
	vm.SEO.Description = page.SEO.Description
	if vm.SEO.Description == "" {
		vm.SEO.Description = page.Summary
	}
	vm.Content = view
	renderPage(w, r, "content", vm)
}
