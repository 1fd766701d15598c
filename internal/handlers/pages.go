package handlers

import (
	"cvaluepro.com/cvalue-web/internal/middleware"
	"cvaluepro.com/cvalue-web/internal/nav"
)

// PageData is a generic view model for pages using the shared layout.
type PageData struct {
	Title     string
	Lang      string
	Dir       string
	Theme     string
	SEO       SEOData
	Analytics Analytics

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Flash       []middleware.FlashMessage
	CSRFToken   string

	// Optional per-page view model payloads
	Home    any
	Order   any
	Preview any
	Payment any
	Content any
}
