package main

import (
	"net/http"

	mw "cvaluepro.com/cvalue-web/internal/middleware"
	"cvaluepro.com/cvalue-web/internal/protect"
)

// CoverPreviewView drives the `/cover-letter-preview` page.
type CoverPreviewView struct {
	Locked   bool
	Guard    protect.Capability
	Gate     string
	Download string
}

// CoverPreviewHandler renders the cover letter preview.
func CoverPreviewHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if !sess.Bundle.HasCover() {
		redirectMissingBundle(w, r, "/order/cover-letter")
		return
	}

	lang := mw.Lang(r)
	unlocked := sess.IsUnlocked("cover")
	guard := protect.Default
	if unlocked {
		guard = guard.Unlocked()
	}
	guard.Apply(w.Header())

	title := i18nOrDefault(lang, "cover.title", "Your cover letter preview")
	vm := basePageData(r, title)
	vm.SEO.Robots = "noindex, nofollow"
	vm.Preview = CoverPreviewView{
		Locked:   !unlocked,
		Guard:    guard,
		Gate:     "cover",
		Download: "/cover-letter-preview/download",
	}
	renderPage(w, r, "cover_preview", vm)
}

// CoverPreviewPagesFrag serves the rendered cover letter page images.
func CoverPreviewPagesFrag(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if !sess.Bundle.HasCover() {
		http.Error(w, "no preview session", http.StatusNotFound)
		return
	}

	images, err := previewClient.CoverImages(r.Context(), sess.Bundle.CoverSessionID, sess.Bundle.CoverFilename)
	if err != nil {
		renderPreviewError(w, r, err)
		return
	}

	view := buildPreviewPages(images, sess.IsUnlocked("cover"))
	view.Lang = mw.Lang(r)
	view.Guard.Apply(w.Header())
	renderTemplate(w, r, "frag_preview_images", view)
}

// CoverDownloadHandler streams the cover letter PDF once unlocked.
func CoverDownloadHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if !sess.Bundle.HasCover() {
		http.Error(w, "no preview session", http.StatusNotFound)
		return
	}
	if !sess.IsUnlocked("cover") {
		http.Error(w, "payment required", http.StatusForbidden)
		return
	}

	serveArtifact(w, r, sess.Bundle.CoverSessionID, sess.Bundle.CoverFilename, func() ([]byte, error) {
		return previewClient.DownloadCover(r.Context(), sess.Bundle.CoverSessionID, sess.Bundle.CoverFilename)
	})
}
