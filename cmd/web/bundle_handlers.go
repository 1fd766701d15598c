package main

import (
	"net/http"

	mw "cvaluepro.com/cvalue-web/internal/middleware"
	"cvaluepro.com/cvalue-web/internal/protect"
)

// BundlePreviewView drives the `/bundle-preview` page.
type BundlePreviewView struct {
	Resume    ResumePreviewView
	Headline  string
	Teaser    string
	Summary   string
	Locked    bool
	Guard     protect.Capability
	Gate      string
	Downloads []BundleDownload
}

// BundleDownload is one downloadable artifact in the bundle.
type BundleDownload struct {
	Item     string
	LabelKey string
	Href     string
}

// BundlePreviewHandler renders the combined preview for the full bundle.
func BundlePreviewHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if !sess.Bundle.HasBundle() {
		redirectMissingBundle(w, r, "/order/bundle")
		return
	}

	lang := mw.Lang(r)
	unlocked := sess.IsUnlocked("bundle")
	guard := protect.Default
	if unlocked {
		guard = guard.Unlocked()
	}
	guard.Apply(w.Header())

	view := BundlePreviewView{
		Resume:   buildResumePreviewView(sess.Bundle, r.URL.Query().Get("template"), unlocked),
		Headline: sess.Bundle.Headline,
		Locked:   !unlocked,
		Guard:    guard,
		Gate:     "bundle",
	}
	view.Resume.Gate = "bundle"
	if unlocked {
		view.Summary = sess.Bundle.Summary
		view.Downloads = []BundleDownload{
			{Item: "resume-classic", LabelKey: "bundle.download.classic", Href: "/bundle-preview/download?item=resume-classic"},
			{Item: "resume-modern", LabelKey: "bundle.download.modern", Href: "/bundle-preview/download?item=resume-modern"},
			{Item: "cover", LabelKey: "bundle.download.cover", Href: "/bundle-preview/download?item=cover"},
		}
	} else {
		view.Teaser = truncateRunes(sess.Bundle.Summary, linkedinTeaserRunes)
	}

	title := i18nOrDefault(lang, "bundle.title", "Your career bundle preview")
	vm := basePageData(r, title)
	vm.SEO.Robots = "noindex, nofollow"
	vm.Preview = view
	renderPage(w, r, "bundle_preview", vm)
}

// BundleDownloadHandler streams one bundle artifact once unlocked.
func BundleDownloadHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if !sess.Bundle.HasBundle() {
		http.Error(w, "no preview session", http.StatusNotFound)
		return
	}
	if !sess.IsUnlocked("bundle") {
		http.Error(w, "payment required", http.StatusForbidden)
		return
	}

	switch r.URL.Query().Get("item") {
	case "resume-classic":
		serveArtifact(w, r, sess.Bundle.SessionID, sess.Bundle.ClassicFilename, func() ([]byte, error) {
			return previewClient.DownloadResume(r.Context(), sess.Bundle.SessionID, sess.Bundle.ClassicFilename)
		})
	case "resume-modern":
		serveArtifact(w, r, sess.Bundle.SessionID, sess.Bundle.ModernFilename, func() ([]byte, error) {
			return previewClient.DownloadResume(r.Context(), sess.Bundle.SessionID, sess.Bundle.ModernFilename)
		})
	case "cover":
		serveArtifact(w, r, sess.Bundle.CoverSessionID, sess.Bundle.CoverFilename, func() ([]byte, error) {
			return previewClient.DownloadCover(r.Context(), sess.Bundle.CoverSessionID, sess.Bundle.CoverFilename)
		})
	default:
		http.Error(w, "unknown item", http.StatusNotFound)
	}
}
