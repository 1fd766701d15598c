package main

import (
	"errors"
	"fmt"
	"net/http"

	mw "cvaluepro.com/cvalue-web/internal/middleware"
	"cvaluepro.com/cvalue-web/internal/preview"
)

// redirectMissingBundle sends visitors without generated artifacts back to
// the order form, with a localized notice on the next page view.
func redirectMissingBundle(w http.ResponseWriter, r *http.Request, orderPath string) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	sess.AddFlash("error", i18nOrDefault(lang, "preview.flash.missing", "We could not find your documents. Please place your order first."))
	http.Redirect(w, r, orderPath, http.StatusSeeOther)
}

// ResumePreviewHandler renders the resume preview with template tabs.
func ResumePreviewHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if !sess.Bundle.HasResume() {
		redirectMissingBundle(w, r, "/order/resume")
		return
	}

	lang := mw.Lang(r)
	unlocked := sess.IsUnlocked("resume")
	view := buildResumePreviewView(sess.Bundle, r.URL.Query().Get("template"), unlocked)
	view.Guard.Apply(w.Header())

	title := i18nOrDefault(lang, "preview.title", "Your resume preview")
	vm := basePageData(r, title)
	vm.SEO.Robots = "noindex, nofollow"
	vm.Preview = view
	renderPage(w, r, "preview", vm)
}

// ResumePreviewImagesFrag serves the rendered page images for one template.
func ResumePreviewImagesFrag(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if !sess.Bundle.HasResume() {
		http.Error(w, "no preview session", http.StatusNotFound)
		return
	}

	tmpl := r.URL.Query().Get("template")
	filename := templateFilename(sess.Bundle, tmpl)
	if filename == "" {
		http.Error(w, "unknown template", http.StatusNotFound)
		return
	}

	images, err := previewClient.ResumeImages(r.Context(), sess.Bundle.SessionID, []string{filename})
	if err != nil {
		renderPreviewError(w, r, err)
		return
	}

	view := buildPreviewPages(images[filename], sess.IsUnlocked("resume"))
	view.Lang = mw.Lang(r)
	view.Guard.Apply(w.Header())
	renderTemplate(w, r, "frag_preview_images", view)
}

// ResumeDownloadHandler streams the resume PDF once the gate is unlocked.
func ResumeDownloadHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if !sess.Bundle.HasResume() {
		http.Error(w, "no preview session", http.StatusNotFound)
		return
	}
	if !sess.IsUnlocked("resume") {
		http.Error(w, "payment required", http.StatusForbidden)
		return
	}

	filename := templateFilename(sess.Bundle, r.URL.Query().Get("template"))
	if filename == "" {
		http.Error(w, "unknown template", http.StatusNotFound)
		return
	}
	serveArtifact(w, r, sess.Bundle.SessionID, filename, func() ([]byte, error) {
		return previewClient.DownloadResume(r.Context(), sess.Bundle.SessionID, filename)
	})
}

// serveArtifact fetches a PDF, parks it in the artifact store, streams it,
// and releases it afterwards so the bytes are held exactly once.
func serveArtifact(w http.ResponseWriter, r *http.Request, sessionID, filename string, fetch func() ([]byte, error)) {
	data, err := fetch()
	if err != nil {
		renderPreviewError(w, r, err)
		return
	}
	id := artifactStore.Put(sessionID, filename, "application/pdf", data)
	defer artifactStore.Release(id)

	art, ok := artifactStore.Get(id)
	if !ok {
		http.Error(w, "artifact expired", http.StatusGone)
		return
	}
	w.Header().Set("Content-Type", art.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(art.Data)
}

func renderPreviewError(w http.ResponseWriter, r *http.Request, err error) {
	lang := mw.Lang(r)
	switch {
	case errors.Is(err, preview.ErrNotFound):
		renderInlineAlert(w, r, "error",
			i18nOrDefault(lang, "preview.error.expired", "Preview session expired"),
			i18nOrDefault(lang, "preview.error.expired.body", "Your documents are no longer available. Please place the order again."),
			http.StatusNotFound)
	case errors.Is(err, preview.ErrNotPDF):
		renderInlineAlert(w, r, "error",
			i18nOrDefault(lang, "preview.error.badfile", "Unexpected file"),
			i18nOrDefault(lang, "preview.error.badfile.body", "The generated file looks wrong. Please retry in a moment."),
			http.StatusBadGateway)
	default:
		renderInlineAlert(w, r, "error",
			i18nOrDefault(lang, "preview.error.generic", "Something went wrong"),
			i18nOrDefault(lang, "preview.error.generic.body", "We could not load your preview. Please retry."),
			http.StatusBadGateway)
	}
}

// renderInlineAlert emits the shared alert component with a status code.
func renderInlineAlert(w http.ResponseWriter, r *http.Request, tone, title, body string, code int) {
	data := map[string]any{
		"Tone":  tone,
		"Title": title,
		"Body":  body,
		"Icon":  "information-circle",
	}
	if tone == "error" {
		data["Icon"] = "exclamation-triangle"
	} else if tone == "success" {
		data["Icon"] = "check-circle"
	}
	w.WriteHeader(code)
	renderTemplate(w, r, "c_inline_alert", data)
}
