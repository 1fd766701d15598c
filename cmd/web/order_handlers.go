package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cvaluepro.com/cvalue-web/internal/generate"
	mw "cvaluepro.com/cvalue-web/internal/middleware"
)

// OrderFormHandler renders the order form for a service.
func OrderFormHandler(w http.ResponseWriter, r *http.Request) {
	serviceType := chi.URLParam(r, "serviceType")
	if _, ok := serviceTypes[serviceType]; !ok {
		NotFoundHandler(w, r)
		return
	}

	lang := mw.Lang(r)
	view := buildOrderView(serviceType, OrderInput{}, nil)
	title := i18nOrDefault(lang, view.TitleKey, "Place your order")

	vm := basePageData(r, title)
	vm.SEO.Description = i18nOrDefault(lang, "order.desc", "Tell us about your experience and we generate your documents.")
	vm.Order = view
	renderPage(w, r, "order", vm)
}

// OrderSubmitHandler validates the form, creates a generation session, and
// sends the visitor to the matching preview page.
func OrderSubmitHandler(w http.ResponseWriter, r *http.Request) {
	serviceType := chi.URLParam(r, "serviceType")
	previewPath, ok := serviceTypes[serviceType]
	if !ok {
		NotFoundHandler(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	lang := mw.Lang(r)
	in := parseOrderInput(r.PostForm)
	errs := validateOrderInput(in)
	if len(errs) > 0 {
		view := buildOrderView(serviceType, in, errs)
		title := i18nOrDefault(lang, view.TitleKey, "Place your order")
		vm := basePageData(r, title)
		vm.Order = view
		w.WriteHeader(http.StatusUnprocessableEntity)
		if mw.IsHTMX(r.Context()) {
			renderTemplate(w, r, "frag_order_form", vm)
			return
		}
		renderPage(w, r, "order", vm)
		return
	}

	session, err := generateClient.CreateSession(r.Context(), generate.Request{
		ServiceType: serviceType,
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		JobTitle:    in.JobTitle,
		Experience:  in.Experience,
		Education:   in.Education,
		Skills:      in.Skills,
		Summary:     in.Summary,
		TargetRole:  in.TargetRole,
		Language:    lang,
	})
	if err != nil {
		sess := mw.GetSession(r)
		sess.AddFlash("error", i18nOrDefault(lang, "order.error.backend", "We could not generate your documents. Please try again."))
		view := buildOrderView(serviceType, in, nil)
		title := i18nOrDefault(lang, view.TitleKey, "Place your order")
		vm := basePageData(r, title)
		vm.Order = view
		w.WriteHeader(http.StatusBadGateway)
		renderPage(w, r, "order", vm)
		return
	}

	sess := mw.GetSession(r)
	// A fresh order supersedes any artifacts the old bundle produced.
	if sess.Bundle.SessionID != "" {
		artifactStore.ReleaseSession(sess.Bundle.SessionID)
	}
	sess.Bundle = mw.PreviewBundle{
		ServiceType:     serviceType,
		SessionID:       session.SessionID,
		ClassicFilename: session.ClassicFilename,
		ModernFilename:  session.ModernFilename,
		CoverSessionID:  session.CoverSessionID,
		CoverFilename:   session.CoverFilename,
		Headline:        session.Headline,
		Summary:         session.Summary,
		CreatedAt:       time.Now().UTC(),
	}
	sess.MarkDirty()

	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", previewPath)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, previewPath, http.StatusSeeOther)
}
