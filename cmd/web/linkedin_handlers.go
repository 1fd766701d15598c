package main

import (
	"net/http"
	"strings"

	mw "cvaluepro.com/cvalue-web/internal/middleware"
	"cvaluepro.com/cvalue-web/internal/protect"
)

// linkedinTeaserRunes is how much of the summary shows before the paywall.
const linkedinTeaserRunes = 120

// LinkedInPreviewView drives the `/linkedin-preview` page.
type LinkedInPreviewView struct {
	Headline string
	Summary  string
	Teaser   string
	Locked   bool
	Guard    protect.Capability
	Gate     string
}

// LinkedInPreviewHandler renders the optimized profile text preview.
func LinkedInPreviewHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if !sess.Bundle.HasLinkedIn() {
		redirectMissingBundle(w, r, "/order/linkedin")
		return
	}

	lang := mw.Lang(r)
	unlocked := sess.IsUnlocked("linkedin")
	guard := protect.Default
	if unlocked {
		guard = guard.Unlocked()
	}
	guard.Apply(w.Header())

	view := LinkedInPreviewView{
		Headline: sess.Bundle.Headline,
		Locked:   !unlocked,
		Guard:    guard,
		Gate:     "linkedin",
	}
	if unlocked {
		view.Summary = sess.Bundle.Summary
	} else {
		view.Teaser = truncateRunes(sess.Bundle.Summary, linkedinTeaserRunes)
	}

	title := i18nOrDefault(lang, "linkedin.title", "Your LinkedIn profile preview")
	vm := basePageData(r, title)
	vm.SEO.Robots = "noindex, nofollow"
	vm.Preview = view
	renderPage(w, r, "linkedin_preview", vm)
}

func truncateRunes(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
