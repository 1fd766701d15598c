package main

import (
	mw "cvaluepro.com/cvalue-web/internal/middleware"
	"cvaluepro.com/cvalue-web/internal/protect"
)

// ResumePreviewView drives the `/preview` page.
type ResumePreviewView struct {
	Tabs     []PreviewTab
	Active   string
	Locked   bool
	Guard    protect.Capability
	Gate     string
	Download string
}

// PreviewTab is one switchable resume template.
type PreviewTab struct {
	ID       string // "classic" or "modern"
	LabelKey string
	Filename string
	Active   bool
}

// PreviewPagesView drives image fragments for both resume and cover previews.
type PreviewPagesView struct {
	Lang   string
	Pages  []PreviewPageImage
	Locked bool
	Guard  protect.Capability
}

// PreviewPageImage is a single rendered page. Locked pages past the first
// are blurred behind the paywall overlay.
type PreviewPageImage struct {
	URL     string
	Index   int
	Blurred bool
}

func resumeTabs(bundle mw.PreviewBundle, active string) []PreviewTab {
	if active != "classic" && active != "modern" {
		active = "classic"
	}
	tabs := make([]PreviewTab, 0, 2)
	if bundle.ClassicFilename != "" {
		tabs = append(tabs, PreviewTab{ID: "classic", LabelKey: "preview.tab.classic", Filename: bundle.ClassicFilename, Active: active == "classic"})
	}
	if bundle.ModernFilename != "" {
		tabs = append(tabs, PreviewTab{ID: "modern", LabelKey: "preview.tab.modern", Filename: bundle.ModernFilename, Active: active == "modern"})
	}
	return tabs
}

func buildResumePreviewView(bundle mw.PreviewBundle, active string, unlocked bool) ResumePreviewView {
	guard := protect.Default
	if unlocked {
		guard = guard.Unlocked()
	}
	tabs := resumeTabs(bundle, active)
	for _, tab := range tabs {
		if tab.Active {
			active = tab.ID
		}
	}
	return ResumePreviewView{
		Tabs:     tabs,
		Active:   active,
		Locked:   !unlocked,
		Guard:    guard,
		Gate:     "resume",
		Download: "/preview/download?template=" + active,
	}
}

// buildPreviewPages maps image URLs to the page view model. When locked,
// every page after the first is blurred.
func buildPreviewPages(urls []string, unlocked bool) PreviewPagesView {
	guard := protect.Default
	if unlocked {
		guard = guard.Unlocked()
	}
	pages := make([]PreviewPageImage, 0, len(urls))
	for i, u := range urls {
		pages = append(pages, PreviewPageImage{
			URL:     u,
			Index:   i + 1,
			Blurred: !unlocked && i > 0,
		})
	}
	return PreviewPagesView{Pages: pages, Locked: !unlocked, Guard: guard}
}

// templateFilename resolves the backend filename for a preview tab.
func templateFilename(bundle mw.PreviewBundle, tmpl string) string {
	switch tmpl {
	case "modern":
		return bundle.ModernFilename
	default:
		return bundle.ClassicFilename
	}
}
