package cms

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, lang, slug, body string) {
	t.Helper()
	full := filepath.Join(dir, lang)
	require.NoError(t, os.MkdirAll(full, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(full, slug+".md"), []byte(body), 0o644))
}

func TestGetPageRendersMarkdown(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "terms", "---\ntitle: Terms of Service\nversion: \"1.2\"\neffective_date: 2025-06-01\n---\n# Usage\n\nBe **kind**.\n")

	s := NewStore(dir)
	page, err := s.GetPage("terms", "en")
	require.NoError(t, err)
	require.Equal(t, "Terms of Service", page.Title)
	require.Equal(t, "1.2", page.Version)
	require.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), page.EffectiveDate)
	require.Contains(t, page.BodyHTML, "<h1")
	require.Contains(t, page.BodyHTML, "<strong>kind</strong>")
}

func TestGetPageSanitizesHTML(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "about", "Hello <script>alert(1)</script> world\n")

	s := NewStore(dir)
	page, err := s.GetPage("about", "en")
	require.NoError(t, err)
	require.NotContains(t, page.BodyHTML, "<script>")
	require.Contains(t, page.BodyHTML, "Hello")
}

func TestGetPageFallsBackToEnglish(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "privacy", "---\ntitle: Privacy Policy\n---\nWe respect privacy.\n")

	s := NewStore(dir)
	page, err := s.GetPage("privacy", "ar")
	require.NoError(t, err)
	require.Equal(t, "Privacy Policy", page.Title)
}

func TestGetPageStripsByteOrderMark(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "about", "\ufeff---\ntitle: About Us\n---\nBOM-prefixed files still parse.\n")

	s := NewStore(dir)
	page, err := s.GetPage("about", "en")
	require.NoError(t, err)
	require.Equal(t, "About Us", page.Title)
	require.Contains(t, page.BodyHTML, "still parse")
}

func TestGetPageRejectsTraversal(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.GetPage("../secrets", "en")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetPageMissing(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.GetPage("nope", "en")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetPageTitleFallsBackToSlug(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "refund-policy", "No front matter here.\n")

	s := NewStore(dir)
	page, err := s.GetPage("refund-policy", "en")
	require.NoError(t, err)
	require.Equal(t, "Refund Policy", page.Title)
}
