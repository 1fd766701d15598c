// Package cms serves localized marketing and legal pages from local
// markdown files with YAML front matter.
package cms

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// ErrNotFound marks a missing content page.
var ErrNotFound = errors.New("cms: content not found")

// Page represents a localized static page sourced from local markdown.
type Page struct {
	Slug          string
	Lang          string
	Title         string
	Summary       string
	// BodyHTML is rendered from markdown and sanitized; safe to emit raw.
	BodyHTML      string
	EffectiveDate time.Time
	UpdatedAt     time.Time
	Version       string
	SEO           PageSEO
}

// PageSEO holds optional metadata overrides for static pages.
type PageSEO struct {
	Title       string
	Description string
}

type frontMatter struct {
	Title         string        `yaml:"title"`
	Summary       string        `yaml:"summary"`
	Lang          string        `yaml:"lang"`
	EffectiveDate string        `yaml:"effective_date"`
	UpdatedAt     string        `yaml:"updated_at"`
	Version       string        `yaml:"version"`
	SEO           frontMatterSEO `yaml:"seo"`
}

type frontMatterSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

const defaultContentDir = "content"

// Store reads, renders, and caches content pages.
type Store struct {
	dir      string
	markdown goldmark.Markdown
	policy   *bluemonday.Policy

	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// NewStore creates a content store rooted at dir.
func NewStore(dir string) *Store {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	return &Store{
		dir: dir,
		markdown: goldmark.New(
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		policy: newContentHTMLPolicy(),
		ttl:   5 * time.Minute,
		items: map[string]cacheEntry{},
	}
}

// SetCacheDuration overrides the in-memory cache duration (primarily for tests).
func (s *Store) SetCacheDuration(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	s.mu.Lock()
	s.ttl = d
	s.mu.Unlock()
}

// GetPage fetches a localized static page, falling back to English when the
// requested language has no file.
func (s *Store) GetPage(slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	lang = normalizeLang(lang)

	cacheKey := lang + "|" + slug
	if page, ok := s.cached(cacheKey); ok {
		return page, nil
	}

	priority := []string{lang}
	if lang != "en" {
		priority = append(priority, "en")
	}
	for _, candidate := range priority {
		page, err := s.readMarkdown(slug, candidate)
		if err == nil {
			s.store(cacheKey, page)
			return page, nil
		}
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrNotFound) {
			continue
		}
		return Page{}, err
	}
	return Page{}, ErrNotFound
}

func (s *Store) readMarkdown(slug, lang string) (Page, error) {
	file := filepath.Join(s.dir, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}
	info, statErr := os.Stat(file)
	if statErr != nil {
		info = nil
	}
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}

	var rendered bytes.Buffer
	if err := s.markdown.Convert([]byte(body), &rendered); err != nil {
		return Page{}, fmt.Errorf("cms: render %s: %w", file, err)
	}
	safe := s.policy.SanitizeBytes(rendered.Bytes())

	page := Page{
		Slug:     slug,
		Lang:     firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:    strings.TrimSpace(front.Title),
		Summary:  strings.TrimSpace(front.Summary),
		BodyHTML: string(safe),
		Version:  strings.TrimSpace(front.Version),
		SEO: PageSEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
		},
	}
	page.EffectiveDate = parseContentDate(front.EffectiveDate)
	page.UpdatedAt = parseContentDate(front.UpdatedAt)
	if page.UpdatedAt.IsZero() && info != nil {
		page.UpdatedAt = info.ModTime()
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func newContentHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("dir").Globally()
	policy.AllowAttrs("class").OnElements("div", "span", "table")
	return policy
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\uFEFF")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "..") {
		return ""
	}
	if strings.ContainsRune(slug, os.PathSeparator) {
		return ""
	}
	return slug
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return "en"
	}
	return lang
}

func (s *Store) cached(key string) (Page, bool) {
	now := time.Now()
	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || now.After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (s *Store) store(key string, page Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = cacheEntry{page: page, expires: time.Now().Add(s.ttl)}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
