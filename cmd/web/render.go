package main

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

var tmplCache *template.Template

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
		"t": func(lang, key string) string {
			if i18nBundle == nil {
				return key
			}
			return i18nBundle.T(lang, key)
		},
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, fmt.Errorf("dict requires key/value pairs")
			}
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				k, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				m[k] = pairs[i+1]
			}
			return m, nil
		},
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func currentTemplates(w http.ResponseWriter) *template.Template {
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return nil
		}
		return tc
	}
	if tmplCache == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return nil
	}
	return tmplCache
}

// renderPage executes a full page template by name. In dev mode, templates
// are reparsed on each request.
func renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	t := currentTemplates(w)
	if t == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}

// renderTemplate executes a fragment template without page chrome.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	t := currentTemplates(w)
	if t == nil {
		return
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}

// i18nOrDefault translates a key, falling back to the given default when the
// key is missing from the catalog.
func i18nOrDefault(lang, key, def string) string {
	if i18nBundle == nil {
		return def
	}
	if v := i18nBundle.T(lang, key); v != key {
		return v
	}
	return def
}

// siteBaseURL derives the external base URL for the current request.
func siteBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	return scheme + "://" + host
}

// absoluteURL returns the canonical URL of the current request path.
func absoluteURL(r *http.Request) string {
	return siteBaseURL(r) + r.URL.Path
}
