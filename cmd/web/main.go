package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"cvaluepro.com/cvalue-web/internal/cms"
	"cvaluepro.com/cvalue-web/internal/generate"
	"cvaluepro.com/cvalue-web/internal/i18n"
	mw "cvaluepro.com/cvalue-web/internal/middleware"
	"cvaluepro.com/cvalue-web/internal/payment"
	"cvaluepro.com/cvalue-web/internal/preview"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	contentDir   = "content"
	localesDir   = "locales"
	// devMode is set in main() based on env: CVALUE_WEB_DEV (preferred) or DEV (fallback)
	devMode    bool
	i18nBundle *i18n.Bundle

	generateClient = generate.NewClient(os.Getenv("CVALUE_WEB_AI_BASE_URL"))
	previewClient  = preview.NewClient(os.Getenv("CVALUE_WEB_AI_BASE_URL"))
	paymentClient  = payment.NewClient(os.Getenv("CVALUE_WEB_PAY_BASE_URL"))
	artifactStore  = preview.NewStore()
	contentStore   = cms.NewStore(contentDir)
)

func main() {
	var (
		addr     string
		tmplPath string
		pubPath  string
	)
	// Port resolution: prefer CVALUE_WEB_PORT, then Cloud Run's PORT, else 8080
	port := os.Getenv("CVALUE_WEB_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	flag.StringVar(&addr, "addr", ":"+port, "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", templatesDir, "templates directory")
	flag.StringVar(&pubPath, "public", publicDir, "public assets directory")
	flag.Parse()

	templatesDir = tmplPath
	publicDir = pubPath

	// Dev mode: prefer CVALUE_WEB_DEV, fallback to DEV
	devMode = os.Getenv("CVALUE_WEB_DEV") != "" || os.Getenv("DEV") != ""

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			log.Fatalf("parse templates: %v", err)
		}
		tmplCache = tc
	}

	var err error
	i18nBundle, err = i18n.Load(localesDir, "en", []string{"en", "ar"})
	if err != nil {
		log.Fatalf("load i18n: %v", err)
	}

	r := newRouter()

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("web listening on %s (devMode=%v)", addr, devMode)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v", err)
	}
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session)
	r.Use(mw.Locale(i18nBundle))
	r.Use(mw.Theme)
	r.Use(mw.CSRF)
	r.Use(mw.VaryLocale)
	r.Use(mw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(60 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets under /assets/
	assets := http.StripPrefix("/assets", mw.AssetsWithCache(publicDir+"/assets"))
	r.Handle("/assets/*", assets)

	// Marketing
	r.Get("/", HomeHandler)
	r.Get("/content/{slug}", ContentPageHandler)

	// Order forms
	r.Get("/order/{serviceType}", OrderFormHandler)
	r.Post("/order/{serviceType}", OrderSubmitHandler)

	// Previews
	r.Get("/preview", ResumePreviewHandler)
	r.Get("/preview/images", ResumePreviewImagesFrag)
	r.Get("/preview/download", ResumeDownloadHandler)
	r.Get("/cover-letter-preview", CoverPreviewHandler)
	r.Get("/cover-letter-preview/pages", CoverPreviewPagesFrag)
	r.Get("/cover-letter-preview/download", CoverDownloadHandler)
	r.Get("/linkedin-preview", LinkedInPreviewHandler)
	r.Get("/bundle-preview", BundlePreviewHandler)
	r.Get("/bundle-preview/download", BundleDownloadHandler)

	// Payment wizard
	r.Get("/payment", PaymentModalFrag)
	r.Post("/payment/step", PaymentStepHandler)
	r.Post("/payment/submit", PaymentSubmitHandler)

	// Preferences
	r.Post("/theme", ThemeToggleHandler)

	r.NotFound(NotFoundHandler)

	return r
}
