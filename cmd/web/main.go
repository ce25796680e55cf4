package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"isoatthetop.com/web/internal/analytics"
	"isoatthetop.com/web/internal/cms"
	"isoatthetop.com/web/internal/config"
	"isoatthetop.com/web/internal/contact"
	handlersPkg "isoatthetop.com/web/internal/handlers"
	"isoatthetop.com/web/internal/i18n"
	mw "isoatthetop.com/web/internal/middleware"
	"isoatthetop.com/web/internal/observability"
	"isoatthetop.com/web/internal/preference"
	"isoatthetop.com/web/internal/routing"
	"isoatthetop.com/web/internal/sitedata"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode reparses templates on every request
	devMode    bool
	tmplCache  *template.Template
	i18nBundle *i18n.Bundle

	site          *sitedata.Site
	legalStore    *cms.Store
	prefs         preference.Store
	contactSvc    *contact.Service
	flash         *contact.Flash
	siteAnalytics handlersPkg.Analytics
	// baseURL is the configured site origin; empty derives it from the request.
	baseURL string
	// formEndpoint overrides config.json when set.
	formEndpoint string
	nowFunc      = time.Now
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	logger, err := observability.NewLogger(cfg.Dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	templatesDir = cfg.TemplatesDir
	publicDir = cfg.PublicDir
	devMode = cfg.Dev
	baseURL = cfg.BaseURL
	formEndpoint = cfg.FormEndpoint

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	i18nBundle, err = i18n.Load(cfg.LocalesDir, string(routing.LocaleEN), []string{string(routing.LocaleEN), string(routing.LocaleFR)})
	if err != nil {
		logger.Fatal("load locales", zap.Error(err))
	}

	var fetcher sitedata.Fetcher = sitedata.NewDirFetcher(publicDir)
	if cfg.DataBaseURL != "" {
		fetcher = sitedata.NewHTTPFetcher(cfg.DataBaseURL, nil)
	}
	site = sitedata.NewSite(sitedata.NewLoader(fetcher), logger)
	legalStore = cms.NewStore(cfg.ContentDir)
	prefs = preference.NewCookieStore(cfg.Secure)

	hashKey := cfg.FlashHashKey
	if len(hashKey) == 0 {
		// flash cookies do not survive a restart without a configured key
		logger.Warn("no flash key configured, using a random one")
		hashKey = securecookie.GenerateRandomKey(32)
	}
	flash, err = contact.NewFlash(hashKey, cfg.Secure)
	if err != nil {
		logger.Fatal("flash cookie", zap.Error(err))
	}
	contactSvc = contact.NewService(
		contact.NewRelay(nil),
		contact.NewLimiter(cfg.ContactInterval, cfg.ContactBurst),
		logger.Named("contact"),
	)

	var counter analytics.Counter
	counter, siteAnalytics = pageAnalytics(cfg, nil, logger)

	reg := observability.InitRegistry()
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(logger, reg, counter, cfg.Secure),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("web listening", zap.String("addr", cfg.Addr), zap.Bool("dev", devMode))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("listen", zap.Error(err))
	}
}

// newRouter wires middleware and routes. reg may be nil to skip /metrics.
func newRouter(logger *zap.Logger, reg *prometheus.Registry, counter analytics.Counter, secure bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.HTMX)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if reg != nil {
		r.Handle("/metrics", observability.MetricsHandler(reg))
	}

	r.Handle("/assets/*", mw.AssetsWithCache(filepath.Join(publicDir, "assets"), "/assets", ""))
	r.Handle("/media/*", mw.AssetsWithCache(filepath.Join(publicDir, "media"), "/media", ""))
	r.Handle("/data/*", mw.AssetsWithCache(filepath.Join(publicDir, "data"), "/data", "300"))

	r.Group(func(r chi.Router) {
		r.Use(mw.CSRF(secure))
		r.Use(analytics.Track(counter))

		r.With(mw.VaryLocale, mw.NoStore).Get("/", RootHandler)
		r.Route("/{locale}", func(r chi.Router) {
			r.Use(mw.Locale(http.HandlerFunc(FallbackHandler)))
			r.With(mw.NoStore).Get("/", LocaleHomeHandler)
			r.Get("/"+routing.LegalSegment+"/", LegalHandler)
			r.Get("/404/", NotFoundPageHandler)
			r.Get("/{segment}/", SeasonHandler)
			r.Post("/{segment}/contact", ContactHandler)
			r.Get("/{segment}/tarifs.pdf", RateSheetHandler)
			r.NotFound(LocalizedNotFoundHandler)
		})
		r.NotFound(FallbackHandler)
	})
	return r
}

// pageAnalytics picks where views are counted. With an API token they are
// posted from the server and the browser script is left out, otherwise the
// script counts them when a site code is set.
func pageAnalytics(cfg config.Config, client *http.Client, logger *zap.Logger) (analytics.Counter, handlersPkg.Analytics) {
	counter := analytics.Multi{analytics.Prometheus{}}
	code := cfg.GoatCounterCode
	if cfg.GoatCounterToken != "" {
		counter = append(counter, analytics.NewGoatCounter(cfg.GoatCounterCode, cfg.GoatCounterToken, client, logger.Named("goatcounter")))
		code = ""
	}
	return counter, handlersPkg.NewAnalytics(code, cfg.Dev)
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
		"t": func(lang, key string) string {
			return i18nOrDefault(lang, key, key)
		},
		"tf": func(lang, key string, args ...any) string {
			if i18nBundle == nil {
				return key
			}
			return i18nBundle.Tf(lang, key, args...)
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

func templates() (*template.Template, error) {
	if devMode {
		return parseTemplates()
	}
	if tmplCache == nil {
		return nil, errors.New("template not initialized")
	}
	return tmplCache, nil
}

// renderPage executes the base layout with status. In dev mode, templates
// are reparsed on each request.
func renderPage(w http.ResponseWriter, r *http.Request, status int, data handlersPkg.PageData) {
	renderTemplate(w, r, status, "base", data)
}

// renderTemplate executes a named template, e.g. an htmx fragment. Output is
// buffered so a failing template still yields a clean 500.
func renderTemplate(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, err := templates()
	if err != nil {
		mw.WriteError(w, r, http.StatusInternalServerError, fmt.Sprintf("template parse error: %v", err))
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		mw.WriteError(w, r, http.StatusInternalServerError, fmt.Sprintf("template exec error: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func i18nOrDefault(lang, key, def string) string {
	if i18nBundle == nil {
		return def
	}
	if v := i18nBundle.T(lang, key); v != key {
		return v
	}
	return def
}

// siteBase is the configured origin or, failing that, the request's.
func siteBase(r *http.Request) string {
	if baseURL != "" {
		return baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "https" || p == "http" {
		scheme = p
	}
	return scheme + "://" + r.Host
}
