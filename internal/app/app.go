package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/ai"
	"github.com/Vovarama1992/tutor-ai-bridge/internal/config"
	"github.com/Vovarama1992/tutor-ai-bridge/internal/httpapi"
	"github.com/Vovarama1992/tutor-ai-bridge/internal/logger"
	"github.com/Vovarama1992/tutor-ai-bridge/internal/student"
	"github.com/Vovarama1992/tutor-ai-bridge/internal/tutor"
)

type App struct {
	Log    *logger.Logger
	Config *config.Config

	db      *sql.DB
	catalog *tutor.Catalog
	server  *http.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	// --- DB (optional) ---
	var (
		db       *sql.DB
		contexts tutor.ContextSource = student.UnavailableSource{}
		repo     tutor.Repo          = tutor.NopRepo{}
	)
	if cfg.DatabaseURL != "" {
		db, err = openDB(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		contexts = student.NewAggregator(student.NewPostgresStore(db))
		repo = tutor.NewRepo(db)
	} else {
		log.Warn("DATABASE_URL is not set: student context and transcripts are disabled")
	}

	// --- Catalog ---
	var catalog *tutor.Catalog
	if cfg.CatalogPath != "" {
		catalog, err = tutor.LoadCatalog(cfg.CatalogPath, cfg.InferenceBaseURL, cfg.ChatBaseURL)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	} else {
		catalog = tutor.DefaultCatalog(cfg.InferenceBaseURL, cfg.ChatBaseURL)
	}

	// --- Tutor module wiring ---
	registry := prom.NewRegistry()
	metrics := tutor.NewMetrics(registry)

	completer := ai.NewClient(
		ai.NewInferenceClient(cfg.HuggingFaceAPIKey, cfg.ProviderRetries, log.With("component", "inference")),
		ai.NewChatClient(cfg.HuggingFaceAPIKey, log.With("component", "chat")),
	)
	fallback := tutor.NewFallback()
	router := tutor.NewRouter(catalog, completer, fallback, tutor.RouterOptions{
		Timeout:      cfg.ProviderTimeout,
		HistoryLimit: cfg.HistoryLimit,
		Translation: tutor.TranslationRules{
			LengthTolerance:  cfg.Translation.LengthTolerance,
			ShortOutputRunes: cfg.Translation.ShortOutputRunes,
		},
	}, log.With("component", "router"), metrics)

	if !cfg.ProvidersEnabled() {
		log.Warn("HUGGINGFACE_API_KEY is not set: every reply will come from the fallback responder")
	}
	svc := tutor.NewService(repo, contexts, router, fallback, cfg.ProvidersEnabled(), log.With("component", "tutor"), metrics)
	handler := tutor.NewHandler(svc, cfg.MaxRequestBytes, log)

	r := httpapi.NewRouter(log, registry, func(r chi.Router) {
		tutor.RegisterRoutes(r, handler)
	})

	// the whole catalog for one category may be tried before replying
	writeTimeout := cfg.ProviderTimeout*time.Duration(maxProviders(catalog)+1) + 10*time.Second

	return &App{
		Log:     log,
		Config:  cfg,
		db:      db,
		catalog: catalog,
		server:  httpapi.NewServer(":"+cfg.Port, r, writeTimeout),
	}, nil
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func maxProviders(c *tutor.Catalog) int {
	n := 0
	for _, cat := range tutor.Categories() {
		if l := len(c.ProvidersFor(cat)); l > n {
			n = l
		}
	}
	return n
}

func (a *App) Run(ctx context.Context) error {
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("listening", "addr", a.server.Addr)
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		a.Log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
	a.Log.Sync()
}
