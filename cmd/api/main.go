package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/georges-crm-sync/internal/config"
	"github.com/xavierca1/georges-crm-sync/internal/infra/database"
	"github.com/xavierca1/georges-crm-sync/internal/infra/http/handlers"
	metrics "github.com/xavierca1/georges-crm-sync/internal/infra/http/middleware"
	"github.com/xavierca1/georges-crm-sync/internal/infra/integration/pipedrive"
	"github.com/xavierca1/georges-crm-sync/internal/infra/observability"
	"github.com/xavierca1/georges-crm-sync/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config inválida")
	}
	observability.InitLogger("crm-sync", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Tabela de stages (imutável, compartilhada por todos os syncs)
	stages, err := cfg.StageDirectory()
	if err != nil {
		log.Fatal().Err(err).Msg("tabela de stages inválida")
	}

	// 2. Banco de usuários
	store, err := database.OpenUserStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.UserStore).Msg("falha ao abrir o banco")
	}
	defer store.Close(context.Background())

	// 3. CRM + UseCase
	crm := pipedrive.NewClient(cfg.CRMBaseURL, cfg.CRMAPIToken, stages)
	syncUC := usecase.NewSyncUserUseCase(store.Repo, crm, metrics.SyncRecorder{})

	// 4. Handlers
	syncHandler := handlers.NewSyncHandler(syncUC)
	healthHandler := handlers.NewHealthHandler(store, store.Name, cfg.CRMAPIToken != "")

	// 5. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CorsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/users/{userId}/sync", syncHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", cfg.Port).Str("store", store.Name).Msg("🔥 CRM sync rodando")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("servidor parou")
	}
}
