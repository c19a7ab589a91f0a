package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/georges-crm-sync/internal/config"
	"github.com/xavierca1/georges-crm-sync/internal/infra/database"
	"github.com/xavierca1/georges-crm-sync/internal/infra/integration/pipedrive"
	"github.com/xavierca1/georges-crm-sync/internal/infra/observability"
	"github.com/xavierca1/georges-crm-sync/internal/usecase"
)

func main() {
	userID := flag.String("user", "", "id do usuário no banco")
	siren := flag.String("siren", "", "SIREN da empresa no CRM")
	flag.Parse()

	if err := run(*userID, *siren); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run(userID, siren string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	observability.InitLogger("crm-sync-once", cfg.LogLevel)

	stages, err := cfg.StageDirectory()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := database.OpenUserStore(ctx, cfg)
	if err != nil {
		return err
	}
	// fecha em qualquer saída, inclusive erro no sync
	defer store.Close(context.Background())

	crm := pipedrive.NewClient(cfg.CRMBaseURL, cfg.CRMAPIToken, stages)
	uc := usecase.NewSyncUserUseCase(store.Repo, crm, nil)

	out, err := uc.Execute(ctx, usecase.SyncUserInput{UserID: userID, Siren: siren})
	if err != nil {
		return err
	}

	log.Info().Str("run_id", out.RunID).Str("outcome", string(out.Outcome)).Msg("✅ Sync concluído")
	return nil
}
