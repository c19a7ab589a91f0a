package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xavierca1/georges-crm-sync/internal/entity"
)

type Outcome string

const (
	OutcomeNoUser            Outcome = "no_user"
	OutcomeNoPerson          Outcome = "no_person"
	OutcomeAlreadySubscribed Outcome = "already_subscribed"
	OutcomeNoDeal            Outcome = "no_deal"
	OutcomeDealStageUpdated  Outcome = "deal_stage_updated"

	// usado só nas métricas
	outcomeFailed = "failed"
)

type SyncUserUseCase struct {
	Users   UserRepository
	CRM     CRMClient
	Metrics SyncMetrics
}

func NewSyncUserUseCase(users UserRepository, crm CRMClient, metrics SyncMetrics) *SyncUserUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &SyncUserUseCase{
		Users:   users,
		CRM:     crm,
		Metrics: metrics,
	}
}

// TargetStage é a única regra de negócio para escolher o stage do deal.
func TargetStage(u *entity.User) entity.Stage {
	if u.HasBankAccount {
		return entity.StageOngoingTrials
	}
	return entity.StageOpportunities
}

// Execute roda o sync de um usuário numa única passada. Os desfechos "não encontrado"
// e "já assinante" encerram o fluxo sem erro.
func (uc *SyncUserUseCase) Execute(ctx context.Context, input SyncUserInput) (*SyncUserOutput, error) {
	if validationErrors := ValidateSyncUserInput(input); len(validationErrors) > 0 {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, e.Field+" ("+e.Message+")")
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed: " + strings.Join(msgs, ", "),
		}
	}

	userID, siren := input.UserID, input.Siren
	out := &SyncUserOutput{RunID: uuid.New().String()}

	logger := log.With().
		Str("run_id", out.RunID).
		Str("user_id", userID).
		Str("siren", siren).
		Logger()

	outcome, err := uc.run(ctx, logger, userID, siren)
	if err != nil {
		uc.Metrics.RecordSyncOutcome(outcomeFailed)
		logger.Error().Err(err).Msg("❌ Sync falhou")
		return nil, err
	}

	out.Outcome = outcome
	uc.Metrics.RecordSyncOutcome(string(outcome))
	return out, nil
}

func (uc *SyncUserUseCase) run(ctx context.Context, logger zerolog.Logger, userID, siren string) (Outcome, error) {
	// 1. Usuário
	user, err := uc.Users.FindByID(ctx, userID)
	if errors.Is(err, entity.ErrUserNotFound) {
		logger.Info().Msg("👤 Usuário não encontrado")
		return OutcomeNoUser, nil
	}
	if err != nil {
		return "", &TechnicalError{
			Code:    "USER_STORE_ERROR",
			Message: "falha ao buscar usuário: " + err.Error(),
			Err:     err,
		}
	}

	// 2. Pessoa no CRM
	personID, err := uc.CRM.FindPersonBySiren(ctx, siren)
	if err != nil {
		return "", uc.crmError("falha ao buscar pessoa no CRM", err)
	}
	if personID == "" {
		logger.Info().Msg("🔎 Nenhuma pessoa com esse SIREN no CRM")
		return OutcomeNoPerson, nil
	}
	logger = logger.With().Str("person_id", personID).Logger()

	// 3. Perfil sempre é enviado quando a pessoa existe
	if err := uc.CRM.UpdatePerson(ctx, personID, entity.NewPersonProfile(user, siren)); err != nil {
		return "", uc.crmError("falha ao atualizar pessoa no CRM", err)
	}
	logger.Info().Msg("✅ Pessoa atualizada no CRM")

	// 4. Assinante não mexe no deal
	if user.IsSubscribed {
		logger.Info().Msg("💳 Usuário já assinante, deal não alterado")
		return OutcomeAlreadySubscribed, nil
	}

	// 5. Deal aberto
	dealID, err := uc.CRM.FindOpenDealForPerson(ctx, personID)
	if err != nil {
		return "", uc.crmError("falha ao buscar deal aberto", err)
	}
	if dealID == "" {
		logger.Info().Msg("📭 Nenhum deal aberto para a pessoa")
		return OutcomeNoDeal, nil
	}

	// 6-8. Mesmo pipeline, novo stage
	stage := TargetStage(user)
	if err := uc.CRM.UpdateDealStage(ctx, dealID, stage); err != nil {
		if errors.Is(err, entity.ErrUnknownStageID) {
			return "", &DomainError{
				Code:    "UNKNOWN_STAGE_ID",
				Message: "deal " + dealID + " num stage fora da tabela configurada: " + err.Error(),
				Err:     err,
			}
		}
		return "", uc.crmError("falha ao atualizar stage do deal", err)
	}

	logger.Info().Str("deal_id", dealID).Str("stage", string(stage)).Msg("🚀 Deal movido de stage")
	return OutcomeDealStageUpdated, nil
}

func (uc *SyncUserUseCase) crmError(msg string, err error) error {
	uc.Metrics.RecordIntegrationError("pipedrive")
	return &TechnicalError{
		Code:    "CRM_ERROR",
		Message: msg + ": " + err.Error(),
		Err:     err,
	}
}

type noopMetrics struct{}

func (noopMetrics) RecordSyncOutcome(string)      {}
func (noopMetrics) RecordIntegrationError(string) {}
