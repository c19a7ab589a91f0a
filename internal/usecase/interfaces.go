package usecase

import (
	"context"

	"github.com/xavierca1/georges-crm-sync/internal/entity"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*entity.User, error)
}

// CRMClient devolve "" nos Find* quando o recurso não existe.
type CRMClient interface {
	FindPersonBySiren(ctx context.Context, siren string) (string, error)
	UpdatePerson(ctx context.Context, personID string, profile entity.PersonProfile) error
	FindOpenDealForPerson(ctx context.Context, personID string) (string, error)
	UpdateDealStage(ctx context.Context, dealID string, stage entity.Stage) error
}

type SyncMetrics interface {
	RecordSyncOutcome(outcome string)
	RecordIntegrationError(service string)
}

type SyncUserInput struct {
	UserID string `json:"user_id"`
	Siren  string `json:"siren"`
}

type SyncUserOutput struct {
	RunID   string  `json:"run_id"`
	Outcome Outcome `json:"outcome"`
}
