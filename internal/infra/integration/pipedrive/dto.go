package pipedrive

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/xavierca1/georges-crm-sync/internal/entity"
)

// resourceID aceita ids como string ou número.
type resourceID string

func (id *resourceID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = resourceID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id inválido %s: %w", string(b), err)
	}
	*id = resourceID(n.String())
	return nil
}

type resourceRef struct {
	ID resourceID `json:"id"`
}

type listResponse struct {
	Data []resourceRef `json:"data"`
}

type dealResponse struct {
	Data *struct {
		ID      resourceID     `json:"id"`
		StageID entity.StageID `json:"stage_id"`
	} `json:"data"`
}

type updateDealStageRequest struct {
	StageID entity.StageID `json:"stage_id"`
}

// APIError é devolvido para qualquer resposta fora de 2xx.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pipedrive %s: status %d - %s", e.Operation, e.StatusCode, e.Body)
}
