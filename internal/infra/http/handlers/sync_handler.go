package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/xavierca1/georges-crm-sync/internal/usecase"
)

type UserSyncer interface {
	Execute(ctx context.Context, input usecase.SyncUserInput) (*usecase.SyncUserOutput, error)
}

type SyncHandler struct {
	SyncUserUC UserSyncer
}

func NewSyncHandler(uc UserSyncer) *SyncHandler {
	return &SyncHandler{SyncUserUC: uc}
}

type syncRequest struct {
	Siren string `json:"siren"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Handle (POST /users/{userId}/sync)
func (h *SyncHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_JSON", Message: err.Error()})
		return
	}

	output, err := h.SyncUserUC.Execute(r.Context(), usecase.SyncUserInput{
		UserID: chi.URLParam(r, "userId"),
		Siren:  req.Siren,
	})
	if err != nil {
		status, body := errorStatus(err)
		if status >= 500 {
			log.Error().Err(err).Str("code", body.Error).Msg("❌ Erro no sync")
		}
		writeJSON(w, status, body)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func errorStatus(err error) (int, errorResponse) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		if de.Code == "VALIDATION_ERROR" {
			return http.StatusBadRequest, errorResponse{Error: de.Code, Message: de.Message}
		}
		return http.StatusInternalServerError, errorResponse{Error: de.Code, Message: de.Message}
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		return http.StatusBadGateway, errorResponse{Error: te.Code, Message: te.Message}
	}

	return http.StatusInternalServerError, errorResponse{Error: "INTERNAL_ERROR", Message: err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
