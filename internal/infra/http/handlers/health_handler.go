package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Pinger é satisfeito pelos wrappers de *sql.DB e *mongo.Client em cmd/api.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	UserStore     Pinger
	StoreName     string
	CRMConfigured bool
	StartTime     time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(store Pinger, storeName string, crmConfigured bool) *HealthHandler {
	return &HealthHandler{
		UserStore:     store,
		StoreName:     storeName,
		CRMConfigured: crmConfigured,
		StartTime:     time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.UserStore != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.UserStore.Ping(ctx); err != nil {
			deps[h.StoreName] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps[h.StoreName] = "healthy"
		}
	} else {
		deps[h.StoreName] = "not configured"
	}

	if h.CRMConfigured {
		deps["pipedrive"] = "configured"
	} else {
		deps["pipedrive"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
