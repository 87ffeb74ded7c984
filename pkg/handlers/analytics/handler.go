package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/de-tools/aurascale/pkg/adapters"
	"github.com/de-tools/aurascale/pkg/models/api"
	"github.com/de-tools/aurascale/pkg/models/domain"
	"github.com/de-tools/aurascale/pkg/services/analytics"
	"github.com/rs/zerolog"
)

const healthStatus = "AuraScale API is Healthy"

type Handler struct {
	svc analytics.Service
}

func NewHandler(svc analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	switch result := h.svc.Resources(ctx).(type) {
	case domain.AnalyticsSuccess:
		writeJSON(w, r, http.StatusOK, api.AnalyticsSuccessResponse{
			Success: true,
			Data:    adapters.MapResourcesDomainToApi(result.Resources),
		})
	case domain.AnalyticsFailure:
		logger.Error().
			Err(result.Err).
			Str("reason", string(result.Reason)).
			Msg("failed to fetch analytics")
		writeJSON(w, r, http.StatusInternalServerError, failureResponse(result))
	default:
		logger.Error().Msgf("unexpected analytics result %T", result)
		writeJSON(w, r, http.StatusInternalServerError, failureResponse(domain.AnalyticsFailure{
			Reason:  domain.FailureUnknown,
			Message: domain.AnalyticsFailureMessage,
		}))
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, api.HealthResponse{Status: healthStatus})
}

func failureResponse(f domain.AnalyticsFailure) api.AnalyticsFailureResponse {
	resp := api.AnalyticsFailureResponse{
		Success: false,
		Reason:  string(f.Reason),
		Message: f.Message,
	}
	if f.Err != nil {
		resp.Error = f.Err.Error()
	}
	return resp
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
