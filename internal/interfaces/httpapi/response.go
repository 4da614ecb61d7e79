package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/gridironhq/gridiron/internal/usecase"
)

type scoreWeekStatsDTO struct {
	WeekID           string `json:"week_id"`
	WeekNumber       int    `json:"week_number"`
	LineupsProcessed int    `json:"lineups_processed"`
	LineupsScored    int    `json:"lineups_scored"`
	TotalSlots       int    `json:"total_slots"`
	TokenBonuses     int    `json:"token_bonuses"`
	GamesAvailable   int    `json:"games_available"`
	StatsAvailable   int    `json:"stats_available"`
	Errors           int    `json:"errors"`
}

type scoreWeekResponseDTO struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Stats   scoreWeekStatsDTO `json:"stats"`
	Errors  []string          `json:"errors,omitempty"`
}

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorResponseDTO struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeData(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, dataEnvelope{Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	status, reason := mapError(err)
	body := errorResponseDTO{Error: reason}
	if status != http.StatusInternalServerError {
		body.Details = err.Error()
	}
	writeJSON(ctx, w, status, body)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, errorResponseDTO{Error: "internal server error"})
}

// mapError keeps the wire contract small: resolution and read failures are
// the caller's problem (400), auth failures are 401, anything unexpected is
// a plain 500.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, usecase.ErrWeekNotFound):
		return http.StatusBadRequest, "week not found"
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusBadRequest, "dependency unavailable"
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
