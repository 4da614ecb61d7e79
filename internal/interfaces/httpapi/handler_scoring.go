package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/gridironhq/gridiron/internal/usecase"
)

type scoreWeekRequest struct {
	WeekID       string `json:"week_id" validate:"omitempty,max=64"`
	WeekNumber   *int   `json:"week_number" validate:"omitempty,min=1,max=30"`
	ForceRescore bool   `json:"force_rescore"`
	TestMode     bool   `json:"test_mode"`
}

func (h *Handler) ScoreWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreWeek")
	defer span.End()

	if h.scoringService == nil {
		writeError(ctx, w, fmt.Errorf("%w: scoring service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeScoreWeekRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.scoringService.ScoreWeek(ctx, usecase.ScoreWeekInput{
		WeekID:       req.WeekID,
		WeekNumber:   req.WeekNumber,
		ForceRescore: req.ForceRescore,
		TestMode:     req.TestMode,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "score week failed",
			"week_id", req.WeekID,
			"force_rescore", req.ForceRescore,
			"test_mode", req.TestMode,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, scoreWeekResponseDTO{
		Success: true,
		Message: scoreWeekMessage(report, req.TestMode),
		Stats: scoreWeekStatsDTO{
			WeekID:           report.WeekID,
			WeekNumber:       report.WeekNumber,
			LineupsProcessed: report.LineupsProcessed,
			LineupsScored:    report.LineupsScored,
			TotalSlots:       report.TotalSlots,
			TokenBonuses:     report.TokenBonuses,
			GamesAvailable:   report.GamesAvailable,
			StatsAvailable:   report.StatsAvailable,
			Errors:           report.ErrorCount,
		},
		Errors: report.Errors,
	})
}

func decodeScoreWeekRequest(r *http.Request) (scoreWeekRequest, error) {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req scoreWeekRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return scoreWeekRequest{}, nil
		}
		return scoreWeekRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}

func scoreWeekMessage(report usecase.RunReport, testMode bool) string {
	verb := "scored"
	if testMode {
		verb = "evaluated"
	}
	msg := fmt.Sprintf("week %d: %s %d of %d lineups", report.WeekNumber, verb, report.LineupsScored, report.LineupsProcessed)
	if report.ErrorCount > 0 {
		msg += fmt.Sprintf(" with %d errors", report.ErrorCount)
	}
	return msg
}
