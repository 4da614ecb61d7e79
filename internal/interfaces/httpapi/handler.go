package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gridironhq/gridiron/internal/domain/week"
	"github.com/gridironhq/gridiron/internal/platform/logging"
	"github.com/gridironhq/gridiron/internal/usecase"
)

type Handler struct {
	weekResolver   *usecase.WeekResolver
	scoringService *usecase.ScoringService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	weekResolver *usecase.WeekResolver,
	scoringService *usecase.ScoringService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		weekResolver:   weekResolver,
		scoringService: scoringService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeData(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type weekDTO struct {
	ID       string    `json:"id"`
	SeasonID string    `json:"season_id"`
	Number   int       `json:"number"`
	Status   string    `json:"status"`
	LocksAt  time.Time `json:"locks_at"`
}

func weekToDTO(item week.Week) weekDTO {
	return weekDTO{
		ID:       item.ID,
		SeasonID: item.SeasonID,
		Number:   item.Number,
		Status:   string(item.Status),
		LocksAt:  item.LocksAt,
	}
}

func (h *Handler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentWeek")
	defer span.End()

	if h.weekResolver == nil {
		writeError(ctx, w, fmt.Errorf("%w: week resolver is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	item, err := h.weekResolver.Current(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve current week failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusOK, weekToDTO(item))
}
