package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/gridironhq/gridiron/internal/domain/fantasy"
	"github.com/gridironhq/gridiron/internal/domain/game"
	"github.com/gridironhq/gridiron/internal/domain/lineup"
	"github.com/gridironhq/gridiron/internal/domain/player"
	"github.com/gridironhq/gridiron/internal/domain/stats"
	"github.com/gridironhq/gridiron/internal/domain/token"
	"github.com/gridironhq/gridiron/internal/platform/id"
	"github.com/gridironhq/gridiron/internal/platform/logging"
	"github.com/gridironhq/gridiron/internal/platform/resilience"
)

// maxReportErrors caps the error sample carried back to the caller. The
// full count is always reported.
const maxReportErrors = 5

// ScoreWeekInput selects the week and tunes run behavior. TestMode computes
// every total but skips all writes.
type ScoreWeekInput struct {
	WeekID       string
	WeekNumber   *int
	ForceRescore bool
	TestMode     bool
}

// RunReport summarizes one scoring run. Errors holds at most
// maxReportErrors entries; ErrorCount is the full count.
type RunReport struct {
	WeekID           string
	WeekNumber       int
	LineupsProcessed int
	LineupsScored    int
	TotalSlots       int
	TokenBonuses     int
	GamesAvailable   int
	StatsAvailable   int
	ErrorCount       int
	Errors           []string
}

// ScoringService orchestrates a week's scoring run: resolve the week, load
// lineups and finalized stats, walk each lineup sequentially, and persist
// totals and token evaluations as independent best-effort writes.
type ScoringService struct {
	resolver   *WeekResolver
	lineupRepo lineup.Repository
	playerRepo player.Repository
	gameRepo   game.Repository
	statsRepo  stats.Repository
	tokenRepo  token.Repository
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time

	// weekFlight coalesces overlapping runs for the same week so two
	// concurrent triggers cannot interleave writes.
	weekFlight resilience.SingleFlight
}

func NewScoringService(
	resolver *WeekResolver,
	lineupRepo lineup.Repository,
	playerRepo player.Repository,
	gameRepo game.Repository,
	statsRepo stats.Repository,
	tokenRepo token.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		resolver:   resolver,
		lineupRepo: lineupRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		statsRepo:  statsRepo,
		tokenRepo:  tokenRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// ScoreWeek runs one scoring pass. Week resolution and the initial reads
// are the only fatal failures; everything inside the per-lineup loop is
// recorded and skipped over.
func (s *ScoringService) ScoreWeek(ctx context.Context, input ScoreWeekInput) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreWeek")
	defer span.End()

	target, err := s.resolver.Resolve(ctx, WeekSelector{
		WeekID:     input.WeekID,
		WeekNumber: input.WeekNumber,
	})
	if err != nil {
		return RunReport{}, err
	}

	key := "scoring:week:" + target.ID
	result, err, shared := s.weekFlight.Do(key, func() (any, error) {
		report, runErr := s.scoreWeekOnce(ctx, target.ID, target.Number, input)
		if runErr != nil {
			return RunReport{}, runErr
		}
		return report, nil
	})
	if err != nil {
		return RunReport{}, err
	}
	if shared {
		s.logger.InfoContext(ctx, "joined in-flight scoring run", "week_id", target.ID)
	}

	report, _ := result.(RunReport)
	return report, nil
}

func (s *ScoringService) scoreWeekOnce(ctx context.Context, weekID string, weekNumber int, input ScoreWeekInput) (RunReport, error) {
	report := RunReport{WeekID: weekID, WeekNumber: weekNumber}

	var (
		lineups []lineup.Lineup
		players []player.Player
		games   []game.Game
		records []stats.Record
	)

	// The initial reads are independent; fetch them in parallel. Stats
	// depend on games, so those two stay chained.
	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		items, err := s.lineupRepo.ListByWeek(ctx, weekID)
		if err != nil {
			return fmt.Errorf("%w: list lineups: %v", ErrDependencyUnavailable, err)
		}
		lineups = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("%w: list players: %v", ErrDependencyUnavailable, err)
		}
		players = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.gameRepo.ListByWeek(ctx, weekID)
		if err != nil {
			return fmt.Errorf("%w: list games: %v", ErrDependencyUnavailable, err)
		}
		games = items

		gameIDs := make([]string, 0, len(items))
		for _, g := range items {
			gameIDs = append(gameIDs, g.ID)
		}
		found, err := s.statsRepo.ListFinalizedByGames(ctx, gameIDs)
		if err != nil {
			return fmt.Errorf("%w: list finalized stats: %v", ErrDependencyUnavailable, err)
		}
		records = found
		return nil
	})
	if err := p.Wait(); err != nil {
		return RunReport{}, err
	}

	report.GamesAvailable = len(games)
	report.StatsAvailable = len(records)

	if len(lineups) == 0 {
		s.logger.InfoContext(ctx, "no lineups submitted for week", "week_id", weekID)
		return report, nil
	}

	// Request-lifetime lookup maps. When a player carries more than one
	// finalized record, the later read wins.
	statByPlayer := make(map[string]stats.StatLine, len(records))
	for _, record := range records {
		statByPlayer[record.PlayerID] = record.Line
	}
	positionByPlayer := make(map[string]player.Position, len(players))
	for _, item := range players {
		positionByPlayer[item.ID] = item.Position
	}

	var errs []string
	for _, item := range lineups {
		report.LineupsProcessed++

		if item.Scored() && !input.ForceRescore && !input.TestMode {
			continue
		}

		total, evals, slots, bonuses, panicked, lineupErrs := s.scoreLineup(item, statByPlayer, positionByPlayer)
		report.TotalSlots += slots
		report.TokenBonuses += bonuses
		errs = append(errs, lineupErrs...)

		// A partial total from an aborted walk must never be persisted
		// or counted as scored.
		if panicked {
			continue
		}

		if input.TestMode {
			report.LineupsScored++
			continue
		}

		if err := s.lineupRepo.UpdateScore(ctx, item.ID, total); err != nil {
			errs = append(errs, fmt.Sprintf("lineup %s: update score: %v", item.ID, err))
		} else {
			report.LineupsScored++
		}

		// Evaluation upserts are independent of the score write; a
		// failure on one side never rolls back the other.
		for _, ev := range evals {
			if err := s.tokenRepo.UpsertEvaluation(ctx, ev); err != nil {
				errs = append(errs, fmt.Sprintf("lineup %s: upsert token evaluation slot=%s: %v", item.ID, ev.SlotID, err))
			}
		}
	}

	report.ErrorCount = len(errs)
	if len(errs) > maxReportErrors {
		errs = errs[:maxReportErrors]
	}
	report.Errors = errs

	s.logger.InfoContext(ctx, "scoring run finished",
		"week_id", weekID,
		"lineups_processed", report.LineupsProcessed,
		"lineups_scored", report.LineupsScored,
		"errors", report.ErrorCount,
		"test_mode", input.TestMode,
	)
	return report, nil
}

// scoreLineup computes one lineup's total without touching storage. It
// never fails the run: anything unexpected lands in the returned error
// strings.
func (s *ScoringService) scoreLineup(
	item lineup.Lineup,
	statByPlayer map[string]stats.StatLine,
	positionByPlayer map[string]player.Position,
) (total float64, evals []token.Evaluation, slots, bonuses int, panicked bool, errs []string) {
	defer func() {
		// One bad lineup must never abort the batch.
		if r := recover(); r != nil {
			panicked = true
			errs = append(errs, fmt.Sprintf("lineup %s: scoring panic: %v", item.ID, r))
		}
	}()

	now := s.now().UTC()
	for _, slot := range item.Slots {
		if slot.PlayerID == nil {
			continue
		}
		slots++

		line := statByPlayer[*slot.PlayerID]
		slotPoints := fantasy.Points(line, positionByPlayer[*slot.PlayerID])

		if slot.TokenTypeID != nil {
			outcome := token.Evaluate(slot.TokenRule, line)
			if outcome.Satisfied {
				slotPoints += outcome.Points
				// A satisfied condition with an unrecognized reward
				// awards nothing, so it is not a bonus.
				if outcome.Points != 0 {
					bonuses++
				}
			}

			evalID, err := s.idGen.NewID()
			if err != nil {
				errs = append(errs, fmt.Sprintf("lineup %s: generate evaluation id slot=%s: %v", item.ID, slot.ID, err))
				total += slotPoints
				continue
			}
			evals = append(evals, token.Evaluation{
				ID:          evalID,
				SlotID:      slot.ID,
				TokenTypeID: *slot.TokenTypeID,
				Satisfied:   outcome.Satisfied,
				BonusPoints: outcome.Points,
				Rule:        slot.TokenRule,
				EvaluatedAt: now,
			})
		}

		total += slotPoints
	}

	return fantasy.Round2(total), evals, slots, bonuses, false, errs
}
