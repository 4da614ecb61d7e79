package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gridironhq/gridiron/internal/domain/game"
	"github.com/gridironhq/gridiron/internal/domain/lineup"
	"github.com/gridironhq/gridiron/internal/domain/player"
	"github.com/gridironhq/gridiron/internal/domain/stats"
	"github.com/gridironhq/gridiron/internal/domain/token"
	"github.com/gridironhq/gridiron/internal/domain/week"
	"github.com/gridironhq/gridiron/internal/platform/id"
	"github.com/gridironhq/gridiron/internal/platform/logging"
)

type stubLineupRepo struct {
	lineups []lineup.Lineup
	updated map[string]float64
	failIDs map[string]bool
	listErr error
}

var _ lineup.Repository = (*stubLineupRepo)(nil)

func (s *stubLineupRepo) ListByWeek(_ context.Context, _ string) ([]lineup.Lineup, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.lineups, nil
}

func (s *stubLineupRepo) UpdateScore(_ context.Context, lineupID string, totalPoints float64) error {
	if s.failIDs[lineupID] {
		return errors.New("write refused")
	}
	if s.updated == nil {
		s.updated = make(map[string]float64)
	}
	s.updated[lineupID] = totalPoints
	return nil
}

type stubPlayerRepo struct {
	players []player.Player
	err     error
}

var _ player.Repository = (*stubPlayerRepo)(nil)

func (s *stubPlayerRepo) List(_ context.Context) ([]player.Player, error) {
	return s.players, s.err
}

type stubGameRepo struct {
	games []game.Game
	err   error
}

var _ game.Repository = (*stubGameRepo)(nil)

func (s *stubGameRepo) ListByWeek(_ context.Context, _ string) ([]game.Game, error) {
	return s.games, s.err
}

type stubStatsRepo struct {
	records []stats.Record
	err     error
}

var _ stats.Repository = (*stubStatsRepo)(nil)

func (s *stubStatsRepo) ListFinalizedByGames(_ context.Context, _ []string) ([]stats.Record, error) {
	return s.records, s.err
}

type stubTokenRepo struct {
	evals map[string]token.Evaluation
	err   error
}

var _ token.Repository = (*stubTokenRepo)(nil)

func (s *stubTokenRepo) UpsertEvaluation(_ context.Context, ev token.Evaluation) error {
	if s.err != nil {
		return s.err
	}
	if s.evals == nil {
		s.evals = make(map[string]token.Evaluation)
	}
	s.evals[ev.SlotID+":"+ev.TokenTypeID] = ev
	return nil
}

func strPtr(v string) *string { return &v }

func testWeekRepo() *stubWeekRepo {
	return &stubWeekRepo{byID: map[string]week.Week{
		"w1": {ID: "w1", SeasonID: "s1", Number: 1, Status: week.StatusCompleted},
	}}
}

func passingSlot(lineupID string) lineup.Slot {
	return lineup.Slot{
		ID:       lineupID + "-qb",
		LineupID: lineupID,
		Label:    "QB",
		PlayerID: strPtr("qb1"),
		CardID:   strPtr("card-" + lineupID + "-qb"),
	}
}

func newTestService(
	lineups *stubLineupRepo,
	tokens *stubTokenRepo,
) *ScoringService {
	players := &stubPlayerRepo{players: []player.Player{
		{ID: "qb1", Name: "Quarterback One", Position: player.PositionQuarterback},
		{ID: "wr1", Name: "Receiver One", Position: player.PositionWideReceiver},
	}}
	games := &stubGameRepo{games: []game.Game{{ID: "g1", WeekID: "w1"}}}
	statRepo := &stubStatsRepo{records: []stats.Record{
		{PlayerID: "qb1", GameID: "g1", Finalized: true, Line: stats.StatLine{
			stats.MetricPassingYards:         300,
			stats.MetricPassingTouchdowns:    3,
			stats.MetricPassingInterceptions: 1,
		}},
		{PlayerID: "wr1", GameID: "g1", Finalized: true, Line: stats.StatLine{
			stats.MetricReceivingYards:      120,
			stats.MetricReceptions:          8,
			stats.MetricReceivingTouchdowns: 1,
		}},
	}}

	return NewScoringService(
		NewWeekResolver(testWeekRepo()),
		lineups,
		players,
		games,
		statRepo,
		tokens,
		id.NewRandomGenerator(),
		logging.NewNop(),
	)
}

func TestScoreWeekComputesTotalsAndEvaluations(t *testing.T) {
	rule := &token.Rule{
		Condition: token.Condition{Kind: token.ConditionStat, Metric: stats.MetricReceivingYards, Op: ">=", Value: 100},
		Reward:    token.Reward{Kind: token.RewardPoints, Value: 5},
	}
	lineups := &stubLineupRepo{lineups: []lineup.Lineup{{
		ID:     "l1",
		TeamID: "t1",
		WeekID: "w1",
		Status: lineup.StatusLocked,
		Slots: []lineup.Slot{
			passingSlot("l1"),
			{
				ID:          "l1-wr",
				LineupID:    "l1",
				Label:       "WR1",
				PlayerID:    strPtr("wr1"),
				TokenTypeID: strPtr("tok-hundred"),
				TokenRule:   rule,
			},
			{ID: "l1-flex", LineupID: "l1", Label: "FLEX"},
			{ID: "l1-te", LineupID: "l1", Label: "TE", PlayerID: strPtr("te-no-stats")},
		},
	}}}
	tokens := &stubTokenRepo{}
	svc := newTestService(lineups, tokens)

	report, err := svc.ScoreWeek(context.Background(), ScoreWeekInput{WeekID: "w1"})
	if err != nil {
		t.Fatalf("ScoreWeek: %v", err)
	}

	// QB 22.00 + WR 26.00 + token 5 + stat-less TE 0.
	if got := lineups.updated["l1"]; got != 53.00 {
		t.Fatalf("persisted total = %v, want 53.00", got)
	}
	if report.LineupsProcessed != 1 || report.LineupsScored != 1 {
		t.Fatalf("report counts = %+v", report)
	}
	// The empty FLEX slot is not processed; the stat-less TE slot is.
	if report.TotalSlots != 3 {
		t.Fatalf("total slots = %d, want 3", report.TotalSlots)
	}
	if report.TokenBonuses != 1 {
		t.Fatalf("token bonuses = %d, want 1", report.TokenBonuses)
	}
	if report.GamesAvailable != 1 || report.StatsAvailable != 2 {
		t.Fatalf("availability counts = %+v", report)
	}
	if report.ErrorCount != 0 {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}

	ev, ok := tokens.evals["l1-wr:tok-hundred"]
	if !ok {
		t.Fatal("expected a token evaluation for slot l1-wr")
	}
	if !ev.Satisfied || ev.BonusPoints != 5 {
		t.Fatalf("evaluation = %+v, want satisfied with 5 bonus points", ev)
	}
	if ev.Rule == nil || ev.Rule.Condition.Metric != stats.MetricReceivingYards {
		t.Fatalf("evaluation should snapshot the rule, got %+v", ev.Rule)
	}
}

func TestScoreWeekSkipsScoredUnlessForced(t *testing.T) {
	points := 10.0
	makeLineups := func() *stubLineupRepo {
		return &stubLineupRepo{lineups: []lineup.Lineup{{
			ID:          "l1",
			WeekID:      "w1",
			Status:      lineup.StatusScored,
			TotalPoints: &points,
			Slots:       []lineup.Slot{passingSlot("l1")},
		}}}
	}

	lineups := makeLineups()
	svc := newTestService(lineups, &stubTokenRepo{})
	report, err := svc.ScoreWeek(context.Background(), ScoreWeekInput{WeekID: "w1"})
	if err != nil {
		t.Fatalf("ScoreWeek: %v", err)
	}
	if report.LineupsProcessed != 1 || report.LineupsScored != 0 {
		t.Fatalf("report = %+v, want processed without scoring", report)
	}
	if len(lineups.updated) != 0 {
		t.Fatalf("scored lineup was rewritten: %v", lineups.updated)
	}

	lineups = makeLineups()
	svc = newTestService(lineups, &stubTokenRepo{})
	report, err = svc.ScoreWeek(context.Background(), ScoreWeekInput{WeekID: "w1", ForceRescore: true})
	if err != nil {
		t.Fatalf("ScoreWeek force: %v", err)
	}
	if report.LineupsScored != 1 {
		t.Fatalf("force rescore report = %+v", report)
	}
	if got := lineups.updated["l1"]; got != 22.00 {
		t.Fatalf("recomputed total = %v, want 22.00", got)
	}
}

func TestScoreWeekIsolatesUpdateFailures(t *testing.T) {
	items := make([]lineup.Lineup, 0, 3)
	for i := 1; i <= 3; i++ {
		lineupID := fmt.Sprintf("l%d", i)
		items = append(items, lineup.Lineup{
			ID:     lineupID,
			WeekID: "w1",
			Status: lineup.StatusLocked,
			Slots:  []lineup.Slot{passingSlot(lineupID)},
		})
	}
	lineups := &stubLineupRepo{lineups: items, failIDs: map[string]bool{"l2": true}}
	svc := newTestService(lineups, &stubTokenRepo{})

	report, err := svc.ScoreWeek(context.Background(), ScoreWeekInput{WeekID: "w1"})
	if err != nil {
		t.Fatalf("ScoreWeek: %v", err)
	}
	if report.LineupsProcessed != 3 || report.LineupsScored != 2 {
		t.Fatalf("report = %+v, want 3 processed / 2 scored", report)
	}
	if report.ErrorCount != 1 || len(report.Errors) != 1 {
		t.Fatalf("errors = %+v", report)
	}
	if _, ok := lineups.updated["l3"]; !ok {
		t.Fatal("lineup after the failing one was not scored")
	}
}

func TestScoreWeekCapsErrorSample(t *testing.T) {
	items := make([]lineup.Lineup, 0, 8)
	failIDs := make(map[string]bool, 8)
	for i := 1; i <= 8; i++ {
		lineupID := fmt.Sprintf("l%d", i)
		items = append(items, lineup.Lineup{
			ID:     lineupID,
			WeekID: "w1",
			Status: lineup.StatusLocked,
			Slots:  []lineup.Slot{passingSlot(lineupID)},
		})
		failIDs[lineupID] = true
	}
	lineups := &stubLineupRepo{lineups: items, failIDs: failIDs}
	svc := newTestService(lineups, &stubTokenRepo{})

	report, err := svc.ScoreWeek(context.Background(), ScoreWeekInput{WeekID: "w1"})
	if err != nil {
		t.Fatalf("ScoreWeek: %v", err)
	}
	if report.ErrorCount != 8 {
		t.Fatalf("error count = %d, want 8", report.ErrorCount)
	}
	if len(report.Errors) != maxReportErrors {
		t.Fatalf("error sample = %d entries, want %d", len(report.Errors), maxReportErrors)
	}
}

func TestScoreWeekTestModeSkipsWrites(t *testing.T) {
	lineups := &stubLineupRepo{lineups: []lineup.Lineup{{
		ID:     "l1",
		WeekID: "w1",
		Status: lineup.StatusScored,
		Slots:  []lineup.Slot{passingSlot("l1")},
	}}}
	tokens := &stubTokenRepo{}
	svc := newTestService(lineups, tokens)

	report, err := svc.ScoreWeek(context.Background(), ScoreWeekInput{WeekID: "w1", TestMode: true})
	if err != nil {
		t.Fatalf("ScoreWeek: %v", err)
	}
	// Test mode recomputes even scored lineups but persists nothing.
	if report.LineupsScored != 1 {
		t.Fatalf("report = %+v", report)
	}
	if len(lineups.updated) != 0 || len(tokens.evals) != 0 {
		t.Fatalf("test mode wrote to storage: %v %v", lineups.updated, tokens.evals)
	}
}

func TestScoreWeekEmptyWeek(t *testing.T) {
	svc := newTestService(&stubLineupRepo{}, &stubTokenRepo{})

	report, err := svc.ScoreWeek(context.Background(), ScoreWeekInput{WeekID: "w1"})
	if err != nil {
		t.Fatalf("ScoreWeek: %v", err)
	}
	if report.LineupsProcessed != 0 || report.ErrorCount != 0 {
		t.Fatalf("report = %+v, want empty success", report)
	}
}

func TestScoreWeekFatalOnFetchFailure(t *testing.T) {
	lineups := &stubLineupRepo{listErr: errors.New("connection reset")}
	svc := newTestService(lineups, &stubTokenRepo{})

	_, err := svc.ScoreWeek(context.Background(), ScoreWeekInput{WeekID: "w1"})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

type panicIDGenerator struct{}

func (panicIDGenerator) NewID() (string, error) { panic("id backend offline") }

func TestScoreWeekPanicDiscardsPartialTotal(t *testing.T) {
	rule := &token.Rule{
		Condition: token.Condition{Kind: token.ConditionStat, Metric: stats.MetricReceivingYards, Op: ">=", Value: 100},
		Reward:    token.Reward{Kind: token.RewardPoints, Value: 5},
	}
	lineups := &stubLineupRepo{lineups: []lineup.Lineup{{
		ID:     "l1",
		WeekID: "w1",
		Status: lineup.StatusLocked,
		Slots: []lineup.Slot{
			passingSlot("l1"),
			{
				ID:          "l1-wr",
				LineupID:    "l1",
				Label:       "WR1",
				PlayerID:    strPtr("wr1"),
				TokenTypeID: strPtr("tok-hundred"),
				TokenRule:   rule,
			},
		},
	}}}
	tokens := &stubTokenRepo{}
	svc := newTestService(lineups, tokens)
	svc.idGen = panicIDGenerator{}

	report, err := svc.ScoreWeek(context.Background(), ScoreWeekInput{WeekID: "w1"})
	if err != nil {
		t.Fatalf("ScoreWeek: %v", err)
	}
	// The QB slot was already worth 22.00 when the token slot blew up;
	// that partial sum must not reach storage or count as scored.
	if len(lineups.updated) != 0 {
		t.Fatalf("partial total was persisted: %v", lineups.updated)
	}
	if len(tokens.evals) != 0 {
		t.Fatalf("evaluations written for an aborted lineup: %v", tokens.evals)
	}
	if report.LineupsProcessed != 1 || report.LineupsScored != 0 {
		t.Fatalf("report = %+v, want 1 processed / 0 scored", report)
	}
	if report.ErrorCount != 1 || !strings.Contains(report.Errors[0], "scoring panic") {
		t.Fatalf("errors = %+v, want one scoring panic entry", report.Errors)
	}
}

func TestScoreWeekZeroPointRewardIsNotABonus(t *testing.T) {
	rule := &token.Rule{
		Condition: token.Condition{Kind: token.ConditionStat, Metric: stats.MetricReceivingYards, Op: ">=", Value: 100},
		Reward:    token.Reward{Kind: "multiplier", Value: 5},
	}
	lineups := &stubLineupRepo{lineups: []lineup.Lineup{{
		ID:     "l1",
		WeekID: "w1",
		Status: lineup.StatusLocked,
		Slots: []lineup.Slot{{
			ID:          "l1-wr",
			LineupID:    "l1",
			Label:       "WR1",
			PlayerID:    strPtr("wr1"),
			TokenTypeID: strPtr("tok-hundred"),
			TokenRule:   rule,
		}},
	}}}
	tokens := &stubTokenRepo{}
	svc := newTestService(lineups, tokens)

	report, err := svc.ScoreWeek(context.Background(), ScoreWeekInput{WeekID: "w1"})
	if err != nil {
		t.Fatalf("ScoreWeek: %v", err)
	}
	// WR base 26.00, unrecognized reward adds nothing.
	if got := lineups.updated["l1"]; got != 26.00 {
		t.Fatalf("persisted total = %v, want 26.00", got)
	}
	if report.TokenBonuses != 0 {
		t.Fatalf("token bonuses = %d, want 0 for a zero-point reward", report.TokenBonuses)
	}
	ev, ok := tokens.evals["l1-wr:tok-hundred"]
	if !ok {
		t.Fatal("expected a token evaluation for slot l1-wr")
	}
	if !ev.Satisfied || ev.BonusPoints != 0 {
		t.Fatalf("evaluation = %+v, want satisfied with 0 bonus points", ev)
	}
}

func TestScoreWeekUnknownWeekFailsFast(t *testing.T) {
	svc := newTestService(&stubLineupRepo{}, &stubTokenRepo{})

	_, err := svc.ScoreWeek(context.Background(), ScoreWeekInput{WeekID: "nope"})
	if !errors.Is(err, ErrWeekNotFound) {
		t.Fatalf("expected ErrWeekNotFound, got %v", err)
	}
}
