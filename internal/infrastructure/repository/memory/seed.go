package memory

import (
	"time"

	"github.com/gridironhq/gridiron/internal/domain/game"
	"github.com/gridironhq/gridiron/internal/domain/lineup"
	"github.com/gridironhq/gridiron/internal/domain/player"
	"github.com/gridironhq/gridiron/internal/domain/stats"
	"github.com/gridironhq/gridiron/internal/domain/token"
	"github.com/gridironhq/gridiron/internal/domain/week"
)

// Fixtures bundles one in-memory repository per entity, pre-populated for
// local development without a database.
type Fixtures struct {
	Weeks   *WeekRepository
	Lineups *LineupRepository
	Players *PlayerRepository
	Games   *GameRepository
	Stats   *StatsRepository
	Tokens  *TokenRepository
}

// Seed builds a small but complete dataset: one season, two weeks, two
// games, a handful of players with finalized stat lines, and two lineups
// (one carrying a boost token).
func Seed() *Fixtures {
	f := &Fixtures{
		Weeks:   NewWeekRepository(),
		Lineups: NewLineupRepository(),
		Players: NewPlayerRepository(),
		Games:   NewGameRepository(),
		Stats:   NewStatsRepository(),
		Tokens:  NewTokenRepository(),
	}

	f.Weeks.PutSeason(week.Season{ID: "season-2025", League: week.LeagueNFL, Year: 2025})
	f.Weeks.PutWeek(week.Week{
		ID:       "week-2025-1",
		SeasonID: "season-2025",
		Number:   1,
		Status:   week.StatusCompleted,
		LocksAt:  time.Date(2025, time.September, 7, 17, 0, 0, 0, time.UTC),
	})
	f.Weeks.PutWeek(week.Week{
		ID:       "week-2025-2",
		SeasonID: "season-2025",
		Number:   2,
		Status:   week.StatusActive,
		LocksAt:  time.Date(2025, time.September, 14, 17, 0, 0, 0, time.UTC),
	})

	f.Games.Put(game.Game{
		ID:       "game-1",
		WeekID:   "week-2025-1",
		HomeTeam: "PHI",
		AwayTeam: "DAL",
		StartsAt: time.Date(2025, time.September, 7, 17, 0, 0, 0, time.UTC),
		Status:   "final",
	})
	f.Games.Put(game.Game{
		ID:       "game-2",
		WeekID:   "week-2025-1",
		HomeTeam: "KC",
		AwayTeam: "BUF",
		StartsAt: time.Date(2025, time.September, 7, 20, 25, 0, 0, time.UTC),
		Status:   "final",
	})

	f.Players.Put(player.Player{ID: "player-qb", Name: "Sam Archer", Position: player.PositionQuarterback, ExternalRef: "ext-1001"})
	f.Players.Put(player.Player{ID: "player-rb", Name: "Marcus Vale", Position: player.PositionRunningBack, ExternalRef: "ext-1002"})
	f.Players.Put(player.Player{ID: "player-wr", Name: "Dre Holloway", Position: player.PositionWideReceiver, ExternalRef: "ext-1003"})
	f.Players.Put(player.Player{ID: "player-te", Name: "Cole Brandt", Position: player.PositionTightEnd, ExternalRef: "ext-1004"})

	f.Stats.Put(stats.Record{PlayerID: "player-qb", GameID: "game-1", Finalized: true, Line: stats.StatLine{
		stats.MetricPassingYards:         300,
		stats.MetricPassingTouchdowns:    3,
		stats.MetricPassingInterceptions: 1,
	}})
	f.Stats.Put(stats.Record{PlayerID: "player-rb", GameID: "game-1", Finalized: true, Line: stats.StatLine{
		stats.MetricRushingYards:      112,
		stats.MetricRushingTouchdowns: 1,
		stats.MetricReceptions:        3,
		stats.MetricReceivingYards:    24,
	}})
	f.Stats.Put(stats.Record{PlayerID: "player-wr", GameID: "game-2", Finalized: true, Line: stats.StatLine{
		stats.MetricReceivingYards:      120,
		stats.MetricReceptions:          8,
		stats.MetricReceivingTouchdowns: 1,
	}})

	hundredYardRule := &token.Rule{
		Condition: token.Condition{Kind: token.ConditionStat, Metric: stats.MetricReceivingYards, Op: ">=", Value: 100},
		Reward:    token.Reward{Kind: token.RewardPoints, Value: 5},
	}
	qbID := "player-qb"
	rbID := "player-rb"
	wrID := "player-wr"
	teID := "player-te"
	tokenTypeID := "token-century-club"

	f.Lineups.Put(lineup.Lineup{
		ID:     "lineup-alpha",
		TeamID: "team-alpha",
		WeekID: "week-2025-1",
		Status: lineup.StatusLocked,
		Slots: []lineup.Slot{
			{ID: "slot-alpha-qb", LineupID: "lineup-alpha", Label: "QB", PlayerID: &qbID},
			{ID: "slot-alpha-rb", LineupID: "lineup-alpha", Label: "RB1", PlayerID: &rbID},
			{ID: "slot-alpha-wr", LineupID: "lineup-alpha", Label: "WR1", PlayerID: &wrID, TokenTypeID: &tokenTypeID, TokenRule: hundredYardRule},
			{ID: "slot-alpha-flex", LineupID: "lineup-alpha", Label: "FLEX"},
		},
	})
	f.Lineups.Put(lineup.Lineup{
		ID:     "lineup-bravo",
		TeamID: "team-bravo",
		WeekID: "week-2025-1",
		Status: lineup.StatusSubmitted,
		Slots: []lineup.Slot{
			{ID: "slot-bravo-qb", LineupID: "lineup-bravo", Label: "QB", PlayerID: &qbID},
			{ID: "slot-bravo-te", LineupID: "lineup-bravo", Label: "TE", PlayerID: &teID},
		},
	})

	return f
}
