package fantasy

import (
	"math"

	"github.com/gridironhq/gridiron/internal/domain/player"
	"github.com/gridironhq/gridiron/internal/domain/stats"
)

// PPR scoring weights. Every position currently shares one table; the
// position argument on Points keeps the door open for positional tables
// (kicker and defense scoring use different inputs upstream).
const (
	weightPassingYard         = 0.04
	weightPassingTouchdown    = 4
	weightPassingInterception = -2
	weightRushingYard         = 0.1
	weightRushingTouchdown    = 6
	weightReceivingYard       = 0.1
	weightReception           = 1
	weightReceivingTouchdown  = 6
	weightFumbleLost          = -2
)

// Points computes the fantasy point total for one stat line under PPR
// scoring, rounded to two decimals with ties going away from zero. Metrics
// absent from the line contribute zero.
func Points(line stats.StatLine, _ player.Position) float64 {
	total := line.Value(stats.MetricPassingYards)*weightPassingYard +
		line.Value(stats.MetricPassingTouchdowns)*weightPassingTouchdown +
		line.Value(stats.MetricPassingInterceptions)*weightPassingInterception +
		line.Value(stats.MetricRushingYards)*weightRushingYard +
		line.Value(stats.MetricRushingTouchdowns)*weightRushingTouchdown +
		line.Value(stats.MetricReceivingYards)*weightReceivingYard +
		line.Value(stats.MetricReceptions)*weightReception +
		line.Value(stats.MetricReceivingTouchdowns)*weightReceivingTouchdown +
		line.Value(stats.MetricFumblesLost)*weightFumbleLost
	return Round2(total)
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
