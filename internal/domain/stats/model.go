package stats

// StatLine is the open per-player, per-game statistical payload produced by
// the upstream stats feed. Metrics are loosely keyed; anything absent reads
// as zero.
type StatLine map[string]float64

func (l StatLine) Value(metric string) float64 {
	if l == nil {
		return 0
	}
	return l[metric]
}

// Canonical metric keys emitted by the upstream feed.
const (
	MetricPassingYards         = "passing_yards"
	MetricPassingTouchdowns    = "passing_touchdowns"
	MetricPassingInterceptions = "passing_interceptions"
	MetricRushingYards         = "rushing_yards"
	MetricRushingTouchdowns    = "rushing_touchdowns"
	MetricReceivingYards       = "receiving_yards"
	MetricReceptions           = "receptions"
	MetricReceivingTouchdowns  = "receiving_touchdowns"
	MetricFumblesLost          = "fumbles_lost"
)

// Record stores one player's statistical payload for one game. Only records
// with Finalized=true are eligible for scoring.
type Record struct {
	PlayerID  string
	GameID    string
	Finalized bool
	Line      StatLine
}
