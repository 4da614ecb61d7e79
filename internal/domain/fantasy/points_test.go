package fantasy

import (
	"testing"

	"github.com/gridironhq/gridiron/internal/domain/player"
	"github.com/gridironhq/gridiron/internal/domain/stats"
)

func TestPointsPassingLine(t *testing.T) {
	line := stats.StatLine{
		stats.MetricPassingYards:         300,
		stats.MetricPassingTouchdowns:    3,
		stats.MetricPassingInterceptions: 1,
		stats.MetricFumblesLost:          0,
	}
	// 300*0.04 + 3*4 - 1*2 = 22.00
	if got := Points(line, player.PositionQuarterback); got != 22.00 {
		t.Fatalf("Points() = %v, want 22.00", got)
	}
}

func TestPointsReceivingLine(t *testing.T) {
	line := stats.StatLine{
		stats.MetricReceivingYards:      120,
		stats.MetricReceptions:          8,
		stats.MetricReceivingTouchdowns: 1,
	}
	// 120*0.1 + 8*1 + 1*6 = 26.00
	if got := Points(line, player.PositionWideReceiver); got != 26.00 {
		t.Fatalf("Points() = %v, want 26.00", got)
	}
}

func TestPointsEmptyLine(t *testing.T) {
	if got := Points(stats.StatLine{}, player.PositionRunningBack); got != 0 {
		t.Fatalf("Points(empty) = %v, want 0", got)
	}
	if got := Points(nil, player.PositionRunningBack); got != 0 {
		t.Fatalf("Points(nil) = %v, want 0", got)
	}
}

func TestPointsNegativeTotal(t *testing.T) {
	line := stats.StatLine{
		stats.MetricPassingInterceptions: 2,
		stats.MetricFumblesLost:          1,
	}
	if got := Points(line, player.PositionQuarterback); got != -6 {
		t.Fatalf("Points() = %v, want -6", got)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{12.346, 12.35},
		{12.344, 12.34},
		{0.125, 0.13},
		{-0.125, -0.13},
		{7.1, 7.1},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
