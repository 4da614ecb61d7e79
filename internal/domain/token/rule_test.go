package token

import (
	"testing"

	"github.com/gridironhq/gridiron/internal/domain/stats"
)

func statRule(metric, op string, value, bonus float64) *Rule {
	return &Rule{
		Condition: Condition{Kind: ConditionStat, Metric: metric, Op: op, Value: value},
		Reward:    Reward{Kind: RewardPoints, Value: bonus},
	}
}

func TestEvaluateThresholdBoundaries(t *testing.T) {
	rule := statRule(stats.MetricRushingYards, ">=", 100, 5)

	cases := []struct {
		name      string
		yards     float64
		satisfied bool
		points    float64
	}{
		{"below threshold", 99, false, 0},
		{"exactly at threshold", 100, true, 5},
		{"above threshold", 120, true, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(rule, stats.StatLine{stats.MetricRushingYards: tc.yards})
			if got.Satisfied != tc.satisfied || got.Points != tc.points {
				t.Fatalf("Evaluate(%v yards) = %+v, want satisfied=%v points=%v",
					tc.yards, got, tc.satisfied, tc.points)
			}
		})
	}
}

func TestEvaluateOperators(t *testing.T) {
	cases := []struct {
		op        string
		actual    float64
		threshold float64
		want      bool
	}{
		{">=", 3, 3, true},
		{">", 3, 3, false},
		{">", 4, 3, true},
		{"=", 2, 2, true},
		{"==", 2, 2, true},
		{"=", 2.5, 2, false},
		{"<", 1, 2, true},
		{"<=", 2, 2, true},
		{"<=", 3, 2, false},
	}
	for _, tc := range cases {
		rule := statRule(stats.MetricReceptions, tc.op, tc.threshold, 1)
		got := Evaluate(rule, stats.StatLine{stats.MetricReceptions: tc.actual})
		if got.Satisfied != tc.want {
			t.Errorf("op %q with actual=%v threshold=%v: satisfied=%v, want %v",
				tc.op, tc.actual, tc.threshold, got.Satisfied, tc.want)
		}
	}
}

func TestEvaluateDegenerateShapes(t *testing.T) {
	line := stats.StatLine{stats.MetricRushingYards: 150}

	if got := Evaluate(nil, line); got != (Outcome{}) {
		t.Fatalf("nil rule: got %+v, want zero outcome", got)
	}

	unknownCond := &Rule{
		Condition: Condition{Kind: "combo_multiplier", Metric: stats.MetricRushingYards, Op: ">=", Value: 1},
		Reward:    Reward{Kind: RewardPoints, Value: 5},
	}
	if got := Evaluate(unknownCond, line); got != (Outcome{}) {
		t.Fatalf("unknown condition kind: got %+v, want zero outcome", got)
	}

	badOp := statRule(stats.MetricRushingYards, "!=", 1, 5)
	if got := Evaluate(badOp, line); got != (Outcome{}) {
		t.Fatalf("unknown operator: got %+v, want zero outcome", got)
	}

	unknownReward := statRule(stats.MetricRushingYards, ">=", 100, 5)
	unknownReward.Reward.Kind = "card_upgrade"
	got := Evaluate(unknownReward, line)
	if !got.Satisfied || got.Points != 0 {
		t.Fatalf("unknown reward kind: got %+v, want satisfied with zero points", got)
	}
}

func TestEvaluateMissingMetric(t *testing.T) {
	rule := statRule(stats.MetricReceivingYards, ">=", 50, 3)

	// Absent metric reads as zero, which still satisfies <= style rules.
	if got := Evaluate(rule, stats.StatLine{}); got.Satisfied {
		t.Fatalf("missing metric against >=50: got %+v, want unsatisfied", got)
	}
	if got := Evaluate(rule, nil); got.Satisfied {
		t.Fatalf("nil stat line: got %+v, want unsatisfied", got)
	}

	under := statRule(stats.MetricFumblesLost, "<=", 0, 2)
	if got := Evaluate(under, stats.StatLine{}); !got.Satisfied || got.Points != 2 {
		t.Fatalf("missing metric against <=0: got %+v, want satisfied with 2 points", got)
	}
}
