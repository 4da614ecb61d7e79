package token

import (
	"github.com/gridironhq/gridiron/internal/domain/stats"
)

// ConditionKind discriminates rule conditions. Unknown kinds evaluate to an
// unsatisfied outcome rather than an error so that old snapshots survive
// catalog changes.
type ConditionKind string

const ConditionStat ConditionKind = "stat"

// RewardKind discriminates rule rewards.
type RewardKind string

const RewardPoints RewardKind = "points"

// Rule is the declarative bonus rule attached to a token. It is stored as a
// JSON snapshot on the slot at submission time, so evaluation must tolerate
// any shape an older catalog may have produced.
type Rule struct {
	Condition Condition `json:"condition"`
	Reward    Reward    `json:"reward"`
}

type Condition struct {
	Kind   ConditionKind `json:"type"`
	Metric string        `json:"metric,omitempty"`
	Op     string        `json:"op,omitempty"`
	Value  float64       `json:"value,omitempty"`
}

type Reward struct {
	Kind  RewardKind `json:"type"`
	Value float64    `json:"value,omitempty"`
}

// Outcome is the result of evaluating one rule against one stat line.
type Outcome struct {
	Satisfied bool
	Points    float64
}

// Evaluate applies rule to line. It is total: a nil rule, an unknown
// condition or reward kind, an unrecognized operator, or a missing metric
// all yield a zero Outcome. Token evaluation must never fail a scoring run.
func Evaluate(rule *Rule, line stats.StatLine) Outcome {
	if rule == nil {
		return Outcome{}
	}
	if rule.Condition.Kind != ConditionStat {
		return Outcome{}
	}
	if !compare(rule.Condition.Op, line.Value(rule.Condition.Metric), rule.Condition.Value) {
		return Outcome{}
	}
	if rule.Reward.Kind != RewardPoints {
		// Condition held but the reward shape is unknown; award nothing.
		return Outcome{Satisfied: true}
	}
	return Outcome{Satisfied: true, Points: rule.Reward.Value}
}

func compare(op string, actual, threshold float64) bool {
	switch op {
	case ">=":
		return actual >= threshold
	case ">":
		return actual > threshold
	case "=", "==":
		return actual == threshold
	case "<":
		return actual < threshold
	case "<=":
		return actual <= threshold
	default:
		return false
	}
}
