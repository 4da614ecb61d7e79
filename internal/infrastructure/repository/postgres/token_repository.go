package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/gridiron/internal/domain/token"
	qb "github.com/gridironhq/gridiron/internal/platform/querybuilder"
)

type TokenRepository struct {
	db *sqlx.DB
}

var _ token.Repository = (*TokenRepository)(nil)

func NewTokenRepository(db *sqlx.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) UpsertEvaluation(ctx context.Context, ev token.Evaluation) error {
	var ruleJSON []byte
	if ev.Rule != nil {
		encoded, err := sonic.Marshal(ev.Rule)
		if err != nil {
			return fmt.Errorf("encode rule snapshot slot=%s: %w", ev.SlotID, err)
		}
		ruleJSON = encoded
	}

	insertModel := tokenEvaluationInsertModel{
		ID:          ev.ID,
		SlotID:      ev.SlotID,
		TokenTypeID: ev.TokenTypeID,
		Satisfied:   ev.Satisfied,
		BonusPoints: ev.BonusPoints,
		Rule:        ruleJSON,
		EvaluatedAt: ev.EvaluatedAt,
	}
	query, args, err := qb.InsertModel("token_evaluations", insertModel, `ON CONFLICT (slot_id, token_type_id)
DO UPDATE SET
    satisfied = EXCLUDED.satisfied,
    bonus_points = EXCLUDED.bonus_points,
    rule = EXCLUDED.rule,
    evaluated_at = EXCLUDED.evaluated_at`)
	if err != nil {
		return fmt.Errorf("build upsert token evaluation query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert token evaluation: %w", err)
	}
	return nil
}
