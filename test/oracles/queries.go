// Package oracles declares the SQL invariants the stress test checks while
// actors race. Every query returns rows only when an invariant is broken.
package oracles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Oracle struct {
	Name string
	SQL  string
}

// stageRank maps letter-generating stages onto their escalation order for
// precedence checks.
const stageRank = `
	CASE stage
	    WHEN 'BUREAU_DISPUTE' THEN 1
	    WHEN 'FURNISHER_DISPUTE' THEN 2
	    WHEN 'VERIFICATION_CHALLENGE' THEN 3
	    WHEN 'LEGAL_ESCALATION' THEN 4
	END`

func All() []Oracle {
	return []Oracle{
		{
			Name: "O1_resolved_requires_sent_letter",
			SQL: `SELECT d.id FROM disputes d
                  WHERE d.status = 'resolved'
                    AND NOT EXISTS (
                        SELECT 1 FROM letters l
                        WHERE l.dispute_id = d.id AND l.status IN ('sent','delivered'))`,
		},
		{
			Name: "O2_terminal_follow_up_cleared",
			SQL: `SELECT id, status, follow_up_at FROM disputes
                  WHERE status IN ('resolved','rejected') AND follow_up_at IS NOT NULL`,
		},
		{
			Name: "O3_closed_enumerations",
			SQL: `SELECT id, status, stage FROM disputes
                  WHERE status NOT IN ('pending','submitted','investigating','resolved','rejected')
                     OR stage NOT IN ('CREDIT_ANALYSIS','DISPUTE_PREPARATION','BUREAU_DISPUTE',
                                      'FURNISHER_DISPUTE','VERIFICATION_CHALLENGE','LEGAL_ESCALATION',
                                      'COMPLIANCE_ENFORCEMENT','SCORE_OPTIMIZATION','CREDIT_BUILDING',
                                      'WEALTH_PROTECTION')`,
		},
		{
			Name: "O4_letter_stage_precedence",
			SQL: `WITH ranked AS (
                      SELECT dispute_id, ` + stageRank + ` AS rank
                      FROM letters
                      WHERE ` + stageRank + ` IS NOT NULL
                      GROUP BY dispute_id, rank)
                  SELECT r.dispute_id, r.rank FROM ranked r
                  WHERE r.rank > 1
                    AND NOT EXISTS (
                        SELECT 1 FROM ranked prev
                        WHERE prev.dispute_id = r.dispute_id AND prev.rank = r.rank - 1)`,
		},
		{
			Name: "O5_version_positive",
			SQL:  `SELECT id, version FROM disputes WHERE version < 1`,
		},
		{
			Name: "O6_resolution_timestamped",
			SQL: `SELECT id FROM disputes
                  WHERE (status = 'resolved') <> (resolved_at IS NOT NULL)`,
		},
		{
			Name: "O7_orphaned_correspondence",
			SQL: `SELECT l.id FROM letters l
                  LEFT JOIN disputes d ON d.id = l.dispute_id
                  WHERE d.id IS NULL`,
		},
	}
}

// Run executes all oracles and returns the first failure (name and sample row
// text), or an empty name when every invariant holds.
func Run(ctx context.Context, pool *pgxpool.Pool) (string, string, error) {
	for _, o := range All() {
		rows, err := pool.Query(ctx, o.SQL)
		if err != nil {
			return o.Name, "", fmt.Errorf("oracle %s: %w", o.Name, err)
		}
		has := rows.Next()
		if has {
			vals, err := rows.Values()
			rows.Close()
			if err != nil {
				return o.Name, "", err
			}
			return o.Name, fmt.Sprintf("%v", vals), nil
		}
		rows.Close()
	}
	return "", "", nil
}
