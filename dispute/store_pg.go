package dispute

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"creditflow/pii"
)

// PGStore is the Postgres-backed Store. Account numbers are sealed with the
// PII cipher before they touch a row; every other column is plain. A nil
// cipher stores values in the clear, which is acceptable only in development.
type PGStore struct {
	pool   *pgxpool.Pool
	cipher *pii.Cipher
}

func NewPGStore(pool *pgxpool.Pool, cipher *pii.Cipher) *PGStore {
	return &PGStore{pool: pool, cipher: cipher}
}

func (s *PGStore) CreateWorkflow(ctx context.Context, w Workflow) error {
	const q = `
		INSERT INTO workflows (id, client_id, status, estimated_completion, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := s.pool.Exec(ctx, q, w.ID, w.ClientID, w.Status, w.EstimatedCompletion, w.CreatedAt, w.UpdatedAt, w.CompletedAt); err != nil {
		return fmt.Errorf("dispute: insert workflow: %w", err)
	}
	return nil
}

func (s *PGStore) GetWorkflow(ctx context.Context, id string) (Workflow, error) {
	const q = `
		SELECT id, client_id, status::text, estimated_completion, created_at, updated_at, completed_at
		FROM workflows
		WHERE id = $1
	`
	var w Workflow
	err := s.pool.QueryRow(ctx, q, id).
		Scan(&w.ID, &w.ClientID, &w.Status, &w.EstimatedCompletion, &w.CreatedAt, &w.UpdatedAt, &w.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Workflow{}, ErrNotFound
		}
		return Workflow{}, fmt.Errorf("dispute: get workflow: %w", err)
	}
	return w, nil
}

func (s *PGStore) UpdateWorkflow(ctx context.Context, w Workflow) error {
	const q = `
		UPDATE workflows
		SET status = $2, estimated_completion = $3, updated_at = $4, completed_at = $5
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, q, w.ID, w.Status, w.EstimatedCompletion, w.UpdatedAt, w.CompletedAt)
	if err != nil {
		return fmt.Errorf("dispute: update workflow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const disputeColumns = `
	id, workflow_id, client_id, client_name, client_address, ssn_last_four,
	tradeline_id, bureau, furnisher_name, furnisher_address, account_name, account_number,
	dispute_type, status::text, stage::text, priority, success_probability,
	reasons, violations, follow_up_at, stage_history,
	version, created_at, updated_at, resolved_at`

func (s *PGStore) CreateDispute(ctx context.Context, d Dispute) error {
	reasons, violations, history, err := marshalDisputeJSON(d)
	if err != nil {
		return err
	}
	account, err := s.seal(d.AccountNumber)
	if err != nil {
		return fmt.Errorf("dispute: seal account number: %w", err)
	}

	const q = `
		INSERT INTO disputes (
			id, workflow_id, client_id, client_name, client_address, ssn_last_four,
			tradeline_id, bureau, furnisher_name, furnisher_address, account_name, account_number,
			dispute_type, status, stage, priority, success_probability,
			reasons, violations, follow_up_at, stage_history,
			version, created_at, updated_at, resolved_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18::jsonb,$19::jsonb,$20,$21::jsonb,$22,$23,$24,$25)
	`
	if _, err := s.pool.Exec(ctx, q,
		d.ID, d.WorkflowID, d.ClientID, d.ClientName, d.ClientAddress, d.SSNLastFour,
		d.TradelineID, string(d.Bureau), d.FurnisherName, d.FurnisherAddress, d.AccountName, account,
		string(d.Type), d.Status, d.Stage, d.Priority, d.SuccessProbability,
		reasons, violations, d.FollowUpAt, history,
		d.Version, d.CreatedAt, d.UpdatedAt, d.ResolvedAt,
	); err != nil {
		return fmt.Errorf("dispute: insert dispute: %w", err)
	}
	return nil
}

func (s *PGStore) GetDispute(ctx context.Context, id string) (Dispute, error) {
	q := `SELECT` + disputeColumns + ` FROM disputes WHERE id = $1`
	d, err := s.scanDispute(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Dispute{}, ErrNotFound
		}
		return Dispute{}, fmt.Errorf("dispute: get dispute: %w", err)
	}
	return d, nil
}

// UpdateDispute commits a transition with an optimistic version check: the
// write lands only when the stored version still equals the version the
// caller read. A lost race surfaces as ErrConflict.
func (s *PGStore) UpdateDispute(ctx context.Context, d Dispute) (Dispute, error) {
	reasons, violations, history, err := marshalDisputeJSON(d)
	if err != nil {
		return Dispute{}, err
	}

	q := `
		UPDATE disputes
		SET status = $3, stage = $4, priority = $5, success_probability = $6,
		    reasons = $7::jsonb, violations = $8::jsonb, follow_up_at = $9, stage_history = $10::jsonb,
		    version = version + 1, updated_at = $11, resolved_at = $12
		WHERE id = $1 AND version = $2
		RETURNING` + disputeColumns
	updated, err := s.scanDispute(s.pool.QueryRow(ctx, q,
		d.ID, d.Version,
		d.Status, d.Stage, d.Priority, d.SuccessProbability,
		reasons, violations, d.FollowUpAt, history,
		d.UpdatedAt, d.ResolvedAt,
	))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Dispute{}, fmt.Errorf("dispute: update dispute: %w", err)
	}

	// No row matched: either the dispute is gone or someone else won the
	// version race.
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM disputes WHERE id = $1)`, d.ID).Scan(&exists); err != nil {
		return Dispute{}, fmt.Errorf("dispute: update dispute recheck: %w", err)
	}
	if !exists {
		return Dispute{}, ErrNotFound
	}
	return Dispute{}, ErrConflict
}

func (s *PGStore) ListDisputesByWorkflow(ctx context.Context, workflowID string) ([]Dispute, error) {
	q := `SELECT` + disputeColumns + ` FROM disputes WHERE workflow_id = $1 ORDER BY priority DESC, created_at`
	rows, err := s.pool.Query(ctx, q, workflowID)
	if err != nil {
		return nil, fmt.Errorf("dispute: list disputes: %w", err)
	}
	defer rows.Close()
	return s.collectDisputes(rows)
}

func (s *PGStore) ListDueFollowUps(ctx context.Context, asOf time.Time) ([]Dispute, error) {
	q := `SELECT` + disputeColumns + `
		FROM disputes
		WHERE follow_up_at IS NOT NULL
		  AND follow_up_at <= $1
		  AND status IN ('pending', 'submitted', 'investigating')
		ORDER BY follow_up_at`
	rows, err := s.pool.Query(ctx, q, asOf)
	if err != nil {
		return nil, fmt.Errorf("dispute: list due follow-ups: %w", err)
	}
	defer rows.Close()
	return s.collectDisputes(rows)
}

func (s *PGStore) CreateLetter(ctx context.Context, l Letter) error {
	const q = `
		INSERT INTO letters (
			id, dispute_id, stage, subject, body, recipient, recipient_address,
			cited_section, status, method, delivery_id, created_at, sent_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`
	if _, err := s.pool.Exec(ctx, q,
		l.ID, l.DisputeID, l.Stage, l.Subject, l.Body, l.Recipient, l.RecipientAddress,
		l.CitedSection, l.Status, l.Method, l.DeliveryID, l.CreatedAt, l.SentAt,
	); err != nil {
		return fmt.Errorf("dispute: insert letter: %w", err)
	}
	return nil
}

// UpdateLetter touches delivery state only. Bodies are immutable once
// generated, so they are deliberately not updatable.
func (s *PGStore) UpdateLetter(ctx context.Context, l Letter) error {
	const q = `
		UPDATE letters
		SET status = $2, delivery_id = $3, sent_at = $4
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, q, l.ID, l.Status, l.DeliveryID, l.SentAt)
	if err != nil {
		return fmt.Errorf("dispute: update letter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) ListLettersByDispute(ctx context.Context, disputeID string) ([]Letter, error) {
	const q = `
		SELECT id, dispute_id, stage::text, subject, body, recipient, recipient_address,
		       cited_section, status::text, method, delivery_id, created_at, sent_at
		FROM letters
		WHERE dispute_id = $1
		ORDER BY created_at
	`
	rows, err := s.pool.Query(ctx, q, disputeID)
	if err != nil {
		return nil, fmt.Errorf("dispute: list letters: %w", err)
	}
	defer rows.Close()

	out := make([]Letter, 0, 4)
	for rows.Next() {
		var l Letter
		if err := rows.Scan(
			&l.ID, &l.DisputeID, &l.Stage, &l.Subject, &l.Body, &l.Recipient, &l.RecipientAddress,
			&l.CitedSection, &l.Status, &l.Method, &l.DeliveryID, &l.CreatedAt, &l.SentAt,
		); err != nil {
			return nil, fmt.Errorf("dispute: scan letter: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dispute: iterate letters: %w", err)
	}
	return out, nil
}

func (s *PGStore) AppendResponse(ctx context.Context, r Response) error {
	metadata, err := json.Marshal(r.Metadata)
	if err != nil {
		return fmt.Errorf("dispute: marshal response metadata: %w", err)
	}
	const q = `
		INSERT INTO responses (id, dispute_id, outcome, metadata, received_at)
		VALUES ($1, $2, $3, $4::jsonb, $5)
	`
	if _, err := s.pool.Exec(ctx, q, r.ID, r.DisputeID, r.Outcome, metadata, r.ReceivedAt); err != nil {
		return fmt.Errorf("dispute: insert response: %w", err)
	}
	return nil
}

func (s *PGStore) ListResponsesByDispute(ctx context.Context, disputeID string) ([]Response, error) {
	const q = `
		SELECT id, dispute_id, outcome::text, metadata, received_at
		FROM responses
		WHERE dispute_id = $1
		ORDER BY received_at
	`
	rows, err := s.pool.Query(ctx, q, disputeID)
	if err != nil {
		return nil, fmt.Errorf("dispute: list responses: %w", err)
	}
	defer rows.Close()

	out := make([]Response, 0, 4)
	for rows.Next() {
		var (
			r        Response
			metadata []byte
		)
		if err := rows.Scan(&r.ID, &r.DisputeID, &r.Outcome, &metadata, &r.ReceivedAt); err != nil {
			return nil, fmt.Errorf("dispute: scan response: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &r.Metadata); err != nil {
				return nil, fmt.Errorf("dispute: decode response metadata: %w", err)
			}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dispute: iterate responses: %w", err)
	}
	return out, nil
}

func (s *PGStore) scanDispute(row pgx.Row) (Dispute, error) {
	var (
		d          Dispute
		reasons    []byte
		violations []byte
		history    []byte
		account    string
	)
	if err := row.Scan(
		&d.ID, &d.WorkflowID, &d.ClientID, &d.ClientName, &d.ClientAddress, &d.SSNLastFour,
		&d.TradelineID, &d.Bureau, &d.FurnisherName, &d.FurnisherAddress, &d.AccountName, &account,
		&d.Type, &d.Status, &d.Stage, &d.Priority, &d.SuccessProbability,
		&reasons, &violations, &d.FollowUpAt, &history,
		&d.Version, &d.CreatedAt, &d.UpdatedAt, &d.ResolvedAt,
	); err != nil {
		return Dispute{}, err
	}

	opened, err := s.open(account)
	if err != nil {
		return Dispute{}, fmt.Errorf("dispute: open account number: %w", err)
	}
	d.AccountNumber = opened

	if len(reasons) > 0 {
		if err := json.Unmarshal(reasons, &d.Reasons); err != nil {
			return Dispute{}, fmt.Errorf("dispute: decode reasons: %w", err)
		}
	}
	if len(violations) > 0 {
		if err := json.Unmarshal(violations, &d.Violations); err != nil {
			return Dispute{}, fmt.Errorf("dispute: decode violations: %w", err)
		}
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &d.StageHistory); err != nil {
			return Dispute{}, fmt.Errorf("dispute: decode stage history: %w", err)
		}
	}
	return d, nil
}

func (s *PGStore) collectDisputes(rows pgx.Rows) ([]Dispute, error) {
	out := make([]Dispute, 0, 8)
	for rows.Next() {
		d, err := s.scanDispute(rows)
		if err != nil {
			return nil, fmt.Errorf("dispute: scan dispute: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dispute: iterate disputes: %w", err)
	}
	return out, nil
}

func (s *PGStore) seal(value string) (string, error) {
	if s.cipher == nil || value == "" {
		return value, nil
	}
	return s.cipher.EncryptString(value)
}

func (s *PGStore) open(value string) (string, error) {
	if s.cipher == nil || value == "" {
		return value, nil
	}
	return s.cipher.DecryptString(value)
}

func marshalDisputeJSON(d Dispute) (reasons, violations, history []byte, err error) {
	if reasons, err = json.Marshal(d.Reasons); err != nil {
		return nil, nil, nil, fmt.Errorf("dispute: marshal reasons: %w", err)
	}
	if violations, err = json.Marshal(d.Violations); err != nil {
		return nil, nil, nil, fmt.Errorf("dispute: marshal violations: %w", err)
	}
	if history, err = json.Marshal(d.StageHistory); err != nil {
		return nil, nil, nil, fmt.Errorf("dispute: marshal stage history: %w", err)
	}
	return reasons, violations, history, nil
}
