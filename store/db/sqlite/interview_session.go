package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inquora/inquora/store"
)

func (d *DB) CreateInterviewSession(ctx context.Context, create *store.InterviewSession) (*store.InterviewSession, error) {
	planJSON, err := marshalNullable(create.Plan)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}
	analysisJSON, err := marshalNullable(create.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	fields := []string{"uid", "topic", "role", "status", "plan", "analysis", "cost_tokens", "cost_usd", "created_ts", "updated_ts", "interview_started_ts"}
	args := []any{create.UID, create.Topic, create.Role, string(create.Status), planJSON, analysisJSON, create.Cost.Tokens, create.Cost.Cost, create.CreatedTs, create.UpdatedTs, create.InterviewStartedTs}

	stmt := `INSERT INTO interview_session (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create interview_session: %w", err)
	}

	return create, nil
}

func (d *DB) ListInterviewSessions(ctx context.Context, find *store.FindInterviewSession) ([]*store.InterviewSession, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "status = "+placeholder(len(args)+1)), append(args, string(*v))
	}

	query := `SELECT id, uid, topic, role, status, plan, analysis, cost_tokens, cost_usd, created_ts, updated_ts, interview_started_ts
		FROM interview_session WHERE ` + strings.Join(where, " AND ") + ` ORDER BY updated_ts DESC, id DESC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interview_sessions: %w", err)
	}
	defer rows.Close()

	list := make([]*store.InterviewSession, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interview_sessions: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateInterviewSession(ctx context.Context, update *store.UpdateInterviewSession) (*store.InterviewSession, error) {
	set, args := []string{}, []any{}

	if v := update.Status; v != nil {
		set, args = append(set, "status = "+placeholder(len(args)+1)), append(args, string(*v))
	}
	if v := update.Plan; v != nil {
		planJSON, err := marshalNullable(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal plan: %w", err)
		}
		set, args = append(set, "plan = "+placeholder(len(args)+1)), append(args, planJSON)
	}
	if v := update.Analysis; v != nil {
		analysisJSON, err := marshalNullable(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal analysis: %w", err)
		}
		set, args = append(set, "analysis = "+placeholder(len(args)+1)), append(args, analysisJSON)
	}
	if v := update.InterviewStartedTs; v != nil {
		set, args = append(set, "interview_started_ts = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.UpdatedTs; v != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	args = append(args, update.ID)
	// RETURNING all fields to avoid a follow-up read
	stmt := `UPDATE interview_session SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args)) +
		` RETURNING id, uid, topic, role, status, plan, analysis, cost_tokens, cost_usd, created_ts, updated_ts, interview_started_ts`
	session, err := scanSession(d.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("interview_session not found")
		}
		return nil, fmt.Errorf("failed to update interview_session: %w", err)
	}

	return session, nil
}

func (d *DB) IncrementSessionCost(ctx context.Context, sessionID int32, tokens int64, cost float64) error {
	result, err := d.db.ExecContext(ctx, `UPDATE interview_session
		SET cost_tokens = cost_tokens + `+placeholder(1)+`, cost_usd = cost_usd + `+placeholder(2)+`
		WHERE id = `+placeholder(3), tokens, cost, sessionID)
	if err != nil {
		return fmt.Errorf("failed to increment session cost: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("interview_session not found")
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*store.InterviewSession, error) {
	session := &store.InterviewSession{}
	var status string
	var planJSON, analysisJSON sql.NullString
	if err := row.Scan(
		&session.ID, &session.UID, &session.Topic, &session.Role, &status,
		&planJSON, &analysisJSON, &session.Cost.Tokens, &session.Cost.Cost,
		&session.CreatedTs, &session.UpdatedTs, &session.InterviewStartedTs,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan interview_session: %w", err)
	}
	session.Status = store.SessionStatus(status)

	if planJSON.Valid && planJSON.String != "" {
		plan := &store.InterviewPlan{}
		if err := json.Unmarshal([]byte(planJSON.String), plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
		}
		session.Plan = plan
	}
	if analysisJSON.Valid && analysisJSON.String != "" {
		analysis := &store.InterviewAnalysis{}
		if err := json.Unmarshal([]byte(analysisJSON.String), analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
		}
		session.Analysis = analysis
	}

	return session, nil
}

func marshalNullable(v any) (any, error) {
	switch typed := v.(type) {
	case *store.InterviewPlan:
		if typed == nil {
			return nil, nil
		}
	case *store.InterviewAnalysis:
		if typed == nil {
			return nil, nil
		}
	}
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}
