package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/inquora/inquora/store"
)

func (d *DB) CreateInterviewMessage(ctx context.Context, create *store.InterviewMessage) (*store.InterviewMessage, error) {
	fields := []string{"uid", "session_id", "role", "content", "created_ts"}
	args := []any{create.UID, create.SessionID, string(create.Role), create.Content, create.CreatedTs}

	stmt := `INSERT INTO interview_message (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id`

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create interview_message: %w", err)
	}

	return create, nil
}

func (d *DB) ListInterviewMessages(ctx context.Context, find *store.FindInterviewMessage) ([]*store.InterviewMessage, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.SessionID; v != nil {
		where, args = append(where, "session_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	// Tie-break on id so same-second appends keep insertion order.
	query := `SELECT id, uid, session_id, role, content, created_ts FROM interview_message
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts ASC, id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interview_messages: %w", err)
	}
	defer rows.Close()

	list := make([]*store.InterviewMessage, 0)
	for rows.Next() {
		m := &store.InterviewMessage{}
		var role string
		if err := rows.Scan(&m.ID, &m.UID, &m.SessionID, &role, &m.Content, &m.CreatedTs); err != nil {
			return nil, fmt.Errorf("failed to scan interview_message: %w", err)
		}
		m.Role = store.MessageRole(role)
		list = append(list, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interview_messages: %w", err)
	}

	return list, nil
}
