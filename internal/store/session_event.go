package store

import (
	"context"
	"fmt"
)

// Session journal actions.
const (
	ActionMaterialUploaded = "material_uploaded"
	ActionSummarized       = "summarized"
	ActionQuizStarted      = "quiz_started"
	ActionQuizSubmitted    = "quiz_submitted"
	ActionRetake           = "retake"
	ActionExplanation      = "explanation"
	ActionDisengagement    = "disengagement"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events (sequence, profile, subject, action, score, detail)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		seqNum, data.Profile, data.Subject, data.Action, data.Score, data.Detail,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

const sessionEventColumns = `id, sequence, timestamp, profile, subject, action, score, detail`

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	query, args := buildEventQuery("session_events", sessionEventColumns, opts)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEventRecord
	for rows.Next() {
		var rec SessionEventRecord
		var ts string
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts, &rec.Profile, &rec.Subject,
			&rec.Action, &rec.Score, &rec.Detail,
		); err != nil {
			return nil, err
		}
		rec.Timestamp = parseJournalTime(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}
