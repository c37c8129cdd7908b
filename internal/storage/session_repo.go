package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"jimbro/internal/engine"
)

type SessionRepo struct {
	db    *sql.DB
	newID func() string
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db, newID: uuid.NewString}
}

// RecordSession writes a finished session and its exercises atomically.
func (r *SessionRepo) RecordSession(ctx context.Context, rec engine.SessionRecord) error {
	id := rec.ID
	if id == "" {
		id = r.newID()
	}
	equipment, err := json.Marshal(rec.Equipment)
	if err != nil {
		return fmt.Errorf("marshal equipment: %w", err)
	}
	done := make(map[string]bool, len(rec.CompletedIDs))
	for _, cid := range rec.CompletedIDs {
		done[cid] = true
	}

	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sessions (id, finished_at, vibe, focus, equipment, exercise_count, completed_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, rec.FinishedAt.UTC(), string(rec.Vibe), string(rec.Focus), string(equipment), len(rec.Exercises), len(rec.CompletedIDs)); err != nil {
			return fmt.Errorf("session insert: %w", err)
		}
		for i, e := range rec.Exercises {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO session_exercises (
					session_id, position, exercise_id, name, category,
					sets, reps, suggested_weight, completed, alternate
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, id, i, e.ID, e.Name, string(e.Category), e.Sets, e.Reps, e.SuggestedWeight, boolToInt(done[e.ID]), boolToInt(e.Alternate)); err != nil {
				return fmt.Errorf("session exercise insert: %w", err)
			}
		}
		return nil
	})
}

// List returns sessions newest first. limit <= 0 means all.
func (r *SessionRepo) List(ctx context.Context, limit int) ([]Session, error) {
	q := `
		SELECT id, finished_at, vibe, focus, equipment, exercise_count, completed_count
		FROM sessions
		ORDER BY finished_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("session list: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		var equipment string
		if err := rows.Scan(&s.ID, &s.FinishedAt, &s.Vibe, &s.Focus, &equipment, &s.ExerciseCount, &s.CompletedCount); err != nil {
			return nil, fmt.Errorf("session scan: %w", err)
		}
		if err := json.Unmarshal([]byte(equipment), &s.Equipment); err != nil {
			return nil, fmt.Errorf("session %s equipment: %w", s.ID, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session rows: %w", err)
	}
	return out, nil
}

func (r *SessionRepo) Exercises(ctx context.Context, sessionID string) ([]SessionExercise, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, position, exercise_id, name, category, sets, reps, suggested_weight, completed, alternate
		FROM session_exercises
		WHERE session_id = ?
		ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session exercises: %w", err)
	}
	defer rows.Close()

	var out []SessionExercise
	for rows.Next() {
		var e SessionExercise
		var completed, alternate int
		if err := rows.Scan(&e.SessionID, &e.Position, &e.ExerciseID, &e.Name, &e.Category, &e.Sets, &e.Reps, &e.SuggestedWeight, &completed, &alternate); err != nil {
			return nil, fmt.Errorf("session exercise scan: %w", err)
		}
		e.Completed = completed != 0
		e.Alternate = alternate != 0
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session exercise rows: %w", err)
	}
	return out, nil
}

// ListDetailed returns sessions newest first with their exercises.
func (r *SessionRepo) ListDetailed(ctx context.Context, limit int) ([]SessionDetail, error) {
	sessions, err := r.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]SessionDetail, 0, len(sessions))
	for _, s := range sessions {
		exs, err := r.Exercises(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, SessionDetail{Session: s, Exercises: exs})
	}
	return out, nil
}

func (r *SessionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("session count: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
