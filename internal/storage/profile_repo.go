package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"jimbro/internal/engine"
)

// BlueprintKey is the fixed slot holding the user's blueprint.
const BlueprintKey = "jimbro_blueprint"

type ProfileRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db, now: time.Now}
}

func (r *ProfileRepo) get(ctx context.Context, key string) (*string, *time.Time, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value, updated_at FROM kv WHERE key = ?`, key)

	var value string
	var updated time.Time
	if err := row.Scan(&value, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	return &value, &updated, nil
}

func (r *ProfileRepo) put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, r.now().UTC())
	if err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}

// LoadBlueprint returns (nil, nil) when no blueprint is stored. Undecodable
// data is an error; callers treat it as no profile.
func (r *ProfileRepo) LoadBlueprint(ctx context.Context) (*engine.Blueprint, error) {
	raw, _, err := r.get(ctx, BlueprintKey)
	if err != nil || raw == nil {
		return nil, err
	}
	var bp engine.Blueprint
	if err := json.Unmarshal([]byte(*raw), &bp); err != nil {
		return nil, fmt.Errorf("blueprint decode: %w", err)
	}
	if bp.Injuries == nil {
		bp.Injuries = []string{}
	}
	return &bp, nil
}

func (r *ProfileRepo) SaveBlueprint(ctx context.Context, bp engine.Blueprint) error {
	data, err := json.Marshal(bp)
	if err != nil {
		return fmt.Errorf("blueprint encode: %w", err)
	}
	return r.put(ctx, BlueprintKey, string(data))
}

// BlueprintSavedAt returns when the blueprint was last written, or nil.
func (r *ProfileRepo) BlueprintSavedAt(ctx context.Context) (*time.Time, error) {
	_, at, err := r.get(ctx, BlueprintKey)
	return at, err
}

// DeleteBlueprint removes the stored blueprint and reports whether one existed.
func (r *ProfileRepo) DeleteBlueprint(ctx context.Context) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, BlueprintKey)
	if err != nil {
		return false, fmt.Errorf("blueprint delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("blueprint delete rows: %w", err)
	}
	return n > 0, nil
}
