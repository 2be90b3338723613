package repository

import (
	"context"
	"database/sql"
	"errors"
)

// VoiceRepo handles voices.
type VoiceRepo struct {
	db *sql.DB
}

func NewVoiceRepo(db *sql.DB) *VoiceRepo { return &VoiceRepo{db: db} }

func (r *VoiceRepo) Upsert(ctx context.Context, v Voice) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO voices(id, language_code, name, gender, pitch_hz)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 language_code=excluded.language_code,
	 name=excluded.name,
	 gender=excluded.gender,
	 pitch_hz=excluded.pitch_hz;
	`, v.ID, v.LanguageCode, v.Name, v.Gender, v.PitchHz)
	return err
}

// ListByLanguage returns the voices for one language, or all voices when code is empty.
func (r *VoiceRepo) ListByLanguage(ctx context.Context, code string) ([]Voice, error) {
	query := `SELECT id, language_code, name, gender, pitch_hz FROM voices`
	var args []any
	if code != "" {
		query += ` WHERE language_code = ?`
		args = append(args, code)
	}
	query += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Voice
	for rows.Next() {
		var v Voice
		if err := rows.Scan(&v.ID, &v.LanguageCode, &v.Name, &v.Gender, &v.PitchHz); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VoiceRepo) Get(ctx context.Context, id string) (*Voice, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, language_code, name, gender, pitch_hz FROM voices WHERE id = ?`, id)
	var v Voice
	if err := row.Scan(&v.ID, &v.LanguageCode, &v.Name, &v.Gender, &v.PitchHz); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
