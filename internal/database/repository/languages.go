package repository

import (
	"context"
	"database/sql"
	"errors"
)

// LanguageRepo handles languages.
type LanguageRepo struct {
	db *sql.DB
}

func NewLanguageRepo(db *sql.DB) *LanguageRepo {
	return &LanguageRepo{db: db}
}

func (r *LanguageRepo) Upsert(ctx context.Context, l Language) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO languages(code, name, native_name, sort_order)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(code) DO UPDATE SET
	 name=excluded.name,
	 native_name=excluded.native_name,
	 sort_order=excluded.sort_order;
	`, l.Code, l.Name, l.NativeName, l.SortOrder)
	return err
}

func (r *LanguageRepo) List(ctx context.Context) ([]Language, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code, name, native_name, sort_order FROM languages ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Language
	for rows.Next() {
		var l Language
		if err := rows.Scan(&l.Code, &l.Name, &l.NativeName, &l.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Get returns nil when the code is unknown.
func (r *LanguageRepo) Get(ctx context.Context, code string) (*Language, error) {
	row := r.db.QueryRowContext(ctx, `SELECT code, name, native_name, sort_order FROM languages WHERE code = ?`, code)
	var l Language
	if err := row.Scan(&l.Code, &l.Name, &l.NativeName, &l.SortOrder); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}
