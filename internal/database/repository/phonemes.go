package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PhonemeRepo handles phonemes and their user-defined ordering.
type PhonemeRepo struct {
	db *sql.DB
}

func NewPhonemeRepo(db *sql.DB) *PhonemeRepo { return &PhonemeRepo{db: db} }

func (r *PhonemeRepo) Upsert(ctx context.Context, p Phoneme) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO phonemes(id, symbol, ipa, type, default_order, user_order)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 symbol=excluded.symbol,
	 ipa=excluded.ipa,
	 type=excluded.type,
	 default_order=excluded.default_order;
	`, p.ID, p.Symbol, p.IPA, string(p.Type), p.DefaultOrder, p.UserOrder)
	return err
}

// List returns phonemes in the user's order. Rows without a user order follow, in default order.
func (r *PhonemeRepo) List(ctx context.Context) ([]Phoneme, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, symbol, ipa, type, default_order, user_order
	FROM phonemes
	ORDER BY user_order IS NULL, user_order, default_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Phoneme
	for rows.Next() {
		var (
			p   Phoneme
			typ string
		)
		if err := rows.Scan(&p.ID, &p.Symbol, &p.IPA, &typ, &p.DefaultOrder, &p.UserOrder); err != nil {
			return nil, err
		}
		p.Type = PhonemeType(typ)
		out = append(out, p)
	}
	return out, rows.Err()
}

// SaveOrder stores the position of every given phoneme as its user order.
func (r *PhonemeRepo) SaveOrder(ctx context.Context, ordered []Phoneme) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for i, p := range ordered {
		res, err := tx.ExecContext(ctx, `UPDATE phonemes SET user_order = ? WHERE id = ?`, i, p.ID)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			_ = tx.Rollback()
			return fmt.Errorf("save order: unknown phoneme %q", p.ID)
		}
	}
	return tx.Commit()
}

// ResetOrder clears every user order so List falls back to the default order.
func (r *PhonemeRepo) ResetOrder(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE phonemes SET user_order = NULL`)
	return err
}
