package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/ipachat/internal/database"
	"github.com/jask/ipachat/internal/prefs"
	"github.com/jask/ipachat/internal/speech"
)

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	DB     *sql.DB
	Speech speech.Cache
}

// Reset forgets every user choice: preferences, phoneme order and cached previews.
// The built-in catalog stays in place.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM preferences"); err != nil {
			return fmt.Errorf("reset preferences: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "UPDATE phonemes SET user_order = NULL"); err != nil {
			return fmt.Errorf("reset phoneme order: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	if s.Speech != nil {
		s.Speech.Purge()
	}
	return prefs.ClearPhonemeOrder()
}
