package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/ipachat/internal/database"
	"github.com/jask/ipachat/internal/database/repository"
)

func seededDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(context.Background(), db))
	return db
}

func TestLanguageGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewLanguageRepo(seededDB(t))

	l, err := repo.Get(ctx, "de-DE")
	require.NoError(t, err)
	require.NotNil(t, l)
	require.Equal(t, "Deutsch", l.NativeName)

	missing, err := repo.Get(ctx, "xx-XX")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestVoicesByLanguage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewVoiceRepo(seededDB(t))

	voices, err := repo.ListByLanguage(ctx, "en-GB")
	require.NoError(t, err)
	require.Len(t, voices, 2)
	for _, v := range voices {
		require.Equal(t, "en-GB", v.LanguageCode)
	}
	require.Equal(t, "Daniel", voices[0].Name)

	got, err := repo.Get(ctx, voices[0].ID)
	require.NoError(t, err)
	require.Equal(t, voices[0], *got)
}

func TestPhonemeOrderSaveAndReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewPhonemeRepo(seededDB(t))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Greater(t, len(list), 3)

	moved := append([]repository.Phoneme{list[2]}, list[:2]...)
	moved = append(moved, list[3:]...)
	require.NoError(t, repo.SaveOrder(ctx, moved))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	for i := range moved {
		require.Equal(t, moved[i].Symbol, got[i].Symbol)
		require.NotNil(t, got[i].UserOrder)
		require.Equal(t, i, *got[i].UserOrder)
	}

	require.NoError(t, repo.ResetOrder(ctx))
	reset, err := repo.List(ctx)
	require.NoError(t, err)
	for i := range reset {
		require.Equal(t, list[i].Symbol, reset[i].Symbol)
		require.Nil(t, reset[i].UserOrder)
	}
}

func TestPhonemeSaveOrderUnknownIDRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewPhonemeRepo(seededDB(t))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	bogus := append([]repository.Phoneme{list[1], list[0]}, repository.Phoneme{ID: "missing"})
	require.Error(t, repo.SaveOrder(ctx, bogus))

	after, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, list[0].Symbol, after[0].Symbol)
	require.Nil(t, after[0].UserOrder)
}

func TestPreferences(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewPreferenceRepo(seededDB(t))

	v, err := repo.Get(ctx, repository.PrefLanguage)
	require.NoError(t, err)
	require.Empty(t, v)

	require.NoError(t, repo.Set(ctx, repository.PrefLanguage, "fr-FR"))
	require.NoError(t, repo.Set(ctx, repository.PrefLanguage, "es-ES"))
	v, err = repo.Get(ctx, repository.PrefLanguage)
	require.NoError(t, err)
	require.Equal(t, "es-ES", v)

	require.NoError(t, repo.Delete(ctx, repository.PrefLanguage))
	v, err = repo.Get(ctx, repository.PrefLanguage)
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestPhonemeTypeValid(t *testing.T) {
	require.True(t, repository.PhonemeNasal.Valid())
	require.False(t, repository.PhonemeType("click").Valid())
}
