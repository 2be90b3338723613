package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jask/ipachat/internal/database/repository"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the built-in set of languages, voices and phonemes.
type Catalog struct {
	Languages []struct {
		Code       string `yaml:"code"`
		Name       string `yaml:"name"`
		NativeName string `yaml:"native_name"`
	} `yaml:"languages"`
	Voices []struct {
		Language string  `yaml:"language"`
		Name     string  `yaml:"name"`
		Gender   string  `yaml:"gender"`
		PitchHz  float64 `yaml:"pitch_hz"`
	} `yaml:"voices"`
	Phonemes []struct {
		Symbol string `yaml:"symbol"`
		IPA    string `yaml:"ipa"`
		Type   string `yaml:"type"`
	} `yaml:"phonemes"`
}

// LoadCatalog parses the embedded catalog.
func LoadCatalog() (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	return c, nil
}

// VoiceID derives the stable id of a catalog voice.
func VoiceID(language, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("voice:"+language+":"+name)).String()
}

// PhonemeID derives the stable id of a catalog phoneme.
func PhonemeID(symbol string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("phoneme:"+symbol)).String()
}

// SeedDefaults ensures the built-in catalog exists.
// It is idempotent and safe to run on every startup; user phoneme order is left alone.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	cat, err := LoadCatalog()
	if err != nil {
		return err
	}
	langRepo := repository.NewLanguageRepo(db)
	voiceRepo := repository.NewVoiceRepo(db)
	phonemeRepo := repository.NewPhonemeRepo(db)

	for idx, l := range cat.Languages {
		if err := langRepo.Upsert(ctx, repository.Language{Code: l.Code, Name: l.Name, NativeName: l.NativeName, SortOrder: idx}); err != nil {
			return fmt.Errorf("seed language %s: %w", l.Code, err)
		}
	}
	for _, v := range cat.Voices {
		voice := repository.Voice{
			ID:           VoiceID(v.Language, v.Name),
			LanguageCode: v.Language,
			Name:         v.Name,
			Gender:       v.Gender,
			PitchHz:      v.PitchHz,
		}
		if err := voiceRepo.Upsert(ctx, voice); err != nil {
			return fmt.Errorf("seed voice %s: %w", v.Name, err)
		}
	}
	for idx, p := range cat.Phonemes {
		typ := repository.PhonemeType(p.Type)
		if !typ.Valid() {
			return fmt.Errorf("seed phoneme %s: unknown type %q", p.Symbol, p.Type)
		}
		ph := repository.Phoneme{ID: PhonemeID(p.Symbol), Symbol: p.Symbol, IPA: p.IPA, Type: typ, DefaultOrder: idx}
		if err := phonemeRepo.Upsert(ctx, ph); err != nil {
			return fmt.Errorf("seed phoneme %s: %w", p.Symbol, err)
		}
	}
	return nil
}
