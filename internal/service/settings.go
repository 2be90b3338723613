package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/ipachat/internal/database/repository"
	"github.com/jask/ipachat/internal/logging"
	"github.com/jask/ipachat/internal/prefs"
	"github.com/jask/ipachat/internal/speech"
)

// SettingsViewModel is what the settings sub-screens need from the app.
type SettingsViewModel interface {
	Languages(ctx context.Context) ([]repository.Language, error)
	SearchLanguages(ctx context.Context, query string) ([]repository.Language, error)
	SelectedLanguage(ctx context.Context) (string, error)
	SelectLanguage(ctx context.Context, code string) error

	Voices(ctx context.Context, language string) ([]repository.Voice, error)
	SelectedVoice(ctx context.Context) (string, error)
	SelectVoice(ctx context.Context, id string) error
	PreviewVoice(ctx context.Context, voiceID string, p repository.Phoneme) error

	Phonemes(ctx context.Context) ([]repository.Phoneme, error)
	SavePhonemeOrder(ctx context.Context, ordered []repository.Phoneme) error
	ResetPhonemeOrder(ctx context.Context) ([]repository.Phoneme, error)
}

// Player is the playback half of the audio manager.
type Player interface {
	Play(ctx context.Context, samples []int16, rate int) error
}

// DefaultLanguage is used until the user picks one.
const DefaultLanguage = "en-US"

// SettingsService implements SettingsViewModel over sqlite, the speech cache and the audio manager.
type SettingsService struct {
	LanguageRepo *repository.LanguageRepo
	VoiceRepo    *repository.VoiceRepo
	PhonemeRepo  *repository.PhonemeRepo
	Preferences  *repository.PreferenceRepo
	Speech       speech.Cache
	Audio        Player
	Logger       *slog.Logger
}

var _ SettingsViewModel = (*SettingsService)(nil)

func (s *SettingsService) log() *slog.Logger {
	if s.Logger == nil {
		return logging.Discard()
	}
	return s.Logger
}

func (s *SettingsService) Languages(ctx context.Context) ([]repository.Language, error) {
	return s.LanguageRepo.List(ctx)
}

// SearchLanguages ranks languages against query. Prefix and substring hits on the
// name, native name or code come first; the rest are ordered by edit distance and
// dropped when too far off.
func (s *SettingsService) SearchLanguages(ctx context.Context, query string) ([]repository.Language, error) {
	all, err := s.LanguageRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return RankLanguages(all, query), nil
}

// RankLanguages is the pure half of SearchLanguages.
func RankLanguages(all []repository.Language, query string) []repository.Language {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all
	}
	type scored struct {
		lang  repository.Language
		score int
		idx   int
	}
	var hits []scored
	for i, l := range all {
		best := -1
		for _, field := range []string{l.Name, l.NativeName, l.Code} {
			f := strings.ToLower(field)
			if f == "" {
				continue
			}
			var sc int
			switch {
			case strings.HasPrefix(f, q):
				sc = 0
			case strings.Contains(f, q):
				sc = 1
			default:
				prefix := []rune(f)
				if n := len([]rune(q)); len(prefix) > n {
					prefix = prefix[:n]
				}
				d := levenshtein.ComputeDistance(q, string(prefix))
				if d > maxDistance(q) {
					continue
				}
				sc = 2 + d
			}
			if best < 0 || sc < best {
				best = sc
			}
		}
		if best >= 0 {
			hits = append(hits, scored{lang: l, score: best, idx: i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return hits[i].idx < hits[j].idx
	})
	out := make([]repository.Language, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.lang)
	}
	return out
}

func maxDistance(q string) int {
	switch n := len([]rune(q)); {
	case n <= 2:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}

func (s *SettingsService) SelectedLanguage(ctx context.Context) (string, error) {
	code, err := s.Preferences.Get(ctx, repository.PrefLanguage)
	if err != nil {
		return "", err
	}
	if code == "" {
		return DefaultLanguage, nil
	}
	return code, nil
}

// SelectLanguage stores code and clears a voice that belongs to another language.
func (s *SettingsService) SelectLanguage(ctx context.Context, code string) error {
	lang, err := s.LanguageRepo.Get(ctx, code)
	if err != nil {
		return err
	}
	if lang == nil {
		return fmt.Errorf("select language: unknown language %q", code)
	}
	if err := s.Preferences.Set(ctx, repository.PrefLanguage, code); err != nil {
		return fmt.Errorf("select language: %w", err)
	}
	voiceID, err := s.Preferences.Get(ctx, repository.PrefVoice)
	if err != nil {
		return err
	}
	if voiceID != "" {
		voice, err := s.VoiceRepo.Get(ctx, voiceID)
		if err != nil {
			return err
		}
		if voice == nil || voice.LanguageCode != code {
			if err := s.Preferences.Delete(ctx, repository.PrefVoice); err != nil {
				return err
			}
		}
	}
	s.log().Info("language selected", "code", code)
	return nil
}

func (s *SettingsService) Voices(ctx context.Context, language string) ([]repository.Voice, error) {
	return s.VoiceRepo.ListByLanguage(ctx, language)
}

// SelectedVoice returns "" when no voice has been chosen for the current language.
func (s *SettingsService) SelectedVoice(ctx context.Context) (string, error) {
	return s.Preferences.Get(ctx, repository.PrefVoice)
}

func (s *SettingsService) SelectVoice(ctx context.Context, id string) error {
	voice, err := s.VoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if voice == nil {
		return fmt.Errorf("select voice: unknown voice %q", id)
	}
	if err := s.Preferences.Set(ctx, repository.PrefVoice, id); err != nil {
		return fmt.Errorf("select voice: %w", err)
	}
	s.log().Info("voice selected", "id", id, "name", voice.Name)
	return nil
}

// PreviewVoice synthesizes p with the voice (through the cache) and plays it.
func (s *SettingsService) PreviewVoice(ctx context.Context, voiceID string, p repository.Phoneme) error {
	voice, err := s.VoiceRepo.Get(ctx, voiceID)
	if err != nil {
		return err
	}
	if voice == nil {
		return fmt.Errorf("preview: unknown voice %q", voiceID)
	}
	if s.Speech == nil || s.Audio == nil {
		return fmt.Errorf("preview: audio not configured")
	}
	samples, err := s.Speech.Get(ctx, *voice, p)
	if err != nil {
		return fmt.Errorf("preview %s: %w", voice.Name, err)
	}
	return s.Audio.Play(ctx, samples, s.Speech.SampleRate())
}

func (s *SettingsService) Phonemes(ctx context.Context) ([]repository.Phoneme, error) {
	return s.PhonemeRepo.List(ctx)
}

// SavePhonemeOrder persists the order and mirrors it to the prefs file.
func (s *SettingsService) SavePhonemeOrder(ctx context.Context, ordered []repository.Phoneme) error {
	if err := s.PhonemeRepo.SaveOrder(ctx, ordered); err != nil {
		return fmt.Errorf("save phoneme order: %w", err)
	}
	symbols := make([]string, 0, len(ordered))
	for _, p := range ordered {
		symbols = append(symbols, p.Symbol)
	}
	if err := prefs.SavePhonemeOrder(symbols); err != nil {
		// the database copy is authoritative
		s.log().Warn("mirror phoneme order", "error", err)
	}
	return nil
}

func (s *SettingsService) ResetPhonemeOrder(ctx context.Context) ([]repository.Phoneme, error) {
	if err := s.PhonemeRepo.ResetOrder(ctx); err != nil {
		return nil, fmt.Errorf("reset phoneme order: %w", err)
	}
	if err := prefs.ClearPhonemeOrder(); err != nil {
		s.log().Warn("clear phoneme order file", "error", err)
	}
	return s.PhonemeRepo.List(ctx)
}

// RestorePhonemeOrder applies an order saved as symbols. Unknown symbols are ignored and
// phonemes missing from symbols keep their relative order after the listed ones.
func (s *SettingsService) RestorePhonemeOrder(ctx context.Context, symbols []string) error {
	if len(symbols) == 0 {
		return nil
	}
	current, err := s.PhonemeRepo.List(ctx)
	if err != nil {
		return err
	}
	return s.PhonemeRepo.SaveOrder(ctx, ApplyOrder(current, symbols))
}

// ApplyOrder returns phonemes arranged by symbols.
func ApplyOrder(phonemes []repository.Phoneme, symbols []string) []repository.Phoneme {
	bySymbol := make(map[string]repository.Phoneme, len(phonemes))
	for _, p := range phonemes {
		bySymbol[p.Symbol] = p
	}
	out := make([]repository.Phoneme, 0, len(phonemes))
	used := make(map[string]bool, len(phonemes))
	for _, sym := range symbols {
		p, ok := bySymbol[sym]
		if !ok || used[sym] {
			continue
		}
		used[sym] = true
		out = append(out, p)
	}
	for _, p := range phonemes {
		if !used[p.Symbol] {
			out = append(out, p)
		}
	}
	return out
}

// NewSettingsService wires the repositories for db.
func NewSettingsService(db *sql.DB, cache speech.Cache, audio Player, logger *slog.Logger) *SettingsService {
	return &SettingsService{
		LanguageRepo: repository.NewLanguageRepo(db),
		VoiceRepo:    repository.NewVoiceRepo(db),
		PhonemeRepo:  repository.NewPhonemeRepo(db),
		Preferences:  repository.NewPreferenceRepo(db),
		Speech:       cache,
		Audio:        audio,
		Logger:       logger,
	}
}
