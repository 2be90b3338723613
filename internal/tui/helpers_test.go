package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/ipachat/internal/database/repository"
	"github.com/jask/ipachat/internal/i18n"
	"github.com/jask/ipachat/internal/service"
)

type fakeVM struct {
	mu sync.Mutex

	langs    []repository.Language
	voices   []repository.Voice
	phonemes []repository.Phoneme

	language string
	voice    string

	saved      [][]repository.Phoneme
	previewed  []string
	previewErr error
	saveErr    error
	resets     int
}

var _ service.SettingsViewModel = (*fakeVM)(nil)

func newFakeVM() *fakeVM {
	return &fakeVM{
		langs: []repository.Language{
			{Code: "en-US", Name: "English (US)", NativeName: "English", SortOrder: 1},
			{Code: "de-DE", Name: "German", NativeName: "Deutsch", SortOrder: 2},
			{Code: "es-ES", Name: "Spanish", NativeName: "Español", SortOrder: 3},
		},
		voices: []repository.Voice{
			{ID: "v-ava", LanguageCode: "en-US", Name: "Ava", Gender: "female", PitchHz: 210},
			{ID: "v-tom", LanguageCode: "en-US", Name: "Tom", Gender: "male", PitchHz: 120},
			{ID: "v-anna", LanguageCode: "de-DE", Name: "Anna", Gender: "female", PitchHz: 200},
		},
		phonemes: []repository.Phoneme{
			{ID: "p-a", Symbol: "a", IPA: "a", Type: repository.PhonemeVowel, DefaultOrder: 0},
			{ID: "p-m", Symbol: "m", IPA: "m", Type: repository.PhonemeNasal, DefaultOrder: 1},
			{ID: "p-t", Symbol: "t", IPA: "t", Type: repository.PhonemePlosive, DefaultOrder: 2},
		},
		language: "en-US",
	}
}

func (f *fakeVM) Languages(ctx context.Context) ([]repository.Language, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]repository.Language(nil), f.langs...), nil
}

func (f *fakeVM) SearchLanguages(ctx context.Context, query string) ([]repository.Language, error) {
	all, _ := f.Languages(ctx)
	return service.RankLanguages(all, query), nil
}

func (f *fakeVM) SelectedLanguage(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.language, nil
}

func (f *fakeVM) SelectLanguage(ctx context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.langs {
		if l.Code == code {
			f.language = code
			return nil
		}
	}
	return fmt.Errorf("unknown language %q", code)
}

func (f *fakeVM) Voices(ctx context.Context, language string) ([]repository.Voice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.Voice
	for _, v := range f.voices {
		if language == "" || v.LanguageCode == language {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVM) SelectedVoice(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.voice, nil
}

func (f *fakeVM) SelectVoice(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voice = id
	return nil
}

func (f *fakeVM) PreviewVoice(ctx context.Context, voiceID string, p repository.Phoneme) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.previewed = append(f.previewed, voiceID+"/"+p.Symbol)
	return f.previewErr
}

func (f *fakeVM) Phonemes(ctx context.Context) ([]repository.Phoneme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]repository.Phoneme(nil), f.phonemes...), nil
}

func (f *fakeVM) SavePhonemeOrder(ctx context.Context, ordered []repository.Phoneme) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, append([]repository.Phoneme(nil), ordered...))
	f.phonemes = append([]repository.Phoneme(nil), ordered...)
	return nil
}

func (f *fakeVM) ResetPhonemeOrder(ctx context.Context) ([]repository.Phoneme, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	sort.SliceStable(f.phonemes, func(i, j int) bool {
		return f.phonemes[i].DefaultOrder < f.phonemes[j].DefaultOrder
	})
	return append([]repository.Phoneme(nil), f.phonemes...), nil
}

var errBoom = errors.New("boom")

func testTranslator() i18n.Translator { return i18n.New("en") }

func keyPress(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// collect runs cmd and flattens batches. Commands that block past the deadline
// (cursor blink ticks) are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(100 * time.Millisecond):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// drive feeds the output of cmd back into m until the queue drains.
func drive(m tea.Model, cmd tea.Cmd) tea.Model {
	queue := collect(cmd)
	for i := 0; len(queue) > 0 && i < 50; i++ {
		msg := queue[0]
		queue = queue[1:]
		var next tea.Cmd
		m, next = m.Update(msg)
		queue = append(queue, collect(next)...)
	}
	return m
}

func press(m tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		m = drive(m, cmd)
	}
	return m
}

// screenDrive is drive for a single destination. It reports whether the screen asked to close.
func screenDrive(s Screen, cmd tea.Cmd) (msgs []tea.Msg, done bool) {
	queue := collect(cmd)
	for i := 0; len(queue) > 0 && i < 50; i++ {
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(statusMsg); ok {
			msgs = append(msgs, msg)
			continue
		}
		next, d := s.Update(msg)
		done = done || d
		queue = append(queue, collect(next)...)
	}
	return msgs, done
}

func screenPress(s Screen, msg tea.Msg) (msgs []tea.Msg, done bool) {
	cmd, done := s.Update(msg)
	more, d := screenDrive(s, cmd)
	return more, done || d
}
