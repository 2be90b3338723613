package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/ipachat/internal/database/repository"
	"github.com/jask/ipachat/internal/i18n"
	"github.com/jask/ipachat/internal/service"
)

// Screen is a modal presented over the settings list.
// Update reports done=true when the screen wants to be dismissed.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (cmd tea.Cmd, done bool)
	View(width, height int) string
	Title() string
	Help() []key.Binding
}

// Destination is the closed set of screens a section can open:
// *LanguageView, *VoicesView or *PhonemesView.
type Destination interface {
	Screen
	Kind() SectionKind
	destination()
}

// Deps is what the navigator threads through to its destinations.
type Deps struct {
	Ctx              context.Context
	ViewModel        service.SettingsViewModel
	SelectedLanguage *Binding[string]
	Phonemes         *Binding[[]repository.Phoneme]
	Translator       i18n.Translator
}

// ResolveDestination maps a section kind to its screen.
// It panics on a kind it does not know: the SectionKind set is closed.
func ResolveDestination(kind SectionKind, d Deps) Destination {
	switch kind {
	case SectionLanguage:
		return NewLanguageView(d.Ctx, d.ViewModel, d.SelectedLanguage, d.Translator)
	case SectionSelectVoice:
		return NewVoicesView(d.Ctx, d.ViewModel, d.Translator)
	case SectionReorderPhonemes:
		return NewPhonemesView(d.Ctx, d.ViewModel, d.Phonemes, d.Translator)
	}
	panic(fmt.Sprintf("tui: no destination for %v", kind))
}
