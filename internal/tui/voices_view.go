package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/ipachat/internal/audio"
	"github.com/jask/ipachat/internal/database/repository"
	"github.com/jask/ipachat/internal/i18n"
	"github.com/jask/ipachat/internal/service"
)

type voicesLoadedMsg struct {
	language string
	voices   []repository.Voice
	selected string
	sample   *repository.Phoneme
	err      error
}

type voiceSelectedMsg struct {
	voice repository.Voice
	err   error
}

type voicePreviewedMsg struct {
	voice repository.Voice
	err   error
}

// VoicesView lists the voices for the selected language.
type VoicesView struct {
	ctx  context.Context
	vm   service.SettingsViewModel
	tr   i18n.Translator
	keys keyMap

	language string
	voices   []repository.Voice
	selected string
	sample   *repository.Phoneme
	cursor   int
	loaded   bool
	busy     bool
	note     string
	err      error
}

func NewVoicesView(ctx context.Context, vm service.SettingsViewModel, tr i18n.Translator) *VoicesView {
	return &VoicesView{ctx: ctx, vm: vm, tr: tr, keys: newKeyMap()}
}

func (v *VoicesView) Kind() SectionKind { return SectionSelectVoice }
func (v *VoicesView) destination()      {}
func (v *VoicesView) Title() string     { return v.tr.T(i18n.KeyVoicesTitle) }

// ViewModel returns the view model the view was opened with.
func (v *VoicesView) ViewModel() service.SettingsViewModel { return v.vm }

func (v *VoicesView) Help() []key.Binding {
	return []key.Binding{v.keys.Up, v.keys.Down, key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")), v.keys.Preview, v.keys.Close}
}

func (v *VoicesView) Init() tea.Cmd {
	return func() tea.Msg {
		lang, err := v.vm.SelectedLanguage(v.ctx)
		if err != nil {
			return voicesLoadedMsg{err: err}
		}
		voices, err := v.vm.Voices(v.ctx, lang)
		if err != nil {
			return voicesLoadedMsg{language: lang, err: err}
		}
		selected, err := v.vm.SelectedVoice(v.ctx)
		if err != nil {
			return voicesLoadedMsg{language: lang, voices: voices, err: err}
		}
		msg := voicesLoadedMsg{language: lang, voices: voices, selected: selected}
		// the first phoneme in the user's order is the preview sample
		if phonemes, err := v.vm.Phonemes(v.ctx); err == nil && len(phonemes) > 0 {
			msg.sample = &phonemes[0]
		}
		return msg
	}
}

func (v *VoicesView) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case voicesLoadedMsg:
		v.loaded = true
		v.language = msg.language
		v.voices = msg.voices
		v.selected = msg.selected
		v.sample = msg.sample
		v.err = msg.err
		v.cursor = 0
		for i, voice := range v.voices {
			if voice.ID == v.selected {
				v.cursor = i
			}
		}
	case voiceSelectedMsg:
		v.busy = false
		if msg.err != nil {
			v.err = msg.err
			return nil, false
		}
		v.selected = msg.voice.ID
		return statusCmd(v.tr.T(i18n.KeyVoicesSaved, msg.voice.Name)), true
	case voicePreviewedMsg:
		v.busy = false
		switch {
		case errors.Is(msg.err, audio.ErrMuted):
			v.note = v.tr.T(i18n.KeyVoicesMuted)
		case msg.err != nil:
			v.err = msg.err
		default:
			v.err = nil
			v.note = v.tr.T(i18n.KeyVoicesPreviewed, msg.voice.Name)
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Close):
			return nil, true
		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(v.voices)-1 {
				v.cursor++
			}
		case key.Matches(msg, v.keys.Open):
			return v.choose(), false
		case key.Matches(msg, v.keys.Preview):
			return v.preview(), false
		}
	}
	return nil, false
}

func (v *VoicesView) current() (repository.Voice, bool) {
	if v.busy || len(v.voices) == 0 {
		return repository.Voice{}, false
	}
	return v.voices[v.cursor], true
}

func (v *VoicesView) choose() tea.Cmd {
	voice, ok := v.current()
	if !ok {
		return nil
	}
	v.busy = true
	return func() tea.Msg {
		return voiceSelectedMsg{voice: voice, err: v.vm.SelectVoice(v.ctx, voice.ID)}
	}
}

func (v *VoicesView) preview() tea.Cmd {
	voice, ok := v.current()
	if !ok || v.sample == nil {
		return nil
	}
	v.busy = true
	v.note = ""
	sample := *v.sample
	return func() tea.Msg {
		return voicePreviewedMsg{voice: voice, err: v.vm.PreviewVoice(v.ctx, voice.ID, sample)}
	}
}

func (v *VoicesView) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(v.Title()))
	if v.language != "" {
		b.WriteString(mutedStyle.Render("  " + v.language))
	}
	b.WriteString("\n\n")
	if v.loaded && len(v.voices) == 0 {
		b.WriteString(mutedStyle.Render(v.tr.T(i18n.KeyVoicesEmpty)))
		b.WriteString("\n")
	}
	for i, voice := range v.voices {
		mark := "  "
		if voice.ID == v.selected {
			mark = checkStyle.Render("✓ ")
		}
		label := fmt.Sprintf("%s%-12s %-7s %5.0f Hz", mark, voice.Name, voice.Gender, voice.PitchHz)
		if i == v.cursor {
			b.WriteString(activeRowStyle.Render(label))
		} else {
			b.WriteString(rowStyle.Render(label))
		}
		b.WriteString("\n")
	}
	if v.sample != nil {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("preview sample: /" + v.sample.IPA + "/"))
	}
	if v.note != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(v.note))
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(statusErrBarStyle.Render(v.err.Error()))
	}
	return clipHeight(strings.TrimRight(b.String(), "\n"), height)
}
