package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/ipachat/internal/database/repository"
	"github.com/jask/ipachat/internal/i18n"
	"github.com/jask/ipachat/internal/service"
)

type phonemesLoadedMsg struct {
	phonemes []repository.Phoneme
	err      error
}

type phonemesSavedMsg struct {
	phonemes []repository.Phoneme
	err      error
}

type phonemesResetMsg struct {
	phonemes []repository.Phoneme
	err      error
}

// PhonemesView reorders the bound phoneme list. Moves happen on a working copy;
// the binding only changes once the order is saved or reset.
type PhonemesView struct {
	ctx   context.Context
	vm    service.SettingsViewModel
	bound *Binding[[]repository.Phoneme]
	tr    i18n.Translator
	keys  keyMap

	items   []repository.Phoneme
	cursor  int
	grabbed bool
	dirty   bool
	busy    bool
	note    string
	err     error
}

func NewPhonemesView(ctx context.Context, vm service.SettingsViewModel, bound *Binding[[]repository.Phoneme], tr i18n.Translator) *PhonemesView {
	return &PhonemesView{ctx: ctx, vm: vm, bound: bound, tr: tr, keys: newKeyMap(), items: clonePhonemes(bound.Get())}
}

func (v *PhonemesView) Kind() SectionKind { return SectionReorderPhonemes }
func (v *PhonemesView) destination()      {}
func (v *PhonemesView) Title() string     { return v.tr.T(i18n.KeyPhonemesTitle) }

func (v *PhonemesView) ViewModel() service.SettingsViewModel { return v.vm }

func (v *PhonemesView) Help() []key.Binding {
	return []key.Binding{v.keys.Up, v.keys.Down, v.keys.Grab, v.keys.Save, v.keys.Reset, v.keys.Close}
}

// Init loads the order from the view model when the binding is still empty.
func (v *PhonemesView) Init() tea.Cmd {
	if len(v.items) > 0 {
		return nil
	}
	return func() tea.Msg {
		list, err := v.vm.Phonemes(v.ctx)
		return phonemesLoadedMsg{phonemes: list, err: err}
	}
}

func (v *PhonemesView) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case phonemesLoadedMsg:
		v.err = msg.err
		if msg.err == nil {
			v.items = clonePhonemes(msg.phonemes)
			v.bound.Set(clonePhonemes(msg.phonemes))
		}
	case phonemesSavedMsg:
		v.busy = false
		if msg.err != nil {
			v.err = msg.err
			return nil, false
		}
		v.dirty = false
		v.bound.Set(msg.phonemes)
		return statusCmd(v.tr.T(i18n.KeyPhonemesSaved)), true
	case phonemesResetMsg:
		v.busy = false
		if msg.err != nil {
			v.err = msg.err
			return nil, false
		}
		v.items = clonePhonemes(msg.phonemes)
		v.bound.Set(clonePhonemes(msg.phonemes))
		v.cursor, v.grabbed, v.dirty = 0, false, false
		v.note = v.tr.T(i18n.KeyPhonemesReset)
	case tea.KeyMsg:
		if v.busy {
			return nil, false
		}
		switch {
		case key.Matches(msg, v.keys.Close):
			return nil, true
		case key.Matches(msg, v.keys.Up):
			v.move(-1)
		case key.Matches(msg, v.keys.Down):
			v.move(1)
		case key.Matches(msg, v.keys.Grab):
			if len(v.items) > 0 {
				v.grabbed = !v.grabbed
				v.note = ""
				if v.grabbed {
					v.note = v.tr.T(i18n.KeyPhonemesGrabbed, v.items[v.cursor].IPA)
				}
			}
		case key.Matches(msg, v.keys.Save):
			return v.save(), false
		case key.Matches(msg, v.keys.Reset):
			return v.reset(), false
		}
	}
	return nil, false
}

// move shifts the cursor, carrying the grabbed row with it.
func (v *PhonemesView) move(delta int) {
	next := v.cursor + delta
	if next < 0 || next >= len(v.items) {
		return
	}
	if v.grabbed {
		v.items[v.cursor], v.items[next] = v.items[next], v.items[v.cursor]
		v.dirty = true
	}
	v.cursor = next
}

func (v *PhonemesView) save() tea.Cmd {
	if len(v.items) == 0 {
		return nil
	}
	v.busy = true
	v.grabbed = false
	ordered := clonePhonemes(v.items)
	return func() tea.Msg {
		if err := v.vm.SavePhonemeOrder(v.ctx, ordered); err != nil {
			return phonemesSavedMsg{err: err}
		}
		return phonemesSavedMsg{phonemes: ordered}
	}
}

func (v *PhonemesView) reset() tea.Cmd {
	v.busy = true
	return func() tea.Msg {
		list, err := v.vm.ResetPhonemeOrder(v.ctx)
		return phonemesResetMsg{phonemes: list, err: err}
	}
}

// Items returns the working order, including unsaved moves.
func (v *PhonemesView) Items() []repository.Phoneme { return clonePhonemes(v.items) }

func (v *PhonemesView) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(v.Title()))
	if v.dirty {
		b.WriteString(mutedStyle.Render("  (unsaved)"))
	}
	b.WriteString("\n\n")

	// keep the cursor row visible when the list is taller than the modal
	rows := max(1, height-6)
	start := 0
	if v.cursor >= rows {
		start = v.cursor - rows + 1
	}
	end := min(len(v.items), start+rows)
	for i := start; i < end; i++ {
		p := v.items[i]
		label := fmt.Sprintf("%2d. %-6s /%s/  %s", i+1, p.Symbol, p.IPA, mutedStyle.Render(string(p.Type)))
		switch {
		case i == v.cursor && v.grabbed:
			b.WriteString(grabbedStyle.Render("≡ " + label))
		case i == v.cursor:
			b.WriteString(activeRowStyle.Render("  " + label))
		default:
			b.WriteString(rowStyle.Render("  " + label))
		}
		b.WriteString("\n")
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

func clonePhonemes(in []repository.Phoneme) []repository.Phoneme {
	if in == nil {
		return nil
	}
	out := make([]repository.Phoneme, len(in))
	copy(out, in)
	return out
}
