package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/ipachat/internal/database/repository"
	"github.com/jask/ipachat/internal/i18n"
	"github.com/jask/ipachat/internal/service"
)

type languagesLoadedMsg struct {
	query string
	langs []repository.Language
	err   error
}

type languageSelectedMsg struct {
	lang repository.Language
	err  error
}

// LanguageView lets the user pick the speech language. The choice is written
// to the selected-language binding and persisted through the view model.
type LanguageView struct {
	ctx      context.Context
	vm       service.SettingsViewModel
	selected *Binding[string]
	tr       i18n.Translator
	keys     keyMap

	filter textinput.Model
	langs  []repository.Language
	cursor int
	err    error
	saving bool
}

func NewLanguageView(ctx context.Context, vm service.SettingsViewModel, selected *Binding[string], tr i18n.Translator) *LanguageView {
	in := textinput.New()
	in.Prompt = tr.T(i18n.KeyLanguageFilter)
	in.CharLimit = 32
	in.Focus()
	return &LanguageView{ctx: ctx, vm: vm, selected: selected, tr: tr, keys: newKeyMap(), filter: in}
}

func (v *LanguageView) Kind() SectionKind { return SectionLanguage }
func (v *LanguageView) destination()      {}
func (v *LanguageView) Title() string     { return v.tr.T(i18n.KeyLanguageTitle) }

func (v *LanguageView) ViewModel() service.SettingsViewModel { return v.vm }

func (v *LanguageView) Help() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("runes"), key.WithHelp("type", "filter")),
		v.keys.Close,
	}
}

func (v *LanguageView) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, v.search(""))
}

func (v *LanguageView) search(query string) tea.Cmd {
	return func() tea.Msg {
		langs, err := v.vm.SearchLanguages(v.ctx, query)
		return languagesLoadedMsg{query: query, langs: langs, err: err}
	}
}

func (v *LanguageView) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case languagesLoadedMsg:
		if msg.query != v.filter.Value() {
			// a newer search is in flight
			return nil, false
		}
		v.err = msg.err
		v.langs = msg.langs
		v.cursor = v.indexOf(v.selected.Get())
		return nil, false
	case languageSelectedMsg:
		v.saving = false
		if msg.err != nil {
			v.err = msg.err
			return nil, false
		}
		v.selected.Set(msg.lang.Code)
		return statusCmd(v.tr.T(i18n.KeyLanguageSaved, msg.lang.Name)), true
	case tea.KeyMsg:
		if v.saving {
			// closing now would drop the result and leave the binding stale
			return nil, false
		}
		switch {
		case key.Matches(msg, v.keys.Close):
			return nil, true
		case msg.Type == tea.KeyUp:
			if v.cursor > 0 {
				v.cursor--
			}
			return nil, false
		case msg.Type == tea.KeyDown:
			if v.cursor < len(v.langs)-1 {
				v.cursor++
			}
			return nil, false
		case msg.Type == tea.KeyEnter:
			return v.choose(), false
		}
	}

	before := v.filter.Value()
	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	if after := v.filter.Value(); after != before {
		return tea.Batch(cmd, v.search(after)), false
	}
	return cmd, false
}

func (v *LanguageView) choose() tea.Cmd {
	if v.saving || len(v.langs) == 0 {
		return nil
	}
	lang := v.langs[v.cursor]
	v.saving = true
	return func() tea.Msg {
		return languageSelectedMsg{lang: lang, err: v.vm.SelectLanguage(v.ctx, lang.Code)}
	}
}

// indexOf keeps the cursor on code when it is listed, else on the first row.
func (v *LanguageView) indexOf(code string) int {
	for i, l := range v.langs {
		if l.Code == code {
			return i
		}
	}
	return 0
}

func (v *LanguageView) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(v.Title()))
	b.WriteString("\n")
	b.WriteString(v.filter.View())
	b.WriteString("\n\n")
	if len(v.langs) == 0 {
		b.WriteString(mutedStyle.Render(v.tr.T(i18n.KeyLanguageEmpty)))
		b.WriteString("\n")
	}
	current := v.selected.Get()
	for i, l := range v.langs {
		mark := "  "
		if l.Code == current {
			mark = checkStyle.Render("✓ ")
		}
		label := fmt.Sprintf("%s%-16s %-10s %s", mark, l.Name, l.Code, mutedStyle.Render(l.NativeName))
		if i == v.cursor {
			b.WriteString(activeRowStyle.Render(label))
		} else {
			b.WriteString(rowStyle.Render(label))
		}
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(statusErrBarStyle.Render(v.err.Error()))
	}
	return clipHeight(strings.TrimRight(b.String(), "\n"), height)
}

func clipHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
