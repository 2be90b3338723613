package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/ipachat/internal/database/repository"
	"github.com/jask/ipachat/internal/i18n"
	"github.com/jask/ipachat/internal/logging"
	"github.com/jask/ipachat/internal/service"
)

// App is the settings navigation screen: a list of sections, each of which
// presents a modal destination over the list.
type App struct {
	deps   Deps
	nav    *Navigator
	keys   keyMap
	logger *slog.Logger

	cursor int
	active Destination

	language     string
	phonemeCount int
	cancelSubs   []func()

	status    string
	statusErr bool
	width     int
	height    int
	quitting  bool
}

type summaryLoadedMsg struct {
	language string
	phonemes []repository.Phoneme
	err      error
}

// New builds the navigator over the caller's selected language and phoneme order.
// Both bindings are shared with the destinations; changes made there show up in the header.
func New(ctx context.Context, vm service.SettingsViewModel, selected *Binding[string], phonemes *Binding[[]repository.Phoneme], tr i18n.Translator, logger *slog.Logger) *App {
	if selected == nil {
		selected = Bind[string](nil)
	}
	if phonemes == nil {
		phonemes = Bind[[]repository.Phoneme](nil)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	a := &App{
		deps: Deps{
			Ctx:              ctx,
			ViewModel:        vm,
			SelectedLanguage: selected,
			Phonemes:         phonemes,
			Translator:       tr,
		},
		nav:          NewNavigator(DefaultSections(tr)),
		keys:         newKeyMap(),
		logger:       logger,
		language:     selected.Get(),
		phonemeCount: len(phonemes.Get()),
	}
	a.cancelSubs = append(a.cancelSubs,
		selected.Subscribe(func(code string) { a.language = code }),
		phonemes.Subscribe(func(list []repository.Phoneme) { a.phonemeCount = len(list) }),
	)
	return a
}

// Close drops the binding subscriptions.
func (a *App) Close() {
	for _, cancel := range a.cancelSubs {
		cancel()
	}
	a.cancelSubs = nil
}

func (a *App) Init() tea.Cmd {
	vm, ctx := a.deps.ViewModel, a.deps.Ctx
	return func() tea.Msg {
		lang, err := vm.SelectedLanguage(ctx)
		if err != nil {
			return summaryLoadedMsg{err: err}
		}
		list, err := vm.Phonemes(ctx)
		return summaryLoadedMsg{language: lang, phonemes: list, err: err}
	}
}

// Navigator exposes the navigation state.
func (a *App) Navigator() *Navigator { return a.nav }

// Active returns the presented destination, or nil on the list.
func (a *App) Active() Destination { return a.active }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isErr
		return a, nil
	case summaryLoadedMsg:
		if msg.err != nil {
			a.logger.Error("settings summary load failed", "error", msg.err)
			return a, errorCmd(msg.err)
		}
		if a.deps.SelectedLanguage.Get() == "" {
			a.deps.SelectedLanguage.Set(msg.language)
		}
		if len(a.deps.Phonemes.Get()) == 0 {
			a.deps.Phonemes.Set(msg.phonemes)
		}
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}
		if a.active != nil {
			return a, a.forward(msg)
		}
		return a, a.handleListKey(msg)
	}

	// async results belong to the presented destination; a dismissed one's are dropped
	if a.active != nil {
		return a, a.forward(msg)
	}
	return a, nil
}

func (a *App) handleListKey(msg tea.KeyMsg) tea.Cmd {
	entries := a.nav.Entries()
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(entries)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Open):
		if a.cursor < len(entries) {
			return a.present(entries[a.cursor])
		}
	}
	return nil
}

// present selects entry and opens its destination.
func (a *App) present(entry SectionEntry) tea.Cmd {
	if err := a.nav.Select(entry); err != nil {
		a.logger.Warn("section select rejected", "kind", entry.Kind.String(), "error", err)
		return errorCmd(err)
	}
	kind, ok := a.nav.Current()
	if !ok {
		return nil
	}
	a.active = ResolveDestination(kind, a.deps)
	a.status, a.statusErr = "", false
	a.logger.Info("section presented", "kind", kind.String())
	return a.active.Init()
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	cmd, done := a.active.Update(msg)
	if done {
		a.dismiss()
	}
	return cmd
}

func (a *App) dismiss() {
	kind := a.active.Kind()
	a.active = nil
	if err := a.nav.Dismiss(); err != nil {
		a.logger.Warn("section dismiss rejected", "kind", kind.String(), "error", err)
		return
	}
	a.logger.Info("section dismissed", "kind", kind.String())
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	width, height := a.width, a.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	tr := a.deps.Translator
	header := renderBar(headerStyle, width, " "+titleStyle.Background(colorMantle).Render(tr.T(i18n.KeyNavigationTitle))+
		headerStyle.Render("  "+a.summary()))

	help := a.keys.listHelp()
	if a.active != nil {
		help = a.active.Help()
	}
	footer := renderHelp(help, width)

	statusStyle := statusBarStyle
	if a.statusErr {
		statusStyle = statusErrBarStyle
	}
	statusLine := renderBar(statusStyle, width, " "+a.status)

	bodyHeight := max(1, height-3)
	body := renderSections(a.nav.Entries(), a.cursor, width)
	if a.active != nil {
		card := a.active.View(min(width-6, 72), bodyHeight-4)
		body = renderModal(body, card, width, bodyHeight)
	} else {
		body = strings.Join(padLines(body, width, bodyHeight), "\n")
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, statusLine, footer))
}

func (a *App) summary() string {
	lang := a.language
	if lang == "" {
		lang = "-"
	}
	return fmt.Sprintf("%s · %d phonemes", lang, a.phonemeCount)
}

// renderSections draws one row per entry, highlighting the cursor.
func renderSections(entries []SectionEntry, cursor, width int) string {
	var b strings.Builder
	b.WriteString("\n")
	for i, e := range entries {
		label := fitWidth(e.Title, max(1, width-6)) + "›"
		if i == cursor {
			b.WriteString(activeRowStyle.Render(label))
		} else {
			b.WriteString(rowStyle.Render(label))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
