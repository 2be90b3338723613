package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/ipachat/internal/audio"
	"github.com/jask/ipachat/internal/database/repository"
)

func symbols(list []repository.Phoneme) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Symbol)
	}
	return out
}

func TestLanguageViewSelectsAndWritesBinding(t *testing.T) {
	vm := newFakeVM()
	lang := "en-US"
	selected := Bind(&lang)
	v := NewLanguageView(context.Background(), vm, selected, testTranslator())

	_, done := screenDrive(v, v.Init())
	require.False(t, done)
	require.Len(t, v.langs, 3)
	require.Equal(t, 0, v.cursor)

	_, done = screenPress(v, keyPress(tea.KeyDown))
	require.False(t, done)
	msgs, done := screenPress(v, keyPress(tea.KeyEnter))
	require.True(t, done)
	require.Equal(t, "de-DE", lang)
	require.Equal(t, "de-DE", vm.language)
	require.Equal(t, []tea.Msg{statusMsg{text: "Language set to German"}}, msgs)
}

func TestLanguageViewFilters(t *testing.T) {
	vm := newFakeVM()
	v := NewLanguageView(context.Background(), vm, Bind[string](nil), testTranslator())
	screenDrive(v, v.Init())

	_, done := screenPress(v, runes("deu"))
	require.False(t, done)
	require.Equal(t, "deu", v.filter.Value())
	require.Len(t, v.langs, 1)
	require.Equal(t, "de-DE", v.langs[0].Code)
}

func TestLanguageViewDropsStaleResults(t *testing.T) {
	v := NewLanguageView(context.Background(), newFakeVM(), Bind[string](nil), testTranslator())
	v.filter.SetValue("ger")

	cmd, _ := v.Update(languagesLoadedMsg{query: "g", langs: []repository.Language{{Code: "xx"}}})
	require.Nil(t, cmd)
	require.Empty(t, v.langs)
}

func TestLanguageViewEscCloses(t *testing.T) {
	lang := "en-US"
	v := NewLanguageView(context.Background(), newFakeVM(), Bind(&lang), testTranslator())
	_, done := screenPress(v, keyPress(tea.KeyEsc))
	require.True(t, done)
	require.Equal(t, "en-US", lang)
}

func TestVoicesViewPreviewAndSelect(t *testing.T) {
	vm := newFakeVM()
	v := NewVoicesView(context.Background(), vm, testTranslator())

	screenDrive(v, v.Init())
	require.Equal(t, "en-US", v.language)
	require.Len(t, v.voices, 2)
	require.NotNil(t, v.sample)
	require.Equal(t, "a", v.sample.Symbol)

	screenPress(v, keyPress(tea.KeyDown))
	_, done := screenPress(v, runes("p"))
	require.False(t, done)
	require.Equal(t, []string{"v-tom/a"}, vm.previewed)
	require.Equal(t, "Previewed Tom", v.note)

	msgs, done := screenPress(v, keyPress(tea.KeyEnter))
	require.True(t, done)
	require.Equal(t, "v-tom", vm.voice)
	require.Equal(t, []tea.Msg{statusMsg{text: "Voice set to Tom"}}, msgs)
}

func TestVoicesViewMutedPreviewIsNotAnError(t *testing.T) {
	vm := newFakeVM()
	vm.previewErr = fmt.Errorf("play: %w", audio.ErrMuted)
	v := NewVoicesView(context.Background(), vm, testTranslator())
	screenDrive(v, v.Init())

	screenPress(v, runes("p"))
	require.NoError(t, v.err)
	require.Equal(t, "Audio is muted", v.note)
}

func TestVoicesViewPreviewError(t *testing.T) {
	vm := newFakeVM()
	vm.previewErr = errBoom
	v := NewVoicesView(context.Background(), vm, testTranslator())
	screenDrive(v, v.Init())

	_, done := screenPress(v, runes("p"))
	require.False(t, done)
	require.ErrorIs(t, v.err, errBoom)
	require.Contains(t, v.View(60, 20), "boom")
}

func TestVoicesViewCursorStartsOnSelectedVoice(t *testing.T) {
	vm := newFakeVM()
	vm.voice = "v-tom"
	v := NewVoicesView(context.Background(), vm, testTranslator())
	screenDrive(v, v.Init())
	require.Equal(t, 1, v.cursor)
	require.Contains(t, v.View(60, 20), "Tom")
}

func TestVoicesViewEmptyLanguage(t *testing.T) {
	vm := newFakeVM()
	vm.language = "es-ES"
	v := NewVoicesView(context.Background(), vm, testTranslator())
	screenDrive(v, v.Init())

	require.Empty(t, v.voices)
	require.Contains(t, v.View(60, 20), "No voices for this language")
	cmd, done := v.Update(keyPress(tea.KeyEnter))
	require.Nil(t, cmd)
	require.False(t, done)
}

func TestPhonemesViewLoadsWhenBindingEmpty(t *testing.T) {
	vm := newFakeVM()
	bound := Bind[[]repository.Phoneme](nil)
	v := NewPhonemesView(context.Background(), vm, bound, testTranslator())

	screenDrive(v, v.Init())
	require.Equal(t, []string{"a", "m", "t"}, symbols(v.Items()))
	require.Equal(t, []string{"a", "m", "t"}, symbols(bound.Get()))
}

func TestPhonemesViewMoveAndSave(t *testing.T) {
	vm := newFakeVM()
	list, _ := vm.Phonemes(context.Background())
	bound := Bind(&list)
	v := NewPhonemesView(context.Background(), vm, bound, testTranslator())
	require.Nil(t, v.Init())

	screenPress(v, keyPress(tea.KeySpace))
	require.True(t, v.grabbed)
	screenPress(v, keyPress(tea.KeyDown))
	require.Equal(t, []string{"m", "a", "t"}, symbols(v.Items()))
	// the binding only changes on save
	require.Equal(t, []string{"a", "m", "t"}, symbols(bound.Get()))

	msgs, done := screenPress(v, keyPress(tea.KeyEnter))
	require.True(t, done)
	require.Len(t, vm.saved, 1)
	require.Equal(t, []string{"m", "a", "t"}, symbols(vm.saved[0]))
	require.Equal(t, []string{"m", "a", "t"}, symbols(list))
	require.Equal(t, []tea.Msg{statusMsg{text: "Phoneme order saved"}}, msgs)
}

func TestPhonemesViewCursorMovesWithoutGrab(t *testing.T) {
	vm := newFakeVM()
	list, _ := vm.Phonemes(context.Background())
	v := NewPhonemesView(context.Background(), vm, Bind(&list), testTranslator())

	screenPress(v, keyPress(tea.KeyDown))
	screenPress(v, keyPress(tea.KeyDown))
	screenPress(v, keyPress(tea.KeyDown))
	require.Equal(t, 2, v.cursor)
	require.Equal(t, []string{"a", "m", "t"}, symbols(v.Items()))

	screenPress(v, keyPress(tea.KeyUp))
	require.Equal(t, 1, v.cursor)
}

func TestPhonemesViewEscDiscards(t *testing.T) {
	vm := newFakeVM()
	list, _ := vm.Phonemes(context.Background())
	v := NewPhonemesView(context.Background(), vm, Bind(&list), testTranslator())

	screenPress(v, keyPress(tea.KeySpace))
	screenPress(v, keyPress(tea.KeyDown))
	_, done := screenPress(v, keyPress(tea.KeyEsc))
	require.True(t, done)
	require.Empty(t, vm.saved)
	require.Equal(t, []string{"a", "m", "t"}, symbols(list))
}

func TestPhonemesViewReset(t *testing.T) {
	vm := newFakeVM()
	vm.phonemes[0], vm.phonemes[2] = vm.phonemes[2], vm.phonemes[0]
	list, _ := vm.Phonemes(context.Background())
	bound := Bind(&list)
	v := NewPhonemesView(context.Background(), vm, bound, testTranslator())

	_, done := screenPress(v, runes("r"))
	require.False(t, done)
	require.Equal(t, 1, vm.resets)
	require.Equal(t, []string{"a", "m", "t"}, symbols(v.Items()))
	require.Equal(t, []string{"a", "m", "t"}, symbols(bound.Get()))
	require.Equal(t, "Phoneme order reset", v.note)
}

func TestPhonemesViewSaveErrorStaysOpen(t *testing.T) {
	vm := newFakeVM()
	vm.saveErr = errBoom
	list, _ := vm.Phonemes(context.Background())
	v := NewPhonemesView(context.Background(), vm, Bind(&list), testTranslator())

	_, done := screenPress(v, keyPress(tea.KeyEnter))
	require.False(t, done)
	require.ErrorIs(t, v.err, errBoom)
	require.Contains(t, v.View(60, 20), "boom")
}
