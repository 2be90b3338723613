package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/ipachat/internal/database/repository"
)

func TestNavigatorStartsIdle(t *testing.T) {
	nav := NewNavigator(DefaultSections(testTranslator()))

	require.False(t, nav.Presenting())
	_, ok := nav.Selected()
	require.False(t, ok)
	_, ok = nav.Current()
	require.False(t, ok)
}

func TestDefaultSectionsOrder(t *testing.T) {
	entries := DefaultSections(testTranslator())

	require.Equal(t, []SectionEntry{
		{Title: "Language", Kind: SectionLanguage},
		{Title: "Voices", Kind: SectionSelectVoice},
		{Title: "Reorder phonemes", Kind: SectionReorderPhonemes},
	}, entries)
}

func TestSelectPresentsEachSection(t *testing.T) {
	for _, entry := range DefaultSections(testTranslator()) {
		t.Run(entry.Kind.String(), func(t *testing.T) {
			nav := NewNavigator(DefaultSections(testTranslator()))
			require.NoError(t, nav.Select(entry))

			require.True(t, nav.Presenting())
			kind, ok := nav.Current()
			require.True(t, ok)
			require.Equal(t, entry.Kind, kind)
		})
	}
}

func TestDismissKeepsSelection(t *testing.T) {
	nav := NewNavigator(DefaultSections(testTranslator()))
	entries := nav.Entries()
	require.NoError(t, nav.Select(entries[1]))
	require.NoError(t, nav.Dismiss())

	require.False(t, nav.Presenting())
	kind, ok := nav.Selected()
	require.True(t, ok)
	require.Equal(t, SectionSelectVoice, kind)
	_, ok = nav.Current()
	require.False(t, ok)

	require.NoError(t, nav.Select(entries[2]))
	kind, _ = nav.Current()
	require.Equal(t, SectionReorderPhonemes, kind)
}

func TestNavigatorRejectsInvalidTransitions(t *testing.T) {
	nav := NewNavigator(DefaultSections(testTranslator()))
	entries := nav.Entries()

	require.Error(t, nav.Dismiss())

	require.NoError(t, nav.Select(entries[0]))
	require.Error(t, nav.Select(entries[2]))
	kind, _ := nav.Current()
	require.Equal(t, SectionLanguage, kind)
}

func TestTransitionUnknownState(t *testing.T) {
	_, err := transition(navState("lost"), eventSelect)
	require.ErrorContains(t, err, "unknown navigator state")
}

func TestResolveDestination(t *testing.T) {
	vm := newFakeVM()
	deps := Deps{
		ViewModel:        vm,
		SelectedLanguage: Bind[string](nil),
		Phonemes:         Bind[[]repository.Phoneme](nil),
		Translator:       testTranslator(),
	}

	lang, ok := ResolveDestination(SectionLanguage, deps).(*LanguageView)
	require.True(t, ok)
	require.Same(t, vm, lang.ViewModel())

	voices, ok := ResolveDestination(SectionSelectVoice, deps).(*VoicesView)
	require.True(t, ok)
	require.Same(t, vm, voices.ViewModel())

	phonemes, ok := ResolveDestination(SectionReorderPhonemes, deps).(*PhonemesView)
	require.True(t, ok)
	require.Same(t, vm, phonemes.ViewModel())

	for _, kind := range []SectionKind{SectionLanguage, SectionSelectVoice, SectionReorderPhonemes} {
		require.Equal(t, kind, ResolveDestination(kind, deps).Kind())
	}
}

func TestResolveDestinationPanicsOnUnknownKind(t *testing.T) {
	require.Panics(t, func() {
		ResolveDestination(SectionKind(99), Deps{Translator: testTranslator()})
	})
}

func TestSectionKindString(t *testing.T) {
	require.Equal(t, "language", SectionLanguage.String())
	require.Equal(t, "select-voice", SectionSelectVoice.String())
	require.Equal(t, "reorder-phonemes", SectionReorderPhonemes.String())
	require.Equal(t, "section(7)", SectionKind(7).String())
}
