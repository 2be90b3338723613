package tui

import (
	"fmt"

	"github.com/jask/ipachat/internal/i18n"
)

// SectionKind identifies which settings sub-screen a row opens.
type SectionKind int

const (
	SectionLanguage SectionKind = iota + 1
	SectionSelectVoice
	SectionReorderPhonemes
)

func (k SectionKind) String() string {
	switch k {
	case SectionLanguage:
		return "language"
	case SectionSelectVoice:
		return "select-voice"
	case SectionReorderPhonemes:
		return "reorder-phonemes"
	default:
		return fmt.Sprintf("section(%d)", int(k))
	}
}

// SectionEntry is one row of the settings list.
type SectionEntry struct {
	Title string
	Kind  SectionKind
}

// DefaultSections returns the settings rows in display order.
func DefaultSections(tr i18n.Translator) []SectionEntry {
	return []SectionEntry{
		{Title: tr.T(i18n.KeySectionLanguage), Kind: SectionLanguage},
		{Title: tr.T(i18n.KeySectionVoices), Kind: SectionSelectVoice},
		{Title: tr.T(i18n.KeySectionReorder), Kind: SectionReorderPhonemes},
	}
}

type navState string

type navEvent string

const (
	stateIdle       navState = "idle"
	statePresenting navState = "presenting"
)

const (
	eventSelect  navEvent = "select"
	eventDismiss navEvent = "dismiss"
)

func transition(current navState, event navEvent) (navState, error) {
	switch current {
	case stateIdle:
		switch event {
		case eventSelect:
			return statePresenting, nil
		default:
			return current, invalidTransition(current, event)
		}
	case statePresenting:
		switch event {
		case eventDismiss:
			return stateIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	default:
		return current, fmt.Errorf("unknown navigator state %q", current)
	}
}

func invalidTransition(state navState, event navEvent) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}

// Navigator holds which section is selected and whether it is being presented.
// The selection outlives a dismissal; only presentation is cleared.
type Navigator struct {
	entries      []SectionEntry
	selected     SectionKind
	hasSelection bool
	state        navState
}

func NewNavigator(entries []SectionEntry) *Navigator {
	return &Navigator{entries: entries, state: stateIdle}
}

// Entries returns the rows in declaration order.
func (n *Navigator) Entries() []SectionEntry { return n.entries }

// Select presents entry. It fails only while another section is already presented.
func (n *Navigator) Select(entry SectionEntry) error {
	next, err := transition(n.state, eventSelect)
	if err != nil {
		return err
	}
	n.selected = entry.Kind
	n.hasSelection = true
	n.state = next
	return nil
}

// Dismiss returns to the list.
func (n *Navigator) Dismiss() error {
	next, err := transition(n.state, eventDismiss)
	if err != nil {
		return err
	}
	n.state = next
	return nil
}

// Presenting reports whether a section is on screen.
func (n *Navigator) Presenting() bool { return n.state == statePresenting }

// Selected returns the last selected kind, presented or not.
func (n *Navigator) Selected() (SectionKind, bool) { return n.selected, n.hasSelection }

// Current returns the kind to present. ok is false unless a selection is being presented.
func (n *Navigator) Current() (SectionKind, bool) {
	if !n.Presenting() || !n.hasSelection {
		return 0, false
	}
	return n.selected, true
}
