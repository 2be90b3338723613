package repository

import "time"

// PhonemeType is the articulatory class of a phoneme.
type PhonemeType string

const (
	PhonemeVowel       PhonemeType = "vowel"
	PhonemeNasal       PhonemeType = "nasal"
	PhonemePlosive     PhonemeType = "plosive"
	PhonemeFricative   PhonemeType = "fricative"
	PhonemeAffricate   PhonemeType = "affricate"
	PhonemeApproximant PhonemeType = "approximant"
	PhonemeLateral     PhonemeType = "lateral"
	PhonemeTrill       PhonemeType = "trill"
	PhonemeTap         PhonemeType = "tap"
)

// Valid reports whether t is one of the known phoneme classes.
func (t PhonemeType) Valid() bool {
	switch t {
	case PhonemeVowel, PhonemeNasal, PhonemePlosive, PhonemeFricative, PhonemeAffricate,
		PhonemeApproximant, PhonemeLateral, PhonemeTrill, PhonemeTap:
		return true
	}
	return false
}

// Language represents a language row.
type Language struct {
	Code       string
	Name       string
	NativeName string
	SortOrder  int
}

// Voice represents a voice row.
type Voice struct {
	ID           string
	LanguageCode string
	Name         string
	Gender       string
	PitchHz      float64
}

// Phoneme represents a phoneme row.
type Phoneme struct {
	ID           string      `json:"id"`
	Symbol       string      `json:"symbol"`
	IPA          string      `json:"ipa"`
	Type         PhonemeType `json:"type"`
	DefaultOrder int         `json:"default_order"`
	UserOrder    *int        `json:"user_order,omitempty"`
}

// Preference represents a key/value settings row.
type Preference struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Preference keys.
const (
	PrefLanguage = "language"
	PrefVoice    = "voice"
)
