// Package i18n resolves localization keys for the settings screens.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Keys used by the settings screens.
const (
	KeyNavigationTitle = "settings.navigation.title"
	KeySectionLanguage = "settings.section.button.language"
	KeySectionVoices   = "settings.section.button.voices"
	KeySectionReorder  = "settings.section.button.reorder"

	KeyLanguageTitle   = "settings.language.title"
	KeyLanguageFilter  = "settings.language.filter"
	KeyLanguageEmpty   = "settings.language.empty"
	KeyLanguageSaved   = "settings.language.saved"
	KeyVoicesTitle     = "settings.voices.title"
	KeyVoicesEmpty     = "settings.voices.empty"
	KeyVoicesSaved     = "settings.voices.saved"
	KeyVoicesPreviewed = "settings.voices.previewed"
	KeyVoicesMuted     = "settings.voices.muted"
	KeyPhonemesTitle   = "settings.phonemes.title"
	KeyPhonemesSaved   = "settings.phonemes.saved"
	KeyPhonemesReset   = "settings.phonemes.reset"
	KeyPhonemesGrabbed = "settings.phonemes.grabbed"
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		KeyNavigationTitle: "Settings",
		KeySectionLanguage: "Language",
		KeySectionVoices:   "Voices",
		KeySectionReorder:  "Reorder phonemes",
		KeyLanguageTitle:   "Select language",
		KeyLanguageFilter:  "Filter: ",
		KeyLanguageEmpty:   "No matching languages",
		KeyLanguageSaved:   "Language set to %s",
		KeyVoicesTitle:     "Select voice",
		KeyVoicesEmpty:     "No voices for this language",
		KeyVoicesSaved:     "Voice set to %s",
		KeyVoicesPreviewed: "Previewed %s",
		KeyVoicesMuted:     "Audio is muted",
		KeyPhonemesTitle:   "Reorder phonemes",
		KeyPhonemesSaved:   "Phoneme order saved",
		KeyPhonemesReset:   "Phoneme order reset",
		KeyPhonemesGrabbed: "Moving %s",
	},
	language.German: {
		KeyNavigationTitle: "Einstellungen",
		KeySectionLanguage: "Sprache",
		KeySectionVoices:   "Stimmen",
		KeySectionReorder:  "Phoneme sortieren",
		KeyLanguageTitle:   "Sprache wählen",
		KeyLanguageFilter:  "Filter: ",
		KeyLanguageEmpty:   "Keine passenden Sprachen",
		KeyLanguageSaved:   "Sprache: %s",
		KeyVoicesTitle:     "Stimme wählen",
		KeyVoicesEmpty:     "Keine Stimmen für diese Sprache",
		KeyVoicesSaved:     "Stimme: %s",
		KeyVoicesPreviewed: "%s abgespielt",
		KeyVoicesMuted:     "Ton ist stumm geschaltet",
		KeyPhonemesTitle:   "Phoneme sortieren",
		KeyPhonemesSaved:   "Reihenfolge gespeichert",
		KeyPhonemesReset:   "Reihenfolge zurückgesetzt",
		KeyPhonemesGrabbed: "%s wird verschoben",
	},
	language.Spanish: {
		KeyNavigationTitle: "Ajustes",
		KeySectionLanguage: "Idioma",
		KeySectionVoices:   "Voces",
		KeySectionReorder:  "Reordenar fonemas",
		KeyLanguageTitle:   "Elegir idioma",
		KeyLanguageFilter:  "Filtro: ",
		KeyLanguageEmpty:   "Ningún idioma coincide",
		KeyLanguageSaved:   "Idioma: %s",
		KeyVoicesTitle:     "Elegir voz",
		KeyVoicesEmpty:     "No hay voces para este idioma",
		KeyVoicesSaved:     "Voz: %s",
		KeyVoicesPreviewed: "%s reproducida",
		KeyVoicesMuted:     "Audio silenciado",
		KeyPhonemesTitle:   "Reordenar fonemas",
		KeyPhonemesSaved:   "Orden guardado",
		KeyPhonemesReset:   "Orden restablecido",
		KeyPhonemesGrabbed: "Moviendo %s",
	},
}

// Translator looks up localized strings by key.
type Translator interface {
	T(key string, args ...any) string
}

// Catalog is a Translator bound to one locale.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

var supported = []language.Tag{language.English, language.German, language.Spanish}

// New returns a Catalog for the closest supported match to locale, falling back to English.
func New(locale string) *Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			// the table above is static; SetString only fails on malformed tags
			_ = b.SetString(tag, key, msg)
		}
	}
	tag := match(locale)
	return &Catalog{tag: tag, printer: message.NewPrinter(tag, message.Catalog(b))}
}

func match(locale string) language.Tag {
	want, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, idx, conf := language.NewMatcher(supported).Match(want)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// T returns the localized string for key. Unknown keys come back unchanged.
func (c *Catalog) T(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}

// Locale reports the matched locale.
func (c *Catalog) Locale() language.Tag { return c.tag }

// Supported lists the locales with translations.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}
