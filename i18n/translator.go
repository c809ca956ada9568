// Package i18n renders UI labels and toasts in the session's locale.
// file: i18n/translator.go
package i18n

import (
	"embed"
	"slices"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"civil-quest-admin/logger"
)

//go:embed active.*.toml
var localeFS embed.FS

var localeFiles = map[string]string{
	"en":  "active.en.toml",
	"fil": "active.fil.toml",
}

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	supported       map[string]bool
}

// NewTranslator loads the embedded message files with defaultLocale as the
// fallback language.
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	supported := make(map[string]bool, len(localeFiles))
	for locale, file := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logger.Error.Printf("[i18n] failed to load %s: %v", file, err)
			continue
		}
		supported[locale] = true
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		supported:       supported,
	}
}

// Supported reports whether locale has a message file.
func (t *Translator) Supported(locale string) bool {
	return t.supported[locale]
}

// Locales lists the supported locales, default first, the rest sorted.
func (t *Translator) Locales() []string {
	out := []string{t.defaultLanguage.String()}
	for l := range t.supported {
		if l != out[0] {
			out = append(out, l)
		}
	}
	slices.Sort(out[1:])
	return out
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself. API error texts pass through this way.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		logger.Debug.Printf("[i18n] no message for key=%q locales=%v", key, languages)
		return key
	}
	return msg
}
