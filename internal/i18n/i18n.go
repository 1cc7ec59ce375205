// Package i18n provides the uz/en/ru message catalogs used for UI labels,
// export headings and user-facing error messages.
package i18n

import (
	"embed"
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Language is one of the supported interface languages.
type Language string

const (
	Uzbek   Language = "uz"
	English Language = "en"
	Russian Language = "ru"
)

// DefaultLanguage is used when no language is selected.
const DefaultLanguage = Uzbek

var supported = []Language{Uzbek, English, Russian}

var matcher = language.NewMatcher([]language.Tag{
	language.Make("uz"),
	language.English,
	language.Russian,
})

// Match resolves arbitrary language input (a bare code or an Accept-Language
// header) to a supported language. Unmatched input lands on the matcher's
// first tag, Uzbek.
func Match(input string) Language {
	if input == "" {
		return DefaultLanguage
	}
	_, index := language.MatchStrings(matcher, input)
	return supported[index]
}

// Name returns the English name of the language, as used in prompts.
func (l Language) Name() string {
	switch l {
	case English:
		return "English"
	case Russian:
		return "Russian"
	default:
		return "Uzbek"
	}
}

// Catalog holds the loaded message tables.
type Catalog struct {
	messages map[Language]map[string]string
}

// Load parses the embedded locale files.
func Load() (*Catalog, error) {
	c := &Catalog{messages: make(map[Language]map[string]string)}
	for _, lang := range supported {
		data, err := localeFS.ReadFile(fmt.Sprintf("locales/%s.yaml", lang))
		if err != nil {
			return nil, fmt.Errorf("reading locale %s: %w", lang, err)
		}
		table := make(map[string]string)
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parsing locale %s: %w", lang, err)
		}
		c.messages[lang] = table
	}
	return c, nil
}

// T looks up a message key. Missing keys fall back to Uzbek, then to the
// key itself.
func (c *Catalog) T(lang Language, key string) string {
	if table, ok := c.messages[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := c.messages[DefaultLanguage][key]; ok {
		return msg
	}
	return key
}

// Tf looks up a message key and formats it with args.
func (c *Catalog) Tf(lang Language, key string, args ...any) string {
	return fmt.Sprintf(c.T(lang, key), args...)
}
