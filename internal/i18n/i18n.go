// Package i18n holds the server-side message catalogue for the two site
// languages.
package i18n

import (
	"embed"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

const (
	Vietnamese = "vi"
	English    = "en"
)

var supported = []language.Tag{language.Vietnamese, language.English}

var matcher = language.NewMatcher(supported)

// Translator wraps a go-i18n bundle. It is safe for concurrent use.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

func NewTranslator(defaultLocale string) (*Translator, error) {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.Vietnamese
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.vi.toml", "active.en.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	return &Translator{bundle: bundle, defaultLanguage: tag}, nil
}

// DefaultLocale is the base language of the default tag, "vi" or "en".
func (t *Translator) DefaultLocale() string {
	base, _ := t.defaultLanguage.Base()
	return base.String()
}

// T renders key for locale, falling back to the default locale and then to
// the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	localizer := i18n.NewLocalizer(t.bundle, locale, t.defaultLanguage.String())
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		return key
	}

	return msg
}

// TN is T for messages with plural forms. Count is passed to the template.
func (t *Translator) TN(locale, key string, count int, data map[string]any) string {
	tmpl := map[string]any{"Count": count}
	for k, v := range data {
		tmpl[k] = v
	}

	localizer := i18n.NewLocalizer(t.bundle, locale, t.defaultLanguage.String())
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		PluralCount:  count,
		TemplateData: tmpl,
	})
	if err != nil {
		return key
	}

	return msg
}

// Match picks "vi" or "en" for an explicit locale or an Accept-Language
// header, in that order of preference. Empty input yields "".
func Match(explicit, acceptLanguage string) string {
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			_, idx, conf := matcher.Match(tag)
			if conf != language.No {
				return baseOf(idx)
			}
		}
	}

	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) != 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return baseOf(idx)
			}
		}
	}

	return ""
}

func baseOf(idx int) string {
	base, _ := supported[idx].Base()
	return base.String()
}
