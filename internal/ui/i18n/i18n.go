// Package i18n registers setup assistant copy with x/text/message and exposes
// the localizer contract used by the UI components.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	KeyExpandStep      = "setup.step.expand"
	KeyCollapseStep    = "setup.step.collapse"
	KeyStepNumber      = "setup.step.number"
	KeyStepComplete    = "setup.step.complete"
	KeyProgressPercent = "setup.progress.percent"
	KeyPlansTitle      = "setup.plans.title"
	KeyPlansEmpty      = "setup.plans.empty"
	KeyStepsCount      = "setup.plans.steps"
)

var messages = map[language.Tag]map[string]string{
	language.AmericanEnglish: {
		KeyExpandStep:      "Expand Step",
		KeyCollapseStep:    "Collapse Step",
		KeyStepNumber:      "Step %d",
		KeyStepComplete:    "Step %d complete",
		KeyProgressPercent: "%d%% Complete",
		KeyPlansTitle:      "Setup plans",
		KeyPlansEmpty:      "No setup plans available.",
		KeyStepsCount:      "%d steps",
	},
	language.BrazilianPortuguese: {
		KeyExpandStep:      "Expandir etapa",
		KeyCollapseStep:    "Recolher etapa",
		KeyStepNumber:      "Etapa %d",
		KeyStepComplete:    "Etapa %d concluída",
		KeyProgressPercent: "%d%% concluído",
		KeyPlansTitle:      "Planos de configuração",
		KeyPlansEmpty:      "Nenhum plano de configuração disponível.",
		KeyStepsCount:      "%d etapas",
	},
}

var supported = []language.Tag{language.AmericanEnglish, language.BrazilianPortuguese}

var matcher = language.NewMatcher(supported)

func init() {
	for tag, entries := range messages {
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if baseTag, err := language.Parse(base.String()); err == nil && baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		for key, value := range entries {
			for _, registerTag := range tags {
				if err := message.SetString(registerTag, key, value); err != nil {
					panic("register setup assistant message " + key + ": " + err.Error())
				}
			}
		}
	}
}

// Localizer provides translated strings for templ components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// DefaultTag returns the fallback language.
func DefaultTag() language.Tag {
	return language.AmericanEnglish
}

// SupportedTags returns the languages with registered copy.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// ParseTag parses value and reports whether it maps to a supported language.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	matched, _, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultTag(), false
	}
	return baseSupported(matched), true
}

// MatchTags returns the best supported language for an ordered preference
// list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	matched, _, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultTag()
	}
	return baseSupported(matched)
}

// Printer returns a localizer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Default returns the localizer for the fallback language.
func Default() Localizer {
	return Printer(DefaultTag())
}

// T returns a translated string, falling back to the default language when
// loc is nil.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		loc = Default()
	}
	return loc.Sprintf(key, args...)
}

// Matcher results may carry a -u-rg extension; strip back to the supported tag.
func baseSupported(tag language.Tag) language.Tag {
	for _, candidate := range supported {
		if candidate == tag {
			return candidate
		}
	}
	_, index, _ := matcher.Match(tag)
	if index >= 0 && index < len(supported) {
		return supported[index]
	}
	return DefaultTag()
}
