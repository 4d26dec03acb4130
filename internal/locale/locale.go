// Package locale holds the user-facing text catalogs.
package locale

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultLang is used when no language is configured.
const DefaultLang = "en"

// ErrUnknownLanguage is returned by Get for languages without a catalog.
var ErrUnknownLanguage = errors.New("unknown language")

// StageText is the localized text for one stage of the cycle.
type StageText struct {
	Name   string
	Short  string
	Piston string
	Valves string
	Crank  string
	Effect string
}

// FactLabels name the four facts shown in the explanation panel.
type FactLabels struct {
	Piston string
	Valves string
	Crank  string
	Effect string
}

// LegendText holds the legend captions and state words.
type LegendText struct {
	Piston  string
	Intake  string
	Exhaust string
	Crank   string
	Down    string
	Up      string
	Open    string
	Closed  string
}

// QuizText holds the quiz prompt and result messages.
type QuizText struct {
	Question    string
	Placeholder string
	Correct     string
	Incorrect   string
}

// Locale is a complete text catalog for one language.
type Locale struct {
	Code       string
	StageLabel string
	Stages     [4]StageText
	Facts      FactLabels
	Legend     LegendText
	Quiz       QuizText
	Help       string
	Paused     string
	Running    string
}

var catalogs = map[string]Locale{
	"en": english,
	"pt": portuguese,
}

// Get returns the catalog for lang. Lookup is case-insensitive.
func Get(lang string) (Locale, error) {
	code := strings.ToLower(strings.TrimSpace(lang))
	if code == "" {
		code = DefaultLang
	}
	loc, ok := catalogs[code]
	if !ok {
		return Locale{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownLanguage, lang, strings.Join(Languages(), ", "))
	}
	return loc, nil
}

// MustGet is like Get but panics on unknown languages.
func MustGet(lang string) Locale {
	loc, err := Get(lang)
	if err != nil {
		panic(err)
	}
	return loc
}

// Languages lists the available language codes in sorted order.
func Languages() []string {
	out := make([]string, 0, len(catalogs))
	for code := range catalogs {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// StageLabelText formats the short stage indicator, e.g. "Stage: Intake".
func (l Locale) StageLabelText(index int) string {
	return fmt.Sprintf("%s: %s", l.StageLabel, l.Stages[index].Name)
}
