package domain

import "fmt"

// Mode is one of the three quiz styles. Progress is tracked per mode.
type Mode string

// Quiz modes. The string values double as storage key suffixes.
const (
	ModeDefinitions Mode = "definitions"
	ModeSynonyms    Mode = "synonyms"
	ModeFillInBlank Mode = "fitb"
)

type modeInfo struct {
	label  string
	prompt string
}

var modeCatalog = map[Mode]modeInfo{
	ModeDefinitions: {label: "Definitions", prompt: "Choose the correct definition."},
	ModeSynonyms:    {label: "Synonyms", prompt: "Choose the closest synonym."},
	ModeFillInBlank: {label: "Fill in the Blank", prompt: "Choose the word that best fits the sentence."},
}

// Modes returns all quiz modes in display order.
func Modes() []Mode {
	return []Mode{ModeDefinitions, ModeSynonyms, ModeFillInBlank}
}

// ParseMode validates s as a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return m, nil
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	_, ok := modeCatalog[m]
	return ok
}

// Label is the human-readable mode name.
func (m Mode) Label() string { return modeCatalog[m].label }

// Prompt is the instruction shown with definitions and synonyms questions.
// Fill-in-the-blank questions use the blanked sentence instead.
func (m Mode) Prompt() string { return modeCatalog[m].prompt }
