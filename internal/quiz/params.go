package quiz

import "github.com/phrazzld/bibliobuddy/internal/config"

// Params are the tunable constants of the engine.
type Params struct {
	// ActiveCap is the most words a mode tracks at once before new words pause.
	ActiveCap int
	// ReviewMinimum is the fewest mastered words review mode accepts.
	// Zero disables the gate.
	ReviewMinimum int
	// OptionCount is the maximum number of options per question.
	OptionCount int
	// DetailLimit caps the synonyms and sentences shown with a word.
	DetailLimit int
}

// DefaultParams returns the stock engine constants.
func DefaultParams() Params {
	return Params{
		ActiveCap:     50,
		ReviewMinimum: 10,
		OptionCount:   5,
		DetailLimit:   10,
	}
}

// ParamsFromConfig maps the quiz configuration section to Params.
func ParamsFromConfig(cfg config.QuizConfig) Params {
	return Params{
		ActiveCap:     cfg.ActiveCap,
		ReviewMinimum: cfg.ReviewMinimum,
		OptionCount:   cfg.OptionCount,
		DetailLimit:   cfg.DetailLimit,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.ActiveCap <= 0 {
		p.ActiveCap = d.ActiveCap
	}
	if p.ReviewMinimum < 0 {
		p.ReviewMinimum = d.ReviewMinimum
	}
	if p.OptionCount < 2 {
		p.OptionCount = d.OptionCount
	}
	if p.DetailLimit <= 0 {
		p.DetailLimit = d.DetailLimit
	}
	return p
}
