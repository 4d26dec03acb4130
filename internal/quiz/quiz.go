// Package quiz checks answers to the cycle quiz.
package quiz

import (
	"github.com/verte-zerg/fourstroke/internal/locale"
	"github.com/verte-zerg/fourstroke/internal/stage"
)

// CorrectAnswer is the expected answer: the exhaust stage, numbered from 1.
const CorrectAnswer = "4"

// Result colours.
const (
	ColorCorrect   = stage.ColorOpen
	ColorIncorrect = stage.ColorClosed
)

// Result is the outcome of checking an answer.
type Result struct {
	Correct bool
	Message string
	Color   string
}

// Question returns the quiz prompt.
func Question(loc locale.Locale) string {
	return loc.Quiz.Question
}

// Check compares submitted with the correct answer. Comparison is exact:
// no trimming or case folding.
func Check(loc locale.Locale, submitted string) Result {
	if submitted == CorrectAnswer {
		return Result{Correct: true, Message: loc.Quiz.Correct, Color: ColorCorrect}
	}
	return Result{Correct: false, Message: loc.Quiz.Incorrect, Color: ColorIncorrect}
}
