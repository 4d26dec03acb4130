// Package stats contains quiz history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/fourstroke/internal/model"
)

const sparkChars = " .:-=+*#%@"

const defaultAccuracyWindow = 5

// AnswerCount counts how often an answer was submitted.
type AnswerCount struct {
	Answer  string
	Count   int
	Correct bool
}

// Summary aggregates quiz attempts.
type Summary struct {
	Attempts int
	Correct  int
	Accuracy float64
	Streak   int
	First    time.Time
	Last     time.Time
	Answers  []AnswerCount
	Curve    []float64
}

// Summarize aggregates attempts, which must be ordered oldest first.
func Summarize(attempts []model.QuizAttempt) Summary {
	s := Summary{Attempts: len(attempts)}
	if len(attempts) == 0 {
		return s
	}
	s.First = attempts[0].AnsweredAt
	s.Last = attempts[len(attempts)-1].AnsweredAt

	counts := map[string]*AnswerCount{}
	results := make([]float64, len(attempts))
	for i, a := range attempts {
		if a.Correct {
			s.Correct++
			results[i] = 1
		}
		entry, ok := counts[a.Answer]
		if !ok {
			entry = &AnswerCount{Answer: a.Answer, Correct: a.Correct}
			counts[a.Answer] = entry
		}
		entry.Count++
	}
	s.Accuracy = float64(s.Correct) / float64(s.Attempts)
	for i := len(attempts) - 1; i >= 0 && attempts[i].Correct; i-- {
		s.Streak++
	}

	s.Answers = make([]AnswerCount, 0, len(counts))
	for _, c := range counts {
		s.Answers = append(s.Answers, *c)
	}
	sort.Slice(s.Answers, func(i, j int) bool {
		if s.Answers[i].Count == s.Answers[j].Count {
			return s.Answers[i].Answer < s.Answers[j].Answer
		}
		return s.Answers[i].Count > s.Answers[j].Count
	})
	s.Curve = MovingAverage(results, defaultAccuracyWindow)
	return s
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := float64(i + 1)
		if i >= window {
			sum -= values[i-window]
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for values in [0,1].
func Sparkline(values []float64) string {
	var b strings.Builder
	last := len(sparkChars) - 1
	for _, v := range values {
		idx := int(math.Round(v * float64(last)))
		if idx < 0 {
			idx = 0
		}
		if idx > last {
			idx = last
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// WriteSummary prints the summary and answer table to w.
func WriteSummary(w io.Writer, s Summary) error {
	if s.Attempts == 0 {
		_, err := fmt.Fprintln(w, "No quiz attempts found.")
		return err
	}
	lines := []string{
		"Quiz summary",
		fmt.Sprintf("Attempts: %d", s.Attempts),
		fmt.Sprintf("Correct: %d", s.Correct),
		fmt.Sprintf("Accuracy: %.2f%%", s.Accuracy*100),
		fmt.Sprintf("Current streak: %d", s.Streak),
		fmt.Sprintf("First: %s", s.First.Local().Format("2006-01-02 15:04")),
		fmt.Sprintf("Last: %s", s.Last.Local().Format("2006-01-02 15:04")),
		fmt.Sprintf("Accuracy trend: [%s]", Sparkline(s.Curve)),
		"",
	}
	headers := []string{"Answer", "Count", "Result"}
	rows := make([][]string, 0, len(s.Answers))
	for _, a := range s.Answers {
		result := "wrong"
		if a.Correct {
			result = "right"
		}
		rows = append(rows, []string{displayAnswer(a.Answer), strconv.Itoa(a.Count), result})
	}
	lines = append(lines, formatTable(headers, rows, map[int]bool{1: true})...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func displayAnswer(answer string) string {
	if answer == "" {
		return "<empty>"
	}
	return strconv.Quote(answer)
}
