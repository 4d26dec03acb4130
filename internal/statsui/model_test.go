package statsui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/fourstroke/internal/model"
	"github.com/verte-zerg/fourstroke/internal/store"
)

func openStore(t *testing.T, answers map[string][]string) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "fourstroke.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	for _, lang := range []string{"en", "pt"} {
		for _, answer := range answers[lang] {
			attempt := model.QuizAttempt{
				AnsweredAt: base.Add(time.Duration(n) * time.Minute),
				Lang:       lang,
				Answer:     answer,
				Correct:    answer == "4",
			}
			if _, err := st.InsertAttempt(context.Background(), attempt); err != nil {
				t.Fatalf("insert: %v", err)
			}
			n++
		}
	}
	return st
}

func TestNewModelLoadsReport(t *testing.T) {
	st := openStore(t, map[string][]string{"en": {"2", "4"}, "pt": {"4"}})
	m := NewModel(st, model.AttemptFilter{})
	if got := m.report.Summary.Attempts; got != 3 {
		t.Fatalf("attempts = %d, want 3", got)
	}
	if rows := m.attempts.Rows(); len(rows) != 3 || rows[0][1] != "pt" {
		t.Fatalf("rows = %v, want newest pt attempt first", rows)
	}
}

func TestLangKeyCyclesFilter(t *testing.T) {
	st := openStore(t, map[string][]string{"en": {"2", "4"}, "pt": {"4"}})
	m := NewModel(st, model.AttemptFilter{})
	key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")}

	_, _ = m.Update(key)
	if m.filter.Lang != "en" || m.report.Summary.Attempts != 2 {
		t.Fatalf("after first L: lang=%q attempts=%d", m.filter.Lang, m.report.Summary.Attempts)
	}
	_, _ = m.Update(key)
	if m.filter.Lang != "pt" || m.report.Summary.Attempts != 1 {
		t.Fatalf("after second L: lang=%q attempts=%d", m.filter.Lang, m.report.Summary.Attempts)
	}
	_, _ = m.Update(key)
	if m.filter.Lang != "" || m.report.Summary.Attempts != 3 {
		t.Fatalf("after third L: lang=%q attempts=%d", m.filter.Lang, m.report.Summary.Attempts)
	}
}

func TestViewTabs(t *testing.T) {
	st := openStore(t, map[string][]string{"en": {"4"}})
	m := NewModel(st, model.AttemptFilter{})
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	for _, want := range []string{"Overview", "Accuracy", "Quiz summary", "lang=any"} {
		if !strings.Contains(view, want) {
			t.Fatalf("overview missing %q", want)
		}
	}

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabAttempts {
		t.Fatalf("active tab = %d, want attempts", m.activeTab)
	}
	if view := m.View(); !strings.Contains(view, "Result") || !strings.Contains(view, "Answer") {
		t.Fatalf("attempts view missing rows:\n%s", view)
	}

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabOverview {
		t.Fatalf("tabs should wrap around")
	}
}

func TestEmptyHistory(t *testing.T) {
	st := openStore(t, nil)
	m := NewModel(st, model.AttemptFilter{})
	_, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	if !strings.Contains(m.View(), "No quiz attempts found.") {
		t.Fatalf("expected empty message")
	}
}

func TestNextLang(t *testing.T) {
	if got := nextLang("unknown"); got != "" {
		t.Fatalf("nextLang(unknown) = %q, want any", got)
	}
}
