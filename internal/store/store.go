// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/fourstroke/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for quiz history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quiz_attempts (
			id INTEGER PRIMARY KEY,
			answered_at TEXT NOT NULL,
			lang TEXT NOT NULL,
			answer TEXT NOT NULL,
			correct INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_attempts_answered_at ON quiz_attempts(answered_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAttempt stores a submitted quiz answer.
func (s *Store) InsertAttempt(ctx context.Context, attempt model.QuizAttempt) (int64, error) {
	correct := 0
	if attempt.Correct {
		correct = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_attempts (answered_at, lang, answer, correct) VALUES (?, ?, ?, ?)`,
		attempt.AnsweredAt.Format(time.RFC3339Nano),
		attempt.Lang,
		attempt.Answer,
		correct,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAttempts returns attempts matching filter, oldest first.
func (s *Store) ListAttempts(ctx context.Context, filter model.AttemptFilter) ([]model.QuizAttempt, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Lang != "" {
		clauses = append(clauses, "lang = ?")
		args = append(args, filter.Lang)
	}
	if filter.Since != nil {
		clauses = append(clauses, "answered_at >= ?")
		args = append(args, filter.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, answered_at, lang, answer, correct
		FROM quiz_attempts
		WHERE %s
		ORDER BY answered_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var attempts []model.QuizAttempt
	for rows.Next() {
		var a model.QuizAttempt
		var answeredAt string
		var correct int
		if err := rows.Scan(&a.ID, &answeredAt, &a.Lang, &a.Answer, &correct); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, answeredAt)
		if err != nil {
			return nil, err
		}
		a.AnsweredAt = parsed
		a.Correct = correct != 0
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if filter.Last > 0 && len(attempts) > filter.Last {
		attempts = attempts[len(attempts)-filter.Last:]
	}
	return attempts, nil
}
