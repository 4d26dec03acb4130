package stats

import (
	"context"

	"github.com/verte-zerg/fourstroke/internal/model"
	"github.com/verte-zerg/fourstroke/internal/store"
)

// Report holds the attempts matching a filter and their summary.
type Report struct {
	History []model.QuizAttempt
	Summary Summary
}

// BuildReport loads attempts matching filter and summarizes them.
func BuildReport(ctx context.Context, st *store.Store, filter model.AttemptFilter) (Report, error) {
	attempts, err := st.ListAttempts(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	return Report{History: attempts, Summary: Summarize(attempts)}, nil
}
