package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/wpm/internal/model"
	"github.com/verte-zerg/wpm/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Rounds  []model.RoundResult
	Sources []model.OutcomeAggregate
}

// BuildReport loads the most recent rounds. last <= 0 loads all of them.
func BuildReport(ctx context.Context, st *store.Store, last int) (Report, error) {
	rounds, err := st.ListRounds(ctx, last)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Rounds:  rounds,
		Sources: AggregateBySource(rounds),
	}, nil
}

// Render prints the summary followed by the per-text table.
func (r Report) Render(w io.Writer) error {
	if err := RenderSummary(w, r.Rounds); err != nil {
		return err
	}
	return RenderSourceTable(w, r.Sources)
}
