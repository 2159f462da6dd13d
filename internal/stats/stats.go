// Package stats contains round history aggregation and reporting.
package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/wpm/internal/model"
)

// Summary totals outcomes across rounds.
type Summary struct {
	Rounds    int
	Completed int
	Skipped   int
	Quit      int
	// Typed and Correct are byte counts at the end of each round.
	Typed   int
	Correct int
}

// Accuracy returns the share of typed bytes that were part of a correct prefix.
func (s Summary) Accuracy() float64 {
	if s.Typed == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Typed)
}

// Summarize totals the rounds.
func Summarize(rounds []model.RoundResult) Summary {
	var s Summary
	for _, r := range rounds {
		s.Rounds++
		s.Typed += r.TypedLen
		s.Correct += r.CorrectLen
		switch r.Outcome {
		case model.OutcomeCompleted:
			s.Completed++
		case model.OutcomeSkipped:
			s.Skipped++
		case model.OutcomeQuit:
			s.Quit++
		}
	}
	return s
}

// AggregateBySource counts outcomes per source, most completed first.
func AggregateBySource(rounds []model.RoundResult) []model.OutcomeAggregate {
	bySource := map[string]*model.OutcomeAggregate{}
	for _, r := range rounds {
		agg, ok := bySource[r.Source]
		if !ok {
			agg = &model.OutcomeAggregate{Source: r.Source}
			bySource[r.Source] = agg
		}
		switch r.Outcome {
		case model.OutcomeCompleted:
			agg.Completed++
		case model.OutcomeSkipped:
			agg.Skipped++
		case model.OutcomeQuit:
			agg.Quit++
		}
	}
	out := make([]model.OutcomeAggregate, 0, len(bySource))
	for _, agg := range bySource {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return out[i].Completed > out[j].Completed
		}
		if out[i].Total() != out[j].Total() {
			return out[i].Total() > out[j].Total()
		}
		return out[i].Source < out[j].Source
	})
	return out
}

// RenderSummary prints round totals.
func RenderSummary(w io.Writer, rounds []model.RoundResult) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	s := Summarize(rounds)
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d", s.Rounds),
		fmt.Sprintf("Completed: %d", s.Completed),
		fmt.Sprintf("Skipped: %d", s.Skipped),
		fmt.Sprintf("Quit: %d", s.Quit),
		fmt.Sprintf("Correct prefix: %.2f%%", s.Accuracy()*100),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSourceTable prints per-source outcome counts.
func RenderSourceTable(w io.Writer, aggs []model.OutcomeAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Per-Text"); err != nil {
		return err
	}
	headers := []string{"Text", "Completed", "Skipped", "Quit", "Rounds"}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		source := agg.Source
		if source == "" {
			source = "<unknown>"
		}
		rows = append(rows, []string{
			source,
			fmt.Sprintf("%d", agg.Completed),
			fmt.Sprintf("%d", agg.Skipped),
			fmt.Sprintf("%d", agg.Quit),
			fmt.Sprintf("%d", agg.Total()),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
