package textlist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/verte-zerg/wpm/internal/model"
)

// Filter keeps the records for which the jq expression yields a truthy first
// value. Records are presented to jq with their JSON field names, so
// `.difficulty < 1.1 and .length < 200` is a valid expression. An empty
// expression keeps everything.
func Filter(records []model.Record, expr string) ([]model.Record, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return records, nil
	}
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
	}

	kept := make([]model.Record, 0, len(records))
	for _, r := range records {
		input, err := toJQValue(r)
		if err != nil {
			return nil, err
		}
		ok, err := truthy(code, input)
		if err != nil {
			return nil, fmt.Errorf("filter failed on %s: %w", r.ID, err)
		}
		if ok {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

func truthy(code *gojq.Code, input any) (bool, error) {
	iter := code.Run(input)
	v, ok := iter.Next()
	if !ok {
		return false, nil
	}
	if err, isErr := v.(error); isErr {
		return false, err
	}
	return v != nil && v != false, nil
}

// toJQValue converts a record to the generic map form gojq operates on.
func toJQValue(r model.Record) (any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return v, nil
}
