// Package typeracer extracts texts from the typeracerdata.com texts table.
package typeracer

import (
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/verte-zerg/wpm/internal/model"
)

type column struct {
	name    string
	kind    kind
	pattern string
}

var columns = [...]column{
	{name: "rank", kind: kindInt, pattern: `<td.*?>(\d+)\.</td>`},
	{name: "id", kind: kindText, pattern: `<td.*?>(#\d+)</td>`},
	{name: "text", kind: kindText, pattern: `<td.*?><a.*?>(.*?)</a></td>`},
	{name: "length", kind: kindInt, pattern: `<td.*?>([,\d]+)</td>`},
	{name: "races", kind: kindInt, pattern: `<td.*?>([,\d]+)</td>`},
	{name: "difficulty", kind: kindFloat, pattern: `<td.*?>([,\.\d]+)</td>`},
	{name: "top_score", kind: kindFloat, pattern: `<td.*?><a.*?>([,\.\d]+)</a>.*?</td>`},
	{name: "top_100", kind: kindFloat, pattern: `<td.*?>([,\.\d]+)</td>`},
	{name: "average", kind: kindFloat, pattern: `<td.*?>([,\.\d]+)</td>`},
	{name: "date_active", kind: kindText, pattern: `<td.*?>(.*?)</td>`},
}

var rowPattern = regexp.MustCompile(rowExpr())

func rowExpr() string {
	parts := make([]string, 0, len(columns)+2)
	parts = append(parts, `<tr>`)
	for _, c := range columns {
		parts = append(parts, c.pattern)
	}
	parts = append(parts, `</tr>`)
	return strings.Join(parts, `\s*`)
}

// span is a half-open byte range into the markup.
type span struct {
	start int
	end   int
}

func (s span) in(markup string) string {
	return markup[s.start:s.end]
}

// ParseRow parses the first row found in markup.
func ParseRow(markup string) (model.Record, error) {
	loc := rowPattern.FindStringSubmatchIndex(markup)
	if loc == nil {
		return model.Record{}, &StructureError{Reason: "no row matches the texts table layout"}
	}
	return fromMatch(markup, loc)
}

// ParseTable yields one record per row in document order. Rows are matched
// lazily; a failing row yields its error and scanning continues after it.
func ParseTable(markup string) iter.Seq2[model.Record, error] {
	return func(yield func(model.Record, error) bool) {
		pos := 0
		for pos < len(markup) {
			loc := rowPattern.FindStringSubmatchIndex(markup[pos:])
			if loc == nil {
				return
			}
			for i := range loc {
				if loc[i] >= 0 {
					loc[i] += pos
				}
			}
			record, err := fromMatch(markup, loc)
			if !yield(record, err) {
				return
			}
			pos = loc[1]
		}
	}
}

// Collect gathers every record of the table, stopping at the first error.
func Collect(markup string) ([]model.Record, error) {
	var records []model.Record
	for record, err := range ParseTable(markup) {
		if err != nil {
			return nil, fmt.Errorf("failed to parse row %d: %w", len(records)+1, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func fromMatch(markup string, loc []int) (model.Record, error) {
	offset := loc[0]
	groups := len(loc)/2 - 1
	// Guards edits to columns that leave the pattern and the record out of step.
	if groups != len(columns) {
		return model.Record{}, &StructureError{
			Offset: offset,
			Reason: fmt.Sprintf("expected %d columns, found %d", len(columns), groups),
		}
	}
	caps := make([]span, len(columns))
	for i := range columns {
		start, end := loc[2*(i+1)], loc[2*(i+1)+1]
		if start < 0 || end < 0 {
			return model.Record{}, &StructureError{
				Offset: offset,
				Reason: fmt.Sprintf("column %s not captured", columns[i].name),
			}
		}
		caps[i] = span{start: start, end: end}
	}

	values := make([]value, len(columns))
	for i, c := range columns {
		raw := caps[i].in(markup)
		v, err := coerce(c.kind, raw)
		if err != nil {
			return model.Record{}, &CoercionError{Column: c.name, Raw: raw, Err: err}
		}
		values[i] = v
	}
	if values[0].i <= 0 {
		return model.Record{}, &CoercionError{Column: columns[0].name, Raw: caps[0].in(markup), Err: errNotPositive}
	}

	return model.Record{
		Rank:       values[0].i,
		ID:         values[1].s,
		Text:       values[2].s,
		Length:     values[3].i,
		Races:      values[4].i,
		Difficulty: values[5].f,
		TopScore:   values[6].f,
		Top100:     values[7].f,
		Average:    values[8].f,
		DateActive: values[9].s,
	}, nil
}
