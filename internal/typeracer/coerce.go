package typeracer

import (
	"errors"
	"strconv"
	"strings"
)

// kind selects the normalization applied to a captured cell.
type kind int

const (
	kindInt kind = iota
	kindFloat
	kindText
)

var errNotPositive = errors.New("must be positive")

// value is a coerced cell. Only the field matching kind is set.
type value struct {
	i int
	f float64
	s string
}

// coerce normalizes raw HTML cell text and converts it to kind. Numbers drop
// thousands separators; text resolves the &quot; entity.
func coerce(k kind, raw string) (value, error) {
	switch k {
	case kindInt:
		// Bounded to the non-negative range of int.
		n, err := strconv.ParseUint(stripCommas(raw), 10, strconv.IntSize-1)
		if err != nil {
			return value{}, err
		}
		return value{i: int(n)}, nil
	case kindFloat:
		f, err := strconv.ParseFloat(stripCommas(raw), 64)
		if err != nil {
			return value{}, err
		}
		return value{f: f}, nil
	default:
		return value{s: strings.ReplaceAll(raw, "&quot;", `"`)}, nil
	}
}

func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
