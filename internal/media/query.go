package media

import (
	"math"
	"strconv"
	"strings"
)

// Feature is a media feature name.
type Feature uint8

const (
	FeatureWidth Feature = iota
	FeatureMinWidth
	FeatureMaxWidth
)

// String returns the CSS name of the feature.
func (f Feature) String() string {
	switch f {
	case FeatureMinWidth:
		return "min-width"
	case FeatureMaxWidth:
		return "max-width"
	default:
		return "width"
	}
}

// Unit is a length unit.
type Unit uint8

const (
	UnitPx Unit = iota
	UnitEm
	UnitRem
)

// String returns the CSS unit suffix.
func (u Unit) String() string {
	switch u {
	case UnitEm:
		return "em"
	case UnitRem:
		return "rem"
	default:
		return "px"
	}
}

// Length is a CSS length.
type Length struct {
	Value float64
	Unit  Unit
}

// Pixels resolves the length against pxPerEm.
func (l Length) Pixels(pxPerEm float64) float64 {
	if l.Unit == UnitPx {
		return l.Value
	}
	return l.Value * pxPerEm
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

// Condition is one parenthesized feature test.
type Condition struct {
	Feature Feature
	Length  Length
}

// Matches reports whether a viewport widthPx wide satisfies c.
func (c Condition) Matches(widthPx, pxPerEm float64) bool {
	v := c.Length.Pixels(pxPerEm)
	switch c.Feature {
	case FeatureMinWidth:
		return widthPx >= v
	case FeatureMaxWidth:
		return widthPx <= v
	default:
		return widthPx == v
	}
}

func (c Condition) String() string {
	return "(" + c.Feature.String() + ": " + c.Length.String() + ")"
}

// Clause is a media type plus conditions joined by "and".
type Clause struct {
	// MediaType is "screen", "all" or empty.
	MediaType  string
	Conditions []Condition
}

// Matches reports whether every condition holds.
func (c Clause) Matches(widthPx, pxPerEm float64) bool {
	for _, cond := range c.Conditions {
		if !cond.Matches(widthPx, pxPerEm) {
			return false
		}
	}
	return true
}

func (c Clause) String() string {
	parts := make([]string, 0, len(c.Conditions)+1)
	if c.MediaType != "" {
		parts = append(parts, c.MediaType)
	}
	for _, cond := range c.Conditions {
		parts = append(parts, cond.String())
	}
	return strings.Join(parts, " and ")
}

// Query is a parsed media query list.
type Query struct {
	Text    string
	Clauses []Clause
}

// Matches reports whether any clause holds.
func (q Query) Matches(widthPx, pxPerEm float64) bool {
	for _, c := range q.Clauses {
		if c.Matches(widthPx, pxPerEm) {
			return true
		}
	}
	return false
}

// String returns the normalized query text.
func (q Query) String() string {
	parts := make([]string, len(q.Clauses))
	for i, c := range q.Clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// ParseQuery parses a media query list.
//
// Supported formats:
//   - "(max-width: 767px)"
//   - "(min-width: 48em) and (max-width: 59.9375em)"
//   - "only screen and (min-width: 60rem)"
//   - "screen, (min-width: 30em)"
func ParseQuery(s string) (Query, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return Query{}, &QueryError{Query: s, Reason: "empty"}
	}

	q := Query{Text: text}
	for _, part := range strings.Split(text, ",") {
		clause, err := parseClause(part)
		if err != nil {
			return Query{}, &QueryError{Query: s, Reason: err.Error()}
		}
		q.Clauses = append(q.Clauses, clause)
	}
	return q, nil
}

type parseError string

func (e parseError) Error() string { return string(e) }

func parseClause(s string) (Clause, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Clause{}, parseError("empty clause")
	}

	var clause Clause
	if rest, ok := cutWord(s, "only"); ok {
		s = rest
	}
	for _, mt := range []string{"screen", "all"} {
		if rest, ok := cutWord(s, mt); ok {
			clause.MediaType = mt
			s = rest
			break
		}
	}

	if clause.MediaType != "" {
		if s == "" {
			return clause, nil
		}
		rest, ok := cutWord(s, "and")
		if !ok {
			return Clause{}, parseError("expected \"and\" after media type")
		}
		s = rest
	}

	for {
		if !strings.HasPrefix(s, "(") {
			return Clause{}, parseError("expected \"(\"")
		}
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return Clause{}, parseError("unmatched parenthesis")
		}
		cond, err := parseCondition(s[1:end])
		if err != nil {
			return Clause{}, err
		}
		clause.Conditions = append(clause.Conditions, cond)

		s = strings.TrimSpace(s[end+1:])
		if s == "" {
			return clause, nil
		}
		rest, ok := cutWord(s, "and")
		if !ok {
			return Clause{}, parseError("expected \"and\" between conditions")
		}
		s = rest
	}
}

// cutWord removes a leading keyword followed by whitespace, "(" or end.
func cutWord(s, word string) (string, bool) {
	if !strings.HasPrefix(s, word) {
		return s, false
	}
	rest := s[len(word):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '(' {
		return s, false
	}
	return strings.TrimSpace(rest), true
}

func parseCondition(s string) (Condition, error) {
	name, value, ok := strings.Cut(s, ":")
	if !ok {
		return Condition{}, parseError("missing \":\" in feature")
	}

	var cond Condition
	switch strings.TrimSpace(name) {
	case "width":
		cond.Feature = FeatureWidth
	case "min-width":
		cond.Feature = FeatureMinWidth
	case "max-width":
		cond.Feature = FeatureMaxWidth
	default:
		return Condition{}, parseError("unsupported feature " + strconv.Quote(strings.TrimSpace(name)))
	}

	length, err := parseLength(strings.TrimSpace(value))
	if err != nil {
		return Condition{}, err
	}
	cond.Length = length
	return cond, nil
}

func parseLength(s string) (Length, error) {
	var l Length
	num := s
	switch {
	case strings.HasSuffix(s, "rem"):
		l.Unit, num = UnitRem, strings.TrimSuffix(s, "rem")
	case strings.HasSuffix(s, "em"):
		l.Unit, num = UnitEm, strings.TrimSuffix(s, "em")
	case strings.HasSuffix(s, "px"):
		l.Unit, num = UnitPx, strings.TrimSuffix(s, "px")
	case s == "0":
	default:
		return Length{}, parseError("length " + strconv.Quote(s) + " needs a px, em or rem unit")
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return Length{}, parseError("invalid length " + strconv.Quote(s))
	}
	l.Value = v
	return l, nil
}
