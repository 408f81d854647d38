package media

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(max-width: 47.9375em)", "(max-width: 47.9375em)"},
		{"(max-width: 47.9375em )", "(max-width: 47.9375em)"},
		{"(min-width: 48em ) and (max-width: 59.9375em )", "(min-width: 48em) and (max-width: 59.9375em)"},
		{"only screen and (min-width: 960px)", "screen and (min-width: 960px)"},
		{"SCREEN AND (MIN-WIDTH: 60REM)", "screen and (min-width: 60rem)"},
		{"all", "all"},
		{"(width: 0)", "(width: 0px)"},
		{"(max-width: 10em), (min-width: 100em)", "(max-width: 10em), (min-width: 100em)"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, err := ParseQuery(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.String())
		})
	}
}

func TestParseQueryErrors(t *testing.T) {
	bad := []string{
		"",
		"   ",
		"(max-width 10px)",
		"(max-width: 10)",
		"(max-width: -1px)",
		"(max-width: infpx)",
		"(height: 10px)",
		"(max-width: 10px",
		"screen (max-width: 10px)",
		"(min-width: 1px) or (max-width: 2px)",
		"print and (min-width: 1px)",
		"(min-width: 1px),",
	}

	for _, in := range bad {
		t.Run(in, func(t *testing.T) {
			_, err := ParseQuery(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidQuery))

			var qe *QueryError
			require.ErrorAs(t, err, &qe)
			assert.Equal(t, in, qe.Query)
		})
	}
}

func TestQueryMatchesAtBoundaries(t *testing.T) {
	small, err := ParseQuery("(max-width: 47.9375em)")
	require.NoError(t, err)
	medium, err := ParseQuery("(min-width: 48em) and (max-width: 59.9375em)")
	require.NoError(t, err)
	large, err := ParseQuery("(min-width: 60em)")
	require.NoError(t, err)

	tests := []struct {
		width                float64
		small, medium, large bool
	}{
		{0, true, false, false},
		{767, true, false, false},
		{768, false, true, false},
		{959, false, true, false},
		{960, false, false, true},
		{2560, false, false, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.small, small.Matches(tt.width, 16), "small at %v", tt.width)
		assert.Equal(t, tt.medium, medium.Matches(tt.width, 16), "medium at %v", tt.width)
		assert.Equal(t, tt.large, large.Matches(tt.width, 16), "large at %v", tt.width)
	}
}

func TestQueryListMatchesAny(t *testing.T) {
	q, err := ParseQuery("(max-width: 100px), (min-width: 500px)")
	require.NoError(t, err)

	assert.True(t, q.Matches(50, 16))
	assert.False(t, q.Matches(300, 16))
	assert.True(t, q.Matches(600, 16))
}

func TestLengthPixels(t *testing.T) {
	assert.Equal(t, 960.0, Length{Value: 60, Unit: UnitEm}.Pixels(16))
	assert.Equal(t, 600.0, Length{Value: 60, Unit: UnitRem}.Pixels(10))
	assert.Equal(t, 60.0, Length{Value: 60, Unit: UnitPx}.Pixels(10))
}
